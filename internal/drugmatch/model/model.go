package model

// CatalogEntry is one catalog row. Never mutated after load.
type CatalogEntry struct {
	Index   int               // row index in the source table (0-based, header excluded)
	Name    string            // display name from the name column
	Company string            // empty when the catalog has no company column
	Row     map[string]string // every column of the row
}

// Candidate is a light-normalized OCR fragment with its relevance score.
type Candidate struct {
	Text  string
	Score int
	Order int // position in the input, used as the tie-break
}

type MatchResult struct {
	Score       int               `json:"score"`
	MatchedName string            `json:"matchedName"`
	RowIndex    int               `json:"rowIndex"`
	Company     string            `json:"company,omitempty"`
	Row         map[string]string `json:"row"`
}

// Request bodies. Field names follow the public API (snake_case).

type MatchTextRequest struct {
	Text     string `json:"text"`
	TopK     int    `json:"top_k"`
	MinScore int    `json:"min_score"`
}

type MatchLinesRequest struct {
	Lines    []string `json:"lines"`
	TopK     int      `json:"top_k"`
	MinScore int      `json:"min_score"`
}

type MatchDocumentRequest struct {
	Lines []string `json:"lines"`
	TopK  int      `json:"top_k"`
}

type MatchQueryResponse struct {
	Query      string        `json:"query"`
	Normalized string        `json:"normalized"`
	Result     []MatchResult `json:"result"`
}

type MatchLinesResponse struct {
	Lines  []string                 `json:"lines,omitempty"`
	Result map[string][]MatchResult `json:"result"`
}

type MatchDocumentResponse struct {
	Lines      []string      `json:"lines,omitempty"`
	Candidates []string      `json:"candidates"`
	Result     []MatchResult `json:"result"`
}

type HealthResponse struct {
	Message       string `json:"message"`
	CatalogRows   int    `json:"catalogRows"`
	NameColumn    string `json:"nameColumn"`
	CompanyColumn string `json:"companyColumn,omitempty"`
	OCR           bool   `json:"ocr"`
}
