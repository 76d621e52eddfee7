package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"drugmatch-service/internal/drugmatch/model"
	"drugmatch-service/internal/fileio"
)

// ErrSchema matches every SchemaError through errors.Is.
var ErrSchema = errors.New("catalog schema")

// SchemaError means the catalog source cannot back a catalog at all.
type SchemaError struct {
	Source string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("catalog schema error in %s: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }
func (e *SchemaError) Unwrap() error        { return e.Err }

// Header candidates in priority order.
var (
	NameColumns    = []string{"제품명", "품목명", "product", "name"}
	CompanyColumns = []string{"회사", "company", "제조사", "업체명"}
)

// Catalog is the read-only reference table. Normalized[i] is the aggressive
// form of Entries[i].Name. It is shared by all requests without locking.
type Catalog struct {
	Entries       []model.CatalogEntry
	Normalized    []string
	Columns       []string
	NameColumn    string
	CompanyColumn string
}

func (c *Catalog) Len() int { return len(c.Entries) }

// LoadCatalog reads the catalog file at path. Any read failure is a SchemaError.
func LoadCatalog(path string, headerRow int) (*Catalog, error) {
	t, err := fileio.OpenTable(path, headerRow)
	if err != nil {
		return nil, &SchemaError{Source: path, Reason: "unreadable", Err: err}
	}
	return BuildCatalog(path, t)
}

// BuildCatalog indexes a table. It fails only when the table has no columns;
// zero data rows give an empty, usable catalog.
func BuildCatalog(source string, t fileio.Table) (*Catalog, error) {
	if len(t.Headers) == 0 {
		return nil, &SchemaError{Source: source, Reason: "no columns"}
	}
	nameCol := resolveColumn(t.Headers, NameColumns)
	if nameCol == "" {
		nameCol = t.Headers[0]
	}
	companyCol := resolveColumn(t.Headers, CompanyColumns)

	c := &Catalog{
		Entries:       make([]model.CatalogEntry, len(t.Rows)),
		Normalized:    make([]string, len(t.Rows)),
		Columns:       append([]string(nil), t.Headers...),
		NameColumn:    nameCol,
		CompanyColumn: companyCol,
	}
	for i, row := range t.Rows {
		e := model.CatalogEntry{Index: i, Name: row[nameCol], Row: row}
		if companyCol != "" {
			e.Company = row[companyCol]
		}
		c.Entries[i] = e
		c.Normalized[i] = NormalizeName(e.Name)
	}
	return c, nil
}

var reHeaderNoise = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey lowercases a header and folds punctuation and space runs.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reHeaderNoise.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveColumn returns the first header matching a candidate, trying exact
// names, then normalized names, then headers that start with a candidate
// ("제품명(한글)"). Candidates are tried in priority order at every stage.
func resolveColumn(headers, candidates []string) string {
	for _, want := range candidates {
		for _, h := range headers {
			if h == want {
				return h
			}
		}
	}
	for _, want := range candidates {
		nw := normHeaderKey(want)
		for _, h := range headers {
			if normHeaderKey(h) == nw {
				return h
			}
		}
	}
	for _, want := range candidates {
		nw := normHeaderKey(want)
		for _, h := range headers {
			if strings.HasPrefix(normHeaderKey(h), nw+" ") {
				return h
			}
		}
	}
	return ""
}
