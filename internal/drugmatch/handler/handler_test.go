package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"drugmatch-service/internal/config"
	"drugmatch-service/internal/drugmatch/model"
	"drugmatch-service/internal/drugmatch/service"
	"drugmatch-service/internal/fileio"
)

const testCatalogCSV = `제품명,제조사
히아레인점안액 0.1%,한림제약
타리비드안연고,제일약품
크라비트점안액 0.5%,산텐
리프레쉬플러스점안액,엘러간
`

func testDeps(t *testing.T) Deps {
	t.Helper()
	tbl, err := fileio.ReadTable(strings.NewReader(testCatalogCSV), "catalog.csv", 1)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	cat, err := service.BuildCatalog("catalog.csv", tbl)
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
	return Deps{
		Cfg:     config.Config{DefaultTopK: 5, DefaultMinScore: 60, MaxUploadMB: 1},
		Matcher: service.NewMatcher(cat, 2, zerolog.Nop()),
	}
}

func do(t *testing.T, h http.HandlerFunc, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
		}
	}
	return rec
}

func TestMatchQuery(t *testing.T) {
	var resp model.MatchQueryResponse
	rec := do(t, MatchQuery(testDeps(t)), `{"text":"크라비트"}`, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if resp.Query != "크라비트" || resp.Normalized != "크라비트" {
		t.Fatalf("unexpected echo: %+v", resp)
	}
	if len(resp.Result) == 0 || resp.Result[0].RowIndex != 2 || resp.Result[0].Company != "산텐" {
		t.Fatalf("unexpected result: %+v", resp.Result)
	}
	if resp.Result[0].Row["제품명"] != "크라비트점안액 0.5%" {
		t.Fatalf("row not echoed: %v", resp.Result[0].Row)
	}
}

func TestMatchQueryNoMatchIsEmptyArray(t *testing.T) {
	rec := do(t, MatchQuery(testDeps(t)), `{"text":"zzzz","min_score":100}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"result":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestMatchText(t *testing.T) {
	var resp model.MatchLinesResponse
	rec := do(t, MatchText(testDeps(t)), `{"text":"히아레인\n\n  크라비트 \r\n","top_k":1}`, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !reflect.DeepEqual(resp.Lines, []string{"히아레인", "크라비트"}) {
		t.Fatalf("lines = %q", resp.Lines)
	}
	if len(resp.Result) != 2 || len(resp.Result["히아레인"]) != 1 || len(resp.Result["크라비트"]) != 1 {
		t.Fatalf("result = %+v", resp.Result)
	}
}

func TestMatchLines(t *testing.T) {
	var resp model.MatchLinesResponse
	rec := do(t, MatchLines(testDeps(t)), `{"lines":["타리비드","", "xyz"]}`, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Lines != nil {
		t.Fatalf("lines should be omitted, got %q", resp.Lines)
	}
	if _, ok := resp.Result["xyz"]; !ok || len(resp.Result) != 2 {
		t.Fatalf("result keys = %v", resp.Result)
	}
	if got := resp.Result["타리비드"]; len(got) == 0 || got[0].MatchedName != "타리비드안연고" {
		t.Fatalf("타리비드 result = %+v", got)
	}
}

func TestMatchDocument(t *testing.T) {
	var resp model.MatchDocumentResponse
	body := `{"lines":["한림제약","히아레인점안액 0.1%","5mL"],"top_k":2}`
	rec := do(t, MatchDocument(testDeps(t)), body, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] != "히아레인점안액 0.1%" {
		t.Fatalf("candidates = %q", resp.Candidates)
	}
	if len(resp.Result) == 0 || len(resp.Result) > 2 || resp.Result[0].RowIndex != 0 {
		t.Fatalf("result = %+v", resp.Result)
	}
}

func TestBadRequests(t *testing.T) {
	d := testDeps(t)
	tests := []struct {
		name string
		h    http.HandlerFunc
		body string
	}{
		{"broken json", MatchQuery(d), `{"text":`},
		{"empty body", MatchLines(d), ``},
		{"zero top_k", MatchQuery(d), `{"text":"a","top_k":0}`},
		{"min_score too high", MatchText(d), `{"text":"a","min_score":101}`},
		{"negative top_k", MatchDocument(d), `{"lines":[],"top_k":-1}`},
	}
	for _, tt := range tests {
		rec := do(t, tt.h, tt.body, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", tt.name, rec.Code)
		}
		var e map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil || e["error"] == "" {
			t.Fatalf("%s: body = %s", tt.name, rec.Body.String())
		}
	}
}

func TestBodyTooLarge(t *testing.T) {
	d := testDeps(t)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"`+strings.Repeat("a", 64)+`"}`))
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	MatchQuery(d)(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMatchImageDisabled(t *testing.T) {
	rec := do(t, MatchImage(testDeps(t)), ``, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSplitLines(t *testing.T) {
	got := splitLines("a\r\n\n b \rc")
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("splitLines() = %q", got)
	}
	if got := splitLines(""); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice")
	}
}
