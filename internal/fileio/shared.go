package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is a header-ordered view of the first sheet of a tabular file.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// ReadTable picks a parser by extension. headerRow is 1-based.
// A source without any row yields a Table with no headers.
func ReadTable(r io.Reader, filename string, headerRow int) (Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r)
	case ".csv", ".tsv":
		rows, err = readCSV(r, ext == ".tsv")
	default:
		return Table{}, fmt.Errorf("unsupported file: %s", filename)
	}
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", filepath.Base(filename), err)
	}
	if len(rows) == 0 {
		return Table{}, nil
	}
	h := pickHeader(rows, headerRow)
	return Table{Headers: h, Rows: rowsToMaps(rows, h, headerRow)}, nil
}

// OpenTable reads the table stored at path.
func OpenTable(path string, headerRow int) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return ReadTable(f, path, headerRow)
}

// pickHeader takes the header row and names blank cells "Column N".
// Duplicate names get a numeric suffix so no column is shadowed.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		if n := seen[v]; n > 0 {
			seen[v] = n + 1
			v = fmt.Sprintf("%s.%d", v, n)
		} else {
			seen[v] = 1
		}
		out[i] = v
	}
	return out
}

// rowsToMaps turns the rows below the header into maps, skipping fully empty rows.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	start := headerRow
	if start < 1 || start > len(rows) {
		start = 1
	}
	var out []map[string]string
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c, key := range headers {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[key] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

var cellSpaces = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "\u2009", " ", "\uFEFF", "")

func normalizeCell(s string) string {
	return strings.TrimSpace(cellSpaces.Replace(s))
}
