package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readCSV auto-detects the encoding and converts to UTF-8. Korean catalogs
// exported from Excel are usually CP949/EUC-KR or UTF-8 with a BOM.
func readCSV(r io.Reader, tab bool) ([][]string, error) {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(4096)
	dec := decoderFor(detectCharset(peek))

	cr := csv.NewReader(transform.NewReader(br, unicode.BOMOverride(dec.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if tab {
		cr.Comma = '\t'
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func detectCharset(peek []byte) string {
	if len(peek) == 0 {
		return "utf-8"
	}
	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err != nil || det == nil {
		return "utf-8"
	}
	return strings.ToLower(det.Charset)
}

func decoderFor(charset string) encoding.Encoding {
	switch charset {
	case "euc-kr", "cp949", "ks_c_5601-1987":
		return korean.EUCKR
	case "windows-1251", "cp1251":
		return charmap.Windows1251
	case "windows-1252", "iso-8859-1":
		return charmap.Windows1252
	default:
		return encoding.Nop
	}
}
