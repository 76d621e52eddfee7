package service

import (
	"strings"
	"testing"

	"drugmatch-service/internal/fileio"
)

const testCatalogCSV = `제품명,제조사,성분
히아레인점안액 0.1%,한림제약,히알루론산나트륨
히아레인미니점안액 0.3%,한림제약,히알루론산나트륨
타리비드안연고,제일약품,오플록사신
크라비트점안액 0.5%,산텐,레보플록사신
리프레쉬플러스점안액,엘러간,카르복시메틸셀룰로오스
카리나점안액(피레녹신),일동제약,피레녹신
히아레인점안액 0.1%,다른제약,히알루론산나트륨
`

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	return catalogFromCSV(t, testCatalogCSV)
}

func catalogFromCSV(t *testing.T, src string) *Catalog {
	t.Helper()
	tbl, err := fileio.ReadTable(strings.NewReader(src), "catalog.csv", 1)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	cat, err := BuildCatalog("catalog.csv", tbl)
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
	return cat
}
