package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	CatalogPath      string
	CatalogHeaderRow int
	DefaultTopK      int
	DefaultMinScore  int
	MatchWorkers     int

	OCREnabled       bool
	OCRLangs         []string
	OCRMinConfidence float64
}

func Load() Config {
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         getint("PORT", 8082),
		AllowOrigins: splitList(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxUploadMB:  getint("MAX_UPLOAD_MB", 20),
		LogFile:      getenv("LOG_FILE", "logs/drugmatch.log"),

		CatalogPath:      getenv("CATALOG_PATH", "data/eyedrops_oint.csv"),
		CatalogHeaderRow: getint("CATALOG_HEADER_ROW", 1),
		DefaultTopK:      getint("DEFAULT_TOP_K", 5),
		DefaultMinScore:  getint("DEFAULT_MIN_SCORE", 60),
		MatchWorkers:     getint("MATCH_WORKERS", runtime.GOMAXPROCS(0)),

		OCREnabled:       getbool("OCR_ENABLED", false),
		OCRLangs:         splitList(getenv("OCR_LANGS", "kor,eng")),
		OCRMinConfidence: getfloat("OCR_MIN_CONFIDENCE", 0.45),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// MaxUploadBytes is the request body limit applied by the router.
func (c Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(getenv(k, "")))
	if err != nil {
		return def
	}
	return n
}

func getfloat(k string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(getenv(k, "")), 64)
	if err != nil {
		return def
	}
	return f
}

func getbool(k string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(getenv(k, "")))
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
