package service

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type replacement struct{ from, to string }

// confusables is applied in order by both normalization variants.
// Every lowercase letter whose upper case is a key is itself a key with the
// same target, otherwise uppercasing would reintroduce a key and the
// aggressive form would stop being idempotent.
var confusables = []replacement{
	// unit glyphs
	{"㎖", "mL"}, {"ml", "mL"}, {"㎎", "mg"}, {"㎍", "ug"}, {"㏄", "cc"},
	{"μ", "u"}, {"µ", "u"},

	// punctuation
	{"％", "%"}, {"／", "/"}, {"–", "-"}, {"—", "-"}, {"‐", "-"},
	{"（", "("}, {"）", ")"}, {"“", `"`}, {"”", `"`}, {"‘", "'"}, {"’", "'"},
	{"ㆍ", "·"}, {"ᆞ", "·"}, {"°", "o"},

	// full-width digits
	{"０", "0"}, {"１", "1"}, {"２", "2"}, {"３", "3"}, {"４", "4"},
	{"５", "5"}, {"６", "6"}, {"７", "7"}, {"８", "8"}, {"９", "9"},

	// Cyrillic and Hangul lookalikes
	{"А", "A"}, {"а", "a"}, {"В", "B"}, {"Е", "E"}, {"е", "e"},
	{"К", "K"}, {"к", "k"}, {"М", "M"}, {"м", "m"}, {"Н", "H"},
	{"Р", "P"}, {"р", "p"}, {"С", "C"}, {"с", "c"}, {"Т", "T"},
	{"Х", "X"}, {"х", "x"}, {"О", "0"}, {"о", "0"},
	{"Ｂ", "B"}, {"ㅣ", "1"}, {"ᅵ", "1"}, {"Ⅰ", "1"},

	// digit-shaped letters
	{"O", "0"}, {"o", "0"}, {"l", "1"}, {"I", "1"}, {"i", "1"}, {"ı", "1"},
}

// noiseTokens are dosage forms, units and packaging markers that carry no
// identity. Removal is case-insensitive (the text is uppercased first).
var noiseTokens = []string{
	"점안액", "점안겔", "점안현탁액", "점안제",
	"안연고",
	"(1회용)", "1회용",
	"미니", "에스디", "SD",
	"%", "㎖", "mL", "mg", "g", "μg",
}

var upperNoiseTokens = func() []string {
	out := make([]string, len(noiseTokens))
	for i, t := range noiseTokens {
		out[i] = strings.ToUpper(t)
	}
	return out
}()

var (
	reParens    = regexp.MustCompile(`\(.*?\)`)
	reNotKeyRun = regexp.MustCompile(`[^0-9A-Z가-힣]+`)
)

// prepare runs the steps shared by both variants: trim, NFKC, confusables.
func prepare(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	for _, r := range confusables {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// NormalizeName is the aggressive variant used for catalog and query names:
// uppercase, noise tokens and parenthesized spans removed, only ASCII
// alphanumerics and Hangul syllables kept. The result has no spaces.
func NormalizeName(raw string) string {
	s := prepare(raw)
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	for _, tok := range upperNoiseTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = reParens.ReplaceAllString(s, "")
	s = reNotKeyRun.ReplaceAllString(s, "")

	// Deleting characters can join the halves of a token ("S-D" -> "SD"),
	// so strip again until nothing changes.
	for prev := ""; s != prev; {
		prev = s
		for _, tok := range upperNoiseTokens {
			s = strings.ReplaceAll(s, tok, "")
		}
	}
	return s
}

// NormalizeText is the light variant used for candidate heuristics. Units and
// dosage hints survive; whitespace runs collapse to one space.
func NormalizeText(raw string) string {
	return collapseSpaces(prepare(raw))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
