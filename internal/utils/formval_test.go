package utils

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"60", 60, true},
		{" 0,45 ", 0.45, true},
		{"1 600", 1600, true},
		{"-3", -3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIntOr(t *testing.T) {
	if got := IntOr("7", 5); got != 7 {
		t.Fatalf("IntOr(7) = %d", got)
	}
	if got := IntOr("2,6", 5); got != 3 {
		t.Fatalf("IntOr(2,6) = %d", got)
	}
	if got := IntOr("", 5); got != 5 {
		t.Fatalf("IntOr(empty) = %d", got)
	}
}

func TestFloatOr(t *testing.T) {
	if got := FloatOr("0,5", 1); got != 0.5 {
		t.Fatalf("FloatOr = %v", got)
	}
	if got := FloatOr("x", 1); got != 1 {
		t.Fatalf("FloatOr fallback = %v", got)
	}
}

func TestBoolOr(t *testing.T) {
	for in, want := range map[string]bool{"yes": true, "ON": true, "0": false, "off": false} {
		if got := BoolOr(in, !want); got != want {
			t.Fatalf("BoolOr(%q) = %v", in, got)
		}
	}
	if !BoolOr("maybe", true) {
		t.Fatalf("unknown value should fall back")
	}
}
