package textfilter

import (
	"strings"
	"testing"
)

func TestWhitelist_Size(t *testing.T) {
	if len(whitelist) != 48 {
		t.Errorf("whitelist has %d entries, want 48", len(whitelist))
	}
}

func TestWhitelistFilter(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Hello@World#2024", "HelloWorld2024"},
		{"Price: £5 & $6!", "Price: £5 & $6!"},
		{"a\tb\nc", "abc"},
		{"ÀBC", "BC"},
		{"Héllo wörld", "Hllo wrld"},
		{"semi; colon: dash-dot. q? comma,", "semi; colon: dash-dot. q? comma,"},
		{"\x00null\x00", "null"},
		{"你好 hi", " hi"},
		{"(brackets) [and] {braces}", "brackets and braces"},
	}

	for _, tt := range tests {
		if got := WhitelistFilter(tt.input); got != tt.want {
			t.Errorf("WhitelistFilter(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWhitelistFilter_PreservesCase(t *testing.T) {
	if got := WhitelistFilter("MiXeD CaSe"); got != "MiXeD CaSe" {
		t.Errorf("WhitelistFilter = %q, want original case", got)
	}
}

func TestWhitelistFilter_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello@World#2024",
		"“quoted” — dash … ellipsis",
		"£100 for 2 tickets?!",
		"\x01\x02abc\x7f",
	}
	for _, in := range inputs {
		once := WhitelistFilter(in)
		if twice := WhitelistFilter(once); twice != once {
			t.Errorf("WhitelistFilter not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestWhitelistFilter_OutputOnlyAllowedRunes(t *testing.T) {
	var b strings.Builder
	for r := rune(0); r < 0x3000; r++ {
		b.WriteRune(r)
	}

	const symbols = "$£!.?,'&;: -"
	for _, r := range WhitelistFilter(b.String()) {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			strings.ContainsRune(symbols, r)
		if !ok {
			t.Errorf("unexpected rune %q (%U) in output", r, r)
		}
	}
}

func TestHasAlphanumeric(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"!!! ---", false},
		{"£$&", false},
		{"é", false},
		{"٣", false}, // 非 ASCII 数字
		{"a", true},
		{"Z", true},
		{"...7", true},
	}

	for _, tt := range tests {
		if got := HasAlphanumeric(tt.input); got != tt.want {
			t.Errorf("HasAlphanumeric(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
