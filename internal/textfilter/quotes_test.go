package textfilter

import "testing"

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"single rune", "x", ""},
		{"single apostrophe", "'", ""},
		{"two runes", "ab", ""},
		{"enclosing quotes", "'hello'", "hello"},
		{"contraction kept", "don't stop", "on't sto"},
		{"quoted word in sentence", "a 'quote' b", " quote "},
		{"multiple contractions", "\"rock'n'roll\"", "rock'n'roll"},
		{"apostrophe next to digit", "[90's]", "90s"},
		{"leading interior apostrophe", "''a", ""},
		{"doubled apostrophe", "[it''s]", "its"},
		{"unicode boundary", "«bonjour»", "bonjour"},
		{"other interior punctuation kept", "(wait, what?)", "wait, what?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripQuotes(tt.input); got != tt.want {
				t.Errorf("StripQuotes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripQuotesWith_QuotesOnly(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"single letter kept", "x", "x"},
		{"single quote removed", "'", ""},
		{"no enclosing quotes", "don't stop", "don't stop"},
		{"ascii quotes", "'hello'", "hello"},
		{"double quotes", "\"hello\"", "hello"},
		{"curly double quotes", "“hello”", "hello"},
		{"curly single quotes", "‘hello’", "hello"},
		{"only leading quote", "\"hello", "hello"},
		{"quoted word in sentence", "a 'quote' b", "a quote b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripQuotesWith(tt.input, BoundaryQuotesOnly); got != tt.want {
				t.Errorf("StripQuotesWith(%q, quotes) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripQuotes_NotIdempotent(t *testing.T) {
	once := StripQuotes("'hello'")
	twice := StripQuotes(once)
	if once != "hello" {
		t.Fatalf("first pass = %q, want %q", once, "hello")
	}
	if twice != "ell" {
		t.Errorf("second pass = %q, want %q", twice, "ell")
	}
}

func TestParseBoundaryPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    BoundaryPolicy
		wantErr bool
	}{
		{"", BoundaryAlways, false},
		{"always", BoundaryAlways, false},
		{"quotes", BoundaryQuotesOnly, false},
		{"quotes_only", BoundaryQuotesOnly, false},
		{"sometimes", BoundaryAlways, true},
	}

	for _, tt := range tests {
		got, err := ParseBoundaryPolicy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBoundaryPolicy(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBoundaryPolicy(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBoundaryPolicy_String(t *testing.T) {
	if BoundaryAlways.String() != "always" {
		t.Errorf("BoundaryAlways.String() = %q", BoundaryAlways.String())
	}
	if BoundaryQuotesOnly.String() != "quotes" {
		t.Errorf("BoundaryQuotesOnly.String() = %q", BoundaryQuotesOnly.String())
	}
	if got := BoundaryPolicy(7).String(); got != "BoundaryPolicy(7)" {
		t.Errorf("unknown policy String() = %q", got)
	}
}
