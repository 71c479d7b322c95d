package tts

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSentenceSpans(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Hello. World", []string{"Hello.", " World"}},
		{"Hello! World", []string{"Hello!", " World"}},
		{"semi; colon", []string{"semi;", " colon"}},
		{"First. Second. Third.", []string{"First.", " Second.", " Third."}},
		{"pi is 3.14 ok", []string{"pi is 3.14 ok"}},
		{"wow!!! yes", []string{"wow!!!", " yes"}},
		{"no sentence ending here", []string{"no sentence ending here"}},
		{"", nil},
	}

	for _, tt := range tests {
		var got []string
		for _, s := range sentenceSpans(tt.input, span{0, len(tt.input)}) {
			got = append(got, tt.input[s.start:s.end])
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("sentenceSpans(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitChunks_ShortTextUnchanged(t *testing.T) {
	got := splitChunks("  Hello there.  ", 100)
	if len(got) != 1 || got[0] != "Hello there." {
		t.Errorf("splitChunks = %q", got)
	}
	if got := splitChunks("   ", 10); got != nil {
		t.Errorf("blank text should give nil, got %q", got)
	}
}

func TestSplitChunks_MergesSentences(t *testing.T) {
	got := splitChunks("One. Two. Three. Four.", 10)
	want := []string{"One. Two.", "Three.", "Four."}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("splitChunks = %q, want %q", got, want)
	}
}

func TestSplitChunks_LongSentence(t *testing.T) {
	text := "this sentence has no terminator and is rather long"
	for _, c := range splitChunks(text, 12) {
		if n := utf8.RuneCountInString(c); n > 12 {
			t.Errorf("chunk %q has %d chars, limit 12", c, n)
		}
	}
	if got := strings.Join(splitChunks(text, 12), " "); got != text {
		t.Errorf("rejoined = %q, want %q", got, text)
	}
}

func TestSplitChunks_HardSplitsLongWord(t *testing.T) {
	got := splitChunks("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("splitChunks = %q, want %q", got, want)
	}
}

func TestSplitChunks_Disabled(t *testing.T) {
	text := "One. Two. Three."
	if got := splitChunks(text, 0); len(got) != 1 || got[0] != text {
		t.Errorf("maxChars=0 should not split, got %q", got)
	}
}

func TestSplitChunks_KeepsDecimalsAndRuns(t *testing.T) {
	got := splitChunks("It costs 3.50 today. Wow!!! Fine.", 20)
	want := []string{"It costs 3.50 today.", "Wow!!! Fine."}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("splitChunks = %q, want %q", got, want)
	}
}

func TestSplitChunks_MergesSymbolOnlyChunks(t *testing.T) {
	tests := []struct {
		input    string
		maxChars int
		want     []string
	}{
		{"Hello. !!! ... ?? Bye.", 8, []string{"Hello. !!! ...", "?? Bye."}},
		{"... Hi there.", 5, []string{"... Hi", "there."}},
		{"!!! ??? ...", 4, []string{"!!! ??? ..."}},
	}

	for _, tt := range tests {
		got := splitChunks(tt.input, tt.maxChars)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("splitChunks(%q, %d) = %q, want %q", tt.input, tt.maxChars, got, tt.want)
		}
	}
}

func TestSplitChunks_NoInsertedCharacters(t *testing.T) {
	text := "One.  Two!\tThree? Four; five six seven."
	for _, c := range splitChunks(text, 6) {
		if !strings.Contains(text, c) {
			t.Errorf("chunk %q is not a slice of the input", c)
		}
	}
}
