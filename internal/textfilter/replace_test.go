package textfilter

import "testing"

func TestNormalize_RightSingleQuote(t *testing.T) {
	if got := Normalize("it’s"); got != "it's" {
		t.Errorf("Normalize(%q) = %q, want %q", "it’s", got, "it's")
	}
}

func TestNormalize_ReplacesAllOccurrences(t *testing.T) {
	got := Normalize("don’t won’t can’t")
	want := "don't won't can't"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalize_Untouched(t *testing.T) {
	tests := []string{"", "plain text", "‘left’ stays left", "“double”"}
	want := []string{"", "plain text", "‘left' stays left", "“double”"}
	for i, in := range tests {
		if got := Normalize(in); got != want[i] {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want[i])
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	in := "she’s ‘here’"
	once := Normalize(in)
	if twice := Normalize(once); twice != once {
		t.Errorf("Normalize not idempotent: %q -> %q", once, twice)
	}
}

func TestReplacementTable_OrderMatters(t *testing.T) {
	// 第二条匹配第一条的输出
	table := ReplacementTable{
		{From: "&", To: " and "},
		{From: " and ", To: " + "},
	}
	if got := table.Apply("salt&pepper"); got != "salt + pepper" {
		t.Errorf("Apply = %q, want %q", got, "salt + pepper")
	}

	reversed := ReplacementTable{table[1], table[0]}
	if got := reversed.Apply("salt&pepper"); got != "salt and pepper" {
		t.Errorf("reversed Apply = %q, want %q", got, "salt and pepper")
	}
}

func TestReplacementTable_SkipsEmptyPattern(t *testing.T) {
	table := ReplacementTable{{From: "", To: "x"}}
	if got := table.Apply("abc"); got != "abc" {
		t.Errorf("Apply = %q, want %q", got, "abc")
	}
}

func TestReplacementTable_WithDoesNotMutate(t *testing.T) {
	base := DefaultReplacements
	extended := base.With(Replacement{From: "…", To: "..."})

	if len(base) != 1 {
		t.Fatalf("base table modified: len=%d", len(base))
	}
	if len(extended) != 2 {
		t.Fatalf("extended len = %d, want 2", len(extended))
	}
	if got := extended.Apply("wait… it’s"); got != "wait... it's" {
		t.Errorf("Apply = %q, want %q", got, "wait... it's")
	}
}
