package console

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"whitespace", " \t ", []string{}},
		{"single word", "help", []string{"help"}},
		{"words", "set  player\thealth 10", []string{"set", "player", "health", "10"}},
		{"double quotes", `a "b c" d`, []string{"a", "b c", "d"}},
		{"single quotes", `print 'hello   world'`, []string{"print", "hello   world"}},
		{"mixed quotes", `x "it's" 'say "hi"'`, []string{"x", "it's", `say "hi"`}},
		{"empty quotes", `a "" b`, []string{"a", "b"}},
		{"unterminated", `print "hello world`, []string{"print", "hello world"}},
		{"unterminated empty", `print "`, []string{"print"}},
		{"quote splits word", `ab"c d"e`, []string{"ab", "c d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenize_Idempotent(t *testing.T) {
	for _, word := range []string{"help", "x", "config"} {
		first := Tokenize(word)
		second := Tokenize(strings.Join(first, " "))
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Tokenize not idempotent for %q:\n%s", word, diff)
		}
	}
}

func TestAliasTable(t *testing.T) {
	a := NewAliasTable()
	a.Add("HP", "Player Health")
	a.Add("me", "player alice")

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"replaces arguments", []string{"get", "hp"}, []string{"get", "player", "health"}},
		{"never replaces command word", []string{"hp", "me"}, []string{"hp", "player", "alice"}},
		{"words match keys in any case", []string{"get", "HP", "Me"}, []string{"get", "player", "health", "player", "alice"}},
		{"partial words are kept", []string{"get", "HPX"}, []string{"get", "HPX"}},
		{"empty", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]string(nil), tt.input...)
			got := a.Resolve(in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.input, in); diff != "" {
				t.Errorf("Resolve() mutated its input:\n%s", diff)
			}
		})
	}
}

func TestAliasTable_NotRecursive(t *testing.T) {
	a := NewAliasTable()
	a.Add("a", "b")
	a.Add("b", "c")

	got := a.Resolve([]string{"print", "a"})
	if diff := cmp.Diff([]string{"print", "b"}, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestAliasTable_ListLookupRemove(t *testing.T) {
	a := NewAliasTable()
	a.Add("z", "last")
	a.Add("A", `"quoted words" x`)

	list := a.List()
	if len(list) != 2 || list[0].Key != "a" || list[1].Key != "z" {
		t.Fatalf("List() = %+v", list)
	}

	words, ok := a.Lookup("A")
	if !ok || !cmp.Equal(words, []string{"quoted words", "x"}) {
		t.Errorf("Lookup() = %v, %v", words, ok)
	}

	if !a.Remove("Z") || a.Remove("z") {
		t.Error("Remove() should succeed once")
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
}

func TestValidateArgs(t *testing.T) {
	history := []Usage{
		{Description: "show"},
		{Parameters: []string{"index"}},
		{Subcommand: "clear"},
		{Subcommand: "max", Parameters: []string{"max"}},
	}
	print := []Usage{{Parameters: []string{"value1", "value2", "..."}}}
	debug := []Usage{
		{Subcommand: "clear", Parameters: []string{"slot"}},
		{Parameters: []string{"type", "instance", "field", "title"}},
		{Parameters: []string{"type", "instance", "field", "title", "x"}},
	}

	tests := []struct {
		name   string
		n      int
		usages []Usage
		ok     bool
	}{
		{"history none", 0, history, true},
		{"history one", 1, history, true},
		{"history two", 2, history, true},
		{"history three", 3, history, false},
		{"print none", 0, print, false},
		{"print one", 1, print, true},
		{"print many", 9, print, true},
		{"variadic marker in brackets", 3, []Usage{{Parameters: []string{"<...>"}}}, true},
		{"debug one", 1, debug, false},
		{"debug two", 2, debug, true},
		{"debug four", 4, debug, true},
		{"debug five", 5, debug, true},
		{"no usages", 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArgs(tt.n, tt.usages)
			if (err == nil) != tt.ok {
				t.Fatalf("ValidateArgs(%d) error = %v, want ok %v", tt.n, err, tt.ok)
			}
			if err != nil && !HasKind(err, KindArity) {
				t.Errorf("error kind = %v, want %v", err, KindArity)
			}
		})
	}
}

func TestHelp_Render(t *testing.T) {
	h := Help{
		Name:        "History",
		Description: "allows for seeing history",
		Usages: []Usage{
			{Description: "shows the history"},
			{Parameters: []string{"index"}, Description: "sets line"},
			{Subcommand: "max", Parameters: []string{"<max>"}, Description: "Sets max."},
		},
	}

	want := strings.Join([]string{
		"history (hist, history)",
		"======================",
		"Allows for seeing history.",
		"",
		"Usages:",
		"history           : Shows the history.",
		"history <index>   : Sets line.",
		"history max <max> : Sets max.",
	}, "\n")

	if got := h.Render([]string{"hist", "history"}); got != want {
		t.Errorf("Render() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestUsage_LineVariadic(t *testing.T) {
	u := Usage{Parameters: []string{"value1", "value2", "..."}}
	if got, want := u.Line("PRINT"), "print <value1> <value2> ..."; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestHelp_Valid(t *testing.T) {
	usages := []Usage{{Description: "x"}}
	tests := []struct {
		name string
		help Help
		ok   bool
	}{
		{"complete", Help{Name: "n", Description: "d", Usages: usages}, true},
		{"no name", Help{Description: "d", Usages: usages}, false},
		{"no description", Help{Name: "n", Usages: usages}, false},
		{"no usages", Help{Name: "n", Description: "d"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.help.Valid(); (err == nil) != tt.ok {
				t.Errorf("Valid() = %v, want ok %v", err, tt.ok)
			}
		})
	}
}

func TestSentence(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"hello":      "Hello.",
		"  done.  ":  "Done.",
		"really?":    "Really?",
		"élan vital": "Élan vital.",
	}
	for in, want := range tests {
		if got := Sentence(in); got != want {
			t.Errorf("Sentence(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)

	if h.Add("") || h.Add("   ") {
		t.Error("Add() accepted an empty line")
	}
	h.Add("a")
	if h.Add("a") {
		t.Error("Add() accepted a repeat of the latest entry")
	}
	h.Add("b")
	h.Add("a")
	h.Add("c")

	if diff := cmp.Diff([]string{"c", "a", "b"}, h.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	if got, ok := h.At(1); !ok || got != "a" {
		t.Errorf("At(1) = %q, %v, want a", got, ok)
	}
	if _, ok := h.At(3); ok {
		t.Error("At(3) should be out of range")
	}
	if _, ok := h.At(-1); ok {
		t.Error("At(-1) should be out of range")
	}

	if h.SetMax(-1) {
		t.Error("SetMax(-1) = true")
	}
	if !h.SetMax(1) || h.Len() != 1 || h.Max() != 1 {
		t.Errorf("SetMax(1): Len = %d, Max = %d", h.Len(), h.Max())
	}

	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len() after Clear = %d", h.Len())
	}

	h.SetMax(0)
	h.Add("x")
	if h.Len() != 0 {
		t.Errorf("Len() with max 0 = %d", h.Len())
	}
}

func TestFormatter_Plain(t *testing.T) {
	f := NewFormatter(true)

	if got := f.Error("boom"); got != "[Error] boom" {
		t.Errorf("Error() = %q", got)
	}
	if got := f.Warning("careful"); got != "[Warning] careful" {
		t.Errorf("Warning() = %q", got)
	}
	if got := f.Log("note"); got != "[Log] note" {
		t.Errorf("Log() = %q", got)
	}
	if got := f.Color("x", ColorGreen); got != "x" {
		t.Errorf("Color() = %q", got)
	}
}

func TestFormatter_Styled(t *testing.T) {
	f := NewFormatter(false)
	if got := f.Error("boom"); !strings.Contains(got, "[Error]") || !strings.HasSuffix(got, " boom") {
		t.Errorf("Error() = %q", got)
	}
}

func TestFormatter_Align(t *testing.T) {
	f := NewFormatter(true)
	got := f.Align([]string{"help  shows help", "history   lists   entries", ""})
	want := []string{"help    shows help", "history lists entries", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Align() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromLines(t *testing.T) {
	if got := FromLines([]string{"a", "b"}, "head\n", false); got != "head\na\nb\n" {
		t.Errorf("FromLines() = %q", got)
	}
	if got := FromLines(nil, "", true); got != "\n" {
		t.Errorf("FromLines() = %q", got)
	}
}
