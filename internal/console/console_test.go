package console

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/devconsole/internal/objects"
	"github.com/msto63/devconsole/pkg/core/config"
)

// fakeCommand is a configurable command for dispatch tests
type fakeCommand struct {
	words []string
	help  Help
	raw   bool
	run   func(inv *Invocation) error

	calls int
	args  []string
}

func (f *fakeCommand) Words() []string { return f.words }
func (f *fakeCommand) Help() Help      { return f.help }
func (f *fakeCommand) RawArgs() bool   { return f.raw }

func (f *fakeCommand) Execute(inv *Invocation) error {
	f.calls++
	f.args = append([]string(nil), inv.Args...)
	if f.run != nil {
		return f.run(inv)
	}
	return nil
}

func echoCommand() *fakeCommand {
	return &fakeCommand{
		words: []string{"echo", "say"},
		help: Help{
			Name:        "Echo",
			Description: "prints its arguments",
			Usages:      []Usage{{Parameters: []string{"value", Variadic}}},
		},
		run: func(inv *Invocation) error {
			inv.Print(strings.Join(inv.Args, " "))
			return nil
		},
	}
}

func fixedCommand(words ...string) *fakeCommand {
	return &fakeCommand{
		words: words,
		help: Help{
			Name:        words[0],
			Description: "takes one argument",
			Usages:      []Usage{{Parameters: []string{"x"}}},
		},
	}
}

func newTestConsole(cmds ...Command) *Console {
	return New(Options{Commands: cmds, MaxHistory: DefaultMaxHistory, Formatter: NewFormatter(true)})
}

func TestProcessLine(t *testing.T) {
	echo := echoCommand()
	fail := fixedCommand("fail")
	fail.run = func(inv *Invocation) error { return inv.Failf("Nothing to do with %s.", inv.Args[0]) }
	plain := fixedCommand("plain")
	plain.run = func(inv *Invocation) error { return errors.New("wrapped cause") }
	boom := fixedCommand("boom")
	boom.run = func(inv *Invocation) error { panic("kaboom") }
	broken := &fakeCommand{words: []string{"broken"}, help: Help{Name: "broken"}}

	c := newTestConsole(echo, fail, plain, boom, broken)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "   ", ""},
		{"echo", "echo hello world", "hello world"},
		{"echo mixed case word", "SAY Hi", "Hi"},
		{"quoted", `echo "a  b" c`, "a  b c"},
		{"unrecognized", "jump high", "[Error] Unrecognized command jump."},
		{"arity", "echo", "[Error] Incorrect number of arguments for command echo."},
		{"fixed arity", "fail a b", "[Error] Incorrect number of arguments for command fail."},
		{"command failure", "fail x", "[Error] Nothing to do with x."},
		{"plain error", "plain x", "[Error] wrapped cause"},
		{"panic", "boom x", "[Error] Command boom failed: kaboom"},
		{"uninitialized", "broken", "[Error] The help block for command broken is uninitialized."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ProcessLine(tt.input); got != tt.want {
				t.Errorf("ProcessLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	if broken.calls != 0 {
		t.Errorf("command with incomplete help executed %d times", broken.calls)
	}
}

func TestDispatch_Kinds(t *testing.T) {
	fail := fixedCommand("fail")
	fail.run = func(inv *Invocation) error { return errors.New("x") }
	reflect := fixedCommand("look")
	reflect.run = func(inv *Invocation) error {
		return inv.Accessor().GetField("ghost", "x", "").Err()
	}

	c := newTestConsole(fail, reflect)

	tests := []struct {
		input string
		kind  Kind
		msg   string
	}{
		{"nothing", KindUnrecognizedCommand, "Unrecognized command nothing."},
		{"fail", KindArity, "Incorrect number of arguments for command fail."},
		{"fail 1", KindCommandFailure, "x"},
		{"look 1", KindReflection, "Type ghost is not a valid object type."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := c.Dispatch(tt.input, DispatchOptions{})
			if !HasKind(err, tt.kind) {
				t.Fatalf("Dispatch(%q) error = %v, want kind %s", tt.input, err, tt.kind)
			}
			if err.Error() != tt.msg {
				t.Errorf("Dispatch(%q) error = %q, want %q", tt.input, err, tt.msg)
			}
			if !errors.Is(err, &Error{Kind: tt.kind}) {
				t.Errorf("errors.Is() = false for kind %s", tt.kind)
			}
		})
	}
}

func TestDispatch_History(t *testing.T) {
	c := newTestConsole(echoCommand())

	c.ProcessLine("echo one")
	c.ProcessLine("  echo two  ")
	c.ProcessLine("unknown")
	c.ProcessLine("")
	c.Process("echo hidden", DispatchOptions{NoHistory: true})

	want := []string{"unknown", "echo two", "echo one"}
	if diff := cmp.Diff(want, c.History().Entries()); diff != "" {
		t.Errorf("History mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatch_HistoryVisibleToCommand(t *testing.T) {
	var recalled string
	recall := fixedCommand("recall")
	recall.run = func(inv *Invocation) error {
		n, err := ParseInt(inv.Args[0])
		if err != nil {
			return err
		}
		line, ok := inv.Recall(n)
		if !ok {
			return inv.Fail("out of range")
		}
		recalled = line
		inv.Console.SetBufferedLine(line)
		return nil
	}

	c := newTestConsole(echoCommand(), recall)
	c.ProcessLine("echo first")
	c.ProcessLine("echo second")

	if out := c.ProcessLine("recall 1"); out != "" {
		t.Fatalf("ProcessLine() = %q", out)
	}
	if recalled != "echo first" {
		t.Errorf("recalled = %q, want %q", recalled, "echo first")
	}
	line, ok := c.TakeBufferedLine()
	if !ok || line != "echo first" {
		t.Errorf("TakeBufferedLine() = %q, %v", line, ok)
	}
	if _, ok := c.TakeBufferedLine(); ok {
		t.Error("TakeBufferedLine() returned the line twice")
	}

	if out := c.ProcessLine("recall x"); out != "[Error] The argument x could not be cast to the correct type." {
		t.Errorf("ProcessLine() = %q", out)
	}
}

func TestDispatch_Aliases(t *testing.T) {
	echo := echoCommand()
	raw := &fakeCommand{
		words: []string{"raw"},
		raw:   true,
		help: Help{
			Name:        "raw",
			Description: "keeps its arguments",
			Usages:      []Usage{{Parameters: []string{"a", "b"}}},
		},
	}

	c := newTestConsole(echo, raw)
	c.Aliases().Add("hp", "player health")
	c.Aliases().Add("echo", "nope")

	if got := c.ProcessLine("echo hp now"); got != "player health now" {
		t.Errorf("ProcessLine() = %q", got)
	}
	if got := c.ProcessLine("echo echo"); got != "nope" {
		t.Errorf("ProcessLine() = %q", got)
	}

	// arity is checked after substitution; raw commands see the key itself
	if got := c.ProcessLine("raw hp x"); got != "" {
		t.Errorf("ProcessLine() = %q", got)
	}
	if diff := cmp.Diff([]string{"hp", "x"}, raw.args); diff != "" {
		t.Errorf("raw args mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatch_OutputIsPerInvocation(t *testing.T) {
	c := newTestConsole(echoCommand())
	if got := c.ProcessLine("echo a"); got != "a" {
		t.Fatalf("ProcessLine() = %q", got)
	}
	if got := c.ProcessLine("echo b"); got != "b" {
		t.Errorf("ProcessLine() = %q, want %q", got, "b")
	}
}

func TestConsole_HostHooks(t *testing.T) {
	c := newTestConsole()

	// no hooks installed
	c.RequestClear()
	c.RequestExit()

	var cleared, exited bool
	c.OnClear(func() { cleared = true })
	c.OnExit(func() { exited = true })
	c.RequestClear()
	c.RequestExit()

	if !cleared || !exited {
		t.Errorf("cleared = %v, exited = %v", cleared, exited)
	}
}

func TestConsole_Diagnostics(t *testing.T) {
	first := fixedCommand("first", "go")
	second := fixedCommand("second", "GO")

	c := newTestConsole(first, second)

	want := []string{"Commands first and second both use 'go' as an invoking command word."}
	if diff := cmp.Diff(want, c.Diagnostics()); diff != "" {
		t.Errorf("Diagnostics() mismatch (-want +got):\n%s", diff)
	}
	if c.Registry().Find("go") != second {
		t.Error("later registration should own the word")
	}
	if diff := cmp.Diff([]string{"first"}, c.Registry().Words(first)); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}
	if n := len(c.Registry().Commands()); n != 2 {
		t.Errorf("Commands() len = %d, want 2", n)
	}
}

func TestRegistry_RegisterTwice(t *testing.T) {
	cmd := fixedCommand("one", "uno")
	r := NewRegistry(nil, cmd, cmd)

	if n := len(r.Commands()); n != 1 {
		t.Errorf("Commands() len = %d, want 1", n)
	}
	if n := len(r.Diagnostics()); n != 0 {
		t.Errorf("Diagnostics() len = %d, want 0", n)
	}
	if r.Find("UNO") != cmd {
		t.Error("Find() is not case-insensitive")
	}
}

func TestRunScript(t *testing.T) {
	echo := echoCommand()
	c := newTestConsole(echo)

	script := strings.Join([]string{
		"// setup",
		"echo one   // trailing comment",
		"",
		"   ",
		"echo two\r",
		"nothing here",
		"echo",
	}, "\n")

	got := c.RunScript(script)
	want := []string{
		"one",
		"two",
		"[Error] Unrecognized command nothing.",
		"[Error] Incorrect number of arguments for command echo.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RunScript() mismatch (-want +got):\n%s", diff)
	}
	if c.History().Len() != 0 {
		t.Errorf("script lines entered history: %v", c.History().Entries())
	}
}

func TestRunScriptFile(t *testing.T) {
	dir := t.TempDir()

	run := fixedCommand("run")
	run.run = func(inv *Invocation) error {
		out, err := inv.Console.RunScriptFile(filepath.Join(dir, inv.Args[0]))
		if err != nil {
			return inv.Fail(err.Error())
		}
		inv.Print(strings.Join(out, "\n"))
		return nil
	}

	c := newTestConsole(echoCommand(), run)

	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("inner.txt", "echo inner")
	write("outer.txt", "echo outer\nrun inner.txt")
	write("loop.txt", "run loop.txt")

	out, err := c.RunScriptFile(filepath.Join(dir, "outer.txt"))
	if err != nil {
		t.Fatalf("RunScriptFile() error = %v", err)
	}
	if diff := cmp.Diff([]string{"outer", "inner"}, out); diff != "" {
		t.Errorf("RunScriptFile() mismatch (-want +got):\n%s", diff)
	}

	got := c.ProcessLine("run loop.txt")
	limit := fmt.Sprintf("Script nesting is limited to %d levels.", MaxScriptDepth)
	if !strings.Contains(got, limit) {
		t.Errorf("ProcessLine() = %q, want nesting limit", got)
	}
	if c.scriptDepth != 0 {
		t.Errorf("scriptDepth = %d after run", c.scriptDepth)
	}

	if _, err := c.RunScriptFile(filepath.Join(dir, "missing.txt")); err == nil || !strings.HasPrefix(err.Error(), "Could not read script") {
		t.Errorf("RunScriptFile() error = %v", err)
	}
}

func TestWatches(t *testing.T) {
	w := NewWatches()

	if err := w.Set(8, "x", nil); err == nil || err.Error() != "Index 8 is invalid. Only 0-7 are allowed." {
		t.Errorf("Set(8) error = %v", err)
	}
	if err := w.Clear(-1); err == nil {
		t.Error("Clear(-1) expected error")
	}

	n := 0
	_ = w.Set(3, "counter", func() (string, error) { n++; return fmt.Sprint(n), nil })
	_ = w.Set(1, "broken", func() (string, error) { return "", errors.New("No instance of type x was found.") })

	want := []string{"broken: No instance of type x was found.", "counter: 1"}
	if diff := cmp.Diff(want, w.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
	if got := w.Render()[1]; got != "counter: 2" {
		t.Errorf("Render() re-evaluated = %q", got)
	}

	_ = w.Clear(1)
	if w.Used() != 1 {
		t.Errorf("Used() = %d, want 1", w.Used())
	}
}

func TestConsole_DefaultsAndStore(t *testing.T) {
	store := objects.NewRegistry(nil)
	c := New(Options{Store: store, MaxHistory: -1})

	if c.Store() != objects.Store(store) {
		t.Error("Store() did not return the configured store")
	}
	if c.History().Max() != DefaultMaxHistory {
		t.Errorf("History().Max() = %d, want %d", c.History().Max(), DefaultMaxHistory)
	}
	if c.Formatter().Plain() {
		t.Error("default formatter should be styled")
	}
	if c.Logger() == nil || c.Accessor() == nil || c.Watches() == nil {
		t.Error("console is missing components")
	}
}

func TestNew_HistoryCapacity(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"zero keeps no history", Options{MaxHistory: 0}, 0},
		{"negative selects default", Options{MaxHistory: -1}, DefaultMaxHistory},
		{"explicit", Options{MaxHistory: 5}, 5},
		{"settings win", Options{MaxHistory: 9, Settings: &config.ConsoleConfig{MaxHistory: 0}}, 0},
		{"settings", Options{Settings: &config.ConsoleConfig{MaxHistory: 3}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.opts)
			if got := c.History().Max(); got != tt.want {
				t.Errorf("History().Max() = %d, want %d", got, tt.want)
			}
		})
	}

	c := New(Options{MaxHistory: 0, Commands: []Command{echoCommand()}})
	c.ProcessLine("echo one")
	if c.History().Len() != 0 {
		t.Errorf("history with capacity 0 holds %v", c.History().Entries())
	}
}

func TestApplySettings(t *testing.T) {
	settings := &config.ConsoleConfig{MaxHistory: 10}

	limit := fixedCommand("limit")
	limit.run = func(inv *Invocation) error {
		n, err := ParseInt(inv.Args[0])
		if err != nil {
			return err
		}
		inv.Console.Settings().MaxHistory = n
		return nil
	}
	setMax := fixedCommand("setmax")
	setMax.run = func(inv *Invocation) error {
		n, err := ParseInt(inv.Args[0])
		if err != nil {
			return err
		}
		inv.Console.History().SetMax(n)
		return nil
	}

	c := New(Options{Commands: []Command{echoCommand(), limit, setMax}, Settings: settings})
	c.ProcessLine("echo a")
	c.ProcessLine("limit 1")
	c.ProcessLine("echo b")
	c.ProcessLine("echo c")

	if got := c.History().Max(); got != 1 {
		t.Errorf("History().Max() after limit = %d, want 1", got)
	}
	if diff := cmp.Diff([]string{"echo c"}, c.History().Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	c.ProcessLine("setmax 4")
	c.ProcessLine("echo d")
	if got := c.History().Max(); got != 4 {
		t.Errorf("History().Max() = %d, want 4 kept from setmax", got)
	}

	settings.MaxHistory = 2
	c.RunScript("echo e")
	if got := c.History().Max(); got != 2 {
		t.Errorf("History().Max() after script = %d, want 2", got)
	}

	settings.MaxHistory = -3
	c.ProcessLine("echo f")
	if got := c.History().Max(); got != 2 {
		t.Errorf("History().Max() = %d, negative setting must be ignored", got)
	}
}

func TestInvocation_Recall(t *testing.T) {
	recall := fixedCommand("recall")
	recall.run = func(inv *Invocation) error {
		n, err := ParseInt(inv.Args[0])
		if err != nil {
			return err
		}
		line, ok := inv.Recall(n)
		if !ok {
			return inv.Fail("out of range")
		}
		inv.Console.SetBufferedLine(line)
		return nil
	}

	tests := []struct {
		name string
		run  func(c *Console) string
		want string
	}{
		{"typed line skips itself", func(c *Console) string { return c.ProcessLine("recall 0") }, "echo second"},
		{"script line is not in history", func(c *Console) string {
			return strings.Join(c.RunScript("recall 0"), "\n")
		}, "echo second"},
		{"script line index 1", func(c *Console) string {
			return strings.Join(c.RunScript("recall 1"), "\n")
		}, "echo first"},
		{"repeated line skips itself", func(c *Console) string {
			c.ProcessLine("recall 0")
			c.TakeBufferedLine()
			return c.ProcessLine("recall 0")
		}, "echo second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConsole(echoCommand(), recall)
			c.ProcessLine("echo first")
			c.ProcessLine("echo second")

			if out := tt.run(c); out != "" {
				t.Fatalf("output = %q", out)
			}
			line, ok := c.TakeBufferedLine()
			if !ok || line != tt.want {
				t.Errorf("buffered line = %q, %v, want %q", line, ok, tt.want)
			}
		})
	}
}
