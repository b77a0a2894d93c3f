package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var out bytes.Buffer
	r := &CIReporter{Task: "Exporting pages", Out: &out}
	r.Start(2)
	r.Update(1, "index.html")
	r.Update(2, "article/a1/index.html")
	r.Finish()

	want := "Exporting pages: 2 items\n[1/2] index.html\n[2/2] article/a1/index.html\nExporting pages: done\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("x").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter("x").(*TerminalReporter); !ok {
		t.Error("expected TerminalReporter outside CI")
	}
}
