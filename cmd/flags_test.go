package cmd

import (
	"flag"
	"testing"

	"github.com/masmgr/topoorder-go/internal/output"
	"github.com/urfave/cli/v2"
)

func TestGetOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  output.OutputFormat
	}{
		{input: "json", want: output.FormatJSON},
		{input: "console", want: output.FormatConsole},
		{input: "text", want: output.FormatText},
		{input: "", want: output.FormatText},
		{input: "unknown", want: output.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := getOutputFormat(tt.input); got != tt.want {
				t.Fatalf("getOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func newTestContext(t *testing.T, repoFlag string, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("repo", ".", "")
	if repoFlag != "" {
		if err := set.Set("repo", repoFlag); err != nil {
			t.Fatalf("set repo flag: %v", err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	return cli.NewContext(nil, set, nil)
}

func TestRepoPathFromContext(t *testing.T) {
	tests := []struct {
		name     string
		repoFlag string
		args     []string
		expected string
	}{
		{name: "Default is working directory", expected: "."},
		{name: "Repo flag", repoFlag: "/some/repo", expected: "/some/repo"},
		{name: "Positional argument", args: []string{"/arg/repo"}, expected: "/arg/repo"},
		{name: "Positional wins over flag", repoFlag: "/some/repo", args: []string{"/arg/repo"}, expected: "/arg/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, tt.repoFlag, tt.args...)
			if got := repoPathFromContext(c); got != tt.expected {
				t.Fatalf("repoPathFromContext = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestApp_CommandWiring(t *testing.T) {
	app := App()

	expected := []string{"order", "branches", "check"}
	for _, name := range expected {
		if app.Command(name) == nil {
			t.Errorf("command %q not registered", name)
		}
	}
}
