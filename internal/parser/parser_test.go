package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		result Result
		tokens Tokens
	}{
		{
			name:   "empty line",
			line:   "",
			result: ResultEmpty,
		},
		{
			name:   "whitespace only",
			line:   "   \t  ",
			result: ResultEmpty,
		},
		{
			name:   "simple foreground",
			line:   "/bin/echo hello world",
			result: ResultForeground,
			tokens: Tokens{Argv: []string{"/bin/echo", "hello", "world"}},
		},
		{
			name:   "background",
			line:   "sleep 5 &",
			result: ResultBackground,
			tokens: Tokens{Argv: []string{"sleep", "5"}},
		},
		{
			name:   "input redirect",
			line:   "wc -l < in.txt",
			result: ResultForeground,
			tokens: Tokens{Argv: []string{"wc", "-l"}, Infile: "in.txt"},
		},
		{
			name:   "output redirect",
			line:   "echo hi > out.txt",
			result: ResultForeground,
			tokens: Tokens{Argv: []string{"echo", "hi"}, Outfile: "out.txt"},
		},
		{
			name:   "both redirects background",
			line:   "sort < in > out &",
			result: ResultBackground,
			tokens: Tokens{Argv: []string{"sort"}, Infile: "in", Outfile: "out"},
		},
		{
			name:   "quoted argument keeps spaces",
			line:   `echo "two words"`,
			result: ResultForeground,
			tokens: Tokens{Argv: []string{"echo", "two words"}},
		},
		{
			name:   "unterminated quote",
			line:   `echo "oops`,
			result: ResultError,
		},
		{
			name:   "redirect without target",
			line:   "cat <",
			result: ResultError,
		},
		{
			name:   "only redirects no command",
			line:   "> out",
			result: ResultEmpty,
		},
		{
			name:   "jobs builtin with redirect",
			line:   "jobs > jobs.txt",
			result: ResultForeground,
			tokens: Tokens{Argv: []string{"jobs"}, Outfile: "jobs.txt", Builtin: BuiltinJobs},
		},
		{
			name:   "quit builtin",
			line:   "quit",
			result: ResultForeground,
			tokens: Tokens{Argv: []string{"quit"}, Builtin: BuiltinQuit},
		},
		{
			name:   "bg builtin with jid",
			line:   "bg %1",
			result: ResultForeground,
			tokens: Tokens{Argv: []string{"bg", "%1"}, Builtin: BuiltinBg},
		},
		{
			name:   "fg builtin with pid",
			line:   "fg 1234",
			result: ResultForeground,
			tokens: Tokens{Argv: []string{"fg", "1234"}, Builtin: BuiltinFg},
		},
		{
			name:   "builtin name as argument is not a builtin",
			line:   "echo jobs",
			result: ResultForeground,
			tokens: Tokens{Argv: []string{"echo", "jobs"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, tokens := Parse(tc.line)
			assert.Equal(t, tc.result, result)
			if tc.result == ResultForeground || tc.result == ResultBackground {
				assert.Equal(t, tc.tokens, tokens)
			}
		})
	}
}
