// Package parser turns a raw command line into the token structure the
// dispatcher consumes. It understands quoting, a single "< infile" and
// "> outfile" redirect, a trailing "&", and classifies builtins.
package parser

import (
	"github.com/kballard/go-shellquote"
)

// Result classifies a parsed line.
type Result int

const (
	ResultError Result = iota
	ResultEmpty
	ResultForeground
	ResultBackground
)

// Builtin identifies which builtin, if any, argv[0] names.
type Builtin int

const (
	BuiltinNone Builtin = iota
	BuiltinQuit
	BuiltinJobs
	BuiltinBg
	BuiltinFg
	BuiltinHistory
)

var builtins = map[string]Builtin{
	"quit":    BuiltinQuit,
	"jobs":    BuiltinJobs,
	"bg":      BuiltinBg,
	"fg":      BuiltinFg,
	"history": BuiltinHistory,
}

// Tokens is the structured form of one command line.
type Tokens struct {
	Argv    []string
	Infile  string
	Outfile string
	Builtin Builtin
}

// Parse tokenizes line. A malformed line (bad quoting, redirect with no
// target) yields ResultError and the caller drops it silently.
func Parse(line string) (Result, Tokens) {
	var tok Tokens

	words, err := shellquote.Split(line)
	if err != nil {
		return ResultError, tok
	}
	if len(words) == 0 {
		return ResultEmpty, tok
	}

	background := false
	if words[len(words)-1] == "&" {
		background = true
		words = words[:len(words)-1]
	}

	for i := 0; i < len(words); i++ {
		switch words[i] {
		case "<":
			if i+1 >= len(words) || tok.Infile != "" {
				return ResultError, Tokens{}
			}
			i++
			tok.Infile = words[i]
		case ">":
			if i+1 >= len(words) || tok.Outfile != "" {
				return ResultError, Tokens{}
			}
			i++
			tok.Outfile = words[i]
		default:
			tok.Argv = append(tok.Argv, words[i])
		}
	}

	if len(tok.Argv) == 0 {
		return ResultEmpty, Tokens{}
	}

	tok.Builtin = builtins[tok.Argv[0]]

	if background {
		return ResultBackground, tok
	}
	return ResultForeground, tok
}
