package pragma

import (
	"strings"
)

// Kind tags the variant a classified line belongs to.
type Kind int

const (
	// Plain is ordinary shader content.
	Plain Kind = iota
	// Require inlines another module at this point.
	Require
	// ExportPoint applies the caller's substitutions to the lines collected so far.
	ExportPoint
	// TerminalExport names the module. It only counts on the final line of a file.
	TerminalExport
)

func (k Kind) String() string {
	switch k {
	case Require:
		return "require"
	case ExportPoint:
		return "export"
	case TerminalExport:
		return "terminal-export"
	default:
		return "plain"
	}
}

const (
	glsipyPrefix   = "#pragma glsipy: "
	requireInfix   = " = require("
	exportPrefix   = "#pragma export("
	terminalPrefix = "#pragma glsipy: export("
)

// Line is the result of classifying one line of source.
type Line struct {
	Kind Kind
	// Text is the line exactly as it was read, terminator included.
	Text string
	// Alias is the name on the left of a require.
	Alias string
	// Args is the raw argument list of a require, before any splitting.
	Args string
	// Name is the argument of an export point, or the whitespace-free module
	// name of a terminal export.
	Name string
}

// Classify matches a line against the three pragma forms. It never fails;
// anything unrecognised comes back as Plain.
func Classify(text string) Line {
	body := strings.TrimRight(text, "\r\n")

	if strings.HasPrefix(body, glsipyPrefix) {
		if alias, args, ok := matchRequire(body[len(glsipyPrefix):]); ok {
			return Line{Kind: Require, Text: text, Alias: alias, Args: args}
		}
		if strings.HasPrefix(body, terminalPrefix) {
			if arg, ok := callArgument(body[len(terminalPrefix):]); ok {
				return Line{Kind: TerminalExport, Text: text, Name: stripSpace(arg)}
			}
		}
		return Line{Kind: Plain, Text: text}
	}

	if strings.HasPrefix(body, exportPrefix) {
		if arg, ok := callArgument(body[len(exportPrefix):]); ok {
			return Line{Kind: ExportPoint, Text: text, Name: arg}
		}
	}

	return Line{Kind: Plain, Text: text}
}

// matchRequire finds the shortest non-empty alias followed by " = require("
// whose argument list parses.
func matchRequire(s string) (alias, args string, ok bool) {
	for from := 1; from < len(s); {
		idx := strings.Index(s[from:], requireInfix)
		if idx < 0 {
			return "", "", false
		}
		at := from + idx
		if arg, found := callArgument(s[at+len(requireInfix):]); found {
			return strings.TrimSpace(s[:at]), arg, true
		}
		from = at + 1
	}
	return "", "", false
}

// callArgument extracts a call argument from s, which starts right after the
// opening parenthesis. The quote styles are tried in order: 'x'), "x"), x).
// Each ends at the first closing sequence and needs at least one character.
func callArgument(s string) (string, bool) {
	for _, quote := range []string{"'", `"`} {
		if !strings.HasPrefix(s, quote) || len(s) < 2 {
			continue
		}
		if end := strings.Index(s[2:], quote+")"); end >= 0 {
			return s[1 : 2+end], true
		}
	}
	if len(s) < 2 {
		return "", false
	}
	end := strings.Index(s[1:], ")")
	if end < 0 {
		return "", false
	}
	return s[:1+end], true
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
