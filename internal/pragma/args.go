package pragma

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedSubstitution is returned when a require parameter is not a
// single key=value pair.
var ErrMalformedSubstitution = errors.New("malformed substitution")

var quoteStripper = strings.NewReplacer(`"`, "", "'", "")

// Substitution is one literal find/replace pair declared on a require.
type Substitution struct {
	Key   string
	Value string
}

// RequireArgs is the parsed argument list of a require pragma.
type RequireArgs struct {
	Path          string
	Substitutions []Substitution
}

// ParseRequireArgs splits a raw require argument list. The first element is
// the module path with its quote characters removed; the rest are key=value
// pairs with all whitespace removed. A repeated key keeps its first position
// and takes its last value.
func ParseRequireArgs(args string) (RequireArgs, error) {
	parts := strings.Split(args, ",")
	parsed := RequireArgs{Path: quoteStripper.Replace(parts[0])}

	index := make(map[string]int)
	for _, part := range parts[1:] {
		pair := stripSpace(part)
		kv := strings.Split(pair, "=")
		if len(kv) != 2 {
			return RequireArgs{}, fmt.Errorf("%w: %q in require(%s)", ErrMalformedSubstitution, pair, args)
		}
		if i, seen := index[kv[0]]; seen {
			parsed.Substitutions[i].Value = kv[1]
			continue
		}
		index[kv[0]] = len(parsed.Substitutions)
		parsed.Substitutions = append(parsed.Substitutions, Substitution{Key: kv[0], Value: kv[1]})
	}

	return parsed, nil
}

// Apply replaces every literal occurrence of each key in every line, in
// declaration order. The replacement is textual and does not respect token
// boundaries: a key that also appears inside an unrelated identifier is
// replaced there too.
func Apply(lines []string, subs []Substitution) []string {
	if len(subs) == 0 {
		return lines
	}
	for i, line := range lines {
		for _, s := range subs {
			line = strings.ReplaceAll(line, s.Key, s.Value)
		}
		lines[i] = line
	}
	return lines
}
