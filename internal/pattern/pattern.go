// Package pattern compiles sweeptext line patterns into matchers.
//
// A pattern is either a regex (written /like this/, or recognized by
// the ^ and $ anchors or a {name} placeholder) or a glob, where * and
// ? are wildcards. Placeholders are expanded textually before the
// string reaches the regex engine: {tag} becomes (?P<tag>.+?)\b, a
// non-greedy named capture stopped at a word boundary (one character
// minimum, so a trailing placeholder captures the following word
// instead of the empty string). Everything around placeholders is
// passed to the engine uninterpreted.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/termfx/sweeptext/internal/model"
)

// Kind discriminates the two pattern syntaxes.
type Kind string

const (
	KindGlob  Kind = "glob"
	KindRegex Kind = "regex"
)

// placeholderRe finds {name} tokens. The name must start with a
// letter so regex repetition counts like {3} are never clobbered.
var placeholderRe = regexp.MustCompile(`\{([a-zA-Z]\w*)\}`)

// Matcher is a compiled line pattern.
type Matcher struct {
	raw   string
	kind  Kind
	re    *regexp.Regexp
	names []string // placeholder names in order of appearance
}

// MatchResult reports one match within a line.
type MatchResult struct {
	Span     [2]int            // byte offsets of the matched span
	Captures map[string]string // placeholder name -> captured text
}

// Compile turns a raw pattern string into a Matcher.
func Compile(raw string) (*Matcher, error) {
	kind := detectKind(raw)

	var expr string
	var names []string
	switch kind {
	case KindRegex:
		body := raw
		if isDelimited(raw) {
			body = raw[1 : len(raw)-1]
		}
		if err := checkBraces(body); err != nil {
			return nil, err
		}
		var err error
		expr, names, err = expandPlaceholders(body)
		if err != nil {
			return nil, err
		}
	case KindGlob:
		expr = globToRegex(raw)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, model.Wrap(model.ECPatternCompile,
			fmt.Sprintf("pattern %q", raw),
			fmt.Errorf("%w: %v", model.ErrPatternCompile, err))
	}

	return &Matcher{raw: raw, kind: kind, re: re, names: names}, nil
}

// Match applies the pattern to one line. It returns nil when the line
// does not match. Matching searches within the line; patterns are not
// anchored to the whole line unless they anchor themselves.
func (m *Matcher) Match(line string) *MatchResult {
	loc := m.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil
	}

	res := &MatchResult{Span: [2]int{loc[0], loc[1]}}
	if len(m.names) > 0 {
		res.Captures = make(map[string]string, len(m.names))
		for i, name := range m.re.SubexpNames() {
			if name == "" {
				continue
			}
			start, end := loc[2*i], loc[2*i+1]
			if start < 0 {
				continue
			}
			res.Captures[name] = line[start:end]
		}
	}
	return res
}

// Kind returns the detected pattern syntax.
func (m *Matcher) Kind() Kind { return m.kind }

// Placeholders returns the placeholder names in order of appearance.
// Glob patterns never have any.
func (m *Matcher) Placeholders() []string { return m.names }

// HasPlaceholder reports whether name is a placeholder of the pattern.
func (m *Matcher) HasPlaceholder(name string) bool {
	for _, n := range m.names {
		if n == name {
			return true
		}
	}
	return false
}

// TemplateNames returns the {name} tokens of a target path template
// in order of appearance, without the braces.
func TemplateNames(template string) []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		names = append(names, m[1])
	}
	return names
}

// ExpandTemplate substitutes every {name} token in template with its
// value from captures. Unknown names are rejected by the resolver
// before any expansion happens.
func ExpandTemplate(template string, captures map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(tok string) string {
		return captures[tok[1:len(tok)-1]]
	})
}

func isDelimited(raw string) bool {
	return len(raw) >= 2 && strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/")
}

// detectKind infers the pattern syntax from its form: explicit /.../
// delimiters, or the anchors and placeholders that only make sense in
// a regex. Anything else is a glob.
func detectKind(raw string) Kind {
	if isDelimited(raw) {
		return KindRegex
	}
	if placeholderRe.MatchString(raw) {
		return KindRegex
	}
	if strings.ContainsAny(raw, "^$") {
		return KindRegex
	}
	return KindGlob
}

// expandPlaceholders rewrites every {name} token into a named
// non-greedy capture. Duplicate names are rejected up front: the
// regex engine would reject them too, but with a far worse message.
func expandPlaceholders(body string) (string, []string, error) {
	var names []string
	seen := make(map[string]bool)
	var dup string

	expanded := placeholderRe.ReplaceAllStringFunc(body, func(tok string) string {
		name := tok[1 : len(tok)-1]
		if seen[name] {
			dup = name
		}
		seen[name] = true
		names = append(names, name)
		// Non-greedy up to a word boundary. At least one character:
		// a trailing placeholder like "#{tag}" must capture the word
		// after the marker, and the empty string is always bounded.
		return `(?P<` + name + `>.+?)\b`
	})

	if dup != "" {
		return "", nil, model.Wrap(model.ECPatternCompile,
			fmt.Sprintf("placeholder {%s} appears more than once", dup),
			model.ErrPatternCompile)
	}
	return expanded, names, nil
}

// checkBraces rejects unbalanced braces before expansion. Balanced
// pairs that are not placeholders (regex counts like {3}) pass.
func checkBraces(body string) error {
	depth := 0
	for _, r := range body {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth < 0 {
			break
		}
	}
	if depth != 0 {
		return model.Wrap(model.ECPatternCompile,
			"unbalanced braces in pattern", model.ErrPatternCompile)
	}
	return nil
}

// globToRegex translates a glob into an unanchored regex: a substring
// wildcard test, not a whole-line match.
func globToRegex(glob string) string {
	var b strings.Builder
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}
