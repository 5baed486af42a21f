package texck

import (
	"fmt"
	"regexp"
	"strings"
)

// CheckType determines when a check is satisfied. Not is the only negative
// check type, all others are satisfied by a match in the input.
type CheckType int

const (
	// Simple matches anywhere after the previous match.
	Simple CheckType = iota
	// Next matches on the line following the previous match.
	Next
	// Same matches on the same line as the previous match.
	Same
	// DAG matches unordered with respect to adjacent DAG checks.
	DAG
	// Label matches like Simple and closes a group of DAG checks.
	Label
	// Not must not match before the next positive match.
	Not
)

// Suffixes appended to the rule prefix to select the check type.
var typeSuffixes = [...]string{
	Simple: "",
	Next:   "-NEXT",
	Same:   "-SAME",
	DAG:    "-DAG",
	Label:  "-LABEL",
	Not:    "-NOT",
}

func (t CheckType) Suffix() string {
	if t < Simple || t > Not {
		return fmt.Sprintf("-CheckType(%d)", int(t))
	}
	return typeSuffixes[t]
}

func (t CheckType) String() string {
	switch t {
	case Simple:
		return "Simple"
	case Next:
		return "Next"
	case Same:
		return "Same"
	case DAG:
		return "DAG"
	case Label:
		return "Label"
	case Not:
		return "Not"
	}
	return fmt.Sprintf("CheckType(%d)", int(t))
}

// Positive reports if the check is satisfied by a match.
func (t CheckType) Positive() bool { return t != Not }

func typeForSuffix(suffix string) (CheckType, bool) {
	for t, s := range typeSuffixes {
		if s == suffix {
			return CheckType(t), true
		}
	}
	return Simple, false
}

type PartType int

const (
	// Fixed parts match their text exactly.
	Fixed PartType = iota
	// Regex parts are regular expressions written between '{{' and '}}'.
	Regex
)

// Constraint describes where a part may match in the input.
type Constraint int

const (
	// Substring parts can skip leading input before they match.
	Substring Constraint = iota
	// Prefix parts must match right where the preceding part ended.
	Prefix
)

// Part is a contiguous segment of a check's parameter.
type Part struct {
	Type       PartType
	Constraint Constraint
	Text       string
}

// regexp returns the regular expression source that matches the part.
func (p Part) regexp() string {
	if p.Type == Fixed {
		return regexp.QuoteMeta(p.Text)
	}
	return "(?:" + p.Text + ")"
}

// Check is a single parsed check rule.
type Check struct {
	Type CheckType
	// Param is the parameter text as written after the colon, without
	// surrounding whitespace.
	Param string
	// At is the byte offset of Param in the checks text.
	At    int
	Parts []Part

	prefix string
	rgx    *regexp.Regexp
}

// Description renders the check the way it is written in a checks text.
func (chk *Check) Description() string {
	return fmt.Sprintf("%s%s: %s", chk.prefix, chk.Type.Suffix(), chk.Param)
}

func (chk *Check) compile() error {
	var sb strings.Builder
	for _, p := range chk.Parts {
		sb.WriteString(p.regexp())
	}
	rgx, err := regexp.Compile(sb.String())
	if err != nil {
		return err
	}
	chk.rgx = rgx
	return nil
}

// find searches text[from:to] for the leftmost match of chk and returns the
// byte offsets of the match in text. A match never spans lines: each line,
// including its newline, is searched on its own. The search never looks
// beyond to. Because lines are cut at from and to, '^', '$' and '\b' in regex
// parts also match at the window edges.
func (chk *Check) find(text string, from, to int) (start, end int, ok bool) {
	if from > to {
		return 0, 0, false
	}
	for lo := from; ; {
		hi := to
		if nl := strings.IndexByte(text[lo:to], '\n'); nl >= 0 {
			hi = lo + nl + 1
		}
		if loc := chk.rgx.FindStringIndex(text[lo:hi]); loc != nil {
			return lo + loc[0], lo + loc[1], true
		}
		if hi == to {
			return 0, 0, false
		}
		lo = hi
	}
}

// CheckList is the sequence of checks in the order of the checks text.
type CheckList []Check

var partRgx = regexp.MustCompile(`^(.*?)\{\{(.*?)\}\}`)

// splitParts breaks param into fixed parts and the regex parts written
// between '{{' and '}}'.
func splitParts(param string) ([]Part, error) {
	var parts []Part
	add := func(t PartType, txt string) {
		c := Prefix
		if len(parts) == 0 {
			c = Substring
		}
		parts = append(parts, Part{Type: t, Constraint: c, Text: txt})
	}
	rest := param
	for {
		m := partRgx.FindStringSubmatchIndex(rest)
		if m == nil {
			break
		}
		if fixed := rest[m[2]:m[3]]; fixed != "" {
			add(Fixed, fixed)
		}
		if rgx := rest[m[4]:m[5]]; rgx != "" {
			if _, err := regexp.Compile(rgx); err != nil {
				return nil, fmt.Errorf("invalid regex: %s", rgx)
			}
			add(Regex, rgx)
		}
		rest = rest[m[1]:]
	}
	if rest != "" || len(parts) == 0 {
		add(Fixed, rest)
	}
	return parts, nil
}

// ParseChecks extracts the check rules from checks. The returned Result
// tells if parsing succeeded. The checks in the list refer to the checks text
// by offset.
func ParseChecks(checks string, opts ...Option) (CheckList, Result) {
	cfg := newOptions(opts)
	return parseChecks(checks, &cfg)
}

func parseChecks(checks string, cfg *Options) (CheckList, Result) {
	if cfg.Prefix == "" {
		return nil, result(BadOption, "Rule prefix is empty")
	}
	if strings.TrimSpace(cfg.Prefix) == "" {
		return nil, result(BadOption, "Rule prefix is whitespace.  That's silly.")
	}
	ruleRgx := regexp.MustCompile(`^.*?` + regexp.QuoteMeta(cfg.Prefix) +
		`(-NEXT|-SAME|-DAG|-LABEL|-NOT)?:\s*(.*?)\s*$`)

	var list CheckList
	for c := NewCursor(checks); !c.Exhausted(); c.AdvanceLine() {
		line := strings.TrimSuffix(c.RestOfLine(), "\n")
		m := ruleRgx.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		suffix := ""
		if m[2] >= 0 {
			suffix = line[m[2]:m[3]]
		}
		typ, _ := typeForSuffix(suffix)
		chk := Check{
			Type:   typ,
			Param:  line[m[4]:m[5]],
			At:     c.Offset() + m[4],
			prefix: cfg.Prefix,
		}
		parts, err := splitParts(chk.Param)
		if err != nil {
			return nil, result(BadRule, err.Error())
		}
		chk.Parts = parts
		if err = chk.compile(); err != nil {
			return nil, result(BadRule, fmt.Sprintf("invalid regex: %s", chk.Param))
		}
		list = append(list, chk)
	}

	if len(list) == 0 {
		return nil, result(NoRules,
			"No check rules specified. Looking for prefix "+cfg.Prefix)
	}
	if list[0].Type == Same {
		return nil, result(BadRule, cfg.Prefix+"-SAME can't be the first check rule")
	}
	return list, result(OK, "")
}
