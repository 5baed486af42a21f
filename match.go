package texck

import (
	"strings"

	"git.fractalqb.de/fractalqb/icontainer/islist"
)

// matcher holds the scan state of a single Match call.
type matcher struct {
	input  string
	checks string
	list   CheckList
	cfg    *Options

	// Input before pos is consumed by previous matches.
	pos int
	// End offset and line of the most recent positive match. prevLine is 0
	// before the first match.
	prevEnd  int
	prevLine int
}

func (m *matcher) run() Result {
	for i := 0; i < len(m.list); {
		chk := &m.list[i]
		var res Result
		switch chk.Type {
		case Simple, Label, Next, Same:
			res = m.anchor(chk)
			i++
		case Not:
			res = m.not(i)
			i++
		case DAG:
			j := groupEnd(m.list, i)
			res = m.dagGroup(i, j)
			i = j
		default:
			panic("unknown check type " + chk.Type.String())
		}
		if !res.OK() {
			return res
		}
	}
	return result(OK, "")
}

func (m *matcher) anchor(chk *Check) Result {
	start, end, ok := chk.find(m.input, m.pos, len(m.input))
	if !ok {
		return m.fail(
			m.checkMsg(chk, "error: expected string not found in input"),
			m.inputMsg(m.pos, 0, "note: scanning from here"),
		)
	}
	line := m.lineAt(start)
	switch chk.Type {
	case Next:
		if line == m.prevLine {
			return m.fail(
				m.checkMsg(chk, "error: "+m.cfg.Prefix+"-NEXT: is on the same line as previous match"),
				m.inputMsg(start, end-start, "note: 'next' match was here"),
				m.inputMsg(m.prevEnd, 0, "note: previous match ended here"),
			)
		}
		if line > m.prevLine+1 {
			nonMatch := NewCursor(m.input).Advance(m.prevEnd).AdvanceLine().Offset()
			return m.fail(
				m.checkMsg(chk, "error: "+m.cfg.Prefix+"-NEXT: is not on the line after the previous match"),
				m.inputMsg(start, end-start, "note: 'next' match was here"),
				m.inputMsg(m.prevEnd, 0, "note: previous match ended here"),
				m.inputMsg(nonMatch, 0, "note: non-matching line after previous match is here"),
			)
		}
	case Same:
		if line != m.prevLine {
			return m.fail(
				m.checkMsg(chk, "error: "+m.cfg.Prefix+"-SAME: is not on the same line as previous match"),
				m.inputMsg(start, end-start, "note: 'next' match was here"),
				m.inputMsg(m.prevEnd, 0, "note: previous match ended here"),
			)
		}
	}
	m.accept(start, end)
	return result(OK, "")
}

func (m *matcher) not(i int) Result {
	chk := &m.list[i]
	upper := len(m.input)
	if start, ok := m.probe(i + 1); ok {
		upper = start
	}
	start, end, ok := chk.find(m.input, m.pos, upper)
	if !ok {
		return result(OK, "")
	}
	return m.fail(
		m.inputMsg(start, end-start, "error: "+m.cfg.Prefix+"-NOT: string occurred!"),
		m.checkMsg(chk, "note: "+m.cfg.Prefix+"-NOT: pattern specified here"),
	)
}

type dagMember struct {
	chk  *Check
	next *dagMember
}

func (d *dagMember) ListNext() islist.Node {
	if d.next == nil {
		return nil
	}
	return d.next
}

func (d *dagMember) SetListNext(n islist.Node) {
	if n == nil {
		d.next = nil
	} else {
		d.next = n.(*dagMember)
	}
}

// dagGroup resolves the DAG checks list[from:to]. When the group is directly
// followed by an anchor check, all members have to match before the first
// match of that anchor. A following Not check ends the group without bound.
func (m *matcher) dagGroup(from, to int) Result {
	lower, upper := m.pos, len(m.input)
	var (
		bounded           bool
		anchorAt, anchorN int
	)
	if to < len(m.list) && m.list[to].Type != Not {
		if s, e, ok := m.list[to].find(m.input, lower, len(m.input)); ok {
			upper, bounded = s, true
			anchorAt, anchorN = s, e-s
		}
	}

	pending := islist.New(&dagMember{chk: &m.list[from]})
	for i := from + 1; i < to; i++ {
		pending.PushBack(&dagMember{chk: &m.list[i]})
	}
	maxStart, maxEnd := -1, -1
	for pending.Len() > 0 {
		mbr := pending.Front().(*dagMember)
		pending.Drop(1)
		start, end, ok := mbr.chk.find(m.input, lower, upper)
		if !ok {
			msgs := []string{
				m.checkMsg(mbr.chk, "error: expected string not found in input"),
				m.inputMsg(lower, 0, "note: scanning from here"),
			}
			if bounded {
				msgs = append(msgs, m.inputMsg(anchorAt, anchorN, "note: next check matches here"))
			}
			return m.fail(msgs...)
		}
		if end > maxEnd {
			maxStart, maxEnd = start, end
		}
	}
	m.accept(maxStart, maxEnd)
	return result(OK, "")
}

// probe finds where the positive checks starting at list[i] would match
// without consuming input. Not checks are skipped. For a DAG group the
// earliest match of any member counts.
func (m *matcher) probe(i int) (start int, ok bool) {
	for i < len(m.list) && m.list[i].Type == Not {
		i++
	}
	if i >= len(m.list) {
		return 0, false
	}
	if m.list[i].Type != DAG {
		start, _, ok = m.list[i].find(m.input, m.pos, len(m.input))
		return start, ok
	}
	for j, end := i, groupEnd(m.list, i); j < end; j++ {
		if s, _, found := m.list[j].find(m.input, m.pos, len(m.input)); found {
			if !ok || s < start {
				start, ok = s, true
			}
		}
	}
	return start, ok
}

func (m *matcher) accept(start, end int) {
	m.pos = end
	m.prevEnd = end
	if end > start {
		m.prevLine = m.lineAt(end - 1)
	} else {
		m.prevLine = m.lineAt(start)
	}
}

func (m *matcher) lineAt(offset int) int {
	return 1 + strings.Count(m.input[:offset], "\n")
}

func (m *matcher) checkMsg(chk *Check, message string) string {
	return m.cfg.ChecksName + lineMessage(m.checks, chk.At, len(chk.Param), message, m.pad())
}

func (m *matcher) inputMsg(at, n int, message string) string {
	return m.cfg.InputName + lineMessage(m.input, at, n, message, m.pad())
}

func (m *matcher) pad() func(string) string {
	if m.cfg.WideCaret {
		return caretPad
	}
	return bytePad
}

func (m *matcher) fail(msgs ...string) Result {
	return result(Fail, strings.Join(msgs, ""))
}

// groupEnd returns the index after the run of DAG checks starting at i.
func groupEnd(list CheckList, i int) int {
	for i < len(list) && list[i].Type == DAG {
		i++
	}
	return i
}
