package texck

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cursor tracks a position in a text together with the 1-based number of the
// line the position is in.
type Cursor struct {
	text string
	pos  int
	line int
}

func NewCursor(text string) *Cursor {
	return &Cursor{text: text, line: 1}
}

// Remaining returns the text after the current position.
func (c *Cursor) Remaining() string { return c.text[c.pos:] }

// Offset is the byte offset of the current position in the text.
func (c *Cursor) Offset() int { return c.pos }

// Line returns the current 1-based line number.
func (c *Cursor) Line() int { return c.line }

func (c *Cursor) Exhausted() bool { return c.pos >= len(c.text) }

// RestOfLine returns the text from the current position up to and including
// the next newline, or up to the end of the text.
func (c *Cursor) RestOfLine() string {
	rest := c.Remaining()
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i+1]
	}
	return rest
}

// Advance skips n bytes. The line count is not adjusted, i.e. the skipped
// bytes must not contain a newline.
func (c *Cursor) Advance(n int) *Cursor {
	c.pos += n
	if c.pos > len(c.text) {
		c.pos = len(c.text)
	}
	return c
}

// AdvanceLine skips the rest of the current line including its newline.
func (c *Cursor) AdvanceLine() *Cursor {
	if !c.Exhausted() {
		c.pos += len(c.RestOfLine())
		c.line++
	}
	return c
}

// lineMessage renders the location of the span [at, at+n) in text as
//
//	:line:col: message
//	<source line>
//	<caret>
//
// The caller prepends the name of the text. pad computes the indentation of
// the caret from the line's text before the column.
func lineMessage(text string, at, n int, message string, pad func(string) string) string {
	c := NewCursor(text)
	full := c.RestOfLine()
	for !c.Exhausted() {
		end := c.Offset() + len(full)
		// A position right after a newline belongs to the next line.
		if at+n <= end && (at < end || !strings.HasSuffix(full, "\n")) {
			break
		}
		c.AdvanceLine()
		full = c.RestOfLine()
	}
	col := at - c.Offset()
	if col < 0 {
		col = 0
	}
	if col > len(full) {
		col = len(full)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, ":%d:%d: %s\n", c.Line(), col+1, message)
	sb.WriteString(full)
	if !strings.HasSuffix(full, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(pad(full[:col]))
	sb.WriteString("^\n")
	return sb.String()
}

// bytePad indents the caret by one space per byte of lead.
func bytePad(lead string) string { return strings.Repeat(" ", len(lead)) }

// caretPad returns the indentation that puts a caret below the first rune
// after lead. Tabs are kept so that the caret lines up however the terminal
// expands them.
func caretPad(lead string) string {
	var sb strings.Builder
	g := uniseg.NewGraphemes(lead)
	for g.Next() {
		seg := g.Str()
		if seg == "\t" {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.StringWidth(seg)))
	}
	return sb.String()
}
