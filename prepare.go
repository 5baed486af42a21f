package texck

import (
	"bufio"
	"io"
	"strings"
)

// Prepare writes a checks text that is satisfied by a given subject text.
// Each non-blank subject line becomes a check that has to match on the line
// after the previous check.
type Prepare struct {
	// Prefix of the written check rules. If empty, DefaultPrefix is used.
	Prefix string
}

func (p Prepare) Text(checks io.Writer, subj io.Reader) (err error) {
	if p.Prefix == "" {
		p.Prefix = DefaultPrefix
	}
	bw := bufio.NewWriter(checks)
	scn := bufio.NewScanner(subj)
	next := false
	for scn.Scan() {
		line := strings.TrimSpace(scn.Text())
		if line == "" {
			next = false
			continue
		}
		bw.WriteString(p.Prefix)
		if next {
			bw.WriteString(Next.Suffix())
		}
		bw.WriteString(": ")
		bw.WriteString(escapeParam(line))
		if err = bw.WriteByte('\n'); err != nil {
			return err
		}
		next = true
	}
	if err = scn.Err(); err != nil {
		return err
	}
	return bw.Flush()
}

// escapeParam protects '{{' in literal text from being read as the start of
// a regex part.
func escapeParam(s string) string {
	return strings.ReplaceAll(s, "{{", `{{\{\{}}`)
}
