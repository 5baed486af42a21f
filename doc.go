/*
Package texck checks the output of a program against check rules that are
embedded in a second text, the checks text. A check rule is any line that
contains the rule prefix, by default CHECK, optionally followed by a type
suffix, then a colon and the pattern:

	// CHECK: Hello
	// CHECK-NEXT: World

Everything on the line before the prefix is ignored, so rules can live in
comments of a test source. Lines without a rule are ignored altogether. The
pattern is taken from the first non-space character after the colon up to
the last non-space character of the line.

# Patterns

A pattern matches its text literally. Regular expressions (Go regexp syntax)
can be embedded between '{{' and '}}':

	CHECK: took {{[0-9]+}}ms

Each embedded expression is a group of its own, so 'x{{a|b}}y' matches xay
and xby. A pattern always matches within one line of the input. The line's
newline can be part of the match.

# Check Types

The rules are applied in order while the input is scanned once from start to
end. The type suffix selects how a rule's match is positioned:

	CHECK:       Matches anywhere after the previous match
	CHECK-NEXT:  Matches on the line right after the previous match
	CHECK-SAME:  Matches on the same line as the previous match
	CHECK-LABEL: Like CHECK. Also ends a group of DAG rules
	CHECK-DAG:   Consecutive DAG rules match in any order
	CHECK-NOT:   Must not match between the previous and the next match

All members of a group of DAG rules must match before the first match of a
CHECK, CHECK-NEXT, CHECK-SAME or CHECK-LABEL rule that directly follows the
group. A CHECK-NOT rule after the group does not bound it. Scanning continues
after the group member that matched last in the input. A CHECK-NOT rule
never consumes input.

# Diagnostics

When the input does not satisfy the rules, the Result carries a message that
points into the checks text and into the input:

	checks:3:13: error: CHECK-SAME: is not on the same line as previous match
	CHECK-SAME: Honey
	            ^
	in:4:11: note: 'next' match was here
	Delicious Honey
	          ^
	in:3:5: note: previous match ended here
	Make
	    ^

Messages name rules with the configured prefix, e.g. EXPECT-NEXT when the
prefix is EXPECT. Columns count bytes and the caret is indented by one space
per byte. With Options.WideCaret the caret is placed by display width.
*/
package texck
