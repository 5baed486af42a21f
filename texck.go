package texck

import (
	"fmt"
	"io"
	"strings"
)

// DefaultPrefix is the rule prefix used when no other prefix is set.
const DefaultPrefix = "CHECK"

// ChecksSuffix is the conventional file name suffix of checks files.
const ChecksSuffix = ".texck"

// Options configure parsing and matching.
type Options struct {
	// Prefix is the token that introduces a check rule, e.g. CHECK in
	// "CHECK-NEXT: foo".
	Prefix string
	// InputName names the input text in diagnostics.
	InputName string
	// ChecksName names the checks text in diagnostics.
	ChecksName string
	// WideCaret places the caret of a diagnostic by display width instead
	// of one space per byte. Tabs in the source line are kept.
	WideCaret bool
}

type Option func(*Options)

func WithPrefix(p string) Option { return func(o *Options) { o.Prefix = p } }

func WithInputName(n string) Option { return func(o *Options) { o.InputName = n } }

func WithChecksName(n string) Option { return func(o *Options) { o.ChecksName = n } }

func WithWideCaret(on bool) Option { return func(o *Options) { o.WideCaret = on } }

// WithOptions replaces all options with opts.
func WithOptions(opts Options) Option { return func(o *Options) { *o = opts } }

func newOptions(opts []Option) Options {
	res := Options{Prefix: DefaultPrefix}
	for _, o := range opts {
		o(&res)
	}
	return res
}

type Status int

const (
	OK Status = iota
	// Fail reports that the input does not satisfy the checks.
	Fail
	// BadOption reports an invalid option, e.g. an empty prefix.
	BadOption
	// NoRules reports a checks text without any check rule.
	NoRules
	// BadRule reports an invalid check rule or rule sequence.
	BadRule
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Fail:
		return "fail"
	case BadOption:
		return "bad option"
	case NoRules:
		return "no rules"
	case BadRule:
		return "bad rule"
	}
	return fmt.Sprintf("status %d", int(s))
}

// Result is the outcome of parsing checks or matching an input.
type Result struct {
	status  Status
	message string
}

func result(s Status, msg string) Result { return Result{status: s, message: msg} }

func (r Result) Status() Status { return r.status }

// OK returns true if the match was successful.
func (r Result) OK() bool { return r.status == OK }

// Message describes the failure. It is empty on success.
func (r Result) Message() string { return r.message }

// Err returns nil for successful results and an *Error otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Status: r.status, Message: r.message}
}

type Error struct {
	Status  Status
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, strings.TrimRight(e.Message, "\n"))
}

// Match checks input against the check rules in checks.
func Match(input, checks string, opts ...Option) Result {
	cfg := newOptions(opts)
	list, res := parseChecks(checks, &cfg)
	if !res.OK() {
		return res
	}
	m := matcher{
		input:  input,
		checks: checks,
		list:   list,
		cfg:    &cfg,
	}
	return m.run()
}

// MatchReaders reads input and checks completely and then matches them. The
// returned error is only about reading, match failures are reported by the
// Result.
func MatchReaders(input, checks io.Reader, opts ...Option) (Result, error) {
	chks, err := io.ReadAll(checks)
	if err != nil {
		return Result{}, fmt.Errorf("read checks: %w", err)
	}
	in, err := io.ReadAll(input)
	if err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}
	return Match(string(in), string(chks), opts...), nil
}
