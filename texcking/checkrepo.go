// Package texcking supports the use of texck in your Go tests.
//
// Example reads the check rules from testdata/TestGreeting.texck:
//
//	func TestGreeting(t *testing.T) {
//		var out bytes.Buffer
//		greet(&out, "World")
//		texcking.Error(t, "", &out)
//	}
//
// Checks file:
//
//	CHECK: Hello
//	CHECK-SAME: World
//	CHECK-NOT: error
//	CHECK-NEXT: Bye
package texcking

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fractalqb/texck"
)

// When this environment variable is set to a regexp and the name of the current
// test matches, calls to Error or Fatal will record the subject as new checks
// file instead of comparing it. E.g.
//
//	TEXCKING_RECORD=TestRecording go test .
const RecordEnv = "TEXCKING_RECORD"

// GoTestdataDir is the name of Go's default directory for testdata (see go help
// test).
const GoTestdataDir = "testdata"

func Error(t testing.TB, hint string, subj io.Reader) error {
	return defaultConfig.Error(t, hint, subj)
}

func Fatal(t testing.TB, hint string, subj io.Reader) {
	defaultConfig.Fatal(t, hint, subj)
}

func Record(t testing.TB, hint string, subj io.Reader) {
	defaultConfig.Record(t, hint, subj)
}

// CheckRepo locates checks files in a directory.
type CheckRepo struct {
	Dir    string
	Suffix string
}

const (
	StdSuffix = texck.ChecksSuffix
	NoSuffix  = "\x00"
)

func (cr CheckRepo) Filename(t testing.TB, hint string) string {
	suffix := cr.Suffix
	switch suffix {
	case "":
		suffix = StdSuffix
	case NoSuffix:
		suffix = ""
	}
	if hint == "" {
		return filepath.Join(cr.Dir, t.Name()+suffix)
	}
	if suffix == "" || strings.HasSuffix(hint, suffix) {
		return filepath.Join(cr.Dir, t.Name(), hint)
	}
	return filepath.Join(cr.Dir, t.Name(), hint+suffix)
}

type Config struct {
	CheckFileName   func(t testing.TB, hint string) string
	Prefix          string
	RecordOverwrite bool
	// KeepSubject leaves a copy of a failing subject next to the checks file.
	KeepSubject bool
}

var defaultConfig = Config{
	CheckFileName:   CheckRepo{Dir: GoTestdataDir}.Filename,
	RecordOverwrite: false,
	KeepSubject:     true,
}

func (cfg Config) Error(t testing.TB, hint string, subj io.Reader) error {
	t.Helper()
	if recordTest(t) {
		cfg.Record(t, hint, subj)
		return nil
	}
	err := cfg.compare(t, hint, subj)
	if err != nil {
		t.Error(err)
	}
	return err
}

func (cfg Config) Fatal(t testing.TB, hint string, subj io.Reader) {
	t.Helper()
	if recordTest(t) {
		cfg.Record(t, hint, subj)
		return
	}
	if err := cfg.compare(t, hint, subj); err != nil {
		t.Fatal(err)
	}
}

func recordTest(t testing.TB) bool {
	rec := os.Getenv(RecordEnv)
	if rec == "" {
		return false
	}
	r, err := regexp.Compile(rec)
	if err != nil {
		t.Logf("texcking: invalid regexp '%s' in %s, not recording: %s", rec, RecordEnv, err)
		return false
	}
	return r.MatchString(t.Name())
}

func (cfg *Config) options(checkfile, hint string) []texck.Option {
	if hint == "" {
		hint = "subject"
	}
	opts := []texck.Option{
		texck.WithChecksName(checkfile),
		texck.WithInputName(hint),
	}
	if cfg.Prefix != "" {
		opts = append(opts, texck.WithPrefix(cfg.Prefix))
	}
	return opts
}

func (cfg *Config) compare(t testing.TB, hint string, subj io.Reader) (err error) {
	checkfile := cfg.CheckFileName(t, hint)
	checks, err := os.ReadFile(checkfile)
	if os.IsNotExist(err) {
		t.Logf("to record a checks file run '%[1]s=%[2]s go test -run %[2]s'",
			RecordEnv,
			t.Name(),
		)
		return fmt.Errorf("checks file %s does not exist", checkfile)
	} else if err != nil {
		return err
	}
	input, err := io.ReadAll(subj)
	if err != nil {
		return fmt.Errorf("read subject: %w", err)
	}
	res := texck.Match(string(input), string(checks), cfg.options(checkfile, hint)...)
	if res.OK() {
		return nil
	}
	if cfg.KeepSubject {
		keepfile := strings.TrimSuffix(checkfile, StdSuffix)
		k, kerr := os.CreateTemp(filepath.Dir(keepfile), filepath.Base(keepfile)+".")
		if kerr != nil {
			return kerr
		}
		defer k.Close()
		if _, kerr = k.Write(input); kerr != nil {
			return kerr
		}
		t.Logf("texcking: kept subject in %s", k.Name())
	}
	return res.Err()
}

func (cfg Config) Record(t testing.TB, hint string, subj io.Reader) {
	t.Helper()
	checkfile := cfg.CheckFileName(t, hint)
	if _, err := os.Stat(checkfile); !os.IsNotExist(err) && !cfg.RecordOverwrite {
		t.Fatalf("texcking: checks file '%s' already exists", checkfile)
	}
	dir := filepath.Dir(checkfile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0777); err != nil {
			t.Fatal(err)
		}
	}
	wr, err := os.Create(checkfile)
	if err != nil {
		t.Fatal(err)
	}
	defer wr.Close()
	if err = (texck.Prepare{Prefix: cfg.Prefix}).Text(wr, subj); err != nil {
		t.Error(err)
	}
	t.Errorf("texck test-recorder wrote: %s", checkfile)
}
