package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fractalqb/texck"
)

func init() {
	checkCmd.RunE = checkFiles
	checkCmd.Flags().StringVarP(&checkCmd.checkfile, "checks", "c", "",
		"Set checks file name")
	checkCmd.MarkFlagRequired("checks")
	checkCmd.Flags().StringVarP(&checkCmd.prefix, "prefix", "p", "",
		"Set the check rule prefix (default from config or "+texck.DefaultPrefix+")")
	checkCmd.Flags().BoolVar(&checkCmd.wideCaret, "wide-caret", false,
		"Place carets in diagnostics by display width (default from config)")
	rootCmd.AddCommand(&checkCmd.Command)
}

var checkCmd = struct {
	cobra.Command
	checkfile string
	prefix    string
	wideCaret bool
}{
	Command: cobra.Command{
		Use:   "check -c <checks file> [input file]...",
		Short: "Check input files, or stdin, against the rules in a checks file",
	},
}

func checkFiles(cmd *cobra.Command, files []string) error {
	checks, err := os.ReadFile(checkCmd.checkfile)
	if err != nil {
		return err
	}
	opts := []texck.Option{
		texck.WithChecksName(checkCmd.checkfile),
		texck.WithPrefix(rootCmd.cfg.Prefix),
		texck.WithWideCaret(rootCmd.cfg.WideCaret || checkCmd.wideCaret),
	}
	if checkCmd.prefix != "" {
		opts = append(opts, texck.WithPrefix(checkCmd.prefix))
	}
	if len(files) == 0 {
		return checkRd(cmd.ErrOrStderr(), string(checks), "<stdin>", cmd.InOrStdin(), opts)
	}
	failed := false
	for _, f := range files {
		switch err := checkFile(cmd.ErrOrStderr(), string(checks), f, opts); {
		case err == errFailed:
			failed = true
		case err != nil:
			return err
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

func checkFile(diag io.Writer, checks, name string, opts []texck.Option) error {
	r, err := os.Open(name)
	if err != nil {
		return err
	}
	defer r.Close()
	return checkRd(diag, checks, name, r, opts)
}

func checkRd(diag io.Writer, checks, name string, input io.Reader, opts []texck.Option) error {
	in, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	res := texck.Match(string(in), checks, append(opts, texck.WithInputName(name))...)
	switch res.Status() {
	case texck.OK:
		log.Info().Str("input", name).Str("checks", checkCmd.checkfile).Msg("input matches")
		return nil
	case texck.Fail:
		fmt.Fprint(diag, res.Message())
		log.Debug().Str("input", name).Msg("input does not match")
		return errFailed
	}
	return res.Err()
}
