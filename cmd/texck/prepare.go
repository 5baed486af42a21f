package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fractalqb/texck"
)

func init() {
	prepareCmd.RunE = prepareFiles
	prepareCmd.Flags().StringVarP(
		&prepareCmd.suffix,
		"suffix", "s",
		"",
		"Set file suffix for created checks files (default from config or .texck)")
	prepareCmd.Flags().BoolVarP(
		&prepareCmd.force,
		"force", "f",
		prepareCmd.force,
		"Force to overwrite existing checks files")
	rootCmd.AddCommand(&prepareCmd.Command)
}

var prepareCmd = struct {
	cobra.Command
	suffix string
	force  bool
}{
	Command: cobra.Command{
		Use:   "prepare [file]...",
		Short: "Prepare a basic checks file from sample output",
	},
}

func prepareFiles(cmd *cobra.Command, files []string) error {
	prep := texck.Prepare{Prefix: rootCmd.cfg.Prefix}
	if len(files) == 0 {
		return prep.Text(cmd.OutOrStdout(), cmd.InOrStdin())
	}
	suffix := rootCmd.cfg.Suffix
	if prepareCmd.suffix != "" {
		suffix = prepareCmd.suffix
	}
	for _, f := range files {
		if err := prepareFile(prep, f, f+suffix); err != nil {
			return err
		}
	}
	return nil
}

func prepareFile(prep texck.Prepare, name, checkfile string) error {
	if _, err := os.Stat(checkfile); !errors.Is(err, fs.ErrNotExist) && !prepareCmd.force {
		return &fs.PathError{Op: "prepare", Path: checkfile, Err: fs.ErrExist}
	}
	rd, err := os.Open(name)
	if err != nil {
		return err
	}
	defer rd.Close()
	wr, err := os.Create(checkfile)
	if err != nil {
		return err
	}
	if err = prep.Text(wr, rd); err != nil {
		wr.Close()
		return err
	}
	log.Info().Str("sample", name).Str("checks", checkfile).Msg("checks file written")
	return wr.Close()
}
