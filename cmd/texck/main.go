// A command line tool to check program output against check rules
package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const usage = `Check Rules:
   CHECK: <pattern>       Matches after the previous match
   CHECK-NEXT: <pattern>  Matches on the line after the previous match
   CHECK-SAME: <pattern>  Matches on the line of the previous match
   CHECK-DAG: <pattern>   Matches unordered with adjacent DAG rules
   CHECK-LABEL: <pattern> Like CHECK, closes a group of DAG rules
   CHECK-NOT: <pattern>   Must not match before the next match

Patterns match literally except for regular expressions in {{…}}.
`

var rootCmd = struct {
	cobra.Command
	config   string
	logLevel string
	cfg      config
}{
	Command: cobra.Command{
		Use:           "texck",
		Short:         "Check program output against check rules",
		Long:          "Check program output against check rules\n\n" + usage,
		SilenceUsage:  true,
		SilenceErrors: true,
	},
	logLevel: "info",
}

// errFailed is returned when an input does not satisfy the checks. It is
// already reported when returned.
var errFailed = errors.New("check failed")

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmd.config, "config", "",
		"Read defaults from TOML config file (default "+defaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&rootCmd.logLevel, "log-level", rootCmd.logLevel,
		"Set log level (env "+logLevelEnv+")")
	rootCmd.PersistentPreRunE = setup
}

func setup(cmd *cobra.Command, _ []string) error {
	level := rootCmd.logLevel
	if env := os.Getenv(logLevelEnv); env != "" && !cmd.Flags().Changed("log-level") {
		level = env
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	cfg, err := loadConfig(rootCmd.config)
	if err != nil {
		return err
	}
	rootCmd.cfg = cfg
	return nil
}

const logLevelEnv = "TEXCK_LOG_LEVEL"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			log.Error().Err(err).Msg("texck")
		}
		os.Exit(1)
	}
}
