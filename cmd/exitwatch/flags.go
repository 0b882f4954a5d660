package main

import (
	"os"
	"time"

	"github.com/exitwatch/exitwatch/internal/config"
	"github.com/exitwatch/exitwatch/internal/notifier"
	"github.com/spf13/cobra"
)

// WatchFlags holds every flag of the root (watch) command. Unset values
// fall back to exitwatch.toml, then to built-in defaults.
type WatchFlags struct {
	IntervalSecs uint64
	DryRun       bool
	Timeout      time.Duration
	NoColor      bool
	Verbose      bool
	LogFile      string
}

// useColor is consulted when printing the final error line. Flags and the
// config file can only turn color off; NO_COLOR in the environment wins
// from the start.
var useColor = os.Getenv("NO_COLOR") == ""

// buildRoot wires the root watch command plus the find and version
// subcommands.
func buildRoot() *cobra.Command {
	flags := &WatchFlags{}
	c := &command{out: os.Stdout}

	root := &cobra.Command{
		Use:   "exitwatch <process-name>",
		Short: "Send a webhook notification when a process stops running",
		Long: `exitwatch waits for a named process to stop running, then POSTs to a
webhook so that e.g. your phone gets a notification.

The webhook url is read from the NOTIF_URL environment variable, which may
be set in a .env file placed next to the executable or in the current
working directory. The process name is the OS process name, not a window
title; use "exitwatch find" to look it up. If several processes share the
name, the first one found is watched.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.NoColor {
				useColor = false
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Watch(cmd.Context(), *flags, args[0], cmd.Flags().Changed("interval"))
		},
	}

	root.Flags().Uint64VarP(&flags.IntervalSecs, "interval", "i", config.DefaultIntervalSecs, "how often to check if it's running (in seconds)")
	root.Flags().BoolVarP(&flags.DryRun, "dry-run", "d", false, "don't send the notification, just print the stopped message & exit")
	root.Flags().DurationVar(&flags.Timeout, "timeout", notifier.DefaultTimeout, "webhook request timeout")
	root.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flags.LogFile, "log-file", "", "write diagnostics to this rotating file instead of stderr")

	root.AddCommand(buildFindCmd(c))
	root.AddCommand(buildVersionCmd(c))
	return root
}

func buildFindCmd(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "find [pattern]",
		Short: "List running processes whose name contains the pattern",
		Long: `find lists PID and exact process name for every running process whose
name contains the pattern (case-insensitive). With no pattern it lists
everything. Useful for discovering the exact name the watcher needs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}
			return c.Find(pattern)
		},
	}
}

func buildVersionCmd(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the exitwatch version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c.Version()
		},
	}
}
