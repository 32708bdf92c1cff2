package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gocalc"
	"gocalc/parser"
	_ "gocalc/plugins/add"
	_ "gocalc/plugins/divide"
	_ "gocalc/plugins/exit"
	_ "gocalc/plugins/multiply"
	_ "gocalc/plugins/subtract"
)

type options struct {
	envFile        string
	pluginDir      string
	historyFile    string
	historyBackend string
	verbose        bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "gocalc",
		Short: "Interactive calculator with plugin commands",
		Long: `gocalc is an interactive calculator.

Type an operation and two numbers (add 2 3). Commands are loaded from the
plugin directory; every calculation is kept in a history file that can be
listed, pruned and cleared from the prompt.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Start(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.StringVar(&opts.pluginDir, "plugins", "", "plugin directory (overrides CALC_PLUGIN_DIR)")
	flags.StringVar(&opts.historyFile, "history-file", "", "history file (overrides CALC_HISTORY_FILE or CALC_HISTORY_DB)")
	flags.StringVar(&opts.historyBackend, "history-backend", "", "history backend: csv or sqlite (overrides CALC_HISTORY_BACKEND)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(newRunCmd(opts), newHistoryCmd(opts))
	return rootCmd
}

// newRunCmd executes a single command line without starting the REPL.
func newRunCmd(opts *options) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [command] [args...]",
		Short: "Execute one calculator command and exit",
		Example: `  gocalc run add 2 3
  gocalc run delete 0
  gocalc run clear history`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.LoadPlugins(); err != nil {
				return err
			}

			in, err := parser.Classify(strings.Join(args, " "))
			if err != nil {
				return err
			}
			repl := app.REPL(cmd.InOrStdin(), cmd.OutOrStdout())
			err = repl.Dispatch(in)
			if errors.Is(err, gocalc.ErrExit) {
				return nil
			}
			if err != nil {
				repl.Report(err)
			}
			return err
		},
	}
	// Everything after the command name is passed through, so negative
	// operands are not read as flags.
	runCmd.Flags().SetInterspersed(false)
	return runCmd
}

func newHistoryCmd(opts *options) *cobra.Command {
	var sessionID string
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print the calculation history",
		Example: `  gocalc history
  gocalc history --history-backend sqlite --session 6f1c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			if sessionID != "" {
				return gocalc.ShowSessionHistory(cmd.OutOrStdout(), app.History, sessionID)
			}
			return gocalc.ShowHistory(cmd.OutOrStdout(), app.History)
		},
	}
	historyCmd.Flags().StringVar(&sessionID, "session", "", "only show calculations from this session (sqlite backend)")
	return historyCmd
}

func (o *options) newApp() (*gocalc.App, error) {
	cfg, err := gocalc.LoadConfig(o.envFile)
	if err != nil {
		return nil, err
	}
	if o.pluginDir != "" {
		cfg.PluginDir = o.pluginDir
	}
	if o.historyBackend != "" {
		cfg.HistoryBackend = o.historyBackend
	}
	if o.historyFile != "" {
		cfg.HistoryFile = o.historyFile
		cfg.HistoryDB = o.historyFile
	}

	logger, err := gocalc.NewLogger(cfg, o.verbose)
	if err != nil {
		return nil, err
	}
	return gocalc.NewApp(cfg, logger)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
