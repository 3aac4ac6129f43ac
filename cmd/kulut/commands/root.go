package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yairfalse/kulut/internal/config"
	"github.com/yairfalse/kulut/internal/logger"
	"github.com/yairfalse/kulut/internal/storage"
)

var (
	cfgFile string
	cfg     *config.Config
	log     logger.Logger
)

// rootCmd is the base command when kulut is called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "kulut",
	Short: "Track what your cloud inventory costs, and what changed",
	Long: `KULUT - kulut means "expenses" in Finnish, and that is what this
tool watches: your cloud resource inventory over time, and the estimated
cost of every change to it.

Each run captures a dated snapshot of your resources. Any two snapshots
can be diffed down to the field and tag level, with a heuristic cost
impact attached to every addition, removal, and modification. The full
snapshot history feeds resource-count and cost trend series.

TYPICAL FLOW:
  kulut collect          # snapshot today's inventory
  kulut diff             # what changed since the previous snapshot?
  kulut trend            # how has the inventory grown?
  kulut summary          # what does today's inventory look like?

Cost figures are estimates from a static per-type factor table, never
billing data.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			runVersion(cmd, nil)
			return nil
		}
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.kulut/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml, markdown)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("version", false, "show version information")

	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("output.no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.AddCommand(newCollectCommand())
	rootCmd.AddCommand(newDiffCommand())
	rootCmd.AddCommand(newTrendCommand())
	rootCmd.AddCommand(newSummaryCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newVersionCommand())
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log = logger.New(cfg.Logging.Level)
	return nil
}

// openStore builds the snapshot store from configuration.
func openStore() (storage.Store, error) {
	return storage.NewLocalStore(cfg.Storage.BaseDir, log)
}
