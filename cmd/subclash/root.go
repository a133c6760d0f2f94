package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"subclash/internal/config"
	"subclash/internal/logger"

	"github.com/spf13/cobra"
)

var cfgFile string
var verbose bool
var logFile string

var (
	flagFormat     string
	flagGroup      string
	flagTerminator string
	flagDedupe     bool
)

var rootCmd = &cobra.Command{
	Use:   "subclash",
	Short: "Convert VMess/VLESS/Trojan links into a Clash proxy configuration",
	Long: `Reads proxy links from standard input, one per line, until an empty line,
the terminator keyword or end of input. Every link that parses becomes a proxy
entry; the resulting document is printed to standard output.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose, logFile)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			logger.Log.Fatalf("Error loading config: %v", err)
		}
		applyFlags(cmd, cfg)

		interactive := logger.IsTerminal(os.Stdin)
		if err := runConvert(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg, interactive); err != nil {
			logger.Log.Errorf("❌ %v", err)
			logger.Sync()
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = flagFormat
	}
	if flags.Changed("group") {
		cfg.Output.GroupName = flagGroup
	}
	if flags.Changed("terminator") {
		cfg.Input.Terminator = flagTerminator
	}
	if flags.Changed("dedupe") {
		cfg.Output.Dedupe = flagDedupe
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML config file (nothing is read when unset)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stdout (overwrites file)")

	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "clash", "Output format (clash, xray)")
	rootCmd.Flags().StringVar(&flagGroup, "group", "", "Name of the selector group")
	rootCmd.Flags().StringVar(&flagTerminator, "terminator", "", "Keyword that ends input (case-insensitive)")
	rootCmd.Flags().BoolVar(&flagDedupe, "dedupe", false, "Drop links pointing at an endpoint already seen")
}
