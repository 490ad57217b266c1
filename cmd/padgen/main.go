package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/padgen/cmd/padgen/commands"
	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "padgen",
	Short: "padgen - Android padding module generator",
	Long: `padgen - Generate self-consistent Android library modules of padding code.

Every generated entry-point class, helper class, layout, drawable and string
resource references only things the same run emitted, and the module ships
keep rules so shrinkers leave it alone.

Available commands:
  generate - Generate (or regenerate) the module
  estimate - Predict module size for the current configuration
  verify   - Check a generated module for broken references
  am       - Manage padgen configuration ("I am")
  version  - Show build information

Examples:
  padgen am init                  # Write ./padgen.toml with defaults
  padgen generate --seed 42       # Reproducible module
  padgen verify build/padgen/junk # Check the result`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debugw("Logger initialized", "verbosity", logger.LevelName(verbosity))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file merged over user and project config")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.EstimateCmd)
	rootCmd.AddCommand(commands.VerifyCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Cleanup()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "  hint: %s\n", hint)
		}
		if errors.Is(err, errors.ErrInvalidConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
