package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/padgen/display"
	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/verify"
)

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify <module-dir>",
	Short: "Check a generated module for broken cross-file references",
	Long: `Re-read a generated module and check that the manifest, string table,
layouts, sources and keep rules agree with each other.

Exits non-zero when any check fails.

Examples:
  padgen verify build/padgen/junk
  padgen verify build/padgen/junk --prefix "" --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	VerifyCmd.Flags().String("prefix", "", "Resource prefix the module was generated with (default from config)")
	VerifyCmd.Flags().String("format", display.FormatText, "Output format: text, json, yaml")
}

func runVerify(cmd *cobra.Command, args []string) error {
	prefix, _ := cmd.Flags().GetString("prefix")
	if !cmd.Flags().Changed("prefix") {
		cfg, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}
		prefix = cfg.Generation.ResourcePrefix
	}

	report, err := verify.Module(args[0], prefix)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if display.ShouldOutputJSON(cmd) {
		format = display.FormatJSON
	}
	out := cmd.OutOrStdout()
	if format == display.FormatText {
		if err := display.Table(out, [2]string{"Module", report.ModuleDir}, [][2]string{
			{"Package", report.Package},
			{"Activities", strconv.Itoa(report.Activities)},
			{"Helpers", strconv.Itoa(report.Helpers)},
			{"String keys", strconv.Itoa(report.StringKeys)},
			{"View ids", strconv.Itoa(report.ViewIDs)},
			{"Digest", report.Digest},
		}); err != nil {
			return err
		}
		for _, v := range report.Violations {
			fmt.Fprintln(out, pterm.Red("✗ ")+v.String())
		}
		if report.OK() {
			fmt.Fprintln(out, pterm.Green("✓ ")+"Module is consistent")
		}
	} else if err := display.Render(out, report, format); err != nil {
		return err
	}

	if !report.OK() {
		return errors.Newf("%d violation(s) in %s", len(report.Violations), report.ModuleDir)
	}
	return nil
}
