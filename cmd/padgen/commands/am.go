package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/padgen/am"
	"github.com/teranos/padgen/display"
	"github.com/teranos/padgen/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage padgen configuration",
	Long: `Display and manage padgen configuration ("I am").

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (PADGEN_* prefix)
3. --config file
4. Project config (./padgen.toml, searched upward)
5. User config (~/.padgen/padgen.toml)
6. Default values

Examples:
  padgen am show                     # Show current configuration
  padgen am show --format json       # Show configuration in JSON format
  padgen am get generation.workers   # Get specific config value
  padgen am validate                 # Validate current configuration
  padgen am init                     # Write ./padgen.toml with defaults`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective padgen configuration from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., module.package_name, generation.seed)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate the effective configuration and warn about unknown keys in config files",
	RunE:  runAmValidate,
}

var amInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with default values",
	Long: `Write the default configuration as TOML to path (default ./padgen.toml).

An existing file is only replaced with --force; the previous version is
kept as .back1 (up to three backups).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAmInit,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration cascade, the files that were found, and which
source set each effective value.`,
	RunE: runAmWhere,
}

func init() {
	amShowCmd.Flags().String("format", display.FormatTOML, "Output format: toml, json, yaml")
	amInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	amInitCmd.Flags().Bool("user", false, "Write the user config (~/.padgen/padgen.toml) instead")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amInitCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	format, _ := cmd.Flags().GetString("format")
	if display.ShouldOutputJSON(cmd) {
		format = display.FormatJSON
	}
	out := cmd.OutOrStdout()
	if format == display.FormatTOML {
		fmt.Fprintln(out, "# padgen configuration")
	}
	return display.Render(out, cfg, format)
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if _, err := loadConfig(cmd, nil); err != nil {
		return err
	}

	if !am.GetViper().IsSet(key) {
		return errors.WithHint(
			errors.Newf("configuration key %q not found", key),
			"run 'padgen am where' to list every key")
	}
	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	files := am.ConfigFiles()
	if path := configFlag(cmd); path != "" {
		files = append(files, am.SourceInfo{Source: am.SourceProject, Path: path})
	}
	out := cmd.OutOrStdout()
	for _, file := range files {
		unknown, err := am.UnknownKeys(file.Path)
		if err != nil {
			return err
		}
		for _, key := range unknown {
			fmt.Fprintln(out, pterm.Yellow("! ")+fmt.Sprintf("%s: unknown key %q (ignored)", file.Path, key))
		}
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(out, pterm.Green("✓ ")+"Configuration is valid")
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := am.ConfigFileName
	if len(args) == 1 {
		path = args[0]
	}
	if user, _ := cmd.Flags().GetBool("user"); user {
		path = am.UserConfigPath()
		if path == "" {
			return errors.New("cannot determine home directory")
		}
	}
	force, _ := cmd.Flags().GetBool("force")

	if err := am.Init(path, force); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), pterm.Green("✓ ")+"Wrote "+path)
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd, nil); err != nil {
		return err
	}
	settings := am.Introspect()
	out := cmd.OutOrStdout()

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(out, map[string]interface{}{
			"files":    am.ConfigFiles(),
			"settings": settings,
		})
	}

	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]      Built-in defaults")
	fmt.Fprintf(out, "  2. [USER]         %s\n", orNone(am.UserConfigPath()))
	fmt.Fprintf(out, "  3. [PROJECT]      ./%s (searches up directories)\n", am.ConfigFileName)
	fmt.Fprintf(out, "  4. [ENVIRONMENT]  %s_* environment variables\n", am.EnvPrefix)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Files found:")
	found := am.ConfigFiles()
	if len(found) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, f := range found {
		fmt.Fprintf(out, "  [%s] %s\n", strings.ToUpper(string(f.Source)), f.Path)
	}
	fmt.Fprintln(out)

	rows := make([][2]string, 0, len(settings))
	for _, s := range settings {
		source := string(s.Source)
		if s.SourcePath != "" {
			source += " (" + s.SourcePath + ")"
		}
		rows = append(rows, [2]string{fmt.Sprintf("%s = %v", s.Key, s.Value), source})
	}
	return display.Table(out, [2]string{"Setting", "Source"}, rows)
}

func orNone(path string) string {
	if path == "" {
		return "(no home directory)"
	}
	if _, err := os.Stat(path); err != nil {
		return path + " (missing)"
	}
	return path
}
