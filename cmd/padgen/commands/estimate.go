package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teranos/padgen/display"
	"github.com/teranos/padgen/modgen"
)

// EstimateCmd represents the estimate command
var EstimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate how large a generated module will be",
	Long: `Predict the activity and file counts the current configuration produces,
without generating anything. The root package's activity count is the only
random term, so the range is exact.`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	addGenerationFlags(EstimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, generationFlags)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	vol := modgen.Estimate(cfg.Generation.PackageCount,
		cfg.Generation.ActivitiesPerPackage, cfg.Generation.ResourcePrefix)

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), vol)
	}
	return display.Table(cmd.OutOrStdout(), [2]string{"Estimate", cfg.AppPackage()}, [][2]string{
		{"Activities", fmt.Sprintf("%d..%d (expected %.1f)", vol.MinActivities, vol.MaxActivities, vol.ExpectedActivities)},
		{"Files", fmt.Sprintf("%d..%d (expected %.1f)", vol.MinFiles, vol.MaxFiles, vol.ExpectedFiles)},
		{"Packages", strconv.Itoa(cfg.Generation.PackageCount)},
	})
}
