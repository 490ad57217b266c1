package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/padgen/am"
	"github.com/teranos/padgen/archive"
	"github.com/teranos/padgen/display"
	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/logger"
	padtest "github.com/teranos/padgen/internal/testing"
	"github.com/teranos/padgen/modgen"
	"github.com/teranos/padgen/verify"
	"github.com/teranos/padgen/version"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real padgen.toml leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	t.Chdir(project)
	am.Reset()
	t.Cleanup(am.Reset)
	return project
}

// execute runs sub under a fresh root with the global flags main.go adds.
func execute(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()
	resetFlags(sub)

	root := &cobra.Command{Use: "padgen", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().CountP("verbose", "v", "")
	root.PersistentFlags().BoolP("json", "j", false, "")
	root.PersistentFlags().StringP("config", "c", "", "")
	root.AddCommand(sub)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags undoes flag values a previous execute left on the global
// commands.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func readEvents(t *testing.T, out string) []display.ProgressEvent {
	t.Helper()
	var events []display.ProgressEvent
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var ev display.ProgressEvent
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev), sc.Text())
		events = append(events, ev)
	}
	return events
}

func TestGenerate_ArchiveThenVerify(t *testing.T) {
	isolate(t)
	outDir := t.TempDir()

	out, err := execute(t, GenerateCmd, "generate", "--json",
		"-o", outDir, "--seed", "42", "-p", "2", "-a", "2", "--archive")
	require.NoError(t, err)

	events := readEvents(t, out)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, "info", last.Type)
	assert.Contains(t, last.Data["message"], "Packed")

	bundle := filepath.Join(outDir, archive.BundleName(am.DefaultModuleName, am.DefaultPackageName, am.DefaultSuffix))
	entries, err := archive.Entries(bundle)
	require.NoError(t, err)
	assert.Contains(t, entries, "src/main/AndroidManifest.xml")

	am.Reset()
	out, err = execute(t, VerifyCmd, "verify", filepath.Join(outDir, am.DefaultModuleName), "--format", "json")
	require.NoError(t, err, out)

	var report verify.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.OK(), "%v", report.Violations)
	assert.Equal(t, "com.dev.junk.plugin", report.Package)
	assert.Equal(t, report.Activities, report.StringKeys)
}

func TestPackBundle_LogsRunID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	previous := logger.Logger
	logger.Logger = zap.New(core).Sugar()
	defer func() { logger.Logger = previous }()

	res := padtest.GenerateModule(t, modgen.Options{PackageCount: 1, ActivitiesPerPackage: 1})
	bundle := filepath.Join(t.TempDir(), "bundle.zip")
	var events bytes.Buffer

	ctx := logger.WithRunID(context.Background(), res.RunID)
	require.NoError(t, packBundle(ctx, res.ModuleDir, bundle, display.NewJSONEmitter(&events)))
	assert.FileExists(t, bundle)

	packed := logs.FilterMessage("Packed module").All()
	require.Len(t, packed, 1)
	assert.Equal(t, res.RunID, packed[0].ContextMap()[logger.FieldRunID])
	assert.Contains(t, events.String(), "Packed")
}

func TestGenerate_InvalidFlag(t *testing.T) {
	isolate(t)
	_, err := execute(t, GenerateCmd, "generate", "-o", t.TempDir(), "-p", "-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestGenerate_WatchNeedsConfigFile(t *testing.T) {
	isolate(t)
	_, err := execute(t, GenerateCmd, "generate", "--watch")
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestVerify_BrokenModuleFails(t *testing.T) {
	isolate(t)
	res := padtest.GenerateModule(t, modgen.Options{
		PackageCount:         1,
		ActivitiesPerPackage: 2,
		ResourcePrefix:       "junk_",
	})
	require.NoError(t, os.RemoveAll(filepath.Join(modgen.ModuleLayout{Root: res.ModuleDir}.ResRoot(), "layout")))

	out, err := execute(t, VerifyCmd, "verify", res.ModuleDir, "--prefix", "junk_")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "violation")
	assert.Contains(t, out, verify.CheckViewWiring)
}

func TestEstimate_JSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, EstimateCmd, "estimate", "--json", "-p", "2", "-a", "3")
	require.NoError(t, err)

	var vol modgen.Volume
	require.NoError(t, json.Unmarshal([]byte(out), &vol))
	assert.Equal(t, 7, vol.MinActivities)
	assert.Equal(t, 9, vol.MaxActivities)
}

func TestAm_InitGetShow(t *testing.T) {
	project := isolate(t)

	out, err := execute(t, AmCmd, "am", "init")
	require.NoError(t, err)
	assert.Contains(t, out, am.ConfigFileName)
	assert.FileExists(t, filepath.Join(project, am.ConfigFileName))

	_, err = execute(t, AmCmd, "am", "init")
	require.Error(t, err, "existing file needs --force")

	am.Reset()
	out, err = execute(t, AmCmd, "am", "get", "module.suffix")
	require.NoError(t, err)
	assert.Equal(t, "plugin\n", out)

	am.Reset()
	t.Setenv("PADGEN_GENERATION_WORKERS", "4")
	out, err = execute(t, AmCmd, "am", "show", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "workers: 4")

	am.Reset()
	_, err = execute(t, AmCmd, "am", "get", "generation.nope")
	require.Error(t, err)
}

func TestAm_ValidateWarnsUnknownKeys(t *testing.T) {
	project := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(project, am.ConfigFileName), []byte(`
[generation]
package_cuont = 9
`), 0644))

	out, err := execute(t, AmCmd, "am", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, `unknown key "generation.package_cuont"`)
	assert.Contains(t, out, "Configuration is valid")
}

func TestVersion_JSON(t *testing.T) {
	out, err := execute(t, VersionCmd, "version", "--json")
	require.NoError(t, err)

	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Get(), info)
}
