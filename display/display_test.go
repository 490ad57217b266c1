package display

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/padgen/errors"
)

func TestJSONEmitter_OneEventPerLine(t *testing.T) {
	var buf bytes.Buffer
	e := NewJSONEmitter(&buf)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	e.EmitStage("packages", "Generating 2 packages")
	e.EmitProgress(1, map[string]interface{}{"package": "com.x.abc", "total": 2})
	e.EmitError("root", errors.New("disk full"))
	e.EmitComplete(map[string]interface{}{"activities": 7})

	var events []ProgressEvent
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var ev ProgressEvent
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		events = append(events, ev)
	}
	require.Len(t, events, 4)

	assert.Equal(t, "stage", events[0].Type)
	assert.Equal(t, "packages", events[0].Data["stage"])
	assert.Equal(t, "progress", events[1].Type)
	assert.Equal(t, float64(1), events[1].Data["count"])
	assert.Equal(t, "com.x.abc", events[1].Data["package"])
	assert.Equal(t, "disk full", events[2].Data["error"])
	assert.Equal(t, "complete", events[3].Type)
	assert.True(t, events[3].Timestamp.Equal(fixed))
}

func TestRender_Formats(t *testing.T) {
	v := struct {
		Name  string `json:"name" yaml:"name" toml:"name"`
		Count int    `json:"count" yaml:"count" toml:"count"`
	}{"junk", 3}

	for format, want := range map[string]string{
		FormatJSON: `"count": 3`,
		FormatYAML: "count: 3",
		FormatTOML: "count = 3",
	} {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, v, format), format)
		assert.Contains(t, buf.String(), want, format)
		assert.Equal(t, byte('\n'), buf.Bytes()[buf.Len()-1])
	}

	err := Render(&bytes.Buffer{}, v, "xml")
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestShouldOutputJSON(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().Bool("json", false, "")
	child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(child)

	assert.False(t, ShouldOutputJSON(child))
	require.NoError(t, root.PersistentFlags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(child))
	assert.False(t, ShouldOutputJSON(nil))
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, [2]string{"Key", "Value"}, [][2]string{{"activities", "7"}}))
	assert.Contains(t, buf.String(), "activities")
	assert.Contains(t, buf.String(), "7")
}
