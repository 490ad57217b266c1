package verify

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/padgen/modgen"
)

const fixtureActivity = `package com.example.pad.alpha;

import android.app.Activity;
import android.os.Bundle;
import android.view.View;
import com.example.pad.R;

public class XloremActivity extends Activity {

    @Override
    protected void onCreate(Bundle savedInstanceState) {
        super.onCreate(savedInstanceState);
        setContentView(R.layout.pad_layout_lorem);

        final View first = findViewById(R.id.first);
        final View second = findViewById(R.id.second);
        getString(R.string.pad_hello);
        chain();
    }

    void chain() {
    }
}
`

const fixtureLayout = `<?xml version="1.0" encoding="utf-8"?>
<LinearLayout xmlns:android="http://schemas.android.com/apk/res/android"
    android:orientation="vertical">
    <Button android:id="@+id/first" android:background="@drawable/pad_bg" />
    <TextView android:id="@+id/second" android:background="@drawable/pad_bg" />
</LinearLayout>
`

const fixtureManifest = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android"
    package="com.example.pad">
    <application>
        <activity android:name="com.example.pad.alpha.XloremActivity" />
    </application>
</manifest>
`

const fixtureStrings = `<?xml version="1.0" encoding="utf-8"?>
<resources>
    <string name="pad_hello">abc</string>
</resources>
`

const fixtureKeep = `<?xml version="1.0" encoding="utf-8"?>
<resources xmlns:tools="http://schemas.android.com/tools"
    tools:keep="@layout/pad_*,@drawable/pad_*,@string/pad_*"
    tools:shrinkMode="strict" />
`

// writeFixture lays out a minimal consistent module and returns its root.
// overrides replace or add files by module-relative path; an empty value
// deletes the file.
func writeFixture(t *testing.T, overrides map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "pad")
	files := map[string]string{
		"consumer-rules.pro":                                      "-keep class com.example.pad.** { *; }\n",
		"src/main/AndroidManifest.xml":                            fixtureManifest,
		"src/main/res/values/strings.xml":                         fixtureStrings,
		"src/main/res/layout/pad_layout_lorem.xml":                fixtureLayout,
		"src/main/res/drawable/pad_bg.xml":                        "<vector />\n",
		"src/main/res/raw/pad_keep.xml":                           fixtureKeep,
		"src/main/java/com/example/pad/alpha/XloremActivity.java": fixtureActivity,
		"src/main/java/com/example/pad/alpha/Hold.java":           "package com.example.pad.alpha;\n\npublic class Hold {\n}\n",
	}
	for k, v := range overrides {
		files[k] = v
	}
	for rel, content := range files {
		if content == "" {
			continue
		}
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func checks(r *Report) []string {
	var out []string
	for _, v := range r.Violations {
		out = append(out, v.Check)
	}
	return out
}

func TestModule_ConsistentFixture(t *testing.T) {
	root := writeFixture(t, nil)

	report, err := Module(root, "pad_")
	require.NoError(t, err)
	assert.True(t, report.OK(), "violations: %v", report.Violations)
	assert.Equal(t, "com.example.pad", report.Package)
	assert.Equal(t, 1, report.Activities)
	assert.Equal(t, 1, report.Helpers)
	assert.Equal(t, 1, report.StringKeys)
	assert.Equal(t, 2, report.ViewIDs)
	assert.Len(t, report.Digest, 16)
}

func TestModule_Violations(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		prefix    string
		want      string
	}{
		{
			name: "layout declares an unbound view",
			overrides: map[string]string{"src/main/res/layout/pad_layout_lorem.xml": `<LinearLayout xmlns:android="http://schemas.android.com/apk/res/android">
    <Button android:id="@+id/first" android:background="@drawable/pad_bg" />
    <Button android:id="@+id/second" android:background="@drawable/pad_bg" />
    <Button android:id="@+id/third" android:background="@drawable/pad_bg" />
</LinearLayout>`},
			prefix: "pad_",
			want:   CheckViewWiring,
		},
		{
			name: "bindings out of order",
			overrides: map[string]string{"src/main/res/layout/pad_layout_lorem.xml": `<LinearLayout xmlns:android="http://schemas.android.com/apk/res/android">
    <Button android:id="@+id/second" android:background="@drawable/pad_bg" />
    <Button android:id="@+id/first" android:background="@drawable/pad_bg" />
</LinearLayout>`},
			prefix: "pad_",
			want:   CheckViewWiring,
		},
		{
			name:      "missing string key",
			overrides: map[string]string{"src/main/res/values/strings.xml": "<resources></resources>"},
			prefix:    "pad_",
			want:      CheckStringKeys,
		},
		{
			name: "undeclared activity",
			overrides: map[string]string{"src/main/AndroidManifest.xml": `<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example.pad">
    <application></application>
</manifest>`},
			prefix: "pad_",
			want:   CheckManifest,
		},
		{
			name: "declared activity without source",
			overrides: map[string]string{"src/main/AndroidManifest.xml": `<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example.pad">
    <application>
        <activity android:name="com.example.pad.alpha.XloremActivity" />
        <activity android:name="com.example.pad.GhostActivity" />
    </application>
</manifest>`},
			prefix: "pad_",
			want:   CheckManifest,
		},
		{
			name:      "keep file without prefix",
			overrides: nil,
			prefix:    "",
			want:      CheckRetention,
		},
		{
			name: "unanchored keep pattern",
			overrides: map[string]string{"src/main/res/raw/pad_keep.xml": `<resources xmlns:tools="http://schemas.android.com/tools"
    tools:keep="@layout/pad_*,@drawable/*" />`},
			prefix: "pad_",
			want:   CheckRetention,
		},
		{
			name:      "missing background drawable",
			overrides: map[string]string{"src/main/res/drawable/pad_bg.xml": ""},
			prefix:    "pad_",
			want:      CheckResourceLayout,
		},
		{
			name: "string key spells a keyword with its prefix",
			overrides: map[string]string{"src/main/res/values/strings.xml": `<resources>
    <string name="pad_hello">abc</string>
    <string name="super">abc</string>
</resources>`},
			prefix: "s",
			want:   CheckKeywordSafety,
		},
		{
			name: "reserved method name",
			overrides: map[string]string{"src/main/java/com/example/pad/alpha/Hold.java": "package com.example.pad.alpha;\n\npublic class Hold {\n    void goto() {\n    }\n}\n"},
			prefix: "pad_",
			want:   CheckKeywordSafety,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeFixture(t, tt.overrides)
			report, err := Module(root, tt.prefix)
			require.NoError(t, err)
			assert.False(t, report.OK())
			assert.Contains(t, checks(report), tt.want)
		})
	}
}

func TestModule_MisplacedSource(t *testing.T) {
	root := writeFixture(t, map[string]string{
		"src/main/java/com/example/pad/Stray.java": "package com.example.pad.alpha;\n\npublic class Stray {\n}\n",
	})
	_, err := Module(root, "pad_")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stray")
}

func TestModule_MissingDirectory(t *testing.T) {
	_, err := Module(filepath.Join(t.TempDir(), "absent"), "")
	require.Error(t, err)
}

func TestParseSource(t *testing.T) {
	src, err := ParseSource("X.java", []byte(fixtureActivity))
	require.NoError(t, err)
	assert.Equal(t, "com.example.pad.alpha", src.Package)
	assert.Equal(t, "XloremActivity", src.ClassName)
	assert.True(t, src.Activity)
	assert.Equal(t, "pad_layout_lorem", src.Layout)
	assert.Equal(t, []string{"first", "second"}, src.Bindings)
	assert.Equal(t, []string{"pad_hello"}, src.StringRefs)
	assert.Equal(t, []string{"chain"}, src.Methods)

	_, err = ParseSource("Y.java", []byte("class Y {}"))
	assert.Error(t, err)
}

func TestDigest_ChangesWithContent(t *testing.T) {
	root := writeFixture(t, nil)
	before, err := Digest(root)
	require.NoError(t, err)

	again, err := Digest(root)
	require.NoError(t, err)
	assert.Equal(t, before, again)

	require.NoError(t, os.WriteFile(filepath.Join(root, "build.gradle"), []byte("x"), 0644))
	after, err := Digest(root)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestModule_GeneratedTree(t *testing.T) {
	res, err := modgen.Run(context.Background(), modgen.Options{
		OutputDir:            t.TempDir(),
		AppPackage:           "com.dev.junk.plugin",
		PackageCount:         3,
		ActivitiesPerPackage: 4,
		ResourcePrefix:       "junk_",
		Seed:                 99,
	})
	require.NoError(t, err)

	report, err := Module(res.ModuleDir, "junk_")
	require.NoError(t, err)
	assert.True(t, report.OK(), "violations: %v", report.Violations)
	assert.Equal(t, res.Activities, report.Activities)
	assert.Equal(t, res.Activities, report.Helpers)
	assert.Equal(t, res.StringKeys, report.StringKeys)
}
