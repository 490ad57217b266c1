package modgen

import (
	"fmt"
	"strings"
)

// maxStringValueLen bounds string-table filler values.
const maxStringValueLen = 1000

// buildDescriptor is the static module build file. It depends on nothing
// the run produces.
const buildDescriptor = `plugins {
    id 'com.android.library'
}

android {
    compileSdkVersion 30

    defaultConfig {
        minSdkVersion 21
        targetSdkVersion 29

        consumerProguardFiles "consumer-rules.pro"
    }

    compileOptions {
        sourceCompatibility JavaVersion.VERSION_1_8
        targetCompatibility JavaVersion.VERSION_1_8
    }
}

dependencies {
    compileOnly 'androidx.appcompat:appcompat:1.3.1'
}
`

// Aggregate emits the manifest, string table, build descriptor and
// retention rules from the registry as it stands.
func (s *Session) Aggregate() error {
	steps := []func() error{
		s.GenerateManifest,
		s.GenerateStringTable,
		s.GenerateBuildDescriptor,
		s.GenerateRetentionRules,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// GenerateManifest declares every registered activity, in registry order.
func (s *Session) GenerateManifest() error {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	fmt.Fprintf(&sb, "<manifest xmlns:android=%q\n", AndroidSchema)
	fmt.Fprintf(&sb, "    package=%q>\n\n", s.opts.AppPackage)
	sb.WriteString("    <application>\n")
	for _, a := range s.registry.Activities() {
		fmt.Fprintf(&sb, "        <activity android:name=%q />\n", a)
	}
	sb.WriteString("    </application>\n\n")
	sb.WriteString("</manifest>\n")
	return s.writeFile(s.layout.Manifest(), sb.String())
}

// GenerateStringTable writes one entry per registered key. Values are
// drawn here and not remembered.
func (s *Session) GenerateStringTable() error {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	sb.WriteString("<resources>\n")
	for _, key := range s.registry.StringKeys() {
		fmt.Fprintf(&sb, "    <string name=%q>%s</string>\n", key, s.names.Filler(maxStringValueLen))
	}
	sb.WriteString("</resources>\n")
	return s.writeFile(s.layout.Strings(), sb.String())
}

// GenerateBuildDescriptor writes build.gradle.
func (s *Session) GenerateBuildDescriptor() error {
	return s.writeFile(s.layout.BuildFile(), buildDescriptor)
}

// GenerateRetentionRules always keeps the whole root package. With a
// resource prefix it also writes a keep file for prefixed layouts,
// drawables and strings.
func (s *Session) GenerateRetentionRules() error {
	rules := fmt.Sprintf("-keep class %s.** { *; }\n", s.opts.AppPackage)
	if err := s.writeFile(s.layout.CodeRules(), rules); err != nil {
		return err
	}

	prefix := s.opts.ResourcePrefix
	if prefix == "" {
		return nil
	}
	keep := ResourceKeepPatterns(prefix)
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	fmt.Fprintf(&sb, "<resources xmlns:tools=%q\n", ToolsSchema)
	fmt.Fprintf(&sb, "    tools:keep=%q\n", strings.Join(keep, ","))
	sb.WriteString("    tools:shrinkMode=\"strict\" />\n")
	return s.writeFile(s.layout.ResourceRules(prefix), sb.String())
}

// ResourceKeepPatterns returns the tools:keep patterns for prefix.
func ResourceKeepPatterns(prefix string) []string {
	return []string{
		"@layout/" + prefix + "*",
		"@drawable/" + prefix + "*",
		"@string/" + prefix + "*",
	}
}
