package modgen

import (
	"fmt"
	"strings"

	"github.com/teranos/padgen/logger"
	"github.com/teranos/padgen/names"
)

// ActivitySuffix ends every generated entry-point class name.
const ActivitySuffix = "Activity"

// Call chain length is chainMin + [0,chainSpread); helper values are up to
// maxFillerLen-1 characters.
const (
	chainMin     = 3
	chainSpread  = 20
	maxFillerLen = 1000
)

// GeneratedActivity is everything one emitted entry-point class refers to.
// It is consumed by its own source emission and then dropped.
type GeneratedActivity struct {
	Package         string
	ClassName       string
	LayoutName      string
	StringKey       string
	HelperClassName string
	HelperFields    []string
	// ViewIDs come from the layout, in its declaration order.
	ViewIDs []string

	chain  []string
	widget Widget
	helper string
}

// QualifiedName returns package + "." + class name.
func (a *GeneratedActivity) QualifiedName() string {
	return a.Package + "." + a.ClassName
}

// GenerateActivity writes one entry-point class under pkg together with its
// layout, drawable and helper class, and registers its string key. The
// class itself is registered only once its source file is on disk.
func (s *Session) GenerateActivity(pkg, base string) (*GeneratedActivity, error) {
	classes := s.classScope(pkg)

	className, err := s.names.Unique(classes, func() (string, error) {
		return s.names.Capital() + base + ActivitySuffix, nil
	})
	if err != nil {
		return nil, err
	}
	act := &GeneratedActivity{
		Package:    pkg,
		ClassName:  className,
		LayoutName: s.opts.ResourcePrefix + "layout_" + base,
	}

	layout, err := s.GenerateLayout(act.LayoutName)
	if err != nil {
		return nil, err
	}
	act.ViewIDs = layout.ViewIDs

	act.StringKey, err = s.names.Unique(s.strings, s.prefixedName)
	if err != nil {
		return nil, err
	}
	s.registry.AddStringKey(act.StringKey)

	helperName, err := s.names.Unique(classes, s.names.ClassName)
	if err != nil {
		return nil, err
	}
	helper, err := s.GenerateHelperClass(pkg, helperName)
	if err != nil {
		return nil, err
	}
	act.HelperClassName = helper.Name
	act.HelperFields = helper.Fields

	if err := s.planBody(act); err != nil {
		return nil, err
	}
	if err := s.writeFile(s.layout.Source(pkg, className), s.activitySource(act)); err != nil {
		return nil, err
	}

	s.registry.AddActivity(act.QualifiedName())
	s.log.Debugw("Generated activity",
		logger.FieldClass, act.QualifiedName(),
		logger.FieldLayout, act.LayoutName,
		logger.FieldCount, len(act.ViewIDs))
	return act, nil
}

// planBody picks the local names, call chain and chain widget.
// View ids double as the names of their local variables.
func (s *Session) planBody(act *GeneratedActivity) error {
	locals := names.NewScope("locals of "+act.ClassName, "savedInstanceState", "v")
	for _, id := range act.ViewIDs {
		locals.Claim(id)
	}
	helper, err := s.names.Unique(locals, s.names.Name)
	if err != nil {
		return err
	}
	act.helper = helper

	members := names.NewScope("members of "+act.ClassName, inheritedMembers...)
	n := chainMin + s.rng().IntN(chainSpread)
	for i := 0; i < n; i++ {
		m, err := s.names.Unique(members, s.names.Name)
		if err != nil {
			return err
		}
		act.chain = append(act.chain, m)
	}
	act.widget = Widgets[s.rng().IntN(len(Widgets))]
	return nil
}

func (s *Session) activitySource(act *GeneratedActivity) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "package %s;\n\n", act.Package)
	sb.WriteString("import android.app.Activity;\n")
	sb.WriteString("import android.os.Bundle;\n")
	sb.WriteString("import android.view.View;\n")
	fmt.Fprintf(&sb, "import %s;\n", act.widget.Import())
	sb.WriteString("import android.widget.Toast;\n")
	if act.Package != s.opts.AppPackage {
		fmt.Fprintf(&sb, "import %s.R;\n", s.opts.AppPackage)
	}

	fmt.Fprintf(&sb, "\npublic class %s extends Activity {\n\n", act.ClassName)
	sb.WriteString("    @Override\n")
	sb.WriteString("    protected void onCreate(Bundle savedInstanceState) {\n")
	sb.WriteString("        super.onCreate(savedInstanceState);\n")
	fmt.Fprintf(&sb, "        setContentView(R.layout.%s);\n", act.LayoutName)

	for _, id := range act.ViewIDs {
		fmt.Fprintf(&sb, "\n        final View %s = findViewById(R.id.%s);\n", id, id)
		fmt.Fprintf(&sb, "        %s.setOnClickListener(new View.OnClickListener() {\n", id)
		sb.WriteString("            @Override\n")
		sb.WriteString("            public void onClick(View v) {\n")
		fmt.Fprintf(&sb, "                %s.setVisibility(View.INVISIBLE);\n", id)
		sb.WriteString("            }\n")
		sb.WriteString("        });\n")
	}

	fmt.Fprintf(&sb, "\n        %s %s = new %s();\n", act.HelperClassName, act.helper, act.HelperClassName)
	for _, f := range act.HelperFields {
		fmt.Fprintf(&sb, "        %s.%s = \"%s\";\n", act.helper, f, s.names.Filler(maxFillerLen))
	}

	fmt.Fprintf(&sb, "\n        Toast.makeText(this, getString(R.string.%s), Toast.LENGTH_SHORT).show();\n", act.StringKey)
	fmt.Fprintf(&sb, "        %s();\n", act.chain[0])
	sb.WriteString("    }\n")

	for i, m := range act.chain {
		fmt.Fprintf(&sb, "\n    void %s() {\n", m)
		if i+1 < len(act.chain) {
			fmt.Fprintf(&sb, "        %s();\n", act.chain[i+1])
		} else {
			w := act.widget.Name
			fmt.Fprintf(&sb, "        %s widget = new %s(this);\n", w, w)
			sb.WriteString("        widget.setVisibility(View.VISIBLE);\n")
		}
		sb.WriteString("    }\n")
	}
	sb.WriteString("}\n")

	return sb.String()
}
