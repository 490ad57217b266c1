package modgen

// AndroidSchema is the android: XML namespace.
const AndroidSchema = "http://schemas.android.com/apk/res/android"

// ToolsSchema is the tools: XML namespace used by resource-retention rules.
const ToolsSchema = "http://schemas.android.com/tools"

// Widget is a view class from android.widget that generated layouts and
// call chains may instantiate.
type Widget struct {
	Name string
	// Orientable widgets take android:orientation in a layout.
	Orientable bool
}

// Import returns the fully-qualified class name.
func (w Widget) Import() string {
	return "android.widget." + w.Name
}

// Widgets is the fixed catalog children and call chains are drawn from.
var Widgets = []Widget{
	{Name: "FrameLayout"},
	{Name: "LinearLayout", Orientable: true},
	{Name: "RelativeLayout"},
	{Name: "GridLayout"},
	{Name: "Chronometer"},
	{Name: "Button"},
	{Name: "ImageButton"},
	{Name: "ImageView"},
	{Name: "ProgressBar"},
	{Name: "TextView"},
	{Name: "ViewFlipper"},
	{Name: "ListView"},
	{Name: "GridView"},
	{Name: "StackView"},
	{Name: "AdapterViewFlipper"},
}

// importedTypes are simple names visible in every generated source file;
// a generated class with one of these names would shadow it.
var importedTypes = []string{
	"Activity", "Bundle", "View", "Toast", "R",
	"String", "Object", "Override", "Class", "System",
}

// inheritedMembers are no-arg methods of Activity/Object that a generated
// package-private "void name()" would illegally override.
var inheritedMembers = []string{
	"onCreate", "clone", "finalize", "finish", "notify", "recreate", "wait",
}

func takenClassNames() []string {
	taken := append([]string(nil), importedTypes...)
	for _, w := range Widgets {
		taken = append(taken, w.Name)
	}
	return taken
}
