package names

// JavaKeywords are the words a generated identifier must never spell:
// language keywords, literals, and the primitive/String type names that
// would read as a type where a name is expected.
var JavaKeywords = []string{
	// primitive types
	"boolean", "byte", "char", "short", "int", "long", "float", "double", "String",
	// access modifiers
	"private", "protected", "public",
	// class, method and variable modifiers
	"abstract", "final", "static", "synchronized", "native", "strictfp", "transient", "volatile",
	// type relations and declarations
	"extends", "implements", "class", "interface", "enum", "record",
	// instances
	"new", "this", "super", "instanceof",
	// exceptions
	"try", "catch", "finally", "throw", "throws",
	// packages
	"package", "import",
	// control flow
	"if", "else", "for", "do", "while", "switch", "case", "default", "break", "continue", "return",
	// everything else
	"assert", "goto", "const", "void", "var", "yield",
	"null", "true", "false",
}

// ResourceKeywords are rejected by the Android resource compiler as names.
var ResourceKeywords = []string{"null"}

// DefaultReserved returns the reserved-word set applied to every identifier.
func DefaultReserved() map[string]struct{} {
	set := make(map[string]struct{}, len(JavaKeywords)+len(ResourceKeywords))
	for _, w := range JavaKeywords {
		set[w] = struct{}{}
	}
	for _, w := range ResourceKeywords {
		set[w] = struct{}{}
	}
	return set
}
