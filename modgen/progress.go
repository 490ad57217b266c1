package modgen

// ProgressEmitter receives run progress. Implementations live in display/.
type ProgressEmitter interface {
	// EmitStage announces the start of a generation stage
	EmitStage(stage string, message string)

	// EmitProgress announces a finished unit (a package) with metadata
	EmitProgress(count int, metadata map[string]interface{})

	// EmitComplete announces successful completion with summary
	EmitComplete(summary map[string]interface{})

	// EmitError announces an error during generation
	EmitError(stage string, err error)

	// EmitInfo emits general informational message
	EmitInfo(message string)
}

// Stage names passed to EmitStage
const (
	StageReset     = "reset"
	StagePackages  = "packages"
	StageRoot      = "root"
	StageAggregate = "aggregate"
)

type nopEmitter struct{}

func (nopEmitter) EmitStage(string, string)               {}
func (nopEmitter) EmitProgress(int, map[string]interface{}) {}
func (nopEmitter) EmitComplete(map[string]interface{})      {}
func (nopEmitter) EmitError(string, error)                  {}
func (nopEmitter) EmitInfo(string)                          {}
