// Package display renders padgen output: progress events for the terminal
// or as JSON lines, structured documents, and summary tables.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// ProgressEvent represents a structured JSON progress event
type ProgressEvent struct {
	Type      string                 `json:"type"` // "stage", "progress", "complete", "error", "info"
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// CLIEmitter outputs progress to the terminal using pterm. Safe for use
// from concurrent generation workers.
type CLIEmitter struct {
	mu        sync.Mutex
	verbosity int
}

// NewCLIEmitter creates a CLI progress emitter for terminal output
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return &CLIEmitter{verbosity: verbosity}
}

// EmitStage prints a stage announcement
func (e *CLIEmitter) EmitStage(stage string, message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	pterm.Printf("» %s: %s\n", pterm.LightCyan(stage), message)
}

// EmitProgress prints a finished package
func (e *CLIEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	total, _ := metadata["total"].(int)
	pkg, _ := metadata["package"].(string)
	if total > 0 {
		pterm.Printf("  %s/%d %s\n", pterm.Green(fmt.Sprintf("%d", count)), total, pkg)
	} else {
		pterm.Printf("  %s %s\n", pterm.Green(fmt.Sprintf("%d", count)), pkg)
	}
}

// EmitComplete prints completion summary
func (e *CLIEmitter) EmitComplete(summary map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	pterm.Success.Println("Module generated")
	if e.verbosity >= 1 {
		for _, key := range sortedKeys(summary) {
			pterm.Printf("  %s: %v\n", key, summary[key])
		}
	}
}

// EmitError prints an error
func (e *CLIEmitter) EmitError(stage string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	pterm.Error.Printf("Error in %s: %v\n", stage, err)
}

// EmitInfo prints informational message
func (e *CLIEmitter) EmitInfo(message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.verbosity >= 1 {
		pterm.Info.Println(message)
	}
}

// JSONEmitter writes one JSON event per line
type JSONEmitter struct {
	mu      sync.Mutex
	encoder *json.Encoder
	now     func() time.Time
}

// NewJSONEmitter creates a JSON progress emitter writing to w
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{encoder: json.NewEncoder(w), now: time.Now}
}

func (e *JSONEmitter) emit(kind string, data map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	// progress output is best effort
	_ = e.encoder.Encode(ProgressEvent{Type: kind, Timestamp: e.now(), Data: data})
}

// EmitStage emits a stage event as JSON
func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit("stage", map[string]interface{}{"stage": stage, "message": message})
}

// EmitProgress emits a progress event as JSON
func (e *JSONEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	data := map[string]interface{}{"count": count}
	for k, v := range metadata {
		data[k] = v
	}
	e.emit("progress", data)
}

// EmitComplete emits a completion event as JSON
func (e *JSONEmitter) EmitComplete(summary map[string]interface{}) {
	e.emit("complete", summary)
}

// EmitError emits an error event as JSON
func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]interface{}{"stage": stage, "error": err.Error()})
}

// EmitInfo emits an informational event as JSON
func (e *JSONEmitter) EmitInfo(message string) {
	e.emit("info", map[string]interface{}{"message": message})
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
