package am

import (
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/logger"
)

// DefaultDebounce collapses the burst of events one editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// ConfigWatcher watches a config file and calls back with the reloaded
// configuration after each change
type ConfigWatcher struct {
	configPath     string
	watcher        *fsnotify.Watcher
	callbacks      []ReloadCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	load           func() (*Config, error)

	// reloadMu serialises load and callbacks across debounce timers
	reloadMu sync.Mutex

	isOwnWrite      bool
	isOwnWriteMutex sync.Mutex
}

// ReloadCallback is called when config is reloaded
type ReloadCallback func(*Config) error

var (
	globalWatcher   *ConfigWatcher
	globalWatcherMu sync.Mutex
)

// NewConfigWatcher creates a watcher on configPath. The parent directory
// is watched so editors that replace the file on save are still seen.
func NewConfigWatcher(configPath string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", configPath)
	}

	cw := &ConfigWatcher{
		configPath:     configPath,
		watcher:        watcher,
		debouncePeriod: DefaultDebounce,
	}
	cw.load = func() (*Config, error) {
		Reset()
		return Load()
	}
	return cw, nil
}

// SetLoader replaces the full-cascade reload, e.g. with LoadFromFile.
func (cw *ConfigWatcher) SetLoader(load func() (*Config, error)) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.load = load
}

// SetDebounce overrides DefaultDebounce.
func (cw *ConfigWatcher) SetDebounce(d time.Duration) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.debouncePeriod = d
}

// OnReload registers a callback to be called when config is reloaded
func (cw *ConfigWatcher) OnReload(callback ReloadCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

// MarkOwnWrite marks the next write as coming from us (prevents reload loops)
func (cw *ConfigWatcher) MarkOwnWrite() {
	cw.isOwnWriteMutex.Lock()
	defer cw.isOwnWriteMutex.Unlock()
	cw.isOwnWrite = true
}

func (cw *ConfigWatcher) checkOwnWrite() bool {
	cw.isOwnWriteMutex.Lock()
	defer cw.isOwnWriteMutex.Unlock()
	if cw.isOwnWrite {
		cw.isOwnWrite = false
		return true
	}
	return false
}

// Start begins watching for config file changes
func (cw *ConfigWatcher) Start() {
	go cw.watchLoop()
}

func (cw *ConfigWatcher) watchLoop() {
	target := filepath.Clean(cw.configPath)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || isBackupFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if cw.checkOwnWrite() {
				logger.Debugw("Config watcher ignoring own write", logger.FieldPath, event.Name)
				continue
			}
			logger.Infow("Config watcher detected change",
				logger.FieldPath, event.Name,
				"op", event.Op.String())
			cw.scheduleReload()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Config watcher error", logger.FieldError, err)
		}
	}
}

func (cw *ConfigWatcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.debounceTimer = time.AfterFunc(cw.debouncePeriod, func() {
		if err := cw.reload(); err != nil {
			logger.Errorw("Config reload failed", logger.FieldError, err)
		}
	})
}

func (cw *ConfigWatcher) reload() error {
	cw.reloadMu.Lock()
	defer cw.reloadMu.Unlock()

	cw.mu.RLock()
	load := cw.load
	callbacks := make([]ReloadCallback, len(cw.callbacks))
	copy(callbacks, cw.callbacks)
	cw.mu.RUnlock()

	cfg, err := load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	logger.Infow("Config reloaded", logger.FieldPath, cw.configPath)

	for _, callback := range callbacks {
		if err := callback(cfg); err != nil {
			logger.Warnw("Config reload callback error", logger.FieldError, err)
		}
	}
	return nil
}

// Stop stops watching for config changes
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.mu.Unlock()
	return cw.watcher.Close()
}

var backupSuffix = regexp.MustCompile(`\.back[0-9]+$`)

func isBackupFile(path string) bool {
	return backupSuffix.MatchString(filepath.Base(path))
}

// SetGlobalWatcher registers watcher so Save can mark its own writes
func SetGlobalWatcher(watcher *ConfigWatcher) {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	globalWatcher = watcher
}
