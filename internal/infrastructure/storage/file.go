package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ownWriteWindow is how long after a local write events for the same key are
// suppressed. File watchers report our own writes; the browser storage event
// does not, and watchers here keep that contract.
const ownWriteWindow = 750 * time.Millisecond

// FileStore implements Store with one JSON document per key inside a state
// directory. Changes made by other processes sharing the directory are
// surfaced through an fsnotify watcher, which is how two terminal sessions
// keep their badges in sync.
type FileStore struct {
	dir    string
	logger *zap.Logger

	mu         sync.Mutex
	watchers   []WatchFunc
	lastWrites map[string]time.Time

	notifier  *fsnotify.Watcher
	closeOnce sync.Once
	done      chan struct{}
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory when missing
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := notifier.Add(dir); err != nil {
		_ = notifier.Close()
		return nil, fmt.Errorf("watch state dir: %w", err)
	}

	s := &FileStore{
		dir:        dir,
		logger:     logger,
		lastWrites: make(map[string]time.Time),
		notifier:   notifier,
		done:       make(chan struct{}),
	}
	go s.watchLoop()
	return s, nil
}

// Get decodes the value under key into out
func (s *FileStore) Get(key string, out any) bool {
	raw, ok := s.GetRaw(key)
	if !ok {
		return false
	}
	return decode(raw, out)
}

// GetRaw returns the stored bytes under key
func (s *FileStore) GetRaw(key string) ([]byte, bool) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Set stores the JSON encoding of value under key
func (s *FileStore) Set(key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.SetRaw(key, raw)
}

// SetRaw stores raw bytes under key. The write goes through a temp file and
// rename so concurrent readers never observe a partial document.
func (s *FileStore) SetRaw(key string, raw []byte) error {
	s.markOwnWrite(key)

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Remove deletes the key
func (s *FileStore) Remove(key string) error {
	s.markOwnWrite(key)
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in the state directory
func (s *FileStore) Keys() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys
}

// Watch registers fn for external change notifications
func (s *FileStore) Watch(fn WatchFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// Close stops the watcher goroutine
func (s *FileStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.notifier.Close()
	})
	return err
}

// path maps a storage key to its backing file
func (s *FileStore) path(key string) string {
	// keys are fixed constants, but never trust them as path components
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}

func (s *FileStore) markOwnWrite(key string) {
	s.mu.Lock()
	s.lastWrites[key] = time.Now()
	s.mu.Unlock()
}

// isOwnWrite reports whether this process wrote the key recently enough that
// the watcher event echoes our own mutation
func (s *FileStore) isOwnWrite(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.lastWrites[key]
	if !ok {
		return false
	}
	if time.Since(at) > ownWriteWindow {
		delete(s.lastWrites, key)
		return false
	}
	return true
}

// watchLoop translates filesystem events into ChangeEvents
func (s *FileStore) watchLoop() {
	for {
		select {
		case <-s.done:
			return
		case evt, ok := <-s.notifier.Events:
			if !ok {
				return
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(evt.Name)
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			key := strings.TrimSuffix(name, ".json")
			if s.isOwnWrite(key) {
				continue
			}
			s.dispatch(ChangeEvent{Key: key})
		case err, ok := <-s.notifier.Errors:
			if !ok {
				return
			}
			s.logger.Warn("state dir watcher error", zap.Error(err))
		}
	}
}

func (s *FileStore) dispatch(evt ChangeEvent) {
	s.mu.Lock()
	watchers := append([]WatchFunc(nil), s.watchers...)
	s.mu.Unlock()
	for _, fn := range watchers {
		fn(evt)
	}
}

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)
