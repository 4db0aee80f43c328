package cart

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sweetslice/storefront/pkg/logger"
)

const fileSuffix = ".json"

// FileStore writes one JSON file per cart under a directory so that several local
// processes (the API and the CLI) can share carts.
type FileStore struct {
	dir  string
	logg *logger.Logger

	mu      sync.Mutex
	written map[string][32]byte

	debounce time.Duration
	tick     time.Duration
}

func NewFileStore(dir string, logg *logger.Logger) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("cart directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cart directory: %w", err)
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &FileStore{
		dir:      dir,
		logg:     logg,
		written:  make(map[string][32]byte),
		debounce: 150 * time.Millisecond,
		tick:     50 * time.Millisecond,
	}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if !ValidSession(key) {
		return "", fmt.Errorf("invalid cart key %q", key)
	}
	return filepath.Join(s.dir, key+fileSuffix), nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set replaces the file atomically through a rename.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".cart-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	s.remember(key, data)
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (s *FileStore) Clear(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	s.remember(key, nil)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) remember(key string, data []byte) {
	s.mu.Lock()
	s.written[key] = sha256.Sum256(data)
	s.mu.Unlock()
}

// changedExternally reports whether the file differs from what this process last wrote.
func (s *FileStore) changedExternally(key string) bool {
	data, found, err := s.Get(context.Background(), key)
	if err != nil {
		return true
	}
	if !found {
		data = nil
	}
	sum := sha256.Sum256(data)
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.written[key]
	if ok && last == sum {
		return false
	}
	s.written[key] = sum
	return true
}

// Watch reports carts changed by other processes until ctx is done. Rapid successive
// writes to one file are collapsed into a single callback.
func (s *FileStore) Watch(ctx context.Context, onChange func(session string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create cart watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}
	s.logg.Info(s.logg.WithField(ctx, "cart_dir", s.dir), "cart file watcher started")

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	pending := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if session, ok := sessionFromPath(event.Name); ok {
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					pending[session] = time.Now()
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart file watcher error")
		case now := <-ticker.C:
			for session, at := range pending {
				if now.Sub(at) < s.debounce {
					continue
				}
				delete(pending, session)
				if s.changedExternally(session) {
					onChange(session)
				}
			}
		}
	}
}

func sessionFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, fileSuffix) {
		return "", false
	}
	session := strings.TrimSuffix(base, fileSuffix)
	return session, ValidSession(session)
}

// Sweep deletes carts whose file was last written before cutoff, along with temp files
// left behind by interrupted writes. It returns how many carts were removed.
func (s *FileStore) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read cart directory: %w", err)
	}
	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		name := entry.Name()
		path := filepath.Join(s.dir, name)
		if strings.HasPrefix(name, ".cart-") {
			_ = os.Remove(path)
			continue
		}
		session, ok := sessionFromPath(path)
		if !ok {
			continue
		}
		if err := s.Clear(ctx, session); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
