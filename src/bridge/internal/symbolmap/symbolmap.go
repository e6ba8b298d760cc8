// Package symbolmap translates raw declaring-type names reported by the target into display names.
package symbolmap

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKey       = "symbolMapping"
	_debounceTimeout = 50 * time.Millisecond
)

// Module provides the symbol mapping store.
var Module = fx.Provide(New)

// Mapping translates raw class names.
type Mapping interface {
	// Display returns the display name of raw, or raw itself when it is not mapped.
	Display(raw string) string
}

// Store is a Mapping backed by a file that is reloaded when it changes on disk.
type Store interface {
	Mapping
	// Reload re-reads the mapping file.
	Reload() error
	// Len returns the number of mapped classes.
	Len() int
}

// Identity maps every name to itself.
var Identity Mapping = identity{}

type identity struct{}

func (identity) Display(raw string) string { return raw }

// Config is the symbolMapping configuration block.
type Config struct {
	Path string `yaml:"path"`
}

// Params define values to be used by the store.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type store struct {
	path   string
	logger *zap.SugaredLogger
	stats  tally.Scope

	mu      sync.RWMutex
	classes map[string]string

	watcher *fsnotify.Watcher
	closer  chan bool
	done    chan struct{}
	timerMu sync.Mutex
	timer   *time.Timer
}

// New creates a Store. Without a configured path the store is empty and maps every name to itself.
func New(p Params) (Store, error) {
	var cfg Config
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKey, err)
	}

	s := &store{
		path:    cfg.Path,
		logger:  p.Logger.With("component", "symbolmap"),
		stats:   p.Stats.SubScope("symbolmap"),
		classes: map[string]string{},
	}
	if s.path == "" {
		return s, nil
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.startWatching()
		},
		OnStop: func(ctx context.Context) error {
			s.stopWatching()
			return nil
		},
	})
	return s, nil
}

func (s *store) Display(raw string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if name, ok := s.classes[raw]; ok {
		return name
	}
	return raw
}

func (s *store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.classes)
}

func (s *store) Reload() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.stats.Counter("load_errors").Inc(1)
		return fmt.Errorf("reading symbol mapping %q: %w", s.path, err)
	}
	classes, err := Parse(s.path, bytes.NewReader(data))
	if err != nil {
		s.stats.Counter("load_errors").Inc(1)
		return fmt.Errorf("parsing symbol mapping %q: %w", s.path, err)
	}

	s.mu.Lock()
	s.classes = classes
	s.mu.Unlock()

	s.stats.Gauge("classes").Update(float64(len(classes)))
	s.logger.Infow("loaded symbol mapping", "path", s.path, "classes", len(classes))
	return nil
}

func (s *store) startWatching() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fs watcher for symbol mapping: %w", err)
	}
	// Watch the directory so editors that replace the file are still observed.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %q: %w", s.path, err)
	}
	s.watcher = watcher
	s.closer = make(chan bool)
	s.done = make(chan struct{})
	go s.handleChanges()
	return nil
}

func (s *store) stopWatching() {
	if s.watcher == nil {
		return
	}
	close(s.closer)
	<-s.done
}

func (s *store) handleChanges() {
	defer close(s.done)
	for {
		select {
		case event := <-s.watcher.Events:
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			s.debounce()
		case err := <-s.watcher.Errors:
			s.logger.Warnf("Failure in symbol mapping watcher: %v", err)
		case <-s.closer:
			s.timerMu.Lock()
			if s.timer != nil {
				s.timer.Stop()
			}
			s.timerMu.Unlock()

			if err := s.watcher.Close(); err != nil {
				s.logger.Warnf("Failed to close symbol mapping watcher: %v", err)
			}
			return
		}
	}
}

func (s *store) debounce() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(_debounceTimeout, func() {
		if err := s.Reload(); err != nil {
			s.logger.Warnf("Keeping previous symbol mapping: %v", err)
		}
	})
}
