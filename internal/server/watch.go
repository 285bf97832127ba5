package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mgio "github.com/matzehuels/modelgraph/pkg/io"
)

const watchDebounce = 100 * time.Millisecond

// watchFile reseeds file-backed sessions whenever the watched file is
// written or replaced. The parent directory is watched so editors that save
// by rename are seen too.
func (s *Server) watchFile(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(s.cfg.WatchFile)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", target, err)
	}
	s.logger.Info("watching document", "file", target)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				if _, err := s.reload(); err != nil {
					s.logger.Error("reload failed", "file", target, "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// reload imports the watched file and reseeds every session created from
// it. A document that fails to import leaves the sessions untouched.
func (s *Server) reload() (int, error) {
	doc, err := mgio.ImportDocument(s.cfg.WatchFile)
	if err != nil {
		return 0, err
	}
	n := s.sessions.reseed(s.cfg.WatchFile, doc)
	s.logger.Info("reseeded sessions", "file", s.cfg.WatchFile, "sessions", n)
	return n, nil
}
