package bridge

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/germanamz/calcy/cmd/calcy/internal/msgs"
	"github.com/germanamz/calcy/pkg/engine"
)

// Sender is the part of *tea.Program the bridge needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Option configures Start.
type Option func(*settings)

type settings struct {
	overrides engine.Overrides
}

// WithOverrides re-applies command-line overrides to every reloaded config,
// so a flag keeps winning over the file after a live reload.
func WithOverrides(o engine.Overrides) Option {
	return func(s *settings) { s.overrides = o }
}

// Start launches the event watcher and, when configPath is non-empty, the
// config file watcher. Both goroutines only call p.Send(); they never touch
// model state directly. The returned cancel function stops both goroutines
// and waits for them to exit, so no stale messages are sent after it returns.
func Start(ctx context.Context, p Sender, events *engine.EventBus, configPath string, log *slog.Logger, opts ...Option) context.CancelFunc {
	var set settings
	for _, opt := range opts {
		opt(&set)
	}

	bridgeCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	sub := events.Subscribe(64)

	// Event watcher: converts engine events to bubbletea messages.
	wg.Go(func() {
		defer events.Unsubscribe(sub)
		for {
			select {
			case <-bridgeCtx.Done():
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				if ev.Kind != engine.EventEvaluated {
					continue
				}
				p.Send(msgs.EvaluatedMsg{
					Previous: ev.State.PreviousExpression,
					Result:   ev.State.Result,
					At:       ev.Timestamp,
				})
			}
		}
	})

	if configPath != "" {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			log.Warn("config watcher unavailable", "error", err)
		} else if err := w.Add(filepath.Dir(configPath)); err != nil {
			log.Warn("cannot watch config directory", "path", configPath, "error", err)
			_ = w.Close()
		} else {
			wg.Go(func() {
				defer func() { _ = w.Close() }()
				watchConfig(bridgeCtx, p, w, configPath, set.overrides, log)
			})
		}
	}

	return func() {
		cancel()
		wg.Wait()
	}
}

// watchConfig reloads configPath whenever it is written or replaced. The
// parent directory is watched because editors often save by renaming a
// temporary file over the original.
func watchConfig(ctx context.Context, p Sender, w *fsnotify.Watcher, configPath string, overrides engine.Overrides, log *slog.Logger) {
	target := filepath.Clean(configPath)

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher error", "error", err)
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			cfg, err := engine.LoadConfig(configPath)
			if err == nil {
				cfg = overrides.Apply(cfg)
				err = cfg.Validate()
			}
			if err != nil {
				log.Warn("config reload failed", "path", configPath, "error", err)
				p.Send(msgs.ConfigErrorMsg{Err: err})
				continue
			}

			log.Info("config reloaded", "path", configPath, "theme", cfg.Theme)
			p.Send(msgs.ConfigChangedMsg{Config: cfg})
		}
	}
}
