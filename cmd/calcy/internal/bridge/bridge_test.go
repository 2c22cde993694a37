package bridge

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/calcy/cmd/calcy/internal/msgs"
	"github.com/germanamz/calcy/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects messages sent by the bridge.
type recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) snapshot() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestStart_ForwardsEvaluations(t *testing.T) {
	eng := engine.New()
	rec := &recorder{}

	stop := Start(context.Background(), rec, eng.Events(), "", discard())
	defer stop()

	eng.AddDigit("2")
	eng.AddOperator("+")
	eng.AddDigit("2")
	eng.Calculate()

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 10*time.Millisecond)

	got, ok := rec.snapshot()[0].(msgs.EvaluatedMsg)
	require.True(t, ok)
	assert.Equal(t, "2+2 = 4", got.Previous)
	assert.Equal(t, "4", got.Result)
}

func TestStart_StopWaitsForGoroutines(t *testing.T) {
	eng := engine.New()
	rec := &recorder{}

	stop := Start(context.Background(), rec, eng.Events(), "", discard())
	stop()

	eng.AddDigit("1")
	eng.Calculate()
	assert.Empty(t, rec.snapshot())
}

func TestStart_ReloadsConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0o600))

	rec := &recorder{}
	stop := Start(context.Background(), rec, engine.NewEventBus(), path, discard())
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("theme: light\n"), 0o600))

	require.Eventually(t, func() bool {
		for _, m := range rec.snapshot() {
			if c, ok := m.(msgs.ConfigChangedMsg); ok && c.Config.Theme == "light" {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}

func TestStart_ReloadKeepsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0o600))

	rec := &recorder{}
	stop := Start(context.Background(), rec, engine.NewEventBus(), path, discard(),
		WithOverrides(engine.Overrides{Theme: engine.ThemeMono, LogLevel: "debug"}))
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("theme: light\ntape_size: 2\n"), 0o600))

	var got engine.Config
	require.Eventually(t, func() bool {
		for _, m := range rec.snapshot() {
			if c, ok := m.(msgs.ConfigChangedMsg); ok && c.Config.TapeSize == 2 {
				got = c.Config
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, engine.ThemeMono, got.Theme)
	assert.Equal(t, "debug", got.LogLevel)
}

func TestStart_ReportsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0o600))

	rec := &recorder{}
	stop := Start(context.Background(), rec, engine.NewEventBus(), path, discard())
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("theme: neon\n"), 0o600))

	require.Eventually(t, func() bool {
		for _, m := range rec.snapshot() {
			if _, ok := m.(msgs.ConfigErrorMsg); ok {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}
