package speech

import (
	"fmt"

	"voicetutor/internal/domain"
	"voicetutor/internal/logger"
	"voicetutor/internal/port"
)

// Result describes one synthesis outcome.
type Result struct {
	AudioPath string
	Engine    string
	Cached    bool
}

// Manager normalizes answer text, checks the audio cache, and tries the
// configured engines in order until one succeeds.
type Manager struct {
	engines []port.Synthesizer
	cache   *AudioCache
}

func NewManager(cache *AudioCache, engines ...port.Synthesizer) *Manager {
	return &Manager{engines: engines, cache: cache}
}

// Speak synthesizes text, preferring a cache hit over any engine. Engine
// failures fall through to the next engine; all engines failing is a
// collaborator outage, not a crash.
func (m *Manager) Speak(text string) (Result, error) {
	clean := Normalize(text)
	if clean == "" {
		return Result{}, domain.ErrEmptyText
	}

	if path := m.cache.Lookup(clean); path != "" {
		return Result{AudioPath: path, Cached: true}, nil
	}

	var lastErr error
	for _, engine := range m.engines {
		path, err := engine.Synthesize(clean)
		if err != nil {
			logger.Warn("engine %s failed: %v", engine.Name(), err)
			lastErr = err
			continue
		}
		return Result{AudioPath: path, Engine: engine.Name()}, nil
	}

	if lastErr == nil {
		lastErr = domain.ErrUnavailable
	}
	return Result{}, fmt.Errorf("all speech engines failed: %w", lastErr)
}

// Engines lists the configured engine names for status reporting.
func (m *Manager) Engines() []string {
	names := make([]string, len(m.engines))
	for i, e := range m.engines {
		names[i] = e.Name()
	}
	return names
}
