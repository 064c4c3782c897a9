package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"voicetutor/internal/logger"
)

// AudioCache stores synthesized audio keyed by a hash of the literal
// answer text, so the same answer is never synthesized twice.
type AudioCache struct {
	dir string
}

func NewAudioCache(dir string) *AudioCache {
	return &AudioCache{dir: dir}
}

func textHash(text string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(hash[:16])
}

// Path returns the cache path for text with the given extension.
func (c *AudioCache) Path(text, extension string) string {
	return filepath.Join(c.dir, "audio_"+textHash(text)+extension)
}

// Lookup returns the cached audio path for text, checking both common
// formats. The empty string means a miss.
func (c *AudioCache) Lookup(text string) string {
	for _, ext := range []string{".mp3", ".wav"} {
		path := c.Path(text, ext)
		if _, err := os.Stat(path); err == nil {
			logger.Debug("audio cache hit: %s", filepath.Base(path))
			return path
		}
	}
	return ""
}
