// Package cache stores model generations so identical stage calls are
// not re-billed across runs. Keys cover provider, model, temperature and
// the full prompt, so any change to the inputs misses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// GenerationKey builds a cache key for one model call
func GenerationKey(provider, model string, temperature float64, prompt string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%s\x00%.3f\x00%s", provider, model, temperature, prompt)))
	return "halluclean:v1:" + hex.EncodeToString(hash[:])
}
