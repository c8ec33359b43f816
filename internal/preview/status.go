package preview

import (
	"sync"
	"time"
)

// buildStatus tracks the outcome of the most recent build.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool // true once at least one build succeeded
	lastBuild    time.Time
	fingerprint  string
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
	bs.lastBuild = time.Now()
}

func (bs *buildStatus) setSuccess(fingerprint string) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.hasGoodBuild = true
	bs.lastBuild = time.Now()
	if fingerprint != "" {
		bs.fingerprint = fingerprint
	}
}

func (bs *buildStatus) getStatus() (hasGoodBuild bool, fingerprint string, lastErr error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.hasGoodBuild, bs.fingerprint, bs.lastError
}
