package locker

import "sync"

type Locker struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func New() *Locker {
	return &Locker{
		inFlight: make(map[string]bool),
	}
}

// TryLock marks key as in progress. It returns false when another caller
// already holds it.
func (l *Locker) TryLock(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight[key] {
		return false
	}
	l.inFlight[key] = true
	return true
}

// IsProcessing checks if a key is currently held.
func (l *Locker) IsProcessing(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight[key]
}

func (l *Locker) Unlock(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, key)
}
