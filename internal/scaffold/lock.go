package scaffold

import "sync"

// pathLocks hands out one mutex per absolute base path. Entries are reference
// counted and dropped once no caller holds or waits on them.
type pathLocks struct {
	mu   sync.Mutex
	held map[string]*pathLock
}

type pathLock struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until path is free and returns the matching unlock function.
func (l *pathLocks) lock(path string) (unlock func()) {
	l.mu.Lock()
	if l.held == nil {
		l.held = make(map[string]*pathLock)
	}
	pl, ok := l.held[path]
	if !ok {
		pl = &pathLock{}
		l.held[path] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()

		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.held, path)
		}
		l.mu.Unlock()
	}
}

// size reports how many paths currently have holders or waiters.
func (l *pathLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}
