package service

import "sync"

// keyedMutex serializes operations per key. Sessions use it so concurrent
// state transitions on one session id cannot race; mentors use it so metric
// merges on one mentor id are serialized. Mutexes are kept for the process
// lifetime, which is fine at directory scale.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key and returns the unlock function.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
