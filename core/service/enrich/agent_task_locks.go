package enrich

import "sync"

// taskLocks serializes enrichment runs per (email, task) pair so
// concurrent triggers for the same field never race duplicate external
// calls. Different tasks on the same email proceed in parallel. Locks
// live only in memory: a process restart loses in-flight runs and the
// caller simply re-triggers.
type taskLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTaskLocks() *taskLocks {
	return &taskLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the (email, task) pair, creating its mutex on first use.
// The returned function releases the lock.
func (t *taskLocks) acquire(emailID, task string) func() {
	key := emailID + "/" + task

	t.mu.Lock()
	lock, ok := t.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[key] = lock
	}
	t.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
