package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"insight-backend/application/ports"
)

// ResourceLocker is an in-process lock table with the same contract as
// the DynamoDB-backed lock. Expired locks are reclaimed on the next
// acquire attempt.
type ResourceLocker struct {
	mu    sync.Mutex
	locks map[string]lockEntry
}

type lockEntry struct {
	owner     string
	expiresAt time.Time
}

// NewResourceLocker creates a new in-memory resource locker
func NewResourceLocker() *ResourceLocker {
	return &ResourceLocker{
		locks: make(map[string]lockEntry),
	}
}

// AcquireLock acquires an exclusive lock on the named resource
func (l *ResourceLocker) AcquireLock(ctx context.Context, resourceName, ownerID string, lockDuration time.Duration) (ports.ResourceLock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, held := l.locks[resourceName]; held && time.Now().Before(entry.expiresAt) {
		return nil, fmt.Errorf("resource %s is locked by %s", resourceName, entry.owner)
	}

	l.locks[resourceName] = lockEntry{
		owner:     ownerID,
		expiresAt: time.Now().Add(lockDuration),
	}

	return &memoryLock{locker: l, resource: resourceName, owner: ownerID}, nil
}

type memoryLock struct {
	locker   *ResourceLocker
	resource string
	owner    string
}

// Release gives the lock back
func (m *memoryLock) Release(ctx context.Context) error {
	m.locker.mu.Lock()
	defer m.locker.mu.Unlock()

	if entry, held := m.locker.locks[m.resource]; held && entry.owner == m.owner {
		delete(m.locker.locks, m.resource)
	}
	return nil
}

var _ ports.ResourceLocker = (*ResourceLocker)(nil)
