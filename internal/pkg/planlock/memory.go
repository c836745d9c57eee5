package planlock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type lease struct {
	token   string
	expires time.Time
}

// MemoryLocker keeps leases in process memory. It only serializes callers
// within one process.
type MemoryLocker struct {
	mu     sync.Mutex
	ttl    time.Duration
	leases map[string]lease
	now    func() time.Time
}

// NewMemoryLocker creates an in-process locker; ttl <= 0 means DefaultTTL.
func NewMemoryLocker(ttl time.Duration) *MemoryLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryLocker{
		ttl:    ttl,
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

func (l *MemoryLocker) Acquire(ctx context.Context, planID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if held, ok := l.leases[planID]; ok && now.Before(held.expires) {
		return "", ErrMutationInFlight
	}
	token := uuid.NewString()
	l.leases[planID] = lease{token: token, expires: now.Add(l.ttl)}
	return token, nil
}

// Extend pushes the expiry of a live lease held under token one TTL ahead.
func (l *MemoryLocker) Extend(_ context.Context, planID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	held, ok := l.leases[planID]
	if !ok || held.token != token || !now.Before(held.expires) {
		return ErrLockLost
	}
	l.leases[planID] = lease{token: token, expires: now.Add(l.ttl)}
	return nil
}

func (l *MemoryLocker) Release(_ context.Context, planID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	held, ok := l.leases[planID]
	if !ok || held.token != token {
		return ErrLockLost
	}
	delete(l.leases, planID)
	return nil
}

func (l *MemoryLocker) TTL() time.Duration {
	return l.ttl
}

// InFlight reports whether a live lease exists for planID.
func (l *MemoryLocker) InFlight(planID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	held, ok := l.leases[planID]
	return ok && l.now().Before(held.expires)
}
