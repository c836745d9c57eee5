// Package planlock serializes mutations per plan: while one change to a plan
// is in flight, further changes to the same plan are refused.
package planlock

import (
	"context"
	"errors"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
)

const (
	KeyPrefix  = "planlock:"
	DefaultTTL = 30 * time.Second
)

var (
	ErrMutationInFlight = errors.New("another change to this plan is still in progress")
	ErrLockLost         = errors.New("plan lock expired or is held by someone else")
)

// Locker hands out one lease per plan id. The token returned by Acquire must be
// passed to Extend and Release; a lease also ends on its own when its TTL runs
// out without being extended.
type Locker interface {
	Acquire(ctx context.Context, planID string) (string, error)
	Extend(ctx context.Context, planID, token string) error
	Release(ctx context.Context, planID, token string) error
	TTL() time.Duration
}

// With runs fn while holding the lease for planID. The lease is extended in
// the background every third of its TTL; if an extension fails, the context
// handed to fn is cancelled with ErrLockLost as its cause. Callers check
// Held(ctx) right before committing.
//
// Once fn has returned nil its work is done, so a failed release is only
// logged.
func With(ctx context.Context, l Locker, planID string, fn func(ctx context.Context) error) error {
	token, err := l.Acquire(ctx, planID)
	if err != nil {
		return err
	}

	leaseCtx, cancel := context.WithCancelCause(ctx)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		keepAlive(leaseCtx, l, planID, token, cancel)
	}()

	err = fn(leaseCtx)

	cancel(context.Canceled)
	<-stopped

	if relErr := l.Release(context.WithoutCancel(ctx), planID, token); relErr != nil {
		if err == nil {
			fiberlog.Warnf("[PlanLock] Releasing lease for plan %s failed after a completed change: %v", planID, relErr)
		} else {
			fiberlog.Debugf("[PlanLock] Releasing lease for plan %s failed: %v", planID, relErr)
		}
	}
	return err
}

// Held returns ErrLockLost once the lease behind ctx could not be extended,
// and ctx's own error if it was cancelled for another reason.
func Held(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	return ctx.Err()
}

func keepAlive(ctx context.Context, l Locker, planID, token string, cancel context.CancelCauseFunc) {
	interval := l.TTL() / 3
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Extend(ctx, planID, token); err != nil {
				if ctx.Err() != nil {
					return
				}
				fiberlog.Warnf("[PlanLock] Lost lease for plan %s: %v", planID, err)
				if errors.Is(err, ErrLockLost) {
					cancel(ErrLockLost)
				} else {
					cancel(errors.Join(ErrLockLost, err))
				}
				return
			}
		}
	}
}

func key(planID string) string {
	return KeyPrefix + planID
}
