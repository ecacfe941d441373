package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// recomputeGuard serializes recomputes per leaderboard within this process.
// tryLock never blocks; a held lock means another recompute is running.
type recomputeGuard struct {
	mu   sync.Mutex
	busy map[uuid.UUID]bool
}

func newRecomputeGuard() *recomputeGuard {
	return &recomputeGuard{busy: make(map[uuid.UUID]bool)}
}

func (g *recomputeGuard) tryLock(id uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[id] {
		return false
	}
	g.busy[id] = true
	return true
}

func (g *recomputeGuard) unlock(id uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, id)
}

// RecomputeLease fences recomputes across processes. Acquire returns false
// when another holder has the lease.
type RecomputeLease interface {
	Acquire(ctx context.Context, leaderboardID uuid.UUID) (bool, error)
	Release(ctx context.Context, leaderboardID uuid.UUID)
}

const leaseTTL = 30 * time.Second

type redisLease struct {
	client *redis.Client
}

func NewRedisLease(client *redis.Client) RecomputeLease {
	return &redisLease{client: client}
}

func (l *redisLease) key(id uuid.UUID) string {
	return "leaderboard:recompute:" + id.String()
}

func (l *redisLease) Acquire(ctx context.Context, leaderboardID uuid.UUID) (bool, error) {
	return l.client.SetNX(ctx, l.key(leaderboardID), "1", leaseTTL).Result()
}

func (l *redisLease) Release(ctx context.Context, leaderboardID uuid.UUID) {
	l.client.Del(ctx, l.key(leaderboardID))
}
