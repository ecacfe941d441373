package leaderboard

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/internal/modules/leaderboard/dto"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

type fakeLeaderboardRepo struct {
	boards      map[uuid.UUID]*entity.Leaderboard
	entries     []*entity.LeaderboardEntry
	nextEntryID uint
	updated     [][]*entity.LeaderboardEntry
}

func newFakeLeaderboardRepo() *fakeLeaderboardRepo {
	return &fakeLeaderboardRepo{
		boards:      make(map[uuid.UUID]*entity.Leaderboard),
		nextEntryID: 1,
	}
}

func (f *fakeLeaderboardRepo) Create(ctx context.Context, board *entity.Leaderboard) error {
	if board.ID == uuid.Nil {
		board.ID = uuid.New()
	}
	f.boards[board.ID] = board
	return nil
}

func (f *fakeLeaderboardRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Leaderboard, error) {
	board, ok := f.boards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return board, nil
}

func (f *fakeLeaderboardRepo) FindAll(ctx context.Context) ([]*entity.Leaderboard, error) {
	var boards []*entity.Leaderboard
	for _, b := range f.boards {
		boards = append(boards, b)
	}
	return boards, nil
}

func (f *fakeLeaderboardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.boards, id)
	return nil
}

func (f *fakeLeaderboardRepo) CreateEntry(ctx context.Context, entry *entity.LeaderboardEntry) error {
	entry.ID = f.nextEntryID
	f.nextEntryID++
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLeaderboardRepo) FindEntry(ctx context.Context, leaderboardID, userID uuid.UUID) (*entity.LeaderboardEntry, error) {
	for _, e := range f.entries {
		if e.LeaderboardID == leaderboardID && e.UserID == userID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaderboardRepo) FindEntries(ctx context.Context, leaderboardID uuid.UUID) ([]*entity.LeaderboardEntry, error) {
	var entries []*entity.LeaderboardEntry
	for _, e := range f.entries {
		if e.LeaderboardID == leaderboardID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (f *fakeLeaderboardRepo) UpdateEntries(ctx context.Context, entries []*entity.LeaderboardEntry) error {
	f.updated = append(f.updated, entries)
	return nil
}

type fakeScores struct {
	connections   map[uuid.UUID]int64
	introductions map[uuid.UUID]int64
}

func (f *fakeScores) CountDirectConnections(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.connections[userID], nil
}

func (f *fakeScores) CountAcceptedIntroductions(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.introductions[userID], nil
}

func seedBoard(t *testing.T, repo *fakeLeaderboardRepo, criteria string, users ...uuid.UUID) uuid.UUID {
	t.Helper()

	board := &entity.Leaderboard{Name: "Test Board", Criteria: criteria}
	require.NoError(t, repo.Create(context.Background(), board))

	for _, id := range users {
		require.NoError(t, repo.CreateEntry(context.Background(), &entity.LeaderboardEntry{
			LeaderboardID: board.ID,
			UserID:        id,
		}))
	}
	return board.ID
}

func TestRecomputeRanksDescending(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	boardID := seedBoard(t, repo, entity.CriteriaIntroductionsMade, alice, bob, carol)

	scores := &fakeScores{introductions: map[uuid.UUID]int64{
		alice: 1,
		bob:   5,
		carol: 3,
	}}

	svc := NewLeaderboardService(repo, scores, nil)

	resp, err := svc.Recompute(context.Background(), boardID)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)

	assert.Equal(t, bob, resp.Entries[0].UserID)
	assert.Equal(t, 5, resp.Entries[0].Score)
	assert.Equal(t, 1, resp.Entries[0].Rank)

	assert.Equal(t, carol, resp.Entries[1].UserID)
	assert.Equal(t, 2, resp.Entries[1].Rank)

	assert.Equal(t, alice, resp.Entries[2].UserID)
	assert.Equal(t, 3, resp.Entries[2].Rank)

	require.Len(t, repo.updated, 1)
	assert.Len(t, repo.updated[0], 3)
}

func TestRecomputeStableTieBreak(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	first, second := uuid.New(), uuid.New()
	boardID := seedBoard(t, repo, entity.CriteriaIntroductionsMade, first, second)

	scores := &fakeScores{introductions: map[uuid.UUID]int64{
		first:  2,
		second: 2,
	}}

	svc := NewLeaderboardService(repo, scores, nil)

	resp, err := svc.Recompute(context.Background(), boardID)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)

	// Equal scores keep entry creation order.
	assert.Equal(t, first, resp.Entries[0].UserID)
	assert.Equal(t, 1, resp.Entries[0].Rank)
	assert.Equal(t, second, resp.Entries[1].UserID)
	assert.Equal(t, 2, resp.Entries[1].Rank)
}

func TestRecomputeReputationCombinesCounters(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	user := uuid.New()
	boardID := seedBoard(t, repo, entity.CriteriaWeavrReputation, user)

	scores := &fakeScores{
		connections:   map[uuid.UUID]int64{user: 3},
		introductions: map[uuid.UUID]int64{user: 1},
	}

	svc := NewLeaderboardService(repo, scores, nil)

	resp, err := svc.Recompute(context.Background(), boardID)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, 4, resp.Entries[0].Score)
}

func TestRecomputeUnsupportedCriteria(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	boardID := seedBoard(t, repo, "Most Coffee Consumed")

	svc := NewLeaderboardService(repo, &fakeScores{}, nil)

	_, err := svc.Recompute(context.Background(), boardID)
	assert.ErrorIs(t, err, apperror.ErrUnsupportedCriteria)
	assert.Empty(t, repo.updated)
}

func TestRecomputeUnknownLeaderboard(t *testing.T) {
	repo := newFakeLeaderboardRepo()

	svc := NewLeaderboardService(repo, &fakeScores{}, nil)

	_, err := svc.Recompute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRecomputeGuardRejectsConcurrent(t *testing.T) {
	guard := newRecomputeGuard()
	id := uuid.New()

	require.True(t, guard.tryLock(id))
	assert.False(t, guard.tryLock(id))

	guard.unlock(id)
	assert.True(t, guard.tryLock(id))
}

func TestJoinLeaderboardTwice(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	boardID := seedBoard(t, repo, entity.CriteriaIntroductionsMade)
	user := uuid.New()

	svc := NewLeaderboardService(repo, &fakeScores{}, nil)

	require.NoError(t, svc.JoinLeaderboard(context.Background(), boardID, user))
	err := svc.JoinLeaderboard(context.Background(), boardID, user)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestGetUserRankNotOnBoard(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	boardID := seedBoard(t, repo, entity.CriteriaIntroductionsMade)

	svc := NewLeaderboardService(repo, &fakeScores{}, nil)

	_, err := svc.GetUserRank(context.Background(), boardID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateLeaderboardInvalidDates(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	svc := NewLeaderboardService(repo, &fakeScores{}, nil)

	start := mustTime(t, "2026-02-01")
	end := mustTime(t, "2026-01-01")

	_, err := svc.CreateLeaderboard(context.Background(), dto.CreateLeaderboardRequest{
		Name:      "Winter Sprint",
		Criteria:  entity.CriteriaIntroductionsMade,
		StartDate: &start,
		EndDate:   &end,
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}
