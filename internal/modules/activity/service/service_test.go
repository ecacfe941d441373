package activity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

type fakeActivityRepo struct {
	activities map[uuid.UUID][]time.Time
	logs       []*entity.UserPointLog
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: make(map[uuid.UUID][]time.Time)}
}

func (f *fakeActivityRepo) CreateActivity(ctx context.Context, activity *entity.UserActivity) error {
	f.activities[activity.UserID] = append(f.activities[activity.UserID], activity.Date)
	return nil
}

func (f *fakeActivityRepo) HasActivityOn(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	for _, d := range f.activities[userID] {
		if d.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeActivityRepo) ActivityDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	dates := append([]time.Time(nil), f.activities[userID]...)
	// newest first
	for i := 0; i < len(dates); i++ {
		for j := i + 1; j < len(dates); j++ {
			if dates[j].After(dates[i]) {
				dates[i], dates[j] = dates[j], dates[i]
			}
		}
	}
	return dates, nil
}

func (f *fakeActivityRepo) CreatePointLog(ctx context.Context, log *entity.UserPointLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeActivityRepo) SumPoints(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	for _, l := range f.logs {
		if l.UserID == userID {
			total += int64(l.Points)
		}
	}
	return total, nil
}

func (f *fakeActivityRepo) PointLogs(ctx context.Context, userID uuid.UUID) ([]*entity.UserPointLog, error) {
	var logs []*entity.UserPointLog
	for _, l := range f.logs {
		if l.UserID == userID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

var testNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func newTestService(repo *fakeActivityRepo) *activityService {
	return &activityService{
		repo: repo,
		now:  func() time.Time { return testNow },
	}
}

func day(offset int) time.Time {
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestStreakNoActivity(t *testing.T) {
	svc := newTestService(newFakeActivityRepo())

	streak, err := svc.CurrentStreak(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestStreakTodayAndYesterday(t *testing.T) {
	repo := newFakeActivityRepo()
	user := uuid.New()
	repo.activities[user] = []time.Time{day(0), day(-1)}

	svc := newTestService(repo)

	streak, err := svc.CurrentStreak(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestStreakZeroWithoutToday(t *testing.T) {
	repo := newFakeActivityRepo()
	user := uuid.New()
	repo.activities[user] = []time.Time{day(-1), day(-2), day(-3)}

	svc := newTestService(repo)

	streak, err := svc.CurrentStreak(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestStreakEndsToday(t *testing.T) {
	repo := newFakeActivityRepo()
	user := uuid.New()
	repo.activities[user] = []time.Time{day(0), day(-1), day(-2)}

	svc := newTestService(repo)

	streak, err := svc.CurrentStreak(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestStreakBrokenByGap(t *testing.T) {
	repo := newFakeActivityRepo()
	user := uuid.New()
	repo.activities[user] = []time.Time{day(0), day(-2), day(-3)}

	svc := newTestService(repo)

	streak, err := svc.CurrentStreak(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestStreakStaleActivity(t *testing.T) {
	repo := newFakeActivityRepo()
	user := uuid.New()
	repo.activities[user] = []time.Time{day(-5), day(-6)}

	svc := newTestService(repo)

	streak, err := svc.CurrentStreak(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestRecordTodayIsIdempotent(t *testing.T) {
	repo := newFakeActivityRepo()
	user := uuid.New()

	svc := newTestService(repo)

	first, err := svc.RecordToday(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := svc.RecordToday(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 1, second)

	assert.Len(t, repo.activities[user], 1)
}

func TestRecordTodayExtendsStreak(t *testing.T) {
	repo := newFakeActivityRepo()
	user := uuid.New()
	repo.activities[user] = []time.Time{day(-1)}

	svc := newTestService(repo)

	streak, err := svc.RecordToday(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestAwardPointsRejectsNegative(t *testing.T) {
	svc := newTestService(newFakeActivityRepo())

	err := svc.AwardPoints(context.Background(), uuid.New(), "introduction_accepted", -5)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestAwardPointsRejectsEmptyAction(t *testing.T) {
	svc := newTestService(newFakeActivityRepo())

	err := svc.AwardPoints(context.Background(), uuid.New(), "  ", 10)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestAwardPointsAppendsLedger(t *testing.T) {
	repo := newFakeActivityRepo()
	user := uuid.New()

	svc := newTestService(repo)

	require.NoError(t, svc.AwardPoints(context.Background(), user, "introduction_accepted", 10))
	require.NoError(t, svc.AwardPoints(context.Background(), user, "daily_login", 2))

	total, err := svc.PointsTotal(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)

	require.Len(t, repo.logs, 2)
	assert.Equal(t, day(0), repo.logs[0].Date)
}
