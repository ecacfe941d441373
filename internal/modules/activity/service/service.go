package activity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/internal/modules/activity/dto"
	"github.com/weavr-net/weavr-server/internal/modules/activity/repository"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

type ActivityService interface {
	CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error)
	RecordToday(ctx context.Context, userID uuid.UUID) (int, error)
	AwardPoints(ctx context.Context, userID uuid.UUID, actionType string, points int) error
	PointsTotal(ctx context.Context, userID uuid.UUID) (int64, error)
	PointsHistory(ctx context.Context, userID uuid.UUID) ([]dto.PointLogResponse, error)
}

type activityService struct {
	repo repository.ActivityRepository
	now  func() time.Time
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{
		repo: repo,
		now:  time.Now,
	}
}

// CurrentStreak counts consecutive activity days ending today. Without an
// activity row for today the streak is zero, however long yesterday's run was.
func (s *activityService) CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	dates, err := s.repo.ActivityDates(ctx, userID)
	if err != nil {
		return 0, err
	}

	expected := dateOnly(s.now())
	streak := 0
	for _, d := range dates {
		if !dateOnly(d).Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}

// RecordToday marks today as an active day. Calling it twice on the same day
// is a no-op; the resulting streak is returned either way.
func (s *activityService) RecordToday(ctx context.Context, userID uuid.UUID) (int, error) {
	today := dateOnly(s.now())

	recorded, err := s.repo.HasActivityOn(ctx, userID, today)
	if err != nil {
		return 0, err
	}

	if !recorded {
		activity := &entity.UserActivity{
			UserID: userID,
			Date:   today,
		}
		if err := s.repo.CreateActivity(ctx, activity); err != nil {
			return 0, err
		}
	}

	return s.CurrentStreak(ctx, userID)
}

func (s *activityService) AwardPoints(ctx context.Context, userID uuid.UUID, actionType string, points int) error {
	if strings.TrimSpace(actionType) == "" {
		return apperror.New(apperror.ErrInvalidInput, "action type must not be empty")
	}
	if points < 0 {
		return apperror.New(apperror.ErrInvalidInput, "points must not be negative")
	}

	log := &entity.UserPointLog{
		UserID:     userID,
		ActionType: actionType,
		Points:     points,
		Date:       dateOnly(s.now()),
	}
	return s.repo.CreatePointLog(ctx, log)
}

func (s *activityService) PointsTotal(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.SumPoints(ctx, userID)
}

func (s *activityService) PointsHistory(ctx context.Context, userID uuid.UUID) ([]dto.PointLogResponse, error) {
	logs, err := s.repo.PointLogs(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PointLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, dto.PointLogResponse{
			ActionType: l.ActionType,
			Points:     l.Points,
			Date:       l.Date,
		})
	}
	return responses, nil
}

// dateOnly strips the time of day, comparing activity in UTC calendar days.
func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
