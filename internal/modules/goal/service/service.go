package goal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/internal/modules/goal/dto"
	"github.com/weavr-net/weavr-server/internal/modules/goal/repository"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

type GoalService interface {
	CreateGoal(ctx context.Context, userID uuid.UUID, req dto.CreateGoalRequest) (*dto.GoalResponse, error)
	GetGoalsForUser(ctx context.Context, userID uuid.UUID) ([]dto.GoalResponse, error)
	UpdateGoal(ctx context.Context, userID uuid.UUID, goalID uint, req dto.UpdateGoalRequest) (*dto.GoalResponse, error)
	DeleteGoal(ctx context.Context, userID uuid.UUID, goalID uint) error
}

type goalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) GoalService {
	return &goalService{repo: repo}
}

func (s *goalService) CreateGoal(ctx context.Context, userID uuid.UUID, req dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	goalType := entity.GoalType(req.GoalType)
	if req.GoalType == "" {
		goalType = entity.GoalTypeOther
	}
	if !goalType.IsValid() {
		return nil, apperror.New(apperror.ErrInvalidInput, "invalid goal type")
	}

	goal := &entity.Goal{
		UserID:      userID,
		Description: req.Description,
		GoalType:    goalType,
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return toGoalResponse(goal), nil
}

func (s *goalService) GetGoalsForUser(ctx context.Context, userID uuid.UUID) ([]dto.GoalResponse, error) {
	goals, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GoalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, *toGoalResponse(g))
	}
	return responses, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, userID uuid.UUID, goalID uint, req dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "goal not found")
		}
		return nil, err
	}

	if goal.UserID != userID {
		return nil, apperror.New(apperror.ErrForbidden, "goal belongs to another user")
	}

	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.GoalType != nil {
		goalType := entity.GoalType(*req.GoalType)
		if !goalType.IsValid() {
			return nil, apperror.New(apperror.ErrInvalidInput, "invalid goal type")
		}
		goal.GoalType = goalType
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return toGoalResponse(goal), nil
}

func (s *goalService) DeleteGoal(ctx context.Context, userID uuid.UUID, goalID uint) error {
	goal, err := s.repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "goal not found")
		}
		return err
	}

	if goal.UserID != userID {
		return apperror.New(apperror.ErrForbidden, "goal belongs to another user")
	}

	return s.repo.Delete(ctx, goalID)
}

func toGoalResponse(goal *entity.Goal) *dto.GoalResponse {
	return &dto.GoalResponse{
		ID:          goal.ID,
		UserID:      goal.UserID,
		Description: goal.Description,
		GoalType:    string(goal.GoalType),
		CreatedAt:   goal.CreatedAt,
	}
}
