package introduction

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
	connRepo "github.com/weavr-net/weavr-server/internal/modules/connection/repository"
	"github.com/weavr-net/weavr-server/internal/modules/introduction/dto"
	"github.com/weavr-net/weavr-server/internal/modules/introduction/repository"
	userRepo "github.com/weavr-net/weavr-server/internal/modules/user/repository"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

// PointsAwarder records engagement points for an action. Implemented by the
// activity service; nil disables awarding.
type PointsAwarder interface {
	AwardPoints(ctx context.Context, userID uuid.UUID, actionType string, points int) error
}

// Notifier delivers a notification to a user. Implemented by the notification
// service; nil disables notifications.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, message string) error
}

const acceptedIntroductionPoints = 10

type IntroductionService interface {
	CreateIntroduction(ctx context.Context, introducerID uuid.UUID, req dto.CreateIntroductionRequest) (*dto.IntroductionResponse, error)
	GetSent(ctx context.Context, introducerID uuid.UUID, status string) ([]dto.IntroductionResponse, error)
	GetReceived(ctx context.Context, userID uuid.UUID, status string) ([]dto.IntroductionResponse, error)
	UpdateStatus(ctx context.Context, userID, introID uuid.UUID, req dto.UpdateIntroductionStatusRequest) (*dto.IntroductionResponse, error)
}

type introductionService struct {
	repo     repository.IntroductionRepository
	users    userRepo.UserRepository
	conns    connRepo.ConnectionRepository
	points   PointsAwarder
	notifier Notifier
}

func NewIntroductionService(
	repo repository.IntroductionRepository,
	users userRepo.UserRepository,
	conns connRepo.ConnectionRepository,
	points PointsAwarder,
	notifier Notifier,
) IntroductionService {
	return &introductionService{
		repo:     repo,
		users:    users,
		conns:    conns,
		points:   points,
		notifier: notifier,
	}
}

func (s *introductionService) CreateIntroduction(ctx context.Context, introducerID uuid.UUID, req dto.CreateIntroductionRequest) (*dto.IntroductionResponse, error) {
	introducedID, err := uuid.Parse(req.IntroducedUserID)
	if err != nil {
		return nil, apperror.New(apperror.ErrInvalidInput, "invalid introduced user id")
	}
	targetID, err := uuid.Parse(req.TargetUserID)
	if err != nil {
		return nil, apperror.New(apperror.ErrInvalidInput, "invalid target user id")
	}

	if introducerID == introducedID || introducerID == targetID || introducedID == targetID {
		return nil, apperror.New(apperror.ErrInvalidInput, "introducer, introduced user and target must be distinct")
	}

	for _, id := range []uuid.UUID{introducedID, targetID} {
		if _, err := s.users.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(apperror.ErrNotFound, "user not found")
			}
			return nil, err
		}
	}

	intro := &entity.Introduction{
		IntroducerID:     introducerID,
		IntroducedUserID: introducedID,
		TargetUserID:     targetID,
		Message:          req.Message,
		Status:           entity.IntroductionPending,
	}

	if err := s.repo.Create(ctx, intro); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		msg := "You have a new introduction request"
		if err := s.notifier.Notify(ctx, targetID, msg); err != nil {
			log.Printf("failed to notify user %s about introduction: %v", targetID, err)
		}
	}

	return toIntroductionResponse(intro), nil
}

func (s *introductionService) GetSent(ctx context.Context, introducerID uuid.UUID, status string) ([]dto.IntroductionResponse, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	intros, err := s.repo.FindByIntroducer(ctx, introducerID, st)
	if err != nil {
		return nil, err
	}
	return toIntroductionResponses(intros), nil
}

func (s *introductionService) GetReceived(ctx context.Context, userID uuid.UUID, status string) ([]dto.IntroductionResponse, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	intros, err := s.repo.FindReceived(ctx, userID, st)
	if err != nil {
		return nil, err
	}
	return toIntroductionResponses(intros), nil
}

func (s *introductionService) UpdateStatus(ctx context.Context, userID, introID uuid.UUID, req dto.UpdateIntroductionStatusRequest) (*dto.IntroductionResponse, error) {
	intro, err := s.repo.FindByID(ctx, introID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "introduction not found")
		}
		return nil, err
	}

	if intro.TargetUserID != userID {
		return nil, apperror.New(apperror.ErrForbidden, "only the target user can respond to an introduction")
	}

	if intro.Status != entity.IntroductionPending {
		return nil, apperror.New(apperror.ErrConflict, "introduction has already been resolved")
	}

	newStatus := entity.IntroductionStatus(req.Status)
	if !newStatus.IsValid() || newStatus == entity.IntroductionPending {
		return nil, apperror.New(apperror.ErrInvalidInput, "status must be accepted or rejected")
	}

	intro.Status = newStatus
	if err := s.repo.Update(ctx, intro); err != nil {
		return nil, err
	}

	if newStatus == entity.IntroductionAccepted {
		s.onAccepted(ctx, intro)
	}

	return toIntroductionResponse(intro), nil
}

// onAccepted connects the introduced pair and rewards the introducer.
// Both steps are best-effort; the status change has already been persisted.
func (s *introductionService) onAccepted(ctx context.Context, intro *entity.Introduction) {
	exists, err := s.conns.Exists(ctx, intro.IntroducedUserID, intro.TargetUserID)
	if err == nil && !exists {
		conn := &entity.Connection{
			UserID:          intro.IntroducedUserID,
			ConnectedUserID: intro.TargetUserID,
			Strength:        1,
		}
		if err := s.conns.Create(ctx, conn); err != nil {
			log.Printf("failed to create connection for accepted introduction %s: %v", intro.ID, err)
		}
	}

	if s.points != nil {
		if err := s.points.AwardPoints(ctx, intro.IntroducerID, "introduction_accepted", acceptedIntroductionPoints); err != nil {
			log.Printf("failed to award points to introducer %s: %v", intro.IntroducerID, err)
		}
	}

	if s.notifier != nil {
		msg := "Your introduction was accepted"
		if err := s.notifier.Notify(ctx, intro.IntroducerID, msg); err != nil {
			log.Printf("failed to notify introducer %s: %v", intro.IntroducerID, err)
		}
	}
}

func parseStatusFilter(status string) (entity.IntroductionStatus, error) {
	if status == "" {
		return "", nil
	}
	st := entity.IntroductionStatus(status)
	if !st.IsValid() {
		return "", apperror.New(apperror.ErrInvalidInput, "invalid status filter")
	}
	return st, nil
}

func toIntroductionResponse(intro *entity.Introduction) *dto.IntroductionResponse {
	return &dto.IntroductionResponse{
		ID:               intro.ID,
		IntroducerID:     intro.IntroducerID,
		IntroducedUserID: intro.IntroducedUserID,
		TargetUserID:     intro.TargetUserID,
		Message:          intro.Message,
		Status:           string(intro.Status),
		CreatedAt:        intro.CreatedAt,
	}
}

func toIntroductionResponses(intros []*entity.Introduction) []dto.IntroductionResponse {
	responses := make([]dto.IntroductionResponse, 0, len(intros))
	for _, intro := range intros {
		responses = append(responses, *toIntroductionResponse(intro))
	}
	return responses
}
