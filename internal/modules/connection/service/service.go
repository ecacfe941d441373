package connection

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/internal/modules/connection/dto"
	"github.com/weavr-net/weavr-server/internal/modules/connection/repository"
	userRepo "github.com/weavr-net/weavr-server/internal/modules/user/repository"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

type ConnectionService interface {
	Connect(ctx context.Context, userID, otherID uuid.UUID) (*dto.ConnectionResponse, error)
	GetConnections(ctx context.Context, userID uuid.UUID) (*dto.ConnectionListResponse, error)
	Disconnect(ctx context.Context, userID, otherID uuid.UUID) error
	IsConnected(ctx context.Context, userID, otherID uuid.UUID) (bool, error)
}

type connectionService struct {
	repo  repository.ConnectionRepository
	users userRepo.UserRepository
}

func NewConnectionService(repo repository.ConnectionRepository, users userRepo.UserRepository) ConnectionService {
	return &connectionService{repo: repo, users: users}
}

func (s *connectionService) Connect(ctx context.Context, userID, otherID uuid.UUID) (*dto.ConnectionResponse, error) {
	if userID == otherID {
		return nil, apperror.New(apperror.ErrInvalidInput, "cannot connect to yourself")
	}

	if _, err := s.users.FindByID(ctx, otherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.New(apperror.ErrConflict, "users are already connected")
	}

	conn := &entity.Connection{
		UserID:          userID,
		ConnectedUserID: otherID,
		Strength:        1,
	}

	if err := s.repo.Create(ctx, conn); err != nil {
		return nil, err
	}

	return toConnectionResponse(conn), nil
}

func (s *connectionService) GetConnections(ctx context.Context, userID uuid.UUID) (*dto.ConnectionListResponse, error) {
	conns, err := s.repo.FindForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ConnectionResponse, 0, len(conns))
	for _, conn := range conns {
		responses = append(responses, *toConnectionResponse(conn))
	}

	return &dto.ConnectionListResponse{Data: responses}, nil
}

func (s *connectionService) Disconnect(ctx context.Context, userID, otherID uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.New(apperror.ErrNotFound, "connection not found")
	}

	return s.repo.Delete(ctx, userID, otherID)
}

func (s *connectionService) IsConnected(ctx context.Context, userID, otherID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, userID, otherID)
}

func toConnectionResponse(conn *entity.Connection) *dto.ConnectionResponse {
	return &dto.ConnectionResponse{
		UserID:          conn.UserID,
		ConnectedUserID: conn.ConnectedUserID,
		Strength:        conn.Strength,
		CreatedAt:       conn.CreatedAt,
	}
}
