package group

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/internal/modules/group/dto"
	"github.com/weavr-net/weavr-server/internal/modules/group/repository"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

type GroupService interface {
	CreateGroup(ctx context.Context, creatorID uuid.UUID, req dto.CreateGroupRequest) (*dto.GroupResponse, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context) ([]dto.GroupResponse, error)
	DeleteGroup(ctx context.Context, userID, groupID uuid.UUID) error
	JoinGroup(ctx context.Context, userID, groupID uuid.UUID) error
	LeaveGroup(ctx context.Context, userID, groupID uuid.UUID) error
	GetMembers(ctx context.Context, groupID uuid.UUID) ([]dto.GroupMemberResponse, error)
}

type groupService struct {
	repo repository.GroupRepository
}

func NewGroupService(repo repository.GroupRepository) GroupService {
	return &groupService{repo: repo}
}

func (s *groupService) CreateGroup(ctx context.Context, creatorID uuid.UUID, req dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	existing, _ := s.repo.FindByName(ctx, req.Name)
	if existing != nil {
		return nil, apperror.New(apperror.ErrConflict, "group name already taken")
	}

	privacy := entity.GroupPrivacy(req.Privacy)
	if req.Privacy == "" {
		privacy = entity.GroupPublic
	}

	group := &entity.Group{
		Name:        req.Name,
		Description: req.Description,
		Privacy:     privacy,
	}

	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	// Creator joins as admin
	membership := &entity.GroupMembership{
		UserID:  creatorID,
		GroupID: group.ID,
		Role:    entity.GroupRoleAdmin,
	}
	if err := s.repo.AddMember(ctx, membership); err != nil {
		return nil, err
	}

	return toGroupResponse(group), nil
}

func (s *groupService) GetGroup(ctx context.Context, id uuid.UUID) (*dto.GroupResponse, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "group not found")
		}
		return nil, err
	}
	return toGroupResponse(group), nil
}

func (s *groupService) ListGroups(ctx context.Context) ([]dto.GroupResponse, error) {
	groups, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		responses = append(responses, *toGroupResponse(g))
	}
	return responses, nil
}

func (s *groupService) DeleteGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "group not found")
		}
		return err
	}

	membership, err := s.repo.FindMembership(ctx, groupID, userID)
	if err != nil || membership.Role != entity.GroupRoleAdmin {
		return apperror.New(apperror.ErrForbidden, "only group admins can delete a group")
	}

	return s.repo.Delete(ctx, groupID)
}

func (s *groupService) JoinGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "group not found")
		}
		return err
	}

	if _, err := s.repo.FindMembership(ctx, groupID, userID); err == nil {
		return apperror.New(apperror.ErrConflict, "already a member of this group")
	}

	membership := &entity.GroupMembership{
		UserID:  userID,
		GroupID: groupID,
		Role:    entity.GroupRoleMember,
	}
	return s.repo.AddMember(ctx, membership)
}

func (s *groupService) LeaveGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	if _, err := s.repo.FindMembership(ctx, groupID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "not a member of this group")
		}
		return err
	}

	return s.repo.RemoveMember(ctx, groupID, userID)
}

func (s *groupService) GetMembers(ctx context.Context, groupID uuid.UUID) ([]dto.GroupMemberResponse, error) {
	if _, err := s.repo.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "group not found")
		}
		return nil, err
	}

	members, err := s.repo.FindMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GroupMemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, dto.GroupMemberResponse{
			UserID:   m.UserID,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}
	return responses, nil
}

func toGroupResponse(group *entity.Group) *dto.GroupResponse {
	return &dto.GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		Privacy:     string(group.Privacy),
		CreatedAt:   group.CreatedAt,
	}
}
