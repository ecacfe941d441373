package wisdom

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
	search "github.com/weavr-net/weavr-server/internal/modules/search/service"
	"github.com/weavr-net/weavr-server/internal/modules/wisdom/dto"
	"github.com/weavr-net/weavr-server/internal/modules/wisdom/repository"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

type WisdomService interface {
	CreateWisdom(ctx context.Context, authorID uuid.UUID, req dto.CreateWisdomRequest) (*dto.WisdomResponse, error)
	GetWisdom(ctx context.Context, id uuid.UUID) (*dto.WisdomResponse, error)
	ListWisdom(ctx context.Context, query dto.ListWisdomQuery) ([]dto.WisdomResponse, error)
	UpdateWisdom(ctx context.Context, userID, id uuid.UUID, req dto.UpdateWisdomRequest) (*dto.WisdomResponse, error)
	DeleteWisdom(ctx context.Context, userID, id uuid.UUID) error
	Vote(ctx context.Context, id uuid.UUID, vote string) (*dto.WisdomResponse, error)
	SearchToken(ctx context.Context) (string, error)
}

type wisdomService struct {
	repo   repository.WisdomRepository
	search search.WisdomSearch
}

func NewWisdomService(repo repository.WisdomRepository, searchSvc search.WisdomSearch) WisdomService {
	return &wisdomService{repo: repo, search: searchSvc}
}

func (s *wisdomService) CreateWisdom(ctx context.Context, authorID uuid.UUID, req dto.CreateWisdomRequest) (*dto.WisdomResponse, error) {
	category := entity.WisdomCategory(req.Category)
	if req.Category == "" {
		category = entity.WisdomOther
	}

	wisdom := &entity.WeavrWisdom{
		Title:    req.Title,
		Content:  req.Content,
		Category: category,
		AuthorID: authorID,
		Tags:     req.Tags,
	}

	if err := s.repo.Create(ctx, wisdom); err != nil {
		return nil, err
	}

	s.reindex(wisdom)
	return toWisdomResponse(wisdom), nil
}

func (s *wisdomService) GetWisdom(ctx context.Context, id uuid.UUID) (*dto.WisdomResponse, error) {
	wisdom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "wisdom not found")
		}
		return nil, err
	}
	return toWisdomResponse(wisdom), nil
}

func (s *wisdomService) ListWisdom(ctx context.Context, query dto.ListWisdomQuery) ([]dto.WisdomResponse, error) {
	articles, err := s.repo.FindAll(ctx, query.Category, query.Search)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.WisdomResponse, 0, len(articles))
	for _, a := range articles {
		responses = append(responses, *toWisdomResponse(a))
	}
	return responses, nil
}

func (s *wisdomService) UpdateWisdom(ctx context.Context, userID, id uuid.UUID, req dto.UpdateWisdomRequest) (*dto.WisdomResponse, error) {
	wisdom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "wisdom not found")
		}
		return nil, err
	}

	if wisdom.AuthorID != userID {
		return nil, apperror.New(apperror.ErrForbidden, "only the author can edit this article")
	}

	if req.Title != nil {
		wisdom.Title = *req.Title
	}
	if req.Content != nil {
		wisdom.Content = *req.Content
	}
	if req.Category != nil {
		wisdom.Category = entity.WisdomCategory(*req.Category)
	}
	if req.Tags != nil {
		wisdom.Tags = req.Tags
	}

	if err := s.repo.Update(ctx, wisdom); err != nil {
		return nil, err
	}

	s.reindex(wisdom)
	return toWisdomResponse(wisdom), nil
}

func (s *wisdomService) DeleteWisdom(ctx context.Context, userID, id uuid.UUID) error {
	wisdom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "wisdom not found")
		}
		return err
	}

	if wisdom.AuthorID != userID {
		return apperror.New(apperror.ErrForbidden, "only the author can delete this article")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteWisdom(id.String()); err != nil {
			log.Printf("failed to delete wisdom %s from search index: %v", id, err)
		}
	}
	return nil
}

func (s *wisdomService) Vote(ctx context.Context, id uuid.UUID, vote string) (*dto.WisdomResponse, error) {
	wisdom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "wisdom not found")
		}
		return nil, err
	}

	switch vote {
	case "up":
		wisdom.UpVotes++
	case "down":
		wisdom.DownVotes++
	default:
		return nil, apperror.New(apperror.ErrInvalidInput, "vote must be up or down")
	}

	if err := s.repo.Update(ctx, wisdom); err != nil {
		return nil, err
	}

	s.reindex(wisdom)
	return toWisdomResponse(wisdom), nil
}

func (s *wisdomService) SearchToken(ctx context.Context) (string, error) {
	if s.search == nil {
		return "", apperror.New(apperror.ErrInternal, "search is not configured")
	}
	return s.search.GenerateSearchToken()
}

// reindex pushes the article to Meilisearch. Index failures are logged, not
// surfaced; the database stays the source of truth.
func (s *wisdomService) reindex(wisdom *entity.WeavrWisdom) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexWisdom(wisdom); err != nil {
		log.Printf("failed to index wisdom %s: %v", wisdom.ID, err)
	}
}

func toWisdomResponse(wisdom *entity.WeavrWisdom) *dto.WisdomResponse {
	return &dto.WisdomResponse{
		ID:        wisdom.ID,
		Title:     wisdom.Title,
		Content:   wisdom.Content,
		Category:  string(wisdom.Category),
		AuthorID:  wisdom.AuthorID,
		UpVotes:   wisdom.UpVotes,
		DownVotes: wisdom.DownVotes,
		Tags:      wisdom.Tags,
		CreatedAt: wisdom.CreatedAt,
	}
}
