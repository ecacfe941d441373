package leaderboard

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/internal/modules/leaderboard/dto"
	"github.com/weavr-net/weavr-server/internal/modules/leaderboard/repository"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

// ScoreSource provides the per-user counters that leaderboard criteria are
// built from.
type ScoreSource interface {
	CountDirectConnections(ctx context.Context, userID uuid.UUID) (int64, error)
	CountAcceptedIntroductions(ctx context.Context, userID uuid.UUID) (int64, error)
}

type LeaderboardService interface {
	CreateLeaderboard(ctx context.Context, req dto.CreateLeaderboardRequest) (*dto.LeaderboardResponse, error)
	GetLeaderboard(ctx context.Context, id uuid.UUID) (*dto.LeaderboardResponse, error)
	ListLeaderboards(ctx context.Context) ([]dto.LeaderboardResponse, error)
	DeleteLeaderboard(ctx context.Context, id uuid.UUID) error
	JoinLeaderboard(ctx context.Context, leaderboardID, userID uuid.UUID) error
	Recompute(ctx context.Context, leaderboardID uuid.UUID) (*dto.LeaderboardResponse, error)
	GetUserRank(ctx context.Context, leaderboardID, userID uuid.UUID) (*dto.UserRankResponse, error)
}

type leaderboardService struct {
	repo   repository.LeaderboardRepository
	scores ScoreSource
	guard  *recomputeGuard
	lease  RecomputeLease
}

func NewLeaderboardService(repo repository.LeaderboardRepository, scores ScoreSource, lease RecomputeLease) LeaderboardService {
	return &leaderboardService{
		repo:   repo,
		scores: scores,
		guard:  newRecomputeGuard(),
		lease:  lease,
	}
}

func (s *leaderboardService) CreateLeaderboard(ctx context.Context, req dto.CreateLeaderboardRequest) (*dto.LeaderboardResponse, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, apperror.New(apperror.ErrInvalidInput, "end date must not precede start date")
	}

	board := &entity.Leaderboard{
		Name:      req.Name,
		Criteria:  req.Criteria,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if err := s.repo.Create(ctx, board); err != nil {
		return nil, err
	}

	return toLeaderboardResponse(board, nil), nil
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, id uuid.UUID) (*dto.LeaderboardResponse, error) {
	board, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "leaderboard not found")
		}
		return nil, err
	}

	entries, err := s.repo.FindEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	return toLeaderboardResponse(board, entries), nil
}

func (s *leaderboardService) ListLeaderboards(ctx context.Context) ([]dto.LeaderboardResponse, error) {
	boards, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LeaderboardResponse, 0, len(boards))
	for _, b := range boards {
		responses = append(responses, *toLeaderboardResponse(b, nil))
	}
	return responses, nil
}

func (s *leaderboardService) DeleteLeaderboard(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "leaderboard not found")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *leaderboardService) JoinLeaderboard(ctx context.Context, leaderboardID, userID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, leaderboardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "leaderboard not found")
		}
		return err
	}

	if _, err := s.repo.FindEntry(ctx, leaderboardID, userID); err == nil {
		return apperror.New(apperror.ErrConflict, "already on this leaderboard")
	}

	entry := &entity.LeaderboardEntry{
		LeaderboardID: leaderboardID,
		UserID:        userID,
	}
	return s.repo.CreateEntry(ctx, entry)
}

// Recompute rescores every entry on the leaderboard and reassigns ranks.
// Concurrent recomputes of the same board are serialized in-process and
// fenced across processes with a short redis lease; a second caller gets
// ErrConflict instead of waiting.
func (s *leaderboardService) Recompute(ctx context.Context, leaderboardID uuid.UUID) (*dto.LeaderboardResponse, error) {
	board, err := s.repo.FindByID(ctx, leaderboardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "leaderboard not found")
		}
		return nil, err
	}

	score, err := s.scoreFunc(board.Criteria)
	if err != nil {
		return nil, err
	}

	if !s.guard.tryLock(leaderboardID) {
		return nil, apperror.New(apperror.ErrConflict, "recompute already in progress")
	}
	defer s.guard.unlock(leaderboardID)

	if s.lease != nil {
		acquired, err := s.lease.Acquire(ctx, leaderboardID)
		if err != nil {
			// Redis being down must not block recomputes; the
			// in-process guard still serializes them.
			log.Printf("recompute lease unavailable for %s: %v", leaderboardID, err)
		} else if !acquired {
			return nil, apperror.New(apperror.ErrConflict, "recompute already in progress")
		} else {
			defer s.lease.Release(ctx, leaderboardID)
		}
	}

	entries, err := s.repo.FindEntries(ctx, leaderboardID)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		value, err := score(ctx, entry.UserID)
		if err != nil {
			return nil, err
		}
		entry.Score = value
	}

	// Stable sort keeps the id-ordered input as the tie-break.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i, entry := range entries {
		entry.Rank = i + 1
	}

	if err := s.repo.UpdateEntries(ctx, entries); err != nil {
		return nil, err
	}

	return toLeaderboardResponse(board, entries), nil
}

func (s *leaderboardService) GetUserRank(ctx context.Context, leaderboardID, userID uuid.UUID) (*dto.UserRankResponse, error) {
	if _, err := s.repo.FindByID(ctx, leaderboardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "leaderboard not found")
		}
		return nil, err
	}

	entry, err := s.repo.FindEntry(ctx, leaderboardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user is not on this leaderboard")
		}
		return nil, err
	}

	return &dto.UserRankResponse{
		LeaderboardID: leaderboardID,
		UserID:        userID,
		Score:         entry.Score,
		Rank:          entry.Rank,
	}, nil
}

type scoreFunc func(ctx context.Context, userID uuid.UUID) (int, error)

func (s *leaderboardService) scoreFunc(criteria string) (scoreFunc, error) {
	switch criteria {
	case entity.CriteriaWeavrReputation:
		return func(ctx context.Context, userID uuid.UUID) (int, error) {
			conns, err := s.scores.CountDirectConnections(ctx, userID)
			if err != nil {
				return 0, err
			}
			intros, err := s.scores.CountAcceptedIntroductions(ctx, userID)
			if err != nil {
				return 0, err
			}
			return int(conns + intros), nil
		}, nil
	case entity.CriteriaIntroductionsMade:
		return func(ctx context.Context, userID uuid.UUID) (int, error) {
			intros, err := s.scores.CountAcceptedIntroductions(ctx, userID)
			if err != nil {
				return 0, err
			}
			return int(intros), nil
		}, nil
	default:
		return nil, apperror.New(apperror.ErrUnsupportedCriteria, "unsupported leaderboard criteria: "+criteria)
	}
}

func toLeaderboardResponse(board *entity.Leaderboard, entries []*entity.LeaderboardEntry) *dto.LeaderboardResponse {
	resp := &dto.LeaderboardResponse{
		ID:        board.ID,
		Name:      board.Name,
		Criteria:  board.Criteria,
		StartDate: board.StartDate,
		EndDate:   board.EndDate,
		CreatedAt: board.CreatedAt,
	}

	for _, entry := range entries {
		resp.Entries = append(resp.Entries, dto.EntryResponse{
			UserID: entry.UserID,
			Score:  entry.Score,
			Rank:   entry.Rank,
		})
	}
	return resp
}
