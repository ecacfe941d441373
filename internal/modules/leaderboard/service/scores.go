package leaderboard

import (
	"context"

	"github.com/google/uuid"

	connRepo "github.com/weavr-net/weavr-server/internal/modules/connection/repository"
	introRepo "github.com/weavr-net/weavr-server/internal/modules/introduction/repository"
)

type repoScoreSource struct {
	conns  connRepo.ConnectionRepository
	intros introRepo.IntroductionRepository
}

// NewScoreSource builds a ScoreSource backed by the connection and
// introduction repositories.
func NewScoreSource(conns connRepo.ConnectionRepository, intros introRepo.IntroductionRepository) ScoreSource {
	return &repoScoreSource{conns: conns, intros: intros}
}

func (s *repoScoreSource) CountDirectConnections(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.conns.CountForUser(ctx, userID)
}

func (s *repoScoreSource) CountAcceptedIntroductions(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.intros.CountAcceptedByIntroducer(ctx, userID)
}
