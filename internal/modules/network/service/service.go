package network

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/internal/modules/network/repository"
	"github.com/weavr-net/weavr-server/pkg/apperror"
	commonDto "github.com/weavr-net/weavr-server/pkg/dto"
)

const (
	// ProximityNone is returned when two users are farther apart than
	// MaxProximityDepth hops, or unreachable entirely.
	ProximityNone = 999

	// MaxProximityDepth bounds the traversal: beyond three degrees of
	// separation users are treated as strangers.
	MaxProximityDepth = 3

	// MaxStrength caps the connection strength score.
	MaxStrength = 5

	// DefaultSuggestionLimit applies when no limit is requested.
	DefaultSuggestionLimit = 5

	sharedPassionWeight = 2
	goalMatchWeight     = 3
	sharedGroupWeight   = 2
)

type NetworkService interface {
	Proximity(ctx context.Context, userID, otherID uuid.UUID) (int, error)
	ConnectionStrength(ctx context.Context, userID, otherID uuid.UUID) (int, error)
	SuggestConnections(ctx context.Context, userID uuid.UUID, limit int) ([]commonDto.UserResponse, error)
}

type networkService struct {
	repo repository.GraphRepository
}

func NewNetworkService(repo repository.GraphRepository) NetworkService {
	return &networkService{repo: repo}
}

// Proximity returns the degree of separation between two users: 1 for a
// direct connection, 2 for a shared neighbor, 3 for three hops, and
// ProximityNone beyond that. The graph is undirected, so the result is
// symmetric in its arguments.
func (s *networkService) Proximity(ctx context.Context, userID, otherID uuid.UUID) (int, error) {
	if userID == otherID {
		return 0, apperror.New(apperror.ErrInvalidInput, "proximity to self is undefined")
	}

	for _, id := range []uuid.UUID{userID, otherID} {
		exists, err := s.repo.UserExists(ctx, id)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, apperror.New(apperror.ErrNotFound, "user not found")
		}
	}

	visited := map[uuid.UUID]struct{}{userID: {}}
	frontier := []uuid.UUID{userID}

	for depth := 1; depth <= MaxProximityDepth; depth++ {
		var next []uuid.UUID
		for _, node := range frontier {
			neighbors, err := s.repo.NeighborIDs(ctx, node)
			if err != nil {
				return 0, err
			}
			for _, n := range neighbors {
				if n == otherID {
					return depth, nil
				}
				if _, ok := visited[n]; ok {
					continue
				}
				visited[n] = struct{}{}
				next = append(next, n)
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}

	return ProximityNone, nil
}

// ConnectionStrength scores how strong a potential or existing tie is,
// combining shared passions, goal alignment, proximity and shared group
// memberships. The result is clamped to [0, MaxStrength]. The score is not
// symmetric: goal alignment reads the first user's goals against the second
// user's passions.
func (s *networkService) ConnectionStrength(ctx context.Context, userID, otherID uuid.UUID) (int, error) {
	if userID == otherID {
		return 0, apperror.New(apperror.ErrInvalidInput, "strength to self is undefined")
	}

	proximity, err := s.Proximity(ctx, userID, otherID)
	if err != nil {
		return 0, err
	}

	userPassions, err := s.repo.PassionsOf(ctx, userID)
	if err != nil {
		return 0, err
	}
	otherPassions, err := s.repo.PassionsOf(ctx, otherID)
	if err != nil {
		return 0, err
	}

	score := sharedPassionWeight * countSharedPassions(userPassions, otherPassions)

	goals, err := s.repo.GoalsOf(ctx, userID)
	if err != nil {
		return 0, err
	}
	score += goalMatchWeight * countGoalMatches(goals, otherPassions)

	if proximity <= MaxProximityDepth && MaxStrength-proximity > 0 {
		score += MaxStrength - proximity
	}

	userGroups, err := s.repo.GroupIDsOf(ctx, userID)
	if err != nil {
		return 0, err
	}
	otherGroups, err := s.repo.GroupIDsOf(ctx, otherID)
	if err != nil {
		return 0, err
	}
	score += sharedGroupWeight * countSharedGroups(userGroups, otherGroups)

	if score > MaxStrength {
		score = MaxStrength
	}
	if score < 0 {
		score = 0
	}
	return score, nil
}

// SuggestConnections returns users worth connecting with: anyone sharing a
// passion with the user, or whose passions appear in the user's collaboration
// or mentorship goal descriptions. The user themselves and their direct
// connections are excluded. Results are ordered by user ID so repeated calls
// on an unchanged graph return the same list.
func (s *networkService) SuggestConnections(ctx context.Context, userID uuid.UUID, limit int) ([]commonDto.UserResponse, error) {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.New(apperror.ErrNotFound, "user not found")
	}

	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	userPassions, err := s.repo.PassionsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.repo.GoalsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	neighborIDs, err := s.repo.NeighborIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	direct := make(map[uuid.UUID]struct{}, len(neighborIDs))
	for _, id := range neighborIDs {
		direct[id] = struct{}{}
	}

	passionIDs := make(map[uint]struct{}, len(userPassions))
	for _, p := range userPassions {
		passionIDs[p.ID] = struct{}{}
	}

	goalTexts := make([]string, 0, len(goals))
	for _, g := range goals {
		if g.GoalType != entity.GoalTypeCollaboration && g.GoalType != entity.GoalTypeMentorship {
			continue
		}
		goalTexts = append(goalTexts, strings.ToLower(g.Description))
	}

	candidates, err := s.repo.CandidateUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	var matches []*entity.User
	for _, candidate := range candidates {
		if _, connected := direct[candidate.ID]; connected {
			continue
		}
		if matchesCandidate(candidate, passionIDs, goalTexts) {
			matches = append(matches, candidate)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].ID.String() < matches[j].ID.String()
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	responses := make([]commonDto.UserResponse, 0, len(matches))
	for _, m := range matches {
		responses = append(responses, toUserSummary(m))
	}
	return responses, nil
}

func matchesCandidate(candidate *entity.User, passionIDs map[uint]struct{}, goalTexts []string) bool {
	for _, p := range candidate.Passions {
		if _, shared := passionIDs[p.ID]; shared {
			return true
		}
		name := strings.ToLower(p.Name)
		for _, text := range goalTexts {
			if strings.Contains(text, name) {
				return true
			}
		}
	}
	return false
}

func countSharedPassions(a, b []entity.Passion) int {
	ids := make(map[uint]struct{}, len(a))
	for _, p := range a {
		ids[p.ID] = struct{}{}
	}

	shared := 0
	for _, p := range b {
		if _, ok := ids[p.ID]; ok {
			shared++
		}
	}
	return shared
}

// countGoalMatches counts (goal, passion) pairs where a collaboration or
// mentorship goal mentions the passion by name. Each pair counts once.
func countGoalMatches(goals []entity.Goal, passions []entity.Passion) int {
	matches := 0
	for _, g := range goals {
		if g.GoalType != entity.GoalTypeCollaboration && g.GoalType != entity.GoalTypeMentorship {
			continue
		}
		desc := strings.ToLower(g.Description)
		for _, p := range passions {
			if strings.Contains(desc, strings.ToLower(p.Name)) {
				matches++
			}
		}
	}
	return matches
}

func countSharedGroups(a, b []uuid.UUID) int {
	ids := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		ids[id] = struct{}{}
	}

	shared := 0
	for _, id := range b {
		if _, ok := ids[id]; ok {
			shared++
		}
	}
	return shared
}

func toUserSummary(user *entity.User) commonDto.UserResponse {
	passions := make([]string, 0, len(user.Passions))
	for _, p := range user.Passions {
		passions = append(passions, p.Name)
	}

	return commonDto.UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Location:          user.Location,
		Headline:          user.Headline,
		Bio:               user.Bio,
		ProfilePictureURL: user.ProfilePictureURL,
		Passions:          passions,
		CreatedAt:         user.CreatedAt,
	}
}
