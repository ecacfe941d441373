package network

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

type fakeGraph struct {
	users    map[uuid.UUID]bool
	edges    map[uuid.UUID][]uuid.UUID
	passions map[uuid.UUID][]entity.Passion
	goals    map[uuid.UUID][]entity.Goal
	groups   map[uuid.UUID][]uuid.UUID
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		users:    make(map[uuid.UUID]bool),
		edges:    make(map[uuid.UUID][]uuid.UUID),
		passions: make(map[uuid.UUID][]entity.Passion),
		goals:    make(map[uuid.UUID][]entity.Goal),
		groups:   make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeGraph) addUser(id uuid.UUID) {
	f.users[id] = true
}

func (f *fakeGraph) connect(a, b uuid.UUID) {
	f.edges[a] = append(f.edges[a], b)
	f.edges[b] = append(f.edges[b], a)
}

func (f *fakeGraph) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.users[id], nil
}

func (f *fakeGraph) NeighborIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return f.edges[id], nil
}

func (f *fakeGraph) PassionsOf(ctx context.Context, id uuid.UUID) ([]entity.Passion, error) {
	return f.passions[id], nil
}

func (f *fakeGraph) GoalsOf(ctx context.Context, id uuid.UUID) ([]entity.Goal, error) {
	return f.goals[id], nil
}

func (f *fakeGraph) GroupIDsOf(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return f.groups[id], nil
}

func (f *fakeGraph) CandidateUsers(ctx context.Context, excludeID uuid.UUID) ([]*entity.User, error) {
	var users []*entity.User
	for id := range f.users {
		if id == excludeID {
			continue
		}
		users = append(users, &entity.User{
			ID:       id,
			Passions: f.passions[id],
		})
	}
	return users, nil
}

func mustUUID(suffix byte) uuid.UUID {
	var b [16]byte
	b[15] = suffix
	id, _ := uuid.FromBytes(b[:])
	return id
}

func TestProximityDirectConnection(t *testing.T) {
	graph := newFakeGraph()
	a, b := mustUUID(1), mustUUID(2)
	graph.addUser(a)
	graph.addUser(b)
	graph.connect(a, b)

	svc := NewNetworkService(graph)

	got, err := svc.Proximity(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestProximityIsSymmetric(t *testing.T) {
	graph := newFakeGraph()
	a, b, c := mustUUID(1), mustUUID(2), mustUUID(3)
	graph.addUser(a)
	graph.addUser(b)
	graph.addUser(c)
	graph.connect(a, b)
	graph.connect(b, c)

	svc := NewNetworkService(graph)

	fromA, err := svc.Proximity(context.Background(), a, c)
	require.NoError(t, err)
	fromC, err := svc.Proximity(context.Background(), c, a)
	require.NoError(t, err)

	assert.Equal(t, fromA, fromC)
	assert.Equal(t, 2, fromA)
}

func TestProximityThreeHops(t *testing.T) {
	graph := newFakeGraph()
	a, b, c, d := mustUUID(1), mustUUID(2), mustUUID(3), mustUUID(4)
	for _, id := range []uuid.UUID{a, b, c, d} {
		graph.addUser(id)
	}
	graph.connect(a, b)
	graph.connect(b, c)
	graph.connect(c, d)

	svc := NewNetworkService(graph)

	got, err := svc.Proximity(context.Background(), a, d)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestProximityBeyondCutoff(t *testing.T) {
	graph := newFakeGraph()
	ids := []uuid.UUID{mustUUID(1), mustUUID(2), mustUUID(3), mustUUID(4), mustUUID(5)}
	for _, id := range ids {
		graph.addUser(id)
	}
	for i := 0; i < len(ids)-1; i++ {
		graph.connect(ids[i], ids[i+1])
	}

	svc := NewNetworkService(graph)

	got, err := svc.Proximity(context.Background(), ids[0], ids[4])
	require.NoError(t, err)
	assert.Equal(t, ProximityNone, got)
}

func TestProximityUnreachable(t *testing.T) {
	graph := newFakeGraph()
	a, b := mustUUID(1), mustUUID(2)
	graph.addUser(a)
	graph.addUser(b)

	svc := NewNetworkService(graph)

	got, err := svc.Proximity(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, ProximityNone, got)
}

func TestProximityToSelf(t *testing.T) {
	graph := newFakeGraph()
	a := mustUUID(1)
	graph.addUser(a)

	svc := NewNetworkService(graph)

	_, err := svc.Proximity(context.Background(), a, a)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestProximityUnknownUser(t *testing.T) {
	graph := newFakeGraph()
	a := mustUUID(1)
	graph.addUser(a)

	svc := NewNetworkService(graph)

	_, err := svc.Proximity(context.Background(), a, mustUUID(9))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestStrengthSharedPassionsOnly(t *testing.T) {
	graph := newFakeGraph()
	a, b := mustUUID(1), mustUUID(2)
	graph.addUser(a)
	graph.addUser(b)

	golang := entity.Passion{ID: 1, Name: "Go"}
	chess := entity.Passion{ID: 2, Name: "Chess"}
	graph.passions[a] = []entity.Passion{golang, chess}
	graph.passions[b] = []entity.Passion{golang, chess}

	svc := NewNetworkService(graph)

	// Two shared passions, unreachable in the graph: 2*2 with no
	// proximity bonus.
	got, err := svc.ConnectionStrength(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestStrengthIsCapped(t *testing.T) {
	graph := newFakeGraph()
	a, b := mustUUID(1), mustUUID(2)
	graph.addUser(a)
	graph.addUser(b)
	graph.connect(a, b)

	golang := entity.Passion{ID: 1, Name: "Go"}
	graph.passions[a] = []entity.Passion{golang}
	graph.passions[b] = []entity.Passion{golang}

	svc := NewNetworkService(graph)

	// Direct connection gives 4, shared passion gives 2; capped at 5.
	got, err := svc.ConnectionStrength(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, MaxStrength, got)
}

func TestStrengthZeroFloor(t *testing.T) {
	graph := newFakeGraph()
	a, b := mustUUID(1), mustUUID(2)
	graph.addUser(a)
	graph.addUser(b)

	svc := NewNetworkService(graph)

	got, err := svc.ConnectionStrength(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestStrengthGoalAlignmentIsDirectional(t *testing.T) {
	graph := newFakeGraph()
	a, b := mustUUID(1), mustUUID(2)
	graph.addUser(a)
	graph.addUser(b)

	graph.passions[b] = []entity.Passion{{ID: 1, Name: "Photography"}}
	graph.goals[a] = []entity.Goal{{
		UserID:      a,
		Description: "Find a photography collaborator for a book project",
		GoalType:    entity.GoalTypeCollaboration,
	}}

	svc := NewNetworkService(graph)

	forward, err := svc.ConnectionStrength(context.Background(), a, b)
	require.NoError(t, err)
	reverse, err := svc.ConnectionStrength(context.Background(), b, a)
	require.NoError(t, err)

	assert.Equal(t, 3, forward)
	assert.Equal(t, 0, reverse)
}

func TestStrengthCareerGoalsIgnored(t *testing.T) {
	graph := newFakeGraph()
	a, b := mustUUID(1), mustUUID(2)
	graph.addUser(a)
	graph.addUser(b)

	graph.passions[b] = []entity.Passion{{ID: 1, Name: "Photography"}}
	graph.goals[a] = []entity.Goal{{
		UserID:      a,
		Description: "Become a photography director",
		GoalType:    entity.GoalTypeCareer,
	}}

	svc := NewNetworkService(graph)

	got, err := svc.ConnectionStrength(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestStrengthSharedGroups(t *testing.T) {
	graph := newFakeGraph()
	a, b := mustUUID(1), mustUUID(2)
	graph.addUser(a)
	graph.addUser(b)

	groupID := mustUUID(10)
	graph.groups[a] = []uuid.UUID{groupID}
	graph.groups[b] = []uuid.UUID{groupID}

	svc := NewNetworkService(graph)

	got, err := svc.ConnectionStrength(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestSuggestConnectionsExcludesSelfAndDirect(t *testing.T) {
	graph := newFakeGraph()
	a, b, c := mustUUID(1), mustUUID(2), mustUUID(3)
	graph.addUser(a)
	graph.addUser(b)
	graph.addUser(c)
	graph.connect(a, b)

	golang := entity.Passion{ID: 1, Name: "Go"}
	graph.passions[a] = []entity.Passion{golang}
	graph.passions[b] = []entity.Passion{golang}
	graph.passions[c] = []entity.Passion{golang}

	svc := NewNetworkService(graph)

	got, err := svc.SuggestConnections(context.Background(), a, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c, got[0].ID)
}

func TestSuggestConnectionsGoalTextMatch(t *testing.T) {
	graph := newFakeGraph()
	a, b := mustUUID(1), mustUUID(2)
	graph.addUser(a)
	graph.addUser(b)

	graph.passions[b] = []entity.Passion{{ID: 1, Name: "Jazz"}}
	graph.goals[a] = []entity.Goal{{
		UserID:      a,
		Description: "Find a mentor who plays jazz in my city",
		GoalType:    entity.GoalTypeMentorship,
	}}

	svc := NewNetworkService(graph)

	got, err := svc.SuggestConnections(context.Background(), a, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b, got[0].ID)
}

func TestSuggestConnectionsCareerGoalsIgnored(t *testing.T) {
	graph := newFakeGraph()
	a, b := mustUUID(1), mustUUID(2)
	graph.addUser(a)
	graph.addUser(b)

	graph.passions[b] = []entity.Passion{{ID: 1, Name: "Photography"}}
	graph.goals[a] = []entity.Goal{{
		UserID:      a,
		Description: "Become a photography director",
		GoalType:    entity.GoalTypeCareer,
	}}

	svc := NewNetworkService(graph)

	got, err := svc.SuggestConnections(context.Background(), a, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuggestConnectionsDeterministicOrder(t *testing.T) {
	graph := newFakeGraph()
	a := mustUUID(1)
	graph.addUser(a)

	golang := entity.Passion{ID: 1, Name: "Go"}
	graph.passions[a] = []entity.Passion{golang}

	others := []uuid.UUID{mustUUID(5), mustUUID(3), mustUUID(9), mustUUID(2)}
	for _, id := range others {
		graph.addUser(id)
		graph.passions[id] = []entity.Passion{golang}
	}

	svc := NewNetworkService(graph)

	first, err := svc.SuggestConnections(context.Background(), a, 0)
	require.NoError(t, err)
	second, err := svc.SuggestConnections(context.Background(), a, 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].ID.String() < first[i].ID.String())
	}
}

func TestSuggestConnectionsLimit(t *testing.T) {
	graph := newFakeGraph()
	a := mustUUID(1)
	graph.addUser(a)

	golang := entity.Passion{ID: 1, Name: "Go"}
	graph.passions[a] = []entity.Passion{golang}

	for i := byte(2); i < 12; i++ {
		id := mustUUID(i)
		graph.addUser(id)
		graph.passions[id] = []entity.Passion{golang}
	}

	svc := NewNetworkService(graph)

	defaulted, err := svc.SuggestConnections(context.Background(), a, 0)
	require.NoError(t, err)
	assert.Len(t, defaulted, DefaultSuggestionLimit)

	limited, err := svc.SuggestConnections(context.Background(), a, 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestSuggestConnectionsUnknownUser(t *testing.T) {
	graph := newFakeGraph()

	svc := NewNetworkService(graph)

	_, err := svc.SuggestConnections(context.Background(), mustUUID(1), 0)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
