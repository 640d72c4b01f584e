package services

import (
	"context"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfare/internal/models/db_models"
	"wayfare/internal/models/request_models"
	"wayfare/internal/rules"
	mem "wayfare/pkg/memcache"
	"wayfare/pkg/utils"
)

type fakePlaceRepo struct {
	places []db_models.PlaceEmbedding
}

func (f *fakePlaceRepo) CreatePlace(ctx context.Context, place *db_models.PlaceEmbedding) error {
	f.places = append(f.places, *place)
	return nil
}

func (f *fakePlaceRepo) FindByCode(ctx context.Context, code string) (*db_models.PlaceEmbedding, error) {
	for i := range f.places {
		if f.places[i].Code == code {
			return &f.places[i], nil
		}
	}
	return nil, nil
}

func (f *fakePlaceRepo) SearchByVector(ctx context.Context, vector pgvector.Vector) ([]db_models.PlaceEmbedding, error) {
	return f.places, nil
}

func newDesignerTestService(repo *fakeItineraryRepo, places *fakePlaceRepo, llm *fakeLLMClient) (DesignerServiceInterface, mem.DesignerSessionStore) {
	sessions := mem.NewDesignerSessions()
	service := NewDesignerService(repo, places, llm, rules.NewEngine(rules.DefaultConfig()), sessions)
	return service, sessions
}

func TestChatReviewsAddProposal(t *testing.T) {
	repo := newFakeRepo()
	it := seedItinerary(t, repo, storedFlight("100", when(10, 10, 0), when(10, 14, 0)))

	llm := &fakeLLMClient{designer: `{
		"reply": "I added a dinner idea for your arrival evening.",
		"proposals": [
			{
				"action": "add",
				"segment": {
					"kind": "ACTIVITY",
					"start_time": "2025-06-10T19:00:00Z",
					"end_time": "2025-06-10T21:00:00Z",
					"activity": {"name": "Dinner"}
				}
			}
		]
	}`}
	service, sessions := newDesignerTestService(repo, &fakePlaceRepo{}, llm)

	resp, err := service.Chat(context.Background(), request_models.DesignerChatRequest{
		ItineraryID: it.ID.String(),
		Message:     "suggest something for dinner",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID, "a session id is assigned")
	require.Len(t, resp.Proposals, 1)
	proposal := resp.Proposals[0]
	assert.Equal(t, "add", proposal.Action)
	assert.True(t, proposal.Verdict.Valid)
	assert.Equal(t, db_models.SegmentSourceAgent, proposal.Segment.Source)

	history, ok := sessions.History(resp.SessionID)
	require.True(t, ok)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)

	// Proposals are review-only, the itinerary is untouched.
	stored := repo.itineraries[it.ID.String()]
	assert.Len(t, stored.Segments, 1)
}

func TestChatDropsProposalsForUnknownSegments(t *testing.T) {
	repo := newFakeRepo()
	it := seedItinerary(t, repo)

	llm := &fakeLLMClient{designer: `{
		"reply": "Removed it.",
		"proposals": [
			{
				"action": "delete",
				"segment": {
					"id": "6f7d9a40-0000-0000-0000-000000000000",
					"kind": "ACTIVITY",
					"start_time": "2025-06-10T19:00:00Z",
					"end_time": "2025-06-10T21:00:00Z",
					"activity": {"name": "Dinner"}
				}
			}
		]
	}`}
	service, _ := newDesignerTestService(repo, &fakePlaceRepo{}, llm)

	resp, err := service.Chat(context.Background(), request_models.DesignerChatRequest{
		ItineraryID: it.ID.String(),
		Message:     "remove the dinner",
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Proposals, "proposals against unknown segments are dropped")
}

func TestChatResolvesPlaceCodes(t *testing.T) {
	repo := newFakeRepo()
	it := seedItinerary(t, repo)
	places := &fakePlaceRepo{places: []db_models.PlaceEmbedding{
		{Name: "Louvre Museum", Code: "LOUVRE"},
	}}

	llm := &fakeLLMClient{designer: `{
		"reply": "How about the Louvre?",
		"proposals": [
			{
				"action": "add",
				"segment": {
					"kind": "ACTIVITY",
					"start_time": "2025-06-10T10:00:00Z",
					"end_time": "2025-06-10T12:00:00Z",
					"location": {"name": "Louvre"},
					"activity": {"name": "Museum visit"}
				}
			}
		]
	}`}
	service, _ := newDesignerTestService(repo, places, llm)

	resp, err := service.Chat(context.Background(), request_models.DesignerChatRequest{
		ItineraryID: it.ID.String(),
		Message:     "a museum in the morning",
	})

	require.NoError(t, err)
	require.Len(t, resp.Proposals, 1)
	require.NotNil(t, resp.Proposals[0].Segment.Location)
	assert.Equal(t, "LOUVRE", resp.Proposals[0].Segment.Location.Code)
}

func TestChatKeepsSessionHistory(t *testing.T) {
	repo := newFakeRepo()
	it := seedItinerary(t, repo)
	llm := &fakeLLMClient{designer: `{"reply": "Sure.", "proposals": []}`}
	service, sessions := newDesignerTestService(repo, &fakePlaceRepo{}, llm)

	first, err := service.Chat(context.Background(), request_models.DesignerChatRequest{
		ItineraryID: it.ID.String(),
		Message:     "hello",
	})
	require.NoError(t, err)

	_, err = service.Chat(context.Background(), request_models.DesignerChatRequest{
		SessionID:   first.SessionID,
		ItineraryID: it.ID.String(),
		Message:     "still there?",
	})
	require.NoError(t, err)

	history, ok := sessions.History(first.SessionID)
	require.True(t, ok)
	assert.Len(t, history, 4)
}

func TestChatUndecodableReply(t *testing.T) {
	repo := newFakeRepo()
	it := seedItinerary(t, repo)
	service, _ := newDesignerTestService(repo, &fakePlaceRepo{}, &fakeLLMClient{designer: "no json here"})

	_, err := service.Chat(context.Background(), request_models.DesignerChatRequest{
		ItineraryID: it.ID.String(),
		Message:     "hello",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
