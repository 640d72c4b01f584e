package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"wayfare/internal/models/db_models"
	"wayfare/internal/models/request_models"
	"wayfare/internal/models/response_models"
	"wayfare/internal/repositories"
	"wayfare/internal/rules"
	mem "wayfare/pkg/memcache"
	"wayfare/pkg/utils"
)

const designerSessionTTL = 30 * time.Minute

type DesignerServiceInterface interface {
	Chat(ctx context.Context, req request_models.DesignerChatRequest) (*response_models.DesignerChatResponse, error)
}

// DesignerService is the conversational trip-designer agent. Every
// proposal it relays has been through the rule engine; the agent never
// mutates the itinerary itself.
type DesignerService struct {
	itineraryRepo repositories.ItineraryRepository
	placeRepo     repositories.PlaceEmbeddingRepository
	llm           utils.LLMClientInterface
	engine        *rules.Engine
	sessions      mem.DesignerSessionStore
}

func NewDesignerService(
	itineraryRepo repositories.ItineraryRepository,
	placeRepo repositories.PlaceEmbeddingRepository,
	llm utils.LLMClientInterface,
	engine *rules.Engine,
	sessions mem.DesignerSessionStore,
) DesignerServiceInterface {
	return &DesignerService{
		itineraryRepo: itineraryRepo,
		placeRepo:     placeRepo,
		llm:           llm,
		engine:        engine,
		sessions:      sessions,
	}
}

func (s *DesignerService) Chat(ctx context.Context, req request_models.DesignerChatRequest) (*response_models.DesignerChatResponse, error) {
	itinerary, err := s.itineraryRepo.GetItineraryById(ctx, req.ItineraryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	history, _ := s.sessions.History(sessionID)

	doc, err := s.llm.DesignerReplyJSON(ctx, history, summarizeItinerary(itinerary), req.Message)
	if err != nil {
		log.Printf("designer reply failed: %v", err)
		return nil, err
	}

	var reply request_models.DesignerDocument
	if err := json.Unmarshal([]byte(doc), &reply); err != nil {
		log.Printf("designer returned undecodable json: %v", err)
		return nil, utils.ErrInvalidInput
	}

	out := &response_models.DesignerChatResponse{
		SessionID: sessionID,
		Reply:     reply.Reply,
		Proposals: make([]response_models.ProposalReview, 0, len(reply.Proposals)),
	}
	for i := range reply.Proposals {
		review, ok := s.reviewProposal(ctx, itinerary, &reply.Proposals[i])
		if !ok {
			continue
		}
		out.Proposals = append(out.Proposals, review)
	}

	s.sessions.Append(sessionID, mem.ChatMessage{Role: "user", Content: req.Message}, designerSessionTTL)
	s.sessions.Append(sessionID, mem.ChatMessage{Role: "assistant", Content: reply.Reply}, designerSessionTTL)

	return out, nil
}

func (s *DesignerService) reviewProposal(ctx context.Context, itinerary *db_models.Itinerary, proposal *request_models.DesignerProposal) (response_models.ProposalReview, bool) {
	segment, err := proposal.Segment.ToSegment()
	if err != nil {
		log.Printf("dropping malformed designer proposal: %v", err)
		return response_models.ProposalReview{}, false
	}
	segment.Source = db_models.SegmentSourceAgent
	s.resolvePlace(ctx, segment)

	var verdict rules.ValidationResult
	switch proposal.Action {
	case "add":
		if segment.ID == uuid.Nil {
			segment.ID = uuid.New()
		}
		verdict = s.engine.ValidateAdd(itinerary, segment)
	case "update":
		if segment.ID == uuid.Nil || itinerary.FindSegment(segment.ID) == nil {
			return response_models.ProposalReview{}, false
		}
		verdict = s.engine.ValidateUpdate(itinerary, segment)
	case "delete":
		if segment.ID == uuid.Nil || itinerary.FindSegment(segment.ID) == nil {
			return response_models.ProposalReview{}, false
		}
		verdict = s.engine.ValidateDelete(itinerary, segment.ID)
	default:
		return response_models.ProposalReview{}, false
	}

	return response_models.ProposalReview{
		Action:  proposal.Action,
		Segment: response_models.BuildSegmentResponse(segment),
		Verdict: verdict,
	}, true
}

// resolvePlace fills in a canonical location code when the agent only
// named a place, using vector search over known places. Best effort.
func (s *DesignerService) resolvePlace(ctx context.Context, segment *db_models.Segment) {
	if segment.Location.Code != "" || segment.Location.Name == "" {
		return
	}
	vector, err := s.llm.GetEmbedding(ctx, segment.Location.Name)
	if err != nil {
		log.Printf("place embedding failed for %q: %v", segment.Location.Name, err)
		return
	}
	places, err := s.placeRepo.SearchByVector(ctx, vector)
	if err != nil || len(places) == 0 {
		return
	}
	segment.Location.Code = places[0].Code
	if segment.Location.Name == "" {
		segment.Location.Name = places[0].Name
	}
}

func summarizeItinerary(itinerary *db_models.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s (status %s)\n", itinerary.Title, itinerary.Status)
	if itinerary.HasTripDates() {
		fmt.Fprintf(&b, "Trip dates: %s to %s\n",
			itinerary.StartDate.Format("2006-01-02"), itinerary.EndDate.Format("2006-01-02"))
	}
	for i := range itinerary.Segments {
		s := &itinerary.Segments[i]
		fmt.Fprintf(&b, "- [%s] %s %s: %s to %s", s.ID, s.Kind, s.DisplayName(),
			s.StartTime.Format(time.RFC3339), s.EndTime.Format(time.RFC3339))
		if loc := s.EffectiveLocation(); !loc.IsZero() {
			fmt.Fprintf(&b, " at %s", loc.Name)
			if loc.Code != "" {
				fmt.Fprintf(&b, " (%s)", loc.Code)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
