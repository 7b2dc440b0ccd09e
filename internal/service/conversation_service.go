package service

import (
	"context"
	"time"

	"equeue-slip-bot/internal/pkg/logger"
	"equeue-slip-bot/internal/repository/memory"
	"equeue-slip-bot/pkg/conversation"
	"equeue-slip-bot/pkg/document"
	"equeue-slip-bot/pkg/events"
	"equeue-slip-bot/pkg/store"
)

type IConversationService interface {
	// Handle applies one user action. Calls for the same user must not overlap.
	Handle(ctx context.Context, userID int64, in conversation.Inbound) ([]conversation.Reply, error)
	// Release hands a delivered artifact over to cleanup. It never fails the caller.
	Release(ctx context.Context, art *document.Artifact)
	ActiveSessions() int
}

type conversationService struct {
	sessionRepo *memory.SessionRepository
	machine     *conversation.Machine
	publisher   IPublisherService
	logger      logger.ILogger
}

func NewConversationService(
	sessionRepo *memory.SessionRepository,
	machine *conversation.Machine,
	publisher IPublisherService,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		sessionRepo: sessionRepo,
		machine:     machine,
		publisher:   publisher,
		logger:      log,
	}
}

func (s *conversationService) Handle(ctx context.Context, userID int64, in conversation.Inbound) ([]conversation.Reply, error) {
	session := s.loadOrCreate(userID)

	replies, err := s.machine.Handle(ctx, session, in)
	if err != nil {
		s.logger.Error("BOT", "State machine failed", map[string]interface{}{
			"user_id": userID,
			"state":   session.State,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.sessionRepo.Save(session)
	return replies, nil
}

func (s *conversationService) loadOrCreate(userID int64) *store.Session {
	session, found := s.sessionRepo.Get(userID)
	if !found {
		session = store.NewSession(userID)
	}
	return session
}

func (s *conversationService) Release(ctx context.Context, art *document.Artifact) {
	if art == nil {
		return
	}
	evt := events.NewArtifactDelivered(art.ID, art.Path, time.Now())
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Error("BOT", "Failed to publish ARTIFACT_DELIVERED event", map[string]interface{}{
			"artifact_id": art.ID,
			"error":       err.Error(),
		})
	}
}

func (s *conversationService) ActiveSessions() int {
	return s.sessionRepo.Count()
}
