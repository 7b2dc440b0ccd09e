package service

import (
	"context"
	"encoding/json"

	"equeue-slip-bot/internal/dto"
	"equeue-slip-bot/internal/pkg/logger"
	"equeue-slip-bot/pkg/events"
	"equeue-slip-bot/pkg/metrics"

	"github.com/ThreeDotsLabs/watermill/message"
)

const cleanupModule = "CLEANUP"

// ArtifactRemover deletes a delivered artifact file.
type ArtifactRemover interface {
	Remove(path string) error
}

type ICleanupService interface {
	// Consume subscribes and processes events until ctx is done.
	Consume(ctx context.Context) error
}

type cleanupService struct {
	subscriber message.Subscriber
	topicName  string
	remover    ArtifactRemover
	logger     logger.ILogger
}

func NewCleanupService(
	subscriber message.Subscriber,
	topicName string,
	remover ArtifactRemover,
	log logger.ILogger,
) ICleanupService {
	return &cleanupService{
		subscriber: subscriber,
		topicName:  topicName,
		remover:    remover,
		logger:     log,
	}
}

func (cs *cleanupService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

// processMessage always acks: a file that cannot be deleted now will not be
// deletable on redelivery either.
func (cs *cleanupService) processMessage(msg *message.Message) {
	defer msg.Ack()

	if t := msg.Metadata.Get(metadataEventType); t != events.TypeArtifactDelivered {
		return
	}

	var payload dto.ArtifactDeliveredMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(cleanupModule, "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if err := cs.remover.Remove(payload.Path); err != nil {
		metrics.IncCleanupFailure()
		cs.logger.Error(cleanupModule, "Failed to delete artifact", map[string]interface{}{
			"artifact_id": payload.ArtifactID,
			"path":        payload.Path,
			"error":       err.Error(),
		})
		return
	}

	cs.logger.Debug(cleanupModule, "Artifact deleted", map[string]interface{}{
		"artifact_id": payload.ArtifactID,
	})
}
