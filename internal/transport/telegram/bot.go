package telegram

import (
	"context"

	"equeue-slip-bot/internal/constant"
	"equeue-slip-bot/internal/pkg/logger"
	"equeue-slip-bot/internal/service"
	"equeue-slip-bot/pkg/conversation"
	"equeue-slip-bot/pkg/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const botModule = "BOT"

// Sender is the part of *tgbotapi.BotAPI the bot needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api        Sender
	service    service.IConversationService
	dispatcher *Dispatcher
	logger     logger.ILogger
}

func NewBot(api Sender, svc service.IConversationService, dispatcher *Dispatcher, log logger.ILogger) *Bot {
	return &Bot{
		api:        api,
		service:    svc,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// Run consumes updates until ctx is done or the channel closes, then waits
// for in-flight jobs.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	defer b.dispatcher.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			b.route(ctx, u)
		}
	}
}

func (b *Bot) route(ctx context.Context, u tgbotapi.Update) {
	msg := u.Message
	if msg == nil || msg.From == nil {
		return
	}
	in, ok := inboundFrom(msg)
	if !ok {
		return
	}

	userID, chatID := msg.From.ID, msg.Chat.ID
	queued := b.dispatcher.Submit(ctx, userID, func(ctx context.Context) {
		b.handle(ctx, userID, chatID, in)
	})
	if !queued && ctx.Err() == nil {
		metrics.IncDroppedMessage()
		b.logger.Warn(botModule, "User queue full, message dropped", map[string]interface{}{
			"user_id": userID,
			"kind":    string(in.Kind),
		})
	}
}

// inboundFrom keeps /start, /cancel and plain text. Other commands and
// non-text messages are dropped.
func inboundFrom(msg *tgbotapi.Message) (conversation.Inbound, bool) {
	if msg.IsCommand() {
		switch msg.Command() {
		case constant.CommandStart:
			return conversation.Start(), true
		case constant.CommandCancel:
			return conversation.Cancel(), true
		}
		return conversation.Inbound{}, false
	}
	if msg.Text == "" {
		return conversation.Inbound{}, false
	}
	return conversation.Text(msg.Text), true
}

func (b *Bot) handle(ctx context.Context, userID, chatID int64, in conversation.Inbound) {
	replies, err := b.service.Handle(ctx, userID, in)
	if err != nil {
		return
	}
	for _, r := range replies {
		b.deliver(ctx, userID, chatID, r)
	}
}

func (b *Bot) deliver(ctx context.Context, userID, chatID int64, r conversation.Reply) {
	// The artifact goes to cleanup whether or not the upload worked.
	defer b.service.Release(ctx, r.Artifact)

	if _, err := b.api.Send(chattable(chatID, r)); err != nil {
		b.logger.Error(botModule, "Failed to send reply", map[string]interface{}{
			"user_id": userID,
			"kind":    string(r.Kind),
			"error":   err.Error(),
		})
	}
}
