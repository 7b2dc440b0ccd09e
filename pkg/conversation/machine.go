package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"equeue-slip-bot/internal/constant"
	"equeue-slip-bot/internal/entity"
	"equeue-slip-bot/internal/pkg/logger"
	"equeue-slip-bot/pkg/document"
	"equeue-slip-bot/pkg/fields"
	"equeue-slip-bot/pkg/metrics"
	"equeue-slip-bot/pkg/store"

	"github.com/looplab/fsm"
)

const fsmModule = "FSM"

const (
	EventStart        = "start"
	EventInput        = "input"
	EventProduce      = "produce"
	EventUnrecognized = "unrecognized"
	EventCancel       = "cancel"
)

// SelectEvent names the event that opens the prompt for field.
func SelectEvent(field entity.FormField) string {
	return "select_" + string(field)
}

// DocumentRenderer turns a form into a slip on disk.
type DocumentRenderer interface {
	Render(form entity.BookingForm) (document.Artifact, error)
}

var transitions = buildTransitions()

func buildTransitions() fsm.Events {
	entering := make([]string, 0, len(store.EnteringStates))
	for _, field := range entity.FormFields {
		entering = append(entering, store.EnteringStates[field])
	}
	all := append([]string{store.StateIdle, store.StateChoosingAction, store.StateEnded}, entering...)

	events := fsm.Events{
		{Name: EventStart, Src: []string{store.StateIdle, store.StateEnded}, Dst: store.StateChoosingAction},
		{Name: EventInput, Src: entering, Dst: store.StateChoosingAction},
		{Name: EventProduce, Src: []string{store.StateChoosingAction}, Dst: store.StateChoosingAction},
		{Name: EventUnrecognized, Src: []string{store.StateChoosingAction}, Dst: store.StateChoosingAction},
		{Name: EventCancel, Src: all, Dst: store.StateEnded},
	}
	for _, field := range entity.FormFields {
		events = append(events, fsm.EventDesc{
			Name: SelectEvent(field),
			Src:  []string{store.StateChoosingAction},
			Dst:  store.EnteringStates[field],
		})
	}
	return events
}

type Machine struct {
	renderer         DocumentRenderer
	logger           logger.ILogger
	now              func() time.Time
	echoUnrecognized bool
}

type Option func(*Machine)

// WithClock sets the clock used for default dates and session timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithUnrecognizedNotice makes free text at the menu answer with a hint
// instead of being dropped.
func WithUnrecognizedNotice(enabled bool) Option {
	return func(m *Machine) { m.echoUnrecognized = enabled }
}

func NewMachine(renderer DocumentRenderer, log logger.ILogger, opts ...Option) *Machine {
	m := &Machine{
		renderer: renderer,
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle advances session by one inbound action and returns the messages to
// send, in order. Actions with no transition from the current state return
// no replies and leave the session untouched.
func (m *Machine) Handle(ctx context.Context, session *store.Session, in Inbound) ([]Reply, error) {
	event := m.resolve(session.State, in)
	if event == "" {
		m.ignore(session, in)
		return nil, nil
	}

	from := session.State
	machine := fsm.NewFSM(from, transitions, nil)
	if err := machine.Event(ctx, event); err != nil {
		var noTransition fsm.NoTransitionError
		var invalid fsm.InvalidEventError
		switch {
		case errors.As(err, &noTransition):
			// Self transitions are legal and carry side effects.
		case errors.As(err, &invalid):
			m.ignore(session, in)
			return nil, nil
		default:
			return nil, fmt.Errorf("fire %s from %s: %w", event, from, err)
		}
	}

	metrics.IncEvent(event)
	session.State = machine.Current()
	session.UpdatedAt = m.now()
	m.logger.Debug(fsmModule, "Transition", map[string]interface{}{
		"user_id": session.UserID,
		"event":   event,
		"from":    from,
		"to":      session.State,
	})

	switch event {
	case EventStart:
		session.Form = entity.NewBookingForm(m.now())
		return []Reply{{Kind: ReplyPromptWithMenu, Text: constant.WelcomeText}}, nil
	case EventInput:
		return m.storeInput(session, from, in.Text), nil
	case EventProduce:
		return m.produce(session), nil
	case EventUnrecognized:
		if !m.echoUnrecognized {
			return nil, nil
		}
		return []Reply{{Kind: ReplyPromptWithMenu, Text: constant.UnrecognizedText}}, nil
	case EventCancel:
		session.Reset(store.StateEnded)
		return []Reply{{Kind: ReplyPromptWithoutMenu, Text: constant.CancelText}}, nil
	}

	field, _ := store.FieldForState(session.State)
	return []Reply{{Kind: ReplyPromptWithoutMenu, Text: constant.FieldPrompts[field]}}, nil
}

// resolve maps an inbound action to an event name given the current state.
// It returns "" when the action means nothing in that state.
func (m *Machine) resolve(state string, in Inbound) string {
	switch in.Kind {
	case InboundStart:
		return EventStart
	case InboundCancel:
		return EventCancel
	case InboundText:
	default:
		return ""
	}

	if state == store.StateChoosingAction {
		if in.Text == constant.MenuCreateDocument {
			return EventProduce
		}
		if field, ok := constant.MenuFields[in.Text]; ok {
			return SelectEvent(field)
		}
		return EventUnrecognized
	}
	// Inside a prompt any text, menu labels included, is the answer.
	if _, ok := store.FieldForState(state); ok {
		return EventInput
	}
	return ""
}

func (m *Machine) storeInput(session *store.Session, from, text string) []Reply {
	field, ok := store.FieldForState(from)
	if !ok {
		return nil
	}

	value, err := fields.Validate(field, text, session.Form.Get(field))
	if err != nil {
		metrics.IncValidationFailure(string(field))
		m.logger.Info(fsmModule, "Rejected field input", map[string]interface{}{
			"user_id": session.UserID,
			"field":   string(field),
			"error":   err.Error(),
		})
		msg, ok := constant.FieldErrors[field]
		if !ok {
			msg = constant.InvalidInputText
		}
		return []Reply{{Kind: ReplyError, Text: msg}}
	}

	if err := session.Form.Set(field, value); err != nil {
		m.logger.Error(fsmModule, "Failed to store field", map[string]interface{}{
			"field": string(field),
			"error": err.Error(),
		})
		return []Reply{{Kind: ReplyError, Text: constant.InvalidInputText}}
	}
	return []Reply{{Kind: ReplyConfirmation, Text: fmt.Sprintf(constant.FieldConfirmations[field], value)}}
}

func (m *Machine) produce(session *store.Session) []Reply {
	art, err := m.renderer.Render(session.Form)
	if err != nil {
		m.logger.Error(fsmModule, "Render failed", map[string]interface{}{
			"user_id": session.UserID,
			"error":   err.Error(),
		})
		return []Reply{{Kind: ReplyError, Text: constant.RenderFailedText}}
	}
	return []Reply{{Kind: ReplyArtifact, Text: constant.ArtifactCaption, Artifact: &art}}
}

func (m *Machine) ignore(session *store.Session, in Inbound) {
	m.logger.Debug(fsmModule, "Ignored input", map[string]interface{}{
		"user_id": session.UserID,
		"state":   session.State,
		"kind":    string(in.Kind),
	})
}
