package conversation

import "equeue-slip-bot/pkg/document"

type InboundKind string

const (
	InboundStart  InboundKind = "start"
	InboundCancel InboundKind = "cancel"
	InboundText   InboundKind = "text"
)

// Inbound is one user action. Text is only set for InboundText.
type Inbound struct {
	Kind InboundKind
	Text string
}

func Start() Inbound  { return Inbound{Kind: InboundStart} }
func Cancel() Inbound { return Inbound{Kind: InboundCancel} }

func Text(text string) Inbound {
	return Inbound{Kind: InboundText, Text: text}
}

type ReplyKind string

const (
	ReplyPromptWithMenu    ReplyKind = "prompt_with_menu"
	ReplyPromptWithoutMenu ReplyKind = "prompt_without_menu"
	ReplyConfirmation      ReplyKind = "confirmation"
	ReplyError             ReplyKind = "error"
	ReplyArtifact          ReplyKind = "artifact"
)

// Reply is one outbound message. For ReplyArtifact, Text is the caption and
// Artifact points at the rendered file; the receiver must release it.
type Reply struct {
	Kind     ReplyKind
	Text     string
	Artifact *document.Artifact
}

// WithMenu reports whether the action menu is attached to the message.
func (r Reply) WithMenu() bool {
	return r.Kind != ReplyPromptWithoutMenu
}
