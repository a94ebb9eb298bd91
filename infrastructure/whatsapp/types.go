package whatsapp

import (
	"context"
	"time"

	"go.mau.fi/whatsmeow"
)

// ConnectionStatus is the lifecycle state of the single chat session.
type ConnectionStatus string

const (
	StatusDisconnected ConnectionStatus = "DISCONNECTED"
	StatusConnecting   ConnectionStatus = "CONNECTING"
	StatusQRPending    ConnectionStatus = "QR_PENDING"
	StatusConnected    ConnectionStatus = "CONNECTED"
	StatusConflict     ConnectionStatus = "CONFLICT"
	StatusLoggedOut    ConnectionStatus = "LOGGED_OUT"
)

// FatalReason distinguishes the two terminal states the host must react to.
type FatalReason string

const (
	FatalConflict  FatalReason = "CONFLICT"
	FatalLoggedOut FatalReason = "LOGGED_OUT"
)

type MessageType string

const (
	MessageTypeText        MessageType = "text"
	MessageTypeImage       MessageType = "image"
	MessageTypeVideo       MessageType = "video"
	MessageTypeDocument    MessageType = "document"
	MessageTypeUnsupported MessageType = "unsupported"
)

// InboundMessage is the canonical form of one received network event. It is
// handed to the auto-reply engine and to every registered observer; the
// core never persists it.
type InboundMessage struct {
	Sender     string
	SenderName string
	IsGroup    bool
	Type       MessageType
	Text       string
	MediaData  []byte
	Timestamp  time.Time
}

// Observer receives every accepted inbound message, in registration order.
type Observer func(msg InboundMessage)

type ContentKind string

const (
	ContentText     ContentKind = "text"
	ContentImage    ContentKind = "image"
	ContentDocument ContentKind = "document"
)

// OutboundContent is the discriminated payload of a single send. Text holds
// the body for ContentText and the caption for media kinds.
type OutboundContent struct {
	Kind     ContentKind
	Text     string
	Data     []byte
	Filename string
	MimeType string
}

func TextContent(body string) OutboundContent {
	return OutboundContent{Kind: ContentText, Text: body}
}

type SendReceipt struct {
	MessageID string
	Timestamp time.Time
}

// DownloadableMessage is any media payload the transport can fetch.
type DownloadableMessage = whatsmeow.DownloadableMessage

// Transport is the minimal socket surface the connection manager drives.
// The production implementation wraps a whatsmeow client; tests substitute
// a fake to exercise the state machine without a network.
type Transport interface {
	Connect() error
	Disconnect()
	Logout(ctx context.Context) error
	IsConnected() bool
	IsLoggedIn() bool
	SelfID() string
	SendText(ctx context.Context, recipient, text string) (SendReceipt, error)
	SendMedia(ctx context.Context, recipient string, content OutboundContent) (SendReceipt, error)
	Download(ctx context.Context, msg DownloadableMessage) ([]byte, error)
}

// SessionStore owns the persisted multi-file session credentials. Purge is
// called exactly once on a terminal conflict or remote logout.
type SessionStore interface {
	Purge(ctx context.Context) error
	Close() error
}
