package whatsapp

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sibinaravind/lead-management-back-sub001/config"
	"github.com/sibinaravind/lead-management-back-sub001/pkg/utils"
	"github.com/sibinaravind/lead-management-back-sub001/ui/websocket"
	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types/events"
)

// Dispatcher turns raw message events into normalized InboundMessage
// values, feeds the reply engine and fans out to registered observers.
// It runs on the client event goroutine, so observer panics must never
// escape and each observer failure is isolated from the rest.
type Dispatcher struct {
	manager *Manager
	engine  *ReplyEngine

	observersMu sync.RWMutex
	observers   []Observer

	received atomic.Int64
}

func NewDispatcher(manager *Manager) *Dispatcher {
	return &Dispatcher{
		manager: manager,
		engine:  NewReplyEngine(),
	}
}

func (d *Dispatcher) AddObserver(observer Observer) {
	d.observersMu.Lock()
	d.observers = append(d.observers, observer)
	d.observersMu.Unlock()
}

// ReceivedCount reports how many messages passed the acceptance filters
// since process start.
func (d *Dispatcher) ReceivedCount() int64 {
	return d.received.Load()
}

// HandleMessage applies the acceptance filters, classifies the payload and
// runs the reply path. Own echoes, broadcasts and status updates are
// dropped before anything else sees them.
func (d *Dispatcher) HandleMessage(evt *events.Message) {
	if evt.Info.IsFromMe || evt.Info.IsIncomingBroadcast() {
		return
	}
	chat := evt.Info.Chat.String()
	if strings.HasPrefix(chat, "status@") || strings.HasSuffix(chat, "@broadcast") {
		return
	}

	msg := d.classify(evt)
	if msg.Type == MessageTypeUnsupported {
		logrus.Debugf("[DISPATCH] Dropping unsupported message from %s", msg.Sender)
		return
	}

	d.received.Add(1)
	logrus.WithFields(logrus.Fields{
		"sender": msg.Sender,
		"type":   msg.Type,
		"group":  msg.IsGroup,
	}).Info("[DISPATCH] Message accepted")

	d.autoReply(msg)
	d.notifyObservers(msg)

	select {
	case websocket.Broadcast <- websocket.BroadcastMessage{
		Code:    "MESSAGE_RECEIVED",
		Message: "Incoming message",
		Result:  map[string]any{"sender": msg.Sender, "type": string(msg.Type), "text": msg.Text},
	}:
	default:
	}
}

func (d *Dispatcher) classify(evt *events.Message) InboundMessage {
	msg := InboundMessage{
		Sender:     evt.Info.Sender.ToNonAD().String(),
		SenderName: evt.Info.PushName,
		IsGroup:    utils.IsGroupJID(evt.Info.Chat.String()),
		Timestamp:  evt.Info.Timestamp,
	}

	inner := unwrapMessage(evt.Message)
	switch {
	case inner.GetConversation() != "":
		msg.Type = MessageTypeText
		msg.Text = inner.GetConversation()
	case inner.GetExtendedTextMessage().GetText() != "":
		msg.Type = MessageTypeText
		msg.Text = inner.GetExtendedTextMessage().GetText()
	case inner.GetImageMessage() != nil:
		msg.Type = MessageTypeImage
		msg.Text = inner.GetImageMessage().GetCaption()
		d.downloadMedia(&msg, inner.GetImageMessage())
	case inner.GetVideoMessage() != nil:
		msg.Type = MessageTypeVideo
		msg.Text = inner.GetVideoMessage().GetCaption()
	case inner.GetDocumentMessage() != nil:
		msg.Type = MessageTypeDocument
		msg.Text = inner.GetDocumentMessage().GetCaption()
		d.downloadMedia(&msg, inner.GetDocumentMessage())
	default:
		msg.Type = MessageTypeUnsupported
	}
	return msg
}

// unwrapMessage strips the ephemeral and view-once envelopes. Wrappers can
// nest, so a few iterations are enough in practice.
func unwrapMessage(m *waE2E.Message) *waE2E.Message {
	unwrap := func(m *waE2E.Message) *waE2E.Message {
		if v := m.GetViewOnceMessage(); v != nil {
			return v.GetMessage()
		}
		if v := m.GetEphemeralMessage(); v != nil {
			return v.GetMessage()
		}
		if v := m.GetViewOnceMessageV2(); v != nil {
			return v.GetMessage()
		}
		if v := m.GetViewOnceMessageV2Extension(); v != nil {
			return v.GetMessage()
		}
		return nil
	}
	for i := 0; i < 3; i++ {
		if next := unwrap(m); next != nil {
			m = next
		} else {
			break
		}
	}
	return m
}

func (d *Dispatcher) downloadMedia(msg *InboundMessage, media any) {
	if !config.WhatsappAutoDownloadMedia {
		return
	}
	dl, ok := media.(DownloadableMessage)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	data, err := d.manager.transport.Download(ctx, dl)
	if err != nil {
		logrus.WithError(err).Warnf("[DISPATCH] Media download failed for %s", msg.Sender)
		return
	}
	msg.MediaData = data
}

// autoReply computes the canned response and sends it back to the sender.
// Group chats never get auto-replies, they would flood the room.
func (d *Dispatcher) autoReply(msg InboundMessage) {
	if !config.WhatsappAutoReplyEnabled || msg.IsGroup {
		return
	}
	body := d.engine.ComputeReply(ReplyContext{
		SenderName:  msg.SenderName,
		IsGroup:     msg.IsGroup,
		MessageType: msg.Type,
		Text:        msg.Text,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if _, err := d.manager.SendText(ctx, msg.Sender, body); err != nil {
		logrus.WithError(err).Errorf("[DISPATCH] Auto-reply to %s failed", msg.Sender)
	}
}

func (d *Dispatcher) notifyObservers(msg InboundMessage) {
	d.observersMu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.observersMu.RUnlock()

	for i, observer := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logrus.Errorf("[DISPATCH] Observer %d panicked: %v", i, r)
				}
			}()
			observer(msg)
		}()
	}
}
