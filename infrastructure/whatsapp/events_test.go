package whatsapp

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"
)

func directMessage(sender, text string) *events.Message {
	jid := types.NewJID(sender, types.DefaultUserServer)
	return &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{
				Chat:   jid,
				Sender: jid,
			},
			PushName:  "Asha",
			Timestamp: time.Now(),
		},
		Message: &waE2E.Message{Conversation: proto.String(text)},
	}
}

func connectedManager(t *testing.T) (*Manager, *fakeTransport) {
	t.Helper()
	transport := &fakeTransport{}
	mgr := newTestManager(transport, &fakeSessionStore{})
	mgr.HandleEvent(&events.Connected{})
	return mgr, transport
}

type observerRecorder struct {
	mu       sync.Mutex
	messages []InboundMessage
}

func (r *observerRecorder) observe(msg InboundMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *observerRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func TestTextMessageTriggersReplyAndObservers(t *testing.T) {
	mgr, transport := connectedManager(t)
	recorder := &observerRecorder{}
	mgr.OnMessage(recorder.observe)

	mgr.HandleEvent(directMessage("15550001111", "hello"))

	assert.Equal(t, int64(1), mgr.Dispatcher().ReceivedCount())
	assert.Equal(t, 1, recorder.count())

	sent := transport.sent()
	assert.Len(t, sent, 1)
	assert.Contains(t, sent[0], "Hi Asha")
}

func TestOwnEchoIsDropped(t *testing.T) {
	mgr, transport := connectedManager(t)
	recorder := &observerRecorder{}
	mgr.OnMessage(recorder.observe)

	evt := directMessage("15550001111", "hello")
	evt.Info.IsFromMe = true
	mgr.HandleEvent(evt)

	assert.Equal(t, int64(0), mgr.Dispatcher().ReceivedCount())
	assert.Equal(t, 0, recorder.count())
	assert.Empty(t, transport.sent())
}

func TestStatusBroadcastIsDropped(t *testing.T) {
	mgr, transport := connectedManager(t)
	recorder := &observerRecorder{}
	mgr.OnMessage(recorder.observe)

	evt := directMessage("15550001111", "hello")
	evt.Info.Chat = types.NewJID("status", types.BroadcastServer)
	mgr.HandleEvent(evt)

	assert.Equal(t, int64(0), mgr.Dispatcher().ReceivedCount())
	assert.Equal(t, 0, recorder.count())
	assert.Empty(t, transport.sent())
}

func TestGroupMessageObservedButNotAnswered(t *testing.T) {
	mgr, transport := connectedManager(t)
	recorder := &observerRecorder{}
	mgr.OnMessage(recorder.observe)

	evt := directMessage("15550001111", "hello")
	evt.Info.Chat = types.NewJID("123456789-987654", types.GroupServer)
	mgr.HandleEvent(evt)

	assert.Equal(t, int64(1), mgr.Dispatcher().ReceivedCount())
	assert.Equal(t, 1, recorder.count())
	assert.True(t, recorder.messages[0].IsGroup)
	assert.Empty(t, transport.sent())
}

func TestImageCaptionDrivesReply(t *testing.T) {
	mgr, transport := connectedManager(t)
	transport.downloadData = []byte{0x89, 0x50}

	jid := types.NewJID("15550001111", types.DefaultUserServer)
	evt := &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{Chat: jid, Sender: jid},
			PushName:      "Asha",
			Timestamp:     time.Now(),
		},
		Message: &waE2E.Message{
			ImageMessage: &waE2E.ImageMessage{Caption: proto.String("hello")},
		},
	}
	mgr.HandleEvent(evt)

	assert.Equal(t, int64(1), mgr.Dispatcher().ReceivedCount())
	sent := transport.sent()
	assert.Len(t, sent, 1)
	assert.Contains(t, sent[0], "Hi Asha")
}

func TestEphemeralWrapperIsUnwrapped(t *testing.T) {
	mgr, transport := connectedManager(t)

	jid := types.NewJID("15550001111", types.DefaultUserServer)
	evt := &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{Chat: jid, Sender: jid},
			Timestamp:     time.Now(),
		},
		Message: &waE2E.Message{
			EphemeralMessage: &waE2E.FutureProofMessage{
				Message: &waE2E.Message{Conversation: proto.String("price please")},
			},
		},
	}
	mgr.HandleEvent(evt)

	sent := transport.sent()
	assert.Len(t, sent, 1)
	assert.True(t, strings.Contains(sent[0], "quote"))
}

func TestUnsupportedPayloadIsDropped(t *testing.T) {
	mgr, transport := connectedManager(t)
	recorder := &observerRecorder{}
	mgr.OnMessage(recorder.observe)

	jid := types.NewJID("15550001111", types.DefaultUserServer)
	evt := &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{Chat: jid, Sender: jid},
			Timestamp:     time.Now(),
		},
		Message: &waE2E.Message{
			ContactMessage: &waE2E.ContactMessage{DisplayName: proto.String("Someone")},
		},
	}
	mgr.HandleEvent(evt)

	assert.Equal(t, int64(0), mgr.Dispatcher().ReceivedCount())
	assert.Equal(t, 0, recorder.count())
	assert.Empty(t, transport.sent())
}

func TestObserverPanicIsIsolated(t *testing.T) {
	mgr, _ := connectedManager(t)
	recorder := &observerRecorder{}

	mgr.OnMessage(func(InboundMessage) { panic("bad observer") })
	mgr.OnMessage(recorder.observe)

	mgr.HandleEvent(directMessage("15550001111", "hello"))

	assert.Equal(t, 1, recorder.count())
}
