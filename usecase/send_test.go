package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainSend "github.com/sibinaravind/lead-management-back-sub001/domains/whatsapp"
	"github.com/sibinaravind/lead-management-back-sub001/infrastructure/whatsapp"
	pkgError "github.com/sibinaravind/lead-management-back-sub001/pkg/error"
	"github.com/stretchr/testify/assert"
	"go.mau.fi/whatsmeow/types/events"
)

type stubTransport struct {
	mu         sync.Mutex
	recipients []string
	failFor    map[string]error
}

func (s *stubTransport) Connect() error                   { return nil }
func (s *stubTransport) Disconnect()                      {}
func (s *stubTransport) Logout(ctx context.Context) error { return nil }
func (s *stubTransport) IsConnected() bool                { return true }
func (s *stubTransport) IsLoggedIn() bool                 { return true }
func (s *stubTransport) SelfID() string                   { return "self@s.whatsapp.net" }

func (s *stubTransport) SendText(ctx context.Context, recipient, text string) (whatsapp.SendReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failFor[recipient]; ok {
		return whatsapp.SendReceipt{}, err
	}
	s.recipients = append(s.recipients, recipient)
	return whatsapp.SendReceipt{MessageID: "MSG", Timestamp: time.Now()}, nil
}

func (s *stubTransport) SendMedia(ctx context.Context, recipient string, content whatsapp.OutboundContent) (whatsapp.SendReceipt, error) {
	return s.SendText(ctx, recipient, content.Text)
}

func (s *stubTransport) Download(ctx context.Context, msg whatsapp.DownloadableMessage) ([]byte, error) {
	return nil, nil
}

type stubSessionStore struct{}

func (stubSessionStore) Purge(ctx context.Context) error { return nil }
func (stubSessionStore) Close() error                    { return nil }

func newSendFixture(connected bool) (domainSend.ISendUsecase, *stubTransport) {
	transport := &stubTransport{failFor: map[string]error{}}
	mgr := whatsapp.NewManager(transport, stubSessionStore{}, 5, time.Millisecond)
	if connected {
		mgr.HandleEvent(&events.Connected{})
	}
	return NewSendService(mgr), transport
}

func TestSendTextFailsFastWhenDisconnected(t *testing.T) {
	service, transport := newSendFixture(false)

	_, err := service.SendText(context.Background(), domainSend.MessageRequest{
		Phone:   "9876543210",
		Message: "hi",
	})

	var notConnected pkgError.NotConnectedError
	assert.ErrorAs(t, err, &notConnected)
	assert.Empty(t, transport.recipients)
}

func TestSendTextNormalizesRecipient(t *testing.T) {
	service, transport := newSendFixture(true)

	response, err := service.SendText(context.Background(), domainSend.MessageRequest{
		Phone:   "9876543210",
		Message: "hi",
	})

	assert.NoError(t, err)
	assert.Equal(t, "MSG", response.MessageID)
	assert.Equal(t, []string{"919876543210@s.whatsapp.net"}, transport.recipients)
}

func TestSendTextValidation(t *testing.T) {
	service, _ := newSendFixture(true)

	_, err := service.SendText(context.Background(), domainSend.MessageRequest{Phone: "9876543210"})

	var validationErr pkgError.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSendBulkReportsPerRecipientOutcomes(t *testing.T) {
	service, transport := newSendFixture(true)
	transport.failFor["912222222222@s.whatsapp.net"] = errors.New("recipient rejected")

	response, err := service.SendBulk(context.Background(), domainSend.BulkRequest{
		Phones:  []string{"1111111111", "2222222222", "3333333333"},
		Message: "promo",
		DelayMs: 1,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, response.JobID)
	assert.Equal(t, 3, response.Total)
	assert.Equal(t, 2, response.Succeeded)
	assert.Equal(t, 1, response.Failed)

	// Outcomes keep the request order.
	assert.Len(t, response.Results, 3)
	assert.Equal(t, "1111111111", response.Results[0].Phone)
	assert.True(t, response.Results[0].Sent)
	assert.Equal(t, "2222222222", response.Results[1].Phone)
	assert.False(t, response.Results[1].Sent)
	assert.Contains(t, response.Results[1].Detail, "recipient rejected")
	assert.True(t, response.Results[2].Sent)
}

func TestSendBulkValidation(t *testing.T) {
	service, _ := newSendFixture(true)

	_, err := service.SendBulk(context.Background(), domainSend.BulkRequest{Message: "promo"})

	var validationErr pkgError.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
