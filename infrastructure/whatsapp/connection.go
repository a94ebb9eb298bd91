package whatsapp

import (
	"context"
	"fmt"
	"sync"
	"time"

	pkgError "github.com/sibinaravind/lead-management-back-sub001/pkg/error"
	"github.com/sibinaravind/lead-management-back-sub001/ui/websocket"
	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow/types/events"
)

// Manager owns the single authenticated chat session for the whole process.
// It is the only writer of the connection state; every other component
// reads through it. A conflicting login or a remote logout is terminal: the
// manager purges the persisted credentials, stops reconnecting and signals
// the host through Fatal so the process can be restarted cleanly.
type Manager struct {
	mu          sync.RWMutex
	status      ConnectionStatus
	pairingCode string
	retryCount  int
	stopped     bool
	purged      bool

	maxRetries int
	retryDelay time.Duration

	transport  Transport
	session    SessionStore
	dispatcher *Dispatcher

	fatal chan FatalReason
}

func NewManager(transport Transport, session SessionStore, maxRetries int, retryDelay time.Duration) *Manager {
	m := &Manager{
		status:     StatusDisconnected,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		transport:  transport,
		session:    session,
		fatal:      make(chan FatalReason, 1),
	}
	m.dispatcher = NewDispatcher(m)
	return m
}

// Fatal delivers at most one terminal reason. The host decides whether to
// exit; the manager itself never terminates the process.
func (m *Manager) Fatal() <-chan FatalReason {
	return m.fatal
}

func (m *Manager) Dispatcher() *Dispatcher {
	return m.dispatcher
}

// OnMessage registers an observer for accepted inbound messages.
func (m *Manager) OnMessage(observer Observer) {
	m.dispatcher.AddObserver(observer)
}

func (m *Manager) Status() ConnectionStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// PairingCode is empty unless the session is waiting for a pairing scan.
func (m *Manager) PairingCode() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pairingCode
}

func (m *Manager) RetryCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.retryCount
}

func (m *Manager) IsLoggedIn() bool {
	return m.transport.IsLoggedIn()
}

// Initialize is the idempotent entry point. Transport errors are swallowed
// into the bounded retry loop rather than surfaced to the caller. After a
// conflict or remote logout it refuses to reconnect until restart.
func (m *Manager) Initialize() {
	m.mu.Lock()
	switch m.status {
	case StatusConflict, StatusLoggedOut:
		m.mu.Unlock()
		logrus.Warn("[WHATSAPP] Session is in a terminal state, restart and re-pair to continue")
		return
	case StatusConnecting, StatusQRPending, StatusConnected:
		m.mu.Unlock()
		return
	}
	m.status = StatusConnecting
	m.stopped = false
	m.mu.Unlock()

	logrus.Info("[WHATSAPP] Connecting to chat network")
	if err := m.transport.Connect(); err != nil {
		logrus.WithError(err).Error("[WHATSAPP] Connect failed, entering retry loop")
		m.handleTransientClose()
	}
}

// Disconnect performs a best-effort logout and leaves the session
// disconnected without scheduling a reconnect. Errors are logged only.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.transport.Logout(ctx); err != nil {
		logrus.WithError(err).Warn("[WHATSAPP] Logout failed, closing socket anyway")
	}
	m.transport.Disconnect()

	m.mu.Lock()
	if m.status != StatusConflict && m.status != StatusLoggedOut {
		m.status = StatusDisconnected
	}
	m.pairingCode = ""
	m.mu.Unlock()
}

// SendText delivers a plain text message to an already-normalized recipient.
func (m *Manager) SendText(ctx context.Context, recipient, text string) (SendReceipt, error) {
	if m.Status() != StatusConnected {
		return SendReceipt{}, pkgError.NotConnectedError("Not connected")
	}
	return m.transport.SendText(ctx, recipient, text)
}

// SendContent routes a discriminated payload through the right transport call.
func (m *Manager) SendContent(ctx context.Context, recipient string, content OutboundContent) (SendReceipt, error) {
	if m.Status() != StatusConnected {
		return SendReceipt{}, pkgError.NotConnectedError("Not connected")
	}
	if content.Kind == ContentText {
		return m.transport.SendText(ctx, recipient, content.Text)
	}
	return m.transport.SendMedia(ctx, recipient, content)
}

// HandleEvent is registered as the whatsmeow event handler. All state
// transitions happen here, on the client's event goroutine.
func (m *Manager) HandleEvent(rawEvt interface{}) {
	switch evt := rawEvt.(type) {
	case *events.QR:
		if len(evt.Codes) > 0 {
			m.setPairingCode(evt.Codes[0])
		}
	case *events.PairSuccess:
		logrus.Infof("[WHATSAPP] Paired with %s", evt.ID.String())
		broadcast("PAIR_SUCCESS", fmt.Sprintf("Successfully paired with %s", evt.ID.String()))
	case *events.Connected:
		m.handleConnected()
	case *events.StreamReplaced:
		m.handleConflict()
	case *events.LoggedOut:
		m.handleRemoteLogout(evt)
	case *events.Disconnected:
		m.handleTransientClose()
	case *events.Message:
		m.dispatcher.HandleMessage(evt)
	}
}

func (m *Manager) setPairingCode(code string) {
	m.mu.Lock()
	m.status = StatusQRPending
	m.pairingCode = code
	m.mu.Unlock()
	logrus.Info("[WHATSAPP] Pairing challenge received, waiting for scan")
	broadcast("QR_PENDING", "Pairing code ready to scan")
}

func (m *Manager) handleConnected() {
	m.mu.Lock()
	m.status = StatusConnected
	m.pairingCode = ""
	m.retryCount = 0
	m.mu.Unlock()
	logrus.Info("[WHATSAPP] Connected")
	broadcast("LOGIN_SUCCESS", "Session connected")
}

// handleConflict handles the remote signal that another process took over
// this session identity. Two concurrent sessions corrupt network state, so
// availability is sacrificed: credentials are purged once and the host is
// told to terminate instead of retrying.
func (m *Manager) handleConflict() {
	m.mu.Lock()
	if m.status == StatusConflict {
		m.mu.Unlock()
		return
	}
	m.status = StatusConflict
	m.pairingCode = ""
	m.mu.Unlock()

	logrus.Error("[WHATSAPP] Stream replaced by another session, shutting down")
	m.purgeCredentials()
	m.transport.Disconnect()
	broadcast("CONFLICT", "Another session took over, service must be restarted")
	m.signalFatal(FatalConflict)
}

func (m *Manager) handleRemoteLogout(evt *events.LoggedOut) {
	m.mu.Lock()
	if m.status == StatusLoggedOut {
		m.mu.Unlock()
		return
	}
	m.status = StatusLoggedOut
	m.pairingCode = ""
	m.mu.Unlock()

	logrus.Warnf("[WHATSAPP] Remote logout (reason %v), credentials invalidated", evt.Reason)
	m.purgeCredentials()
	broadcast("LOGOUT_COMPLETE", "Remote logout, re-pairing required")
	m.signalFatal(FatalLoggedOut)
}

// handleTransientClose schedules one bounded reconnect attempt. Each failed
// attempt re-enters here, so the retry count grows by exactly one per
// attempt until maxRetries, after which the session stays disconnected
// until manually re-initialized.
func (m *Manager) handleTransientClose() {
	m.mu.Lock()
	if m.status == StatusConflict || m.status == StatusLoggedOut || m.stopped {
		m.mu.Unlock()
		return
	}
	m.status = StatusDisconnected
	m.pairingCode = ""
	if m.retryCount >= m.maxRetries {
		m.mu.Unlock()
		logrus.Errorf("[WHATSAPP] Gave up reconnecting after %d attempts", m.maxRetries)
		return
	}
	m.retryCount++
	attempt := m.retryCount
	m.mu.Unlock()

	logrus.Warnf("[WHATSAPP] Disconnected, reconnect attempt %d/%d in %s", attempt, m.maxRetries, m.retryDelay)
	go m.retryConnect()
}

func (m *Manager) retryConnect() {
	time.Sleep(m.retryDelay)

	m.mu.Lock()
	if m.status != StatusDisconnected || m.stopped {
		m.mu.Unlock()
		return
	}
	m.status = StatusConnecting
	m.mu.Unlock()

	if err := m.transport.Connect(); err != nil {
		logrus.WithError(err).Warn("[WHATSAPP] Reconnect attempt failed")
		m.handleTransientClose()
	}
}

func (m *Manager) purgeCredentials() {
	m.mu.Lock()
	if m.purged {
		m.mu.Unlock()
		return
	}
	m.purged = true
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := m.session.Purge(ctx); err != nil {
		logrus.WithError(err).Error("[WHATSAPP] Failed to purge session credentials")
		return
	}
	logrus.Info("[WHATSAPP] Session credentials purged")
}

func (m *Manager) signalFatal(reason FatalReason) {
	select {
	case m.fatal <- reason:
	default:
	}
}

func broadcast(code, message string) {
	select {
	case websocket.Broadcast <- websocket.BroadcastMessage{Code: code, Message: message}:
	default:
	}
}
