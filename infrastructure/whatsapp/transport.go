package whatsapp

import (
	"context"
	"fmt"
	"strings"

	"github.com/sibinaravind/lead-management-back-sub001/config"
	pkgError "github.com/sibinaravind/lead-management-back-sub001/pkg/error"
	"github.com/sibinaravind/lead-management-back-sub001/pkg/utils"
	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// InitSessionDB opens the session credential store. The driver follows the
// URI scheme, everything that is not postgres is treated as sqlite.
func InitSessionDB(ctx context.Context, dbURI string) (*sqlstore.Container, error) {
	dbLog := waLog.Stdout("Database", config.WhatsappLogLevel, true)
	if strings.HasPrefix(dbURI, "postgres:") {
		return sqlstore.New(ctx, "postgres", dbURI, dbLog)
	}
	return sqlstore.New(ctx, "sqlite3", dbURI, dbLog)
}

// ClientTransport adapts a whatsmeow client to the Transport interface.
type ClientTransport struct {
	client *whatsmeow.Client
}

// NewClientTransport builds the client for the first (or a fresh) device in
// the container and wires every client event into handler.
func NewClientTransport(ctx context.Context, container *sqlstore.Container, handler func(rawEvt interface{})) (*ClientTransport, error) {
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, pkgError.InternalServerError(fmt.Sprintf("Device initialization error: %v", err))
	}

	osName := fmt.Sprintf("%s %s", config.AppOs, config.AppVersion)
	store.DeviceProps.PlatformType = &config.AppPlatform
	store.DeviceProps.Os = &osName

	client := whatsmeow.NewClient(device, waLog.Stdout("Client", config.WhatsappLogLevel, true))
	client.EnableAutoReconnect = false
	client.AutoTrustIdentity = true
	client.AddEventHandler(handler)

	return &ClientTransport{client: client}, nil
}

func (t *ClientTransport) Connect() error {
	return t.client.Connect()
}

func (t *ClientTransport) Disconnect() {
	t.client.Disconnect()
}

func (t *ClientTransport) Logout(ctx context.Context) error {
	if t.client.Store.ID == nil {
		return nil
	}
	return t.client.Logout(ctx)
}

func (t *ClientTransport) IsConnected() bool {
	return t.client.IsConnected()
}

func (t *ClientTransport) IsLoggedIn() bool {
	return t.client.IsLoggedIn()
}

func (t *ClientTransport) SelfID() string {
	if t.client.Store.ID == nil {
		return ""
	}
	return t.client.Store.ID.String()
}

func (t *ClientTransport) SendText(ctx context.Context, recipient, text string) (SendReceipt, error) {
	jid, err := types.ParseJID(recipient)
	if err != nil {
		return SendReceipt{}, pkgError.ValidationError(fmt.Sprintf("invalid recipient %s: %v", recipient, err))
	}

	resp, err := t.client.SendMessage(ctx, jid, &waE2E.Message{Conversation: proto.String(text)})
	if err != nil {
		return SendReceipt{}, err
	}
	return SendReceipt{MessageID: resp.ID, Timestamp: resp.Timestamp}, nil
}

func (t *ClientTransport) SendMedia(ctx context.Context, recipient string, content OutboundContent) (SendReceipt, error) {
	jid, err := types.ParseJID(recipient)
	if err != nil {
		return SendReceipt{}, pkgError.ValidationError(fmt.Sprintf("invalid recipient %s: %v", recipient, err))
	}

	mediaType := whatsmeow.MediaDocument
	if content.Kind == ContentImage {
		mediaType = whatsmeow.MediaImage
	}

	uploaded, err := t.client.Upload(ctx, content.Data, mediaType)
	if err != nil {
		return SendReceipt{}, pkgError.InternalServerError(fmt.Sprintf("failed to upload media: %v", err))
	}

	msg := &waE2E.Message{}
	switch content.Kind {
	case ContentImage:
		msg.ImageMessage = &waE2E.ImageMessage{
			URL:           proto.String(uploaded.URL),
			DirectPath:    proto.String(uploaded.DirectPath),
			MediaKey:      uploaded.MediaKey,
			Mimetype:      proto.String(content.MimeType),
			FileEncSHA256: uploaded.FileEncSHA256,
			FileSHA256:    uploaded.FileSHA256,
			FileLength:    proto.Uint64(uploaded.FileLength),
			Caption:       proto.String(content.Text),
		}
	default:
		msg.DocumentMessage = &waE2E.DocumentMessage{
			URL:           proto.String(uploaded.URL),
			DirectPath:    proto.String(uploaded.DirectPath),
			MediaKey:      uploaded.MediaKey,
			Mimetype:      proto.String(content.MimeType),
			FileEncSHA256: uploaded.FileEncSHA256,
			FileSHA256:    uploaded.FileSHA256,
			FileLength:    proto.Uint64(uploaded.FileLength),
			Caption:       proto.String(content.Text),
			FileName:      proto.String(content.Filename),
		}
	}

	resp, err := t.client.SendMessage(ctx, jid, msg)
	if err != nil {
		return SendReceipt{}, err
	}
	return SendReceipt{MessageID: resp.ID, Timestamp: resp.Timestamp}, nil
}

func (t *ClientTransport) Download(ctx context.Context, msg DownloadableMessage) ([]byte, error) {
	return t.client.Download(ctx, msg)
}

// SQLSessionStore wraps the sqlstore container so the connection manager
// can wipe credentials without knowing about drivers or file layouts.
type SQLSessionStore struct {
	container *sqlstore.Container
	dbURI     string
}

func NewSQLSessionStore(container *sqlstore.Container, dbURI string) *SQLSessionStore {
	return &SQLSessionStore{container: container, dbURI: dbURI}
}

// Purge deletes every stored device and, for sqlite, the backing file.
// Stale credentials after a conflict or remote logout cause reconnect
// loops, so the wipe must be thorough.
func (s *SQLSessionStore) Purge(ctx context.Context) error {
	devices, err := s.container.GetAllDevices(ctx)
	if err != nil {
		return err
	}
	for _, device := range devices {
		if err := s.container.DeleteDevice(ctx, device); err != nil {
			logrus.WithError(err).Warnf("[WHATSAPP] Failed to delete device %s", device.ID)
		}
	}

	if strings.HasPrefix(s.dbURI, "file:") {
		path := strings.TrimPrefix(s.dbURI, "file:")
		if idx := strings.Index(path, "?"); idx >= 0 {
			path = path[:idx]
		}
		if err := s.container.Close(); err != nil {
			logrus.WithError(err).Warn("[WHATSAPP] Failed to close session store")
		}
		utils.RemoveFile(path)
	}
	return nil
}

func (s *SQLSessionStore) Close() error {
	return s.container.Close()
}
