package whatsapp

import (
	"context"
	"mime/multipart"
	"time"
)

type IAppUsecase interface {
	Login(ctx context.Context) (response LoginResponse, err error)
	Reconnect(ctx context.Context) (err error)
	Logout(ctx context.Context) (err error)
	Status(ctx context.Context) (response StatusResponse, err error)
}

type ISendUsecase interface {
	SendText(ctx context.Context, request MessageRequest) (response GenericResponse, err error)
	SendImage(ctx context.Context, request ImageRequest) (response GenericResponse, err error)
	SendFile(ctx context.Context, request FileRequest) (response GenericResponse, err error)
	SendBulk(ctx context.Context, request BulkRequest) (response BulkResponse, err error)
}

type LoginResponse struct {
	Status      string `json:"status"`
	PairingCode string `json:"pairing_code,omitempty"`
}

type StatusResponse struct {
	Connected        bool   `json:"connected"`
	LoggedIn         bool   `json:"logged_in"`
	Status           string `json:"status"`
	PairingCode      string `json:"pairing_code,omitempty"`
	ReceivedMessages int64  `json:"received_messages"`
	RetryCount       int    `json:"retry_count"`
}

type MessageRequest struct {
	Phone   string `json:"phone" form:"phone"`
	Message string `json:"message" form:"message"`
}

type ImageRequest struct {
	Phone     string                `json:"phone" form:"phone"`
	Caption   string                `json:"caption" form:"caption"`
	ImagePath string                `json:"image_path" form:"image_path"`
	Image     *multipart.FileHeader `json:"-" form:"image"`
	Compress  bool                  `json:"compress" form:"compress"`
}

type FileRequest struct {
	Phone    string                `json:"phone" form:"phone"`
	Caption  string                `json:"caption" form:"caption"`
	FilePath string                `json:"file_path" form:"file_path"`
	File     *multipart.FileHeader `json:"-" form:"file"`
}

type BulkRequest struct {
	Phones  []string `json:"phones" form:"phones"`
	Message string   `json:"message" form:"message"`
	DelayMs int      `json:"delay_ms" form:"delay_ms"`
}

type GenericResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// BulkResult carries the outcome of one recipient inside a bulk job.
// Results always preserve the request order, one entry per recipient.
type BulkResult struct {
	Phone  string `json:"phone"`
	Sent   bool   `json:"sent"`
	Detail string `json:"detail,omitempty"`
}

type BulkResponse struct {
	JobID     string       `json:"job_id"`
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	StartedAt time.Time    `json:"started_at"`
	Results   []BulkResult `json:"results"`
}
