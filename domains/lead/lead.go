package lead

import (
	"context"
	"time"
)

// Lead is a prospective customer captured from an inbound channel. Only the
// contact identity is stored here; chat content itself is never persisted.
type Lead struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone" gorm:"uniqueIndex;size:64"`
	Source    string    `json:"source" gorm:"size:32"`
	Status    string    `json:"status" gorm:"size:32;default:new"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ILeadRepository interface {
	Init(ctx context.Context) error
	CreateIfAbsent(ctx context.Context, lead *Lead) (created bool, err error)
	GetByPhone(ctx context.Context, phone string) (*Lead, error)
	List(ctx context.Context, limit, offset int) ([]Lead, error)
	UpdateStatus(ctx context.Context, phone, status string) error
}

type ILeadUsecase interface {
	List(ctx context.Context, request ListRequest) (response ListResponse, err error)
	Get(ctx context.Context, phone string) (*Lead, error)
	UpdateStatus(ctx context.Context, request StatusUpdateRequest) error
}

type ListRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

type ListResponse struct {
	Total int    `json:"total"`
	Leads []Lead `json:"leads"`
}

type StatusUpdateRequest struct {
	Phone  string `json:"phone" form:"phone"`
	Status string `json:"status" form:"status"`
}
