package usecase

import (
	"context"
	"errors"
	"time"

	domainLead "github.com/sibinaravind/lead-management-back-sub001/domains/lead"
	"github.com/sibinaravind/lead-management-back-sub001/infrastructure/whatsapp"
	pkgError "github.com/sibinaravind/lead-management-back-sub001/pkg/error"
	"github.com/sibinaravind/lead-management-back-sub001/validations"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type serviceLead struct {
	repo domainLead.ILeadRepository
}

func NewLeadService(repo domainLead.ILeadRepository) *serviceLead {
	return &serviceLead{repo: repo}
}

// CaptureFromMessage is registered as a message observer. Every new direct
// sender becomes a lead; repeated senders are left untouched.
func (service *serviceLead) CaptureFromMessage(msg whatsapp.InboundMessage) {
	if msg.IsGroup {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := service.repo.CreateIfAbsent(ctx, &domainLead.Lead{
		Name:   msg.SenderName,
		Phone:  msg.Sender,
		Source: "whatsapp",
		Status: "new",
	})
	if err != nil {
		logrus.WithError(err).Errorf("[LEAD] Failed to capture lead for %s", msg.Sender)
		return
	}
	if created {
		logrus.Infof("[LEAD] New lead captured: %s", msg.Sender)
	}
}

func (service *serviceLead) List(ctx context.Context, request domainLead.ListRequest) (response domainLead.ListResponse, err error) {
	limit := request.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	leads, err := service.repo.List(ctx, limit, offset)
	if err != nil {
		return response, pkgError.InternalServerError(err.Error())
	}

	response.Total = len(leads)
	response.Leads = leads
	return response, nil
}

func (service *serviceLead) Get(ctx context.Context, phone string) (*domainLead.Lead, error) {
	if phone == "" {
		return nil, pkgError.ValidationError("phone: cannot be blank.")
	}
	lead, err := service.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, pkgError.InternalServerError(err.Error())
	}
	if lead == nil {
		return nil, pkgError.NotFoundError("lead not found")
	}
	return lead, nil
}

func (service *serviceLead) UpdateStatus(ctx context.Context, request domainLead.StatusUpdateRequest) error {
	if err := validations.ValidateLeadStatusUpdate(ctx, request); err != nil {
		return err
	}
	err := service.repo.UpdateStatus(ctx, request.Phone, request.Status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgError.NotFoundError("lead not found")
	}
	if err != nil {
		return pkgError.InternalServerError(err.Error())
	}
	return nil
}
