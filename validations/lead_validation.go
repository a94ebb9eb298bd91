package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	domainLead "github.com/sibinaravind/lead-management-back-sub001/domains/lead"
	pkgError "github.com/sibinaravind/lead-management-back-sub001/pkg/error"
)

func ValidateLeadStatusUpdate(ctx context.Context, request domainLead.StatusUpdateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Phone, validation.Required),
		validation.Field(&request.Status, validation.Required, validation.In("new", "contacted", "qualified", "converted", "closed")),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
