package validations

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sibinaravind/lead-management-back-sub001/config"
	domainSend "github.com/sibinaravind/lead-management-back-sub001/domains/whatsapp"
	pkgError "github.com/sibinaravind/lead-management-back-sub001/pkg/error"
)

func ValidateSendMessage(ctx context.Context, request domainSend.MessageRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Phone, validation.Required),
		validation.Field(&request.Message, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateSendImage(ctx context.Context, request domainSend.ImageRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Phone, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	if request.Image == nil && request.ImagePath == "" {
		return pkgError.ValidationError("either image or image_path must be provided")
	}
	if request.Image != nil && request.Image.Size > config.WhatsappMaxImageSize {
		maxSizeString := humanize.Bytes(uint64(config.WhatsappMaxImageSize))
		return pkgError.ValidationError(fmt.Sprintf("image size exceeds the maximum limit of %s", maxSizeString))
	}

	return nil
}

func ValidateSendFile(ctx context.Context, request domainSend.FileRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Phone, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	if request.File == nil && request.FilePath == "" {
		return pkgError.ValidationError("either file or file_path must be provided")
	}
	if request.File != nil && request.File.Size > config.WhatsappMaxFileSize {
		maxSizeString := humanize.Bytes(uint64(config.WhatsappMaxFileSize))
		return pkgError.ValidationError(fmt.Sprintf("file size exceeds the maximum limit of %s", maxSizeString))
	}

	return nil
}

func ValidateSendBulk(ctx context.Context, request domainSend.BulkRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Phones, validation.Required, validation.Length(1, 500)),
		validation.Field(&request.Message, validation.Required),
		validation.Field(&request.DelayMs, validation.Min(0), validation.Max(60000)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	for _, phone := range request.Phones {
		if phone == "" {
			return pkgError.ValidationError("phones must not contain empty entries")
		}
	}

	return nil
}
