package validations

import (
	"context"
	"testing"

	domainSend "github.com/sibinaravind/lead-management-back-sub001/domains/whatsapp"
	pkgError "github.com/sibinaravind/lead-management-back-sub001/pkg/error"
	"github.com/stretchr/testify/assert"
)

func TestValidateSendMessage(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, ValidateSendMessage(ctx, domainSend.MessageRequest{
		Phone:   "9876543210",
		Message: "hello",
	}))

	err := ValidateSendMessage(ctx, domainSend.MessageRequest{Phone: "9876543210"})
	var validationErr pkgError.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	err = ValidateSendMessage(ctx, domainSend.MessageRequest{Message: "hello"})
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateSendImageRequiresSource(t *testing.T) {
	ctx := context.Background()

	err := ValidateSendImage(ctx, domainSend.ImageRequest{Phone: "9876543210"})
	var validationErr pkgError.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	assert.NoError(t, ValidateSendImage(ctx, domainSend.ImageRequest{
		Phone:     "9876543210",
		ImagePath: "statics/senditems/pic.png",
	}))
}

func TestValidateSendFileRequiresSource(t *testing.T) {
	ctx := context.Background()

	err := ValidateSendFile(ctx, domainSend.FileRequest{Phone: "9876543210"})
	var validationErr pkgError.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	assert.NoError(t, ValidateSendFile(ctx, domainSend.FileRequest{
		Phone:    "9876543210",
		FilePath: "statics/senditems/doc.pdf",
	}))
}

func TestValidateSendBulk(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, ValidateSendBulk(ctx, domainSend.BulkRequest{
		Phones:  []string{"9876543210"},
		Message: "promo",
	}))

	var validationErr pkgError.ValidationError

	err := ValidateSendBulk(ctx, domainSend.BulkRequest{Message: "promo"})
	assert.ErrorAs(t, err, &validationErr)

	err = ValidateSendBulk(ctx, domainSend.BulkRequest{
		Phones:  []string{"9876543210", ""},
		Message: "promo",
	})
	assert.ErrorAs(t, err, &validationErr)

	err = ValidateSendBulk(ctx, domainSend.BulkRequest{
		Phones:  []string{"9876543210"},
		Message: "promo",
		DelayMs: 120000,
	})
	assert.ErrorAs(t, err, &validationErr)
}
