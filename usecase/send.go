package usecase

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sibinaravind/lead-management-back-sub001/config"
	domainSend "github.com/sibinaravind/lead-management-back-sub001/domains/whatsapp"
	"github.com/sibinaravind/lead-management-back-sub001/infrastructure/whatsapp"
	pkgError "github.com/sibinaravind/lead-management-back-sub001/pkg/error"
	pkgUtils "github.com/sibinaravind/lead-management-back-sub001/pkg/utils"
	"github.com/sibinaravind/lead-management-back-sub001/validations"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	_ "golang.org/x/image/webp"
)

type serviceSend struct {
	manager *whatsapp.Manager
}

func NewSendService(manager *whatsapp.Manager) domainSend.ISendUsecase {
	return &serviceSend{manager: manager}
}

func (service *serviceSend) ensureConnected() error {
	if service.manager.Status() != whatsapp.StatusConnected {
		return pkgError.NotConnectedError("Not connected")
	}
	return nil
}

func (service *serviceSend) normalize(phone string) string {
	pkgUtils.SanitizePhone(&phone)
	return pkgUtils.NormalizeRecipient(phone, config.WhatsappCountryCode, config.WhatsappTypeUser)
}

func (service *serviceSend) SendText(ctx context.Context, request domainSend.MessageRequest) (response domainSend.GenericResponse, err error) {
	if err = validations.ValidateSendMessage(ctx, request); err != nil {
		return response, err
	}
	if err = service.ensureConnected(); err != nil {
		return response, err
	}

	recipient := service.normalize(request.Phone)
	receipt, err := service.manager.SendText(ctx, recipient, request.Message)
	if err != nil {
		return response, err
	}

	response.MessageID = receipt.MessageID
	response.Status = fmt.Sprintf("Message sent to %s", request.Phone)
	return response, nil
}

func (service *serviceSend) SendImage(ctx context.Context, request domainSend.ImageRequest) (response domainSend.GenericResponse, err error) {
	if err = validations.ValidateSendImage(ctx, request); err != nil {
		return response, err
	}
	if err = service.ensureConnected(); err != nil {
		return response, err
	}

	var (
		imagePath    string
		imageName    string
		deletedItems []string
	)
	defer func() {
		if len(deletedItems) > 0 {
			go pkgUtils.RemoveFile(deletedItems...)
		}
	}()

	if request.Image != nil {
		imageName = request.Image.Filename
		imagePath = fmt.Sprintf("%s/%s", config.PathSendItems, imageName)
		if err = fasthttp.SaveMultipartFile(request.Image, imagePath); err != nil {
			return response, pkgError.InternalServerError(fmt.Sprintf("failed to store image %v", err))
		}
		deletedItems = append(deletedItems, imagePath)
	} else {
		imagePath = request.ImagePath
		imageName = filenameOf(imagePath)
	}

	if request.Compress {
		srcImage, openErr := imaging.Open(imagePath)
		if openErr != nil {
			return response, pkgError.InternalServerError(fmt.Sprintf("failed to open image file '%s': %v", imagePath, openErr))
		}
		resizedImage := imaging.Resize(srcImage, 600, 0, imaging.Lanczos)
		compressedPath := fmt.Sprintf("%s/compressed-%s", config.PathSendItems, imageName)
		if err = imaging.Save(resizedImage, compressedPath); err != nil {
			return response, pkgError.InternalServerError(fmt.Sprintf("failed to save compressed image %v", err))
		}
		deletedItems = append(deletedItems, compressedPath)
		imagePath = compressedPath
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return response, pkgError.InternalServerError(fmt.Sprintf("failed to read image %v", err))
	}

	recipient := service.normalize(request.Phone)
	receipt, err := service.manager.SendContent(ctx, recipient, whatsapp.OutboundContent{
		Kind:     whatsapp.ContentImage,
		Text:     request.Caption,
		Data:     imageData,
		Filename: imageName,
		MimeType: http.DetectContentType(imageData),
	})
	if err != nil {
		return response, err
	}

	response.MessageID = receipt.MessageID
	response.Status = fmt.Sprintf("Image sent to %s", request.Phone)
	return response, nil
}

func (service *serviceSend) SendFile(ctx context.Context, request domainSend.FileRequest) (response domainSend.GenericResponse, err error) {
	if err = validations.ValidateSendFile(ctx, request); err != nil {
		return response, err
	}
	if err = service.ensureConnected(); err != nil {
		return response, err
	}

	var (
		filePath     string
		fileName     string
		deletedItems []string
	)
	defer func() {
		if len(deletedItems) > 0 {
			go pkgUtils.RemoveFile(deletedItems...)
		}
	}()

	if request.File != nil {
		fileName = request.File.Filename
		filePath = fmt.Sprintf("%s/%s", config.PathSendItems, fileName)
		if err = fasthttp.SaveMultipartFile(request.File, filePath); err != nil {
			return response, pkgError.InternalServerError(fmt.Sprintf("failed to store file %v", err))
		}
		deletedItems = append(deletedItems, filePath)
	} else {
		filePath = request.FilePath
		fileName = filenameOf(filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return response, pkgError.InternalServerError(fmt.Sprintf("failed to read file %v", err))
	}

	recipient := service.normalize(request.Phone)
	receipt, err := service.manager.SendContent(ctx, recipient, whatsapp.OutboundContent{
		Kind:     whatsapp.ContentDocument,
		Text:     request.Caption,
		Data:     fileData,
		Filename: fileName,
		MimeType: http.DetectContentType(fileData),
	})
	if err != nil {
		return response, err
	}

	response.MessageID = receipt.MessageID
	response.Status = fmt.Sprintf("File sent to %s", request.Phone)
	return response, nil
}

// SendBulk walks the recipient list sequentially with a fixed delay so the
// network never sees a burst. One failed recipient never aborts the job;
// every entry gets its own outcome, in request order.
func (service *serviceSend) SendBulk(ctx context.Context, request domainSend.BulkRequest) (response domainSend.BulkResponse, err error) {
	if err = validations.ValidateSendBulk(ctx, request); err != nil {
		return response, err
	}
	if err = service.ensureConnected(); err != nil {
		return response, err
	}

	delay := time.Duration(request.DelayMs) * time.Millisecond
	if request.DelayMs <= 0 {
		delay = time.Duration(config.WhatsappBulkDefaultDelayMs) * time.Millisecond
	}

	response.JobID = uuid.NewString()
	response.Total = len(request.Phones)
	response.StartedAt = time.Now()
	response.Results = make([]domainSend.BulkResult, 0, len(request.Phones))

	logrus.Infof("[SEND] Bulk job %s started for %d recipients", response.JobID, response.Total)

	for i, phone := range request.Phones {
		result := domainSend.BulkResult{Phone: phone}

		recipient := service.normalize(phone)
		if _, sendErr := service.manager.SendText(ctx, recipient, request.Message); sendErr != nil {
			result.Detail = sendErr.Error()
			response.Failed++
			logrus.WithError(sendErr).Warnf("[SEND] Bulk job %s: send to %s failed", response.JobID, phone)
		} else {
			result.Sent = true
			response.Succeeded++
		}
		response.Results = append(response.Results, result)

		if i < len(request.Phones)-1 {
			time.Sleep(delay)
		}
	}

	logrus.Infof("[SEND] Bulk job %s finished: %d sent, %d failed", response.JobID, response.Succeeded, response.Failed)
	return response, nil
}

func filenameOf(path string) string {
	return filepath.Base(path)
}
