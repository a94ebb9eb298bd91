package usecase

import (
	"context"

	domainApp "github.com/sibinaravind/lead-management-back-sub001/domains/whatsapp"
	"github.com/sibinaravind/lead-management-back-sub001/infrastructure/whatsapp"
	"github.com/sirupsen/logrus"
)

type serviceApp struct {
	manager *whatsapp.Manager
}

func NewAppService(manager *whatsapp.Manager) domainApp.IAppUsecase {
	return &serviceApp{manager: manager}
}

// Login starts the session. When no stored credentials exist the manager
// lands in the pairing state and the code is surfaced for the client to scan.
func (service *serviceApp) Login(ctx context.Context) (response domainApp.LoginResponse, err error) {
	service.manager.Initialize()

	response.Status = string(service.manager.Status())
	response.PairingCode = service.manager.PairingCode()
	return response, nil
}

func (service *serviceApp) Reconnect(ctx context.Context) (err error) {
	logrus.Info("[APP] Manual reconnect requested")
	service.manager.Initialize()
	return nil
}

func (service *serviceApp) Logout(ctx context.Context) (err error) {
	logrus.Info("[APP] Logout requested")
	service.manager.Disconnect()
	return nil
}

func (service *serviceApp) Status(ctx context.Context) (response domainApp.StatusResponse, err error) {
	status := service.manager.Status()
	response = domainApp.StatusResponse{
		Connected:        status == whatsapp.StatusConnected,
		LoggedIn:         service.manager.IsLoggedIn(),
		Status:           string(status),
		PairingCode:      service.manager.PairingCode(),
		ReceivedMessages: service.manager.Dispatcher().ReceivedCount(),
		RetryCount:       service.manager.RetryCount(),
	}
	return response, nil
}
