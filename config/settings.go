package config

import (
	"time"

	"go.mau.fi/whatsmeow/proto/waCompanionReg"
)

var (
	AppVersion             = "v1.4.0"
	AppPort                = "3000"
	AppDebug               = false
	AppOs                  = "LeadDesk"
	AppPlatform            = waCompanionReg.DeviceProps_PlatformType(1)
	AppBasicAuthCredential []string
	AppBasePath            = ""

	PathStorages  = "storages"
	PathSendItems = "statics/senditems"

	// Session store for the chat network. sqlite file by default, a
	// postgres: URI switches the driver.
	DBURI = "file:storages/whatsapp.db?_foreign_keys=on"

	// Lead database (gorm). Driver is "sqlite" or "postgres".
	LeadDBDriver   = "sqlite"
	LeadDBName     = "storages/leads.db"
	LeadDBHost     = "localhost"
	LeadDBPort     = 5432
	LeadDBUser     = "postgres"
	LeadDBPassword = ""

	WhatsappLogLevel                = "ERROR"
	WhatsappAutoReplyEnabled        = true
	WhatsappAutoMarkRead            = false
	WhatsappAutoDownloadMedia       = true
	WhatsappCountryCode             = "91"
	WhatsappMaxImageSize      int64 = 20000000 // 20MB
	WhatsappMaxFileSize       int64 = 50000000 // 50MB
	WhatsappTypeUser                = "@s.whatsapp.net"
	WhatsappTypeGroup               = "@g.us"

	WhatsappReconnectMaxRetries = 5
	WhatsappReconnectDelay      = 5 * time.Second

	WhatsappBulkDefaultDelayMs = 1500
)
