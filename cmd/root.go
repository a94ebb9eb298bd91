package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	globalConfig "github.com/sibinaravind/lead-management-back-sub001/config"
	domainLead "github.com/sibinaravind/lead-management-back-sub001/domains/lead"
	domainApp "github.com/sibinaravind/lead-management-back-sub001/domains/whatsapp"
	"github.com/sibinaravind/lead-management-back-sub001/infrastructure/database"
	"github.com/sibinaravind/lead-management-back-sub001/infrastructure/whatsapp"
	"github.com/sibinaravind/lead-management-back-sub001/pkg/utils"
	"github.com/sibinaravind/lead-management-back-sub001/repository"
	"github.com/sibinaravind/lead-management-back-sub001/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	waManager *whatsapp.Manager

	appUsecase  domainApp.IAppUsecase
	sendUsecase domainApp.ISendUsecase
	leadUsecase domainLead.ILeadUsecase
)

var rootCmd = &cobra.Command{
	Short: "Lead management backend with a messaging channel connector",
	Long:  `Admin backend for lead capture and follow-up over a chat channel. Pair a device once and the service keeps the session alive, auto-replies to inquiries and records every new contact as a lead.`,
}

func init() {
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initEnvConfig, initApp)
}

// initEnvConfig loads configuration from environment variables
func initEnvConfig() {
	if envPort := viper.GetString("app_port"); envPort != "" {
		globalConfig.AppPort = envPort
	}
	if envDebug := viper.GetBool("app_debug"); envDebug {
		globalConfig.AppDebug = envDebug
	}
	if envOs := viper.GetString("app_os"); envOs != "" {
		globalConfig.AppOs = envOs
	}
	envBasicAuth := viper.GetString("app_basic_auth")
	if envBasicAuth == "" {
		envBasicAuth = os.Getenv("APP_BASIC_AUTH")
	}
	if envBasicAuth != "" {
		globalConfig.AppBasicAuthCredential = strings.Split(envBasicAuth, ",")
	}
	if envBasePath := viper.GetString("app_base_path"); envBasePath != "" {
		globalConfig.AppBasePath = envBasePath
	}

	if envDBURI := viper.GetString("db_uri"); envDBURI != "" {
		globalConfig.DBURI = envDBURI
	}
	if envLeadDriver := viper.GetString("lead_db_driver"); envLeadDriver != "" {
		globalConfig.LeadDBDriver = envLeadDriver
	}
	if envLeadName := viper.GetString("lead_db_name"); envLeadName != "" {
		globalConfig.LeadDBName = envLeadName
	}
	if envLeadHost := viper.GetString("lead_db_host"); envLeadHost != "" {
		globalConfig.LeadDBHost = envLeadHost
	}
	if envLeadPort := viper.GetInt("lead_db_port"); envLeadPort != 0 {
		globalConfig.LeadDBPort = envLeadPort
	}
	if envLeadUser := viper.GetString("lead_db_user"); envLeadUser != "" {
		globalConfig.LeadDBUser = envLeadUser
	}
	if envLeadPassword := viper.GetString("lead_db_password"); envLeadPassword != "" {
		globalConfig.LeadDBPassword = envLeadPassword
	}

	if viper.IsSet("whatsapp_auto_reply") {
		globalConfig.WhatsappAutoReplyEnabled = viper.GetBool("whatsapp_auto_reply")
	}
	if viper.IsSet("whatsapp_auto_download_media") {
		globalConfig.WhatsappAutoDownloadMedia = viper.GetBool("whatsapp_auto_download_media")
	}
	if envCountryCode := viper.GetString("whatsapp_country_code"); envCountryCode != "" {
		globalConfig.WhatsappCountryCode = envCountryCode
	}
	if envLogLevel := viper.GetString("whatsapp_log_level"); envLogLevel != "" {
		globalConfig.WhatsappLogLevel = envLogLevel
	}
	if envBulkDelay := viper.GetInt("whatsapp_bulk_delay_ms"); envBulkDelay > 0 {
		globalConfig.WhatsappBulkDefaultDelayMs = envBulkDelay
	}
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AppPort,
		"port", "p",
		globalConfig.AppPort,
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&globalConfig.AppDebug,
		"debug", "d",
		globalConfig.AppDebug,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AppOs,
		"os", "",
		globalConfig.AppOs,
		`os name --os <string> | example: --os="Chrome"`,
	)
	rootCmd.PersistentFlags().StringSliceVarP(
		&globalConfig.AppBasicAuthCredential,
		"basic-auth", "b",
		globalConfig.AppBasicAuthCredential,
		"basic auth credential | -b=yourUsername:yourPassword",
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AppBasePath,
		"base-path", "",
		globalConfig.AppBasePath,
		`base path for subpath deployment --base-path <string> | example: --base-path="/leaddesk"`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.DBURI,
		"db-uri", "",
		globalConfig.DBURI,
		`session database uri --db-uri <string> | example: --db-uri="file:storages/whatsapp.db?_foreign_keys=on" or a postgres:// uri`,
	)
	rootCmd.PersistentFlags().BoolVarP(
		&globalConfig.WhatsappAutoReplyEnabled,
		"autoreply", "",
		globalConfig.WhatsappAutoReplyEnabled,
		`reply to inbound direct messages automatically --autoreply <true/false> | example: --autoreply=false`,
	)
	rootCmd.PersistentFlags().BoolVarP(
		&globalConfig.WhatsappAutoDownloadMedia,
		"auto-download-media", "",
		globalConfig.WhatsappAutoDownloadMedia,
		`auto download media from incoming messages --auto-download-media <true/false> | example: --auto-download-media=false`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.WhatsappCountryCode,
		"country-code", "",
		globalConfig.WhatsappCountryCode,
		`default country code prefixed to bare 10 digit numbers --country-code <string> | example: --country-code="91"`,
	)
}

func initApp() {
	if globalConfig.AppDebug {
		globalConfig.WhatsappLogLevel = "DEBUG"
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := utils.CreateFolder(globalConfig.PathStorages, globalConfig.PathSendItems); err != nil {
		logrus.Errorln(err)
	}

	ctx := context.Background()

	// Lead database
	leadDB, err := database.NewDatabase()
	if err != nil {
		logrus.Fatalf("failed to open lead db: %v", err)
	}
	leadRepo := repository.NewLeadRepository(leadDB)
	if err := leadRepo.Init(ctx); err != nil {
		logrus.Fatalf("failed to init lead repo: %v", err)
	}

	// Session store and transport
	container, err := whatsapp.InitSessionDB(ctx, globalConfig.DBURI)
	if err != nil {
		logrus.Fatalf("failed to open session db: %v", err)
	}
	transport, err := whatsapp.NewClientTransport(ctx, container, func(rawEvt interface{}) {
		waManager.HandleEvent(rawEvt)
	})
	if err != nil {
		logrus.Fatalf("failed to build transport: %v", err)
	}

	waManager = whatsapp.NewManager(
		transport,
		whatsapp.NewSQLSessionStore(container, globalConfig.DBURI),
		globalConfig.WhatsappReconnectMaxRetries,
		globalConfig.WhatsappReconnectDelay,
	)

	// Usecases
	appUsecase = usecase.NewAppService(waManager)
	sendUsecase = usecase.NewSendService(waManager)
	leadService := usecase.NewLeadService(leadRepo)
	leadUsecase = leadService

	// Every accepted direct message can become a lead.
	waManager.OnMessage(leadService.CaptureFromMessage)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
