package main

import (
	"net/http"
	"os"
	"time"

	"smcbi/api/handler"
	"smcbi/api/routes"
	"smcbi/config"
	"smcbi/internal/repository"
	"smcbi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("configuration error")
	}

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}

	validate := validator.New()

	codeRepo := repository.NewVerificationCodeRepository(db)
	profileRepo := repository.NewUserProfileRepository(db)
	logRepo := repository.NewRecoveryLogRepository(db)

	identityClient := service.NewGoTrueIdentityClient(cfg.IdentityBaseURL, cfg.IdentityServiceKey)
	emailSender := service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.SchoolName)
	resolver := service.NewTwoSourceResolver(profileRepo, identityClient)

	recoveryService := service.NewRecoveryService(
		codeRepo,
		logRepo,
		resolver,
		emailSender,
		identityClient,
		service.PrefixedCodeGenerator{Prefix: cfg.CodePrefix, Digits: 6},
		service.RealClock{},
		logger,
		service.RecoveryConfig{
			CodePrefix:        cfg.CodePrefix,
			CodeDigits:        6,
			CodeTTL:           cfg.CodeTTL,
			ResetWindow:       cfg.ResetWindow,
			MaxAttempts:       3,
			MaxIssuePerWindow: 3,
			IssueWindow:       24 * time.Hour,
			MinPasswordLen:    6,
			MonthlyQuota:      3000,
		},
	)

	recoveryHandler := handler.NewRecoveryHandler(recoveryService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	router := routes.NewRouter(app, recoveryHandler)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
