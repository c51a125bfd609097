package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/blogverse/blogverse/internal/blogservice"
	"github.com/blogverse/blogverse/internal/common"
	"github.com/blogverse/blogverse/internal/mailservice"
	"github.com/blogverse/blogverse/internal/mediaservice"
	"github.com/blogverse/blogverse/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
	broker      *common.MessageBroker
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Initialize the message broker
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the media upload client
	media, err := mediaservice.NewMediaService(context.Background(), mediaservice.Config{
		Region:     cfg.Media.Region,
		Bucket:     cfg.Media.Bucket,
		AccessKey:  cfg.Media.AccessKey,
		SecretKey:  cfg.Media.SecretKey,
		Endpoint:   cfg.Media.Endpoint,
		PublicBase: cfg.Media.PublicBase,
		Timeout:    30 * time.Second,
	})
	if err != nil {
		logger.Error("failed to create the media service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokens := userservice.NewTokenIssuer(cfg.JWT.Secret, userservice.AccessTokenTime, userservice.RefreshTokenTime)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	// Initialize the services
	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, broker, media, tokens),
		blogService: blogservice.NewBlogService(db, cache, media),
		broker:      broker,
		mailService: mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Port, logger),
	}

	// Initialize the consumer
	go app.mailService.SendWelcomeEmail()

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
