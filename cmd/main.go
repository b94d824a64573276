package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/amharF/udacity-ND-P4/api"
	"github.com/amharF/udacity-ND-P4/cache"
	"github.com/amharF/udacity-ND-P4/dynamo"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Host             string     `default:"0.0.0.0"`
	Port             string     `default:"8080"`
	Environment      string     `default:"local"`
	DynamoTableName  string     `split_words:"true" default:"ConferenceCentral"`
	DynamoEndpoint   string     `split_words:"true"`
	EmailFromAddress string     `split_words:"true" default:"noreply@udacity-nd-p4.appspot.com"`
	LowSeatThreshold int        `split_words:"true" default:"5"`
	LogLevel         slog.Level `split_words:"true"`
}

func main() {
	// Missing .env is fine, prod config comes from real env vars.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config from env: %s\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	env := api.ParseEnvironment(cfg.Environment)

	ctx := context.Background()

	db, err := createDB(ctx, cfg)
	if err != nil {
		logger.Error("Failed to create the DB client", "error", err)
		os.Exit(1)
	}

	emailSender, err := createEmailSender(ctx, logger, env)
	if err != nil {
		logger.Error("Failed to create the email sender", "error", err)
		os.Exit(1)
	}

	refresher := cache.NewRefresher(db, db, db, logger, cfg.LowSeatThreshold)

	conferenceAPI := api.NewAPI(db, logger, env, emailSender, refresher, cfg.EmailFromAddress)

	s := &http.Server{
		Handler: conferenceAPI.Routes(),
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
	}

	logger.Info("Starting server", "addr", s.Addr, "env", cfg.Environment)
	log.Fatal(s.ListenAndServe())
}

func createDB(ctx context.Context, cfg Config) (*dynamo.DB, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.DynamoEndpoint != "" {
		// Local dynamodb container; creds are ignored but required.
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", "local")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	})

	return dynamo.NewDB(client, cfg.DynamoTableName), nil
}
