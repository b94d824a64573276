package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/International-Combat-Archery-Alliance/email/awsses"
	"github.com/amharF/udacity-ND-P4/api"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

var _ email.Sender = &logSender{}

// logSender stands in for SES during local development: the confirmation
// email lands in the log instead of an inbox.
type logSender struct {
	logger *slog.Logger
}

func (s *logSender) SendEmail(ctx context.Context, e email.Email) error {
	s.logger.InfoContext(ctx, "Would have sent email", slog.Any("email", e))
	return nil
}

func createEmailSender(ctx context.Context, logger *slog.Logger, env api.Environment) (email.Sender, error) {
	if env == api.LOCAL {
		return &logSender{logger: logger}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config for SES: %w", err)
	}
	return awsses.NewAWSSESSender(sesv2.NewFromConfig(cfg)), nil
}
