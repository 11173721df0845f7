package services

import (
	"context"

	"github.com/rotina-app/backend/internal/infrastructure/push"
)

// PushGateway abstracts the push client so services can be tested with fakes.
type PushGateway interface {
	Send(ctx context.Context, msg push.Message) error
	SendBatch(ctx context.Context, msgs []push.Message) ([]push.Result, error)
	ValidateTokens(ctx context.Context, tokens []string) ([]push.Result, error)
}
