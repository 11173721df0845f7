package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rotina-app/backend/repository"
)

// TokenJanitor periodically validates stored push tokens against the gateway
// and clears the ones the gateway no longer recognizes. Like the motivation
// job, it pages through users instead of loading them all at once.
type TokenJanitor struct {
	users   repository.UserRepository
	gateway PushGateway
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     JobConfig
}

func NewTokenJanitor(users repository.UserRepository, gateway PushGateway, logger *zap.Logger, cfg JobConfig) *TokenJanitor {
	if cfg.CleanupSpec == "" {
		cfg.CleanupSpec = "0 2 * * 0"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &TokenJanitor{
		users:   users,
		gateway: gateway,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(),
	}

	_, _ = j.cron.AddFunc(cfg.CleanupSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if err := j.Run(ctx); err != nil {
			j.logger.Error("push token cleanup failed", zap.Error(err))
		}
	})

	return j
}

func (j *TokenJanitor) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("token janitor scheduled", zap.String("spec", j.cfg.CleanupSpec))
}

func (j *TokenJanitor) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

// Run validates one page of tokens at a time and clears invalid ones.
func (j *TokenJanitor) Run(ctx context.Context) error {
	afterID := ""
	cleared := 0

	for {
		page, err := j.users.ListWithPushToken(ctx, afterID, j.cfg.PageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}

		tokens := make([]string, 0, len(page))
		owner := make(map[string]string, len(page))
		for _, user := range page {
			tokens = append(tokens, user.PushToken)
			owner[user.PushToken] = user.ID
		}

		results, err := j.gateway.ValidateTokens(ctx, tokens)
		if err != nil {
			return err
		}

		for _, res := range results {
			if res.OK || !res.Unregistered {
				continue
			}
			userID := owner[res.Token]
			if err := j.users.ClearPushToken(ctx, userID); err != nil {
				j.logger.Warn("failed to clear stale push token",
					zap.String("user_id", userID), zap.Error(err))
				continue
			}
			cleared++
		}

		afterID = page[len(page)-1].ID
	}

	if cleared > 0 {
		j.logger.Info("stale push tokens cleared", zap.Int("count", cleared))
	}
	return nil
}
