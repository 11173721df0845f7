package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/internal/infrastructure/push"
	"github.com/rotina-app/backend/repository"
)

// EventPusher sends milestone notifications (activity created, activity
// completed) to the owner's registered device. Sends run detached from the
// request: a push failure is logged and never surfaces to the caller.
type EventPusher struct {
	users   repository.UserRepository
	gateway PushGateway
	timeout time.Duration
	logger  *zap.Logger
}

func NewEventPusher(users repository.UserRepository, gateway PushGateway, timeout time.Duration, logger *zap.Logger) *EventPusher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventPusher{
		users:   users,
		gateway: gateway,
		timeout: timeout,
		logger:  logger,
	}
}

func (p *EventPusher) ActivityCreated(_ context.Context, activity domain.Activity) {
	p.dispatch(activity.UserID, push.Message{
		Title: "Nova Atividade Criada! 🎯",
		Body:  fmt.Sprintf("%q foi adicionada à sua lista", activity.Title),
		Data: map[string]string{
			"type":         "atividade_criada",
			"atividade_id": activity.ID,
			"user_id":      activity.UserID,
		},
	})
}

func (p *EventPusher) ActivityCompleted(_ context.Context, activity domain.Activity) {
	p.dispatch(activity.UserID, push.Message{
		Title: "Parabéns! 🎉",
		Body:  fmt.Sprintf("Você completou: %q", activity.Title),
		Data: map[string]string{
			"type":         "atividade_concluida",
			"atividade_id": activity.ID,
			"user_id":      activity.UserID,
		},
	})
}

func (p *EventPusher) dispatch(userID string, msg push.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		user, err := p.users.GetByID(ctx, userID)
		if err != nil {
			p.logger.Warn("event push skipped: owner lookup failed",
				zap.String("user_id", userID), zap.Error(err))
			return
		}
		if !user.HasPushToken() {
			return
		}

		msg.Token = user.PushToken
		if err := p.gateway.Send(ctx, msg); err != nil {
			p.logger.Warn("event push delivery failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}()
}
