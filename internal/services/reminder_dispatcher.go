package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/internal/infrastructure/push"
	"github.com/rotina-app/backend/internal/infrastructure/reminders"
	"github.com/rotina-app/backend/repository"
)

// DispatcherConfig controls how frequently due reminders are delivered.
type DispatcherConfig struct {
	Interval  time.Duration
	BatchSize int
}

// ReminderDispatcher periodically drains due reminders from the local store
// and delivers them through the push gateway. A reminder whose delivery fails
// stays in the store and is retried on the next tick; one whose owner has no
// token is dropped.
type ReminderDispatcher struct {
	store   *reminders.Store
	users   repository.UserRepository
	gateway PushGateway
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     DispatcherConfig
}

func NewReminderDispatcher(store *reminders.Store, users repository.UserRepository, gateway PushGateway, logger *zap.Logger, cfg DispatcherConfig) *ReminderDispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &ReminderDispatcher{
		store:   store,
		users:   users,
		gateway: gateway,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = d.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := d.Dispatch(ctx, time.Now()); err != nil {
			d.logger.Error("reminder dispatch failed", zap.Error(err))
		}
	})

	return d
}

// Start launches the cron scheduler.
func (d *ReminderDispatcher) Start() {
	if d == nil || d.cron == nil {
		return
	}
	d.cron.Start()
	d.logger.Info("reminder dispatcher started")
}

// Stop gracefully stops the scheduler.
func (d *ReminderDispatcher) Stop(ctx context.Context) {
	if d == nil || d.cron == nil {
		return
	}
	stopCtx := d.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	d.logger.Info("reminder dispatcher stopped")
}

// Schedule persists a reminder for later delivery, filling in its id.
func (d *ReminderDispatcher) Schedule(reminder *reminders.Reminder) error {
	if d == nil || d.store == nil {
		return fmt.Errorf("reminder dispatcher not configured")
	}
	return d.store.Schedule(reminder)
}

// CancelForActivity drops pending reminders for a deleted activity.
func (d *ReminderDispatcher) CancelForActivity(activityID string) error {
	if d == nil || d.store == nil {
		return nil
	}
	return d.store.CancelForActivity(activityID)
}

// Dispatch delivers every reminder due at the given instant.
func (d *ReminderDispatcher) Dispatch(ctx context.Context, now time.Time) error {
	if d == nil || d.store == nil {
		return nil
	}

	due, err := d.store.Due(now, d.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, reminder := range due {
		user, err := d.users.GetByID(ctx, reminder.UserID)
		if err != nil {
			if domain.IsDomainError(err, domain.ErrCodeNotFound) {
				_ = d.store.Remove(reminder)
			}
			d.logger.Warn("reminder owner lookup failed",
				zap.String("reminder_id", reminder.ID), zap.Error(err))
			continue
		}
		if !user.HasPushToken() {
			_ = d.store.Remove(reminder)
			continue
		}

		msg := push.Message{
			Token: user.PushToken,
			Title: reminder.Title,
			Body:  reminder.Body,
			Data: map[string]string{
				"type":         "lembrete",
				"atividade_id": reminder.ActivityID,
			},
		}

		if err := d.gateway.Send(ctx, msg); err != nil {
			d.logger.Warn("reminder delivery failed, will retry",
				zap.String("reminder_id", reminder.ID), zap.Error(err))
			continue
		}

		if err := d.store.Remove(reminder); err != nil {
			d.logger.Warn("failed to purge delivered reminder",
				zap.String("reminder_id", reminder.ID), zap.Error(err))
		}
	}
	return nil
}
