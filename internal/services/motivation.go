package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/internal/infrastructure/push"
	"github.com/rotina-app/backend/repository"
)

// JobConfig holds scheduling parameters shared by the periodic push jobs.
type JobConfig struct {
	MotivationSpec string // cron spec, e.g. "0 9 * * *"
	CleanupSpec    string // cron spec, e.g. "0 2 * * 0"
	PageSize       int
	Timeout        time.Duration
}

// MotivationJob sends the daily morning push to every user with a registered
// token. Users are scanned in keyset pages so the fan-out stays bounded
// regardless of the user count.
type MotivationJob struct {
	users      repository.UserRepository
	activities repository.ActivityRepository
	gateway    PushGateway
	logger     *zap.Logger
	cron       *cron.Cron
	cfg        JobConfig
}

func NewMotivationJob(
	users repository.UserRepository,
	activities repository.ActivityRepository,
	gateway PushGateway,
	logger *zap.Logger,
	cfg JobConfig,
) *MotivationJob {
	if cfg.MotivationSpec == "" {
		cfg.MotivationSpec = "0 9 * * *"
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

	j := &MotivationJob{
		users:      users,
		activities: activities,
		gateway:    gateway,
		logger:     logger,
		cfg:        cfg,
		cron:       cron.New(),
	}

	_, _ = j.cron.AddFunc(cfg.MotivationSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if err := j.Run(ctx, time.Now()); err != nil {
			j.logger.Error("daily motivation job failed", zap.Error(err))
		}
	})

	return j
}

func (j *MotivationJob) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("motivation job scheduled", zap.String("spec", j.cfg.MotivationSpec))
}

func (j *MotivationJob) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

// Run walks all users with push tokens, one page at a time, and sends each
// a message picked from their today's progress.
func (j *MotivationJob) Run(ctx context.Context, now time.Time) error {
	afterID := ""
	sent := 0

	for {
		page, err := j.users.ListWithPushToken(ctx, afterID, j.cfg.PageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}

		msgs := make([]push.Message, 0, len(page))
		for _, user := range page {
			activities, err := j.activities.ListForUserOnDate(ctx, user.ID, now)
			if err != nil {
				j.logger.Warn("skipping user, today's activities unavailable",
					zap.String("user_id", user.ID), zap.Error(err))
				continue
			}
			title, body := MotivationMessage(activities)
			msgs = append(msgs, push.Message{
				Token: user.PushToken,
				Title: title,
				Body:  body,
				Data:  map[string]string{"type": "motivacao_diaria"},
			})
		}

		if len(msgs) > 0 {
			results, err := j.gateway.SendBatch(ctx, msgs)
			if err != nil {
				return err
			}
			for _, res := range results {
				if res.OK {
					sent++
				}
			}
		}

		afterID = page[len(page)-1].ID
	}

	j.logger.Info("daily motivation pushes sent", zap.Int("count", sent))
	return nil
}

// MotivationMessage picks the message tier from today's activity set.
func MotivationMessage(today []domain.Activity) (title, body string) {
	pending := 0
	for _, a := range today {
		if !a.Completed {
			pending++
		}
	}

	switch {
	case len(today) == 0:
		return "Bom dia! ☀️", "Que tal começar o dia sendo produtivo?"
	case pending == 0:
		return "Parabéns! 🎉", "Você já completou todas as atividades de hoje!"
	default:
		return "Vamos lá! 💪", fmt.Sprintf("Você tem %d atividade(s) esperando por você hoje", pending)
	}
}
