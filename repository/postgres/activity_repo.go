package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/repository"
)

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation of ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

const activityColumns = `id, user_id, titulo, descricao, data, concluida, categoria, prioridade, created_at, updated_at`

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	const query = `
	SELECT ` + activityColumns + `
	FROM atividades
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanActivity(row)
}

func (r *activityRepository) ListForUser(ctx context.Context, userID string) ([]domain.Activity, error) {
	const query = `
	SELECT ` + activityColumns + `
	FROM atividades
	WHERE user_id = $1
	ORDER BY data DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return collectActivities(rows)
}

func (r *activityRepository) ListForUserOnDate(ctx context.Context, userID string, date time.Time) ([]domain.Activity, error) {
	start, end := dayWindow(date)

	const query = `
	SELECT ` + activityColumns + `
	FROM atividades
	WHERE user_id = $1
	  AND data >= $2
	  AND data < $3
	ORDER BY data ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return collectActivities(rows)
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	if activity == nil {
		return nil, domain.ErrInvalidPayload
	}
	created := *activity
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO atividades (id, user_id, titulo, descricao, data, concluida, categoria, prioridade)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		created.ID,
		created.UserID,
		created.Title,
		created.Description,
		created.ScheduledAt,
		created.Completed,
		created.Category,
		created.Priority,
	).Scan(&created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, storeErr(err)
	}

	return &created, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	if activity == nil {
		return nil, domain.ErrInvalidPayload
	}
	updated := *activity

	const query = `
	UPDATE atividades
	SET titulo = $2,
		descricao = $3,
		data = $4,
		categoria = $5,
		prioridade = $6,
		updated_at = NOW()
	WHERE id = $1
	RETURNING concluida, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		updated.ID,
		updated.Title,
		updated.Description,
		updated.ScheduledAt,
		updated.Category,
		updated.Priority,
	).Scan(&updated.Completed, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, storeErr(err)
	}

	return &updated, nil
}

func (r *activityRepository) ToggleCompletion(ctx context.Context, id string, completed bool) (*domain.Activity, error) {
	const query = `
	UPDATE atividades
	SET concluida = $2,
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + activityColumns + `
	`
	row := r.pool.QueryRow(ctx, query, id, completed)
	return scanActivity(row)
}

func (r *activityRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM atividades WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func scanActivity(row pgx.Row) (*domain.Activity, error) {
	var a domain.Activity
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Title,
		&a.Description,
		&a.ScheduledAt,
		&a.Completed,
		&a.Category,
		&a.Priority,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, storeErr(err)
	}
	return &a, nil
}

func collectActivities(rows pgx.Rows) ([]domain.Activity, error) {
	var activities []domain.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *activity)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return activities, nil
}

// dayWindow returns the half-open interval covering the calendar day of date
// in its own location: midnight belongs to the day, the next midnight does not,
// so 23:59:59.999 still falls inside.
func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
