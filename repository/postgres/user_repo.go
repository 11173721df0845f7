package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation of UserRepository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, display_name, photo_url, password_hash, push_token, push_token_updated_at, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
	SELECT ` + userColumns + `
	FROM users
	WHERE id = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
	SELECT ` + userColumns + `
	FROM users
	WHERE email = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	created := *user
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO users (id, email, display_name, photo_url, password_hash)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (email) DO NOTHING
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		created.ID,
		created.Email,
		created.DisplayName,
		created.PhotoURL,
		created.PasswordHash,
	).Scan(&created.CreatedAt, &created.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmailTaken
		}
		return nil, storeErr(err)
	}
	return &created, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	updated := *user

	const query = `
	UPDATE users
	SET display_name = $2,
		photo_url = $3,
		updated_at = NOW()
	WHERE id = $1
	RETURNING email, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		updated.ID,
		updated.DisplayName,
		updated.PhotoURL,
	).Scan(&updated.Email, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	return &updated, nil
}

func (r *userRepository) SavePushToken(ctx context.Context, userID, token string) error {
	const query = `
	UPDATE users
	SET push_token = $2,
		push_token_updated_at = NOW(),
		updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, userID, token)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ClearPushToken(ctx context.Context, userID string) error {
	const query = `
	UPDATE users
	SET push_token = NULL,
		push_token_updated_at = NULL,
		updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ListWithPushToken(ctx context.Context, afterID string, limit int) ([]domain.User, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	const query = `
	SELECT ` + userColumns + `
	FROM users
	WHERE push_token IS NOT NULL
	  AND id > $1
	ORDER BY id ASC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, keysetAfter(afterID), limit)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

// keysetAfter maps the empty first-page cursor to the nil UUID, the smallest
// value the uuid column can hold. An empty string does not encode as a uuid
// parameter.
func keysetAfter(afterID string) string {
	if afterID == "" {
		return uuid.Nil.String()
	}
	return afterID
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var (
		displayName *string
		photoURL    *string
		pushToken   *string
	)
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&displayName,
		&photoURL,
		&u.PasswordHash,
		&pushToken,
		&u.PushTokenUpdatedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	if displayName != nil {
		u.DisplayName = *displayName
	}
	if photoURL != nil {
		u.PhotoURL = *photoURL
	}
	if pushToken != nil {
		u.PushToken = *pushToken
	}
	return &u, nil
}
