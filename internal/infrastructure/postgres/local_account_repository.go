package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doselog/identity-service/internal/domain/entity"
	repo "github.com/doselog/identity-service/internal/domain/repository"
)

type LocalAccountRepository struct {
	pool *pgxpool.Pool
}

func NewLocalAccountRepository(pool *pgxpool.Pool) *LocalAccountRepository {
	return &LocalAccountRepository{pool: pool}
}

const localAccountColumns = `id, user_id, email, password_hash, last_login_at, created_at, updated_at`

func scanLocalAccount(row pgx.Row) (entity.LocalAccount, error) {
	var a entity.LocalAccount
	err := row.Scan(&a.ID, &a.UserID, &a.Email, &a.PasswordHash, &a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *LocalAccountRepository) Add(ctx context.Context, a entity.LocalAccount) (entity.LocalAccount, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO local_accounts (id, user_id, email, password_hash, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.UserID, a.Email, a.PasswordHash, a.LastLoginAt, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return entity.LocalAccount{}, mapInsertErr(err)
	}
	return a, nil
}

func (r *LocalAccountRepository) Update(ctx context.Context, a entity.LocalAccount) (entity.LocalAccount, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE local_accounts
		SET email = $1, password_hash = $2, last_login_at = $3, updated_at = $4
		WHERE id = $5
	`, a.Email, a.PasswordHash, a.LastLoginAt, a.UpdatedAt, a.ID)
	if err != nil {
		return entity.LocalAccount{}, mapInsertErr(err)
	}
	if res.RowsAffected() == 0 {
		return entity.LocalAccount{}, pgx.ErrNoRows
	}
	return a, nil
}

func (r *LocalAccountRepository) FindByEmail(ctx context.Context, email string) (entity.LocalAccount, bool, error) {
	a, err := scanLocalAccount(r.pool.QueryRow(ctx, `SELECT `+localAccountColumns+` FROM local_accounts WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.LocalAccount{}, false, nil
	}
	if err != nil {
		return entity.LocalAccount{}, false, err
	}
	return a, true, nil
}

func (r *LocalAccountRepository) FindByUserID(ctx context.Context, userID string) (entity.LocalAccount, bool, error) {
	a, err := scanLocalAccount(r.pool.QueryRow(ctx, `SELECT `+localAccountColumns+` FROM local_accounts WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.LocalAccount{}, false, nil
	}
	if err != nil {
		return entity.LocalAccount{}, false, err
	}
	return a, true, nil
}

func (r *LocalAccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM local_accounts WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *LocalAccountRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM local_accounts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repo.LocalAccountRepository = (*LocalAccountRepository)(nil)
