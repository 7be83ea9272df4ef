package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doselog/identity-service/internal/domain/entity"
	repo "github.com/doselog/identity-service/internal/domain/repository"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint hit.
const uniqueViolation = "23505"

func mapInsertErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repo.ErrDuplicateKey
	}
	return err
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, date_of_birth, gender, picture_url, email_verified, created_at, updated_at`

func scanUser(row pgx.Row) (entity.User, error) {
	var u entity.User
	var gender string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.DateOfBirth, &gender, &u.PictureURL,
		&u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	u.Gender = entity.Gender(gender)
	return u, err
}

func (r *UserRepository) Add(ctx context.Context, u entity.User) (entity.User, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, date_of_birth, gender, picture_url, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, u.ID, u.Name, u.Email, u.DateOfBirth, u.Gender.String(), u.PictureURL, u.EmailVerified, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return entity.User{}, mapInsertErr(err)
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u entity.User) (entity.User, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, date_of_birth = $3, gender = $4, picture_url = $5,
		    email_verified = $6, updated_at = $7
		WHERE id = $8
	`, u.Name, u.Email, u.DateOfBirth, u.Gender.String(), u.PictureURL, u.EmailVerified, u.UpdatedAt, u.ID)
	if err != nil {
		return entity.User{}, mapInsertErr(err)
	}
	if res.RowsAffected() == 0 {
		return entity.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (entity.User, bool, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.User{}, false, nil
	}
	if err != nil {
		return entity.User{}, false, err
	}
	return u, true, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (entity.User, bool, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.User{}, false, nil
	}
	if err != nil {
		return entity.User{}, false, err
	}
	return u, true, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repo.UserRepository = (*UserRepository)(nil)
