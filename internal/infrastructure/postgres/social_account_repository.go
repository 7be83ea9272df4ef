package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doselog/identity-service/internal/domain/entity"
	repo "github.com/doselog/identity-service/internal/domain/repository"
)

type SocialAccountRepository struct {
	pool *pgxpool.Pool
}

func NewSocialAccountRepository(pool *pgxpool.Pool) *SocialAccountRepository {
	return &SocialAccountRepository{pool: pool}
}

const socialAccountColumns = `id, user_id, provider, provider_user_id, email, name,
	profile_image_url, access_token, refresh_token, token_expiry, linked_at, is_primary`

func scanSocialAccount(row pgx.Row) (entity.SocialAccount, error) {
	var a entity.SocialAccount
	var provider string
	err := row.Scan(&a.ID, &a.UserID, &provider, &a.ProviderUserID, &a.Email, &a.Name,
		&a.ProfileImageURL, &a.AccessToken, &a.RefreshToken, &a.TokenExpiry, &a.LinkedAt, &a.IsPrimary)
	a.Provider = entity.Provider(provider)
	return a, err
}

func (r *SocialAccountRepository) Add(ctx context.Context, a entity.SocialAccount) (entity.SocialAccount, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO social_accounts (id, user_id, provider, provider_user_id, email, name,
			profile_image_url, access_token, refresh_token, token_expiry, linked_at, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, a.ID, a.UserID, a.Provider.String(), a.ProviderUserID, a.Email, a.Name,
		a.ProfileImageURL, a.AccessToken, a.RefreshToken, a.TokenExpiry, a.LinkedAt, a.IsPrimary)
	if err != nil {
		return entity.SocialAccount{}, mapInsertErr(err)
	}
	return a, nil
}

func (r *SocialAccountRepository) Update(ctx context.Context, a entity.SocialAccount) (entity.SocialAccount, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE social_accounts
		SET email = $1, name = $2, profile_image_url = $3, access_token = $4,
		    refresh_token = $5, token_expiry = $6, is_primary = $7
		WHERE id = $8
	`, a.Email, a.Name, a.ProfileImageURL, a.AccessToken, a.RefreshToken, a.TokenExpiry, a.IsPrimary, a.ID)
	if err != nil {
		return entity.SocialAccount{}, err
	}
	if res.RowsAffected() == 0 {
		return entity.SocialAccount{}, pgx.ErrNoRows
	}
	return a, nil
}

func (r *SocialAccountRepository) FindByID(ctx context.Context, id string) (entity.SocialAccount, bool, error) {
	a, err := scanSocialAccount(r.pool.QueryRow(ctx, `SELECT `+socialAccountColumns+` FROM social_accounts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.SocialAccount{}, false, nil
	}
	if err != nil {
		return entity.SocialAccount{}, false, err
	}
	return a, true, nil
}

func (r *SocialAccountRepository) FindByUserAndProvider(ctx context.Context, userID string, provider entity.Provider) (entity.SocialAccount, bool, error) {
	a, err := scanSocialAccount(r.pool.QueryRow(ctx,
		`SELECT `+socialAccountColumns+` FROM social_accounts WHERE user_id = $1 AND provider = $2`,
		userID, provider.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.SocialAccount{}, false, nil
	}
	if err != nil {
		return entity.SocialAccount{}, false, err
	}
	return a, true, nil
}

func (r *SocialAccountRepository) FindByProviderAndProviderUserID(ctx context.Context, provider entity.Provider, providerUserID string) (entity.SocialAccount, bool, error) {
	a, err := scanSocialAccount(r.pool.QueryRow(ctx,
		`SELECT `+socialAccountColumns+` FROM social_accounts WHERE provider = $1 AND provider_user_id = $2`,
		provider.String(), providerUserID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.SocialAccount{}, false, nil
	}
	if err != nil {
		return entity.SocialAccount{}, false, err
	}
	return a, true, nil
}

func (r *SocialAccountRepository) FindByUserID(ctx context.Context, userID string) ([]entity.SocialAccount, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+socialAccountColumns+` FROM social_accounts WHERE user_id = $1 ORDER BY linked_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.SocialAccount
	for rows.Next() {
		a, err := scanSocialAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SocialAccountRepository) FindPrimaryByUserID(ctx context.Context, userID string) (entity.SocialAccount, bool, error) {
	a, err := scanSocialAccount(r.pool.QueryRow(ctx,
		`SELECT `+socialAccountColumns+` FROM social_accounts WHERE user_id = $1 AND is_primary`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.SocialAccount{}, false, nil
	}
	if err != nil {
		return entity.SocialAccount{}, false, err
	}
	return a, true, nil
}

// SetPrimary promotes one account and demotes its siblings in a single
// transaction keyed by the owning user.
func (r *SocialAccountRepository) SetPrimary(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID string
	if err := tx.QueryRow(ctx, `SELECT user_id FROM social_accounts WHERE id = $1`, id).Scan(&userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE social_accounts SET is_primary = FALSE WHERE user_id = $1 AND id <> $2`, userID, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE social_accounts SET is_primary = TRUE WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *SocialAccountRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM social_accounts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repo.SocialAccountRepository = (*SocialAccountRepository)(nil)
