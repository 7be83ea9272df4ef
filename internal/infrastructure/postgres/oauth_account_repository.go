package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doselog/identity-service/internal/domain/entity"
	repo "github.com/doselog/identity-service/internal/domain/repository"
)

type OAuthAccountRepository struct {
	pool *pgxpool.Pool
}

func NewOAuthAccountRepository(pool *pgxpool.Pool) *OAuthAccountRepository {
	return &OAuthAccountRepository{pool: pool}
}

const oauthAccountColumns = `id, user_id, provider, provider_user_id, email, display_name,
	profile_image_url, access_token, refresh_token, token_expiry, last_login_at, linked_at,
	is_primary, created_at, updated_at`

const oauthAccountInsert = `
	INSERT INTO oauth_accounts (id, user_id, provider, provider_user_id, email, display_name,
		profile_image_url, access_token, refresh_token, token_expiry, last_login_at, linked_at,
		is_primary, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

func scanOAuthAccount(row pgx.Row) (entity.OAuthAccount, error) {
	var a entity.OAuthAccount
	var provider string
	err := row.Scan(&a.ID, &a.UserID, &provider, &a.ProviderUserID, &a.Email, &a.DisplayName,
		&a.ProfileImageURL, &a.AccessToken, &a.RefreshToken, &a.TokenExpiry, &a.LastLoginAt,
		&a.LinkedAt, &a.IsPrimary, &a.CreatedAt, &a.UpdatedAt)
	a.Provider = entity.Provider(provider)
	return a, err
}

func oauthInsertArgs(a entity.OAuthAccount) []any {
	return []any{a.ID, a.UserID, a.Provider.String(), a.ProviderUserID, a.Email, a.DisplayName,
		a.ProfileImageURL, a.AccessToken, a.RefreshToken, a.TokenExpiry, a.LastLoginAt,
		a.LinkedAt, a.IsPrimary, a.CreatedAt, a.UpdatedAt}
}

func (r *OAuthAccountRepository) Add(ctx context.Context, a entity.OAuthAccount) (entity.OAuthAccount, error) {
	if _, err := r.pool.Exec(ctx, oauthAccountInsert, oauthInsertArgs(a)...); err != nil {
		return entity.OAuthAccount{}, mapInsertErr(err)
	}
	return a, nil
}

// AddPrimary demotes the user's current primaries and inserts the new
// account as primary inside one transaction, so readers always see
// exactly one primary once any account exists.
func (r *OAuthAccountRepository) AddPrimary(ctx context.Context, a entity.OAuthAccount) (entity.OAuthAccount, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return entity.OAuthAccount{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `UPDATE oauth_accounts SET is_primary = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_primary`, a.UserID); err != nil {
		return entity.OAuthAccount{}, err
	}
	a.IsPrimary = true
	if _, err := tx.Exec(ctx, oauthAccountInsert, oauthInsertArgs(a)...); err != nil {
		return entity.OAuthAccount{}, mapInsertErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return entity.OAuthAccount{}, err
	}
	return a, nil
}

func (r *OAuthAccountRepository) Update(ctx context.Context, a entity.OAuthAccount) (entity.OAuthAccount, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE oauth_accounts
		SET email = $1, display_name = $2, profile_image_url = $3, access_token = $4,
		    refresh_token = $5, token_expiry = $6, last_login_at = $7, is_primary = $8,
		    updated_at = $9
		WHERE id = $10
	`, a.Email, a.DisplayName, a.ProfileImageURL, a.AccessToken, a.RefreshToken,
		a.TokenExpiry, a.LastLoginAt, a.IsPrimary, a.UpdatedAt, a.ID)
	if err != nil {
		return entity.OAuthAccount{}, err
	}
	if res.RowsAffected() == 0 {
		return entity.OAuthAccount{}, pgx.ErrNoRows
	}
	return a, nil
}

func (r *OAuthAccountRepository) FindByID(ctx context.Context, id string) (entity.OAuthAccount, bool, error) {
	a, err := scanOAuthAccount(r.pool.QueryRow(ctx, `SELECT `+oauthAccountColumns+` FROM oauth_accounts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.OAuthAccount{}, false, nil
	}
	if err != nil {
		return entity.OAuthAccount{}, false, err
	}
	return a, true, nil
}

func (r *OAuthAccountRepository) FindByProviderAndProviderUserID(ctx context.Context, provider entity.Provider, providerUserID string) (entity.OAuthAccount, bool, error) {
	a, err := scanOAuthAccount(r.pool.QueryRow(ctx,
		`SELECT `+oauthAccountColumns+` FROM oauth_accounts WHERE provider = $1 AND provider_user_id = $2`,
		provider.String(), providerUserID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.OAuthAccount{}, false, nil
	}
	if err != nil {
		return entity.OAuthAccount{}, false, err
	}
	return a, true, nil
}

func (r *OAuthAccountRepository) FindByUserID(ctx context.Context, userID string) ([]entity.OAuthAccount, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+oauthAccountColumns+` FROM oauth_accounts WHERE user_id = $1 ORDER BY linked_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.OAuthAccount
	for rows.Next() {
		a, err := scanOAuthAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *OAuthAccountRepository) FindPrimaryByUserID(ctx context.Context, userID string) (entity.OAuthAccount, bool, error) {
	a, err := scanOAuthAccount(r.pool.QueryRow(ctx,
		`SELECT `+oauthAccountColumns+` FROM oauth_accounts WHERE user_id = $1 AND is_primary`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.OAuthAccount{}, false, nil
	}
	if err != nil {
		return entity.OAuthAccount{}, false, err
	}
	return a, true, nil
}

func (r *OAuthAccountRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM oauth_accounts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repo.OAuthAccountRepository = (*OAuthAccountRepository)(nil)
