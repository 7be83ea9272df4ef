package application

import (
	"context"
	"errors"
	"sync"

	"github.com/doselog/identity-service/internal/domain/entity"
	repo "github.com/doselog/identity-service/internal/domain/repository"
)

// In-memory repositories backing the use-case tests. They enforce the
// same uniqueness rules as the Postgres schema and return
// repo.ErrDuplicateKey the way the real repositories do.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]entity.User{}}
}

func (r *memUserRepo) Add(_ context.Context, u entity.User) (entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return entity.User{}, repo.ErrDuplicateKey
		}
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) Update(_ context.Context, u entity.User) (entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (entity.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	return u, ok, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (entity.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return entity.User{}, false, nil
}

func (r *memUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok, err := r.FindByEmail(ctx, email)
	return ok, err
}

func (r *memUserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	delete(r.users, id)
	return ok, nil
}

type memLocalRepo struct {
	mu     sync.Mutex
	locals map[string]entity.LocalAccount
	addErr error // injected failure for the partial-write test
}

func newMemLocalRepo() *memLocalRepo {
	return &memLocalRepo{locals: map[string]entity.LocalAccount{}}
}

func (r *memLocalRepo) Add(_ context.Context, a entity.LocalAccount) (entity.LocalAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return entity.LocalAccount{}, r.addErr
	}
	for _, e := range r.locals {
		if e.Email == a.Email || e.UserID == a.UserID {
			return entity.LocalAccount{}, repo.ErrDuplicateKey
		}
	}
	r.locals[a.ID] = a
	return a, nil
}

func (r *memLocalRepo) Update(_ context.Context, a entity.LocalAccount) (entity.LocalAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locals[a.ID] = a
	return a, nil
}

func (r *memLocalRepo) FindByEmail(_ context.Context, email string) (entity.LocalAccount, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.locals {
		if a.Email == email {
			return a, true, nil
		}
	}
	return entity.LocalAccount{}, false, nil
}

func (r *memLocalRepo) FindByUserID(_ context.Context, userID string) (entity.LocalAccount, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.locals {
		if a.UserID == userID {
			return a, true, nil
		}
	}
	return entity.LocalAccount{}, false, nil
}

func (r *memLocalRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok, err := r.FindByEmail(ctx, email)
	return ok, err
}

func (r *memLocalRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.locals[id]
	delete(r.locals, id)
	return ok, nil
}

type memOAuthRepo struct {
	mu       sync.Mutex
	accounts map[string]entity.OAuthAccount
	// addPrimaryHook, when set, runs once in place of the next AddPrimary
	// insert. Used to simulate losing a concurrent create.
	addPrimaryHook func(a entity.OAuthAccount) error
}

func newMemOAuthRepo() *memOAuthRepo {
	return &memOAuthRepo{accounts: map[string]entity.OAuthAccount{}}
}

func (r *memOAuthRepo) Add(_ context.Context, a entity.OAuthAccount) (entity.OAuthAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(a)
}

func (r *memOAuthRepo) insertLocked(a entity.OAuthAccount) (entity.OAuthAccount, error) {
	for _, e := range r.accounts {
		if e.Provider == a.Provider && e.ProviderUserID == a.ProviderUserID {
			return entity.OAuthAccount{}, repo.ErrDuplicateKey
		}
	}
	r.accounts[a.ID] = a
	return a, nil
}

func (r *memOAuthRepo) AddPrimary(_ context.Context, a entity.OAuthAccount) (entity.OAuthAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hook := r.addPrimaryHook; hook != nil {
		r.addPrimaryHook = nil
		if err := hook(a); err != nil {
			return entity.OAuthAccount{}, err
		}
	}
	for id, e := range r.accounts {
		if e.UserID == a.UserID && e.IsPrimary {
			e.IsPrimary = false
			r.accounts[id] = e
		}
	}
	a.IsPrimary = true
	return r.insertLocked(a)
}

func (r *memOAuthRepo) Update(_ context.Context, a entity.OAuthAccount) (entity.OAuthAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = a
	return a, nil
}

func (r *memOAuthRepo) FindByID(_ context.Context, id string) (entity.OAuthAccount, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	return a, ok, nil
}

func (r *memOAuthRepo) FindByProviderAndProviderUserID(_ context.Context, provider entity.Provider, providerUserID string) (entity.OAuthAccount, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Provider == provider && a.ProviderUserID == providerUserID {
			return a, true, nil
		}
	}
	return entity.OAuthAccount{}, false, nil
}

func (r *memOAuthRepo) FindByUserID(_ context.Context, userID string) ([]entity.OAuthAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.OAuthAccount
	for _, a := range r.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memOAuthRepo) FindPrimaryByUserID(_ context.Context, userID string) (entity.OAuthAccount, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.UserID == userID && a.IsPrimary {
			return a, true, nil
		}
	}
	return entity.OAuthAccount{}, false, nil
}

func (r *memOAuthRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.accounts[id]
	delete(r.accounts, id)
	return ok, nil
}

func (r *memOAuthRepo) primaryCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.accounts {
		if a.UserID == userID && a.IsPrimary {
			n++
		}
	}
	return n
}

type memSocialRepo struct {
	mu       sync.Mutex
	accounts map[string]entity.SocialAccount
}

func newMemSocialRepo() *memSocialRepo {
	return &memSocialRepo{accounts: map[string]entity.SocialAccount{}}
}

func (r *memSocialRepo) Add(_ context.Context, a entity.SocialAccount) (entity.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.accounts {
		if e.Provider == a.Provider && e.ProviderUserID == a.ProviderUserID {
			return entity.SocialAccount{}, repo.ErrDuplicateKey
		}
		if e.UserID == a.UserID && e.Provider == a.Provider {
			return entity.SocialAccount{}, repo.ErrDuplicateKey
		}
	}
	r.accounts[a.ID] = a
	return a, nil
}

func (r *memSocialRepo) Update(_ context.Context, a entity.SocialAccount) (entity.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = a
	return a, nil
}

func (r *memSocialRepo) FindByID(_ context.Context, id string) (entity.SocialAccount, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	return a, ok, nil
}

func (r *memSocialRepo) FindByUserAndProvider(_ context.Context, userID string, provider entity.Provider) (entity.SocialAccount, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.UserID == userID && a.Provider == provider {
			return a, true, nil
		}
	}
	return entity.SocialAccount{}, false, nil
}

func (r *memSocialRepo) FindByProviderAndProviderUserID(_ context.Context, provider entity.Provider, providerUserID string) (entity.SocialAccount, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Provider == provider && a.ProviderUserID == providerUserID {
			return a, true, nil
		}
	}
	return entity.SocialAccount{}, false, nil
}

func (r *memSocialRepo) FindByUserID(_ context.Context, userID string) ([]entity.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.SocialAccount
	for _, a := range r.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memSocialRepo) FindPrimaryByUserID(_ context.Context, userID string) (entity.SocialAccount, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.UserID == userID && a.IsPrimary {
			return a, true, nil
		}
	}
	return entity.SocialAccount{}, false, nil
}

func (r *memSocialRepo) SetPrimary(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.accounts[id]
	if !ok {
		return errors.New("social account not found")
	}
	for aid, a := range r.accounts {
		if a.UserID == target.UserID {
			a.IsPrimary = aid == id
			r.accounts[aid] = a
		}
	}
	return nil
}

func (r *memSocialRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.accounts[id]
	delete(r.accounts, id)
	return ok, nil
}

func (r *memSocialRepo) primaryCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.accounts {
		if a.UserID == userID && a.IsPrimary {
			n++
		}
	}
	return n
}

// fakeHasher is a reversible stand-in for bcrypt: hashes are prefixed
// plaintexts so tests can assert "never stored as plaintext" cheaply.
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }
func (fakeHasher) Compare(plaintext, hash string) bool   { return hash == "hashed:"+plaintext }

type fakeTokens struct{}

func (fakeTokens) Encrypt(subject string) (string, error) { return "token:" + subject, nil }
func (fakeTokens) Decrypt(token string) (string, error) {
	if len(token) > 6 && token[:6] == "token:" {
		return token[6:], nil
	}
	return "", Unauthorized("invalid token")
}

type testEnv struct {
	svc     *Service
	users   *memUserRepo
	locals  *memLocalRepo
	oauths  *memOAuthRepo
	socials *memSocialRepo
}

func newTestEnv() *testEnv {
	users := newMemUserRepo()
	locals := newMemLocalRepo()
	oauths := newMemOAuthRepo()
	socials := newMemSocialRepo()
	svc := NewService(Deps{
		Users:    users,
		Locals:   locals,
		OAuths:   oauths,
		Socials:  socials,
		Hasher:   fakeHasher{},
		Comparer: fakeHasher{},
		Tokens:   fakeTokens{},
	})
	return &testEnv{svc: svc, users: users, locals: locals, oauths: oauths, socials: socials}
}
