package application

import (
	"context"
	"testing"

	"github.com/doselog/identity-service/internal/domain/entity"
	repo "github.com/doselog/identity-service/internal/domain/repository"
)

func TestLinkFederatedAccountCreatesUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	res, err := env.svc.LinkFederatedAccount(ctx, LinkFederatedAccountParams{
		Provider:       entity.ProviderGoogle,
		ProviderUserID: "g-100",
		Email:          "frank@example.com",
		Name:           "Frank",
		PictureURL:     "https://pics/frank.png",
	})
	if err != nil {
		t.Fatalf("LinkFederatedAccount: %v", err)
	}
	if !res.IsNewUser {
		t.Error("expected a new user")
	}
	if res.User.Email != "frank@example.com" || res.User.Name != "Frank" {
		t.Errorf("unexpected user %+v", res.User)
	}

	account, found, _ := env.oauths.FindByProviderAndProviderUserID(ctx, entity.ProviderGoogle, "g-100")
	if !found {
		t.Fatal("oauth account not persisted")
	}
	if account.UserID != res.User.ID {
		t.Errorf("account user id = %q, want %q", account.UserID, res.User.ID)
	}
	if !account.IsPrimary {
		t.Error("first linked account should be primary")
	}
}

func TestLinkFederatedAccountIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	p := LinkFederatedAccountParams{
		Provider: entity.ProviderGoogle, ProviderUserID: "g-200", Email: "gina@example.com", Name: "Gina",
	}
	first, err := env.svc.LinkFederatedAccount(ctx, p)
	if err != nil {
		t.Fatalf("first link: %v", err)
	}
	second, err := env.svc.LinkFederatedAccount(ctx, p)
	if err != nil {
		t.Fatalf("second link: %v", err)
	}

	if second.IsNewUser {
		t.Error("repeat login must not report a new user")
	}
	if second.User.ID != first.User.ID {
		t.Errorf("user id changed across logins: %q vs %q", first.User.ID, second.User.ID)
	}
	if second.OAuthAccountID != first.OAuthAccountID {
		t.Errorf("oauth account id changed: %q vs %q", first.OAuthAccountID, second.OAuthAccountID)
	}
	if n := len(env.users.users); n != 1 {
		t.Errorf("user count = %d, want 1", n)
	}
	if n := len(env.oauths.accounts); n != 1 {
		t.Errorf("oauth account count = %d, want 1", n)
	}
}

func TestLinkFederatedAccountRefreshesProfile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	p := LinkFederatedAccountParams{
		Provider: entity.ProviderGoogle, ProviderUserID: "g-300", Email: "hank@example.com",
		Name: "Hank", PictureURL: "https://pics/old.png",
	}
	if _, err := env.svc.LinkFederatedAccount(ctx, p); err != nil {
		t.Fatalf("first link: %v", err)
	}

	p.Name = "Hank Renamed"
	p.PictureURL = "https://pics/new.png"
	res, err := env.svc.LinkFederatedAccount(ctx, p)
	if err != nil {
		t.Fatalf("second link: %v", err)
	}
	if res.User.Name != "Hank Renamed" || res.User.PictureURL != "https://pics/new.png" {
		t.Errorf("profile not refreshed: %+v", res.User)
	}
}

func TestLinkFederatedAccountConsolidatesByEmail(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateLocalAccount(ctx, CreateLocalAccountParams{
		Name: "Iris", Email: "iris@example.com", Password: "pw123456",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	localBefore, _, _ := env.locals.FindByEmail(ctx, "iris@example.com")

	res, err := env.svc.LinkFederatedAccount(ctx, LinkFederatedAccountParams{
		Provider: entity.ProviderGoogle, ProviderUserID: "g-400", Email: "iris@example.com", Name: "Iris",
	})
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if res.IsNewUser {
		t.Error("email match must consolidate, not create")
	}
	if res.User.ID != created.User.ID {
		t.Errorf("linked to %q, want existing user %q", res.User.ID, created.User.ID)
	}

	// Consolidation must leave the password credential untouched.
	localAfter, found, _ := env.locals.FindByEmail(ctx, "iris@example.com")
	if !found {
		t.Fatal("local account gone after consolidation")
	}
	if localAfter.PasswordHash != localBefore.PasswordHash || localAfter.ID != localBefore.ID {
		t.Errorf("local account mutated: %+v vs %+v", localBefore, localAfter)
	}

	// Both signin paths now resolve to the same user.
	viaPassword, err := env.svc.Authenticate(ctx, "iris@example.com", "pw123456")
	if err != nil {
		t.Fatalf("password signin: %v", err)
	}
	viaGoogle, err := env.svc.OAuthAuthentication(ctx, entity.ProviderGoogle, "g-400")
	if err != nil {
		t.Fatalf("google signin: %v", err)
	}
	if viaPassword.User.ID != viaGoogle.User.ID {
		t.Errorf("signin paths diverge: %q vs %q", viaPassword.User.ID, viaGoogle.User.ID)
	}
}

func TestLinkFederatedAccountSinglePrimary(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.svc.LinkFederatedAccount(ctx, LinkFederatedAccountParams{
		Provider: entity.ProviderGoogle, ProviderUserID: "g-500", Email: "jude@example.com", Name: "Jude",
	})
	if err != nil {
		t.Fatalf("google link: %v", err)
	}
	if _, err := env.svc.LinkFederatedAccount(ctx, LinkFederatedAccountParams{
		Provider: entity.ProviderFacebook, ProviderUserID: "f-500", Email: "jude@example.com", Name: "Jude",
	}); err != nil {
		t.Fatalf("facebook link: %v", err)
	}
	if _, err := env.svc.LinkFederatedAccount(ctx, LinkFederatedAccountParams{
		Provider: entity.ProviderMicrosoft, ProviderUserID: "m-500", Email: "jude@example.com", Name: "Jude",
	}); err != nil {
		t.Fatalf("microsoft link: %v", err)
	}

	if n := env.oauths.primaryCount(first.User.ID); n != 1 {
		t.Fatalf("primary count = %d, want exactly 1", n)
	}
	primary, found, _ := env.oauths.FindPrimaryByUserID(ctx, first.User.ID)
	if !found {
		t.Fatal("no primary account")
	}
	if primary.Provider != entity.ProviderMicrosoft {
		t.Errorf("primary = %s, want most recently linked provider", primary.Provider)
	}
}

func TestLinkFederatedAccountCreationRace(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Simulate losing the insert race: a concurrent request lands the
	// same (provider, providerUserId) just before our insert runs.
	winner := entity.NewOAuthAccount("winner-id", "", entity.ProviderGoogle, "g-600", "kate@example.com", "Kate", "")
	env.oauths.addPrimaryHook = func(a entity.OAuthAccount) error {
		winner.UserID = a.UserID
		env.oauths.accounts[winner.ID] = winner
		return repo.ErrDuplicateKey
	}

	res, err := env.svc.LinkFederatedAccount(ctx, LinkFederatedAccountParams{
		Provider: entity.ProviderGoogle, ProviderUserID: "g-600", Email: "kate@example.com", Name: "Kate",
	})
	if err != nil {
		t.Fatalf("LinkFederatedAccount: %v", err)
	}
	if res.OAuthAccountID != "winner-id" {
		t.Errorf("account id = %q, want the concurrently created one", res.OAuthAccountID)
	}
	if n := len(env.oauths.accounts); n != 1 {
		t.Errorf("oauth account count = %d, want 1", n)
	}
}

func TestLinkFederatedAccountValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cases := []LinkFederatedAccountParams{
		{Provider: entity.ProviderLocal, ProviderUserID: "x", Email: "x@example.com"},
		{Provider: entity.ProviderGoogle, Email: "x@example.com"},
		{Provider: entity.ProviderGoogle, ProviderUserID: "x"},
	}
	for _, p := range cases {
		if _, err := env.svc.LinkFederatedAccount(ctx, p); KindOf(err) != KindValidation {
			t.Errorf("params %+v: kind = %v, want validation", p, KindOf(err))
		}
	}
}
