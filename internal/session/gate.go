// Package session tracks the authenticated identity for one browser
// session and gates checkout initiation.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"vehicle-storefront/internal/apiclient"
	"vehicle-storefront/internal/domain"
	"vehicle-storefront/internal/repository/kv"
)

type authAPI interface {
	Login(ctx context.Context, in apiclient.LoginInput) (*apiclient.AuthResult, error)
	Signup(ctx context.Context, in apiclient.SignupInput) (*apiclient.AuthResult, error)
}

// Gate owns the credential/identity pair. The two are set together on
// login/signup and cleared together on logout or credential rejection;
// there is no state where only one is present.
type Gate struct {
	mu            sync.Mutex
	store         kv.Store
	credentialKey string
	identityKey   string
	auth          authAPI

	credential string
	identity   domain.Identity
}

// Hydrate loads persisted session state from the store under keyPrefix.
// A half-written or malformed record is discarded, leaving the gate
// Anonymous.
func Hydrate(ctx context.Context, store kv.Store, auth authAPI, keyPrefix string) (*Gate, error) {
	g := &Gate{
		store:         store,
		credentialKey: keyPrefix + ":credential",
		identityKey:   keyPrefix + ":identity",
		auth:          auth,
	}

	credential, ok, err := store.Get(ctx, g.credentialKey)
	if err != nil {
		return nil, err
	}
	if !ok || credential == "" {
		return g, nil
	}
	rawIdentity, ok, err := store.Get(ctx, g.identityKey)
	if err != nil {
		return nil, err
	}
	var identity domain.Identity
	if !ok || json.Unmarshal([]byte(rawIdentity), &identity) != nil {
		_ = store.Remove(ctx, g.credentialKey)
		_ = store.Remove(ctx, g.identityKey)
		return g, nil
	}
	g.credential = credential
	g.identity = identity
	return g, nil
}

// Login delegates to the auth API and stores credential and identity
// together. On any failure the gate stays in its prior state.
func (g *Gate) Login(ctx context.Context, in apiclient.LoginInput) (domain.Identity, error) {
	result, err := g.auth.Login(ctx, in)
	if err != nil {
		return domain.Identity{}, err
	}
	return g.establish(ctx, result)
}

// Signup delegates to the auth API and stores credential and identity
// together, mirroring Login.
func (g *Gate) Signup(ctx context.Context, in apiclient.SignupInput) (domain.Identity, error) {
	result, err := g.auth.Signup(ctx, in)
	if err != nil {
		return domain.Identity{}, err
	}
	return g.establish(ctx, result)
}

func (g *Gate) establish(ctx context.Context, result *apiclient.AuthResult) (domain.Identity, error) {
	rawIdentity, err := json.Marshal(result.Identity)
	if err != nil {
		return domain.Identity{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Set(ctx, g.identityKey, string(rawIdentity)); err != nil {
		return domain.Identity{}, err
	}
	if err := g.store.Set(ctx, g.credentialKey, result.Credential); err != nil {
		// never leave a dangling identity without its credential
		_ = g.store.Remove(ctx, g.identityKey)
		return domain.Identity{}, err
	}
	g.credential = result.Credential
	g.identity = result.Identity
	return result.Identity, nil
}

// Logout clears credential and identity regardless of prior state.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clearLocked(ctx)
}

// Invalidate is the passive transition to Anonymous, triggered when an
// authorized API call reports the credential invalid or expired.
func (g *Gate) Invalidate(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clearLocked(ctx)
}

func (g *Gate) clearLocked(ctx context.Context) error {
	if err := g.store.Remove(ctx, g.credentialKey); err != nil {
		return err
	}
	if err := g.store.Remove(ctx, g.identityKey); err != nil {
		return err
	}
	g.credential = ""
	g.identity = domain.Identity{}
	return nil
}

// IsAuthenticated reports whether a credential is present.
func (g *Gate) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.credential != ""
}

// Credential returns the opaque bearer token, empty when Anonymous.
func (g *Gate) Credential() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.credential
}

// Identity returns the authenticated identity, false when Anonymous.
func (g *Gate) Identity() (domain.Identity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.identity, g.credential != ""
}
