// Package auth provides token acquisition against Microsoft Entra ID for
// Graph calls, and bearer-token protection for the dashboard API itself.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultGraphScope is the scope requested for Graph service-health reads.
// The app registration carries ServiceHealth.Read.All.
const DefaultGraphScope = "https://graph.microsoft.com/.default"

// AuthError wraps a token acquisition failure. The provider never retries;
// the next refresh cycle is the retry policy.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "token acquisition failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Identity describes the signed-in principal, best effort from token claims.
type Identity struct {
	// Name is the display name claim, if present.
	Name string

	// Username is the preferred username (usually the UPN), if present.
	Username string

	// TenantID is the tenant the token was issued for, if present.
	TenantID string
}

// TokenProvider supplies bearer tokens for outbound Graph calls.
type TokenProvider interface {
	// GetToken returns a bearer token valid for the given scopes, refreshing
	// silently when the cached token is close to expiry.
	GetToken(ctx context.Context, scopes []string) (string, error)

	// ActiveIdentity returns the signed-in identity, or nil before the first
	// successful token acquisition.
	ActiveIdentity() *Identity
}

// CredentialProviderConfig holds configuration for CredentialProvider.
type CredentialProviderConfig struct {
	// Credential is the Entra ID credential. If nil, a credential chain is
	// built from TenantID/ClientID: environment and managed identity first,
	// then an interactive browser sign-in as the fallback.
	Credential azcore.TokenCredential

	// TenantID is the directory tenant, used when Credential is nil.
	TenantID string

	// ClientID is the app registration, used when Credential is nil.
	ClientID string

	// RefreshMargin is how early before expiry a cached token is refreshed
	// (default: 2 minutes).
	RefreshMargin time.Duration
}

// CredentialProvider is a TokenProvider backed by an azcore.TokenCredential.
// Tokens are cached per scope set and refreshed silently near expiry.
type CredentialProvider struct {
	credential    azcore.TokenCredential
	refreshMargin time.Duration

	mu       sync.Mutex
	cached   map[string]azcore.AccessToken
	identity *Identity
}

// NewCredentialProvider creates a provider from the given configuration.
func NewCredentialProvider(cfg CredentialProviderConfig) (*CredentialProvider, error) {
	cred := cfg.Credential
	if cred == nil {
		var err error
		cred, err = buildCredentialChain(cfg.TenantID, cfg.ClientID)
		if err != nil {
			return nil, fmt.Errorf("build credential chain: %w", err)
		}
	}

	refreshMargin := cfg.RefreshMargin
	if refreshMargin == 0 {
		refreshMargin = 2 * time.Minute
	}

	return &CredentialProvider{
		credential:    cred,
		refreshMargin: refreshMargin,
		cached:        make(map[string]azcore.AccessToken),
	}, nil
}

// buildCredentialChain prefers non-interactive credentials and falls back to
// an interactive browser sign-in, mirroring silent-then-popup acquisition.
func buildCredentialChain(tenantID, clientID string) (azcore.TokenCredential, error) {
	var chain []azcore.TokenCredential

	if defaultCred, err := azidentity.NewDefaultAzureCredential(nil); err == nil {
		chain = append(chain, defaultCred)
	}

	browserCred, err := azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
		TenantID: tenantID,
		ClientID: clientID,
	})
	if err == nil {
		chain = append(chain, browserCred)
	}

	if len(chain) == 0 {
		return nil, err
	}
	return azidentity.NewChainedTokenCredential(chain, nil)
}

// GetToken implements TokenProvider.
func (p *CredentialProvider) GetToken(ctx context.Context, scopes []string) (string, error) {
	if len(scopes) == 0 {
		scopes = []string{DefaultGraphScope}
	}
	key := cacheKey(scopes)

	p.mu.Lock()
	defer p.mu.Unlock()

	if tok, ok := p.cached[key]; ok && time.Until(tok.ExpiresOn) > p.refreshMargin {
		return tok.Token, nil
	}

	tok, err := p.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: scopes})
	if err != nil {
		return "", &AuthError{Err: err}
	}

	p.cached[key] = tok
	p.identity = identityFromToken(tok.Token)
	return tok.Token, nil
}

// ActiveIdentity implements TokenProvider.
func (p *CredentialProvider) ActiveIdentity() *Identity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.identity
}

func cacheKey(scopes []string) string {
	key := ""
	for _, s := range scopes {
		key += s + " "
	}
	return key
}

// identityFromToken extracts display claims from an access token without
// verifying the signature; the token was just issued to us by the directory.
func identityFromToken(token string) *Identity {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	identity := &Identity{}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if upn, ok := claims["preferred_username"].(string); ok {
		identity.Username = upn
	}
	if tid, ok := claims["tid"].(string); ok {
		identity.TenantID = tid
	}
	return identity
}

// StaticTokenProvider returns a fixed token; used in tests.
type StaticTokenProvider struct {
	Token    string
	Identity *Identity
}

// GetToken implements TokenProvider.
func (s *StaticTokenProvider) GetToken(context.Context, []string) (string, error) {
	return s.Token, nil
}

// ActiveIdentity implements TokenProvider.
func (s *StaticTokenProvider) ActiveIdentity() *Identity {
	return s.Identity
}
