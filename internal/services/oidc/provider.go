package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mindhaven/mindhaven-api/internal/config"
)

// Provider holds the identity provider settings resolved at startup.
// Discovery results are cached for the life of the process.
type Provider struct {
	cfg config.OIDCConfig
}

// NewProvider creates a new OIDC provider manager
func NewProvider(cfg config.OIDCConfig) *Provider {
	return &Provider{cfg: cfg}
}

// Config returns the static provider settings
func (p *Provider) Config() config.OIDCConfig {
	return p.cfg
}

// JWKSURL returns the configured JWKS endpoint, deriving it from the issuer
// when not set explicitly.
func (p *Provider) JWKSURL() string {
	if p.cfg.JWKSURL != "" {
		return p.cfg.JWKSURL
	}
	return strings.TrimSuffix(p.cfg.Issuer, "/") + "/.well-known/jwks.json"
}

// GetLoginConfig returns the configuration needed for frontend OIDC login.
// Endpoints come from the issuer's discovery document when reachable, with
// an issuer-based fallback otherwise.
func (p *Provider) GetLoginConfig(ctx context.Context) (*LoginConfig, error) {
	if p.cfg.Issuer == "" {
		return nil, fmt.Errorf("OIDC issuer not configured")
	}

	authEndpoint, tokenEndpoint := p.discoverEndpoints(ctx)

	base := strings.TrimSuffix(p.cfg.Issuer, "/")
	if authEndpoint == "" {
		authEndpoint = base + "/oauth2/authorize"
	}
	if tokenEndpoint == "" {
		tokenEndpoint = base + "/oauth2/token"
	}

	return &LoginConfig{
		AuthorizationEndpoint: authEndpoint,
		TokenEndpoint:         tokenEndpoint,
		ClientID:              p.cfg.ClientID,
		RedirectURI:           p.cfg.RedirectURI,
		Scope:                 "openid email profile",
	}, nil
}

func (p *Provider) discoverEndpoints(ctx context.Context) (string, string) {
	discoveryURL := strings.TrimSuffix(p.cfg.Issuer, "/") + "/.well-known/openid-configuration"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return "", ""
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return "", ""
	}
	defer func() { _ = resp.Body.Close() }()

	var discovery struct {
		AuthorizationEndpoint string `json:"authorization_endpoint"`
		TokenEndpoint         string `json:"token_endpoint"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&discovery); err != nil {
		return "", ""
	}
	return discovery.AuthorizationEndpoint, discovery.TokenEndpoint
}

// LoginConfig contains OIDC login configuration for frontend
type LoginConfig struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	ClientID              string `json:"client_id"`
	RedirectURI           string `json:"redirect_uri"`
	Scope                 string `json:"scope"`
}
