package identity

import (
	"context"
	"sync"
)

// Verifier implementa auth.CredentialVerifier contra el identity provider.
// Guarda el refresh token de la última sesión para poder revocarlo en SignOut.
type Verifier struct {
	client *Client

	mu           sync.Mutex
	refreshToken string
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) VerifyLogin(ctx context.Context, email, password string) error {
	if v == nil || v.client == nil {
		return ErrNotConfigured
	}
	tokens, err := v.client.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.refreshToken = tokens.RefreshToken
	v.mu.Unlock()
	return nil
}

// CreateAccount no deja sesión abierta: la app pide re-login después de registrarse.
func (v *Verifier) CreateAccount(ctx context.Context, email, password string) error {
	if v == nil || v.client == nil {
		return ErrNotConfigured
	}
	_, err := v.client.SignUp(ctx, email, password)
	return err
}

// SignOut revoca el refresh token si hay uno. Sin sesión conocida no hay nada que revocar.
func (v *Verifier) SignOut(ctx context.Context) error {
	if v == nil || v.client == nil {
		return ErrNotConfigured
	}

	v.mu.Lock()
	token := v.refreshToken
	v.mu.Unlock()

	if token == "" {
		return nil
	}
	if err := v.client.Revoke(ctx, token); err != nil {
		return err
	}

	v.mu.Lock()
	if v.refreshToken == token {
		v.refreshToken = ""
	}
	v.mu.Unlock()
	return nil
}
