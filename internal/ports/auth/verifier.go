package auth

import "context"

// CredentialVerifier es el identity provider externo.
// Un error no-nil significa fallo; su mensaje es lo que se le muestra al usuario.
type CredentialVerifier interface {
	VerifyLogin(ctx context.Context, email, password string) error
	CreateAccount(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
}
