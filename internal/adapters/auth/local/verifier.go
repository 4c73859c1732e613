package local

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RejectionError es el equivalente local de identity.ProviderError:
// Error() devuelve el mensaje para el usuario y Unwrap el sentinel.
type RejectionError struct {
	Err     error
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

func (e *RejectionError) Unwrap() error { return e.Err }

func emailInUse() error {
	return &RejectionError{Err: ErrEmailInUse, Message: "The email address is already in use by another account."}
}

func invalidCredentials() error {
	return &RejectionError{Err: ErrInvalidCredentials, Message: "The password is invalid or the user does not have a password."}
}

// Verifier es un identity provider en proceso para modo dev (sin identity.base_url).
// Las passwords se guardan como hash bcrypt; nada se persiste.
type Verifier struct {
	mu       sync.RWMutex
	accounts map[string][]byte
	cost     int
}

func NewVerifier() *Verifier {
	return &Verifier{
		accounts: make(map[string][]byte),
		cost:     bcrypt.DefaultCost,
	}
}

// NewVerifierWithCost permite bajar el costo en tests.
func NewVerifierWithCost(cost int) *Verifier {
	v := NewVerifier()
	v.cost = cost
	return v
}

func (v *Verifier) CreateAccount(ctx context.Context, email, password string) error {
	key := normalize(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.accounts[key]; ok {
		return emailInUse()
	}
	v.accounts[key] = hash
	return nil
}

func (v *Verifier) VerifyLogin(ctx context.Context, email, password string) error {
	v.mu.RLock()
	hash, ok := v.accounts[normalize(email)]
	v.mu.RUnlock()

	if !ok {
		return invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return invalidCredentials()
	}
	return nil
}

// SignOut no tiene estado remoto que limpiar.
func (v *Verifier) SignOut(ctx context.Context) error {
	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
