package flags

import "context"

// KeyLoggedIn es la única flag persistida por la app.
const KeyLoggedIn = "isLoggedIn"

// Store guarda flags booleanas clave/valor.
// Una key que nunca se escribió se lee como false, sin error.
type Store interface {
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
}
