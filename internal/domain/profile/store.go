package profile

import (
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
)

const (
	FieldName     = "name"
	FieldBreed    = "breed"
	FieldBirthday = "birthday"
)

// InvalidProfileError lista los campos que no pasaron validación en Commit.
type InvalidProfileError struct {
	Fields []string
}

func (e *InvalidProfileError) Error() string {
	return "invalid profile: " + strings.Join(e.Fields, ", ")
}

func (e *InvalidProfileError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Listener recibe el snapshot recién commiteado.
type Listener func(Profile)

type Option func(*Store)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Lenient desactiva la validación de Commit: acepta cualquier texto y fecha.
func Lenient() Option {
	return func(s *Store) { s.lenient = true }
}

// Store es la única fuente de verdad del perfil.
// Lecturas concurrentes libres; los commits se serializan y notifican en orden.
type Store struct {
	// commitMu serializa commit + notificación. No se toma en lecturas.
	commitMu sync.Mutex

	mu        sync.RWMutex
	current   Profile
	listeners map[uint64]Listener
	nextID    uint64

	now     func() time.Time
	lenient bool
}

func NewStore(initial Profile, opts ...Option) *Store {
	s := &Store{
		current:   initial,
		listeners: make(map[uint64]Listener),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// BeginEdit devuelve un draft sembrado con los valores actuales.
// Pueden existir varios drafts a la vez; gana el último Commit.
func (s *Store) BeginEdit() Draft {
	p := s.Get()
	return Draft{
		Name:     p.Name,
		Breed:    p.Breed,
		Birthday: p.Birthday,
	}
}

// Commit reemplaza nombre, raza y cumpleaños de una vez y notifica a cada listener
// exactamente una vez antes de volver. Con error, el store queda igual.
//
// Los listeners corren fuera del lock de lectura (pueden llamar Get), pero no deben
// llamar Commit: se bloquearían contra commitMu.
func (s *Store) Commit(d Draft) error {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	now := s.now()
	if !s.lenient {
		if err := validate(d, now); err != nil {
			return err
		}
	}

	s.mu.Lock()
	next := Profile{
		Name:      d.Name,
		Breed:     d.Breed,
		Birthday:  d.Birthday,
		Version:   s.current.Version + 1,
		UpdatedAt: now,
	}
	s.current = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return nil
}

// AgeYears deriva la edad del perfil actual.
func (s *Store) AgeYears(asOf time.Time) float64 {
	return s.Get().AgeYears(asOf)
}

// Subscribe registra un listener. La func devuelta lo da de baja (idempotente).
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func validate(d Draft, now time.Time) error {
	var fields []string
	if strings.TrimSpace(d.Name) == "" {
		fields = append(fields, FieldName)
	}
	if strings.TrimSpace(d.Breed) == "" {
		fields = append(fields, FieldBreed)
	}
	if d.Birthday.IsZero() || d.Birthday.After(now) {
		fields = append(fields, FieldBirthday)
	}
	if len(fields) > 0 {
		return &InvalidProfileError{Fields: fields}
	}
	return nil
}
