package session

import (
	"strings"
	"unicode/utf8"
)

const (
	minEmailLen    = 7 // estrictamente > 6
	minPasswordLen = 6

	RegistrationNotice = "Registration successful! Please log in."
)

// Status es el estado top-level de la máquina: LoggedOut <-> LoggedIn.
type Status string

const (
	StatusLoggedOut Status = "logged_out"
	StatusLoggedIn  Status = "logged_in"
)

// State es lo que ven las pantallas. La password nunca sale del gate.
type State struct {
	Authenticated     bool
	Email             string
	SubmissionEnabled bool
}

func (s State) Status() Status {
	if s.Authenticated {
		return StatusLoggedIn
	}
	return StatusLoggedOut
}

// SubmissionEnabled es solo higiene de input: email con más de 6 caracteres y '@',
// password de al menos 6. No dice nada sobre si la credencial es válida.
func SubmissionEnabled(email, password string) bool {
	emailOK := utf8.RuneCountInString(email) >= minEmailLen && strings.Contains(email, "@")
	passwordOK := utf8.RuneCountInString(password) >= minPasswordLen
	return emailOK && passwordOK
}

// RegistrationSucceeded no es un error: el usuario tiene que volver a loguearse.
type RegistrationSucceeded struct {
	Email  string
	Notice string
}

type Op string

const (
	OpLogin    Op = "login"
	OpRegister Op = "register"
	OpLogout   Op = "logout"
)

// Outcome es el resultado explícito de una operación async del gate.
// Err == nil significa éxito; Registration solo viene en OpRegister exitoso.
type Outcome struct {
	Op           Op
	Registration *RegistrationSucceeded
	Err          error
}
