package api

import (
	"time"
)

type Config struct {
	BaseURL    string
	Collection string
	Timeout    time.Duration
	UserAgent  string
	// MaxResponseSize caps a response body in bytes. Larger bodies fail
	// with ErrTooLarge instead of being cut.
	MaxResponseSize int64
}

type ErrorKind string

const (
	ErrTransport  ErrorKind = "transport"
	ErrStatus     ErrorKind = "status"
	ErrDuplicate  ErrorKind = "duplicate"
	ErrNotFound   ErrorKind = "not_found"
	ErrDecode     ErrorKind = "decode"
	ErrValidation ErrorKind = "validation"
	ErrTooLarge   ErrorKind = "too_large"
)

const (
	encodeFailedMessage = "Não foi possível preparar o registro para envio."
	missingIDMessage    = "Registro sem id: salve-o antes de alterar ou excluir."
)

// Error is returned by every Client call. Status is zero unless the server
// answered.
type Error struct {
	Kind       ErrorKind
	Op         string
	Message    string
	Status     int
	ServerText string
	// Limit is set for ErrTooLarge.
	Limit int64
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// recordDTO mirrors the wire shape. Pointers mark fields the server may omit.
type recordDTO struct {
	ID              *int64   `json:"id"`
	Name            *string  `json:"name"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	Address         *string  `json:"address"`
	Income          *float64 `json:"income"`
	NumOfDependents *int     `json:"numOfDependents"`
	Status          *string  `json:"status"`
	Observations    *string  `json:"observations"`
	Photo           *string  `json:"photo"`
}

// writeDTO is the request body for create and replace; id travels in the
// path, never in the body.
type writeDTO struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	Income          float64 `json:"income"`
	NumOfDependents int     `json:"numOfDependents"`
	Status          string  `json:"status"`
	Observations    string  `json:"observations"`
	Photo           *string `json:"photo,omitempty"`
}

// ConnectionStatus is updated after every call so the home screen can show
// whether the backend was reachable last time we asked.
type ConnectionStatus struct {
	Connected   bool
	BaseURL     string
	LastChecked time.Time
	LastStatus  int
	LastError   string
}
