package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"rhystmorgan/clientDesk/internal/utils"
)

func NewError(kind ErrorKind, op, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

func NewTransportError(op string, cause error) *Error {
	return NewError(ErrTransport, op, fmt.Sprintf("%s: request failed", op), cause)
}

func NewDecodeError(op string, cause error) *Error {
	return NewError(ErrDecode, op, fmt.Sprintf("%s: invalid response body", op), cause)
}

// NewStatusError classifies a non-2xx answer. The duplicate check follows
// the backend's constraint-violation wording.
func NewStatusError(op string, status int, serverText string) *Error {
	serverText = strings.TrimSpace(serverText)
	lower := strings.ToLower(serverText)

	kind := ErrStatus
	switch {
	case strings.Contains(lower, "duplicate key") || strings.Contains(lower, "already exists"):
		kind = ErrDuplicate
	case status == 404:
		kind = ErrNotFound
	}

	return &Error{
		Kind:       kind,
		Op:         op,
		Message:    fmt.Sprintf("%s: server returned %d", op, status),
		Status:     status,
		ServerText: serverText,
	}
}

// NewTooLargeError reports a response body over the configured limit.
func NewTooLargeError(op string, limit int64) *Error {
	e := NewError(ErrTooLarge, op, fmt.Sprintf("%s: response exceeds %d bytes", op, limit), nil)
	e.Limit = limit
	return e
}

func NewValidationError(message string) *Error {
	return NewError(ErrValidation, "validate", message, nil)
}

// ClassifyError turns any error from the transport layer into an *Error.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewTransportError("request", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewTransportError("request", err)
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "no such host"),
		strings.Contains(errStr, "timeout"),
		strings.Contains(errStr, "deadline exceeded"),
		strings.Contains(errStr, "eof"):
		return NewTransportError("request", err)
	case strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "already exists"):
		return NewError(ErrDuplicate, "request", "duplicate record", err)
	case strings.Contains(errStr, "invalid character") || strings.Contains(errStr, "cannot unmarshal"):
		return NewDecodeError("request", err)
	default:
		return NewTransportError("request", err)
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// UserMessage is the text shown in the notification line.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case ErrTransport:
		return "Erro de conexão. Verifique se o backend está funcionando."
	case ErrDuplicate:
		return "Erro: Email já cadastrado! Use um email diferente."
	case ErrNotFound:
		return fmt.Sprintf("Registro não encontrado no servidor (%d).", e.Status)
	case ErrStatus:
		if e.ServerText != "" {
			return fmt.Sprintf("Erro do servidor (%d): %s", e.Status, firstLine(e.ServerText, 120))
		}
		return fmt.Sprintf("Erro do servidor (%d): Por favor, tente novamente.", e.Status)
	case ErrDecode:
		return "Resposta inválida do servidor."
	case ErrTooLarge:
		return fmt.Sprintf("Resposta do servidor maior que o limite de %s. Aumente max_response_mb na configuração.", utils.FormatBytes(e.Limit))
	case ErrValidation:
		return e.Message
	default:
		return "Ocorreu um erro inesperado."
	}
}

func firstLine(s string, maxLen int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if runes := []rune(s); len(runes) > maxLen {
		s = string(runes[:maxLen-3]) + "..."
	}
	return s
}
