// filepath: internal/services/service_errors.go
package services

import (
	"errors"
	"strings"
)

// Standard errors returned by the service layer.
// They are wrapped as fmt.Errorf("%w: <message>") so handlers can map the
// kind with errors.Is and show the message to the client.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrUnsupported  = errors.New("unsupported media type")
	ErrTooLarge     = errors.New("payload too large")
)

var sentinels = []error{ErrNotFound, ErrValidation, ErrUnauthorized, ErrConflict, ErrUnsupported, ErrTooLarge}

// ErrorMessage returns the client-facing part of a service error, without
// the sentinel prefix.
func ErrorMessage(err error) string {
	msg := err.Error()
	for _, s := range sentinels {
		if errors.Is(err, s) {
			if i := strings.Index(msg, s.Error()+": "); i >= 0 {
				return msg[i+len(s.Error())+2:]
			}
			return msg
		}
	}
	return msg
}
