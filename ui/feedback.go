package ui

import (
	"errors"
	"sort"
	"strings"

	"github.com/delivery-desk/v2/internal/auth"
)

// errorText maps a manager error onto the message rendered next to the
// form that caused it. Field-scoped validation errors are listed one per
// line in field order; everything else gets a short fixed message.
func errorText(err error) string {
	if fields, ok := auth.FieldErrors(err); ok {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		messages := make([]string, 0, len(names))
		for _, name := range names {
			messages = append(messages, fields[name].Error())
		}
		return strings.Join(messages, "\n")
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, auth.ErrLoginInProgress):
		return "A sign-in is already in progress."
	case errors.Is(err, auth.ErrSessionExpired):
		return "Your session has expired. Please sign in again."
	case errors.Is(err, auth.ErrNoSession):
		return "You are signed out. Please sign in again."
	}

	var netErr *auth.NetworkError
	if errors.As(err, &netErr) {
		return "Cannot reach the server. Check your connection and try again."
	}
	return "Something went wrong on the server. Please try again."
}
