package utils

import (
	"net/http"

	"cinebook/globals"
)

// GetUserPhoneFromRequest returns the caller identity placed in the context
// by middleware.Authenticate, or "" when the request is unauthenticated.
func GetUserPhoneFromRequest(r *http.Request) string {
	phone, ok := r.Context().Value(globals.UserPhoneKey).(string)
	if !ok {
		return ""
	}
	return phone
}
