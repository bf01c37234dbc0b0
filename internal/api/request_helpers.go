package api

import (
	"net/http"

	"github.com/phrazzld/expense-api/internal/api/shared"
	"github.com/phrazzld/expense-api/internal/service/auth"
)

// getUserIDFromContext extracts the authenticated user's ID from the request
// context, where the authentication middleware placed it.
func getUserIDFromContext(r *http.Request) (string, bool) {
	return shared.UserIDFromContext(r.Context())
}

// requireUserID returns the authenticated user's ID, or writes a 401 and
// returns false when the request did not pass through the auth middleware.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken)
		return "", false
	}
	return userID, true
}

// decodeAndValidate decodes the JSON body into v and applies its struct
// validation tags. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	return true
}
