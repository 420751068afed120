package httpapi

import (
	"net/http"

	"github.com/sparks/noteapp/internal/server/models"
)

// authedHandler is a handler that additionally receives the authenticated
// caller, resolved by requireAuth.
type authedHandler func(w http.ResponseWriter, r *http.Request, user *models.User)

// requireAuth is the single gate in front of every protected route: it
// resolves the Authorization header to a user record and rejects the request
// before any handler logic runs otherwise. Missing header, bad signature,
// and orphaned subject all map to 401.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.users.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			s.logger.Warn(r.Context(), "authentication failed", "error", err.Error())
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, user)
	}
}
