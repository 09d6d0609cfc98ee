package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/patronacct/draftboard/auth"
	"github.com/patronacct/draftboard/httpx"
	"github.com/patronacct/draftboard/internal/models"
)

// currentUser loads the authenticated user for this request. RequireAuth has
// already verified the session, so a miss here means the account vanished
// mid-request.
func currentUser(db *gorm.DB, r *http.Request) (*models.User, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return nil, false
	}
	var u models.User
	if err := db.First(&u, "id = ?", uid).Error; err != nil {
		return nil, false
	}
	return &u, true
}

func forbidden(w http.ResponseWriter) {
	httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
}

func notFound(w http.ResponseWriter) {
	httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
}
