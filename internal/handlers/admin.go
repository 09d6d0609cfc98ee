package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/patronacct/draftboard/gate"
	"github.com/patronacct/draftboard/httpx"
	"github.com/patronacct/draftboard/internal/models"
	"github.com/patronacct/draftboard/internal/policy"
	"github.com/patronacct/draftboard/internal/services"
)

// AdminHandler is the user-administration surface: listing accounts and
// flipping the two access switches (active, template authoring), plus a
// cross-user view of saved documents.
type AdminHandler struct {
	DB          *gorm.DB
	Resolutions *services.ResolutionService
	Gate        *gate.Gate[*models.User]
}

func NewAdminHandler(db *gorm.DB, g *gate.Gate[*models.User]) *AdminHandler {
	return &AdminHandler{DB: db, Resolutions: services.NewResolutionService(db), Gate: g}
}

func (h *AdminHandler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.Handler) {
	mux.Handle("/admin/users", wrap(h.listUsers))
	mux.Handle("/admin/users/update", wrap(h.updateUser))
	mux.Handle("/admin/resolutions", wrap(h.listResolutions))
}

func (h *AdminHandler) admin(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := currentUser(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return nil, false
	}
	if !h.Gate.Can(r.Context(), user, gate.ActionList, policy.ResourceUser, nil) {
		forbidden(w)
		return nil, false
	}
	return user, true
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	if _, ok := h.admin(w, r); !ok {
		return
	}
	var users []models.User
	if err := h.DB.Order("created_at asc").Find(&users).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	httpx.JSON(w, http.StatusOK, out)
}

// updateUser: POST /admin/users/update?id= with any of {"isActive",
// "canCreateTemplate"}. Admins cannot deactivate themselves; the last way
// into the admin surface must stay open.
func (h *AdminHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	admin, ok := h.admin(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	var input struct {
		IsActive          *bool `json:"isActive"`
		CanCreateTemplate *bool `json:"canCreateTemplate"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var user models.User
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		notFound(w)
		return
	}
	if input.IsActive != nil {
		if user.ID == admin.ID && !*input.IsActive {
			httpx.JSONError(w, http.StatusBadRequest, "cannot_deactivate_self", nil)
			return
		}
		user.IsActive = *input.IsActive
	}
	if input.CanCreateTemplate != nil {
		user.CanCreateTemplate = *input.CanCreateTemplate
	}
	if err := h.DB.Save(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, toUserResponse(&user))
}

func (h *AdminHandler) listResolutions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	if _, ok := h.admin(w, r); !ok {
		return
	}
	list, err := h.Resolutions.ListAll()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}
