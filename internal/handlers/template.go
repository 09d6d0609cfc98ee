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

type TemplateHandler struct {
	DB      *gorm.DB
	Service *services.TemplateService
	Gate    *gate.Gate[*models.User]
}

func NewTemplateHandler(db *gorm.DB, g *gate.Gate[*models.User]) *TemplateHandler {
	return &TemplateHandler{DB: db, Service: services.NewTemplateService(db), Gate: g}
}

func (h *TemplateHandler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.Handler) {
	mux.Handle("/templates", wrap(h.listOrCreate))
	mux.Handle("/templates/delete", wrap(h.delete))
}

// listOrCreate: GET /templates?category= lists the catalog, POST creates a
// user template.
func (h *TemplateHandler) listOrCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	switch r.Method {
	case http.MethodGet:
		if !h.Gate.Can(r.Context(), user, gate.ActionList, policy.ResourceTemplate, nil) {
			forbidden(w)
			return
		}
		templates, err := h.Service.List(r.URL.Query().Get("category"))
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, templates)
	case http.MethodPost:
		if !h.Gate.Can(r.Context(), user, gate.ActionCreate, policy.ResourceTemplate, nil) {
			forbidden(w)
			return
		}
		var input struct {
			Name             string               `json:"name"`
			Category         string               `json:"category"`
			Fields           []models.CustomField `json:"fields"`
			DraftText        string               `json:"draftText"`
			IsSystemTemplate bool                 `json:"isSystemTemplate"`
		}
		if err := httpx.Decode(r, &input); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		tpl := models.Template{
			UserID:    user.ID,
			Name:      input.Name,
			Category:  input.Category,
			Fields:    input.Fields,
			DraftText: input.DraftText,
			// only admins publish into the shared built-in set
			IsSystemTemplate: input.IsSystemTemplate && user.IsAdmin(),
		}
		if v := h.Service.Validate(&tpl); !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		if err := h.Service.Create(&tpl); err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
			return
		}
		httpx.JSON(w, http.StatusCreated, tpl)
	default:
		httpx.MethodNotAllowed(w, "GET,POST")
	}
}

// delete: DELETE /templates/delete?id=. Saved documents hold snapshots, so
// deleting a template never breaks them.
func (h *TemplateHandler) delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete && r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST,DELETE")
		return
	}
	user, ok := currentUser(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	tpl, err := h.Service.Get(id)
	if err != nil {
		notFound(w)
		return
	}
	if !h.Gate.Can(r.Context(), user, gate.ActionDelete, policy.ResourceTemplate, tpl) {
		forbidden(w)
		return
	}
	if err := h.Service.Delete(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
