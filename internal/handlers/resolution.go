package handlers

import (
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/patronacct/draftboard/gate"
	"github.com/patronacct/draftboard/httpx"
	"github.com/patronacct/draftboard/internal/config"
	"github.com/patronacct/draftboard/internal/models"
	"github.com/patronacct/draftboard/internal/pdf"
	"github.com/patronacct/draftboard/internal/policy"
	"github.com/patronacct/draftboard/internal/services"
)

type ResolutionHandler struct {
	DB       *gorm.DB
	Service  *services.ResolutionService
	Gate     *gate.Gate[*models.User]
	Renderer pdf.Renderer
}

func NewResolutionHandler(db *gorm.DB, g *gate.Gate[*models.User], renderer pdf.Renderer) *ResolutionHandler {
	return &ResolutionHandler{DB: db, Service: services.NewResolutionService(db), Gate: g, Renderer: renderer}
}

func (h *ResolutionHandler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.Handler) {
	mux.Handle("/resolutions", wrap(h.listOrGet))
	mux.Handle("/resolutions/delete", wrap(h.delete))
	mux.Handle("/resolutions/pdf", wrap(h.downloadPDF))
	mux.Handle("/documents/pdf", wrap(h.renderPDF))
}

// listOrGet: GET /resolutions lists the caller's documents newest first;
// GET /resolutions?id= fetches one.
func (h *ResolutionHandler) listOrGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	user, ok := currentUser(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if id := r.URL.Query().Get("id"); id != "" {
		res, err := h.Service.Get(id)
		if err != nil {
			notFound(w)
			return
		}
		if !h.Gate.Can(r.Context(), user, gate.ActionView, policy.ResourceResolution, res) {
			forbidden(w)
			return
		}
		httpx.JSON(w, http.StatusOK, res)
		return
	}
	if !h.Gate.Can(r.Context(), user, gate.ActionList, policy.ResourceResolution, nil) {
		forbidden(w)
		return
	}
	list, err := h.Service.List(user.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

// delete: DELETE /resolutions/delete?id=.
func (h *ResolutionHandler) delete(w http.ResponseWriter, r *http.Request) {
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
	res, err := h.Service.Get(id)
	if err != nil {
		notFound(w)
		return
	}
	if !h.Gate.Can(r.Context(), user, gate.ActionDelete, policy.ResourceResolution, res) {
		forbidden(w)
		return
	}
	if err := h.Service.Delete(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// downloadPDF: GET /resolutions/pdf?id= streams the stored document as PDF.
// The document of record is the stored HTML; a render failure is reported as
// a bad gateway and leaves the document untouched.
func (h *ResolutionHandler) downloadPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
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
	res, err := h.Service.Get(id)
	if err != nil {
		notFound(w)
		return
	}
	if !h.Gate.Can(r.Context(), user, gate.ActionView, policy.ResourceResolution, res) {
		forbidden(w)
		return
	}
	data, err := h.Renderer.Render(r.Context(), res.FinalContent)
	if err != nil {
		config.LogError("resolutions", "downloadPDF", err, nil)
		httpx.JSONError(w, http.StatusBadGateway, "render_failed", nil)
		return
	}
	name := fmt.Sprintf("document-%s-%s.pdf", res.DocType, res.CreatedAt.Format(time.DateOnly))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderPDF: POST /documents/pdf renders submitted HTML without touching
// stored documents, so previews can be downloaded before finalizing.
func (h *ResolutionHandler) renderPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	user, ok := currentUser(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if !h.Gate.Can(r.Context(), user, gate.ActionView, policy.ResourceResolution, nil) {
		forbidden(w)
		return
	}
	var input struct {
		HTML string `json:"html"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.HTML == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_html", nil)
		return
	}
	data, err := h.Renderer.Render(r.Context(), input.HTML)
	if err != nil {
		config.LogError("resolutions", "renderPDF", err, nil)
		httpx.JSONError(w, http.StatusBadGateway, "render_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="document.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
