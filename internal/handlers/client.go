package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/patronacct/draftboard/gate"
	"github.com/patronacct/draftboard/httpx"
	"github.com/patronacct/draftboard/internal/config"
	"github.com/patronacct/draftboard/internal/models"
	"github.com/patronacct/draftboard/internal/policy"
	"github.com/patronacct/draftboard/internal/services"
)

const maxImportSize = 5 << 20 // uploads are small rosters, not data dumps

type ClientHandler struct {
	DB      *gorm.DB
	Service *services.ClientService
	Gate    *gate.Gate[*models.User]
}

func NewClientHandler(db *gorm.DB, g *gate.Gate[*models.User]) *ClientHandler {
	return &ClientHandler{DB: db, Service: services.NewClientService(db), Gate: g}
}

func (h *ClientHandler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.Handler) {
	mux.Handle("/clients", wrap(h.listOrUpsert))
	mux.Handle("/clients/delete", wrap(h.delete))
	mux.Handle("/clients/import", wrap(h.importCSV))
	mux.Handle("/clients/sample.csv", wrap(h.sampleCSV))
	mux.Handle("/clients/export.xlsx", wrap(h.exportXLSX))
}

func (h *ClientHandler) authorize(w http.ResponseWriter, r *http.Request, action gate.Action) (*models.User, bool) {
	user, ok := currentUser(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return nil, false
	}
	if !h.Gate.Can(r.Context(), user, action, policy.ResourceClient, nil) {
		forbidden(w)
		return nil, false
	}
	return user, true
}

// listOrUpsert: GET /clients?q= searches the roster; POST writes a profile
// keyed by CIN.
func (h *ClientHandler) listOrUpsert(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := h.authorize(w, r, gate.ActionList); !ok {
			return
		}
		clients, err := h.Service.List(r.URL.Query().Get("q"))
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, clients)
	case http.MethodPost:
		if _, ok := h.authorize(w, r, gate.ActionCreate); !ok {
			return
		}
		var input models.ClientProfile
		if err := httpx.Decode(r, &input); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		profile, err := h.Service.Upsert(input)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_profile", err.Error())
			return
		}
		httpx.JSON(w, http.StatusOK, profile)
	default:
		httpx.MethodNotAllowed(w, "GET,POST")
	}
}

func (h *ClientHandler) delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete && r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST,DELETE")
		return
	}
	if _, ok := h.authorize(w, r, gate.ActionDelete); !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if _, err := h.Service.Get(id); err != nil {
		notFound(w)
		return
	}
	if err := h.Service.Delete(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// importCSV: POST /clients/import with a multipart "file" field. Rows
// missing a name or CIN are skipped; the response reports the loaded count.
func (h *ClientHandler) importCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	if _, ok := h.authorize(w, r, gate.ActionCreate); !ok {
		return
	}
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_upload", nil)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "missing_file", nil)
		return
	}
	defer file.Close()

	imported, err := h.Service.ImportCSV(file)
	if err != nil {
		config.LogError("clients", "importCSV", err, nil)
		httpx.JSONError(w, http.StatusBadRequest, "import_failed", map[string]int{"imported": imported})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"imported": imported})
}

// sampleCSV: GET /clients/sample.csv downloads the import template.
func (h *ClientHandler) sampleCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	if _, ok := h.authorize(w, r, gate.ActionView); !ok {
		return
	}
	data, err := services.SampleCSV()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "csv_error", nil)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="client_master_template.csv"`)
	_, _ = w.Write(data)
}

// exportXLSX: GET /clients/export.xlsx downloads the full roster.
func (h *ClientHandler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	if _, ok := h.authorize(w, r, gate.ActionList); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="clients.xlsx"`)
	if err := h.Service.ExportXLSX(w); err != nil {
		config.LogError("clients", "exportXLSX", err, nil)
	}
}
