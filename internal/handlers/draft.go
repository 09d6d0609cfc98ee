package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/patronacct/draftboard/gate"
	"github.com/patronacct/draftboard/httpx"
	"github.com/patronacct/draftboard/internal/models"
	"github.com/patronacct/draftboard/internal/policy"
	"github.com/patronacct/draftboard/internal/services"
	"github.com/patronacct/draftboard/internal/workflow"
	"github.com/patronacct/draftboard/validation"
)

// DraftHandler exposes the drafting wizard over HTTP. Drafts are in-memory
// sessions keyed by id; only finalize touches the database.
type DraftHandler struct {
	DB          *gorm.DB
	Sessions    *workflow.Sessions
	Templates   *services.TemplateService
	Resolutions *services.ResolutionService
	Gate        *gate.Gate[*models.User]
}

func NewDraftHandler(db *gorm.DB, sessions *workflow.Sessions, g *gate.Gate[*models.User]) *DraftHandler {
	return &DraftHandler{
		DB:          db,
		Sessions:    sessions,
		Templates:   services.NewTemplateService(db),
		Resolutions: services.NewResolutionService(db),
		Gate:        g,
	}
}

func (h *DraftHandler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.Handler) {
	mux.Handle("/drafts", wrap(h.startOrGet))
	mux.Handle("/drafts/category", wrap(h.category))
	mux.Handle("/drafts/company", wrap(h.company))
	mux.Handle("/drafts/header", wrap(h.header))
	mux.Handle("/drafts/items", wrap(h.items))
	mux.Handle("/drafts/values", wrap(h.values))
	mux.Handle("/drafts/next", wrap(h.next))
	mux.Handle("/drafts/back", wrap(h.back))
	mux.Handle("/drafts/content", wrap(h.content))
	mux.Handle("/drafts/preview", wrap(h.preview))
	mux.Handle("/drafts/finalize", wrap(h.finalize))
}

type draftState struct {
	ID             string                    `json:"id"`
	Step           string                    `json:"step"`
	Simplified     bool                      `json:"simplified"`
	DocType        string                    `json:"docType"`
	SubType        string                    `json:"subType,omitempty"`
	CompanyDetails models.CompanyDetails     `json:"companyDetails"`
	Items          []models.ResolutionItem   `json:"items"`
	HeaderFooter   models.HeaderFooterConfig `json:"headerFooter"`
	EditedContent  string                    `json:"editedContent,omitempty"`
}

func stateOf(id string, w *workflow.Wizard) draftState {
	items := w.Items
	if items == nil {
		items = []models.ResolutionItem{}
	}
	return draftState{
		ID:             id,
		Step:           w.Step.String(),
		Simplified:     w.Simplified(),
		DocType:        w.DocType,
		SubType:        w.SubType,
		CompanyDetails: w.CompanyDetails,
		Items:          items,
		HeaderFooter:   w.HeaderFooter,
		EditedContent:  w.EditedContent,
	}
}

// wizard resolves the draft referenced by ?id=.
func (h *DraftHandler) wizard(w http.ResponseWriter, r *http.Request) (string, *workflow.Wizard, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return "", nil, false
	}
	wiz, ok := h.Sessions.Get(id)
	if !ok {
		notFound(w)
		return "", nil, false
	}
	return id, wiz, true
}

// startOrGet: POST /drafts starts a draft (optionally seeded from a stored
// document via {"resolutionId": ...}); GET /drafts?id= returns its state.
func (h *DraftHandler) startOrGet(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		id, wiz, ok := h.wizard(w, r)
		if !ok {
			return
		}
		httpx.JSON(w, http.StatusOK, stateOf(id, wiz))
	case http.MethodPost:
		var input struct {
			ResolutionID string `json:"resolutionId"`
		}
		if r.Body != nil && r.ContentLength != 0 {
			if err := httpx.Decode(r, &input); err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
				return
			}
		}
		if input.ResolutionID == "" {
			id, wiz := h.Sessions.Start()
			httpx.JSON(w, http.StatusCreated, stateOf(id, wiz))
			return
		}
		user, ok := currentUser(h.DB, r)
		if !ok {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		res, err := h.Resolutions.Get(input.ResolutionID)
		if err != nil {
			notFound(w)
			return
		}
		if !h.Gate.Can(r.Context(), user, gate.ActionUpdate, policy.ResourceResolution, res) {
			forbidden(w)
			return
		}
		wiz := workflow.NewFromResolution(res)
		id := h.Sessions.StartFrom(wiz)
		httpx.JSON(w, http.StatusCreated, stateOf(id, wiz))
	default:
		httpx.MethodNotAllowed(w, "GET,POST")
	}
}

// category: POST /drafts/category?id= with {"category": ..., "subType": ...}.
func (h *DraftHandler) category(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	var input struct {
		Category string `json:"category"`
		SubType  string `json:"subType"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.OneOf("category", input.Category, models.Categories(), v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_category", v)
		return
	}
	wiz.SelectCategory(input.Category)
	if input.SubType != "" {
		wiz.SelectSubType(input.SubType)
	}
	httpx.JSON(w, http.StatusOK, stateOf(id, wiz))
}

// company: PUT /drafts/company?id= replaces the entity details wholesale.
func (h *DraftHandler) company(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		httpx.MethodNotAllowed(w, "PUT")
		return
	}
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	var details models.CompanyDetails
	if err := httpx.Decode(r, &details); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	wiz.CompanyDetails = details
	httpx.JSON(w, http.StatusOK, stateOf(id, wiz))
}

// header: PUT /drafts/header?id= replaces the letterhead configuration.
func (h *DraftHandler) header(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		httpx.MethodNotAllowed(w, "PUT")
		return
	}
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	var cfg models.HeaderFooterConfig
	if err := httpx.Decode(r, &cfg); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	wiz.HeaderFooter = cfg
	httpx.JSON(w, http.StatusOK, stateOf(id, wiz))
}

// items: POST adds a template to the draft, DELETE removes an item.
func (h *DraftHandler) items(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		id, wiz, ok := h.wizard(w, r)
		if !ok {
			return
		}
		var input struct {
			TemplateID string `json:"templateId"`
		}
		if err := httpx.Decode(r, &input); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		tpl, err := h.Templates.Get(input.TemplateID)
		if err != nil {
			notFound(w)
			return
		}
		wiz.AttachTemplate(*tpl)
		httpx.JSON(w, http.StatusOK, stateOf(id, wiz))
	case http.MethodDelete:
		id, wiz, ok := h.wizard(w, r)
		if !ok {
			return
		}
		itemID := r.URL.Query().Get("itemId")
		if itemID == "" {
			httpx.JSONError(w, http.StatusBadRequest, "missing_item_id", nil)
			return
		}
		wiz.RemoveItem(itemID)
		httpx.JSON(w, http.StatusOK, stateOf(id, wiz))
	default:
		httpx.MethodNotAllowed(w, "POST,DELETE")
	}
}

// values: PUT /drafts/values?id= records one field value on one item.
func (h *DraftHandler) values(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		httpx.MethodNotAllowed(w, "PUT")
		return
	}
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	var input struct {
		ItemID string `json:"itemId"`
		Label  string `json:"label"`
		Value  string `json:"value"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.ItemID == "" || input.Label == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_item_or_label", nil)
		return
	}
	wiz.SetValue(input.ItemID, input.Label, input.Value)
	httpx.JSON(w, http.StatusOK, stateOf(id, wiz))
}

// next: POST /drafts/next?id= advances the wizard, applying skip rules and
// simplified-path auto-attachment.
func (h *DraftHandler) next(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	available, err := h.Templates.List("")
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	if err := wiz.Next(available); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, stateOf(id, wiz))
}

// back: POST /drafts/back?id= retreats one effective step.
func (h *DraftHandler) back(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	wiz.Back()
	httpx.JSON(w, http.StatusOK, stateOf(id, wiz))
}

// content: PUT /drafts/content?id= stores the hand-edited preview HTML.
func (h *DraftHandler) content(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		httpx.MethodNotAllowed(w, "PUT")
		return
	}
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	var input struct {
		Content string `json:"content"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	wiz.EditedContent = input.Content
	httpx.JSON(w, http.StatusOK, stateOf(id, wiz))
}

// preview: GET /drafts/preview?id= returns a fresh assembly of the current
// draft state, ignoring any hand edits.
func (h *DraftHandler) preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	_, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"html": wiz.Assembled()})
}

// finalize: POST /drafts/finalize?id= persists the document and ends the
// draft session. The wizard state survives a failed save for retry.
func (h *DraftHandler) finalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	user, ok := currentUser(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if !h.Gate.Can(r.Context(), user, gate.ActionCreate, policy.ResourceResolution, nil) {
		forbidden(w)
		return
	}
	res, err := wiz.Finalize(user.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Resolutions.Save(res); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "save_failed", nil)
		return
	}
	h.Sessions.End(id)
	httpx.JSON(w, http.StatusCreated, res)
}
