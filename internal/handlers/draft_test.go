package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/patronacct/draftboard/internal/db"
	"github.com/patronacct/draftboard/internal/models"
	"github.com/patronacct/draftboard/internal/workflow"
)

func newDraftHandler(t *testing.T, gdb *gorm.DB) *DraftHandler {
	t.Helper()
	return NewDraftHandler(gdb, workflow.NewSessions(), testGate())
}

func decodeState(t *testing.T, body []byte) draftState {
	t.Helper()
	var s draftState
	if err := json.Unmarshal(body, &s); err != nil {
		t.Fatalf("decode state: %v (%s)", err, body)
	}
	return s
}

func startDraft(t *testing.T, h *DraftHandler, u *models.User) draftState {
	t.Helper()
	req := asUser(httptest.NewRequest(http.MethodPost, "/drafts", nil), u)
	w := httptest.NewRecorder()
	h.startOrGet(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("start draft: expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	return decodeState(t, w.Body.Bytes())
}

func postJSON(t *testing.T, h http.HandlerFunc, u *models.User, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := asUser(httptest.NewRequest(method, url, strings.NewReader(body)), u)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestDraftFullResolutionFlow(t *testing.T) {
	gdb := setupTestDB(t)
	if err := db.SeedSystemTemplates(gdb); err != nil {
		t.Fatalf("seed: %v", err)
	}
	u := seedUser(t, gdb, "draft@example.com", models.RoleUser)
	h := newDraftHandler(t, gdb)

	tpl := models.Template{Name: "Bank Account", Category: models.CategoryResolution, DraftText: "RESOLVED THAT {{Amount}} be paid.", Fields: []models.CustomField{{Label: "Amount", Type: "text"}}}
	if err := h.Templates.Create(&tpl); err != nil {
		t.Fatalf("create template: %v", err)
	}

	state := startDraft(t, h, u)
	if state.Step != "category" {
		t.Fatalf("expected category step, got %s", state.Step)
	}

	w := postJSON(t, h.category, u, http.MethodPost, "/drafts/category?id="+state.ID, `{"category":"RESOLUTION"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("category: %d (%s)", w.Code, w.Body.String())
	}

	w = postJSON(t, h.company, u, http.MethodPut, "/drafts/company?id="+state.ID, `{"cin":"U99","companyName":"Acme Pvt Ltd","address":"12 Lane","meetingDate":"2024-03-15","meetingTime":"11:00 AM","meetingPlace":"Registered Office","chairmanName":"Jane Doe","chairmanDin":"01234567","directorsPresent":"Jane Doe, John Roe","quorumPresent":true,"meetingType":"Board Meeting"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("company: %d (%s)", w.Code, w.Body.String())
	}

	// entity -> library
	w = postJSON(t, h.next, u, http.MethodPost, "/drafts/next?id="+state.ID, "")
	if s := decodeState(t, w.Body.Bytes()); s.Step != "library" {
		t.Fatalf("expected library, got %s", s.Step)
	}

	w = postJSON(t, h.items, u, http.MethodPost, "/drafts/items?id="+state.ID, `{"templateId":"`+tpl.ID+`"}`)
	s := decodeState(t, w.Body.Bytes())
	if len(s.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(s.Items))
	}
	itemID := s.Items[0].ID

	w = postJSON(t, h.values, u, http.MethodPut, "/drafts/values?id="+state.ID, `{"itemId":"`+itemID+`","label":"Amount","value":"₹50,000"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("values: %d", w.Code)
	}

	// library -> fields (header skipped for resolutions) -> preview
	postJSON(t, h.next, u, http.MethodPost, "/drafts/next?id="+state.ID, "")
	w = postJSON(t, h.next, u, http.MethodPost, "/drafts/next?id="+state.ID, "")
	s = decodeState(t, w.Body.Bytes())
	if s.Step != "preview" {
		t.Fatalf("expected preview, got %s", s.Step)
	}
	if !strings.Contains(s.EditedContent, "<strong>₹50,000</strong>") {
		t.Fatalf("merged value missing from preview: %s", s.EditedContent)
	}

	w = postJSON(t, h.finalize, u, http.MethodPost, "/drafts/finalize?id="+state.ID, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("finalize: %d (%s)", w.Code, w.Body.String())
	}
	var saved models.Resolution
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode resolution: %v", err)
	}
	if saved.UserID != u.ID || saved.DocType != models.CategoryResolution {
		t.Fatalf("unexpected resolution: %+v", saved)
	}

	// Finalize ends the draft session.
	w = postJSON(t, h.finalize, u, http.MethodPost, "/drafts/finalize?id="+state.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after finalize, got %d", w.Code)
	}

	// The client roster was upserted from the meeting details.
	var client models.ClientProfile
	if err := gdb.First(&client, "cin = ?", "U99").Error; err != nil {
		t.Fatalf("client upsert missing: %v", err)
	}
	if client.CompanyName != "Acme Pvt Ltd" || len(client.Directors) != 2 {
		t.Fatalf("unexpected client: %+v", client)
	}
}

func TestDraftSimplifiedAutoAttach(t *testing.T) {
	gdb := setupTestDB(t)
	if err := db.SeedSystemTemplates(gdb); err != nil {
		t.Fatalf("seed: %v", err)
	}
	u := seedUser(t, gdb, "simple@example.com", models.RoleUser)
	h := newDraftHandler(t, gdb)

	state := startDraft(t, h, u)
	postJSON(t, h.category, u, http.MethodPost, "/drafts/category?id="+state.ID, `{"category":"INCORPORATION","subType":"INC_NOC"}`)
	w := postJSON(t, h.next, u, http.MethodPost, "/drafts/next?id="+state.ID, "")
	s := decodeState(t, w.Body.Bytes())
	if s.Step != "fields" {
		t.Fatalf("expected fields, got %s", s.Step)
	}
	if len(s.Items) != 1 || s.Items[0].TemplateName != workflow.TemplateNameNOC {
		t.Fatalf("expected auto-attached NOC template, got %+v", s.Items)
	}
	if !s.Simplified {
		t.Fatal("expected simplified flag")
	}
}

func TestDraftInvalidCategory(t *testing.T) {
	gdb := setupTestDB(t)
	u := seedUser(t, gdb, "cat@example.com", models.RoleUser)
	h := newDraftHandler(t, gdb)

	state := startDraft(t, h, u)
	w := postJSON(t, h.category, u, http.MethodPost, "/drafts/category?id="+state.ID, `{"category":"BOGUS"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestDraftEditExisting(t *testing.T) {
	gdb := setupTestDB(t)
	owner := seedUser(t, gdb, "owner@example.com", models.RoleUser)
	other := seedUser(t, gdb, "other@example.com", models.RoleUser)
	h := newDraftHandler(t, gdb)

	res := &models.Resolution{
		UserID:       owner.ID,
		DocType:      models.CategoryResolution,
		FinalContent: "<p>stored</p>",
	}
	if err := h.Resolutions.Save(res); err != nil {
		t.Fatalf("save: %v", err)
	}

	w := postJSON(t, h.startOrGet, owner, http.MethodPost, "/drafts", `{"resolutionId":"`+res.ID+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("edit start: %d (%s)", w.Code, w.Body.String())
	}
	s := decodeState(t, w.Body.Bytes())
	if s.Step != "preview" || s.EditedContent != "<p>stored</p>" {
		t.Fatalf("expected seeded preview, got %+v", s)
	}

	// Another user may not open someone else's document for editing.
	w = postJSON(t, h.startOrGet, other, http.MethodPost, "/drafts", `{"resolutionId":"`+res.ID+`"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
}

func TestDraftUnknownID(t *testing.T) {
	gdb := setupTestDB(t)
	u := seedUser(t, gdb, "ghost@example.com", models.RoleUser)
	h := newDraftHandler(t, gdb)

	w := postJSON(t, h.next, u, http.MethodPost, "/drafts/next?id=missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	w = postJSON(t, h.next, u, http.MethodPost, "/drafts/next", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
