package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/patronacct/draftboard/internal/models"
)

type fakeRenderer struct {
	data []byte
	err  error
}

func (f *fakeRenderer) Render(context.Context, string) ([]byte, error) { return f.data, f.err }

func TestResolutionListNewestFirstAndScoped(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "list@example.com", models.RoleUser)
	stranger := seedUser(t, db, "stranger@example.com", models.RoleUser)
	h := NewResolutionHandler(db, testGate(), &fakeRenderer{})

	old := models.Resolution{ID: "r-old", UserID: u.ID, DocType: models.CategoryResolution, CreatedAt: time.Now().Add(-time.Hour)}
	fresh := models.Resolution{ID: "r-new", UserID: u.ID, DocType: models.CategoryResolution, CreatedAt: time.Now()}
	foreign := models.Resolution{ID: "r-x", UserID: stranger.ID, DocType: models.CategoryResolution, CreatedAt: time.Now()}
	for _, r := range []models.Resolution{old, fresh, foreign} {
		if err := db.Create(&r).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	req := asUser(httptest.NewRequest(http.MethodGet, "/resolutions", nil), u)
	w := httptest.NewRecorder()
	h.listOrGet(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var list []models.Resolution
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 documents got %d", len(list))
	}
	if list[0].ID != "r-new" || list[1].ID != "r-old" {
		t.Fatalf("not newest first: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestResolutionGetEnforcesOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "own-r@example.com", models.RoleUser)
	other := seedUser(t, db, "oth-r@example.com", models.RoleUser)
	admin := seedUser(t, db, "adm-r@example.com", models.RoleAdmin)
	h := NewResolutionHandler(db, testGate(), &fakeRenderer{})

	res := models.Resolution{ID: "r1", UserID: owner.ID, DocType: models.CategoryResolution}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	for _, tc := range []struct {
		user *models.User
		want int
	}{
		{owner, http.StatusOK},
		{other, http.StatusForbidden},
		{admin, http.StatusOK},
	} {
		req := asUser(httptest.NewRequest(http.MethodGet, "/resolutions?id=r1", nil), tc.user)
		w := httptest.NewRecorder()
		h.listOrGet(w, req)
		if w.Code != tc.want {
			t.Fatalf("user %s: expected %d got %d", tc.user.Email, tc.want, w.Code)
		}
	}
}

func TestResolutionDelete(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "del-r@example.com", models.RoleUser)
	h := NewResolutionHandler(db, testGate(), &fakeRenderer{})

	res := models.Resolution{ID: "r1", UserID: u.ID, DocType: models.CategoryResolution}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	req := asUser(httptest.NewRequest(http.MethodDelete, "/resolutions/delete?id=r1", nil), u)
	w := httptest.NewRecorder()
	h.delete(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var count int64
	db.Model(&models.Resolution{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected document removed, %d left", count)
	}
}

func TestResolutionPDFDownload(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "pdf@example.com", models.RoleUser)
	h := NewResolutionHandler(db, testGate(), &fakeRenderer{data: []byte("%PDF-1.4 fake")})

	res := models.Resolution{ID: "r1", UserID: u.ID, DocType: models.CategoryResolution, FinalContent: "<p>doc</p>", CreatedAt: time.Now()}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := asUser(httptest.NewRequest(http.MethodGet, "/resolutions/pdf?id=r1", nil), u)
	w := httptest.NewRecorder()
	h.downloadPDF(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %s", ct)
	}
	if w.Body.String() != "%PDF-1.4 fake" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestResolutionPDFRenderFailure(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "pdf-fail@example.com", models.RoleUser)
	h := NewResolutionHandler(db, testGate(), &fakeRenderer{err: errors.New("chrome went away")})

	res := models.Resolution{ID: "r1", UserID: u.ID, DocType: models.CategoryResolution, FinalContent: "<p>doc</p>"}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := asUser(httptest.NewRequest(http.MethodGet, "/resolutions/pdf?id=r1", nil), u)
	w := httptest.NewRecorder()
	h.downloadPDF(w, req)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d", w.Code)
	}

	// The stored document is untouched by a render failure.
	var kept models.Resolution
	if err := db.First(&kept, "id = ?", "r1").Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if kept.FinalContent != "<p>doc</p>" {
		t.Fatalf("document altered: %s", kept.FinalContent)
	}
}

func TestAdHocPDFRender(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "adhoc@example.com", models.RoleUser)
	h := NewResolutionHandler(db, testGate(), &fakeRenderer{data: []byte("%PDF-1.4 adhoc")})

	req := asUser(httptest.NewRequest(http.MethodPost, "/documents/pdf", strings.NewReader(`{"html":"<p>preview</p>"}`)), u)
	w := httptest.NewRecorder()
	h.renderPDF(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %s", ct)
	}
	if w.Body.String() != "%PDF-1.4 adhoc" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	req = asUser(httptest.NewRequest(http.MethodPost, "/documents/pdf", strings.NewReader(`{"html":""}`)), u)
	w = httptest.NewRecorder()
	h.renderPDF(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty html got %d", w.Code)
	}
}
