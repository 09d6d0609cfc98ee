package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/patronacct/draftboard/internal/models"
)

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "plain@example.com", models.RoleUser)
	h := NewAdminHandler(db, testGate())

	for _, tc := range []struct {
		name string
		fn   http.HandlerFunc
		req  *http.Request
	}{
		{"listUsers", h.listUsers, httptest.NewRequest(http.MethodGet, "/admin/users", nil)},
		{"updateUser", h.updateUser, httptest.NewRequest(http.MethodPost, "/admin/users/update?id=x", strings.NewReader(`{}`))},
		{"listResolutions", h.listResolutions, httptest.NewRequest(http.MethodGet, "/admin/resolutions", nil)},
	} {
		w := httptest.NewRecorder()
		tc.fn(w, asUser(tc.req, u))
		if w.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403 got %d", tc.name, w.Code)
		}
	}
}

func TestAdminListUsers(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "root@example.com", models.RoleAdmin)
	seedUser(t, db, "a@example.com", models.RoleUser)
	seedUser(t, db, "b@example.com", models.RoleUser)
	h := NewAdminHandler(db, testGate())

	req := asUser(httptest.NewRequest(http.MethodGet, "/admin/users", nil), admin)
	w := httptest.NewRecorder()
	h.listUsers(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var users []userResponse
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users got %d", len(users))
	}
}

func TestAdminToggleUserSwitches(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "root2@example.com", models.RoleAdmin)
	target := seedUser(t, db, "victim@example.com", models.RoleUser)
	h := NewAdminHandler(db, testGate())

	req := asUser(httptest.NewRequest(http.MethodPost, "/admin/users/update?id="+target.ID,
		strings.NewReader(`{"isActive":false,"canCreateTemplate":false}`)), admin)
	w := httptest.NewRecorder()
	h.updateUser(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var updated models.User
	if err := db.First(&updated, "id = ?", target.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if updated.IsActive || updated.CanCreateTemplate {
		t.Fatalf("switches not flipped: %+v", updated)
	}
}

func TestAdminCannotDeactivateSelf(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "self@example.com", models.RoleAdmin)
	h := NewAdminHandler(db, testGate())

	req := asUser(httptest.NewRequest(http.MethodPost, "/admin/users/update?id="+admin.ID,
		strings.NewReader(`{"isActive":false}`)), admin)
	w := httptest.NewRecorder()
	h.updateUser(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestAdminListAllResolutions(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "root3@example.com", models.RoleAdmin)
	a := seedUser(t, db, "ua@example.com", models.RoleUser)
	b := seedUser(t, db, "ub@example.com", models.RoleUser)
	h := NewAdminHandler(db, testGate())

	for _, r := range []models.Resolution{
		{ID: "r1", UserID: a.ID, DocType: models.CategoryResolution},
		{ID: "r2", UserID: b.ID, DocType: models.CategoryResignation},
	} {
		if err := db.Create(&r).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	req := asUser(httptest.NewRequest(http.MethodGet, "/admin/resolutions", nil), admin)
	w := httptest.NewRecorder()
	h.listResolutions(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var list []models.Resolution
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 got %d", len(list))
	}
}
