package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/patronacct/draftboard/auth"
	"github.com/patronacct/draftboard/gate"
	"github.com/patronacct/draftboard/internal/models"
	"github.com/patronacct/draftboard/internal/policy"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.ClientProfile{}, &models.Template{}, &models.Resolution{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testGate() *gate.Gate[*models.User] { return policy.New() }

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	u := models.User{
		ID:                uuid.NewString(),
		Email:             email,
		Name:              "Test User",
		Password:          string(hash),
		Role:              role,
		IsActive:          true,
		CanCreateTemplate: true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &u
}

func asUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(auth.WithUserID(r.Context(), u.ID))
}
