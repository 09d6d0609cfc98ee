package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/patronacct/draftboard/auth"
	"github.com/patronacct/draftboard/httpx"
	"github.com/patronacct/draftboard/internal/models"
	"github.com/patronacct/draftboard/validation"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/auth/signup", h.signup)
	mux.HandleFunc("/auth/login", h.login)
	mux.HandleFunc("/auth/logout", h.logout)
}

type userResponse struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	IsActive          bool   `json:"isActive"`
	CanCreateTemplate bool   `json:"canCreateTemplate"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role,
		IsActive: u.IsActive, CanCreateTemplate: u.CanCreateTemplate,
	}
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	var input struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	v := validation.Violations{}
	validation.Email("email", input.Email, v)
	validation.Required("name", input.Name, v)
	if len(input.Password) < 8 {
		v["password"] = "too_short"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "hash_failed", nil)
		return
	}
	user := models.User{
		ID:                uuid.NewString(),
		Email:             input.Email,
		Name:              strings.TrimSpace(input.Name),
		Password:          string(hash),
		Role:              models.RoleUser,
		IsActive:          true,
		CanCreateTemplate: true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			httpx.JSONError(w, http.StatusConflict, "email_already_registered", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusCreated, toUserResponse(&user))
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	if err := h.DB.First(&user, "email = ?", input.Email).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	// Deactivated accounts keep their data but cannot start a session.
	if !user.IsActive {
		httpx.JSONError(w, http.StatusForbidden, "account_disabled", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, toUserResponse(&user))
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the authenticated user's profile. Registered behind RequireAuth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	user, ok := currentUser(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}
