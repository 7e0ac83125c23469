package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/obraseguro/backend/config"
	"github.com/obraseguro/backend/middleware"
	"github.com/obraseguro/backend/pkg/apperr"
	"github.com/obraseguro/backend/pkg/authsvc"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a gestor or engenheiro and returns a bearer token.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	svc := authsvc.NewService(config.DB)
	user, err := svc.Authenticate(req.Email, req.Password)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if user == nil {
		http.Error(w, "incorrect email or password", http.StatusUnauthorized)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		apperr.Write(w, apperr.Upstream("failed to issue token", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Register creates a new user account.
func Register(w http.ResponseWriter, r *http.Request) {
	var req authsvc.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	svc := authsvc.NewService(config.DB)
	user, err := svc.Register(req)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Me returns the authenticated user.
func Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetUser(r))
}

type updateMeRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

// UpdateMe updates the authenticated user's own profile.
func UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			apperr.Write(w, apperr.Upstream("failed to hash password", err))
			return
		}
		user.PasswordHash = string(hash)
	}
	if err := config.DB.Save(user).Error; err != nil {
		apperr.Write(w, apperr.Upstream("failed to update user", err))
		return
	}
	writeJSON(w, http.StatusOK, user)
}
