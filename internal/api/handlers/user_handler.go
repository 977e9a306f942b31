// filepath: internal/api/handlers/user_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
	"net/http"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Log in
// @Description Checks the credentials. The response never contains the password.
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} models.Envelope{data=models.UserPayload}
// @Failure 400 {object} models.Envelope "Email and password are required"
// @Failure 401 {object} models.Envelope "Incorrect password"
// @Failure 404 {object} models.Envelope "User does not exist"
// @Router /login [post]
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.User.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logging.FromContext(r.Context()).Debugf("Login: failed for '%s': %v", req.Email, err)
		h.Auditor.Log(r.Context(), "user.login_failed", req.Email, "User", nil)
		respondWithServiceError(w, r, err, "An error occurred during login")
		return
	}

	h.Auditor.Log(r.Context(), "user.login", user.Email, fmt.Sprintf("User:%s", user.Email), nil)
	respondWithData(w, http.StatusOK, "Login successful", models.UserPayload{User: *user})
}

// @Summary Register
// @Tags Users
// @Accept json
// @Produce json
// @Param account body RegisterRequest true "Name, email and password"
// @Success 201 {object} models.Envelope{data=models.UserPayload}
// @Failure 400 {object} models.Envelope "Name, email, and password are required"
// @Failure 409 {object} models.Envelope "Email already exists"
// @Router /register [post]
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.User.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, r, err, "An error occurred during registration")
		return
	}

	h.Auditor.Log(r.Context(), "user.register", user.Email, fmt.Sprintf("User:%s", user.Email), map[string]interface{}{
		"name": user.Name,
	})
	respondWithData(w, http.StatusCreated, "User registered successfully", models.UserPayload{User: *user})
}
