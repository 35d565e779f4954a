package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AnshRaj112/portfolio-admin/internal/middleware"
	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"go.uber.org/zap"
)

// AdminSigninRequest accepts a username or an email in Username.
type AdminSigninRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// AdminSigninResponse represents the response after admin signin
type AdminSigninResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Admin   map[string]interface{} `json:"admin,omitempty"`
	Token   string                 `json:"token,omitempty"`
}

func adminView(a *models.Admin) map[string]interface{} {
	return map[string]interface{}{
		"id":         a.ID.String(),
		"username":   a.Username,
		"email":      a.Email,
		"created_at": a.CreatedAt,
	}
}

// AdminSignin handles admin login
func AdminSignin(w http.ResponseWriter, r *http.Request) {
	var req AdminSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AdminSigninResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, AdminSigninResponse{
			Success: false,
			Message: "Username and password are required",
		})
		return
	}

	token, admin, err := adminAuth.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		status, resp := errorResponse(r, err)
		writeJSON(w, status, AdminSigninResponse{Success: false, Message: resp.Error})
		return
	}

	logger.Info("admin signed in", zap.String("username", admin.Username))
	writeJSON(w, http.StatusOK, AdminSigninResponse{
		Success: true,
		Message: "Admin signed in successfully",
		Admin:   adminView(admin),
		Token:   token,
	})
}

// AdminSignout invalidates the caller's session.
func AdminSignout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r.Header.Get("Authorization"))
	if err := adminAuth.SignOut(r.Context(), token); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Signed out")
}

// AdminMe returns the admin behind the session.
func AdminMe(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "not signed in")
		return
	}
	writeData(w, adminView(admin))
}
