package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/rohits-web03/folio/internal/api/middleware"
	"github.com/rohits-web03/folio/internal/models"
	"github.com/rohits-web03/folio/internal/repositories"
	"github.com/rohits-web03/folio/internal/utils"
	"golang.org/x/oauth2"
)

type SessionManager interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (*models.Session, error)
	Delete(ctx context.Context, sid string) error
}

type Options struct {
	SessionTTL    time.Duration
	SecureCookies bool
	// Verified Google emails promoted to admin on login. Lower case.
	AdminEmails []string
	// Password login for the local admin account; disabled when the hash is empty.
	AdminEmail        string
	AdminPasswordHash string
}

// Handler serves the HTTP API on top of Storage.
type Handler struct {
	Store    repositories.Storage
	Sessions SessionManager
	Auth     *middleware.Auth
	Images   repositories.ImageStore // nil disables uploads
	Google   *oauth2.Config          // nil disables Google login
	// FetchGoogleUser defaults to services.FetchGoogleUser.
	FetchGoogleUser GoogleUserFetcher
	Options
}

// fail maps a storage error to a response. Validation errors are the
// caller's fault; anything else is logged and hidden.
func fail(w http.ResponseWriter, err error, action string) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: ve.Message,
			Data:    map[string]any{"fields": ve.Fields},
		})
		return
	}
	log.Printf("[handlers] %s: %v", action, err)
	utils.Error(w, http.StatusInternalServerError, "Failed to "+action)
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := utils.ParseID(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
