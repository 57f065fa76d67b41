package handlers

import (
	"context"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/rohits-web03/folio/internal/api/middleware"
	"github.com/rohits-web03/folio/internal/api/services"
	"github.com/rohits-web03/folio/internal/models"
	"github.com/rohits-web03/folio/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

const (
	stateCookie  = "oauth_state"
	localAdminID = "local:admin"
)

func (h *Handler) cookie(name, value string, maxAge int) *http.Cookie {
	// SameSite cookie policy
	sameSite := http.SameSiteLaxMode
	if h.SecureCookies {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.SecureCookies,
		HttpOnly: true,
		SameSite: sameSite,
	}
}

// startSession creates a session for the user and sets the token cookie.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID string) error {
	session, err := h.Sessions.Create(r.Context(), userID, h.SessionTTL)
	if err != nil {
		return err
	}
	token, err := h.Auth.Tokens.Issue(userID, session.SID, session.Expire)
	if err != nil {
		return err
	}
	http.SetCookie(w, h.cookie(middleware.TokenCookie, token, int(h.SessionTTL.Seconds())))
	return nil
}

// GET /api/login
// GoogleLogin godoc
// @Summary Start Google sign-in
// @Tags Auth
// @Param returnTo query string false "Path to return to after login"
// @Success 307
// @Failure 503 {object} utils.Payload "Google login is not configured"
// @Router /api/login [get]
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.Google == nil {
		utils.Error(w, http.StatusServiceUnavailable, "Google login is not configured")
		return
	}

	state, err := encodeState(loginState{ReturnTo: safeReturnTo(r.URL.Query().Get("returnTo"))})
	if err != nil {
		http.Error(w, "Failed to generate OAuth state", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, h.cookie(stateCookie, state, int((10 * time.Minute).Seconds())))

	http.Redirect(w, r, h.Google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GET /api/callback
// GoogleCallback godoc
// @Summary Finish Google sign-in
// @Description Exchanges the code, stores the user and starts a session.
// @Tags Auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 307
// @Failure 400 {string} string "Invalid OAuth state"
// @Router /api/callback [get]
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.Google == nil {
		utils.Error(w, http.StatusServiceUnavailable, "Google login is not configured")
		return
	}

	state := r.FormValue("state")
	expected, err := r.Cookie(stateCookie)
	if err != nil || expected.Value == "" || expected.Value != state {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, h.cookie(stateCookie, "", -1))

	login, err := decodeState(state)
	if err != nil {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	token, err := h.Google.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Println("[auth] code exchange failed:", err)
		http.Error(w, "Code exchange failed", http.StatusInternalServerError)
		return
	}

	fetch := h.FetchGoogleUser
	if fetch == nil {
		fetch = services.FetchGoogleUser
	}
	googleUser, err := fetch(r.Context(), h.Google, token)
	if err != nil {
		log.Println("[auth] user info:", err)
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}

	upsert := h.googleUpsert(googleUser)
	upsert.ID, _, err = h.accountFor(r.Context(), upsert.ID, upsert.Email)
	if err != nil {
		log.Println("[auth] lookup user:", err)
		http.Error(w, "Failed to store user", http.StatusInternalServerError)
		return
	}
	user, err := h.Store.UpsertUser(r.Context(), upsert)
	if err != nil {
		log.Println("[auth] upsert user:", err)
		http.Error(w, "Failed to store user", http.StatusInternalServerError)
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		log.Println("[auth] start session:", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, login.ReturnTo, http.StatusTemporaryRedirect)
}

// accountFor returns the id of the user that already owns email, or fallback
// when nobody does. Signing in by password and by Google with the same email
// lands on one row instead of tripping the unique email index.
func (h *Handler) accountFor(ctx context.Context, fallback string, email *string) (string, bool, error) {
	if email == nil {
		return fallback, false, nil
	}
	existing, err := h.Store.GetUserByEmail(ctx, *email)
	if err != nil {
		return "", false, err
	}
	if existing == nil || existing.ID == fallback {
		return fallback, false, nil
	}
	return existing.ID, true, nil
}

// googleUpsert maps a Google profile onto the user row. Admin status is only
// ever granted here, never revoked, so manual promotions survive logins.
func (h *Handler) googleUpsert(g services.GoogleUser) models.UpsertUser {
	input := models.UpsertUser{ID: "google:" + g.ID}
	if g.Email != "" {
		email := strings.ToLower(g.Email)
		input.Email = &email
		if g.VerifiedEmail && slices.Contains(h.AdminEmails, email) {
			admin := true
			input.IsAdmin = &admin
		}
	}
	if g.GivenName != "" {
		input.FirstName = &g.GivenName
	}
	if g.FamilyName != "" {
		input.LastName = &g.FamilyName
	}
	if g.Picture != "" {
		input.ProfileImageURL = &g.Picture
	}
	return input
}

// POST /api/auth/login
// PasswordLogin godoc
// @Summary Sign in as the local admin
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body object{password=string} true "Password"
// @Success 200 {object} utils.Payload{data=models.User}
// @Failure 401 {object} utils.Payload "Invalid credentials"
// @Failure 404 {object} utils.Payload "Password login is disabled"
// @Router /api/auth/login [post]
func (h *Handler) PasswordLogin(w http.ResponseWriter, r *http.Request) {
	if h.AdminPasswordHash == "" {
		utils.Error(w, http.StatusNotFound, "Password login is disabled")
		return
	}

	var input struct {
		Password string `json:"password"`
	}
	if err := utils.DecodeJSON(w, r, &input); err != nil || input.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.AdminPasswordHash), []byte(input.Password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	admin := true
	upsert := models.UpsertUser{ID: localAdminID, IsAdmin: &admin}
	if h.AdminEmail != "" {
		email := strings.ToLower(h.AdminEmail)
		upsert.Email = &email
	}
	id, linked, err := h.accountFor(r.Context(), localAdminID, upsert.Email)
	if err != nil {
		fail(w, err, "store user")
		return
	}
	upsert.ID = id
	if !linked {
		// Keep the profile name of a linked Google account.
		firstName := "Admin"
		upsert.FirstName = &firstName
	}
	user, err := h.Store.UpsertUser(r.Context(), upsert)
	if err != nil {
		fail(w, err, "store user")
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		fail(w, err, "start session")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Login successful",
		Data:    user,
	})
}

// GET /api/auth/user
// CurrentUser godoc
// @Summary Get the signed-in user
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload{data=models.User}
// @Failure 401 {object} utils.Payload
// @Router /api/auth/user [get]
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "User retrieved successfully",
		Data:    user,
	})
}

// GET /api/logout
// Logout godoc
// @Summary Sign out
// @Description Ends the current session and clears the cookie.
// @Tags Auth
// @Success 307
// @Router /api/logout [get]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := h.Auth.Claims(r); claims != nil {
		if err := h.Sessions.Delete(r.Context(), claims.ID); err != nil {
			log.Println("[auth] delete session:", err)
		}
	}

	// maxAge < 0 deletes the cookie
	http.SetCookie(w, h.cookie(middleware.TokenCookie, "", -1))

	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// GoogleUserFetcher loads the Google profile for an exchanged token.
type GoogleUserFetcher func(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (services.GoogleUser, error)
