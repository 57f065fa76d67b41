package api

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/rohits-web03/folio/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rohits-web03/folio/internal/api/handlers"
	"github.com/rohits-web03/folio/internal/api/middleware"
	"github.com/rs/cors"
)

func SetupRouter(h *handlers.Handler, corsOptions cors.Options) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(corsOptions)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mainMux.HandleFunc("GET /api/projects", h.GetProjects)
	mainMux.HandleFunc("GET /api/projects/{id}", h.GetProject)
	mainMux.HandleFunc("POST /api/contact", h.SubmitContact)

	mainMux.HandleFunc("GET /api/login", h.GoogleLogin)
	mainMux.HandleFunc("GET /api/callback", h.GoogleCallback)
	mainMux.HandleFunc("GET /api/logout", h.Logout)

	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /login", h.PasswordLogin)
	authMux.Handle("GET /user", h.Auth.Authenticate(http.HandlerFunc(h.CurrentUser)))

	mainMux.Handle("/api/auth/",
		http.StripPrefix("/api/auth", authMux),
	)

	// ---------- ADMIN ROUTES ----------
	adminMux := http.NewServeMux()

	adminMux.HandleFunc("POST /projects", h.CreateProject)
	adminMux.HandleFunc("PUT /projects/{id}", h.UpdateProject)
	adminMux.HandleFunc("DELETE /projects/{id}", h.DeleteProject)

	adminMux.HandleFunc("GET /messages", h.GetMessages)
	adminMux.HandleFunc("GET /messages/{id}", h.GetMessage)
	adminMux.HandleFunc("PATCH /messages/{id}/read", h.MarkMessageAsRead)
	adminMux.HandleFunc("DELETE /messages/{id}", h.DeleteMessage)

	adminMux.HandleFunc("POST /uploads/presign", h.PresignImageUpload)
	adminMux.HandleFunc("GET /uploads/{key...}", h.ImageUploadStatus)

	mainMux.Handle("/api/admin/",
		http.StripPrefix(
			"/api/admin",
			h.Auth.RequireAdmin(adminMux),
		),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
