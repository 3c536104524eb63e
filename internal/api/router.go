package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openmenuboard/menuboard/internal/auth"
	"github.com/openmenuboard/menuboard/internal/menu"
)

// NewRouter creates and returns the main HTTP router. menuDir is the
// directory the uploaded images are served from; webFS holds the embedded
// display/admin pages and may be nil in tests.
func NewRouter(ctrl *menu.Controller, authSvc *auth.Service, bus EventBus, menuDir string, webFS fs.FS) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(middleware.CleanPath)

	h := &Handlers{ctrl: ctrl, auth: authSvc, events: bus}

	// Public routes: login, the display read path, and the event stream.
	r.Post("/auth/login", h.loginPost)
	r.Get("/auth/verify", h.verifyGet)

	r.Get("/menu/current-display", h.currentDisplay)
	r.Get("/menu/today", h.today)
	r.Get("/menu/display", h.displayDay)
	r.Get("/menu/display/{day}", h.displayDay)
	r.Get("/menu/events", h.sseEvents)

	// Uploaded images
	if menuDir != "" {
		fileServer := http.StripPrefix(menu.UploadsURLPrefix, http.FileServer(http.Dir(menuDir)))
		r.Get(menu.UploadsURLPrefix+"*", fileServer.ServeHTTP)
	}

	// Admin routes (bearer token required)
	r.Group(func(r chi.Router) {
		r.Use(authSvc.Middleware)

		r.Post("/menu/upload/weekly", h.uploadWeekly)
		r.Post("/menu/upload/{day}", h.uploadDaily)
		r.Post("/menu/set-display/{day}", h.setDisplay)
		r.Post("/menu/reset-to-auto", h.resetToAuto)
		r.Delete("/menu/{day}", h.deleteMenu)
		r.Get("/menu/all", h.getAll)
		r.Get("/menu/thumb/{day}", h.menuThumb)
	})

	// Embedded web UI
	if webFS != nil {
		r.Get("/", servePage(webFS, "display.html"))
		r.Get("/admin", servePage(webFS, "admin.html"))
		r.Get("/auth/login", servePage(webFS, "login.html"))
	}

	return r
}

// servePage returns a handler serving one embedded HTML page.
func servePage(webFS fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(webFS, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	}
}

// corsMiddleware adds permissive CORS headers for local network access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
