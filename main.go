package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/TripleGChat/TG-Backend/internal/auth"
	"github.com/TripleGChat/TG-Backend/internal/chat"
	"github.com/TripleGChat/TG-Backend/internal/config"
	"github.com/TripleGChat/TG-Backend/internal/db"
	"github.com/TripleGChat/TG-Backend/internal/gateway"
	"github.com/TripleGChat/TG-Backend/internal/middleware"
	"github.com/TripleGChat/TG-Backend/internal/web"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

// newRouter assembles the full HTTP surface. Every route the SPA doesn't own
// lives under /api or /health; everything else falls through to the static
// bundle with its index.html fallback, so the client loads at the site root.
func newRouter(cfg *config.Config, authService *auth.Service, gatewayService *gateway.Service, chatService *chat.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.CORSMiddleware)
	r.Get("/health", HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.RateLimitMiddleware(rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst)).
			Mount("/auth", authService.SetupRoutes())

		if cfg.RequireDBAuth {
			r.With(middleware.BearerAuthMiddleware(authService)).
				Mount("/db", gatewayService.SetupRoutes())
		} else {
			r.Mount("/db", gatewayService.SetupRoutes())
		}

		r.Mount("/chat", chatService.SetupRoutes())
	})

	r.NotFound(web.SPAHandler(cfg.StaticDir).ServeHTTP)

	return r
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	if err := db.Connect(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	auth.Init()
	authService := auth.NewService(&auth.GormStore{DB: db.DB}, []byte(cfg.JWTSecret))
	gatewayService := &gateway.Service{DB: db.SQL}
	chatService := chat.NewService(cfg.ChatUpstream, cfg.ChatAPIKey)

	r := newRouter(cfg, authService, gatewayService, chatService)

	fmt.Println("Server listening on port :" + cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
