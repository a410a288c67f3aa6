package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/vallasmx/campaign-analytics-backend/internal/auth"
	"github.com/vallasmx/campaign-analytics-backend/internal/config"
	"github.com/vallasmx/campaign-analytics-backend/internal/controller"
	"github.com/vallasmx/campaign-analytics-backend/internal/db"
	"github.com/vallasmx/campaign-analytics-backend/internal/middleware"
	"github.com/vallasmx/campaign-analytics-backend/internal/repository"
	"github.com/vallasmx/campaign-analytics-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db.Init()
	if err := db.Migrate(db.DB); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	userRepo := &repository.UserRepository{DB: db.DB}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	campaignService := &service.CampaignService{CampaignRepo: campaignRepo}
	authService := &service.AuthService{UserRepo: userRepo, Tokens: tokens}

	if err := authService.EnsureAdminUser(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to bootstrap admin user: %v", err)
	}

	campaignController := &controller.CampaignController{CampaignService: campaignService}
	authController := &controller.AuthController{AuthService: authService}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/", controller.Root)
	r.Get("/health", controller.Health)
	r.Post("/token", authController.Token)

	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/search-by-date", campaignController.SearchByDate)
	r.Get("/campaigns/{name}", campaignController.GetCampaign)
	r.With(middleware.RequireAuth(tokens)).Post("/campaigns", campaignController.CreateCampaign)

	addr := ":" + cfg.Port
	log.Println("server running on", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
