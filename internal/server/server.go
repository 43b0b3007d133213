package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/zgrigoryan/Meal-Planner/internal/config"
	"github.com/zgrigoryan/Meal-Planner/internal/handlers"
	"github.com/zgrigoryan/Meal-Planner/internal/middleware"
	"github.com/zgrigoryan/Meal-Planner/internal/repository"
	"github.com/zgrigoryan/Meal-Planner/internal/services"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(database *sql.DB, cfg config.Config) *Server {
	mealRepo := repository.NewMealRepository(database)
	planRepo := repository.NewPlanRepository(database)

	catalog := services.NewMealCatalog(mealRepo)
	planner := services.NewWeeklyPlanner(catalog, planRepo)
	shopping := services.NewShoppingService(planRepo, catalog)

	return NewWithServices(cfg, catalog, planner, shopping)
}

// NewWithServices builds the router around existing services so the HTTP
// surface and an interactive session can share one planner.
func NewWithServices(cfg config.Config, catalog *services.MealCatalog, planner *services.WeeklyPlanner, shopping *services.ShoppingService) *Server {
	mealHandler := handlers.NewMealHandler(catalog)
	planHandler := handlers.NewPlanHandler(planner)
	shoppingHandler := handlers.NewShoppingHandler(shopping)
	icalHandler := handlers.NewICalHandler(planner)

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Get("/api/meals", mealHandler.List)
	router.Get("/api/meals/{id}", mealHandler.Get)
	router.Get("/api/plan", planHandler.Current)
	router.Get("/api/plan.ics", icalHandler.Feed)
	router.Get("/api/plan/status", planHandler.Status)
	router.Get("/api/plan/options", planHandler.Options)
	router.Get("/api/plan/draft", planHandler.Draft)
	router.Get("/api/shopping-list", shoppingHandler.List)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAPIToken(cfg.APIToken))

		r.Post("/api/meals", mealHandler.Create)
		r.Post("/api/plan", planHandler.Replace)
		r.Post("/api/plan/draft", planHandler.BeginDraft)
		r.Put("/api/plan/draft/{day}/{category}", planHandler.AssignSlot)
		r.Post("/api/plan/draft/commit", planHandler.CommitDraft)
	})

	return &Server{
		router: router,
		config: cfg,
	}
}

func (server *Server) Handler() http.Handler {
	return server.router
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}
