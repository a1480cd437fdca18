// Package rest exposes the HTTP API: authentication, user profile, habit
// CRUD, completions, and streaks. Handlers depend on narrow service
// interfaces so they can be tested with fakes.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/TayeEmmanu/Habitly/internal/logging"
	"github.com/TayeEmmanu/Habitly/internal/server/models"
	"github.com/TayeEmmanu/Habitly/internal/server/services"
)

// UserProvider is the slice of UserService the handlers consume.
type UserProvider interface {
	Register(ctx context.Context, name, email, password string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, name, email string) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// HabitProvider is the slice of HabitService the handlers consume.
type HabitProvider interface {
	Create(ctx context.Context, userID string, habit *models.Habit) (*models.Habit, error)
	Update(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	List(ctx context.Context, userID string, includeArchived bool) ([]*models.Habit, error)
	ListByDate(ctx context.Context, userID string, date time.Time, includeArchived bool) ([]*services.HabitDayStatus, error)
	ListWithStreaks(ctx context.Context, userID string) ([]*services.HabitWithStreaks, error)
	GetWithStreaks(ctx context.Context, id, userID string) (*services.HabitWithStreaks, error)
	Archive(ctx context.Context, id, userID string) (*models.Habit, error)
	Restore(ctx context.Context, id, userID string) (*models.Habit, error)
	ListArchived(ctx context.Context, userID string) ([]*models.Habit, error)
	Delete(ctx context.Context, id, userID string) error
	Complete(ctx context.Context, id, userID string, date time.Time, count int) (*models.Completion, error)
	Decrement(ctx context.Context, id, userID string, date time.Time, count int) (*models.Completion, error)
	Uncomplete(ctx context.Context, id, userID string, date time.Time) error
	CompletionHistory(ctx context.Context, id, userID string) ([]*models.Completion, error)
	ListCompletions(ctx context.Context, userID string) ([]*models.Completion, error)
}

type Server struct {
	address        string
	logger         logging.Logger
	users          UserProvider
	habits         HabitProvider
	jwtSecret      []byte
	allowedOrigins []string
}

func NewServer(address string, l logging.Logger, us UserProvider, hs HabitProvider, secretKey string, allowedOrigins []string) *Server {
	return &Server{
		address:        address,
		logger:         l.With("module", "rest_server"),
		users:          us,
		habits:         hs,
		jwtSecret:      []byte(secretKey),
		allowedOrigins: allowedOrigins,
	}
}

// Router assembles the route tree. Split out from Run so tests can mount it
// on httptest.Server.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/forgot-password", s.handleForgotPassword)
		r.Post("/reset-password", s.handleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/me", s.handleCurrentUser)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handleUpdateProfile)
	})

	r.Route("/habits", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/", s.handleCreateHabit)
		r.Get("/", s.handleListHabits)
		r.Get("/by-date", s.handleListHabitsByDate)
		r.Get("/archived", s.handleListArchivedHabits)
		r.Get("/with-streaks", s.handleListHabitsWithStreaks)
		r.Get("/completions", s.handleListCompletions)
		r.Put("/{id}", s.handleUpdateHabit)
		r.Delete("/{id}", s.handleDeleteHabit)
		r.Get("/{id}/with-streaks", s.handleHabitWithStreaks)
		r.Get("/{id}/completions", s.handleCompletionHistory)
		r.Post("/{id}/complete", s.handleCompleteHabit)
		r.Post("/{id}/decrement", s.handleDecrementHabit)
		r.Post("/{id}/uncomplete", s.handleUncompleteHabit)
		r.Post("/{id}/archive", s.handleArchiveHabit)
		r.Post("/{id}/restore", s.handleRestoreHabit)
	})

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Message: "Server is running"})
}
