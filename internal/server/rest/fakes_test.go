package rest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TayeEmmanu/Habitly/internal/logging"
	"github.com/TayeEmmanu/Habitly/internal/server/auth"
	"github.com/TayeEmmanu/Habitly/internal/server/models"
	"github.com/TayeEmmanu/Habitly/internal/server/services"
)

const (
	testSecret = "test-secret"
	testUserID = "user-1"
)

type fakeUserProvider struct {
	user *models.User
	pair *services.TokenPair
	err  error

	registeredEmail string
	loggedInEmail   string
	loggedOutToken  string
	refreshedToken  string
	forgotEmail     string
	resetToken      string
	resetPassword   string
	updatedName     string
	updatedEmail    string
}

func (f *fakeUserProvider) Register(_ context.Context, name, email, password string) (*models.User, *services.TokenPair, error) {
	f.registeredEmail = email
	return f.user, f.pair, f.err
}

func (f *fakeUserProvider) Login(_ context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	f.loggedInEmail = email
	return f.user, f.pair, f.err
}

func (f *fakeUserProvider) Logout(_ context.Context, refreshToken string) error {
	f.loggedOutToken = refreshToken
	return f.err
}

func (f *fakeUserProvider) RefreshToken(_ context.Context, refreshToken string) (*services.TokenPair, error) {
	f.refreshedToken = refreshToken
	return f.pair, f.err
}

func (f *fakeUserProvider) GetProfile(_ context.Context, userID string) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeUserProvider) UpdateProfile(_ context.Context, userID, name, email string) (*models.User, error) {
	f.updatedName = name
	f.updatedEmail = email
	return f.user, f.err
}

func (f *fakeUserProvider) ForgotPassword(_ context.Context, email string) error {
	f.forgotEmail = email
	return f.err
}

func (f *fakeUserProvider) ResetPassword(_ context.Context, token, newPassword string) error {
	f.resetToken = token
	f.resetPassword = newPassword
	return f.err
}

type fakeHabitProvider struct {
	habit      *models.Habit
	habits     []*models.Habit
	statuses   []*services.HabitDayStatus
	streaks    *services.HabitWithStreaks
	streakList []*services.HabitWithStreaks
	completion *models.Completion
	history    []*models.Completion
	err        error

	createdFor      string
	updated         *models.Habit
	deletedID       string
	archivedID      string
	restoredID      string
	completedID     string
	completedDate   time.Time
	completedCount  int
	decrementedID   string
	uncompletedID   string
	uncompletedDate time.Time
	listByDateAt    time.Time
	includeArchived bool
}

func (f *fakeHabitProvider) Create(_ context.Context, userID string, habit *models.Habit) (*models.Habit, error) {
	f.createdFor = userID
	return f.habit, f.err
}

func (f *fakeHabitProvider) Update(_ context.Context, habit *models.Habit) (*models.Habit, error) {
	f.updated = habit
	return f.habit, f.err
}

func (f *fakeHabitProvider) List(_ context.Context, userID string, includeArchived bool) ([]*models.Habit, error) {
	f.includeArchived = includeArchived
	return f.habits, f.err
}

func (f *fakeHabitProvider) ListByDate(_ context.Context, userID string, date time.Time, includeArchived bool) ([]*services.HabitDayStatus, error) {
	f.listByDateAt = date
	f.includeArchived = includeArchived
	return f.statuses, f.err
}

func (f *fakeHabitProvider) ListWithStreaks(_ context.Context, userID string) ([]*services.HabitWithStreaks, error) {
	return f.streakList, f.err
}

func (f *fakeHabitProvider) GetWithStreaks(_ context.Context, id, userID string) (*services.HabitWithStreaks, error) {
	return f.streaks, f.err
}

func (f *fakeHabitProvider) Archive(_ context.Context, id, userID string) (*models.Habit, error) {
	f.archivedID = id
	return f.habit, f.err
}

func (f *fakeHabitProvider) Restore(_ context.Context, id, userID string) (*models.Habit, error) {
	f.restoredID = id
	return f.habit, f.err
}

func (f *fakeHabitProvider) ListArchived(_ context.Context, userID string) ([]*models.Habit, error) {
	return f.habits, f.err
}

func (f *fakeHabitProvider) Delete(_ context.Context, id, userID string) error {
	f.deletedID = id
	return f.err
}

func (f *fakeHabitProvider) Complete(_ context.Context, id, userID string, date time.Time, count int) (*models.Completion, error) {
	f.completedID = id
	f.completedDate = date
	f.completedCount = count
	return f.completion, f.err
}

func (f *fakeHabitProvider) Decrement(_ context.Context, id, userID string, date time.Time, count int) (*models.Completion, error) {
	f.decrementedID = id
	return f.completion, f.err
}

func (f *fakeHabitProvider) Uncomplete(_ context.Context, id, userID string, date time.Time) error {
	f.uncompletedID = id
	f.uncompletedDate = date
	return f.err
}

func (f *fakeHabitProvider) CompletionHistory(_ context.Context, id, userID string) ([]*models.Completion, error) {
	return f.history, f.err
}

func (f *fakeHabitProvider) ListCompletions(_ context.Context, userID string) ([]*models.Completion, error) {
	return f.history, f.err
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

func newTestServer(t *testing.T, users UserProvider, habits HabitProvider) *httptest.Server {
	t.Helper()
	s := NewServer(":0", nopLogger{}, users, habits, testSecret, []string{"*"})
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(testUserID, []byte(testSecret), time.Minute)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return "Bearer " + token
}
