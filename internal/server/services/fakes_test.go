package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/TayeEmmanu/Habitly/internal/common"
	"github.com/TayeEmmanu/Habitly/internal/dbx"
	"github.com/TayeEmmanu/Habitly/internal/server/models"
	completionsrepo "github.com/TayeEmmanu/Habitly/internal/server/repositories/completions"
	habitsrepo "github.com/TayeEmmanu/Habitly/internal/server/repositories/habits"
	refreshtokensrepo "github.com/TayeEmmanu/Habitly/internal/server/repositories/refreshtokens"
	resettokensrepo "github.com/TayeEmmanu/Habitly/internal/server/repositories/resettokens"
	usersrepo "github.com/TayeEmmanu/Habitly/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmail map[string]*models.User
	byID    map[string]*models.User

	emailTaken bool

	updateProfileOut *models.User
	updateProfileErr error

	updatedPasswordHash string
	updatePasswordErr   error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-new"
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) EmailTaken(ctx context.Context, email string, excludeUserID string) (bool, error) {
	return f.emailTaken, nil
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, id, name, email string) (*models.User, error) {
	if f.updateProfileErr != nil {
		return nil, f.updateProfileErr
	}
	return f.updateProfileOut, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if f.updatePasswordErr != nil {
		return f.updatePasswordErr
	}
	f.updatedPasswordHash = passwordHash
	return nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	created []string
	delErr  error
	deleted []string

	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeResetRepo struct {
	createErr error
	created   []string

	findOut *models.PasswordResetToken
	findErr error

	markedUsed []string
	markErr    error
}

func (f *fakeResetRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeResetRepo) Find(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeResetRepo) MarkUsed(ctx context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedUsed = append(f.markedUsed, id)
	return nil
}

type fakeHabitsRepo struct {
	habits map[string]*models.Habit

	createErr error
	updated   *models.Habit
	updateOut *models.Habit
	updateErr error

	listOut []*models.Habit
	listErr error

	archivedOut []*models.Habit

	setArchivedOut *models.Habit
	setArchivedErr error

	deleteErr error
	deleted   []string
}

func (f *fakeHabitsRepo) Create(ctx context.Context, h *models.Habit) (*models.Habit, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	h.ID = "h-new"
	return h, nil
}

func (f *fakeHabitsRepo) Update(ctx context.Context, h *models.Habit) (*models.Habit, error) {
	f.updated = h
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeHabitsRepo) GetByID(ctx context.Context, id, userID string) (*models.Habit, error) {
	if h, ok := f.habits[id]; ok && h.UserID == userID {
		return h, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeHabitsRepo) ListByUser(ctx context.Context, userID string, includeArchived bool) ([]*models.Habit, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeHabitsRepo) ListArchived(ctx context.Context, userID string) ([]*models.Habit, error) {
	return f.archivedOut, nil
}

func (f *fakeHabitsRepo) SetArchived(ctx context.Context, id, userID string, archived bool) (*models.Habit, error) {
	if f.setArchivedErr != nil {
		return nil, f.setArchivedErr
	}
	return f.setArchivedOut, nil
}

func (f *fakeHabitsRepo) Delete(ctx context.Context, id, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCompletionsRepo struct {
	upsertOut *models.Completion
	upsertErr error
	upserts   []int

	getOut *models.Completion
	getErr error

	setCountOut *models.Completion
	setCountErr error
	setCounts   []int

	deleteErr error
	deleted   []time.Time

	byHabit    []*models.Completion
	byHabitErr error

	byUser []*models.Completion

	lastDate *time.Time
	lastErr  error

	countForDate map[string]int
}

func (f *fakeCompletionsRepo) Upsert(ctx context.Context, habitID string, date time.Time, count int) (*models.Completion, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserts = append(f.upserts, count)
	if f.upsertOut != nil {
		return f.upsertOut, nil
	}
	return &models.Completion{ID: "c-new", HabitID: habitID, CompletedDate: date, Count: count}, nil
}

func (f *fakeCompletionsRepo) Get(ctx context.Context, habitID string, date time.Time) (*models.Completion, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeCompletionsRepo) SetCount(ctx context.Context, habitID string, date time.Time, count int) (*models.Completion, error) {
	if f.setCountErr != nil {
		return nil, f.setCountErr
	}
	f.setCounts = append(f.setCounts, count)
	return f.setCountOut, nil
}

func (f *fakeCompletionsRepo) Delete(ctx context.Context, habitID string, date time.Time) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, date)
	return nil
}

func (f *fakeCompletionsRepo) ListByHabit(ctx context.Context, habitID string) ([]*models.Completion, error) {
	if f.byHabitErr != nil {
		return nil, f.byHabitErr
	}
	return f.byHabit, nil
}

func (f *fakeCompletionsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Completion, error) {
	return f.byUser, nil
}

func (f *fakeCompletionsRepo) LastDate(ctx context.Context, habitID string) (*time.Time, error) {
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	return f.lastDate, nil
}

func (f *fakeCompletionsRepo) CountForDate(ctx context.Context, habitID string, date time.Time) (int, error) {
	return f.countForDate[habitID], nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	p  *fakeResetRepo
	h  *fakeHabitsRepo
	c  *fakeCompletionsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
func (m *fakeRepoManager) ResetTokens(db dbx.DBTX) resettokensrepo.Repository { return m.p }
func (m *fakeRepoManager) Habits(db dbx.DBTX) habitsrepo.Repository           { return m.h }
func (m *fakeRepoManager) Completions(db dbx.DBTX) completionsrepo.Repository { return m.c }

// fakeMailer records password reset sends.
type fakeMailer struct {
	sent    []string // recipient addresses
	urls    []string
	sendErr error
}

func (f *fakeMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	f.urls = append(f.urls, resetURL)
	return nil
}
