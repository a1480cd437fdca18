package rest

import (
	"time"

	"github.com/TayeEmmanu/Habitly/internal/recurrence"
	"github.com/TayeEmmanu/Habitly/internal/server/models"
	"github.com/TayeEmmanu/Habitly/internal/server/services"
)

// dateLayout is the wire format for calendar dates: time of day is never
// transmitted.
const dateLayout = "2006-01-02"

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type habitRequest struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Frequency      string `json:"frequency"`
	CustomInterval int    `json:"customInterval"`
	StartDate      string `json:"startDate"`
	DailyGoal      int    `json:"dailyGoal"`
	AllowMultiple  bool   `json:"allowMultiple"`
}

type completionRequest struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	User         userResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

type tokenPairResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type habitResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	Frequency      string     `json:"frequency"`
	CustomInterval int        `json:"customInterval,omitempty"`
	StartDate      string     `json:"startDate"`
	DailyGoal      int        `json:"dailyGoal"`
	AllowMultiple  bool       `json:"allowMultiple"`
	Archived       bool       `json:"archived"`
	ArchivedAt     *time.Time `json:"archivedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type habitWithStreaksResponse struct {
	habitResponse
	CurrentStreak    int `json:"currentStreak"`
	LongestStreak    int `json:"longestStreak"`
	TotalCompletions int `json:"totalCompletions"`
}

type habitDayStatusResponse struct {
	habitWithStreaksResponse
	Completed       bool `json:"completed"`
	CompletionCount int  `json:"completionCount"`
}

type completionResponse struct {
	ID            string    `json:"id"`
	HabitID       string    `json:"habitId"`
	CompletedDate string    `json:"completedDate"`
	Count         int       `json:"completionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toHabitResponse(h *models.Habit) habitResponse {
	return habitResponse{
		ID:             h.ID,
		Name:           h.Name,
		Category:       h.Category,
		Frequency:      string(h.Frequency),
		CustomInterval: h.CustomInterval,
		StartDate:      h.StartDate.Format(dateLayout),
		DailyGoal:      h.DailyGoal,
		AllowMultiple:  h.AllowMultiple,
		Archived:       h.Archived,
		ArchivedAt:     h.ArchivedAt,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

func toHabitWithStreaksResponse(h *services.HabitWithStreaks) habitWithStreaksResponse {
	return habitWithStreaksResponse{
		habitResponse:    toHabitResponse(h.Habit),
		CurrentStreak:    h.CurrentStreak,
		LongestStreak:    h.LongestStreak,
		TotalCompletions: h.TotalCompletions,
	}
}

func toHabitDayStatusResponse(h *services.HabitDayStatus) habitDayStatusResponse {
	return habitDayStatusResponse{
		habitWithStreaksResponse: toHabitWithStreaksResponse(&h.HabitWithStreaks),
		Completed:                h.Completed,
		CompletionCount:          h.CompletionCount,
	}
}

func toCompletionResponse(c *models.Completion) completionResponse {
	return completionResponse{
		ID:            c.ID,
		HabitID:       c.HabitID,
		CompletedDate: c.CompletedDate.Format(dateLayout),
		Count:         c.Count,
		CreatedAt:     c.CreatedAt,
	}
}

func (r *habitRequest) toModel() (*models.Habit, error) {
	h := &models.Habit{
		Name:           r.Name,
		Category:       r.Category,
		Frequency:      recurrence.Frequency(r.Frequency),
		CustomInterval: r.CustomInterval,
		DailyGoal:      r.DailyGoal,
		AllowMultiple:  r.AllowMultiple,
	}
	if r.StartDate != "" {
		d, err := time.Parse(dateLayout, r.StartDate)
		if err != nil {
			return nil, err
		}
		h.StartDate = d
	}
	return h, nil
}
