package rest

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	habit, err := req.toModel()
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid start date")
		return
	}

	created, err := s.habits.Create(r.Context(), userIDFromContext(r.Context()), habit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHabitResponse(created))
}

func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	habit, err := req.toModel()
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid start date")
		return
	}
	habit.ID = chi.URLParam(r, "id")
	habit.UserID = userIDFromContext(r.Context())

	updated, err := s.habits.Update(r.Context(), habit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHabitResponse(updated))
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	habits, err := s.habits.List(r.Context(), userIDFromContext(r.Context()), includeArchived)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]habitResponse, 0, len(habits))
	for _, h := range habits {
		out = append(out, toHabitResponse(h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListHabitsByDate(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid date")
		return
	}
	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}
	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	statuses, err := s.habits.ListByDate(r.Context(), userIDFromContext(r.Context()), date, includeArchived)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]habitDayStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, toHabitDayStatusResponse(st))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListArchivedHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.habits.ListArchived(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]habitResponse, 0, len(habits))
	for _, h := range habits {
		out = append(out, toHabitResponse(h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListHabitsWithStreaks(w http.ResponseWriter, r *http.Request) {
	habits, err := s.habits.ListWithStreaks(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]habitWithStreaksResponse, 0, len(habits))
	for _, h := range habits {
		out = append(out, toHabitWithStreaksResponse(h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHabitWithStreaks(w http.ResponseWriter, r *http.Request) {
	habit, err := s.habits.GetWithStreaks(r.Context(), chi.URLParam(r, "id"), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHabitWithStreaksResponse(habit))
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.habits.Delete(r.Context(), chi.URLParam(r, "id"), userIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Habit deleted successfully"})
}

func (s *Server) handleArchiveHabit(w http.ResponseWriter, r *http.Request) {
	habit, err := s.habits.Archive(r.Context(), chi.URLParam(r, "id"), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHabitResponse(habit))
}

func (s *Server) handleRestoreHabit(w http.ResponseWriter, r *http.Request) {
	habit, err := s.habits.Restore(r.Context(), chi.URLParam(r, "id"), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHabitResponse(habit))
}

func (s *Server) handleCompleteHabit(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCompletionRequest(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid date")
		return
	}

	completion, err := s.habits.Complete(r.Context(), chi.URLParam(r, "id"), userIDFromContext(r.Context()), date, req.Count)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCompletionResponse(completion))
}

func (s *Server) handleDecrementHabit(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCompletionRequest(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid date")
		return
	}

	completion, err := s.habits.Decrement(r.Context(), chi.URLParam(r, "id"), userIDFromContext(r.Context()), date, req.Count)
	if err != nil {
		writeError(w, err)
		return
	}

	if completion == nil {
		// Count reached zero; the completion row was removed.
		writeJSON(w, http.StatusOK, messageResponse{Message: "Completion removed"})
		return
	}
	writeJSON(w, http.StatusOK, toCompletionResponse(completion))
}

func (s *Server) handleUncompleteHabit(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCompletionRequest(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid date")
		return
	}

	if err := s.habits.Uncomplete(r.Context(), chi.URLParam(r, "id"), userIDFromContext(r.Context()), date); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Completion removed"})
}

func (s *Server) handleCompletionHistory(w http.ResponseWriter, r *http.Request) {
	completions, err := s.habits.CompletionHistory(r.Context(), chi.URLParam(r, "id"), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]completionResponse, 0, len(completions))
	for _, c := range completions {
		out = append(out, toCompletionResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListCompletions(w http.ResponseWriter, r *http.Request) {
	completions, err := s.habits.ListCompletions(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]completionResponse, 0, len(completions))
	for _, c := range completions {
		out = append(out, toCompletionResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// decodeCompletionRequest tolerates an empty body: date and count both have
// service-side defaults.
func decodeCompletionRequest(r *http.Request) (completionRequest, error) {
	var req completionRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		return completionRequest{}, err
	}
	return req, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func queryDate(r *http.Request, name string) (time.Time, error) {
	return parseOptionalDate(r.URL.Query().Get(name))
}
