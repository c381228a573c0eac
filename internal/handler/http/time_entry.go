package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

type TimeEntryHandler interface {
	ListByDate(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Retroactive(w http.ResponseWriter, r *http.Request)
	GetEntry(w http.ResponseWriter, r *http.Request)
	EditEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
}

type timeEntryHandlerImpl struct {
	timeEntryService timeentry.TimeEntryService
}

func NewTimeEntryHandler(timeEntryService timeentry.TimeEntryService) TimeEntryHandler {
	return &timeEntryHandlerImpl{timeEntryService: timeEntryService}
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getOptionalQueryParam returns nil when key is absent or empty
func getOptionalQueryParam(r *http.Request, key string) *string {
	if val := r.URL.Query().Get(key); val != "" {
		return &val
	}
	return nil
}

// ListByDate handles GET /time-entries?date=YYYY-MM-DD (today when omitted)
func (h *timeEntryHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeEntryService.ListByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History handles GET /time-entries/history
func (h *timeEntryHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := timeentry.HistoryFilter{
		EmployeeID: getOptionalQueryParam(r, "employee_id"),
		StartDate:  getOptionalQueryParam(r, "start_date"),
		EndDate:    getOptionalQueryParam(r, "end_date"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 50),
	}

	result, err := h.timeEntryService.ListHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Retroactive handles POST /time-entries/retroactive
func (h *timeEntryHandlerImpl) Retroactive(w http.ResponseWriter, r *http.Request) {
	var req timeentry.RetroactiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timeEntryService.UpsertRetroactive(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry saved", result)
}

// GetEntry handles GET /time-entries/{id}
func (h *timeEntryHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeEntryService.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EditEntry handles PUT /time-entries/{id}
func (h *timeEntryHandlerImpl) EditEntry(w http.ResponseWriter, r *http.Request) {
	var req timeentry.EditEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.timeEntryService.EditEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry updated successfully", result)
}

// DeleteEntry handles DELETE /time-entries/{id}
func (h *timeEntryHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.timeEntryService.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry deleted successfully", nil)
}
