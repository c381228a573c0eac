package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

// ClockHandler serves the live clock flow of one employee. The employee is
// always the {employeeID} URL parameter.
type ClockHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	InitiateClockOut(w http.ResponseWriter, r *http.Request)
	ConfirmClockOut(w http.ResponseWriter, r *http.Request)
}

type clockHandlerImpl struct {
	timeEntryService timeentry.TimeEntryService
}

func NewClockHandler(timeEntryService timeentry.TimeEntryService) ClockHandler {
	return &clockHandlerImpl{timeEntryService: timeEntryService}
}

// Status handles GET /clock/{employeeID}
func (h *clockHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeEntryService.GetToday(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClockIn handles POST /clock/{employeeID}/in
func (h *clockHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	req := timeentry.ClockInRequest{EmployeeID: chi.URLParam(r, "employeeID")}

	result, err := h.timeEntryService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in", result)
}

// StartBreak handles POST /clock/{employeeID}/break/start
func (h *clockHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	req := timeentry.BreakRequest{EmployeeID: chi.URLParam(r, "employeeID")}

	result, err := h.timeEntryService.StartBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EndBreak handles POST /clock/{employeeID}/break/end
func (h *clockHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	req := timeentry.BreakRequest{EmployeeID: chi.URLParam(r, "employeeID")}

	result, err := h.timeEntryService.EndBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// InitiateClockOut handles POST /clock/{employeeID}/out
func (h *clockHandlerImpl) InitiateClockOut(w http.ResponseWriter, r *http.Request) {
	req := timeentry.InitiateClockOutRequest{EmployeeID: chi.URLParam(r, "employeeID")}

	result, err := h.timeEntryService.InitiateClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ConfirmClockOut handles POST /clock/{employeeID}/out/confirm
func (h *clockHandlerImpl) ConfirmClockOut(w http.ResponseWriter, r *http.Request) {
	var req timeentry.ConfirmClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.timeEntryService.ConfirmClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", result)
}
