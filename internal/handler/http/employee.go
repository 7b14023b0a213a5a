package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/handler/http/response"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/validator"
	employeeservice "github.com/paytrack/paytrack-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)

	ListScheduleHistory(w http.ResponseWriter, r *http.Request)
	GetDailyHours(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService *employeeservice.EmployeeServiceImpl
}

func NewEmployeeHandler(employeeService *employeeservice.EmployeeServiceImpl) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", toEmployeeResponse(emp))
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	emp, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toEmployeeResponse(emp))
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	employees, err := h.employeeService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toEmployeeResponse(emp))
	}
	response.Success(w, out)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.employeeService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", toEmployeeResponse(emp))
}

// ListScheduleHistory implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListScheduleHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	entries, err := h.employeeService.ListScheduleHistory(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	type entryResponse struct {
		ID            string  `json:"id"`
		EffectiveFrom string  `json:"effective_from"`
		DailyHours    float64 `json:"daily_hours"`
	}
	out := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entryResponse{
			ID:            entry.ID,
			EffectiveFrom: entry.EffectiveFrom.Format("2006-01-02"),
			DailyHours:    entry.DailyHours,
		})
	}
	response.Success(w, out)
}

// GetDailyHours implements EmployeeHandler. It answers what the agreed daily
// hours were on a given date, not what they are today.
func (h *EmployeeHandlerImpl) GetDailyHours(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	date, ok := validator.IsValidDate(r.URL.Query().Get("date"))
	if !ok {
		response.BadRequest(w, "date must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	hours, err := h.employeeService.HoursEffectiveOn(r.Context(), id, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"employee_id": id,
		"date":        date.Format("2006-01-02"),
		"daily_hours": hours,
	})
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	workdays := make([]string, 0, len(emp.Workdays))
	for _, day := range emp.Workdays {
		workdays = append(workdays, day.String())
	}
	return employee.EmployeeResponse{
		ID:               emp.ID,
		FullName:         emp.FullName,
		BiometricID:      emp.BiometricID,
		PaymentType:      string(emp.PaymentType),
		AgreedDailyHours: emp.AgreedDailyHours,
		Currency:         emp.Currency,
		Workdays:         workdays,
		IsActive:         emp.IsActive,
	}
}
