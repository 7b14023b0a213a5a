package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paytrack/paytrack-backend-go/internal/domain/payroll"
	"github.com/paytrack/paytrack-backend-go/internal/handler/http/response"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/validator"
	payrollservice "github.com/paytrack/paytrack-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	DeliverSalary(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	Terminate(w http.ResponseWriter, r *http.Request)
	GetTermination(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService *payrollservice.PayrollServiceImpl
}

func NewPayrollHandler(payrollService *payrollservice.PayrollServiceImpl) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Compute implements PayrollHandler. It is read-only: recomputing the same
// range twice returns the same breakdown and persists nothing.
func (h *PayrollHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	start, ok := validator.IsValidDate(r.URL.Query().Get("start_date"))
	if !ok {
		response.BadRequest(w, "start_date must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	end, ok := validator.IsValidDate(r.URL.Query().Get("end_date"))
	if !ok {
		response.BadRequest(w, "end_date must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	result, err := h.payrollService.Compute(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeliverSalary implements PayrollHandler.
func (h *PayrollHandlerImpl) DeliverSalary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req payroll.DeliverSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DeliverSalary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	payment, err := h.payrollService.DeliverSalary(r.Context(), employeeID, req.Year, time.Month(req.Month), req.AdvanceIDs)
	if err != nil {
		slog.Error("DeliverSalary service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary delivered successfully", toPaymentResponse(payment))
}

// ListPayments implements PayrollHandler.
func (h *PayrollHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	payments, err := h.payrollService.ListPayments(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]payroll.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		out = append(out, toPaymentResponse(payment))
	}
	response.Success(w, out)
}

// Terminate implements PayrollHandler.
func (h *PayrollHandlerImpl) Terminate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req payroll.TerminateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Terminate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date, _ := validator.IsValidDate(req.Date)
	termination, err := h.payrollService.Terminate(r.Context(), employeeID, date, req.Reason)
	if err != nil {
		slog.Error("Terminate service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee terminated successfully", toTerminationResponse(termination))
}

// GetTermination implements PayrollHandler.
func (h *PayrollHandlerImpl) GetTermination(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	termination, err := h.payrollService.GetTermination(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toTerminationResponse(termination))
}

func toPaymentResponse(payment payroll.Payment) payroll.PaymentResponse {
	return payroll.PaymentResponse{
		ID:               payment.ID,
		EmployeeID:       payment.EmployeeID,
		PeriodYear:       payment.PeriodYear,
		PeriodMonth:      int(payment.PeriodMonth),
		GrossSalary:      payment.GrossSalary.String(),
		AdvancesDeducted: payment.AdvancesDeducted.String(),
		NetSalary:        payment.NetSalary.String(),
		PaidAt:           payment.PaidAt.Format(time.RFC3339),
	}
}

func toTerminationResponse(termination payroll.Termination) payroll.TerminationResponse {
	return payroll.TerminationResponse{
		ID:         termination.ID,
		EmployeeID: termination.EmployeeID,
		Date:       termination.Date.Format("2006-01-02"),
		Reason:     termination.Reason,
		Settlement: termination.Settlement,
	}
}
