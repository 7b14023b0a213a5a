package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paytrack/paytrack-backend-go/internal/domain/finance"
	"github.com/paytrack/paytrack-backend-go/internal/handler/http/response"
	financeservice "github.com/paytrack/paytrack-backend-go/internal/service/finance"
)

type FinanceHandler interface {
	CreateAdvance(w http.ResponseWriter, r *http.Request)
	ApproveAdvance(w http.ResponseWriter, r *http.Request)
	RejectAdvance(w http.ResponseWriter, r *http.Request)
	ListOutstandingAdvances(w http.ResponseWriter, r *http.Request)

	CreateBonus(w http.ResponseWriter, r *http.Request)
	CreateDeduction(w http.ResponseWriter, r *http.Request)
}

type FinanceHandlerImpl struct {
	financeService *financeservice.FinanceServiceImpl
}

func NewFinanceHandler(financeService *financeservice.FinanceServiceImpl) FinanceHandler {
	return &FinanceHandlerImpl{financeService: financeService}
}

// CreateAdvance implements FinanceHandler.
func (h *FinanceHandlerImpl) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	var req finance.CreateAdvanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAdvance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	advance, err := h.financeService.CreateAdvance(r.Context(), req.ToAdvance())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary advance created successfully", finance.ToAdvanceResponse(advance))
}

// ApproveAdvance implements FinanceHandler.
func (h *FinanceHandlerImpl) ApproveAdvance(w http.ResponseWriter, r *http.Request) {
	h.setAdvanceStatus(w, r, finance.AdvanceStatusApproved, "Salary advance approved successfully")
}

// RejectAdvance implements FinanceHandler.
func (h *FinanceHandlerImpl) RejectAdvance(w http.ResponseWriter, r *http.Request) {
	h.setAdvanceStatus(w, r, finance.AdvanceStatusRejected, "Salary advance rejected successfully")
}

func (h *FinanceHandlerImpl) setAdvanceStatus(w http.ResponseWriter, r *http.Request, status finance.AdvanceStatus, message string) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Advance ID is required", nil)
		return
	}

	if err := h.financeService.SetAdvanceStatus(r.Context(), id, status); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, nil)
}

// ListOutstandingAdvances implements FinanceHandler.
func (h *FinanceHandlerImpl) ListOutstandingAdvances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	advances, err := h.financeService.ListOutstandingAdvances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]finance.AdvanceResponse, 0, len(advances))
	for _, advance := range advances {
		out = append(out, finance.ToAdvanceResponse(advance))
	}
	response.Success(w, out)
}

// CreateBonus implements FinanceHandler.
func (h *FinanceHandlerImpl) CreateBonus(w http.ResponseWriter, r *http.Request) {
	var req finance.CreateBonusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateBonus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	bonus, err := h.financeService.CreateBonus(r.Context(), req.ToBonus())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bonus created successfully", finance.ToBonusResponse(bonus))
}

// CreateDeduction implements FinanceHandler.
func (h *FinanceHandlerImpl) CreateDeduction(w http.ResponseWriter, r *http.Request) {
	var req finance.CreateDeductionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateDeduction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	deduction, err := h.financeService.CreateDeduction(r.Context(), req.ToDeduction())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction created successfully", finance.ToDeductionResponse(deduction))
}
