package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
	"github.com/paytrack/paytrack-backend-go/internal/handler/http/response"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/validator"
	"github.com/paytrack/paytrack-backend-go/internal/service/ingest"
)

type AttendanceHandler interface {
	IngestPunches(w http.ResponseWriter, r *http.Request)
	ListAttendance(w http.ResponseWriter, r *http.Request)

	ListUnmatched(w http.ResponseWriter, r *http.Request)
	ResolveUnmatched(w http.ResponseWriter, r *http.Request)

	BlockIdentifier(w http.ResponseWriter, r *http.Request)
	ListBlocked(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	ingestService *ingest.IngestServiceImpl
}

func NewAttendanceHandler(ingestService *ingest.IngestServiceImpl) AttendanceHandler {
	return &AttendanceHandlerImpl{ingestService: ingestService}
}

// IngestPunches implements AttendanceHandler.
func (h *AttendanceHandlerImpl) IngestPunches(w http.ResponseWriter, r *http.Request) {
	var req attendance.IngestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("IngestPunches decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ingestService.Ingest(r.Context(), attendance.Source(req.Source), req.Punches)
	if err != nil {
		slog.Error("IngestPunches service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch batch ingested successfully", result)
}

// ListAttendance implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
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

	records, err := h.ingestService.ListAttendance(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toRecordResponse(record))
	}
	response.Success(w, out)
}

// ListUnmatched implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListUnmatched(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.ingestService.ListUnmatched(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.UnmatchedResponse, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, attendance.UnmatchedResponse{
			ID:          bucket.ID,
			BiometricID: bucket.BiometricID,
			Date:        bucket.Date.Format("2006-01-02"),
			Times:       bucket.Times,
		})
	}
	response.Success(w, out)
}

// ResolveUnmatched implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ResolveUnmatched(w http.ResponseWriter, r *http.Request) {
	bucketID := chi.URLParam(r, "id")
	if bucketID == "" {
		response.BadRequest(w, "Bucket ID is required", nil)
		return
	}

	var req attendance.ResolveUnmatchedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ResolveUnmatched decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.ingestService.ResolveUnmatched(r.Context(), bucketID, req.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Unmatched punches assigned successfully", nil)
}

// BlockIdentifier implements AttendanceHandler.
func (h *AttendanceHandlerImpl) BlockIdentifier(w http.ResponseWriter, r *http.Request) {
	var req attendance.BlockIdentifierRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BlockIdentifier decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.ingestService.Block(r.Context(), req.BiometricID, req.Reason); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Identifier blocked successfully", nil)
}

// ListBlocked implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListBlocked(w http.ResponseWriter, r *http.Request) {
	blocked, err := h.ingestService.ListBlocked(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.BlockedResponse, 0, len(blocked))
	for _, b := range blocked {
		out = append(out, attendance.BlockedResponse{
			BiometricID: b.BiometricID,
			Reason:      b.Reason,
			BlockedAt:   b.BlockedAt.Format(time.RFC3339),
		})
	}
	response.Success(w, out)
}

func toRecordResponse(record attendance.Record) attendance.RecordResponse {
	out := attendance.RecordResponse{
		ID:         record.ID,
		EmployeeID: record.EmployeeID,
		Date:       record.Date.Format("2006-01-02"),
		Source:     string(record.Source),
		Synced:     record.Synced,
		Paid:       record.Paid,
	}
	if record.CheckIn != nil {
		s := record.CheckIn.Format("15:04:05")
		out.CheckIn = &s
	}
	if record.CheckOut != nil {
		s := record.CheckOut.Format("15:04:05")
		out.CheckOut = &s
	}
	return out
}
