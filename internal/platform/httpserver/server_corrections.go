package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	correctionerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/errors"
	correctionhttp "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/transport/http"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

// handleSubmitCorrection is deliberately unauthenticated: anyone may flag an
// error on a published fact-check.
func (s *Server) handleSubmitCorrection(w http.ResponseWriter, r *http.Request) {
	var req correctionhttp.SubmitCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCorrectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.corrections.Handler.SubmitCorrectionHandler(r.Context(), r.PathValue("fact_check_id"), req)
	if err != nil {
		writeCorrectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCorrectionTriage(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok || !actor.Role.AtLeast(identity.RoleAdmin) {
		writeCorrectionError(w, http.StatusForbidden, "permission_denied", "triage requires the admin role")
		return
	}

	resp, err := s.corrections.Handler.TriageHandler(r.Context())
	if err != nil {
		writeCorrectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCorrection(w http.ResponseWriter, r *http.Request) {
	resp, err := s.corrections.Handler.GetCorrectionHandler(r.Context(), r.PathValue("correction_id"))
	if err != nil {
		writeCorrectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptCorrection(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeCorrectionError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req correctionhttp.ResolveCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCorrectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.corrections.Handler.AcceptCorrectionHandler(r.Context(), r.PathValue("correction_id"), actor, req)
	if err != nil {
		writeCorrectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectCorrection(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeCorrectionError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req correctionhttp.ResolveCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCorrectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.corrections.Handler.RejectCorrectionHandler(r.Context(), r.PathValue("correction_id"), actor, req)
	if err != nil {
		writeCorrectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApplyCorrection(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeCorrectionError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req correctionhttp.ApplyCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCorrectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.corrections.Handler.ApplyCorrectionHandler(r.Context(), r.PathValue("correction_id"), actor, req)
	if err != nil {
		writeCorrectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApplicationHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.corrections.Handler.ApplicationHistoryHandler(r.Context(), r.PathValue("fact_check_id"))
	if err != nil {
		writeCorrectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeCorrectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, correctionerrors.ErrCorrectionNotFound):
		writeCorrectionError(w, http.StatusNotFound, "correction_not_found", err.Error())
	case errors.Is(err, correctionerrors.ErrFactCheckNotPublished):
		writeCorrectionError(w, http.StatusConflict, "fact_check_not_published", err.Error())
	case errors.Is(err, correctionerrors.ErrInvalidCorrectionState):
		writeCorrectionError(w, http.StatusConflict, "invalid_correction_state", err.Error())
	case errors.Is(err, correctionerrors.ErrPermissionDenied):
		writeCorrectionError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, correctionerrors.ErrInvalidCorrectionInput):
		writeCorrectionError(w, http.StatusUnprocessableEntity, "invalid_correction_input", err.Error())
	case errors.Is(err, correctionerrors.ErrConflict):
		writeCorrectionError(w, http.StatusConflict, "retry_after_refetch", err.Error())
	default:
		writeCorrectionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCorrectionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, correctionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
