package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	workflowerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/errors"
	workflowhttp "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/transport/http"
)

func (s *Server) handleStartFactCheck(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeWorkflowError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req workflowhttp.StartFactCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWorkflowError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.workflow.Handler.StartFactCheckHandler(r.Context(), actor, req)
	if err != nil {
		writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeWorkflowError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req workflowhttp.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWorkflowError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.workflow.Handler.TransitionHandler(r.Context(), r.PathValue("fact_check_id"), actor, req)
	if err != nil {
		writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCurrentState(w http.ResponseWriter, r *http.Request) {
	resp, err := s.workflow.Handler.CurrentStateHandler(r.Context(), r.PathValue("fact_check_id"))
	if err != nil {
		writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidTransitions(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeWorkflowError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.workflow.Handler.ValidTransitionsHandler(r.Context(), r.PathValue("fact_check_id"), actor)
	if err != nil {
		writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkflowHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.workflow.Handler.HistoryHandler(r.Context(), r.PathValue("fact_check_id"))
	if err != nil {
		writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeWorkflowDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflowerrors.ErrFactCheckNotFound):
		writeWorkflowError(w, http.StatusNotFound, "fact_check_not_found", err.Error())
	case errors.Is(err, workflowerrors.ErrFactCheckExists):
		writeWorkflowError(w, http.StatusConflict, "fact_check_exists", err.Error())
	case errors.Is(err, workflowerrors.ErrInvalidTransition):
		writeWorkflowError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, workflowerrors.ErrPermissionDenied):
		writeWorkflowError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, workflowerrors.ErrReasonRequired):
		writeWorkflowError(w, http.StatusUnprocessableEntity, "reason_required", err.Error())
	case errors.Is(err, workflowerrors.ErrUnknownState):
		writeWorkflowError(w, http.StatusUnprocessableEntity, "unknown_state", err.Error())
	case errors.Is(err, workflowerrors.ErrInvalidWorkflowInput):
		writeWorkflowError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, workflowerrors.ErrConflict):
		writeWorkflowError(w, http.StatusConflict, "retry_after_refetch", err.Error())
	default:
		writeWorkflowError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeWorkflowError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, workflowhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
