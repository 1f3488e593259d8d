package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	intakeerrors "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/errors"
	intakehttp "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/transport/http"
)

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeIntakeError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req intakehttp.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIntakeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.intake.Handler.CreateSubmissionHandler(r.Context(), actor, req)
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	resp, err := s.intake.Handler.GetSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssignReviewer(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeIntakeError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req intakehttp.AssignReviewerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIntakeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.intake.Handler.AssignReviewerHandler(r.Context(), r.PathValue("submission_id"), actor, req)
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnassignReviewer(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeIntakeError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	resp, err := s.intake.Handler.UnassignReviewerHandler(
		r.Context(),
		r.PathValue("submission_id"),
		actor,
		r.PathValue("reviewer_id"),
	)
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeIntakeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, intakeerrors.ErrSubmissionNotFound):
		writeIntakeError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, intakeerrors.ErrReviewerAlreadyAssigned):
		writeIntakeError(w, http.StatusConflict, "reviewer_already_assigned", err.Error())
	case errors.Is(err, intakeerrors.ErrReviewerNotAssigned):
		writeIntakeError(w, http.StatusConflict, "reviewer_not_assigned", err.Error())
	case errors.Is(err, intakeerrors.ErrPermissionDenied):
		writeIntakeError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, intakeerrors.ErrInvalidSubmissionInput):
		writeIntakeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeIntakeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeIntakeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, intakehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
