package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	ratingerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/errors"
	ratinghttp "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/transport/http"
)

func (s *Server) handleAssignRating(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeRatingError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req ratinghttp.AssignRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRatingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ratings.Handler.AssignRatingHandler(r.Context(), r.PathValue("fact_check_id"), actor, req)
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCurrentRating(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ratings.Handler.CurrentRatingHandler(r.Context(), r.PathValue("fact_check_id"))
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRatingHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ratings.Handler.RatingHistoryHandler(r.Context(), r.PathValue("fact_check_id"))
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRatingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ratingerrors.ErrRatingNotFound):
		writeRatingError(w, http.StatusNotFound, "rating_not_found", err.Error())
	case errors.Is(err, ratingerrors.ErrInvalidWorkflowState):
		writeRatingError(w, http.StatusConflict, "invalid_workflow_state", err.Error())
	case errors.Is(err, ratingerrors.ErrPermissionDenied):
		writeRatingError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, ratingerrors.ErrInvalidRatingInput):
		writeRatingError(w, http.StatusUnprocessableEntity, "invalid_rating_input", err.Error())
	case errors.Is(err, ratingerrors.ErrConflict):
		writeRatingError(w, http.StatusConflict, "retry_after_refetch", err.Error())
	default:
		writeRatingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRatingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ratinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
