package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	reviewerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/domain/errors"
	reviewhttp "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/transport/http"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeReviewError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}
	// Round lifecycle normally follows workflow state changes; the manual
	// start is an admin escape hatch.
	if !actor.Role.AtLeast(identity.RoleAdmin) {
		writeReviewError(w, http.StatusForbidden, "permission_denied", "starting a round requires the admin role")
		return
	}

	var req reviewhttp.StartRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.FactCheckID = r.PathValue("fact_check_id")

	resp, err := s.peerReview.Handler.StartRoundHandler(r.Context(), req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleSubmitDecision(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(r)
	if !ok {
		writeReviewError(w, http.StatusUnauthorized, "missing_actor", "X-User-Id and X-User-Role headers are required")
		return
	}

	var req reviewhttp.SubmitDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.peerReview.Handler.SubmitDecisionHandler(r.Context(), r.PathValue("fact_check_id"), actor, req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConsensusStatus(w http.ResponseWriter, r *http.Request) {
	minReviewers := 0
	if raw := r.URL.Query().Get("min_reviewers"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeReviewError(w, http.StatusBadRequest, "invalid_min_reviewers", "min_reviewers must be an integer")
			return
		}
		minReviewers = parsed
	}

	resp, err := s.peerReview.Handler.ConsensusHandler(r.Context(), r.PathValue("fact_check_id"), minReviewers)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoundReviews(w http.ResponseWriter, r *http.Request) {
	resp, err := s.peerReview.Handler.RoundReviewsHandler(r.Context(), r.PathValue("fact_check_id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeReviewDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reviewerrors.ErrNoActiveRound):
		writeReviewError(w, http.StatusNotFound, "no_active_round", err.Error())
	case errors.Is(err, reviewerrors.ErrRoundActive):
		writeReviewError(w, http.StatusConflict, "round_active", err.Error())
	case errors.Is(err, reviewerrors.ErrNoReviewers):
		writeReviewError(w, http.StatusUnprocessableEntity, "no_reviewers", err.Error())
	case errors.Is(err, reviewerrors.ErrNotAReviewer):
		writeReviewError(w, http.StatusForbidden, "not_a_reviewer", err.Error())
	case errors.Is(err, reviewerrors.ErrAlreadyDecided):
		writeReviewError(w, http.StatusConflict, "already_decided", err.Error())
	case errors.Is(err, reviewerrors.ErrInvalidReviewInput):
		writeReviewError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, reviewerrors.ErrConflict):
		writeReviewError(w, http.StatusConflict, "retry_after_refetch", err.Error())
	default:
		writeReviewError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeReviewError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, reviewhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
