package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	correctiontracker "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker"
	peerreview "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review"
	ratingversioner "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner"
	workflowengine "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine"
	submissionservice "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/Post-X-Society/ans-project-sub001/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	workflow    workflowengine.Module
	peerReview  peerreview.Module
	corrections correctiontracker.Module
	ratings     ratingversioner.Module
	intake      submissionservice.Module
}

type Modules struct {
	Workflow    workflowengine.Module
	PeerReview  peerreview.Module
	Corrections correctiontracker.Module
	Ratings     ratingversioner.Module
	Intake      submissionservice.Module
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		workflow:    modules.Workflow,
		peerReview:  modules.PeerReview,
		corrections: modules.Corrections,
		ratings:     modules.Ratings,
		intake:      modules.Intake,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/workflow/v1/fact-checks", s.handleStartFactCheck)
	s.mux.HandleFunc("POST /api/workflow/v1/fact-checks/{fact_check_id}/transition", s.handleTransition)
	s.mux.HandleFunc("GET /api/workflow/v1/fact-checks/{fact_check_id}/state", s.handleCurrentState)
	s.mux.HandleFunc("GET /api/workflow/v1/fact-checks/{fact_check_id}/transitions", s.handleValidTransitions)
	s.mux.HandleFunc("GET /api/workflow/v1/fact-checks/{fact_check_id}/history", s.handleWorkflowHistory)

	s.mux.HandleFunc("POST /api/peer-review/v1/fact-checks/{fact_check_id}/rounds", s.handleStartRound)
	s.mux.HandleFunc("POST /api/peer-review/v1/fact-checks/{fact_check_id}/decisions", s.handleSubmitDecision)
	s.mux.HandleFunc("GET /api/peer-review/v1/fact-checks/{fact_check_id}/status", s.handleConsensusStatus)
	s.mux.HandleFunc("GET /api/peer-review/v1/fact-checks/{fact_check_id}/reviews", s.handleRoundReviews)

	s.mux.HandleFunc("POST /api/corrections/v1/fact-checks/{fact_check_id}/corrections", s.handleSubmitCorrection)
	s.mux.HandleFunc("GET /api/corrections/v1/triage", s.handleCorrectionTriage)
	s.mux.HandleFunc("GET /api/corrections/v1/corrections/{correction_id}", s.handleGetCorrection)
	s.mux.HandleFunc("POST /api/corrections/v1/corrections/{correction_id}/accept", s.handleAcceptCorrection)
	s.mux.HandleFunc("POST /api/corrections/v1/corrections/{correction_id}/reject", s.handleRejectCorrection)
	s.mux.HandleFunc("POST /api/corrections/v1/corrections/{correction_id}/apply", s.handleApplyCorrection)
	s.mux.HandleFunc("GET /api/corrections/v1/fact-checks/{fact_check_id}/applications", s.handleApplicationHistory)

	s.mux.HandleFunc("POST /api/ratings/v1/fact-checks/{fact_check_id}/rating", s.handleAssignRating)
	s.mux.HandleFunc("GET /api/ratings/v1/fact-checks/{fact_check_id}/rating", s.handleCurrentRating)
	s.mux.HandleFunc("GET /api/ratings/v1/fact-checks/{fact_check_id}/rating/history", s.handleRatingHistory)

	s.mux.HandleFunc("POST /api/intake/v1/submissions", s.handleCreateSubmission)
	s.mux.HandleFunc("GET /api/intake/v1/submissions/{submission_id}", s.handleGetSubmission)
	s.mux.HandleFunc("POST /api/intake/v1/submissions/{submission_id}/reviewers", s.handleAssignReviewer)
	s.mux.HandleFunc("DELETE /api/intake/v1/submissions/{submission_id}/reviewers/{reviewer_id}", s.handleUnassignReviewer)
}

// resolveActor builds the caller descriptor from the identity headers. The
// identity provider lives outside this service; headers arrive verified.
func resolveActor(r *http.Request) (identity.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	role, validRole := identity.ParseRole(r.Header.Get("X-User-Role"))
	if userID == "" || !validRole {
		return identity.Actor{}, false
	}
	return identity.Actor{ID: userID, Role: role}, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
