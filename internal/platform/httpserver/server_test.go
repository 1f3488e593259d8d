package httpserver

import (
	"log/slog"

	correctiontracker "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker"
	correctionapp "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/application"
	peerreview "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review"
	ratingversioner "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner"
	workflowengine "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine"
	workflowentities "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	submissionservice "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service"
)

func newTestServer() *Server {
	logger := slog.Default()
	workflowSeed := []workflowentities.FactCheck{
		{
			FactCheckID:  "fc-1",
			SubmissionID: "sub-1",
			CurrentState: workflowentities.StateSubmitted,
			StateVersion: 1,
		},
	}
	return New(Modules{
		Workflow:    workflowengine.NewInMemoryModule(workflowSeed, logger),
		PeerReview:  peerreview.NewInMemoryModule(2, logger),
		Corrections: correctiontracker.NewInMemoryModule(correctionapp.Policy{}, logger),
		Ratings:     ratingversioner.NewInMemoryModule(nil, 0, logger),
		Intake:      submissionservice.NewInMemoryModule(logger),
	}, logger, ":0")
}
