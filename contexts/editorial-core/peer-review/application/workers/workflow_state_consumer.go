package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/application"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
)

const (
	stateChangedTopic      = "fact_check.state_changed"
	defaultWorkflowCG      = "peer-review-workflow-cg"
	peerReviewWorkflowGate = "peer_review"
)

// WorkflowStateConsumer opens and closes review rounds in reaction to
// workflow state changes. Entering peer_review starts a round from the
// submission's assigned reviewers; leaving peer_review closes it.
type WorkflowStateConsumer struct {
	Subscriber    ports.EventSubscriber
	Dedup         ports.EventDedupStore
	Reviews       application.Service
	Clock         ports.Clock
	ConsumerGroup string
	DedupTTL      time.Duration
	Logger        *slog.Logger
}

func (c WorkflowStateConsumer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultWorkflowCG
	}
	if err := c.Subscriber.Subscribe(ctx, stateChangedTopic, group, c.handleStateChanged); err != nil {
		logger.Error("workflow state consumer subscribe failed",
			"event", "peer_review_workflow_subscribe_failed",
			"module", "editorial-core/peer-review",
			"layer", "worker",
			"topic", stateChangedTopic,
			"consumer_group", group,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("workflow state consumer subscription active",
		"event", "peer_review_workflow_consumer_started",
		"module", "editorial-core/peer-review",
		"layer", "worker",
		"consumer_group", group,
	)
	return nil
}

func (c WorkflowStateConsumer) handleStateChanged(ctx context.Context, event events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)
	if alreadyProcessed, err := c.reserveEvent(ctx, event); err != nil {
		return err
	} else if alreadyProcessed {
		return nil
	}

	var payload struct {
		FactCheckID  string `json:"fact_check_id"`
		SubmissionID string `json:"submission_id"`
		FromState    string `json:"from_state"`
		ToState      string `json:"to_state"`
	}
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		logger.Error("state change payload decode failed",
			"event", "peer_review_state_change_decode_failed",
			"module", "editorial-core/peer-review",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}

	switch {
	case payload.ToState == peerReviewWorkflowGate:
		round, err := c.Reviews.StartRound(ctx, payload.FactCheckID, payload.SubmissionID)
		if err != nil {
			// A replayed start against an already-open round is benign.
			if errors.Is(err, domainerrors.ErrRoundActive) {
				return nil
			}
			logger.Error("round start from state change failed",
				"event", "peer_review_round_start_failed",
				"module", "editorial-core/peer-review",
				"layer", "worker",
				"event_id", event.EventID,
				"fact_check_id", payload.FactCheckID,
				"error", err.Error(),
			)
			return err
		}
		logger.Info("round opened from state change",
			"event", "peer_review_round_opened",
			"module", "editorial-core/peer-review",
			"layer", "worker",
			"event_id", event.EventID,
			"fact_check_id", payload.FactCheckID,
			"round_id", round.RoundID,
		)
		return nil
	case payload.FromState == peerReviewWorkflowGate && payload.ToState != peerReviewWorkflowGate:
		if err := c.Reviews.CloseRound(ctx, payload.FactCheckID); err != nil {
			logger.Error("round close from state change failed",
				"event", "peer_review_round_close_failed",
				"module", "editorial-core/peer-review",
				"layer", "worker",
				"event_id", event.EventID,
				"fact_check_id", payload.FactCheckID,
				"error", err.Error(),
			)
			return err
		}
		return nil
	default:
		return nil
	}
}

func (c WorkflowStateConsumer) reserveEvent(ctx context.Context, event events.Envelope) (bool, error) {
	logger := application.ResolveLogger(c.Logger)
	alreadyProcessed, err := c.Dedup.ReserveEvent(ctx, event.EventID, hashPayload(event.Data), c.now().Add(c.dedupTTL()))
	if err != nil {
		logger.Error("state change dedupe failed",
			"event", "peer_review_state_change_dedupe_failed",
			"module", "editorial-core/peer-review",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return false, err
	}
	return alreadyProcessed, nil
}

func (c WorkflowStateConsumer) now() time.Time {
	now := time.Now().UTC()
	if c.Clock != nil {
		now = c.Clock.Now().UTC()
	}
	return now
}

func (c WorkflowStateConsumer) dedupTTL() time.Duration {
	if c.DedupTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return c.DedupTTL
}

func hashPayload(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
