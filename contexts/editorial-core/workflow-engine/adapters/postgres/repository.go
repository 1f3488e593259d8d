package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateFactCheck(
	ctx context.Context,
	factCheck entities.FactCheck,
	intake entities.WorkflowHistoryItem,
	event events.Envelope,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := factCheckModelFromEntity(factCheck)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrFactCheckExists
			}
			return err
		}
		historyRow, err := historyModelFromEntity(intake)
		if err != nil {
			return err
		}
		if err := tx.Create(&historyRow).Error; err != nil {
			return err
		}
		return appendOutboxTx(tx, event)
	})
}

func (r *Repository) GetFactCheck(ctx context.Context, factCheckID string) (entities.FactCheck, error) {
	var row factCheckModel
	err := r.db.WithContext(ctx).
		Where("fact_check_id = ?", strings.TrimSpace(factCheckID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.FactCheck{}, domainerrors.ErrFactCheckNotFound
		}
		return entities.FactCheck{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetFactCheckBySubmission(ctx context.Context, submissionID string) (entities.FactCheck, bool, error) {
	var row factCheckModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.FactCheck{}, false, nil
		}
		return entities.FactCheck{}, false, err
	}
	return row.toEntity(), true, nil
}

// ApplyTransition advances the state pointer, appends the history item, and
// records the outbox event in one transaction. The state version predicate
// makes losing concurrent writers observe a conflict instead of overwriting.
func (r *Repository) ApplyTransition(
	ctx context.Context,
	factCheck entities.FactCheck,
	expectedVersion int64,
	item entities.WorkflowHistoryItem,
	event events.Envelope,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&factCheckModel{}).
			Where("fact_check_id = ?", strings.TrimSpace(factCheck.FactCheckID)).
			Where("state_version = ?", expectedVersion).
			Updates(map[string]any{
				"current_state": string(factCheck.CurrentState),
				"state_version": factCheck.StateVersion,
				"updated_at":    factCheck.UpdatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&factCheckModel{}).
				Where("fact_check_id = ?", strings.TrimSpace(factCheck.FactCheckID)).
				Count(&count).
				Error; err != nil {
				return err
			}
			if count == 0 {
				return domainerrors.ErrFactCheckNotFound
			}
			return domainerrors.ErrConflict
		}

		historyRow, err := historyModelFromEntity(item)
		if err != nil {
			return err
		}
		if err := tx.Create(&historyRow).Error; err != nil {
			return err
		}
		return appendOutboxTx(tx, event)
	})
}

func (r *Repository) ListHistory(ctx context.Context, factCheckID string) ([]entities.WorkflowHistoryItem, error) {
	var rows []workflowHistoryModel
	if err := r.db.WithContext(ctx).
		Where("fact_check_id = ?", strings.TrimSpace(factCheckID)).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.WorkflowHistoryItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// State reports the current workflow state for cross-context projections.
// Absence is a regular outcome, not an error.
func (r *Repository) State(ctx context.Context, factCheckID string) (string, bool, error) {
	var row factCheckModel
	err := r.db.WithContext(ctx).
		Select("current_state").
		Where("fact_check_id = ?", strings.TrimSpace(factCheckID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.CurrentState, true, nil
}

// appendOutboxTx records the event alongside the state write so both commit
// or roll back together. A zero envelope is a no-op.
func appendOutboxTx(tx *gorm.DB, envelope events.Envelope) error {
	if strings.TrimSpace(envelope.EventID) == "" {
		return nil
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  strings.TrimSpace(envelope.EventID),
		EventType: strings.TrimSpace(envelope.EventType),
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: envelope.OccurredAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return tx.Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   append([]byte(nil), row.Payload...),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidWorkflowInput
	}
	return nil
}

type factCheckModel struct {
	FactCheckID      string    `gorm:"column:fact_check_id;primaryKey"`
	SubmissionID     string    `gorm:"column:submission_id;uniqueIndex"`
	CurrentState     string    `gorm:"column:current_state"`
	StateVersion     int64     `gorm:"column:state_version"`
	ClaimSummary     string    `gorm:"column:claim_summary"`
	DraftContent     string    `gorm:"column:draft_content"`
	PublishedContent string    `gorm:"column:published_content"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (factCheckModel) TableName() string {
	return "fact_checks"
}

func factCheckModelFromEntity(item entities.FactCheck) factCheckModel {
	return factCheckModel{
		FactCheckID:      strings.TrimSpace(item.FactCheckID),
		SubmissionID:     strings.TrimSpace(item.SubmissionID),
		CurrentState:     string(item.CurrentState),
		StateVersion:     item.StateVersion,
		ClaimSummary:     strings.TrimSpace(item.ClaimSummary),
		DraftContent:     item.DraftContent,
		PublishedContent: item.PublishedContent,
		CreatedAt:        item.CreatedAt.UTC(),
		UpdatedAt:        item.UpdatedAt.UTC(),
	}
}

func (m factCheckModel) toEntity() entities.FactCheck {
	return entities.FactCheck{
		FactCheckID:      m.FactCheckID,
		SubmissionID:     m.SubmissionID,
		CurrentState:     entities.WorkflowState(m.CurrentState),
		StateVersion:     m.StateVersion,
		ClaimSummary:     m.ClaimSummary,
		DraftContent:     m.DraftContent,
		PublishedContent: m.PublishedContent,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

type workflowHistoryModel struct {
	HistoryID   string    `gorm:"column:history_id;primaryKey"`
	FactCheckID string    `gorm:"column:fact_check_id;index"`
	FromState   string    `gorm:"column:from_state"`
	ToState     string    `gorm:"column:to_state"`
	ActorID     string    `gorm:"column:actor_id"`
	ActorRole   string    `gorm:"column:actor_role"`
	Reason      string    `gorm:"column:reason"`
	Metadata    []byte    `gorm:"column:metadata"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (workflowHistoryModel) TableName() string {
	return "fact_check_workflow_history"
}

func historyModelFromEntity(item entities.WorkflowHistoryItem) (workflowHistoryModel, error) {
	metadata := map[string]any{}
	if item.Metadata != nil {
		metadata = item.Metadata
	}
	metadataRaw, err := json.Marshal(metadata)
	if err != nil {
		return workflowHistoryModel{}, err
	}
	return workflowHistoryModel{
		HistoryID:   strings.TrimSpace(item.HistoryID),
		FactCheckID: strings.TrimSpace(item.FactCheckID),
		FromState:   string(item.FromState),
		ToState:     string(item.ToState),
		ActorID:     strings.TrimSpace(item.ActorID),
		ActorRole:   string(item.ActorRole),
		Reason:      strings.TrimSpace(item.Reason),
		Metadata:    metadataRaw,
		CreatedAt:   item.CreatedAt.UTC(),
	}, nil
}

func (m workflowHistoryModel) toEntity() (entities.WorkflowHistoryItem, error) {
	metadata := map[string]any{}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return entities.WorkflowHistoryItem{}, err
		}
	}
	if len(metadata) == 0 {
		metadata = nil
	}
	return entities.WorkflowHistoryItem{
		HistoryID:   m.HistoryID,
		FactCheckID: m.FactCheckID,
		FromState:   entities.WorkflowState(m.FromState),
		ToState:     entities.WorkflowState(m.ToState),
		ActorID:     m.ActorID,
		ActorRole:   identity.Role(m.ActorRole),
		Reason:      m.Reason,
		Metadata:    metadata,
		CreatedAt:   m.CreatedAt.UTC(),
	}, nil
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "workflow_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
