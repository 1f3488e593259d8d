package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) error {
	row := submissionModelFromEntity(submission)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, err
	}
	submission := row.toEntity()

	reviewers, err := r.ListAssignedReviewers(ctx, submissionID)
	if err != nil {
		return entities.Submission{}, err
	}
	submission.Reviewers = reviewers
	return submission, nil
}

func (r *Repository) AddReviewer(ctx context.Context, submissionID string, reviewerID string, assignedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&submissionModel{}).
			Where("submission_id = ?", strings.TrimSpace(submissionID)).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrSubmissionNotFound
		}

		row := submissionReviewerModel{
			SubmissionID: strings.TrimSpace(submissionID),
			ReviewerID:   strings.TrimSpace(reviewerID),
			AssignedAt:   assignedAt.UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrReviewerAlreadyAssigned
			}
			return err
		}
		return nil
	})
}

func (r *Repository) RemoveReviewer(ctx context.Context, submissionID string, reviewerID string) error {
	result := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Where("reviewer_id = ?", strings.TrimSpace(reviewerID)).
		Delete(&submissionReviewerModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&submissionModel{}).
			Where("submission_id = ?", strings.TrimSpace(submissionID)).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrSubmissionNotFound
		}
		return domainerrors.ErrReviewerNotAssigned
	}
	return nil
}

func (r *Repository) ListAssignedReviewers(ctx context.Context, submissionID string) ([]string, error) {
	var rows []submissionReviewerModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Order("reviewer_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ReviewerID)
	}
	return ids, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, event events.Envelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  uuid.NewString(),
		EventType: event.EventType,
		Payload:   payload,
		CreatedAt: event.OccurredAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	query := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []outboxModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	pending := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		pending = append(pending, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return pending, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	published := publishedAt.UTC()
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Update("published_at", &published).
		Error
}

type submissionModel struct {
	SubmissionID string    `gorm:"column:submission_id;primaryKey"`
	Kind         string    `gorm:"column:kind"`
	Content      string    `gorm:"column:content"`
	SubmitterID  string    `gorm:"column:submitter_id;index"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (submissionModel) TableName() string {
	return "submissions"
}

func submissionModelFromEntity(item entities.Submission) submissionModel {
	return submissionModel{
		SubmissionID: strings.TrimSpace(item.SubmissionID),
		Kind:         string(item.Kind),
		Content:      item.Content,
		SubmitterID:  strings.TrimSpace(item.SubmitterID),
		Status:       string(item.Status),
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func (m submissionModel) toEntity() entities.Submission {
	return entities.Submission{
		SubmissionID: m.SubmissionID,
		Kind:         entities.SubmissionKind(m.Kind),
		Content:      m.Content,
		SubmitterID:  m.SubmitterID,
		Status:       entities.SubmissionStatus(m.Status),
		Reviewers:    []string{},
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type submissionReviewerModel struct {
	SubmissionID string    `gorm:"column:submission_id;primaryKey"`
	ReviewerID   string    `gorm:"column:reviewer_id;primaryKey"`
	AssignedAt   time.Time `gorm:"column:assigned_at"`
}

func (submissionReviewerModel) TableName() string {
	return "submission_reviewers"
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type;index"`
	Payload     []byte     `gorm:"column:payload"`
	CreatedAt   time.Time  `gorm:"column:created_at;index"`
	PublishedAt *time.Time `gorm:"column:published_at;index"`
}

func (outboxModel) TableName() string {
	return "intake_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
