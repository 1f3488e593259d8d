package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) CreateRound(ctx context.Context, round entities.ReviewRound, reviews []entities.PeerReview) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var openCount int64
		if err := tx.Model(&reviewRoundModel{}).
			Where("fact_check_id = ?", strings.TrimSpace(round.FactCheckID)).
			Where("status = ?", string(entities.RoundOpen)).
			Count(&openCount).
			Error; err != nil {
			return err
		}
		if openCount > 0 {
			return domainerrors.ErrRoundActive
		}

		roundRow := roundModelFromEntity(round)
		if err := tx.Create(&roundRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrRoundActive
			}
			return err
		}
		for _, review := range reviews {
			reviewRow := reviewModelFromEntity(review)
			if err := tx.Create(&reviewRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) GetOpenRound(ctx context.Context, factCheckID string) (entities.ReviewRound, bool, error) {
	var row reviewRoundModel
	err := r.db.WithContext(ctx).
		Where("fact_check_id = ?", strings.TrimSpace(factCheckID)).
		Where("status = ?", string(entities.RoundOpen)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ReviewRound{}, false, nil
		}
		return entities.ReviewRound{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CountRounds(ctx context.Context, factCheckID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&reviewRoundModel{}).
		Where("fact_check_id = ?", strings.TrimSpace(factCheckID)).
		Count(&count).
		Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) CloseRound(ctx context.Context, roundID string, closedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&reviewRoundModel{}).
		Where("round_id = ?", strings.TrimSpace(roundID)).
		Where("status = ?", string(entities.RoundOpen)).
		Updates(map[string]any{
			"status":    string(entities.RoundClosed),
			"closed_at": closedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNoActiveRound
	}
	return nil
}

func (r *Repository) GetReview(ctx context.Context, roundID string, reviewerID string) (entities.PeerReview, bool, error) {
	var row peerReviewModel
	err := r.db.WithContext(ctx).
		Where("round_id = ?", strings.TrimSpace(roundID)).
		Where("reviewer_id = ?", strings.TrimSpace(reviewerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PeerReview{}, false, nil
		}
		return entities.PeerReview{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListRoundReviews(ctx context.Context, roundID string) ([]entities.PeerReview, error) {
	var rows []peerReviewModel
	if err := r.db.WithContext(ctx).
		Where("round_id = ?", strings.TrimSpace(roundID)).
		Order("reviewer_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.PeerReview, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateDecision(ctx context.Context, review entities.PeerReview, expectedVersion int64) error {
	result := r.db.WithContext(ctx).
		Model(&peerReviewModel{}).
		Where("review_id = ?", strings.TrimSpace(review.ReviewID)).
		Where("row_version = ?", expectedVersion).
		Updates(map[string]any{
			"status":      string(review.Status),
			"comments":    strings.TrimSpace(review.Comments),
			"decided_at":  normalizeOptionalTime(review.DecidedAt),
			"updated_at":  review.UpdatedAt.UTC(),
			"row_version": review.RowVersion,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&peerReviewModel{}).
			Where("review_id = ?", strings.TrimSpace(review.ReviewID)).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotAReviewer
		}
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error) {
	row := eventDedupModel{
		EventID:     strings.TrimSpace(eventID),
		PayloadHash: strings.TrimSpace(payloadHash),
		ExpiresAt:   expiresAt.UTC(),
		ProcessedAt: time.Now().UTC(),
	}
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return false, createResult.Error
	}
	return createResult.RowsAffected == 0, nil
}

type reviewRoundModel struct {
	RoundID     string     `gorm:"column:round_id;primaryKey"`
	FactCheckID string     `gorm:"column:fact_check_id;index"`
	RoundNumber int        `gorm:"column:round_number"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	ClosedAt    *time.Time `gorm:"column:closed_at"`
}

func (reviewRoundModel) TableName() string {
	return "peer_review_rounds"
}

func roundModelFromEntity(item entities.ReviewRound) reviewRoundModel {
	return reviewRoundModel{
		RoundID:     strings.TrimSpace(item.RoundID),
		FactCheckID: strings.TrimSpace(item.FactCheckID),
		RoundNumber: item.RoundNumber,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC(),
		ClosedAt:    normalizeOptionalTime(item.ClosedAt),
	}
}

func (m reviewRoundModel) toEntity() entities.ReviewRound {
	return entities.ReviewRound{
		RoundID:     m.RoundID,
		FactCheckID: m.FactCheckID,
		RoundNumber: m.RoundNumber,
		Status:      entities.RoundStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		ClosedAt:    normalizeOptionalTime(m.ClosedAt),
	}
}

type peerReviewModel struct {
	ReviewID    string     `gorm:"column:review_id;primaryKey"`
	RoundID     string     `gorm:"column:round_id;index:idx_round_reviewer,unique"`
	ReviewerID  string     `gorm:"column:reviewer_id;index:idx_round_reviewer,unique"`
	FactCheckID string     `gorm:"column:fact_check_id;index"`
	Status      string     `gorm:"column:status"`
	Comments    string     `gorm:"column:comments"`
	RowVersion  int64      `gorm:"column:row_version"`
	DecidedAt   *time.Time `gorm:"column:decided_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (peerReviewModel) TableName() string {
	return "peer_reviews"
}

func reviewModelFromEntity(item entities.PeerReview) peerReviewModel {
	return peerReviewModel{
		ReviewID:    strings.TrimSpace(item.ReviewID),
		RoundID:     strings.TrimSpace(item.RoundID),
		ReviewerID:  strings.TrimSpace(item.ReviewerID),
		FactCheckID: strings.TrimSpace(item.FactCheckID),
		Status:      string(item.Status),
		Comments:    strings.TrimSpace(item.Comments),
		RowVersion:  item.RowVersion,
		DecidedAt:   normalizeOptionalTime(item.DecidedAt),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m peerReviewModel) toEntity() entities.PeerReview {
	return entities.PeerReview{
		ReviewID:    m.ReviewID,
		RoundID:     m.RoundID,
		FactCheckID: m.FactCheckID,
		ReviewerID:  m.ReviewerID,
		Status:      entities.DecisionStatus(m.Status),
		Comments:    m.Comments,
		RowVersion:  m.RowVersion,
		DecidedAt:   normalizeOptionalTime(m.DecidedAt),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type eventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	PayloadHash string    `gorm:"column:payload_hash"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
}

func (eventDedupModel) TableName() string {
	return "peer_review_event_dedup"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
