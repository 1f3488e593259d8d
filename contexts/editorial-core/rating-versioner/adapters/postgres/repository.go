package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/errors"

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

func (r *Repository) CurrentRating(ctx context.Context, factCheckID string) (entities.RatingVersion, bool, error) {
	var row ratingVersionModel
	err := r.db.WithContext(ctx).
		Where("fact_check_id = ?", strings.TrimSpace(factCheckID)).
		Where("is_current = ?", true).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RatingVersion{}, false, nil
		}
		return entities.RatingVersion{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) AppendRating(ctx context.Context, next entities.RatingVersion, previousID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if previousID != "" {
			result := tx.
				Model(&ratingVersionModel{}).
				Where("rating_id = ?", strings.TrimSpace(previousID)).
				Where("is_current = ?", true).
				Update("is_current", false)
			if result.Error != nil {
				return result.Error
			}
			// The head moved between read and write.
			if result.RowsAffected == 0 {
				return domainerrors.ErrConflict
			}
		}
		row := ratingModelFromEntity(next)
		if err := tx.Create(&row).Error; err != nil {
			// Concurrent writers collide on the (fact_check_id, version) key.
			if isUniqueViolation(err) {
				return domainerrors.ErrConflict
			}
			return err
		}
		return nil
	})
}

func (r *Repository) ListRatings(ctx context.Context, factCheckID string) ([]entities.RatingVersion, error) {
	var rows []ratingVersionModel
	err := r.db.WithContext(ctx).
		Where("fact_check_id = ?", strings.TrimSpace(factCheckID)).
		Order("version ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.RatingVersion, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type ratingVersionModel struct {
	RatingID      string    `gorm:"column:rating_id;primaryKey"`
	FactCheckID   string    `gorm:"column:fact_check_id;index:idx_fact_check_rating_version,unique"`
	Version       int       `gorm:"column:version;index:idx_fact_check_rating_version,unique"`
	Rating        string    `gorm:"column:rating"`
	Justification string    `gorm:"column:justification"`
	IsCurrent     bool      `gorm:"column:is_current;index"`
	AssignedBy    string    `gorm:"column:assigned_by"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (ratingVersionModel) TableName() string {
	return "rating_versions"
}

func ratingModelFromEntity(item entities.RatingVersion) ratingVersionModel {
	return ratingVersionModel{
		RatingID:      strings.TrimSpace(item.RatingID),
		FactCheckID:   strings.TrimSpace(item.FactCheckID),
		Version:       item.Version,
		Rating:        strings.TrimSpace(item.Rating),
		Justification: item.Justification,
		IsCurrent:     item.IsCurrent,
		AssignedBy:    strings.TrimSpace(item.AssignedBy),
		CreatedAt:     item.CreatedAt.UTC(),
	}
}

func (m ratingVersionModel) toEntity() entities.RatingVersion {
	return entities.RatingVersion{
		RatingID:      m.RatingID,
		FactCheckID:   m.FactCheckID,
		Version:       m.Version,
		Rating:        m.Rating,
		Justification: m.Justification,
		IsCurrent:     m.IsCurrent,
		AssignedBy:    m.AssignedBy,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
