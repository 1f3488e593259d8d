package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/errors"

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

func (r *Repository) CreateCorrection(ctx context.Context, correction entities.Correction) error {
	row := correctionModelFromEntity(correction)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetCorrection(ctx context.Context, correctionID string) (entities.Correction, error) {
	var row correctionModel
	err := r.db.WithContext(ctx).
		Where("correction_id = ?", strings.TrimSpace(correctionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Correction{}, domainerrors.ErrCorrectionNotFound
		}
		return entities.Correction{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPendingCorrections(ctx context.Context) ([]entities.Correction, error) {
	var rows []correctionModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.CorrectionPending)).
		Order("severity_rank ASC").
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Correction, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateCorrection(ctx context.Context, correction entities.Correction, expectedVersion int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyCorrectionUpdate(tx, correction, expectedVersion)
	})
}

func (r *Repository) ApplyCorrection(
	ctx context.Context,
	correction entities.Correction,
	expectedVersion int64,
	application entities.CorrectionApplication,
	publishedContent string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyCorrectionUpdate(tx, correction, expectedVersion); err != nil {
			return err
		}
		row := applicationModelFromEntity(application)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		// The tracker shares the database with the workflow engine, so the
		// corrected content lands on fact_checks in the same transaction.
		result := tx.Table("fact_checks").
			Where("fact_check_id = ?", strings.TrimSpace(application.FactCheckID)).
			Update("published_content", publishedContent)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrFactCheckNotPublished
		}
		return nil
	})
}

func (r *Repository) LastApplicationVersion(ctx context.Context, factCheckID string) (int, error) {
	var row correctionApplicationModel
	err := r.db.WithContext(ctx).
		Where("fact_check_id = ?", strings.TrimSpace(factCheckID)).
		Order("version DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Version, nil
}

func (r *Repository) ListApplications(ctx context.Context, factCheckID string) ([]entities.CorrectionApplication, error) {
	var rows []correctionApplicationModel
	err := r.db.WithContext(ctx).
		Where("fact_check_id = ?", strings.TrimSpace(factCheckID)).
		Order("version ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.CorrectionApplication, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	// DaysRemaining goes negative once the deadline is a full day behind.
	cutoff := now.UTC().Add(-24 * time.Hour)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&correctionModel{}).
		Where("status = ?", string(entities.CorrectionPending)).
		Where("sla_deadline <= ?", cutoff).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func applyCorrectionUpdate(tx *gorm.DB, correction entities.Correction, expectedVersion int64) error {
	result := tx.
		Model(&correctionModel{}).
		Where("correction_id = ?", strings.TrimSpace(correction.CorrectionID)).
		Where("row_version = ?", expectedVersion).
		Updates(map[string]any{
			"status":           string(correction.Status),
			"resolution_notes": strings.TrimSpace(correction.ResolutionNotes),
			"updated_at":       correction.UpdatedAt.UTC(),
			"row_version":      correction.RowVersion,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.
			Model(&correctionModel{}).
			Where("correction_id = ?", strings.TrimSpace(correction.CorrectionID)).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrCorrectionNotFound
		}
		return domainerrors.ErrConflict
	}
	return nil
}

type correctionModel struct {
	CorrectionID    string    `gorm:"column:correction_id;primaryKey"`
	FactCheckID     string    `gorm:"column:fact_check_id;index"`
	CorrectionType  string    `gorm:"column:correction_type"`
	SeverityRank    int       `gorm:"column:severity_rank;index"`
	Status          string    `gorm:"column:status;index"`
	Details         string    `gorm:"column:details"`
	RequesterEmail  string    `gorm:"column:requester_email"`
	ResolutionNotes string    `gorm:"column:resolution_notes"`
	SLADeadline     time.Time `gorm:"column:sla_deadline;index"`
	RowVersion      int64     `gorm:"column:row_version"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (correctionModel) TableName() string {
	return "corrections"
}

func correctionModelFromEntity(item entities.Correction) correctionModel {
	return correctionModel{
		CorrectionID:    strings.TrimSpace(item.CorrectionID),
		FactCheckID:     strings.TrimSpace(item.FactCheckID),
		CorrectionType:  string(item.Type),
		SeverityRank:    item.Type.SeverityRank(),
		Status:          string(item.Status),
		Details:         item.Details,
		RequesterEmail:  strings.TrimSpace(item.RequesterEmail),
		ResolutionNotes: strings.TrimSpace(item.ResolutionNotes),
		SLADeadline:     item.SLADeadline.UTC(),
		RowVersion:      item.RowVersion,
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func (m correctionModel) toEntity() entities.Correction {
	return entities.Correction{
		CorrectionID:    m.CorrectionID,
		FactCheckID:     m.FactCheckID,
		Type:            entities.CorrectionType(m.CorrectionType),
		Status:          entities.CorrectionStatus(m.Status),
		Details:         m.Details,
		RequesterEmail:  m.RequesterEmail,
		ResolutionNotes: m.ResolutionNotes,
		SLADeadline:     m.SLADeadline.UTC(),
		RowVersion:      m.RowVersion,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type correctionApplicationModel struct {
	ApplicationID  string    `gorm:"column:application_id;primaryKey"`
	CorrectionID   string    `gorm:"column:correction_id;index"`
	FactCheckID    string    `gorm:"column:fact_check_id;index:idx_fact_check_version,unique"`
	Version        int       `gorm:"column:version;index:idx_fact_check_version,unique"`
	AppliedBy      string    `gorm:"column:applied_by"`
	Changes        string    `gorm:"column:changes"`
	ChangesSummary string    `gorm:"column:changes_summary"`
	AppliedAt      time.Time `gorm:"column:applied_at"`
}

func (correctionApplicationModel) TableName() string {
	return "correction_applications"
}

func applicationModelFromEntity(item entities.CorrectionApplication) correctionApplicationModel {
	return correctionApplicationModel{
		ApplicationID:  strings.TrimSpace(item.ApplicationID),
		CorrectionID:   strings.TrimSpace(item.CorrectionID),
		FactCheckID:    strings.TrimSpace(item.FactCheckID),
		Version:        item.Version,
		AppliedBy:      strings.TrimSpace(item.AppliedBy),
		Changes:        item.Changes,
		ChangesSummary: item.ChangesSummary,
		AppliedAt:      item.AppliedAt.UTC(),
	}
}

func (m correctionApplicationModel) toEntity() entities.CorrectionApplication {
	return entities.CorrectionApplication{
		ApplicationID:  m.ApplicationID,
		CorrectionID:   m.CorrectionID,
		FactCheckID:    m.FactCheckID,
		Version:        m.Version,
		AppliedBy:      m.AppliedBy,
		Changes:        m.Changes,
		ChangesSummary: m.ChangesSummary,
		AppliedAt:      m.AppliedAt.UTC(),
	}
}
