package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "clipcast/contexts/content/submission-service/domain/errors"
	"clipcast/contexts/content/submission-service/ports"

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

func (r *Repository) CreateSubmission(ctx context.Context, submission ports.Submission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := submissionModelFromEntity(submission)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrInvalidRequest
			}
			return err
		}
		for _, entry := range submission.Platforms {
			platformRow := platformModelFromEntry(submission.SubmissionID, entry)
			if err := tx.Create(&platformRow).Error; err != nil {
				if isUniqueViolation(err) {
					return domainerrors.ErrInvalidRequest
				}
				return err
			}
		}
		return nil
	})
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (ports.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return ports.Submission{}, err
	}

	platforms, err := r.loadPlatforms(ctx, []string{row.SubmissionID})
	if err != nil {
		return ports.Submission{}, err
	}
	return row.toEntity(platforms[row.SubmissionID]), nil
}

// UpdateSubmission rewrites the row and its platform entries together so the
// stored aggregate never drifts from the entries it was derived from.
func (r *Repository) UpdateSubmission(ctx context.Context, submission ports.Submission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&submissionModel{}).
			Where("submission_id = ?", strings.TrimSpace(submission.SubmissionID)).
			Updates(map[string]any{
				"caption":       strings.TrimSpace(submission.Caption),
				"feedback":      strings.TrimSpace(submission.Feedback),
				"payout_amount": submission.PayoutAmount,
				"status":        string(submission.Status),
				"updated_at":    submission.UpdatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrSubmissionNotFound
		}

		for _, entry := range submission.Platforms {
			if err := tx.Model(&platformModel{}).
				Where("submission_id = ? AND platform = ?", strings.TrimSpace(submission.SubmissionID), entry.Platform).
				Updates(map[string]any{
					"status":   string(entry.Status),
					"post_url": strings.TrimSpace(entry.PostURL),
				}).
				Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) ListBySource(ctx context.Context, source ports.SourceRef) ([]ports.Submission, error) {
	var rows []submissionModel
	if err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", string(source.Type), strings.TrimSpace(source.ID)).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return r.attachPlatforms(ctx, rows)
}

func (r *Repository) ListByCreator(ctx context.Context, creatorID string) ([]ports.Submission, error) {
	var rows []submissionModel
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", strings.TrimSpace(creatorID)).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return r.attachPlatforms(ctx, rows)
}

func (r *Repository) DeleteForCreator(ctx context.Context, source ports.SourceRef, creatorID string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&submissionModel{}).
			Where("source_type = ? AND source_id = ? AND creator_id = ?",
				string(source.Type), strings.TrimSpace(source.ID), strings.TrimSpace(creatorID)).
			Pluck("submission_id", &ids).
			Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("submission_id IN ?", ids).Delete(&platformModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("submission_id IN ?", ids).Delete(&submissionModel{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *Repository) attachPlatforms(ctx context.Context, rows []submissionModel) ([]ports.Submission, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.SubmissionID)
	}
	platforms, err := r.loadPlatforms(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ports.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity(platforms[row.SubmissionID]))
	}
	return items, nil
}

func (r *Repository) loadPlatforms(ctx context.Context, submissionIDs []string) (map[string][]ports.PlatformEntry, error) {
	result := make(map[string][]ports.PlatformEntry, len(submissionIDs))
	if len(submissionIDs) == 0 {
		return result, nil
	}

	var rows []platformModel
	if err := r.db.WithContext(ctx).
		Where("submission_id IN ?", submissionIDs).
		Order("platform ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.SubmissionID] = append(result[row.SubmissionID], ports.PlatformEntry{
			Platform: row.Platform,
			Status:   ports.PlatformStatus(row.Status),
			PostURL:  row.PostURL,
		})
	}
	return result, nil
}

type submissionModel struct {
	SubmissionID string    `gorm:"column:submission_id;primaryKey"`
	CreatorID    string    `gorm:"column:creator_id"`
	SourceType   string    `gorm:"column:source_type"`
	SourceID     string    `gorm:"column:source_id"`
	VideoURL     string    `gorm:"column:video_url"`
	Caption      string    `gorm:"column:caption"`
	Feedback     string    `gorm:"column:feedback"`
	PayoutAmount float64   `gorm:"column:payout_amount"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (submissionModel) TableName() string {
	return "video_submissions"
}

func submissionModelFromEntity(item ports.Submission) submissionModel {
	return submissionModel{
		SubmissionID: strings.TrimSpace(item.SubmissionID),
		CreatorID:    strings.TrimSpace(item.CreatorID),
		SourceType:   string(item.Source.Type),
		SourceID:     strings.TrimSpace(item.Source.ID),
		VideoURL:     strings.TrimSpace(item.VideoURL),
		Caption:      strings.TrimSpace(item.Caption),
		Feedback:     strings.TrimSpace(item.Feedback),
		PayoutAmount: item.PayoutAmount,
		Status:       string(item.Status),
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func (m submissionModel) toEntity(platforms []ports.PlatformEntry) ports.Submission {
	return ports.Submission{
		SubmissionID: m.SubmissionID,
		CreatorID:    m.CreatorID,
		Source: ports.SourceRef{
			Type: ports.SourceType(m.SourceType),
			ID:   m.SourceID,
		},
		VideoURL:     m.VideoURL,
		Caption:      m.Caption,
		Feedback:     m.Feedback,
		PayoutAmount: m.PayoutAmount,
		Status:       ports.PlatformStatus(m.Status),
		Platforms:    platforms,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type platformModel struct {
	SubmissionID string `gorm:"column:submission_id;uniqueIndex:idx_submission_platform"`
	Platform     string `gorm:"column:platform;uniqueIndex:idx_submission_platform"`
	Status       string `gorm:"column:status"`
	PostURL      string `gorm:"column:post_url"`
}

func (platformModel) TableName() string {
	return "video_submission_platforms"
}

func platformModelFromEntry(submissionID string, entry ports.PlatformEntry) platformModel {
	return platformModel{
		SubmissionID: strings.TrimSpace(submissionID),
		Platform:     entry.Platform,
		Status:       string(entry.Status),
		PostURL:      strings.TrimSpace(entry.PostURL),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
