package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sujalbistaa/moodcanvas/internal/models"
)

// SQLStore persists submissions through gorm. Rows are ordered by their
// auto-increment sequence, which is the insertion order.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore migrates the submissions table and returns a store on db.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&models.SubmissionRow{}); err != nil {
		return nil, fmt.Errorf("migrate submissions: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Append(ctx context.Context, sub models.Submission) (models.Submission, error) {
	row := models.RowFromSubmission(sub)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Submission{}, fmt.Errorf("append submission: %w", err)
	}
	return sub, nil
}

func (s *SQLStore) ListAll(ctx context.Context) ([]models.Submission, error) {
	var rows []models.SubmissionRow
	if err := s.db.WithContext(ctx).Order("seq asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	out := make([]models.Submission, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Submission())
	}
	return out, nil
}

func (s *SQLStore) Vote(ctx context.Context, id int64) (models.Submission, error) {
	var row models.SubmissionRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("submission_id = ?", id).
			Order("seq asc").
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&row).Update("votes", gorm.Expr("votes + 1")).Error; err != nil {
			return err
		}
		return tx.First(&row, row.Seq).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Submission{}, ErrNotFound
		}
		return models.Submission{}, fmt.Errorf("vote on submission %d: %w", id, err)
	}
	return row.Submission(), nil
}
