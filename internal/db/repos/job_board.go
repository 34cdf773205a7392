package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jobradar/jobradar/internal/db/models"
)

// JobBoardRepository provides access to job-board-related database operations
type JobBoardRepository struct {
	db *gorm.DB
}

// NewJobBoardRepository creates a new job board repository instance
func NewJobBoardRepository(db *gorm.DB) *JobBoardRepository {
	return &JobBoardRepository{db: db}
}

// Create creates a new job board
func (r *JobBoardRepository) Create(ctx context.Context, board *models.JobBoard) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// FirstOrCreate ensures a job board with the given slug exists, used by the
// startup seed. The existing row wins over the seed values.
func (r *JobBoardRepository) FirstOrCreate(ctx context.Context, board *models.JobBoard) error {
	return r.db.WithContext(ctx).
		Where(&models.JobBoard{Slug: board.Slug}).
		FirstOrCreate(board).Error
}

// GetByID retrieves a job board by its ID
func (r *JobBoardRepository) GetByID(ctx context.Context, id uint) (*models.JobBoard, error) {
	var board models.JobBoard
	if err := r.db.WithContext(ctx).First(&board, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get job board %d: %w", id, err)
	}
	return &board, nil
}

// GetBySlug retrieves a job board by its slug
func (r *JobBoardRepository) GetBySlug(ctx context.Context, slug string) (*models.JobBoard, error) {
	var board models.JobBoard
	err := r.db.WithContext(ctx).Where(&models.JobBoard{Slug: slug}).First(&board).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get job board %s: %w", slug, err)
	}
	return &board, nil
}

// List returns all job boards ordered by priority
func (r *JobBoardRepository) List(ctx context.Context) ([]models.JobBoard, error) {
	var boards []models.JobBoard
	err := r.db.WithContext(ctx).Order("priority ASC, slug ASC").Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list job boards: %w", err)
	}
	return boards, nil
}

// ListEnabled returns enabled job boards ordered by priority
func (r *JobBoardRepository) ListEnabled(ctx context.Context) ([]models.JobBoard, error) {
	var boards []models.JobBoard
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("priority ASC, slug ASC").
		Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled job boards: %w", err)
	}
	return boards, nil
}

// Update updates a job board
func (r *JobBoardRepository) Update(ctx context.Context, id uint, board *models.JobBoard) error {
	return r.db.WithContext(ctx).
		Where(&models.JobBoard{Model: gorm.Model{ID: id}}).
		Updates(board).Error
}

// Delete removes a job board and its pair links
func (r *JobBoardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_board_id = ?", id).Delete(&models.JobBoardCompany{}).Error; err != nil {
			return fmt.Errorf("failed to delete pair links for job board %d: %w", id, err)
		}
		return tx.Delete(&models.JobBoard{}, id).Error
	})
}
