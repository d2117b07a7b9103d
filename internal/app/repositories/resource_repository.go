package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
	"github.com/mentorlink/backend/internal/pkg/dberrors"
	"github.com/mentorlink/backend/internal/pkg/helpers"
)

// ResourceRepository handles database operations for resources and their reviews
type ResourceRepository struct {
	db *pgxpool.Pool
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{db: db}
}

const resourceColumns = `id, title, description, resource_type, url, eligibility, tags,
	created_by, average_rating, rating_count, created_at, updated_at`

func scanResource(row pgx.Row) (*models.Resource, error) {
	var res models.Resource
	err := row.Scan(
		&res.ID,
		&res.Title,
		&res.Description,
		&res.ResourceType,
		&res.URL,
		&res.Eligibility,
		&res.Tags,
		&res.CreatedBy,
		&res.AverageRating,
		&res.RatingCount,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts a new resource
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	query := `
		INSERT INTO resources (title, description, resource_type, url, eligibility, tags, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		resource.Title, resource.Description, resource.ResourceType, resource.URL,
		resource.Eligibility, resource.Tags, resource.CreatedBy).
		Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating resource: %w", err)
	}

	return nil
}

// GetByID retrieves a resource by ID
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

	resource, err := scanResource(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving resource: %w", err)
	}

	return resource, nil
}

// List retrieves resources with optional type, tag and search filters
func (r *ResourceRepository) List(ctx context.Context, filter dto.ResourceFilter) ([]*models.Resource, int64, error) {
	queryBuilder := squirrel.Select(
		"id", "title", "description", "resource_type", "url", "eligibility", "tags",
		"created_by", "average_rating", "rating_count", "created_at", "updated_at",
	).
		From("resources").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.ResourceType != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"resource_type": *filter.ResourceType})
	}
	if filter.Tag != nil {
		queryBuilder = queryBuilder.Where("? = ANY(tags)", *filter.Tag)
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		queryBuilder = queryBuilder.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	queryBuilder = queryBuilder.
		Column("COUNT(*) OVER()").
		Limit(uint64(limit)).
		Offset(offset)

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var resources []*models.Resource
	var total int64

	for rows.Next() {
		var res models.Resource
		err := rows.Scan(
			&res.ID, &res.Title, &res.Description, &res.ResourceType, &res.URL,
			&res.Eligibility, &res.Tags, &res.CreatedBy, &res.AverageRating,
			&res.RatingCount, &res.CreatedAt, &res.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning resource row: %w", err)
		}
		resources = append(resources, &res)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating resource rows: %w", err)
	}

	return resources, total, nil
}

// Update mutates an existing resource
func (r *ResourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	result, err := r.db.Exec(ctx, `
		UPDATE resources
		SET title = $1, description = $2, url = $3, eligibility = $4, tags = $5, updated_at = NOW()
		WHERE id = $6`,
		resource.Title, resource.Description, resource.URL, resource.Eligibility,
		resource.Tags, resource.ID)
	if err != nil {
		return fmt.Errorf("error updating resource: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes a resource and its reviews
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting resource: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetReviews retrieves all reviews for a resource, newest first
func (r *ResourceRepository) GetReviews(ctx context.Context, resourceID int64) ([]models.ResourceReview, error) {
	query := `
		SELECT id, resource_id, user_id, rating, comment, created_at
		FROM resource_reviews
		WHERE resource_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving resource reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.ResourceReview
	for rows.Next() {
		var rev models.ResourceReview
		if err := rows.Scan(&rev.ID, &rev.ResourceID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning review row: %w", err)
		}
		reviews = append(reviews, rev)
	}

	return reviews, rows.Err()
}

// AddReviewAndRecompute appends a review (one per user per resource) and
// recomputes the rounded average in one transaction
func (r *ResourceRepository) AddReviewAndRecompute(ctx context.Context, review *models.ResourceReview) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO resource_reviews (resource_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		review.ResourceID, review.UserID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyReviewed
		}
		return fmt.Errorf("error inserting resource review: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE resources res
		SET average_rating = sub.avg_rating,
		    rating_count   = sub.cnt,
		    updated_at     = NOW()
		FROM (
			SELECT ROUND(AVG(rating)::numeric, 1) AS avg_rating, COUNT(*) AS cnt
			FROM resource_reviews
			WHERE resource_id = $1
		) sub
		WHERE res.id = $1`,
		review.ResourceID)
	if err != nil {
		return fmt.Errorf("error recomputing resource rating: %w", err)
	}

	return tx.Commit(ctx)
}
