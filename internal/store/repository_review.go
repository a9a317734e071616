package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	sq "github.com/Masterminds/squirrel"
)

// reviewRepository is the PostgreSQL-backed implementation of
// [ReviewRepository]. Reads join the author's public fields from "users".
type reviewRepository struct {
	*DB
	logger *logger.Logger
}

// NewReviewRepository constructs a [ReviewRepository] backed by db.
func NewReviewRepository(db *DB, logger *logger.Logger) ReviewRepository {
	logger.Debug().Msg("creating review repository")
	return &reviewRepository{
		DB:     db,
		logger: logger,
	}
}

func selectReviews() sq.SelectBuilder {
	return psql.Select(selectReviewColumns).
		From("reviews r").
		Join("users u ON u.id = r.user_id")
}

// GetAll lists reviews matching query. Nested tour routes pass a "tour"
// equality filter.
func (p *reviewRepository) GetAll(ctx context.Context, query models.ListQuery) ([]models.Review, error) {
	log := logger.FromContext(ctx)

	builder, err := applyListQuery(selectReviews(), query, reviewColumns)
	if err != nil {
		return nil, err
	}

	stmt, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.GetAll").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, classifyPgError(err))
	}
	defer rows.Close()

	reviews := make([]models.Review, 0, 50)
	for rows.Next() {
		review, scanErr := scanReview(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "reviewRepository.GetAll").Msg("failed to scan review row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		reviews = append(reviews, review)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return reviews, nil
}

// GetByID returns the review with the given id or [ErrReviewNotFound].
func (p *reviewRepository) GetByID(ctx context.Context, id int64) (models.Review, error) {
	return p.getByID(ctx, p.DB, id)
}

// Create stores review and recalculates the ratings of its tour.
func (p *reviewRepository) Create(ctx context.Context, review models.Review) (models.Review, error) {
	log := logger.FromContext(ctx)

	stmt, args, err := psql.Insert("reviews").
		Columns("review", "rating", "tour_id", "user_id").
		Values(review.Review, review.Rating, review.TourID, review.UserID).
		Suffix("RETURNING id, review, rating, tour_id, user_id, created_at").
		ToSql()
	if err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.Create").Msg("failed to begin transaction")
		return models.Review{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var created models.Review
	err = tx.QueryRowContext(ctx, stmt, args...).
		Scan(&created.ID, &created.Review, &created.Rating, &created.TourID, &created.UserID, &created.CreatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "reviewRepository.Create").
			Int64("tour_id", review.TourID).
			Int64("user_id", review.UserID).
			Msg("failed to insert review")
		return models.Review{}, classifyPgError(err)
	}

	if err := p.recalculateTourRatings(ctx, tx, created.TourID); err != nil {
		return models.Review{}, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "reviewRepository.Create").Msg("failed to commit transaction")
		return models.Review{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return created, nil
}

// Update applies the non-nil fields of update and recalculates the ratings of
// the reviewed tour.
func (p *reviewRepository) Update(ctx context.Context, id int64, update models.ReviewUpdate) (models.Review, error) {
	log := logger.FromContext(ctx)

	set := make(map[string]any, 2)
	if update.Review != nil {
		set["review"] = *update.Review
	}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if len(set) == 0 {
		return p.GetByID(ctx, id)
	}

	stmt, args, err := psql.Update("reviews").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING tour_id").
		ToSql()
	if err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.Update").Msg("failed to begin transaction")
		return models.Review{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var tourID int64
	if err := tx.QueryRowContext(ctx, stmt, args...).Scan(&tourID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, ErrReviewNotFound
		}
		log.Err(err).Str("func", "reviewRepository.Update").Int64("review_id", id).Msg("failed to update review")
		return models.Review{}, classifyPgError(err)
	}

	if err := p.recalculateTourRatings(ctx, tx, tourID); err != nil {
		return models.Review{}, err
	}

	updated, err := p.getByID(ctx, tx, id)
	if err != nil {
		return models.Review{}, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "reviewRepository.Update").Msg("failed to commit transaction")
		return models.Review{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return updated, nil
}

// Delete removes a review and recalculates the ratings of its tour.
func (p *reviewRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	stmt, args, err := psql.Delete("reviews").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING tour_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.Delete").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var tourID int64
	if err := tx.QueryRowContext(ctx, stmt, args...).Scan(&tourID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReviewNotFound
		}
		log.Err(err).Str("func", "reviewRepository.Delete").Int64("review_id", id).Msg("failed to delete review")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := p.recalculateTourRatings(ctx, tx, tourID); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "reviewRepository.Delete").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Debug().
		Str("func", "reviewRepository.Delete").
		Int64("review_id", id).
		Int64("tour_id", tourID).
		Msg("review deleted")

	return nil
}

// queryRower is implemented by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (p *reviewRepository) getByID(ctx context.Context, q queryRower, id int64) (models.Review, error) {
	stmt, args, err := selectReviews().Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	review, err := scanReview(q.QueryRowContext(ctx, stmt, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Review{}, ErrReviewNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "reviewRepository.getByID").Int64("review_id", id).Msg("review query failed")
		return models.Review{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return review, nil
}

// recalculateTourRatings sets ratingsQuantity and ratingsAverage of a tour
// from its current reviews. A tour without reviews gets 0 and the default
// average.
func (p *reviewRepository) recalculateTourRatings(ctx context.Context, tx *sql.Tx, tourID int64) error {
	if _, err := tx.ExecContext(ctx, recalculateTourRatingsQuery, tourID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "reviewRepository.recalculateTourRatings").
			Int64("tour_id", tourID).
			Msg("failed to recalculate tour ratings")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func scanReview(row rowScanner) (models.Review, error) {
	var (
		r      models.Review
		author models.ReviewAuthor
	)

	err := row.Scan(&r.ID, &r.Review, &r.Rating, &r.TourID, &r.UserID, &r.CreatedAt, &author.Name, &author.Photo)
	if err != nil {
		return models.Review{}, err
	}

	author.ID = r.UserID
	r.User = &author

	return r, nil
}
