package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	sq "github.com/Masterminds/squirrel"
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// tourRepository is the PostgreSQL-backed implementation of [TourRepository].
type tourRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTourRepository constructs a [TourRepository] backed by db.
func NewTourRepository(db *DB, logger *logger.Logger) TourRepository {
	logger.Debug().Msg("creating tour repository")
	return &tourRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll returns the visible tours matching query.
func (r *tourRepository) GetAll(ctx context.Context, query models.ListQuery) ([]models.Tour, error) {
	log := logger.FromContext(ctx)

	builder := psql.Select(selectTourColumns).
		From("tours").
		Where(sq.Eq{"secret_tour": false})

	builder, err := applyListQuery(builder, query, tourColumns)
	if err != nil {
		return nil, err
	}

	stmt, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "tourRepository.GetAll").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", "tourRepository.GetAll").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, classifyPgError(err))
	}
	defer rows.Close()

	tours := make([]models.Tour, 0, 50)
	for rows.Next() {
		tour, scanErr := scanTour(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "tourRepository.GetAll").Msg("failed to scan tour row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		tours = append(tours, tour)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "tourRepository.GetAll").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return tours, nil
}

// GetByID returns the visible tour with the given id or [ErrTourNotFound].
func (r *tourRepository) GetByID(ctx context.Context, id int64) (models.Tour, error) {
	stmt, args, err := psql.Select(selectTourColumns).
		From("tours").
		Where(sq.Eq{"id": id, "secret_tour": false}).
		ToSql()
	if err != nil {
		return models.Tour{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "tourRepository.GetByID", stmt, args)
}

// Create inserts tour and returns the stored row.
func (r *tourRepository) Create(ctx context.Context, tour models.Tour) (models.Tour, error) {
	images, startDates, err := encodeTourLists(tour.Images, tour.StartDates)
	if err != nil {
		return models.Tour{}, err
	}

	stmt, args, err := psql.Insert("tours").
		Columns(
			"name", "slug", "duration", "max_group_size", "difficulty",
			"ratings_average", "ratings_quantity", "price", "price_discount",
			"summary", "description", "image_cover", "images", "start_dates", "secret_tour",
		).
		Values(
			tour.Name, models.Slugify(tour.Name), tour.Duration, tour.MaxGroupSize, string(tour.Difficulty),
			tour.RatingsAverage, tour.RatingsQuantity, tour.Price, tour.PriceDiscount,
			tour.Summary, tour.Description, tour.ImageCover, images, startDates, tour.SecretTour,
		).
		Suffix("RETURNING " + selectTourColumns).
		ToSql()
	if err != nil {
		return models.Tour{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "tourRepository.Create", stmt, args)
}

// Update applies the non-nil fields of update to a visible tour. Renaming a
// tour regenerates its slug.
func (r *tourRepository) Update(ctx context.Context, id int64, update models.TourUpdate) (models.Tour, error) {
	set, err := tourUpdateSet(update)
	if err != nil {
		return models.Tour{}, err
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	stmt, args, err := psql.Update("tours").
		SetMap(set).
		Where(sq.Eq{"id": id, "secret_tour": false}).
		Suffix("RETURNING " + selectTourColumns).
		ToSql()
	if err != nil {
		return models.Tour{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "tourRepository.Update", stmt, args)
}

// Delete removes a visible tour together with its reviews.
func (r *tourRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	stmt, args, err := psql.Delete("tours").
		Where(sq.Eq{"id": id, "secret_tour": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", "tourRepository.Delete").Int64("tour_id", id).Msg("failed to delete tour")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, classifyPgError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrTourNotFound
	}

	return nil
}

// Stats groups visible tours rated at least minRating by difficulty.
func (r *tourRepository) Stats(ctx context.Context, minRating float64) ([]models.TourStats, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, tourStatsQuery, minRating)
	if err != nil {
		log.Err(err).Str("func", "tourRepository.Stats").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	stats := make([]models.TourStats, 0, 3)
	for rows.Next() {
		var s models.TourStats
		if err := rows.Scan(&s.Difficulty, &s.NumTours, &s.NumRatings, &s.AvgRating, &s.AvgPrice, &s.MinPrice, &s.MaxPrice); err != nil {
			log.Err(err).Str("func", "tourRepository.Stats").Msg("failed to scan stats row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		stats = append(stats, s)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return stats, nil
}

// MonthlyPlan counts visible tour starts per month of year, busiest month
// first.
func (r *tourRepository) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	log := logger.FromContext(ctx)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	rows, err := r.db.QueryContext(ctx, monthlyPlanQuery, from, to)
	if err != nil {
		log.Err(err).Str("func", "tourRepository.MonthlyPlan").Int("year", year).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	plan := make([]models.MonthlyPlan, 0, 12)
	for rows.Next() {
		var (
			p     models.MonthlyPlan
			names []byte
		)
		if err := rows.Scan(&p.Month, &p.NumTourStarts, &names); err != nil {
			log.Err(err).Str("func", "tourRepository.MonthlyPlan").Msg("failed to scan plan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if err := json.Unmarshal(names, &p.Tours); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		plan = append(plan, p)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return plan, nil
}

func (r *tourRepository) queryOne(ctx context.Context, fn, stmt string, args []any) (models.Tour, error) {
	log := logger.FromContext(ctx)

	tour, err := scanTour(r.db.QueryRowContext(ctx, stmt, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tour{}, ErrTourNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("tour query failed")
		return models.Tour{}, classifyPgError(err)
	}

	return tour, nil
}

func scanTour(row rowScanner) (models.Tour, error) {
	var (
		t             models.Tour
		difficulty    string
		priceDiscount sql.NullFloat64
		images        []byte
		startDates    []byte
	)

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.Duration,
		&t.MaxGroupSize,
		&difficulty,
		&t.RatingsAverage,
		&t.RatingsQuantity,
		&t.Price,
		&priceDiscount,
		&t.Summary,
		&t.Description,
		&t.ImageCover,
		&images,
		&startDates,
		&t.SecretTour,
		&t.CreatedAt,
	)
	if err != nil {
		return models.Tour{}, err
	}

	t.Difficulty = models.Difficulty(difficulty)
	if priceDiscount.Valid {
		t.PriceDiscount = &priceDiscount.Float64
	}
	if err := decodeJSONList(images, &t.Images); err != nil {
		return models.Tour{}, err
	}
	if err := decodeJSONList(startDates, &t.StartDates); err != nil {
		return models.Tour{}, err
	}

	return t, nil
}

func decodeJSONList[T any](data []byte, dst *[]T) error {
	*dst = []T{}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

func encodeTourLists(images []string, startDates []time.Time) (string, string, error) {
	if images == nil {
		images = []string{}
	}
	if startDates == nil {
		startDates = []time.Time{}
	}

	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	datesJSON, err := json.Marshal(startDates)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return string(imagesJSON), string(datesJSON), nil
}

func tourUpdateSet(u models.TourUpdate) (map[string]any, error) {
	set := make(map[string]any)

	if u.Name != nil {
		set["name"] = *u.Name
		set["slug"] = models.Slugify(*u.Name)
	}
	if u.Duration != nil {
		set["duration"] = *u.Duration
	}
	if u.MaxGroupSize != nil {
		set["max_group_size"] = *u.MaxGroupSize
	}
	if u.Difficulty != nil {
		set["difficulty"] = string(*u.Difficulty)
	}
	if u.RatingsAverage != nil {
		set["ratings_average"] = models.RoundRating(*u.RatingsAverage)
	}
	if u.RatingsQuantity != nil {
		set["ratings_quantity"] = *u.RatingsQuantity
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.PriceDiscount != nil {
		set["price_discount"] = *u.PriceDiscount
	}
	if u.Summary != nil {
		set["summary"] = *u.Summary
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.ImageCover != nil {
		set["image_cover"] = *u.ImageCover
	}
	if u.SecretTour != nil {
		set["secret_tour"] = *u.SecretTour
	}
	if u.Images != nil || u.StartDates != nil {
		var images []string
		var dates []time.Time
		if u.Images != nil {
			images = *u.Images
		}
		if u.StartDates != nil {
			dates = *u.StartDates
		}
		imagesJSON, datesJSON, err := encodeTourLists(images, dates)
		if err != nil {
			return nil, err
		}
		if u.Images != nil {
			set["images"] = imagesJSON
		}
		if u.StartDates != nil {
			set["start_dates"] = datesJSON
		}
	}

	return set, nil
}
