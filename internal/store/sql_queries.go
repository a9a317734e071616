// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-tours/models"
	sq "github.com/Masterminds/squirrel"
)

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindFloat
	kindTime
)

// column describes an API field that list queries may filter and sort on.
type column struct {
	name string
	kind columnKind
}

// queryColumns maps API field names to SQL columns for one resource.
type queryColumns map[string]column

var tourColumns = queryColumns{
	"id":              {"id", kindInt},
	"name":            {"name", kindText},
	"slug":            {"slug", kindText},
	"duration":        {"duration", kindInt},
	"maxGroupSize":    {"max_group_size", kindInt},
	"difficulty":      {"difficulty", kindText},
	"ratingsAverage":  {"ratings_average", kindFloat},
	"ratingsQuantity": {"ratings_quantity", kindInt},
	"price":           {"price", kindFloat},
	"priceDiscount":   {"price_discount", kindFloat},
	"summary":         {"summary", kindText},
	"createdAt":       {"created_at", kindTime},
}

var userColumns = queryColumns{
	"id":        {"id", kindInt},
	"name":      {"name", kindText},
	"email":     {"email", kindText},
	"role":      {"role", kindText},
	"createdAt": {"created_at", kindTime},
}

var reviewColumns = queryColumns{
	"id":        {"r.id", kindInt},
	"rating":    {"r.rating", kindFloat},
	"tour":      {"r.tour_id", kindInt},
	"user":      {"r.user_id", kindInt},
	"createdAt": {"r.created_at", kindTime},
}

const (
	selectTourColumns = "id, name, slug, duration, max_group_size, difficulty, ratings_average, " +
		"ratings_quantity, price, price_discount, summary, description, image_cover, images, " +
		"start_dates, secret_tour, created_at"

	selectUserColumns = "id, name, email, photo, role, password, password_changed_at, active, created_at"

	selectReviewColumns = "r.id, r.review, r.rating, r.tour_id, r.user_id, r.created_at, u.name, u.photo"
)

const (
	tourStatsQuery = `SELECT UPPER(difficulty) AS difficulty,
		COUNT(*) AS num_tours,
		COALESCE(SUM(ratings_quantity), 0) AS num_ratings,
		AVG(ratings_average) AS avg_rating,
		AVG(price) AS avg_price,
		MIN(price) AS min_price,
		MAX(price) AS max_price
	FROM tours
	WHERE secret_tour = FALSE AND ratings_average >= $1
	GROUP BY UPPER(difficulty)
	ORDER BY avg_price ASC;`

	monthlyPlanQuery = `SELECT EXTRACT(MONTH FROM s.start_date AT TIME ZONE 'UTC')::int AS month,
		COUNT(*) AS num_tour_starts,
		json_agg(t.name ORDER BY t.name) AS tours
	FROM tours t
	CROSS JOIN LATERAL (
		SELECT d::timestamptz AS start_date
		FROM jsonb_array_elements_text(t.start_dates) AS d
	) s
	WHERE t.secret_tour = FALSE
		AND s.start_date >= $1
		AND s.start_date < $2
	GROUP BY month
	ORDER BY num_tour_starts DESC, month ASC
	LIMIT 12;`

	recalculateTourRatingsQuery = `UPDATE tours
	SET ratings_quantity = s.quantity,
		ratings_average = s.average
	FROM (
		SELECT COUNT(*) AS quantity,
			COALESCE(ROUND(AVG(rating)::numeric, 1), 4.5)::double precision AS average
		FROM reviews
		WHERE tour_id = $1
	) s
	WHERE tours.id = $1;`
)

// applyListQuery adds the filters, ordering and pagination of q to b.
// Filters and sort keys on fields missing from cols are ignored. Values that
// do not parse as the column type yield an [*InvalidValueError].
func applyListQuery(b sq.SelectBuilder, q models.ListQuery, cols queryColumns) (sq.SelectBuilder, error) {
	for _, f := range q.Filters {
		col, ok := cols[f.Field]
		if !ok {
			continue
		}

		values := make([]any, 0, len(f.Values))
		for _, raw := range f.Values {
			v, err := parseColumnValue(col.kind, raw)
			if err != nil {
				return b, &InvalidValueError{Field: f.Field, Value: raw}
			}
			values = append(values, v)
		}

		b = b.Where(filterCondition(col.name, f.Operator, values))
	}

	b = b.OrderBy(orderByClauses(q.Sort, cols)...)

	limit := q.Limit
	if limit < 1 {
		limit = models.DefaultLimit
	}

	return b.Limit(uint64(limit)).Offset(uint64(q.Offset())), nil
}

func filterCondition(col, op string, values []any) sq.Sqlizer {
	switch op {
	case models.OpGt:
		return sq.Gt{col: values[0]}
	case models.OpGte:
		return sq.GtOrEq{col: values[0]}
	case models.OpLt:
		return sq.Lt{col: values[0]}
	case models.OpLte:
		return sq.LtOrEq{col: values[0]}
	}

	if len(values) == 1 {
		return sq.Eq{col: values[0]}
	}
	return sq.Eq{col: values}
}

// orderByClauses falls back to newest first when no known sort key is given.
func orderByClauses(sort []models.SortField, cols queryColumns) []string {
	clauses := make([]string, 0, len(sort)+1)
	for _, s := range sort {
		col, ok := cols[s.Field]
		if !ok {
			continue
		}
		clauses = append(clauses, orderBy(col.name, s.Desc))
	}

	if len(clauses) == 0 {
		clauses = append(clauses, orderBy(cols["createdAt"].name, true))
	}

	// stable pagination
	return append(clauses, orderBy(cols["id"].name, false))
}

func orderBy(col string, desc bool) string {
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

func parseColumnValue(kind columnKind, raw string) (any, error) {
	switch kind {
	case kindInt:
		return strconv.ParseInt(raw, 10, 64)
	case kindFloat:
		return strconv.ParseFloat(raw, 64)
	case kindTime:
		for _, layout := range []string{time.RFC3339, time.DateOnly} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("unsupported time format %q", raw)
	default:
		return strings.TrimSpace(raw), nil
	}
}
