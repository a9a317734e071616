// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Comparison operators accepted in list filters, e.g. price[gte]=500.
const (
	OpEq  = "eq"
	OpGt  = "gt"
	OpGte = "gte"
	OpLt  = "lt"
	OpLte = "lte"
)

const (
	DefaultPage  = 1
	DefaultLimit = 100
)

// reservedParams are query keys with a meaning of their own that are never
// treated as filters.
var reservedParams = map[string]struct{}{
	"page":   {},
	"sort":   {},
	"limit":  {},
	"fields": {},
}

// Filter restricts a list to rows whose Field compares to Values with Operator.
// An equality filter with several values matches any of them.
type Filter struct {
	Field    string
	Operator string
	Values   []string
}

// SortField orders a list by Field.
type SortField struct {
	Field string
	Desc  bool
}

// ListQuery carries the filtering, sorting, field limiting and pagination
// options of a list request.
type ListQuery struct {
	Filters []Filter
	Sort    []SortField
	// Fields limits the returned attributes. Names prefixed with "-" are
	// excluded instead.
	Fields []string
	Page   int
	Limit  int
}

// NewListQuery parses list options from URL query values.
//
// Plain keys become equality filters, keys of the form field[op] become
// comparison filters. Unknown operators are ignored. Invalid page or limit
// values fall back to the defaults.
func NewListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Page:  parsePositive(values.Get("page"), DefaultPage),
		Limit: parsePositive(values.Get("limit"), DefaultLimit),
	}

	for key, vals := range values {
		if _, ok := reservedParams[key]; ok || len(vals) == 0 {
			continue
		}

		field, op := SplitParamKey(key)
		switch op {
		case OpEq, OpGt, OpGte, OpLt, OpLte:
		default:
			continue
		}
		if op != OpEq {
			vals = vals[len(vals)-1:]
		}
		q.Filters = append(q.Filters, Filter{Field: field, Operator: op, Values: vals})
	}

	for _, f := range splitList(values.Get("sort")) {
		if name, ok := strings.CutPrefix(f, "-"); ok {
			q.Sort = append(q.Sort, SortField{Field: name, Desc: true})
			continue
		}
		q.Sort = append(q.Sort, SortField{Field: f})
	}

	q.Fields = splitList(values.Get("fields"))

	return q
}

// Offset returns the number of rows to skip for the requested page.
func (q ListQuery) Offset() int {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return (page - 1) * limit
}

// WithFilter returns a copy of q with an additional equality filter.
func (q ListQuery) WithFilter(field string, values ...string) ListQuery {
	filters := make([]Filter, 0, len(q.Filters)+1)
	filters = append(filters, q.Filters...)
	q.Filters = append(filters, Filter{Field: field, Operator: OpEq, Values: values})
	return q
}

// SplitParamKey splits a query key like "price[gte]" into its field and
// operator. Keys without brackets are equality filters.
func SplitParamKey(key string) (string, string) {
	field, rest, found := strings.Cut(key, "[")
	if !found {
		return key, OpEq
	}

	op, ok := strings.CutSuffix(rest, "]")
	if !ok {
		return field, ""
	}
	return field, op
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
