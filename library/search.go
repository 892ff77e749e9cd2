// Copyright (C) 2025 The Reelkeep Authors.
//
// This file is part of Reelkeep.
//
// Reelkeep is free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Reelkeep is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License for
// more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Reelkeep.  If not, see <https://www.gnu.org/licenses/>.

package library

import (
	"errors"
	"fmt"
	"strings"
)

type TriState int

const (
	TriAny TriState = iota
	TriEnabled
	TriDisabled
)

type SortOrder int

const (
	SortNameAsc SortOrder = iota
	SortNameDesc
	SortYearAsc
	SortYearDesc
	SortRatingAsc
	SortRatingDesc
	SortVoteCountAsc
	SortVoteCountDesc
	SortFormatAsc
	SortAddedDesc
	SortLoanedDesc
)

// SearchFilters are combined with AND; within each membership filter
// the requested values form an OR group. An empty set matches
// everything.
type SearchFilters struct {
	Query      string
	Categories []int64
	Formats    []string
	Movies     bool
	TV         bool
	Seen       TriState
	Owned      TriState
	Favorite   TriState
	AgeRatings []string
}

type SearchRequest struct {
	Filters  SearchFilters
	Sort     SortOrder
	Page     int
	PageSize int
}

var ErrNoMediaType = errors.New("search requires movies, tv, or both")

// Validate rejects a request that includes neither movies nor TV
// rather than silently treating it as both.
func (r SearchRequest) Validate() error {
	if !r.Filters.Movies && !r.Filters.TV {
		return ErrNoMediaType
	}
	return nil
}

// Query is a parameterized statement ready for execution.
type Query struct {
	SQL  string
	Args []interface{}
}

type SearchResult struct {
	Movies []Movie
	Total  int64
}

// base relation: summary rows with detail fields as fallbacks and the
// user state row for category membership
const searchFrom = ` from movies` +
	` left join movie_details on movie_details.tm_id = movies.tm_id` +
	` and movie_details.deleted_at is null` +
	` left join user_movie_states on user_movie_states.tm_id = movies.tm_id` +
	` and user_movie_states.deleted_at is null` +
	` where movies.deleted_at is null`

// Compile builds the paginated result query and the matching count
// query. Both are assembled from one predicate and argument list and
// diverge only after that point, so they always agree on which rows
// match. Compile is total; Validate is the caller's concern.
func Compile(r SearchRequest) (result Query, count Query) {
	var preds []string
	var args []interface{}

	f := r.Filters
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		preds = append(preds, `(lower(movies.title) like ?`+
			` or movies.year like ?`+
			` or lower(coalesce(nullif(movie_details.overview, ''), movie_details.plot, '')) like ?)`)
		args = append(args, pattern, pattern, pattern)
	}

	if len(f.Categories) > 0 {
		group := make([]string, 0, len(f.Categories))
		for _, id := range f.Categories {
			group = append(group,
				`(',' || coalesce(user_movie_states.categories, '') || ',') like ?`)
			args = append(args, fmt.Sprintf("%%,%d,%%", id))
		}
		preds = append(preds, "("+strings.Join(group, " or ")+")")
	}

	if len(f.Formats) > 0 {
		group := make([]string, 0, len(f.Formats))
		for _, format := range f.Formats {
			group = append(group, `movies.format = ?`)
			args = append(args, format)
		}
		preds = append(preds, "("+strings.Join(group, " or ")+")")
	}

	if f.Movies != f.TV {
		preds = append(preds, `movies.media_type = ?`)
		if f.Movies {
			args = append(args, MediaMovie)
		} else {
			args = append(args, MediaTV)
		}
	}

	preds, args = triState(preds, args, `movies.seen`, f.Seen)
	preds, args = triState(preds, args, `movies.owned`, f.Owned)
	preds, args = triState(preds, args, `movies.favorite`, f.Favorite)

	if len(f.AgeRatings) > 0 {
		group := make([]string, 0, len(f.AgeRatings))
		for _, rating := range f.AgeRatings {
			group = append(group, `movies.certification = ?`)
			args = append(args, rating)
		}
		preds = append(preds, "("+strings.Join(group, " or ")+")")
	}

	where := searchFrom
	if len(preds) > 0 {
		where += " and " + strings.Join(preds, " and ")
	}

	result.SQL = `select movies.*` + where + ` order by ` + orderBy(r.Sort) +
		` limit ? offset ?`
	result.Args = append(append([]interface{}{}, args...),
		r.PageSize, r.Page*r.PageSize)

	count.SQL = `select count(*)` + where
	count.Args = args
	return
}

func triState(preds []string, args []interface{}, column string,
	state TriState) ([]string, []interface{}) {
	switch state {
	case TriEnabled:
		preds = append(preds, column+` = ?`)
		args = append(args, 1)
	case TriDisabled:
		preds = append(preds, column+` = ?`)
		args = append(args, 0)
	}
	return preds, args
}

// orderBy maps a sort order to an order clause with the row id as a
// deterministic tiebreak.
func orderBy(sort SortOrder) string {
	switch sort {
	case SortNameAsc:
		return `lower(movies.sort_title) asc, movies.id asc`
	case SortNameDesc:
		return `lower(movies.sort_title) desc, movies.id asc`
	case SortYearAsc:
		return `movies.year asc, movies.id asc`
	case SortYearDesc:
		return `movies.year desc, movies.id asc`
	case SortRatingAsc:
		return `movies.vote_average asc, movies.id asc`
	case SortRatingDesc:
		return `movies.vote_average desc, movies.id asc`
	case SortVoteCountAsc:
		return `movies.vote_count asc, movies.id asc`
	case SortVoteCountDesc:
		return `movies.vote_count desc, movies.id asc`
	case SortFormatAsc:
		return `movies.format asc, movies.id asc`
	case SortAddedDesc:
		return `movies.added_at desc, movies.id asc`
	case SortLoanedDesc:
		return `movies.loaned_at desc, movies.id asc`
	}
	return `movies.id asc`
}

// Search compiles and executes a request against the cache.
func (l *Library) Search(r SearchRequest) (*SearchResult, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	resultQuery, countQuery := Compile(r)
	var movies []Movie
	if err := l.db.Raw(resultQuery.SQL, resultQuery.Args...).
		Scan(&movies).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := l.db.Raw(countQuery.SQL, countQuery.Args...).
		Scan(&total).Error; err != nil {
		return nil, err
	}
	return &SearchResult{Movies: movies, Total: total}, nil
}
