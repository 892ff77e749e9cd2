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

package main

import (
	"fmt"
	"strings"

	"github.com/reelkeep/reelkeep/library"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "search the local library",
	Long:  `Filter, sort and page through the cached library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doSearch(strings.Join(args, " "))
	},
}

var (
	searchCategories []int64
	searchFormats    []string
	searchRatings    []string
	searchTV         bool
	searchSeen       string
	searchOwned      string
	searchFavorite   string
	searchSort       string
	searchPage       int
	searchSize       int
	searchIndex      bool
)

var sortOrders = map[string]library.SortOrder{
	"name":    library.SortNameAsc,
	"-name":   library.SortNameDesc,
	"year":    library.SortYearAsc,
	"-year":   library.SortYearDesc,
	"rating":  library.SortRatingAsc,
	"-rating": library.SortRatingDesc,
	"votes":   library.SortVoteCountAsc,
	"-votes":  library.SortVoteCountDesc,
	"format":  library.SortFormatAsc,
	"-added":  library.SortAddedDesc,
	"-loaned": library.SortLoanedDesc,
}

func triFlag(v string) (library.TriState, error) {
	switch v {
	case "", "any":
		return library.TriAny, nil
	case "yes", "true":
		return library.TriEnabled, nil
	case "no", "false":
		return library.TriDisabled, nil
	}
	return library.TriAny, fmt.Errorf("bad tri-state %q", v)
}

func doSearch(q string) error {
	cfg := getConfig()
	l := library.NewLibrary(cfg)
	if err := l.Open(); err != nil {
		return err
	}
	defer l.Close()

	if searchIndex {
		for _, m := range l.SearchIndex(q, searchSize) {
			printMovie(l, m)
		}
		return nil
	}

	seen, err := triFlag(searchSeen)
	if err != nil {
		return err
	}
	owned, err := triFlag(searchOwned)
	if err != nil {
		return err
	}
	favorite, err := triFlag(searchFavorite)
	if err != nil {
		return err
	}
	sort, ok := sortOrders[searchSort]
	if !ok {
		return fmt.Errorf("bad sort %q", searchSort)
	}
	if searchSize == 0 {
		searchSize = cfg.Library.PageSize
	}

	request := library.SearchRequest{
		Filters: library.SearchFilters{
			Query:      q,
			Categories: searchCategories,
			Formats:    searchFormats,
			Movies:     true,
			TV:         searchTV,
			Seen:       seen,
			Owned:      owned,
			Favorite:   favorite,
			AgeRatings: searchRatings,
		},
		Sort:     sort,
		Page:     searchPage,
		PageSize: searchSize,
	}
	if err := request.Validate(); err != nil {
		return err
	}
	result, err := l.Search(request)
	if err != nil {
		return err
	}
	for _, m := range result.Movies {
		printMovie(l, m)
	}
	fmt.Printf("%d of %d\n", len(result.Movies), result.Total)
	return nil
}

func printMovie(l *library.Library, m library.Movie) {
	var marks []string
	if m.Favorite {
		marks = append(marks, "fav")
	}
	if m.Seen {
		marks = append(marks, "seen")
	}
	if !m.LoanedAt.IsZero() {
		marks = append(marks, "loaned")
	}
	fmt.Printf("%d %s (%s) %s %s\n", m.TMID, m.Title, m.Year,
		m.Format, strings.Join(marks, ","))
}

func init() {
	searchCmd.Flags().Int64SliceVarP(&searchCategories, "category", "g", nil, "category ids")
	searchCmd.Flags().StringSliceVarP(&searchFormats, "format", "f", nil, "formats")
	searchCmd.Flags().StringSliceVarP(&searchRatings, "rating", "r", nil, "age ratings")
	searchCmd.Flags().BoolVarP(&searchTV, "tv", "t", false, "include tv")
	searchCmd.Flags().StringVar(&searchSeen, "seen", "any", "seen filter (any/yes/no)")
	searchCmd.Flags().StringVar(&searchOwned, "owned", "any", "owned filter (any/yes/no)")
	searchCmd.Flags().StringVar(&searchFavorite, "favorite", "any", "favorite filter (any/yes/no)")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", "name", "sort order")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 0, "page index")
	searchCmd.Flags().IntVarP(&searchSize, "size", "n", 0, "page size")
	searchCmd.Flags().BoolVarP(&searchIndex, "keywords", "k", false, "full-text keyword search")
	rootCmd.AddCommand(searchCmd)
}
