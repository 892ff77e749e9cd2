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
	"time"

	"github.com/reelkeep/reelkeep/lib/gorm"
	"github.com/reelkeep/reelkeep/lib/str"
)

const (
	MediaMovie = "movie"
	MediaTV    = "tv"

	LoanStatusOut      = "out"
	LoanStatusReturned = "returned"
)

// Movie is the summary row, authoritative for list views. One row per
// known movie. Favorite/Seen/Owned/Format are projections of
// UserMovieState and are reconciled on every path that touches them.
type Movie struct {
	gorm.Model
	TMID               int64 `gorm:"uniqueIndex:idx_movie_tmid"`
	Title              string
	SortTitle          string
	Year               string // empty = unknown
	PosterPath         string
	VoteAverage        float32
	VoteCount          int
	Certification      string
	CertificationLabel string
	Genres             string // comma list
	MediaType          string
	Favorite           bool
	Seen               bool
	Owned              bool
	Format             string
	AddedAt            time.Time
	LoanedAt           time.Time
}

// MovieDetail is the superset row, created lazily on first detail
// fetch. ActorsLoaded means the Actors id list is complete and every
// id resolves to a stored Actor row.
type MovieDetail struct {
	gorm.Model
	TMID               int64 `gorm:"uniqueIndex:idx_detail_tmid"`
	IMID               string
	Title              string
	SortTitle          string
	Year               string
	PosterPath         string
	BackdropPath       string
	Overview           string
	Plot               string // user-editable synopsis, fallback for Overview
	Tagline            string
	Runtime            int
	VoteAverage        float32
	VoteCount          int
	Certification      string
	CertificationLabel string
	Genres             string
	MediaType          string
	Favorite           bool
	Seen               bool
	Owned              bool
	Format             string
	TrailerURL         string
	Borrower           string
	LoanDate           time.Time
	ReturnDate         time.Time
	LoanStatus         string
	LoanNotes          string
	Notes              string
	Actors             string // comma peid list
	ActorsLoaded       bool
	AddedAt            time.Time
	LoanedAt           time.Time
}

// Summary projects a detail row into summary shape, for movies that
// entered the cache through a detail fetch only.
func (d MovieDetail) Summary() Movie {
	return Movie{
		TMID:               d.TMID,
		Title:              d.Title,
		SortTitle:          d.SortTitle,
		Year:               d.Year,
		PosterPath:         d.PosterPath,
		VoteAverage:        d.VoteAverage,
		VoteCount:          d.VoteCount,
		Certification:      d.Certification,
		CertificationLabel: d.CertificationLabel,
		Genres:             d.Genres,
		MediaType:          d.MediaType,
		Favorite:           d.Favorite,
		Seen:               d.Seen,
		Owned:              d.Owned,
		Format:             d.Format,
		AddedAt:            d.AddedAt,
		LoanedAt:           d.LoanedAt,
	}
}

func (d MovieDetail) ActorIDs() []int64 {
	return str.SplitInts(d.Actors)
}

// Actor holds both the list shape (name, photo) and, once
// DetailLoaded, the biography fields. KnownFor is derived from the
// person's movie credits at fetch time.
type Actor struct {
	gorm.Model
	PEID         int64 `gorm:"uniqueIndex:idx_actor_peid"`
	Name         string
	ProfilePath  string
	Bio          string
	Birthplace   string
	Birthday     time.Time
	Deathday     time.Time
	KnownFor     string // comma title list
	DetailLoaded bool
}

func (a Actor) KnownForTitles() []string {
	return str.Split(a.KnownFor)
}

type Genre struct {
	gorm.Model
	TGID     int64
	Name     string
	Language string `gorm:"index:idx_genre_lang"`
}

// Configuration is the catalog image configuration, refreshed
// wholesale and never merged field by field.
type Configuration struct {
	gorm.Model
	Language      string `gorm:"uniqueIndex:idx_config_lang"`
	SecureBaseURL string
	PosterSizes   string // comma list
	BackdropSizes string
	ProfileSizes  string
}

// UserMovieState is the only writable source of truth for favorite,
// seen, watchlist, format and category membership. Never implicitly
// cleared.
type UserMovieState struct {
	gorm.Model
	TMID        int64 `gorm:"uniqueIndex:idx_state_tmid"`
	Favorite    bool
	Seen        bool
	InWatchlist bool
	Owned       bool
	Format      string
	Categories  string // comma category id list
}

type PersonalNote struct {
	gorm.Model
	TMID     int64 `gorm:"uniqueIndex:idx_note_tmid"`
	Text     string
	Modified time.Time
}

type LoanRecord struct {
	gorm.Model
	UUID       string `gorm:"uniqueIndex:idx_loan_uuid"`
	TMID       int64  `gorm:"index:idx_loan_tmid"`
	Borrower   string
	LoanDate   time.Time
	ReturnDate time.Time
	Returned   bool
	Notes      string
}

type Format struct {
	gorm.Model
	Name string `gorm:"uniqueIndex:idx_format_name"`
	Rank int
}

type Category struct {
	gorm.Model
	Name string `gorm:"uniqueIndex:idx_category_name"`
	Rank int
}
