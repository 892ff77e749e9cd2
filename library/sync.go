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
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/reelkeep/reelkeep/lib/date"
	"github.com/reelkeep/reelkeep/lib/log"
	"github.com/reelkeep/reelkeep/lib/str"
	"github.com/reelkeep/reelkeep/lib/tmdb"
)

// Catalog is the remote metadata source. The coordinator never
// retries a failed call; retry policy belongs to the transport.
type Catalog interface {
	Configuration() (*tmdb.APIConfig, error)
	MovieGenres(lang string) ([]tmdb.Genre, error)
	NowPlaying(lang string) ([]tmdb.MovieResult, error)
	MovieSearch(lang, q string, includeAdult bool) ([]tmdb.MovieResult, error)
	MovieDetail(tmid int, lang string) (*tmdb.Movie, error)
	MovieCredits(tmid int, lang string) (*tmdb.Credits, error)
	MovieVideos(tmid int, lang string) ([]tmdb.Video, error)
	PersonDetail(peid int, lang string) (*tmdb.Person, error)
	PersonCredits(peid int, lang string) (*tmdb.PersonCredits, error)
}

const knownForLimit = 10

// Configuration is cache-or-fetch; a previously cached value is never
// invalidated speculatively.
func (l *Library) Configuration(lang string) (*Configuration, error) {
	c, err := l.configuration(lang)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, err
	}
	apiConfig, err := l.catalog.Configuration()
	if err != nil {
		return nil, err
	}
	c = newConfiguration(lang, apiConfig)
	if err := l.saveConfiguration(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Genres is cache-or-fetch; an empty fetched list is a valid result.
func (l *Library) Genres(lang string) ([]Genre, error) {
	genres := l.genres(lang)
	if len(genres) > 0 {
		return genres, nil
	}
	list, err := l.catalog.MovieGenres(lang)
	if err != nil {
		return nil, err
	}
	genres = make([]Genre, 0, len(list))
	for _, g := range list {
		genres = append(genres, Genre{TGID: int64(g.ID), Name: g.Name})
	}
	if err := l.replaceGenres(lang, genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// NowPlaying returns the primary movie list. On an empty cache the
// remote list is fetched, stamped from UserMovieState and persisted.
// On a populated cache the user projections are reconciled from
// UserMovieState, persisting only rows that drifted. The remote source
// has no concept of user state; the flags must survive every refetch.
func (l *Library) NowPlaying(lang string) ([]Movie, error) {
	movies := l.Movies()
	states := l.userStates()

	if len(movies) == 0 {
		results, err := l.catalog.NowPlaying(lang)
		if err != nil {
			return nil, err
		}
		// denormalized genre names come from the cached genre table
		if _, err := l.Genres(lang); err != nil {
			log.Printf("genres %s: %s", lang, err)
		}
		names := l.genreNames(lang)
		added := make(map[int64]bool)
		for _, r := range results {
			if added[int64(r.ID)] {
				continue
			}
			added[int64(r.ID)] = true
			m := l.newMovie(r, names, states)
			if err := l.createMovie(&m); err != nil {
				return nil, err
			}
			movies = append(movies, m)
		}
		return movies, nil
	}

	for i := range movies {
		state := states[movies[i].TMID]
		if movies[i].Favorite != state.Favorite ||
			movies[i].Seen != state.Seen ||
			movies[i].Owned != state.Owned ||
			movies[i].Format != state.Format {
			movies[i].Favorite = state.Favorite
			movies[i].Seen = state.Seen
			movies[i].Owned = state.Owned
			movies[i].Format = state.Format
			if err := l.updateMovie(&movies[i]); err != nil {
				return nil, err
			}
		}
	}
	return movies, nil
}

// SearchMovies always goes remote so ad hoc searches never pollute the
// primary list; results are stamped from UserMovieState but not
// persisted.
func (l *Library) SearchMovies(lang, q string, includeAdult bool) ([]Movie, error) {
	results, err := l.catalog.MovieSearch(lang, q, includeAdult)
	if err != nil {
		return nil, err
	}
	states := l.userStates()
	names := l.genreNames(lang)
	movies := make([]Movie, 0, len(results))
	for _, r := range results {
		movies = append(movies, l.newMovie(r, names, states))
	}
	return movies, nil
}

// MovieDetails is cache-or-fetch. A cached row with actors loaded
// short-circuits, as does any cached row when ensureCached is false.
// An actors-pending row with ensureCached fetches only the missing
// cast. A full miss fetches detail and credits before writing
// anything; a mid-sequence remote failure commits nothing.
func (l *Library) MovieDetails(tmid int64, lang string, ensureCached bool) (*MovieDetail, error) {
	d, err := l.Detail(tmid)
	if err == nil {
		if d.ActorsLoaded || !ensureCached {
			return d, nil
		}
		credits, err := l.catalog.MovieCredits(int(tmid), lang)
		if err != nil {
			return nil, err
		}
		ids, err := l.syncCast(credits)
		if err != nil {
			return nil, err
		}
		d.Actors = str.JoinInts(ids)
		d.ActorsLoaded = true
		if err := l.updateDetail(d); err != nil {
			return nil, err
		}
		return d, nil
	}
	if !errors.Is(err, ErrMovieNotFound) {
		return nil, err
	}

	detail, err := l.catalog.MovieDetail(int(tmid), lang)
	if err != nil {
		return nil, err
	}
	var credits *tmdb.Credits
	if ensureCached {
		credits, err = l.catalog.MovieCredits(int(tmid), lang)
		if err != nil {
			return nil, err
		}
	}

	// fetches done, now write
	d = l.newDetail(detail)
	if credits != nil {
		ids, err := l.syncCast(credits)
		if err != nil {
			return nil, err
		}
		d.Actors = str.JoinInts(ids)
		d.ActorsLoaded = true
	}
	if err := l.createDetail(d); err != nil {
		return nil, err
	}

	// a movie opened via deep link should still appear in list views
	_, err = l.Movie(tmid)
	if errors.Is(err, ErrMovieNotFound) {
		summary := d.Summary()
		if err := l.createMovie(&summary); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	l.indexMovie(d)
	return d, nil
}

// ActorDetails is cache-or-fetch. The known-for credits lookup is
// best-effort; its failure degrades to an empty list and never fails
// the primary call.
func (l *Library) ActorDetails(peid int64, lang string) (*Actor, error) {
	a, err := l.Actor(peid)
	if err == nil && a.DetailLoaded {
		return a, nil
	}
	if err != nil && !errors.Is(err, ErrActorNotFound) {
		return nil, err
	}

	person, err := l.catalog.PersonDetail(int(peid), lang)
	if err != nil {
		return nil, err
	}
	var knownFor []string
	credits, err := l.catalog.PersonCredits(int(peid), lang)
	if err == nil && credits != nil {
		knownFor = topCredits(credits.Cast, knownForLimit)
	}

	if a == nil {
		a = &Actor{PEID: peid}
	}
	a.Name = person.Name
	a.ProfilePath = person.ProfilePath
	a.Bio = person.Biography
	a.Birthplace = person.Birthplace
	a.Birthday = date.ParseDate(person.Birthday)
	a.Deathday = date.ParseDate(person.Deathday)
	a.KnownFor = str.Join(knownFor)
	a.DetailLoaded = true
	if a.ID == 0 {
		err = l.createActor(a)
	} else {
		err = l.updateActor(a)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// SetFavorite writes the source of truth first, then propagates the
// flag to whichever cached rows exist, synthesizing a summary from a
// detail-only row so list views reflect the change immediately.
func (l *Library) SetFavorite(tmid int64, favorite bool) error {
	state, err := l.userState(tmid)
	if err != nil {
		if !errors.Is(err, ErrStateNotFound) {
			return err
		}
		state = &UserMovieState{TMID: tmid}
	}
	state.Favorite = favorite
	if err := l.saveUserState(state); err != nil {
		return err
	}

	m, merr := l.Movie(tmid)
	if merr != nil && !errors.Is(merr, ErrMovieNotFound) {
		return merr
	}
	d, derr := l.Detail(tmid)
	if derr != nil && !errors.Is(derr, ErrMovieNotFound) {
		return derr
	}

	if d != nil {
		d.Favorite = favorite
		if err := l.updateDetail(d); err != nil {
			return err
		}
	}
	if m != nil {
		m.Favorite = favorite
		return l.updateMovie(m)
	}
	if d != nil {
		summary := d.Summary()
		summary.Favorite = favorite
		return l.createMovie(&summary)
	}
	return nil
}

// Favorites is the effective join: summaries flagged favorite plus
// detail-only favorites synthesized into summary shape. Never a
// separate cached list that can drift.
func (l *Library) Favorites() []Movie {
	movies := l.favoriteMovies()
	for _, d := range l.orphanFavoriteDetails() {
		movies = append(movies, d.Summary())
	}
	sort.Slice(movies, func(i, j int) bool {
		return movies[i].SortTitle < movies[j].SortTitle
	})
	return movies
}

// ClearAll wipes the catalog tables but never discards favorited
// records; the favorite subset is preserved across the wipe. User
// tables are untouched.
func (l *Library) ClearAll() error {
	return l.clearCatalog()
}

// SetSeen updates watch status and its cached projections.
func (l *Library) SetSeen(tmid int64, seen bool) error {
	return l.updateState(tmid, func(s *UserMovieState) {
		s.Seen = seen
	}, func(m *Movie) {
		m.Seen = seen
	}, func(d *MovieDetail) {
		d.Seen = seen
	})
}

func (l *Library) SetOwned(tmid int64, owned bool) error {
	return l.updateState(tmid, func(s *UserMovieState) {
		s.Owned = owned
	}, func(m *Movie) {
		m.Owned = owned
	}, func(d *MovieDetail) {
		d.Owned = owned
	})
}

func (l *Library) SetFormat(tmid int64, format string) error {
	return l.updateState(tmid, func(s *UserMovieState) {
		s.Format = format
	}, func(m *Movie) {
		m.Format = format
	}, func(d *MovieDetail) {
		d.Format = format
	})
}

func (l *Library) SetCategories(tmid int64, categories []int64) error {
	return l.updateState(tmid, func(s *UserMovieState) {
		s.Categories = str.JoinInts(categories)
	}, nil, nil)
}

func (l *Library) SetWatchlist(tmid int64, inWatchlist bool) error {
	return l.updateState(tmid, func(s *UserMovieState) {
		s.InWatchlist = inWatchlist
	}, nil, nil)
}

func (l *Library) updateState(tmid int64, apply func(*UserMovieState),
	project func(*Movie), projectDetail func(*MovieDetail)) error {
	state, err := l.userState(tmid)
	if err != nil {
		if !errors.Is(err, ErrStateNotFound) {
			return err
		}
		state = &UserMovieState{TMID: tmid}
	}
	apply(state)
	if err := l.saveUserState(state); err != nil {
		return err
	}
	if project != nil {
		m, err := l.Movie(tmid)
		if err == nil {
			project(m)
			if err := l.updateMovie(m); err != nil {
				return err
			}
		} else if !errors.Is(err, ErrMovieNotFound) {
			return err
		}
	}
	if projectDetail != nil {
		d, err := l.Detail(tmid)
		if err == nil {
			projectDetail(d)
			if err := l.updateDetail(d); err != nil {
				return err
			}
		} else if !errors.Is(err, ErrMovieNotFound) {
			return err
		}
	}
	return nil
}

// SetNote upserts the personal note and projects it into the cached
// detail row.
func (l *Library) SetNote(tmid int64, text string) error {
	note, err := l.note(tmid)
	if err != nil {
		if !errors.Is(err, ErrNoteNotFound) {
			return err
		}
		note = &PersonalNote{TMID: tmid}
	}
	note.Text = text
	note.Modified = time.Now()
	if err := l.saveNote(note); err != nil {
		return err
	}
	d, err := l.Detail(tmid)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return nil
		}
		return err
	}
	d.Notes = text
	return l.updateDetail(d)
}

// Lend records a loan and projects the loan fields into the cached
// rows. A movie can have one active loan at a time.
func (l *Library) Lend(tmid int64, borrower, notes string) (*LoanRecord, error) {
	_, err := l.activeLoan(tmid)
	if err == nil {
		return nil, ErrAlreadyLoaned
	}
	if !errors.Is(err, ErrLoanNotFound) {
		return nil, err
	}
	loan := &LoanRecord{
		UUID:     uuid.New().String(),
		TMID:     tmid,
		Borrower: borrower,
		LoanDate: time.Now(),
		Notes:    notes,
	}
	if err := l.createLoan(loan); err != nil {
		return nil, err
	}
	err = l.projectLoan(tmid, func(d *MovieDetail) {
		d.Borrower = borrower
		d.LoanDate = loan.LoanDate
		d.ReturnDate = time.Time{}
		d.LoanStatus = LoanStatusOut
		d.LoanNotes = notes
		d.LoanedAt = loan.LoanDate
	}, loan.LoanDate)
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// Return closes the active loan.
func (l *Library) Return(tmid int64) error {
	loan, err := l.activeLoan(tmid)
	if err != nil {
		return err
	}
	loan.Returned = true
	loan.ReturnDate = time.Now()
	if err := l.updateLoan(loan); err != nil {
		return err
	}
	return l.projectLoan(tmid, func(d *MovieDetail) {
		d.ReturnDate = loan.ReturnDate
		d.LoanStatus = LoanStatusReturned
		d.LoanedAt = time.Time{}
	}, time.Time{})
}

func (l *Library) projectLoan(tmid int64, apply func(*MovieDetail), loanedAt time.Time) error {
	d, err := l.Detail(tmid)
	if err == nil {
		apply(d)
		if err := l.updateDetail(d); err != nil {
			return err
		}
	} else if !errors.Is(err, ErrMovieNotFound) {
		return err
	}
	m, err := l.Movie(tmid)
	if err == nil {
		m.LoanedAt = loanedAt
		return l.updateMovie(m)
	}
	if errors.Is(err, ErrMovieNotFound) {
		return nil
	}
	return err
}

// syncCast upserts actors from movie credits and returns the actor id
// list, cast order preserved.
func (l *Library) syncCast(credits *tmdb.Credits) ([]int64, error) {
	cast := make([]tmdb.Cast, len(credits.Cast))
	copy(cast, credits.Cast)
	sort.Slice(cast, func(i, j int) bool {
		return cast[i].Order < cast[j].Order
	})
	limit := l.config.Library.CastLimit
	var ids []int64
	for i, c := range cast {
		if limit > 0 && i >= limit {
			break
		}
		peid := int64(c.ID)
		a, err := l.Actor(peid)
		if err != nil {
			if !errors.Is(err, ErrActorNotFound) {
				return nil, err
			}
			a = &Actor{
				PEID:        peid,
				Name:        c.Name,
				ProfilePath: c.ProfilePath,
			}
			if err := l.createActor(a); err != nil {
				return nil, err
			}
		}
		ids = append(ids, peid)
	}
	return ids, nil
}

func (l *Library) newMovie(r tmdb.MovieResult, genreNames map[int64]string,
	states map[int64]UserMovieState) Movie {
	var names []string
	for _, id := range r.GenreIDs {
		if name, ok := genreNames[int64(id)]; ok {
			names = append(names, name)
		}
	}
	state := states[int64(r.ID)]
	return Movie{
		TMID:        int64(r.ID),
		Title:       r.Title,
		SortTitle:   str.SortTitle(r.Title),
		Year:        date.Year(r.ReleaseDate),
		PosterPath:  r.PosterPath,
		VoteAverage: r.VoteAverage,
		VoteCount:   r.VoteCount,
		Genres:      str.Join(names),
		MediaType:   MediaMovie,
		Favorite:    state.Favorite,
		Seen:        state.Seen,
		Owned:       state.Owned,
		Format:      state.Format,
		AddedAt:     time.Now(),
	}
}

func (l *Library) newDetail(detail *tmdb.Movie) *MovieDetail {
	var names []string
	for _, g := range detail.Genres {
		names = append(names, g.Name)
	}

	var cert, certLabel string
	for _, country := range l.config.Library.ReleaseCountries {
		release := tmdb.CountryRelease(detail.ReleaseDates, country)
		if release != nil {
			cert = release.Certification
			certLabel = tmdb.CertificationLabel(cert)
			break
		}
	}

	d := &MovieDetail{
		TMID:               int64(detail.ID),
		IMID:               detail.IMDB_ID,
		Title:              detail.Title,
		SortTitle:          str.SortTitle(detail.Title),
		Year:               date.Year(detail.ReleaseDate),
		PosterPath:         detail.PosterPath,
		BackdropPath:       detail.BackdropPath,
		Overview:           detail.Overview,
		Tagline:            detail.Tagline,
		Runtime:            detail.Runtime,
		VoteAverage:        detail.VoteAverage,
		VoteCount:          detail.VoteCount,
		Certification:      cert,
		CertificationLabel: certLabel,
		Genres:             str.Join(names),
		MediaType:          MediaMovie,
		AddedAt:            time.Now(),
	}

	// user-owned annotations come from the source of truth
	state, err := l.userState(d.TMID)
	if err == nil {
		d.Favorite = state.Favorite
		d.Seen = state.Seen
		d.Owned = state.Owned
		d.Format = state.Format
	}
	note, err := l.note(d.TMID)
	if err == nil {
		d.Notes = note.Text
	}
	return d
}

func topCredits(cast []tmdb.MovieResult, limit int) []string {
	list := make([]tmdb.MovieResult, len(cast))
	copy(list, cast)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Popularity > list[j].Popularity
	})
	var titles []string
	for i, r := range list {
		if i >= limit {
			break
		}
		titles = append(titles, r.Title)
	}
	return titles
}
