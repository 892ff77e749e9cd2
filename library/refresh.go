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
	"context"
	"errors"

	"github.com/reelkeep/reelkeep/lib/log"
	"github.com/reelkeep/reelkeep/lib/str"
	"github.com/reelkeep/reelkeep/lib/tmdb"
)

// RefreshEvent reports per-movie refresh progress. Two events are
// emitted per movie, one before the item starts and one after it
// completes.
type RefreshEvent struct {
	Index     int
	Total     int
	TMID      int64
	Title     string
	Completed bool
}

// RefreshLibrary re-fetches detail, credits and videos for every
// cached movie. The run is fail-fast; the first remote detail or
// credits failure aborts it, leaving earlier items refreshed and later
// items stale. Video lookups are best-effort. A previous run still in
// flight is canceled first. The events channel closes when the run
// ends; the error channel then carries the outcome.
func (l *Library) RefreshLibrary(ctx context.Context, lang string) (<-chan RefreshEvent, <-chan error) {
	ctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	if l.refreshCancel != nil {
		l.refreshCancel()
	}
	l.refreshCancel = cancel
	l.refreshGen++
	gen := l.refreshGen
	l.mu.Unlock()

	events := make(chan RefreshEvent)
	result := make(chan error, 1)
	go func() {
		defer close(result)
		err := l.refresh(ctx, lang, events)
		close(events)
		cancel()
		l.mu.Lock()
		// a newer run may own refreshCancel by now
		if l.refreshGen == gen {
			l.refreshCancel = nil
		}
		l.mu.Unlock()
		result <- err
	}()
	return events, result
}

// CancelRefresh stops an in-flight refresh, if any.
func (l *Library) CancelRefresh() {
	l.mu.Lock()
	if l.refreshCancel != nil {
		l.refreshCancel()
		l.refreshCancel = nil
	}
	l.mu.Unlock()
}

// Reload wipes the catalog cache and rebuilds configuration, genres
// and the primary list. Favorites and all user tables survive.
func (l *Library) Reload(ctx context.Context, lang string) error {
	l.CancelRefresh()
	if err := l.clearCatalog(); err != nil {
		return err
	}
	if _, err := l.Configuration(lang); err != nil {
		return err
	}
	if _, err := l.Genres(lang); err != nil {
		return err
	}
	if _, err := l.NowPlaying(lang); err != nil {
		return err
	}
	return nil
}

func (l *Library) refresh(ctx context.Context, lang string, events chan<- RefreshEvent) error {
	movies := l.Movies()
	total := len(movies)
	for i, m := range movies {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case events <- RefreshEvent{Index: i, Total: total, TMID: m.TMID, Title: m.Title}:
		}
		if err := l.refreshMovie(m.TMID, lang); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case events <- RefreshEvent{Index: i, Total: total, TMID: m.TMID, Title: m.Title, Completed: true}:
		}
	}
	return nil
}

// refreshMovie replaces catalog-sourced fields of one cached movie,
// preserving user annotations and loan bookkeeping verbatim.
func (l *Library) refreshMovie(tmid int64, lang string) error {
	detail, err := l.catalog.MovieDetail(int(tmid), lang)
	if err != nil {
		return err
	}
	credits, err := l.catalog.MovieCredits(int(tmid), lang)
	if err != nil {
		return err
	}
	ids, err := l.syncCast(credits)
	if err != nil {
		return err
	}

	d := l.newDetail(detail)
	d.Actors = str.JoinInts(ids)
	d.ActorsLoaded = true

	existing, err := l.Detail(tmid)
	if err == nil {
		d.Model = existing.Model
		d.Borrower = existing.Borrower
		d.LoanDate = existing.LoanDate
		d.ReturnDate = existing.ReturnDate
		d.LoanStatus = existing.LoanStatus
		d.LoanNotes = existing.LoanNotes
		d.LoanedAt = existing.LoanedAt
		d.Notes = existing.Notes
		d.TrailerURL = existing.TrailerURL
		d.AddedAt = existing.AddedAt
	} else if !errors.Is(err, ErrMovieNotFound) {
		return err
	}

	// trailer lookup is best-effort; a cached trailer outlives a
	// transient video endpoint failure
	videos, verr := l.catalog.MovieVideos(int(tmid), lang)
	if verr == nil {
		if url := l.trailerURL(videos); url != "" {
			d.TrailerURL = url
		}
	} else {
		log.Printf("videos %d: %s", tmid, verr)
	}

	if d.ID == 0 {
		err = l.createDetail(d)
	} else {
		err = l.updateDetail(d)
	}
	if err != nil {
		return err
	}

	m, err := l.Movie(tmid)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			// the summary row this iteration came from is gone
			return ErrCachingError
		}
		return err
	}
	summary := d.Summary()
	summary.Model = m.Model
	summary.AddedAt = m.AddedAt
	if err := l.updateMovie(&summary); err != nil {
		return err
	}
	l.indexMovie(d)
	return nil
}

func (l *Library) trailerURL(videos []tmdb.Video) string {
	site := l.config.Library.TrailerSite
	for _, v := range videos {
		if v.Type != "Trailer" {
			continue
		}
		if site != "" && v.Site != site {
			continue
		}
		if v.Official {
			return videoURL(v)
		}
	}
	for _, v := range videos {
		if v.Type == "Trailer" && (site == "" || v.Site == site) {
			return videoURL(v)
		}
	}
	return ""
}

func videoURL(v tmdb.Video) string {
	switch v.Site {
	case "YouTube":
		return "https://www.youtube.com/watch?v=" + v.Key
	case "Vimeo":
		return "https://vimeo.com/" + v.Key
	}
	return ""
}
