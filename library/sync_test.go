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
	"fmt"
	"testing"

	"github.com/reelkeep/reelkeep/config"
	"github.com/reelkeep/reelkeep/lib/tmdb"
)

var errRemote = errors.New("remote unavailable")

type fakeCatalog struct {
	configCalls       int
	genreCalls        int
	nowPlayingCalls   int
	searchCalls       int
	detailCalls       int
	creditCalls       int
	videoCalls        int
	personCalls       int
	personCreditCalls int

	nowPlaying    []tmdb.MovieResult
	details       map[int]*tmdb.Movie
	credits       map[int]*tmdb.Credits
	videos        map[int][]tmdb.Video
	people        map[int]*tmdb.Person
	personCredits map[int]*tmdb.PersonCredits

	failDetail        map[int]bool
	failCredits       map[int]bool
	failVideos        map[int]bool
	failGenres        bool
	failPersonCredits bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		details:       make(map[int]*tmdb.Movie),
		credits:       make(map[int]*tmdb.Credits),
		videos:        make(map[int][]tmdb.Video),
		people:        make(map[int]*tmdb.Person),
		personCredits: make(map[int]*tmdb.PersonCredits),
		failDetail:    make(map[int]bool),
		failCredits:   make(map[int]bool),
		failVideos:    make(map[int]bool),
	}
}

func (f *fakeCatalog) addMovie(id int, title, releaseDate string) {
	f.nowPlaying = append(f.nowPlaying, tmdb.MovieResult{
		ID: id, Title: title, ReleaseDate: releaseDate,
	})
	f.details[id] = &tmdb.Movie{
		ID: id, Title: title, ReleaseDate: releaseDate,
		Overview: title + " overview",
	}
	f.credits[id] = &tmdb.Credits{ID: id, Cast: []tmdb.Cast{
		{ID: id*10 + 1, Name: fmt.Sprintf("Actor %d", id*10+1), Order: 0},
		{ID: id*10 + 2, Name: fmt.Sprintf("Actor %d", id*10+2), Order: 1},
	}}
}

func (f *fakeCatalog) Configuration() (*tmdb.APIConfig, error) {
	f.configCalls++
	return &tmdb.APIConfig{}, nil
}

func (f *fakeCatalog) MovieGenres(lang string) ([]tmdb.Genre, error) {
	f.genreCalls++
	if f.failGenres {
		return nil, errRemote
	}
	return []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}}, nil
}

func (f *fakeCatalog) NowPlaying(lang string) ([]tmdb.MovieResult, error) {
	f.nowPlayingCalls++
	return f.nowPlaying, nil
}

func (f *fakeCatalog) MovieSearch(lang, q string, includeAdult bool) ([]tmdb.MovieResult, error) {
	f.searchCalls++
	return f.nowPlaying, nil
}

func (f *fakeCatalog) MovieDetail(tmid int, lang string) (*tmdb.Movie, error) {
	f.detailCalls++
	if f.failDetail[tmid] {
		return nil, errRemote
	}
	d, ok := f.details[tmid]
	if !ok {
		return nil, errRemote
	}
	return d, nil
}

func (f *fakeCatalog) MovieCredits(tmid int, lang string) (*tmdb.Credits, error) {
	f.creditCalls++
	if f.failCredits[tmid] {
		return nil, errRemote
	}
	c, ok := f.credits[tmid]
	if !ok {
		return nil, errRemote
	}
	return c, nil
}

func (f *fakeCatalog) MovieVideos(tmid int, lang string) ([]tmdb.Video, error) {
	f.videoCalls++
	if f.failVideos[tmid] {
		return nil, errRemote
	}
	return f.videos[tmid], nil
}

func (f *fakeCatalog) PersonDetail(peid int, lang string) (*tmdb.Person, error) {
	f.personCalls++
	p, ok := f.people[peid]
	if !ok {
		return nil, errRemote
	}
	return p, nil
}

func (f *fakeCatalog) PersonCredits(peid int, lang string) (*tmdb.PersonCredits, error) {
	f.personCreditCalls++
	if f.failPersonCredits {
		return nil, errRemote
	}
	c, ok := f.personCredits[peid]
	if !ok {
		return nil, errRemote
	}
	return c, nil
}

func testLibrary(t *testing.T, catalog Catalog) *Library {
	t.Helper()
	cfg, err := config.TestConfig()
	if err != nil {
		t.Fatalf("TestConfig %s", err)
	}
	cfg.Library.DB.Source = fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	l := NewLibraryWith(cfg, catalog)
	if err := l.Open(); err != nil {
		t.Fatalf("Open %s", err)
	}
	t.Cleanup(l.Close)
	return l
}

func TestNowPlayingStampsFavorites(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	catalog.addMovie(200, "Matilda", "1996-08-02")
	l := testLibrary(t, catalog)

	// favorite recorded before the catalog is ever fetched
	if err := l.SetFavorite(100, true); err != nil {
		t.Fatalf("SetFavorite %s", err)
	}

	movies, err := l.NowPlaying("en-US")
	if err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if len(movies) != 2 {
		t.Fatalf("got %d movies", len(movies))
	}
	for _, m := range movies {
		want := m.TMID == 100
		if m.Favorite != want {
			t.Errorf("movie %d favorite = %v", m.TMID, m.Favorite)
		}
	}
}

func TestNowPlayingCacheHit(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	l := testLibrary(t, catalog)

	if _, err := l.NowPlaying("en-US"); err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if catalog.nowPlayingCalls != 1 {
		t.Fatalf("got %d remote calls", catalog.nowPlayingCalls)
	}

	movies, err := l.NowPlaying("en-US")
	if err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if catalog.nowPlayingCalls != 1 {
		t.Errorf("cache hit went remote, %d calls", catalog.nowPlayingCalls)
	}
	if len(movies) != 1 {
		t.Errorf("got %d movies", len(movies))
	}
}

func TestNowPlayingReconcilesFavorites(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	l := testLibrary(t, catalog)

	if _, err := l.NowPlaying("en-US"); err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if err := l.SetFavorite(100, true); err != nil {
		t.Fatalf("SetFavorite %s", err)
	}
	// drift the projection behind the truth table
	m, err := l.Movie(100)
	if err != nil {
		t.Fatalf("Movie %s", err)
	}
	m.Favorite = false
	if err := l.updateMovie(m); err != nil {
		t.Fatalf("updateMovie %s", err)
	}

	movies, err := l.NowPlaying("en-US")
	if err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if !movies[0].Favorite {
		t.Error("favorite flag not reconciled")
	}
}

func TestNowPlayingStampsUserState(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	l := testLibrary(t, catalog)

	// seen and format recorded before the catalog is ever fetched
	if err := l.SetSeen(100, true); err != nil {
		t.Fatalf("SetSeen %s", err)
	}
	if err := l.SetFormat(100, "Blu-ray"); err != nil {
		t.Fatalf("SetFormat %s", err)
	}

	movies, err := l.NowPlaying("en-US")
	if err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if !movies[0].Seen || movies[0].Format != "Blu-ray" {
		t.Errorf("got seen %v format %q", movies[0].Seen, movies[0].Format)
	}

	result, err := l.Search(SearchRequest{
		Filters:  SearchFilters{Movies: true, TV: true, Seen: TriEnabled},
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("Search %s", err)
	}
	if result.Total != 1 {
		t.Errorf("seen filter missed the row, total %d", result.Total)
	}
}

func TestNowPlayingReconcilesUserState(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	l := testLibrary(t, catalog)

	if _, err := l.NowPlaying("en-US"); err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if err := l.SetSeen(100, true); err != nil {
		t.Fatalf("SetSeen %s", err)
	}
	if err := l.SetOwned(100, true); err != nil {
		t.Fatalf("SetOwned %s", err)
	}
	// drift the projections behind the truth table
	m, err := l.Movie(100)
	if err != nil {
		t.Fatalf("Movie %s", err)
	}
	m.Seen = false
	m.Owned = false
	if err := l.updateMovie(m); err != nil {
		t.Fatalf("updateMovie %s", err)
	}

	movies, err := l.NowPlaying("en-US")
	if err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if !movies[0].Seen || !movies[0].Owned {
		t.Errorf("got seen %v owned %v", movies[0].Seen, movies[0].Owned)
	}
}

func TestNowPlayingSurvivesGenreFailure(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	catalog.failGenres = true
	l := testLibrary(t, catalog)

	// the genre table is a denormalization source, not a dependency
	movies, err := l.NowPlaying("en-US")
	if err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if len(movies) != 1 {
		t.Fatalf("got %d movies", len(movies))
	}
	if movies[0].Genres != "" {
		t.Errorf("got genres %q", movies[0].Genres)
	}
}

func TestMovieDetailsCreatesSummary(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(200, "Matilda", "1996-08-02")
	l := testLibrary(t, catalog)

	// deep link into a movie the summary list has never seen
	d, err := l.MovieDetails(200, "en-US", true)
	if err != nil {
		t.Fatalf("MovieDetails %s", err)
	}
	if !d.ActorsLoaded {
		t.Error("actors not loaded")
	}
	if len(d.ActorIDs()) != 2 {
		t.Errorf("got %d actors", len(d.ActorIDs()))
	}
	for _, peid := range d.ActorIDs() {
		if _, err := l.Actor(peid); err != nil {
			t.Errorf("actor %d not stored: %s", peid, err)
		}
	}
	if _, err := l.Movie(200); err != nil {
		t.Errorf("summary not created: %s", err)
	}
}

func TestMovieDetailsCached(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(200, "Matilda", "1996-08-02")
	l := testLibrary(t, catalog)

	if _, err := l.MovieDetails(200, "en-US", true); err != nil {
		t.Fatalf("MovieDetails %s", err)
	}
	before := catalog.detailCalls
	if _, err := l.MovieDetails(200, "en-US", true); err != nil {
		t.Fatalf("MovieDetails %s", err)
	}
	if catalog.detailCalls != before {
		t.Errorf("cache hit went remote, %d calls", catalog.detailCalls)
	}
}

func TestMovieDetailsActorsPending(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(200, "Matilda", "1996-08-02")
	l := testLibrary(t, catalog)

	d, err := l.MovieDetails(200, "en-US", false)
	if err != nil {
		t.Fatalf("MovieDetails %s", err)
	}
	if d.ActorsLoaded {
		t.Fatal("actors loaded without ensureCached")
	}
	if catalog.creditCalls != 0 {
		t.Fatalf("credits fetched, %d calls", catalog.creditCalls)
	}

	// the follow-up fetches only the missing cast
	d, err = l.MovieDetails(200, "en-US", true)
	if err != nil {
		t.Fatalf("MovieDetails %s", err)
	}
	if !d.ActorsLoaded {
		t.Error("actors still pending")
	}
	if catalog.detailCalls != 1 {
		t.Errorf("detail refetched, %d calls", catalog.detailCalls)
	}
	if catalog.creditCalls != 1 {
		t.Errorf("got %d credit calls", catalog.creditCalls)
	}
}

func TestMovieDetailsAbortsOnCreditsFailure(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(200, "Matilda", "1996-08-02")
	catalog.failCredits[200] = true
	l := testLibrary(t, catalog)

	_, err := l.MovieDetails(200, "en-US", true)
	if !errors.Is(err, errRemote) {
		t.Fatalf("got %v", err)
	}
	// a mid-sequence failure commits nothing
	if _, err := l.Detail(200); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("partial detail written: %v", err)
	}
	if _, err := l.Movie(200); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("partial summary written: %v", err)
	}
}

func TestSetFavoriteSynthesizesSummary(t *testing.T) {
	catalog := newFakeCatalog()
	l := testLibrary(t, catalog)

	// detail-only row, no summary
	err := l.createDetail(&MovieDetail{
		TMID: 300, Title: "Clue", SortTitle: "Clue", Year: "1985",
		MediaType: MediaMovie,
	})
	if err != nil {
		t.Fatalf("createDetail %s", err)
	}
	if err := l.SetFavorite(300, true); err != nil {
		t.Fatalf("SetFavorite %s", err)
	}
	m, err := l.Movie(300)
	if err != nil {
		t.Fatalf("summary not synthesized: %s", err)
	}
	if !m.Favorite {
		t.Error("summary not flagged favorite")
	}
}

func TestFavoritesEffectiveJoin(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	l := testLibrary(t, catalog)

	if _, err := l.NowPlaying("en-US"); err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if err := l.SetFavorite(100, true); err != nil {
		t.Fatalf("SetFavorite %s", err)
	}
	err := l.createDetail(&MovieDetail{
		TMID: 300, Title: "Clue", SortTitle: "Clue", Year: "1985",
		MediaType: MediaMovie, Favorite: true,
	})
	if err != nil {
		t.Fatalf("createDetail %s", err)
	}

	favorites := l.Favorites()
	if len(favorites) != 2 {
		t.Fatalf("got %d favorites", len(favorites))
	}
	ids := map[int64]bool{}
	for _, m := range favorites {
		ids[m.TMID] = true
	}
	if !ids[100] || !ids[300] {
		t.Errorf("got %v", ids)
	}
}

func TestClearAllPreservesFavorites(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	catalog.addMovie(200, "Matilda", "1996-08-02")
	l := testLibrary(t, catalog)

	if _, err := l.NowPlaying("en-US"); err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if err := l.SetFavorite(100, true); err != nil {
		t.Fatalf("SetFavorite %s", err)
	}
	if err := l.ClearAll(); err != nil {
		t.Fatalf("ClearAll %s", err)
	}

	if _, err := l.Movie(100); err != nil {
		t.Errorf("favorite did not survive: %s", err)
	}
	if _, err := l.Movie(200); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("non-favorite survived: %v", err)
	}
	state, err := l.userState(100)
	if err != nil || !state.Favorite {
		t.Errorf("user state touched: %v %v", state, err)
	}
}

func TestClearAllResetsActorList(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	l := testLibrary(t, catalog)

	if _, err := l.MovieDetails(100, "en-US", true); err != nil {
		t.Fatalf("MovieDetails %s", err)
	}
	if err := l.SetFavorite(100, true); err != nil {
		t.Fatalf("SetFavorite %s", err)
	}
	if err := l.ClearAll(); err != nil {
		t.Fatalf("ClearAll %s", err)
	}

	// actor rows are gone, the preserved detail must not claim them
	d, err := l.Detail(100)
	if err != nil {
		t.Fatalf("favorite did not survive: %s", err)
	}
	if d.ActorsLoaded || d.Actors != "" {
		t.Fatalf("stale cast survived: %v %q", d.ActorsLoaded, d.Actors)
	}

	d, err = l.MovieDetails(100, "en-US", true)
	if err != nil {
		t.Fatalf("MovieDetails %s", err)
	}
	if !d.ActorsLoaded {
		t.Fatal("actors still pending")
	}
	if catalog.creditCalls != 2 {
		t.Errorf("got %d credit calls", catalog.creditCalls)
	}
	for _, peid := range d.ActorIDs() {
		if _, err := l.Actor(peid); err != nil {
			t.Errorf("actor %d not stored: %s", peid, err)
		}
	}
}

func TestRefreshFailsFast(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	catalog.addMovie(200, "Matilda", "1996-08-02")
	catalog.addMovie(300, "Clue", "1985-12-13")
	catalog.failDetail[200] = true
	l := testLibrary(t, catalog)

	if _, err := l.NowPlaying("en-US"); err != nil {
		t.Fatalf("NowPlaying %s", err)
	}

	events, result := l.RefreshLibrary(context.Background(), "en-US")
	for range events {
	}
	if err := <-result; !errors.Is(err, errRemote) {
		t.Fatalf("got %v", err)
	}

	// iteration runs in sort-title order: Clue, Matilda, The Matrix
	if _, err := l.Detail(300); err != nil {
		t.Errorf("first movie not refreshed: %s", err)
	}
	if _, err := l.Detail(100); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("refresh continued past failure: %v", err)
	}
}

func TestRefreshEvents(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	catalog.addMovie(200, "Matilda", "1996-08-02")
	l := testLibrary(t, catalog)

	if _, err := l.NowPlaying("en-US"); err != nil {
		t.Fatalf("NowPlaying %s", err)
	}

	events, result := l.RefreshLibrary(context.Background(), "en-US")
	var count, completed int
	for e := range events {
		count++
		if e.Completed {
			completed++
		}
		if e.Total != 2 {
			t.Errorf("got total %d", e.Total)
		}
	}
	if err := <-result; err != nil {
		t.Fatalf("refresh %s", err)
	}
	if count != 4 || completed != 2 {
		t.Errorf("got %d events, %d completed", count, completed)
	}
}

func TestRefreshPreservesUserFields(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	l := testLibrary(t, catalog)

	if _, err := l.NowPlaying("en-US"); err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	if _, err := l.MovieDetails(100, "en-US", true); err != nil {
		t.Fatalf("MovieDetails %s", err)
	}
	if err := l.SetNote(100, "signed copy"); err != nil {
		t.Fatalf("SetNote %s", err)
	}
	if _, err := l.Lend(100, "sam", "back soon"); err != nil {
		t.Fatalf("Lend %s", err)
	}

	events, result := l.RefreshLibrary(context.Background(), "en-US")
	for range events {
	}
	if err := <-result; err != nil {
		t.Fatalf("refresh %s", err)
	}

	d, err := l.Detail(100)
	if err != nil {
		t.Fatalf("Detail %s", err)
	}
	if d.Notes != "signed copy" {
		t.Errorf("notes clobbered: %q", d.Notes)
	}
	if d.Borrower != "sam" || d.LoanStatus != LoanStatusOut {
		t.Errorf("loan clobbered: %q %q", d.Borrower, d.LoanStatus)
	}
}

func TestRefreshKeepsAddedAt(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	l := testLibrary(t, catalog)

	if _, err := l.NowPlaying("en-US"); err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	before, err := l.MovieDetails(100, "en-US", true)
	if err != nil {
		t.Fatalf("MovieDetails %s", err)
	}
	m, err := l.Movie(100)
	if err != nil {
		t.Fatalf("Movie %s", err)
	}
	summaryAdded := m.AddedAt

	events, result := l.RefreshLibrary(context.Background(), "en-US")
	for range events {
	}
	if err := <-result; err != nil {
		t.Fatalf("refresh %s", err)
	}

	d, err := l.Detail(100)
	if err != nil {
		t.Fatalf("Detail %s", err)
	}
	if !d.AddedAt.Equal(before.AddedAt) {
		t.Errorf("detail added-at moved: %s to %s", before.AddedAt, d.AddedAt)
	}
	m, err = l.Movie(100)
	if err != nil {
		t.Fatalf("Movie %s", err)
	}
	if !m.AddedAt.Equal(summaryAdded) {
		t.Errorf("summary added-at moved: %s to %s", summaryAdded, m.AddedAt)
	}
}

func TestRefreshKeepsTrailerOnVideoFailure(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	catalog.videos[100] = []tmdb.Video{
		{Key: "abc123", Site: "YouTube", Type: "Trailer", Official: true},
	}
	l := testLibrary(t, catalog)

	if _, err := l.NowPlaying("en-US"); err != nil {
		t.Fatalf("NowPlaying %s", err)
	}
	events, result := l.RefreshLibrary(context.Background(), "en-US")
	for range events {
	}
	if err := <-result; err != nil {
		t.Fatalf("refresh %s", err)
	}
	d, _ := l.Detail(100)
	if d.TrailerURL != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("got trailer %q", d.TrailerURL)
	}

	// video endpoint down, cached trailer survives
	catalog.failVideos[100] = true
	events, result = l.RefreshLibrary(context.Background(), "en-US")
	for range events {
	}
	if err := <-result; err != nil {
		t.Fatalf("refresh %s", err)
	}
	d, _ = l.Detail(100)
	if d.TrailerURL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("trailer lost: %q", d.TrailerURL)
	}
}

func TestActorDetails(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.people[42] = &tmdb.Person{
		ID: 42, Name: "Rita Hayworth", Biography: "bio",
		Birthplace: "Brooklyn", Birthday: "1918-10-17",
	}
	catalog.personCredits[42] = &tmdb.PersonCredits{ID: 42, Cast: []tmdb.MovieResult{
		{Title: "Gilda", Popularity: 9},
		{Title: "Cover Girl", Popularity: 5},
	}}
	l := testLibrary(t, catalog)

	a, err := l.ActorDetails(42, "en-US")
	if err != nil {
		t.Fatalf("ActorDetails %s", err)
	}
	if !a.DetailLoaded {
		t.Error("detail not loaded")
	}
	titles := a.KnownForTitles()
	if len(titles) != 2 || titles[0] != "Gilda" {
		t.Errorf("got %v", titles)
	}

	// cache hit
	if _, err := l.ActorDetails(42, "en-US"); err != nil {
		t.Fatalf("ActorDetails %s", err)
	}
	if catalog.personCalls != 1 {
		t.Errorf("cache hit went remote, %d calls", catalog.personCalls)
	}
}

func TestActorDetailsKnownForBestEffort(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.people[42] = &tmdb.Person{ID: 42, Name: "Rita Hayworth"}
	catalog.failPersonCredits = true
	l := testLibrary(t, catalog)

	a, err := l.ActorDetails(42, "en-US")
	if err != nil {
		t.Fatalf("ActorDetails %s", err)
	}
	if len(a.KnownForTitles()) != 0 {
		t.Errorf("got %v", a.KnownForTitles())
	}
}

func TestLendAndReturn(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	l := testLibrary(t, catalog)

	if _, err := l.MovieDetails(100, "en-US", true); err != nil {
		t.Fatalf("MovieDetails %s", err)
	}
	loan, err := l.Lend(100, "sam", "")
	if err != nil {
		t.Fatalf("Lend %s", err)
	}
	if loan.UUID == "" {
		t.Error("loan has no uuid")
	}
	if _, err := l.Lend(100, "alex", ""); !errors.Is(err, ErrAlreadyLoaned) {
		t.Fatalf("got %v", err)
	}

	if err := l.Return(100); err != nil {
		t.Fatalf("Return %s", err)
	}
	d, _ := l.Detail(100)
	if d.LoanStatus != LoanStatusReturned {
		t.Errorf("got status %q", d.LoanStatus)
	}
	if _, err := l.Lend(100, "alex", ""); err != nil {
		t.Errorf("relend after return: %s", err)
	}
	if len(l.Loans(100)) != 2 {
		t.Errorf("got %d loan records", len(l.Loans(100)))
	}
}

func TestSearchMoviesNotPersisted(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addMovie(100, "The Matrix", "1999-03-30")
	l := testLibrary(t, catalog)

	movies, err := l.SearchMovies("en-US", "matrix", false)
	if err != nil {
		t.Fatalf("SearchMovies %s", err)
	}
	if len(movies) != 1 {
		t.Fatalf("got %d results", len(movies))
	}
	if l.MovieCount() != 0 {
		t.Errorf("ad hoc search persisted %d rows", l.MovieCount())
	}
}
