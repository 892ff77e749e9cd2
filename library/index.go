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
	"github.com/reelkeep/reelkeep/lib/log"
	"github.com/reelkeep/reelkeep/lib/search"
	"github.com/reelkeep/reelkeep/lib/str"
)

const (
	FieldCast     = "cast"
	FieldFormat   = "format"
	FieldGenre    = "genre"
	FieldRating   = "rating"
	FieldRuntime  = "runtime"
	FieldTagline  = "tagline"
	FieldTitle    = "title"
	FieldVote     = "vote"
	FieldYear     = "year"
	FieldOverview = "overview"
)

func (l *Library) newSearch() *search.Search {
	s := search.NewSearch(l.config)
	s.Keywords = []string{
		FieldGenre,
		FieldCast,
		FieldFormat,
	}
	s.Open("movies")
	return s
}

// indexMovie adds a detail row to the full-text index. Indexing is
// best-effort; the index can always be rebuilt by a refresh.
func (l *Library) indexMovie(d *MovieDetail) {
	if l.config.Search.BleveDir == "" {
		return
	}
	fields := make(search.FieldMap)
	search.AddField(fields, FieldTitle, d.Title)
	search.AddField(fields, FieldYear, d.Year)
	search.AddField(fields, FieldTagline, d.Tagline)
	search.AddField(fields, FieldOverview, d.Overview)
	search.AddField(fields, FieldRating, d.CertificationLabel)
	search.AddField(fields, FieldRuntime, d.Runtime)
	search.AddField(fields, FieldVote, int(d.VoteAverage*10))
	if d.Format != "" {
		search.AddField(fields, FieldFormat, d.Format)
	}
	for _, name := range str.Split(d.Genres) {
		search.AddField(fields, FieldGenre, name)
	}
	for _, a := range l.Actors(d.ActorIDs()) {
		search.AddField(fields, FieldCast, a.Name)
	}

	index := make(search.IndexMap)
	index[str.Itoa(int(d.TMID))] = fields

	s := l.newSearch()
	defer s.Close()
	s.Index(index)
}

// SearchIndex runs a full-text query against the bleve index and
// resolves hits to cached summary rows.
func (l *Library) SearchIndex(q string, limit ...int) []Movie {
	if l.config.Search.BleveDir == "" {
		return nil
	}
	s := l.newSearch()
	defer s.Close()

	max := l.config.Library.PageSize
	if len(limit) == 1 {
		max = limit[0]
	}
	keys, err := s.Search(q, max)
	if err != nil {
		log.Printf("search %s: %s", q, err)
		return nil
	}

	var movies []Movie
	for _, key := range keys {
		m, err := l.Movie(int64(str.Atoi(key)))
		if err != nil {
			continue
		}
		movies = append(movies, *m)
	}
	return movies
}
