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

// Package library is the offline-first movie collection core: a local
// cache of catalog metadata with user-owned state layered on top, a
// sync coordinator deciding when to trust the cache versus refetch,
// and a compiler turning filter/sort/page requests into store queries.
package library

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/reelkeep/reelkeep/config"
	"github.com/reelkeep/reelkeep/lib/str"
	"github.com/reelkeep/reelkeep/lib/tmdb"
	"gorm.io/gorm"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrActorNotFound  = errors.New("actor not found")
	ErrConfigNotFound = errors.New("configuration not found")
	ErrStateNotFound  = errors.New("user state not found")
	ErrNoteNotFound   = errors.New("note not found")
	ErrLoanNotFound   = errors.New("loan not found")
	ErrAlreadyLoaned  = errors.New("movie is already loaned out")

	// ErrCachingError means a row the coordinator just wrote could not
	// be read back; a logic bug, not a recoverable condition.
	ErrCachingError = errors.New("caching error")
)

type Library struct {
	config  *config.Config
	db      *gorm.DB
	catalog Catalog

	mu            sync.Mutex
	refreshCancel context.CancelFunc
	refreshGen    int
}

func NewLibrary(config *config.Config) *Library {
	return &Library{
		config:  config,
		catalog: tmdb.NewTMDB(config),
	}
}

// NewLibraryWith uses the given catalog source instead of TMDB.
func NewLibraryWith(config *config.Config, catalog Catalog) *Library {
	return &Library{
		config:  config,
		catalog: catalog,
	}
}

func (l *Library) Open() (err error) {
	return l.openDB()
}

func (l *Library) Close() {
	l.CancelRefresh()
	l.closeDB()
}

// PosterURL builds an image URL from the cached catalog configuration;
// empty when the configuration or path is unknown.
func (l *Library) PosterURL(m Movie, lang string) string {
	return l.imageURL(m.PosterPath, tmdb.Poster342, lang)
}

func (l *Library) PosterURLSmall(m Movie, lang string) string {
	return l.imageURL(m.PosterPath, tmdb.Poster154, lang)
}

func (l *Library) BackdropURL(d MovieDetail, lang string) string {
	return l.imageURL(d.BackdropPath, tmdb.Backdrop1280, lang)
}

func (l *Library) ProfileURL(a Actor, lang string) string {
	return l.imageURL(a.ProfilePath, tmdb.Profile185, lang)
}

func (l *Library) imageURL(path, size, lang string) string {
	if path == "" {
		return ""
	}
	c, err := l.configuration(lang)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s%s%s", c.SecureBaseURL, size, path)
}

func newConfiguration(lang string, c *tmdb.APIConfig) *Configuration {
	return &Configuration{
		Language:      lang,
		SecureBaseURL: c.SecureBaseURL(),
		PosterSizes:   str.Join(c.PosterSizes()),
		BackdropSizes: str.Join(c.BackdropSizes()),
		ProfileSizes:  str.Join(c.ProfileSizes()),
	}
}
