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
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func (l *Library) openDB() (err error) {
	var glog logger.Interface
	if l.config.Library.DB.LogMode == false {
		glog = logger.Discard
	} else {
		glog = logger.Default
	}
	cfg := &gorm.Config{
		Logger: glog,
	}

	switch l.config.Library.DB.Driver {
	case "sqlite3":
		l.db, err = gorm.Open(sqlite.Open(l.config.Library.DB.Source), cfg)
	case "mysql":
		l.db, err = gorm.Open(mysql.Open(l.config.Library.DB.Source), cfg)
	case "postgres":
		l.db, err = gorm.Open(postgres.Open(l.config.Library.DB.Source), cfg)
	default:
		err = errors.New("driver not supported")
	}

	if err != nil {
		return
	}

	l.db.AutoMigrate(
		&Movie{}, &MovieDetail{}, &Actor{}, &Genre{}, &Configuration{},
		&UserMovieState{}, &PersonalNote{}, &LoanRecord{},
		&Format{}, &Category{})
	return
}

func (l *Library) closeDB() {
	conn, err := l.db.DB()
	if err != nil {
		return
	}
	conn.Close()
}

func (l *Library) Movies() []Movie {
	var movies []Movie
	l.db.Order("sort_title").Find(&movies)
	return movies
}

func (l *Library) MovieCount() int64 {
	var count int64
	l.db.Model(&Movie{}).Count(&count)
	return count
}

func (l *Library) HasMovies() bool {
	return l.MovieCount() > 0
}

func (l *Library) Movie(tmid int64) (*Movie, error) {
	var movie Movie
	err := l.db.Where("tm_id = ?", tmid).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (l *Library) createMovie(m *Movie) error {
	return l.db.Create(m).Error
}

func (l *Library) updateMovie(m *Movie) error {
	return l.db.Save(m).Error
}

func (l *Library) Detail(tmid int64) (*MovieDetail, error) {
	var detail MovieDetail
	err := l.db.Where("tm_id = ?", tmid).First(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &detail, nil
}

func (l *Library) createDetail(d *MovieDetail) error {
	return l.db.Create(d).Error
}

func (l *Library) updateDetail(d *MovieDetail) error {
	return l.db.Save(d).Error
}

func (l *Library) Actor(peid int64) (*Actor, error) {
	var actor Actor
	err := l.db.Where("pe_id = ?", peid).First(&actor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return &actor, nil
}

func (l *Library) Actors(peids []int64) []Actor {
	var actors []Actor
	l.db.Where("pe_id in (?)", peids).Find(&actors)
	return actors
}

func (l *Library) createActor(a *Actor) error {
	return l.db.Create(a).Error
}

func (l *Library) updateActor(a *Actor) error {
	return l.db.Save(a).Error
}

func (l *Library) genres(lang string) []Genre {
	var genres []Genre
	l.db.Where("language = ?", lang).Order("name").Find(&genres)
	return genres
}

// genreNames maps TMDB genre ids to names for one language.
func (l *Library) genreNames(lang string) map[int64]string {
	names := make(map[int64]string)
	for _, g := range l.genres(lang) {
		names[g.TGID] = g.Name
	}
	return names
}

// replaceGenres refreshes the genre table wholesale for one language,
// never merging field by field.
func (l *Library) replaceGenres(lang string, genres []Genre) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where("language = ?", lang).Delete(&Genre{}).Error
		if err != nil {
			return err
		}
		for i := range genres {
			genres[i].Language = lang
			if err := tx.Create(&genres[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *Library) configuration(lang string) (*Configuration, error) {
	var c Configuration
	err := l.db.Where("language = ?", lang).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (l *Library) saveConfiguration(c *Configuration) error {
	prev, err := l.configuration(c.Language)
	if err == nil {
		c.Model = prev.Model
		return l.db.Save(c).Error
	}
	return l.db.Create(c).Error
}

func (l *Library) userState(tmid int64) (*UserMovieState, error) {
	var state UserMovieState
	err := l.db.Where("tm_id = ?", tmid).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	return &state, nil
}

func (l *Library) saveUserState(state *UserMovieState) error {
	prev, err := l.userState(state.TMID)
	if err == nil {
		state.Model = prev.Model
		return l.db.Save(state).Error
	}
	return l.db.Create(state).Error
}

// userStates maps movie id to its user state row, from the source of
// truth table. Movies without a row map to the zero state.
func (l *Library) userStates() map[int64]UserMovieState {
	var states []UserMovieState
	l.db.Find(&states)
	m := make(map[int64]UserMovieState, len(states))
	for _, s := range states {
		m[s.TMID] = s
	}
	return m
}

func (l *Library) favoriteMovies() []Movie {
	var movies []Movie
	l.db.Where("favorite = ?", true).Order("sort_title").Find(&movies)
	return movies
}

func (l *Library) favoriteDetails() []MovieDetail {
	var details []MovieDetail
	l.db.Where("favorite = ?", true).Find(&details)
	return details
}

// orphanFavoriteDetails are detail rows flagged favorite with no
// matching summary row.
func (l *Library) orphanFavoriteDetails() []MovieDetail {
	var details []MovieDetail
	l.db.Where("favorite = ? and tm_id not in (select tm_id from movies where deleted_at is null)",
		true).Find(&details)
	return details
}

func (l *Library) note(tmid int64) (*PersonalNote, error) {
	var note PersonalNote
	err := l.db.Where("tm_id = ?", tmid).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (l *Library) saveNote(note *PersonalNote) error {
	prev, err := l.note(note.TMID)
	if err == nil {
		note.Model = prev.Model
		return l.db.Save(note).Error
	}
	return l.db.Create(note).Error
}

func (l *Library) activeLoan(tmid int64) (*LoanRecord, error) {
	var loan LoanRecord
	err := l.db.Where("tm_id = ? and returned = ?", tmid, false).
		Order("loan_date desc").First(&loan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

func (l *Library) Loans(tmid int64) []LoanRecord {
	var loans []LoanRecord
	l.db.Where("tm_id = ?", tmid).Order("loan_date desc").Find(&loans)
	return loans
}

func (l *Library) createLoan(loan *LoanRecord) error {
	return l.db.Create(loan).Error
}

func (l *Library) updateLoan(loan *LoanRecord) error {
	return l.db.Save(loan).Error
}

func (l *Library) Formats() []Format {
	var formats []Format
	l.db.Order("rank, name").Find(&formats)
	return formats
}

func (l *Library) Categories() []Category {
	var categories []Category
	l.db.Order("rank, name").Find(&categories)
	return categories
}

func (l *Library) AddFormat(name string) error {
	var format Format
	return l.db.Where("name = ?", name).
		FirstOrCreate(&format, Format{Name: name}).Error
}

func (l *Library) AddCategory(name string) error {
	var category Category
	return l.db.Where("name = ?", name).
		FirstOrCreate(&category, Category{Name: name}).Error
}

func (l *Library) LastModified() time.Time {
	var movies []Movie
	l.db.Order("updated_at desc").Limit(1).Find(&movies)
	if len(movies) == 1 {
		return movies[0].UpdatedAt
	}
	return time.Time{}
}

// clearCatalog wipes the catalog tables while re-inserting the
// favorite subset. User-owned tables are untouched.
func (l *Library) clearCatalog() error {
	favMovies := l.favoriteMovies()
	favDetails := l.favoriteDetails()

	return l.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&Movie{}, &MovieDetail{}, &Actor{}, &Genre{}, &Configuration{},
		} {
			err := tx.Unscoped().Where("1 = 1").Delete(model).Error
			if err != nil {
				return err
			}
		}
		for i := range favMovies {
			favMovies[i].ID = 0
			if err := tx.Create(&favMovies[i]).Error; err != nil {
				return err
			}
		}
		for i := range favDetails {
			favDetails[i].ID = 0
			// actor rows are gone; the cast list must be refetched
			favDetails[i].Actors = ""
			favDetails[i].ActorsLoaded = false
			if err := tx.Create(&favDetails[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
