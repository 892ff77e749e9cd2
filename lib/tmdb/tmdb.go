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

// Package tmdb is a typed client for the TMDB v3 API, the remote
// catalog source for movie metadata. Results are cached by the
// underlying http client; API config and genre snapshots are held on
// the client itself, never in package globals.
package tmdb

import (
	"fmt"
	"net/url"

	"github.com/reelkeep/reelkeep/config"
	"github.com/reelkeep/reelkeep/lib/client"
)

type TMDB struct {
	config      *config.Config
	client      *client.Client
	configCache *APIConfig
}

func NewTMDB(config *config.Config) *TMDB {
	return &TMDB{
		config: config,
		client: client.NewClient(&config.Client),
	}
}

type Movie struct {
	ID               int      `json:"id"` // unique movie ID
	IMDB_ID          string   `json:"imdb_id"`
	Adult            bool     `json:"adult"`
	BackdropPath     string   `json:"backdrop_path"`
	Genres           []Genre  `json:"genres"`
	OriginalLanguage string   `json:"original_language"`
	OriginalTitle    string   `json:"original_title"`
	Overview         string   `json:"overview"`
	Popularity       float32  `json:"popularity"`
	PosterPath       string   `json:"poster_path"`
	ReleaseDate      string   `json:"release_date"`
	Tagline          string   `json:"tagline"`
	Title            string   `json:"title"`
	Video            bool     `json:"video"`
	VoteAverage      float32  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	Runtime          int      `json:"runtime"`
	ReleaseDates     Releases `json:"release_dates"`
}

type Cast struct {
	ID           int    `json:"id"` // unique person ID
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	ProfilePath  string `json:"profile_path"`
	Character    string `json:"character"`
	Order        int    `json:"order"`
}

type Crew struct {
	ID           int    `json:"id"` // unique person ID
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	ProfilePath  string `json:"profile_path"`
	Department   string `json:"department"`
	Job          string `json:"job"`
}

type Credits struct {
	ID   int    `json:"id"` // unique movie ID
	Cast []Cast `json:"cast"`
	Crew []Crew `json:"crew"`
}

type Person struct {
	ID          int    `json:"id"` // unique person ID
	IMDB_ID     string `json:"imdb_id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path"`
	Birthday    string `json:"birthday"`
	Deathday    string `json:"deathday"`
	Biography   string `json:"biography"`
	Birthplace  string `json:"place_of_birth"`
}

type PersonCredits struct {
	ID   int           `json:"id"` // unique person ID
	Cast []MovieResult `json:"cast"`
}

// https://developers.themoviedb.org/3/movies/get-movie-release-dates
const (
	TypePremiere = iota + 1
	TypeTheatricalLimited
	TypeTheatrical
	TypeDigital
	TypePhysical
	TypeTV
)

type Release struct {
	Certification string `json:"certification"`
	Date          string `json:"release_date"`
	Note          string `json:"note"`
	Type          int    `json:"type"`
}

type ReleaseCountry struct {
	CountryCode string    `json:"iso_3166_1"`
	Releases    []Release `json:"release_dates"`
}

type Releases struct {
	ID      int              `json:"id"`
	Results []ReleaseCountry `json:"results"`
}

type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Size     int    `json:"size"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type videoList struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

type MovieResult struct {
	ID               int     `json:"id"`
	Adult            bool    `json:"adult"`
	BackdropPath     string  `json:"backdrop_path"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	Popularity       float32 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	Title            string  `json:"title"`
	Video            bool    `json:"video"`
	VoteAverage      float32 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

type moviePage struct {
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
	Results      []MovieResult `json:"results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreList struct {
	Genres []Genre `json:"genres"`
}

type imagesConfig struct {
	BaseURL       string   `json:"base_url"`
	SecureBaseURL string   `json:"secure_base_url"`
	BackdropSizes []string `json:"backdrop_sizes"`
	LogoSizes     []string `json:"logo_sizes"`
	PosterSizes   []string `json:"poster_sizes"`
	ProfileSizes  []string `json:"profile_sizes"`
}

type APIConfig struct {
	Images    imagesConfig `json:"images"`
	ChangeKey []string     `json:"change_keys"`
}

func (c *APIConfig) SecureBaseURL() string {
	return c.Images.SecureBaseURL
}

func (c *APIConfig) PosterSizes() []string {
	return c.Images.PosterSizes
}

func (c *APIConfig) BackdropSizes() []string {
	return c.Images.BackdropSizes
}

func (c *APIConfig) ProfileSizes() []string {
	return c.Images.ProfileSizes
}

const (
	endpoint = "api.themoviedb.org"

	Poster154    = "w154"
	Poster342    = "w342"
	Backdrop1280 = "w1280"
	Profile185   = "w185"
)

func (m *TMDB) NowPlaying(lang string) ([]MovieResult, error) {
	var results []MovieResult
	for page, totalPages := 1, 1; page <= totalPages; page++ {
		url := fmt.Sprintf(
			"https://%s/3/movie/now_playing?api_key=%s&language=%s&page=%d",
			endpoint, m.config.TMDB.Key, lang, page)
		var result moviePage
		err := m.client.GetJson(url, &result)
		if err != nil {
			return nil, err
		}
		results = append(results, result.Results...)
		totalPages = result.TotalPages
	}
	return results, nil
}

func (m *TMDB) MovieSearch(lang, q string, includeAdult bool) ([]MovieResult, error) {
	url := fmt.Sprintf(
		"https://%s/3/search/movie?api_key=%s&language=%s&query=%s&include_adult=%t&page=1",
		endpoint, m.config.TMDB.Key, lang, url.QueryEscape(q), includeAdult)
	var result moviePage
	err := m.client.GetJson(url, &result)
	if err != nil {
		return nil, err
	}
	return result.Results, nil
}

// MovieDetail includes release dates so the caller can resolve a
// certification without a second request.
func (m *TMDB) MovieDetail(tmid int, lang string) (*Movie, error) {
	url := fmt.Sprintf(
		"https://%s/3/movie/%d?api_key=%s&language=%s&append_to_response=release_dates",
		endpoint, tmid, m.config.TMDB.Key, lang)
	var result Movie
	err := m.client.GetJson(url, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (m *TMDB) MovieCredits(tmid int, lang string) (*Credits, error) {
	url := fmt.Sprintf(
		"https://%s/3/movie/%d/credits?api_key=%s&language=%s",
		endpoint, tmid, m.config.TMDB.Key, lang)
	var result Credits
	err := m.client.GetJson(url, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (m *TMDB) MovieVideos(tmid int, lang string) ([]Video, error) {
	url := fmt.Sprintf(
		"https://%s/3/movie/%d/videos?api_key=%s&language=%s",
		endpoint, tmid, m.config.TMDB.Key, lang)
	var result videoList
	err := m.client.GetJson(url, &result)
	if err != nil {
		return nil, err
	}
	return result.Results, nil
}

func (m *TMDB) PersonDetail(peid int, lang string) (*Person, error) {
	url := fmt.Sprintf(
		"https://%s/3/person/%d?api_key=%s&language=%s",
		endpoint, peid, m.config.TMDB.Key, lang)
	var result Person
	err := m.client.GetJson(url, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (m *TMDB) PersonCredits(peid int, lang string) (*PersonCredits, error) {
	url := fmt.Sprintf(
		"https://%s/3/person/%d/movie_credits?api_key=%s&language=%s",
		endpoint, peid, m.config.TMDB.Key, lang)
	var result PersonCredits
	err := m.client.GetJson(url, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (m *TMDB) MovieGenres(lang string) ([]Genre, error) {
	url := fmt.Sprintf(
		"https://%s/3/genre/movie/list?api_key=%s&language=%s",
		endpoint, m.config.TMDB.Key, lang)
	var result genreList
	err := m.client.GetJson(url, &result)
	if err != nil {
		return nil, err
	}
	return result.Genres, nil
}

func (m *TMDB) Configuration() (*APIConfig, error) {
	url := fmt.Sprintf(
		"https://%s/3/configuration?api_key=%s", endpoint, m.config.TMDB.Key)
	var result APIConfig
	err := m.client.GetJson(url, &result)
	if err != nil {
		return nil, err
	}
	m.configCache = &result
	return &result, nil
}

// CountryRelease returns the preferred release (theatrical, then
// digital) for a country, or nil when the country has none.
func CountryRelease(releases Releases, country string) *Release {
	types := []int{TypeTheatrical, TypeDigital}
	for _, t := range types {
		for _, rc := range releases.Results {
			if rc.CountryCode != country {
				continue
			}
			for i, r := range rc.Releases {
				if r.Type == t && r.Certification != "" {
					return &rc.Releases[i]
				}
			}
		}
	}
	return nil
}

/*
   https://developers.themoviedb.org/3/configuration/get-api-configuration

   To build an image URL, you will need 3 pieces of data. The base_url,
   size and file_path. Simply combine them all and you will have a fully
   qualified URL.

   https://image.tmdb.org/t/p/w500/8uO0gUM8aNqYLs1OsTBQiXu0fEv.jpg
*/

func imageURL(c *APIConfig, size, path string) *url.URL {
	if c == nil || path == "" {
		return nil
	}
	v := fmt.Sprintf("%s%s%s", c.Images.SecureBaseURL, size, path)
	url, err := url.Parse(v)
	if err != nil {
		return nil
	}
	return url
}

func (m *TMDB) apiConfig() *APIConfig {
	if m.configCache == nil {
		m.Configuration()
	}
	return m.configCache
}

func (m *TMDB) Poster(path, size string) *url.URL {
	return imageURL(m.apiConfig(), size, path)
}

func (m *TMDB) Backdrop(path, size string) *url.URL {
	return imageURL(m.apiConfig(), size, path)
}

func (m *TMDB) PersonProfile(path, size string) *url.URL {
	return imageURL(m.apiConfig(), size, path)
}
