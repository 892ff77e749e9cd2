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

package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/reelkeep/reelkeep"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver  string
	Source  string
	LogMode bool
}

type ClientConfig struct {
	CacheDir  string
	MaxAge    time.Duration
	UseCache  bool
	UserAgent string
}

func (c *ClientConfig) Merge(o ClientConfig) {
	if o.CacheDir != "" {
		c.CacheDir = o.CacheDir
	}
	c.MaxAge = o.MaxAge
	c.UseCache = o.UseCache
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
}

type TMDBAPIConfig struct {
	Key      string
	Language string
}

type SearchConfig struct {
	BleveDir string
}

type LibraryConfig struct {
	DB               DatabaseConfig
	CastLimit        int
	ReleaseCountries []string
	PageSize         int
	RefreshInterval  time.Duration
	TrailerSite      string
}

type Config struct {
	Client  ClientConfig
	DataDir string
	Library LibraryConfig
	Search  SearchConfig
	TMDB    TMDBAPIConfig
}

func configDefaults(v *viper.Viper) {
	v.SetDefault("Client.CacheDir", ".httpcache")
	v.SetDefault("Client.MaxAge", "720h") // 30 days in hours
	v.SetDefault("Client.UseCache", "true")
	v.SetDefault("Client.UserAgent", userAgent())

	v.SetDefault("DataDir", ".")

	v.SetDefault("Library.DB.Driver", "sqlite3")
	v.SetDefault("Library.DB.Source", "library.db")
	v.SetDefault("Library.DB.LogMode", "false")
	v.SetDefault("Library.CastLimit", "25")
	v.SetDefault("Library.ReleaseCountries", []string{
		"US",
	})
	v.SetDefault("Library.PageSize", "50")
	v.SetDefault("Library.RefreshInterval", "24h")
	v.SetDefault("Library.TrailerSite", "YouTube")

	v.SetDefault("Search.BleveDir", ".")

	v.SetDefault("TMDB.Key", "903a776b0638da68e9ade38ff538e1d3")
	v.SetDefault("TMDB.Language", "en-US")
}

func userAgent() string {
	return reelkeep.AppName + "/" + reelkeep.Version + " ( " + reelkeep.Contact + " ) "
}

func readConfig(v *viper.Viper) (*Config, error) {
	var config Config
	var pathRegexp = regexp.MustCompile(`(file|dir|source)$`)
	err := v.ReadInConfig()
	dir := filepath.Dir(v.ConfigFileUsed())
	for _, k := range v.AllKeys() {
		if pathRegexp.MatchString(k) {
			val := v.Get(k)
			s, ok := val.(string)
			if !ok {
				continue
			}
			// leave absolute paths and sqlite URIs alone
			if !strings.HasPrefix(s, "/") && !strings.Contains(s, ":") {
				v.Set(k, fmt.Sprintf("%s/%s", dir, s))
			}
		}
	}
	if err == nil {
		err = v.Unmarshal(&config)
	}
	return &config, err
}

var configFile, configPath, configName string

func SetConfigFile(path string) {
	configFile = path
}

func AddConfigPath(path string) {
	configPath = path
}

func SetConfigName(name string) {
	configName = name
}

func GetConfig() (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName != "" {
		v.SetConfigName(configName)
	}
	configDefaults(v)
	return readConfig(v)
}

func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	configDefaults(v)
	return readConfig(v)
}

// TestConfig is a defaults-only config with an in-memory database and
// no http cache, suitable for package tests.
func TestConfig() (*Config, error) {
	var config Config
	v := viper.New()
	configDefaults(v)
	v.Set("Client.UseCache", false)
	v.Set("Library.DB.Source", "file::memory:?cache=shared")
	v.Set("Search.BleveDir", "")
	err := v.Unmarshal(&config)
	return &config, err
}
