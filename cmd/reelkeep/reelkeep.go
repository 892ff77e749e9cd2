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
	"os"

	"github.com/reelkeep/reelkeep/config"
	"github.com/reelkeep/reelkeep/lib/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reelkeep",
	Short: "Reelkeep is a personal movie collection manager",
	Long:  `https://reelkeep.org/`,
}

var configFile string
var configPath string
var configName string
var lang string

func getConfig() *config.Config {
	if configPath == "" {
		configPath = os.Getenv("REELKEEP_HOME")
	}
	if configName == "" {
		configName = os.Getenv("REELKEEP_CONFIG")
	}
	if configFile != "" {
		config.SetConfigFile(configFile)
	} else {
		if configPath == "" {
			configPath = "."
		}
		if configName == "" {
			configName = "reelkeep"
		}
		config.AddConfigPath(configPath)
		config.SetConfigName(configName)
	}
	cfg, err := config.GetConfig()
	log.CheckError(err)
	return cfg
}

func language(cfg *config.Config) string {
	if lang != "" {
		return lang
	}
	return cfg.TMDB.Language
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVarP(&lang, "lang", "l", "", "catalog language")
}
