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
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/reelkeep/reelkeep/config"
	"github.com/reelkeep/reelkeep/lib/log"
	"github.com/reelkeep/reelkeep/library"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "keep the library synced on a schedule",
	Long:  `Run a periodic metadata refresh at the configured interval.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule(getConfig())
		select {}
	},
}

func schedule(cfg *config.Config) {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.Every(cfg.Library.RefreshInterval).WaitForSchedule().Do(func() {
		if err := refreshLibrary(cfg); err != nil {
			log.Println(err)
		}
	})
	scheduler.StartAsync()
}

func refreshLibrary(cfg *config.Config) error {
	log.Printf("sync library\n")
	l := library.NewLibrary(cfg)
	if err := l.Open(); err != nil {
		return err
	}
	defer l.Close()

	lang := language(cfg)
	if _, err := l.NowPlaying(lang); err != nil {
		return err
	}
	events, result := l.RefreshLibrary(context.Background(), lang)
	for range events {
	}
	return <-result
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
