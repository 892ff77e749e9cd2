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
	"fmt"

	"github.com/reelkeep/reelkeep/library"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "sync movie metadata",
	Long:  `Refresh cached metadata for every movie in the library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doSync()
	},
}

var syncReload bool

func doSync() error {
	cfg := getConfig()
	l := library.NewLibrary(cfg)
	if err := l.Open(); err != nil {
		return err
	}
	defer l.Close()

	lang := language(cfg)
	if syncReload {
		return l.Reload(context.Background(), lang)
	}
	if _, err := l.NowPlaying(lang); err != nil {
		return err
	}

	events, result := l.RefreshLibrary(context.Background(), lang)
	for e := range events {
		if !e.Completed {
			fmt.Printf("%d/%d %s\n", e.Index+1, e.Total, e.Title)
		}
	}
	return <-result
}

func init() {
	syncCmd.Flags().BoolVarP(&syncReload, "reload", "r", false,
		"clear the catalog cache and rebuild it")
	rootCmd.AddCommand(syncCmd)
}
