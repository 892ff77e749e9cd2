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
	"strconv"

	"github.com/reelkeep/reelkeep/library"
	"github.com/spf13/cobra"
)

var markCmd = &cobra.Command{
	Use:   "mark [movie id]",
	Short: "update watch status, format, note or categories",
	Long:  `Update user-owned fields of a movie without touching cached catalog data.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return mark(tmid)
	},
}

var (
	markSeen       bool
	markUnseen     bool
	markWatchlist  bool
	markFormat     string
	markNote       string
	markCategories []int64
)

func mark(tmid int64) error {
	cfg := getConfig()
	l := library.NewLibrary(cfg)
	if err := l.Open(); err != nil {
		return err
	}
	defer l.Close()

	if markSeen || markUnseen {
		if err := l.SetSeen(tmid, markSeen); err != nil {
			return err
		}
	}
	if markWatchlist {
		if err := l.SetWatchlist(tmid, true); err != nil {
			return err
		}
	}
	if markFormat != "" {
		if err := l.SetFormat(tmid, markFormat); err != nil {
			return err
		}
		if err := l.AddFormat(markFormat); err != nil {
			return err
		}
	}
	if markNote != "" {
		if err := l.SetNote(tmid, markNote); err != nil {
			return err
		}
	}
	if len(markCategories) > 0 {
		return l.SetCategories(tmid, markCategories)
	}
	return nil
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite [movie id]",
	Short: "favorite or unfavorite a movie",
	Long:  `Favorited movies survive cache clears and catalog refreshes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		cfg := getConfig()
		l := library.NewLibrary(cfg)
		if err := l.Open(); err != nil {
			return err
		}
		defer l.Close()
		return l.SetFavorite(tmid, !favoriteRemove)
	},
}

var favoriteRemove bool

func favorites(l *library.Library) {
	for _, m := range l.Favorites() {
		printMovie(l, m)
	}
}

func init() {
	markCmd.Flags().BoolVar(&markSeen, "seen", false, "mark seen")
	markCmd.Flags().BoolVar(&markUnseen, "unseen", false, "mark not seen")
	markCmd.Flags().BoolVarP(&markWatchlist, "watchlist", "w", false, "add to watchlist")
	markCmd.Flags().StringVarP(&markFormat, "format", "f", "", "media format")
	markCmd.Flags().StringVarP(&markNote, "note", "m", "", "personal note")
	markCmd.Flags().Int64SliceVarP(&markCategories, "category", "g", nil, "category ids")
	rootCmd.AddCommand(markCmd)

	favoriteCmd.Flags().BoolVarP(&favoriteRemove, "remove", "r", false, "remove favorite")
	rootCmd.AddCommand(favoriteCmd)
}
