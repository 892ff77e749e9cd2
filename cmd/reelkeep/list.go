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
	"strconv"

	"github.com/reelkeep/reelkeep/library"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list the library",
	Long:  `List cached movies, fetching the catalog list on first use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		l := library.NewLibrary(cfg)
		if err := l.Open(); err != nil {
			return err
		}
		defer l.Close()
		if listFavorites {
			favorites(l)
			return nil
		}
		movies, err := l.NowPlaying(language(cfg))
		if err != nil {
			return err
		}
		for _, m := range movies {
			printMovie(l, m)
		}
		return nil
	},
}

var listFavorites bool

var showCmd = &cobra.Command{
	Use:   "show [movie id]",
	Short: "show movie details",
	Long:  `Show cached details for a movie, fetching on first use.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return show(tmid)
	},
}

func show(tmid int64) error {
	cfg := getConfig()
	l := library.NewLibrary(cfg)
	if err := l.Open(); err != nil {
		return err
	}
	defer l.Close()

	lang := language(cfg)
	d, err := l.MovieDetails(tmid, lang, true)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s) %s %dm\n", d.Title, d.Year, d.CertificationLabel, d.Runtime)
	if d.Tagline != "" {
		fmt.Println(d.Tagline)
	}
	fmt.Println(d.Overview)
	if d.TrailerURL != "" {
		fmt.Printf("trailer: %s\n", d.TrailerURL)
	}
	for _, a := range l.Actors(d.ActorIDs()) {
		fmt.Printf("  %s\n", a.Name)
	}
	if d.Notes != "" {
		fmt.Printf("note: %s\n", d.Notes)
	}
	if d.LoanStatus == library.LoanStatusOut {
		fmt.Printf("loaned to %s\n", d.Borrower)
	}
	return nil
}

var actorCmd = &cobra.Command{
	Use:   "actor [person id]",
	Short: "show actor details",
	Long:  `Show cached actor details, fetching on first use.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		peid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		cfg := getConfig()
		l := library.NewLibrary(cfg)
		if err := l.Open(); err != nil {
			return err
		}
		defer l.Close()
		a, err := l.ActorDetails(peid, language(cfg))
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", a.Name, a.Birthplace)
		for _, title := range a.KnownForTitles() {
			fmt.Printf("  %s\n", title)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listFavorites, "favorites", "f", false, "favorites only")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(actorCmd)
}
