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
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/reelkeep/reelkeep/library"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "search the catalog and add a movie",
	Long:  `Search the remote catalog by title, pick a match, and cache it as owned.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addMovie(strings.Join(args, " "))
	},
}

var addFormat string
var addAdult bool

func addMovie(title string) error {
	cfg := getConfig()
	l := library.NewLibrary(cfg)
	if err := l.Open(); err != nil {
		return err
	}
	defer l.Close()

	lang := language(cfg)
	results, err := l.SearchMovies(lang, title, addAdult)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return errors.New("no matches")
	}

	labels := make([]string, 0, len(results))
	for _, m := range results {
		labels = append(labels, fmt.Sprintf("%s (%s)", m.Title, m.Year))
	}
	prompt := promptui.Select{
		Label: "Movie",
		Items: labels,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return err
	}
	pick := results[i]

	d, err := l.MovieDetails(pick.TMID, lang, true)
	if err != nil {
		return err
	}
	if err := l.SetOwned(pick.TMID, true); err != nil {
		return err
	}
	if addFormat != "" {
		if err := l.SetFormat(pick.TMID, addFormat); err != nil {
			return err
		}
		if err := l.AddFormat(addFormat); err != nil {
			return err
		}
	}

	fmt.Printf("added %s (%s) %s\n", d.Title, d.Year, d.CertificationLabel)
	return nil
}

func init() {
	addCmd.Flags().StringVarP(&addFormat, "format", "f", "", "media format (Blu-ray, DVD, ...)")
	addCmd.Flags().BoolVarP(&addAdult, "adult", "x", false, "include adult results")
	rootCmd.AddCommand(addCmd)
}
