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

	"github.com/reelkeep/reelkeep/lib/date"
	"github.com/reelkeep/reelkeep/library"
	"github.com/spf13/cobra"
)

var lendCmd = &cobra.Command{
	Use:   "lend [movie id] [borrower]",
	Short: "record a loan",
	Long:  `Record who borrowed a movie. A movie can have one active loan at a time.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return lend(tmid, args[1])
	},
}

var lendNotes string

func lend(tmid int64, borrower string) error {
	cfg := getConfig()
	l := library.NewLibrary(cfg)
	if err := l.Open(); err != nil {
		return err
	}
	defer l.Close()

	loan, err := l.Lend(tmid, borrower, lendNotes)
	if err != nil {
		return err
	}
	fmt.Printf("loan %s to %s\n", loan.UUID, loan.Borrower)
	return nil
}

var returnCmd = &cobra.Command{
	Use:   "return [movie id]",
	Short: "record a loan return",
	Long:  `Close the active loan for a movie.`,
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
		return l.Return(tmid)
	},
}

var loansCmd = &cobra.Command{
	Use:   "loans [movie id]",
	Short: "show loan history",
	Long:  `List loan records for a movie, most recent first.`,
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
		for _, loan := range l.Loans(tmid) {
			status := "out"
			if loan.Returned {
				status = "returned " + date.Format(loan.ReturnDate)
			}
			fmt.Printf("%s %s %s %s\n", date.Format(loan.LoanDate),
				loan.Borrower, status, loan.Notes)
		}
		return nil
	},
}

func init() {
	lendCmd.Flags().StringVarP(&lendNotes, "notes", "m", "", "loan notes")
	rootCmd.AddCommand(lendCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(loansCmd)
}
