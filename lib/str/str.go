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

package str

import (
	"regexp"
	"strconv"
	"strings"
)

// Split a comma-delimited list, trimming whitespace. Empty input is an
// empty list, not a list with one empty element.
func Split(s string) []string {
	if len(s) == 0 {
		return make([]string, 0)
	}
	a := strings.Split(s, ",")
	for i := range a {
		a[i] = strings.Trim(a[i], " ")
	}
	return a
}

func Join(a []string) string {
	return strings.Join(a, ",")
}

// SplitInts parses a comma-delimited list of integers, dropping
// anything that doesn't parse.
func SplitInts(s string) []int64 {
	var list []int64
	for _, v := range Split(s) {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			list = append(list, i)
		}
	}
	return list
}

func JoinInts(list []int64) string {
	a := make([]string, 0, len(list))
	for _, i := range list {
		a = append(a, strconv.FormatInt(i, 10))
	}
	return strings.Join(a, ",")
}

func Atoi(a string) int {
	i, err := strconv.Atoi(a)
	if err != nil {
		i = 0
	}
	return i
}

func Itoa(i int) string {
	return strconv.Itoa(i)
}

var sortRegexp = regexp.MustCompile(`^(A|An|The)\s+`)

// SortTitle strips the leading english article so "The Matrix" sorts
// with the Ms.
func SortTitle(title string) string {
	return sortRegexp.ReplaceAllString(title, "")
}
