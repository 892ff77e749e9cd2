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

package tmdb

// https://developers.themoviedb.org/3/certifications
var certLabels = map[string]string{
	"G":     "General Audiences",
	"PG":    "Parental Guidance Suggested",
	"PG-13": "Parents Strongly Cautioned",
	"R":     "Restricted",
	"NC-17": "Adults Only",
	"NR":    "Not Rated",
}

// CertificationLabel is the descriptive label for a certification
// code, or the code itself when unknown.
func CertificationLabel(code string) string {
	if label, ok := certLabels[code]; ok {
		return label
	}
	return code
}
