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

// Reelkeep is a personal movie collection manager. It keeps a local
// cache of catalog metadata fetched from TMDB and layers user-owned
// state on top: favorites, watch status, notes, formats, categories
// and loan history.
package reelkeep

const (
	AppName = "reelkeep"
	Version = "0.3.1"
	Contact = "hello@reelkeep.org"
)
