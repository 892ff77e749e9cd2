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

package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/reelkeep/reelkeep/config"
)

type testMovie struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func TestGetJson(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits++
			if r.Header.Get("User-Agent") != "reelkeep/test" {
				t.Errorf("missing user agent, got %s", r.Header.Get("User-Agent"))
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": 603, "title": "The Matrix"}`))
		}))
	defer server.Close()

	c := NewClient(&config.ClientConfig{UserAgent: "reelkeep/test"})
	var m testMovie
	err := c.GetJson(server.URL, &m)
	if err != nil {
		t.Errorf("GetJson %s", err)
	}
	if m.ID != 603 || m.Title != "The Matrix" {
		t.Errorf("got %+v", m)
	}
	if hits != 1 {
		t.Errorf("expect 1 hit got %d", hits)
	}
}

func TestGetJsonError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
	defer server.Close()

	c := NewClient(&config.ClientConfig{UserAgent: "reelkeep/test"})
	var m testMovie
	err := c.GetJson(server.URL, &m)
	if err == nil {
		t.Errorf("expect error for 404")
	}
}
