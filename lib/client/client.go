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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/reelkeep/reelkeep/config"
	"github.com/reelkeep/reelkeep/lib/log"
)

const (
	DirectiveMaxAge       = "max-age"
	DirectiveOnlyIfCached = "only-if-cached"
)

var (
	HeaderUserAgent    = http.CanonicalHeaderKey("User-Agent")
	HeaderCacheControl = http.CanonicalHeaderKey("Cache-Control")
	ErrCacheMiss       = errors.New("cache miss")
)

type Client struct {
	client     *http.Client
	useCache   bool
	userAgent  string
	cache      httpcache.Cache
	maxAge     time.Duration
	onlyCached bool
}

func NewClient(config *config.ClientConfig) *Client {
	c := Client{}
	c.userAgent = config.UserAgent
	c.useCache = config.UseCache
	if c.useCache {
		c.maxAge = config.MaxAge
		c.cache = diskcache.New(config.CacheDir)
		transport := httpcache.NewTransport(c.cache)
		c.client = transport.Client()
	} else {
		c.client = &http.Client{}
	}
	return &c
}

var (
	rateMu      sync.Mutex
	lastRequest = map[string]time.Time{}
)

// RateLimit throttles to one uncached request per host per second.
func RateLimit(host string) {
	rateMu.Lock()
	defer rateMu.Unlock()
	if v, ok := lastRequest[host]; ok {
		d := time.Second - time.Since(v)
		if d > 0 {
			time.Sleep(d)
		}
	}
	lastRequest[host] = time.Now()
}

func (c *Client) UseOnlyIfCached(enabled bool) {
	c.onlyCached = enabled
}

func (c *Client) doGet(headers map[string]string, urlStr string) (*http.Response, error) {
	url, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set(HeaderUserAgent, c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	throttle := true
	if c.useCache {
		maxAge := int(c.maxAge.Seconds())
		if c.onlyCached {
			req.Header.Set(HeaderCacheControl, DirectiveOnlyIfCached)
		} else if maxAge > 0 {
			req.Header.Set(HeaderCacheControl,
				fmt.Sprintf("%s=%d", DirectiveMaxAge, maxAge))
		}
		// peek into the cache, if there's something there don't slow down
		cachedResp, err := httpcache.CachedResponse(c.cache, req)
		if err != nil {
			log.Printf("cache error %s\n", err)
		}
		if cachedResp != nil {
			throttle = false
		}
	}
	if throttle {
		RateLimit(url.Hostname())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if c.onlyCached && resp.StatusCode == http.StatusGatewayTimeout {
		// the cache returns 504 for cache only miss
		return nil, ErrCacheMiss
	}

	if resp.StatusCode != http.StatusOK {
		return resp, fmt.Errorf("http error %d: %s", resp.StatusCode, url.String())
	}

	return resp, err
}

const (
	maxAttempts = 5
	backoff     = time.Second * 3
)

func (c *Client) doGetWithRetry(headers map[string]string, url string) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err = c.doGet(headers, url)
		if err == nil || resp == nil {
			// success, or error with no response
			break
		}
		if resp.StatusCode < http.StatusInternalServerError &&
			resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		// server error, try again with backoff
		if attempt+1 < maxAttempts {
			log.Printf("got %d: retry backoff attempt %d of %d\n",
				resp.StatusCode, attempt+1, maxAttempts)
			time.Sleep(backoff)
		}
	}

	return resp, err
}

func (c *Client) GetWith(headers map[string]string, url string) (http.Header, []byte, error) {
	resp, err := c.doGetWithRetry(headers, url)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.Header, body, err
}

func (c *Client) Get(url string) (http.Header, []byte, error) {
	return c.GetWith(nil, url)
}

func (c *Client) GetJson(url string, result interface{}) error {
	return c.GetJsonWith(nil, url, result)
}

func (c *Client) GetJsonWith(headers map[string]string, url string, result interface{}) error {
	resp, err := c.doGetWithRetry(headers, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)
	return decoder.Decode(result)
}
