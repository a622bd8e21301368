// Copyright (c) 2018 PT Defender Nusa Semesta and contributors, All rights reserved.
//
// This file is part of Automater.
//
// Automater is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation version 3 of the License.
//
// Automater is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Automater. If not, see <https://www.gnu.org/licenses/>.

// Package webclient builds the HTTP clients used to reach remote sources
package webclient

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

// New returns a client that goes through proxy when it isn't empty. proxy is
// host:port, with or without a scheme.
func New(proxy string, timeout time.Duration) (*http.Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		if !strings.Contains(proxy, "://") {
			proxy = "http://" + proxy
		}
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %s: %w", proxy, err)
		}
		tr.Proxy = http.ProxyURL(u)
	}
	return &http.Client{Transport: tr, Timeout: timeout}, nil
}

// Request describes one call to a remote source
type Request struct {
	Method    string
	URL       string
	UserAgent string
	Headers   map[string]string
	Form      url.Values // sent as the body of POST requests
}

// Do performs req and returns the response body. Non-2xx responses are
// errors.
func Do(ctx context.Context, c *http.Client, req Request) ([]byte, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if method == http.MethodPost && req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	}
	r, err := http.NewRequest(method, req.URL, body)
	if err != nil {
		return nil, err
	}
	r = r.WithContext(ctx)
	if body != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if req.UserAgent != "" {
		r.Header.Set("User-Agent", req.UserAgent)
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}

	res, err := c.Do(r)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	b, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return b, fmt.Errorf("%s returned %s", req.URL, res.Status)
	}
	return b, nil
}

// Get fetches u with a plain GET request
func Get(ctx context.Context, c *http.Client, u string) ([]byte, error) {
	return Do(ctx, c, Request{URL: u})
}
