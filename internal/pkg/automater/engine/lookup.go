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

package engine

import (
	"context"
	"regexp"

	"github.com/defenxor/automater/internal/pkg/automater/site"
	"github.com/defenxor/automater/internal/pkg/automater/sitedef"
	"github.com/defenxor/automater/internal/pkg/shared/apm"
	log "github.com/defenxor/automater/internal/pkg/shared/logger"
	"github.com/defenxor/automater/internal/pkg/shared/webclient"
)

func (e *Engine) lookup(ctx context.Context, j job) site.Result {
	e.lookups.Incr(1)
	tx := apm.StartLookup(j.site.Name, j.target)
	defer tx.End()
	ctx = tx.Context(ctx)

	var props []site.Property
	var err error
	if j.site.IsPlugin() {
		props, err = e.queryPlugin(ctx, j)
	} else {
		props, err = e.queryHTTP(ctx, j)
	}
	if err != nil {
		e.failures.Incr(1)
		log.Warn(log.M{Msg: "Lookup failed: " + err.Error(), RId: e.cfg.RunID, Target: j.target, Source: j.site.Name})
		tx.SetError(err)
		tx.Result("Lookup failed")
		return emptyResult(j)
	}
	r := site.NewResult(j.target, j.targetType, sourceURL(j), j.site.Categories, props)
	if r.AllEmpty() {
		tx.Result("Not found")
	} else {
		tx.Result("Found")
	}
	return r
}

func (e *Engine) queryHTTP(ctx context.Context, j job) ([]site.Property, error) {
	req := webclient.Request{
		Method:    j.site.Method,
		URL:       j.site.URL(j.target),
		UserAgent: e.cfg.UserAgent,
		Headers:   j.site.HeaderMap(),
		Form:      j.site.Form(j.target),
	}
	key := req.Method + " " + req.URL + " " + req.Form.Encode()

	body, err := e.cache.Get(key)
	if err == nil {
		e.cacheHits.Incr(1)
		log.Debug(log.M{Msg: "Returning cached response for " + req.URL, RId: e.cfg.RunID, Target: j.target, Source: j.site.Name})
		return extract(string(body), j.site.Patterns()), nil
	}

	if err := e.limiters[j.site.Name].Wait(ctx); err != nil {
		return nil, err
	}
	e.requests.Incr(1)
	e.rate.Incr(1)
	log.Info(log.M{Msg: "Requesting " + req.URL, RId: e.cfg.RunID, Target: j.target, Source: j.site.Name})
	body, err = webclient.Do(ctx, e.client, req)
	if err != nil {
		return nil, err
	}
	if err := e.cache.Set(key, body); err != nil {
		log.Debug(log.M{Msg: "Cannot cache response: " + err.Error(), RId: e.cfg.RunID, Source: j.site.Name})
	}
	return extract(string(body), j.site.Patterns()), nil
}

func (e *Engine) queryPlugin(ctx context.Context, j job) ([]site.Property, error) {
	c, ok := e.checkers[j.site.Name]
	if !ok {
		return nil, errNoPlugin
	}
	if err := e.limiters[j.site.Name].Wait(ctx); err != nil {
		return nil, err
	}
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}
	e.requests.Incr(1)
	e.rate.Incr(1)
	found, results, err := c.Check(ctx, j.target)
	if err != nil {
		return nil, err
	}
	props := make([]site.Property, len(j.site.Categories))
	if !found {
		return props, nil
	}
	patterns := j.site.Patterns()
	values := make([][]string, len(j.site.Categories))
	for _, r := range results {
		i := categoryIndex(j.site, r.Category)
		if i < 0 {
			continue
		}
		if v, ok := match(patterns[i], r.Result); ok {
			values[i] = append(values[i], v)
		}
	}
	for i := range values {
		props[i] = property(values[i])
	}
	return props, nil
}

// results without a category, or with an unknown one, go to the first category
func categoryIndex(s *sitedef.Site, name string) int {
	for i := range s.Categories {
		if s.Categories[i].Name == name {
			return i
		}
	}
	if len(s.Categories) > 0 {
		return 0
	}
	return -1
}

// match returns the first capture group of re in s, or the whole match when
// re has no group
func match(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}

func extract(body string, patterns []*regexp.Regexp) []site.Property {
	props := make([]site.Property, len(patterns))
	for i, re := range patterns {
		values := []string{}
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			if len(m) > 1 {
				values = append(values, m[1])
			} else {
				values = append(values, m[0])
			}
		}
		props[i] = property(values)
	}
	return props
}

// no value is None, one value a scalar, more a list
func property(values []string) site.Property {
	switch len(values) {
	case 0:
		return site.None()
	case 1:
		return site.Scalar(values[0])
	}
	return site.List(values...)
}
