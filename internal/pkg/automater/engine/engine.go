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

// Package engine queries the configured sites for every target and collects
// their findings
package engine

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/defenxor/automater/internal/pkg/automater/site"
	"github.com/defenxor/automater/internal/pkg/automater/sitedef"
	"github.com/defenxor/automater/internal/pkg/automater/target"
	"github.com/defenxor/automater/internal/pkg/shared/apm"
	"github.com/defenxor/automater/internal/pkg/shared/cache"
	"github.com/defenxor/automater/internal/pkg/shared/ip"
	"github.com/defenxor/automater/internal/pkg/shared/limiter"
	log "github.com/defenxor/automater/internal/pkg/shared/logger"
	"github.com/defenxor/automater/internal/pkg/shared/webclient"
	"github.com/defenxor/automater/pkg/lookup"

	"github.com/paulbellamy/ratecounter"
	"github.com/remeh/sizedwaitgroup"
)

// Config holds the query settings
type Config struct {
	Delay         time.Duration // minimum spacing between requests to the same site
	Proxy         string
	UserAgent     string
	Sources       []string // site names to use, empty or "allsources" for all
	Workers       int      // concurrent lookups
	SkipPrivate   bool     // don't look up private IP targets
	CacheDuration int      // response cache lifetime in minutes
	Timeout       time.Duration
	RunID         string
}

// Stats counts the work done by an Engine
type Stats struct {
	Lookups   int64
	Requests  int64
	CacheHits int64
	Failures  int64
	// Requests sent during the last minute
	RequestsPerMinute int64
}

// Engine runs site lookups
type Engine struct {
	cfg      Config
	sites    []sitedef.Site
	client   *http.Client
	cache    *cache.Cache
	limiters map[string]*limiter.Limiter
	checkers map[string]lookup.Checker

	lookups   ratecounter.Counter
	requests  ratecounter.Counter
	cacheHits ratecounter.Counter
	failures  ratecounter.Counter
	rate      *ratecounter.RateCounter
}

// New returns an Engine for sites
func New(cfg Config, sites []sitedef.Site) (*Engine, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	client, err := webclient.New(cfg.Proxy, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	client = apm.WrapClient(client)
	c, err := cache.New("responses", cfg.CacheDuration, 0)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		sites:    sites,
		client:   client,
		cache:    c,
		limiters: make(map[string]*limiter.Limiter),
		checkers: make(map[string]lookup.Checker),
		rate:     ratecounter.NewRateCounter(time.Minute),
	}
	for i := range sites {
		s := &sites[i]
		if _, ok := e.limiters[s.Name]; ok {
			continue
		}
		l, err := limiter.New(cfg.Delay)
		if err != nil {
			return nil, err
		}
		e.limiters[s.Name] = l
		if s.Enabled && s.IsPlugin() {
			e.initPlugin(s)
		}
	}
	return e, nil
}

// each site gets its own plugin instance so that sites sharing a plugin can
// use different configs
func newInstance(c lookup.Checker) lookup.Checker {
	t := reflect.TypeOf(c)
	if t.Kind() != reflect.Ptr {
		return c
	}
	if n, ok := reflect.New(t.Elem()).Interface().(lookup.Checker); ok {
		return n
	}
	return c
}

func (e *Engine) initPlugin(s *sitedef.Site) {
	p := lookup.Checkers.Lookup(s.Plugin)
	if p == nil {
		log.Warn(log.M{Msg: "Cannot find lookup plugin " + s.Plugin, Source: s.Name})
		return
	}
	p = newInstance(p)
	if err := p.Initialize([]byte(s.Config)); err != nil {
		log.Warn(log.M{Msg: "Cannot initialize lookup plugin " + s.Plugin + ": " + err.Error(), Source: s.Name})
		return
	}
	log.Info(log.M{Msg: "Adding lookup plugin " + s.Plugin, Source: s.Name})
	e.checkers[s.Name] = p
}

type job struct {
	slot       int
	site       *sitedef.Site
	target     string
	targetType string
}

// Run looks up every target on every matching site. Results are ordered by
// target then by site definition order, regardless of Workers.
func (e *Engine) Run(ctx context.Context, targets []string) []site.Result {
	jobs := []job{}
	for _, t := range targets {
		tt := target.Type(t)
		if e.cfg.SkipPrivate && tt == site.TypeIP {
			if private, err := ip.IsPrivateIP(t); err == nil && private {
				log.Info(log.M{Msg: "Skipping private address", RId: e.cfg.RunID, Target: t})
				continue
			}
		}
		selected := sitedef.Select(e.sites, tt, e.cfg.Sources)
		if len(selected) == 0 {
			log.Info(log.M{Msg: "No site configured for " + tt + " targets", RId: e.cfg.RunID, Target: t})
		}
		for i := range selected {
			jobs = append(jobs, job{slot: len(jobs), site: &selected[i], target: t, targetType: tt})
		}
	}

	results := make([]site.Result, len(jobs))
	swg := sizedwaitgroup.New(e.cfg.Workers)
	for _, j := range jobs {
		if err := swg.AddWithContext(ctx); err != nil {
			results[j.slot] = emptyResult(j)
			continue
		}
		go func(j job) {
			defer swg.Done()
			results[j.slot] = e.lookup(ctx, j)
		}(j)
	}
	swg.Wait()

	st := e.Stats()
	log.Debug(log.M{Msg: "Finished " + strconv.FormatInt(st.Lookups, 10) + " lookups, " +
		strconv.FormatInt(st.Requests, 10) + " requests, " +
		strconv.FormatInt(st.CacheHits, 10) + " cache hits, " +
		strconv.FormatInt(st.RequestsPerMinute, 10) + " requests in the last minute", RId: e.cfg.RunID})
	return results
}

// Stats returns the counters accumulated since New
func (e *Engine) Stats() Stats {
	return Stats{
		Lookups:           e.lookups.Value(),
		Requests:          e.requests.Value(),
		CacheHits:         e.cacheHits.Value(),
		Failures:          e.failures.Value(),
		RequestsPerMinute: e.rate.Rate(),
	}
}

func sourceURL(j job) string {
	if j.site.IsPlugin() {
		if j.site.DomainURL != "" {
			return j.site.DomainURL
		}
		return j.site.Name
	}
	return j.site.URL(j.target)
}

func emptyResult(j job) site.Result {
	props := make([]site.Property, len(j.site.Categories))
	return site.NewResult(j.target, j.targetType, sourceURL(j), j.site.Categories, props)
}

var errNoPlugin = errors.New("lookup plugin is not available")
