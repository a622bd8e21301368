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

// Package sitedef loads the site definitions that drive target lookups
package sitedef

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/ioutil"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/defenxor/automater/internal/pkg/automater/site"
	"github.com/defenxor/automater/internal/pkg/shared/fs"
	log "github.com/defenxor/automater/internal/pkg/shared/logger"
	"github.com/defenxor/automater/internal/pkg/shared/str"
)

// TargetPlaceholder is replaced with the lookup target in URLs and params
const TargetPlaceholder = "%TARGET%"

// MethodPlugin marks a site that is queried through a lookup plugin
const MethodPlugin = "plugin"

type entries struct {
	Entries []string `xml:"entry"`
}

type xmlSite struct {
	Name          string  `xml:"name,attr"`
	Enabled       string  `xml:"enabled,attr"`
	Types         entries `xml:"sitetype"`
	FriendlyNames entries `xml:"sitefriendlyname"`
	Regexes       entries `xml:"regex"`
	ReportStrings entries `xml:"reportstringforresult"`
	FullURL       string  `xml:"fullurl"`
	DomainURL     string  `xml:"domainurl"`
	Method        string  `xml:"method"`
	Params        entries `xml:"params"`
	Headers       entries `xml:"headers"`
	Plugin        string  `xml:"plugin"`
	Config        string  `xml:"config"`
}

type xmlSites struct {
	XMLName xml.Name  `xml:"sites"`
	Sites   []xmlSite `xml:"site"`
}

// Site is one lookup source
type Site struct {
	Name       string
	Enabled    bool
	Types      []string
	Categories []site.Category
	FullURL    string
	DomainURL  string
	Method     string
	Params     []string // key=value pairs
	Headers    []string // "Name: value" pairs
	Plugin     string
	Config     string
	patterns   []*regexp.Regexp
}

// Supports reports whether s can look up targets of targetType
func (s *Site) Supports(targetType string) bool {
	return str.IsInList(s.Types, targetType)
}

// IsPlugin reports whether s is queried through a lookup plugin
func (s *Site) IsPlugin() bool {
	return strings.EqualFold(s.Method, MethodPlugin)
}

// Patterns returns the compiled category patterns, in category order
func (s *Site) Patterns() []*regexp.Regexp {
	return s.patterns
}

// URL returns the full URL for target
func (s *Site) URL(target string) string {
	return strings.Replace(s.FullURL, TargetPlaceholder, target, -1)
}

// Form returns the params for target as form values
func (s *Site) Form(target string) url.Values {
	if len(s.Params) == 0 {
		return nil
	}
	v := url.Values{}
	for _, p := range s.Params {
		kv := strings.SplitN(p, "=", 2)
		val := ""
		if len(kv) == 2 {
			val = strings.Replace(kv[1], TargetPlaceholder, target, -1)
		}
		v.Add(strings.TrimSpace(kv[0]), val)
	}
	return v
}

// HeaderMap returns the extra request headers of s
func (s *Site) HeaderMap() map[string]string {
	m := map[string]string{}
	for _, h := range s.Headers {
		kv := strings.SplitN(h, ":", 2)
		if len(kv) != 2 {
			continue
		}
		m[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return m
}

func newSite(x xmlSite) (Site, error) {
	s := Site{
		Name:      x.Name,
		Enabled:   true,
		FullURL:   strings.TrimSpace(x.FullURL),
		DomainURL: strings.TrimSpace(x.DomainURL),
		Method:    strings.TrimSpace(x.Method),
		Params:    x.Params.Entries,
		Headers:   x.Headers.Entries,
		Plugin:    strings.TrimSpace(x.Plugin),
		Config:    strings.TrimSpace(x.Config),
	}
	if s.Name == "" {
		return s, errors.New("site without a name")
	}
	if x.Enabled != "" {
		e, err := strconv.ParseBool(x.Enabled)
		if err != nil {
			return s, fmt.Errorf("site %s: invalid enabled value %s", s.Name, x.Enabled)
		}
		s.Enabled = e
	}
	for _, t := range x.Types.Entries {
		s.Types = str.AppendUniq(s.Types, strings.ToLower(strings.TrimSpace(t)))
	}

	n := len(x.Regexes.Entries)
	if n == 0 {
		return s, fmt.Errorf("site %s: no regex defined", s.Name)
	}
	if len(x.FriendlyNames.Entries) != n || len(x.ReportStrings.Entries) != n {
		return s, fmt.Errorf("site %s: %d regex, %d sitefriendlyname and %d reportstringforresult entries",
			s.Name, n, len(x.FriendlyNames.Entries), len(x.ReportStrings.Entries))
	}
	for i := 0; i < n; i++ {
		re, err := regexp.Compile(x.Regexes.Entries[i])
		if err != nil {
			return s, fmt.Errorf("site %s: invalid regex %d: %w", s.Name, i, err)
		}
		s.patterns = append(s.patterns, re)
		s.Categories = append(s.Categories, site.Category{
			Name:         x.FriendlyNames.Entries[i],
			Pattern:      x.Regexes.Entries[i],
			ReportPrefix: x.ReportStrings.Entries[i],
		})
	}

	if s.IsPlugin() {
		if s.Plugin == "" {
			return s, fmt.Errorf("site %s: plugin method without a plugin name", s.Name)
		}
	} else if s.FullURL == "" {
		return s, fmt.Errorf("site %s: no fullurl defined", s.Name)
	}
	return s, nil
}

// Parse returns the valid sites defined in b. Invalid sites are logged and
// skipped; an error is returned only when b isn't a sites document.
func Parse(b []byte) ([]Site, error) {
	var x xmlSites
	if err := xml.Unmarshal(b, &x); err != nil {
		return nil, err
	}
	sites := []Site{}
	for i := range x.Sites {
		s, err := newSite(x.Sites[i])
		if err != nil {
			log.Warn(log.M{Msg: "Skipping site definition: " + err.Error()})
			continue
		}
		sites = append(sites, s)
	}
	return sites, nil
}

// Load reads and parses the sites file filename
func Load(filename string) ([]Site, error) {
	if !fs.FileExist(filename) {
		return nil, fmt.Errorf("no local %s file present", filename)
	}
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	sites, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("there was an error reading from the %s input file, "+
			"please check that it is correctly formatted: %w", filename, err)
	}
	log.Info(log.M{Msg: "Loaded " + strconv.Itoa(len(sites)) + " site definitions from " + filename})
	return sites, nil
}

// Select returns the enabled sites supporting targetType whose name is in
// sources. The source "allsources" selects every site.
func Select(sites []Site, targetType string, sources []string) []Site {
	all := len(sources) == 0 || str.IsInList(sources, "allsources")
	selected := []Site{}
	for i := range sites {
		s := sites[i]
		if !s.Enabled || !s.Supports(targetType) {
			continue
		}
		if !all && !str.IsInList(sources, s.Name) {
			continue
		}
		selected = append(selected, s)
	}
	return selected
}
