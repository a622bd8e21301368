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

// Package wise queries a Moloch WISE service for IP targets
package wise

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/defenxor/automater/pkg/lookup"
)

func init() {
	lookup.RegisterExtension(new(Wise), "Wise")
}

// Wise is a lookup.Checker for WISE
type Wise struct {
	Cfg Config `json:"cfg"`
}

// Config defines the WISE endpoint. ${target} in URL is replaced with the
// lookup target.
type Config struct {
	URL string `json:"url"`
}

type wiseResult struct {
	Field string `json:"field"`
	Len   int    `json:"len"`
	Value string `json:"value"`
}

// Initialize implement iface
func (w *Wise) Initialize(b []byte) error {
	if err := json.Unmarshal(b, &w.Cfg); err != nil {
		return err
	}
	if w.Cfg.URL == "" {
		return errors.New("wise: empty url in config")
	}
	return nil
}

// Check implement iface
func (w *Wise) Check(ctx context.Context, target string) (found bool, results []lookup.Result, err error) {

	url := strings.Replace(w.Cfg.URL, "${target}", target, 1)

	c := http.Client{}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return
	}
	req = req.WithContext(ctx)

	res, err := c.Do(req)
	if err != nil {
		return
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("wise: %s returned %s", url, res.Status)
		return
	}

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return
	}

	// WISE returns a JS object literal, quote the keys to make it JSON
	s := strings.Replace(string(body), "field:", `"field":`, -1)
	s = strings.Replace(s, "len:", `"len":`, -1)
	s = strings.Replace(s, "value:", `"value":`, -1)

	result := []wiseResult{}
	if err = json.Unmarshal([]byte(s), &result); err != nil {
		return
	}

	for _, r := range result {
		// len < 5 is ID or metadata
		if r.Len < 5 {
			continue
		}
		results = append(results, lookup.Result{Provider: "Wise", Term: target, Result: r.Field + ": " + r.Value})
		found = true
	}
	return
}
