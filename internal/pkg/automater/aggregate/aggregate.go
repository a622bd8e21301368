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

// Package aggregate flattens site results into report rows
package aggregate

import (
	"sort"

	"github.com/defenxor/automater/internal/pkg/automater/site"
)

// NoResults is the result text of rows for empty categories
const NoResults = "No results found"

// Kind tells renderers what an Entry carries
type Kind int

const (
	// Found is a row holding an extracted value
	Found Kind = iota
	// Missing is an empty category of a multi-category source whose other
	// categories returned something
	Missing
	// SourceEmpty is an empty category of a source where every category
	// came back empty
	SourceEmpty
)

// Row is one aggregated (target, type, source, result) tuple
type Row struct {
	Target string `csv:"Target"`
	Type   string `csv:"Type"`
	Source string `csv:"Source"`
	Result string `csv:"Result"`
}

// Entry is a Row plus the context renderers need to format it
type Entry struct {
	Row
	Kind      Kind
	Prefix    string // report prefix of the category
	SourceURL string
	Multi     bool // the source has several categories
	Category  int  // category index within the source
	NewTarget bool // first entry of a target that differs from the previous one
}

// Sort returns a copy of results ordered by target. Results with the same
// target keep their relative order.
func Sort(results []site.Result) []site.Result {
	sorted := make([]site.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Target < sorted[j].Target
	})
	return sorted
}

// Walk sorts results by target and calls fn for every entry in report order.
// Within one category a value equal to the previously emitted one is
// skipped; the marker restarts for every category of every source. Empty
// rows are never skipped. Walk stops at the first error returned by fn.
func Walk(results []site.Result, fn func(Entry) error) error {
	var lastTarget string
	first := true
	for _, r := range Sort(results) {
		var findings []site.Finding
		multi := false
		switch f := r.Findings.(type) {
		case site.Single:
			findings = []site.Finding{site.Finding(f)}
		case site.Multi:
			findings = f
			multi = true
		default:
			continue
		}

		newTarget := first || r.Target != lastTarget
		first = false
		lastTarget = r.Target
		allEmpty := r.AllEmpty()

		for i, f := range findings {
			e := Entry{
				Row: Row{
					Target: r.Target,
					Type:   r.TargetType,
					Source: f.Category.Name,
				},
				Prefix:    f.Category.ReportPrefix,
				SourceURL: r.SourceURL,
				Multi:     multi,
				Category:  i,
			}
			if allEmpty || f.Property.Empty() {
				e.Kind = Missing
				if allEmpty {
					e.Kind = SourceEmpty
				}
				e.Result = NoResults
				e.NewTarget = newTarget
				newTarget = false
				if err := fn(e); err != nil {
					return err
				}
				continue
			}

			var prev *Row
			for _, v := range f.Property.Values() {
				e.Result = v
				if prev != nil && *prev == e.Row {
					continue
				}
				e.NewTarget = newTarget
				newTarget = false
				if err := fn(e); err != nil {
					return err
				}
				row := e.Row
				prev = &row
			}
		}
	}
	return nil
}

// Aggregate returns every row Walk would produce, in order
func Aggregate(results []site.Result) []Row {
	rows := []Row{}
	Walk(results, func(e Entry) error {
		rows = append(rows, e.Row)
		return nil
	})
	return rows
}
