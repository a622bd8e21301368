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

package aggregate

import (
	"errors"
	"reflect"
	"testing"

	"github.com/defenxor/automater/internal/pkg/automater/site"
)

var (
	catA = site.Category{Name: "Robtex DNS", Pattern: `(.*)`, ReportPrefix: "[+] A records:"}
	catB = site.Category{Name: "Robtex MX", Pattern: `(.*)`, ReportPrefix: "[+] MX records:"}
)

func single(target string, p site.Property) site.Result {
	return site.NewResult(target, site.TypeURL, "https://src/"+target, []site.Category{catA}, []site.Property{p})
}

func multi(target string, pa, pb site.Property) site.Result {
	return site.NewResult(target, site.TypeURL, "https://src/"+target, []site.Category{catA, catB}, []site.Property{pa, pb})
}

func results(rows []Row) []string {
	s := []string{}
	for _, r := range rows {
		s = append(s, r.Result)
	}
	return s
}

func TestAdjacentDedup(t *testing.T) {
	rows := Aggregate([]site.Result{single("a.com", site.List("a", "a", "b", "a"))})
	expected := []string{"a", "b", "a"}
	if actual := results(rows); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v, actual %v", expected, actual)
	}
	for _, r := range rows {
		if r.Target != "a.com" || r.Type != site.TypeURL || r.Source != catA.Name {
			t.Errorf("unexpected row %+v", r)
		}
	}
}

func TestDedupIsPerCategory(t *testing.T) {
	type aggTests struct {
		name     string
		in       []site.Result
		expected []string
	}
	tbl := []aggTests{
		{"same value in sibling categories",
			[]site.Result{multi("a.com", site.List("x", "x"), site.List("x"))},
			[]string{"x", "x"}},
		{"empty category between",
			[]site.Result{multi("a.com", site.List("x"), site.None()), multi("a.com", site.List("x"), site.List())},
			[]string{"x", NoResults, "x", NoResults}},
		{"scalar",
			[]site.Result{multi("a.com", site.Scalar("x"), site.Scalar(""))},
			[]string{"x", NoResults}},
		{"all empty",
			[]site.Result{multi("a.com", site.None(), site.List())},
			[]string{NoResults, NoResults}},
		{"single empty",
			[]site.Result{single("a.com", site.Scalar(""))},
			[]string{NoResults}},
		{"same source twice",
			[]site.Result{single("a.com", site.List("x")), single("a.com", site.List("x"))},
			[]string{"x", "x"}},
	}
	for _, tt := range tbl {
		if actual := results(Aggregate(tt.in)); !reflect.DeepEqual(actual, tt.expected) {
			t.Errorf("%s: expected %v, actual %v", tt.name, tt.expected, actual)
		}
	}
}

func TestEmptyRowsAreNotDeduped(t *testing.T) {
	rows := Aggregate([]site.Result{
		multi("a.com", site.None(), site.List("y")),
		multi("a.com", site.None(), site.List("y")),
	})
	expected := []string{NoResults, "y", NoResults, "y"}
	if actual := results(rows); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v, actual %v", expected, actual)
	}
}

func TestKinds(t *testing.T) {
	in := []site.Result{
		multi("a.com", site.None(), site.List("y")),
		multi("b.com", site.None(), site.None()),
		single("c.com", site.None()),
	}
	type k struct {
		kind  Kind
		multi bool
		cat   int
	}
	expected := []k{
		{Missing, true, 0}, {Found, true, 1},
		{SourceEmpty, true, 0}, {SourceEmpty, true, 1},
		{SourceEmpty, false, 0},
	}
	actual := []k{}
	err := Walk(in, func(e Entry) error {
		actual = append(actual, k{e.Kind, e.Multi, e.Category})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v, actual %v", expected, actual)
	}
}

func TestSortAndNewTarget(t *testing.T) {
	in := []site.Result{
		single("b.com", site.List("b1", "b2")),
		single("a.com", site.List("a1")),
		multi("a.com", site.List("a2"), site.None()),
	}
	targets := []string{}
	newTargets := []string{}
	err := Walk(in, func(e Entry) error {
		targets = append(targets, e.Target)
		if e.NewTarget {
			newTargets = append(newTargets, e.Target)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if expected := []string{"a.com", "a.com", "a.com", "b.com", "b.com"}; !reflect.DeepEqual(targets, expected) {
		t.Errorf("expected %v, actual %v", expected, targets)
	}
	if expected := []string{"a.com", "b.com"}; !reflect.DeepEqual(newTargets, expected) {
		t.Errorf("expected %v, actual %v", expected, newTargets)
	}
	// input must be left untouched
	if in[0].Target != "b.com" {
		t.Error("Walk modified its input")
	}
}

func TestWalkStopsOnError(t *testing.T) {
	e := errors.New("stop")
	n := 0
	err := Walk([]site.Result{single("a.com", site.List("1", "2", "3"))}, func(Entry) error {
		n++
		return e
	})
	if err != e || n != 1 {
		t.Errorf("expected one call and the callback error, got %d calls, err %v", n, err)
	}
}

func TestWalkSkipsResultsWithoutFindings(t *testing.T) {
	rows := Aggregate([]site.Result{{Target: "a.com"}})
	if len(rows) != 0 {
		t.Errorf("expected no rows, actual %v", rows)
	}
}
