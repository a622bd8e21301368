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

package site

import (
	"reflect"
	"testing"
)

func TestProperty(t *testing.T) {
	type propTests struct {
		name     string
		p        Property
		empty    bool
		none     bool
		scalar   bool
		expected []string
	}
	tbl := []propTests{
		{"none", None(), true, true, false, nil},
		{"empty scalar", Scalar(""), true, false, true, []string{""}},
		{"scalar", Scalar("dns.google"), false, false, true, []string{"dns.google"}},
		{"empty list", List(), true, false, false, []string{}},
		{"list", List("a", "a", "b"), false, false, false, []string{"a", "a", "b"}},
	}
	for _, tt := range tbl {
		if tt.p.Empty() != tt.empty {
			t.Errorf("Property %v: expected Empty %v, actual %v", tt.name, tt.empty, tt.p.Empty())
		}
		if tt.p.IsNone() != tt.none {
			t.Errorf("Property %v: expected IsNone %v, actual %v", tt.name, tt.none, tt.p.IsNone())
		}
		if tt.p.IsScalar() != tt.scalar {
			t.Errorf("Property %v: expected IsScalar %v, actual %v", tt.name, tt.scalar, tt.p.IsScalar())
		}
		if !reflect.DeepEqual(tt.p.Values(), tt.expected) {
			t.Errorf("Property %v: expected Values %v, actual %v", tt.name, tt.expected, tt.p.Values())
		}
	}
}

func TestListIsCopied(t *testing.T) {
	src := []string{"a", "b"}
	p := List(src...)
	src[0] = "x"
	v := p.Values()
	if v[0] != "a" {
		t.Fatalf("List must not alias its input, got %v", v)
	}
	v[1] = "y"
	if p.Values()[1] != "b" {
		t.Fatalf("Values must not alias the property, got %v", p.Values())
	}
}

func TestNewResult(t *testing.T) {
	c1 := Category{Name: "Robtex DNS", Pattern: `dns:(\S+)`, ReportPrefix: "[+] A records from Robtex:"}
	c2 := Category{Name: "Robtex MX", Pattern: `mx:(\S+)`, ReportPrefix: "[+] MX records from Robtex:"}

	r := NewResult("8.8.8.8", TypeIP, "https://www.robtex.com/ip/8.8.8.8.html",
		[]Category{c1}, []Property{Scalar("dns.google")})
	if _, ok := r.Findings.(Single); !ok {
		t.Fatalf("expected Single findings, got %T", r.Findings)
	}
	if !reflect.DeepEqual(r.Categories(), []Category{c1}) {
		t.Errorf("unexpected categories %v", r.Categories())
	}
	if r.AllEmpty() {
		t.Error("expected result not to be empty")
	}

	r = NewResult("8.8.8.8", TypeIP, "https://www.robtex.com/ip/8.8.8.8.html",
		[]Category{c1, c2}, []Property{None(), List()})
	m, ok := r.Findings.(Multi)
	if !ok {
		t.Fatalf("expected Multi findings, got %T", r.Findings)
	}
	if len(m) != 2 || m[1].Category != c2 {
		t.Errorf("unexpected findings %v", m)
	}
	if !r.AllEmpty() {
		t.Error("expected all findings to be empty")
	}

	if !(Result{}).AllEmpty() {
		t.Error("a result without findings is empty")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched categories and properties")
		}
	}()
	NewResult("8.8.8.8", TypeIP, "", []Category{c1, c2}, []Property{None()})
}
