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

// Package site holds the records produced by one source lookup for one target
package site

// Target types
const (
	TypeIP   = "ip"
	TypeURL  = "url"
	TypeHash = "hash"
)

type propertyKind int

const (
	kindNone propertyKind = iota
	kindScalar
	kindList
)

// Property is the value extracted by one category: none, a single string, or
// an ordered list of strings
type Property struct {
	kind   propertyKind
	scalar string
	list   []string
}

// None returns the empty Property
func None() Property {
	return Property{}
}

// Scalar returns a single-string Property
func Scalar(s string) Property {
	return Property{kind: kindScalar, scalar: s}
}

// List returns a Property holding values in order. The slice is copied.
func List(values ...string) Property {
	l := make([]string, len(values))
	copy(l, values)
	return Property{kind: kindList, list: l}
}

// IsNone reports whether p carries no value at all
func (p Property) IsNone() bool {
	return p.kind == kindNone
}

// IsScalar reports whether p is a single string
func (p Property) IsScalar() bool {
	return p.kind == kindScalar
}

// Empty reports whether p is none, an empty string, or an empty list
func (p Property) Empty() bool {
	switch p.kind {
	case kindScalar:
		return p.scalar == ""
	case kindList:
		return len(p.list) == 0
	}
	return true
}

// Values returns the property as a slice; a scalar becomes a one element
// slice and none becomes nil
func (p Property) Values() []string {
	switch p.kind {
	case kindScalar:
		return []string{p.scalar}
	case kindList:
		v := make([]string, len(p.list))
		copy(v, p.list)
		return v
	}
	return nil
}

// Category is one named extraction rule of a source
type Category struct {
	Name         string // friendly name, reported as the row source
	Pattern      string // regex run against the source response
	ReportPrefix string // prefix printed before each result line
}

// Finding pairs a category with the value it extracted
type Finding struct {
	Category Category
	Property Property
}

// Findings is either Single or Multi
type Findings interface {
	findings() []Finding
}

// Single is the finding of a source with one category
type Single Finding

// Multi is the ordered findings of a source with several categories
type Multi []Finding

func (s Single) findings() []Finding { return []Finding{Finding(s)} }
func (m Multi) findings() []Finding  { return m }

// Result is one source's findings for one target. Results are never
// modified once the engine returns them.
type Result struct {
	Target     string
	TargetType string
	SourceURL  string
	Findings   Findings
}

// Categories returns the categories of r in declaration order
func (r Result) Categories() []Category {
	if r.Findings == nil {
		return nil
	}
	f := r.Findings.findings()
	c := make([]Category, len(f))
	for i := range f {
		c[i] = f[i].Category
	}
	return c
}

// AllEmpty reports whether every finding of r is empty
func (r Result) AllEmpty() bool {
	if r.Findings == nil {
		return true
	}
	for _, f := range r.Findings.findings() {
		if !f.Property.Empty() {
			return false
		}
	}
	return true
}

// NewResult builds a Result from the categories of a source and the
// properties extracted for each of them. One category yields Single, more
// yield Multi. categories and props must have the same length.
func NewResult(target, targetType, sourceURL string, categories []Category, props []Property) Result {
	if len(categories) != len(props) {
		panic("site: categories and properties length mismatch")
	}
	r := Result{Target: target, TargetType: targetType, SourceURL: sourceURL}
	if len(categories) == 1 {
		r.Findings = Single{Category: categories[0], Property: props[0]}
		return r
	}
	m := make(Multi, len(categories))
	for i := range categories {
		m[i] = Finding{Category: categories[i], Property: props[i]}
	}
	r.Findings = m
	return r
}
