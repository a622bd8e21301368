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

package tsv

import (
	"io"
	"strings"

	"github.com/valyala/tsvreader"
)

// Reader returns the first column of every non-blank row of a TSV stream.
// A plain newline-delimited list is a single column TSV.
type Reader struct {
	reader *tsvreader.Reader
}

// NewReader returns a Reader for r. The stream doesn't need to end with a
// newline.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		reader: tsvreader.New(io.MultiReader(r, strings.NewReader("\n"))),
	}
}

// Next returns the first column of the next non-blank row, trimmed from
// surrounding whitespace. ok is false at the end of stream or on error.
func (p *Reader) Next() (col string, ok bool) {
	for p.reader.Next() {
		if !p.reader.HasCols() {
			continue
		}
		col = strings.TrimSpace(p.reader.String())
		for p.reader.HasCols() {
			p.reader.SkipCol()
		}
		if col == "" {
			continue
		}
		return col, true
	}
	return "", false
}

// Err returns the reader error, if any
func (p *Reader) Err() error {
	return p.reader.Error()
}

// ReadAll returns the first column of every non-blank row in r
func ReadAll(r io.Reader) ([]string, error) {
	p := NewReader(r)
	result := []string{}
	for {
		col, ok := p.Next()
		if !ok {
			break
		}
		result = append(result, col)
	}
	return result, p.Err()
}
