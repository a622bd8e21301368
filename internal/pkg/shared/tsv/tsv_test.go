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
	"reflect"
	"strings"
	"testing"
)

func TestReadAll(t *testing.T) {
	type s1 struct {
		input    string
		expected []string
	}
	tbl := []s1{
		{"", []string{}},
		{"8.8.8.8", []string{"8.8.8.8"}},
		{"8.8.8.8\n", []string{"8.8.8.8"}},
		{"8.8.8.8\r\nexample.com\r\n", []string{"8.8.8.8", "example.com"}},
		{"8.8.8.8\n\n  \nexample.com", []string{"8.8.8.8", "example.com"}},
		{"10.0.0.1-3\tlab range\textra\nd41d8cd98f00b204e9800998ecf8427e\tempty file md5\n",
			[]string{"10.0.0.1-3", "d41d8cd98f00b204e9800998ecf8427e"}},
		{"\tno first column\n1[.]2[.]3[.]4\n", []string{"1[.]2[.]3[.]4"}},
	}

	for _, tt := range tbl {
		actual, err := ReadAll(strings.NewReader(tt.input))
		if err != nil {
			t.Errorf("ReadAll: input %q, unexpected error %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(actual, tt.expected) {
			t.Errorf("ReadAll: input %q, expected %v, actual %v", tt.input, tt.expected, actual)
		}
	}
}
