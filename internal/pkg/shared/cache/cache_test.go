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

package cache

import (
	"bytes"
	"testing"
)

func TestCache(t *testing.T) {

	type cacheTests struct {
		key      string
		val      []byte
		expected []byte
	}
	var tbl = []cacheTests{
		{"GET https://www.robtex.com/ip/8.8.8.8.html", []byte("<html>dns.google</html>"), []byte("<html>dns.google</html>")},
		{"POST https://example.com/q", []byte{}, []byte{}},
	}

	// test for fail init first
	_, err := New("CacheName", 0, 3)
	if err == nil {
		t.Error("Expected error for shard eq. 3")
	}

	c, err := New("CacheName", 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Get("missing"); err == nil {
		t.Error("Expected error for missing key")
	}

	for _, tt := range tbl {
		if err := c.Set(tt.key, tt.val); err != nil {
			t.Error(err)
		}
		actual, err := c.Get(tt.key)
		if err != nil {
			t.Error(err)
		}
		if !bytes.Equal(actual, tt.expected) {
			t.Errorf("key %v val %v, result is %v expected %v.", tt.key, tt.val, actual, tt.expected)
		}
	}
	if c.Len() != len(tbl) {
		t.Errorf("expected %d entries, actual %d", len(tbl), c.Len())
	}
}
