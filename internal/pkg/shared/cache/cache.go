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
	"time"

	"github.com/allegro/bigcache"
)

// Cache wraps bigcache
type Cache struct {
	ID    string
	cache *bigcache.BigCache
}

// New returns initialized Cache
func New(name string, lifetimeMinutes int, shards int) (*Cache, error) {
	c := Cache{}
	c.ID = name
	// default to 10 minutes
	if lifetimeMinutes == 0 {
		lifetimeMinutes = 10
	}
	if shards == 0 {
		shards = 16
	}
	config := bigcache.Config{
		Shards:     shards,                                       // number of shards (must be a power of 2)
		LifeWindow: time.Duration(lifetimeMinutes) * time.Minute, // time after which entry can be evicted
		// used only in initial memory allocation
		MaxEntriesInWindow: shards * 64,
		// site responses are whole HTML pages, used only in initial memory allocation
		MaxEntrySize: 64 * 1024,
		Verbose:      false,
		// value in MB, oldest entries are overwritten once reached
		HardMaxCacheSize: 4 * shards,
	}

	p, err := bigcache.NewBigCache(config)
	if err != nil {
		return nil, err
	}
	c.cache = p
	return &c, nil
}

// Set store the key value in cache
func (c *Cache) Set(key string, value []byte) error {
	return c.cache.Set(key, value)
}

// Get returns value of key from cache
func (c *Cache) Get(key string) (value []byte, err error) {
	value, err = c.cache.Get(key)
	return
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	return c.cache.Len()
}
