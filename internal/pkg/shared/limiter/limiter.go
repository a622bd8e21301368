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

package limiter

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces consecutive requests to one site at least delay apart
type Limiter struct {
	sync.RWMutex
	lmt   *rate.Limiter
	delay time.Duration
}

// New returns initialized Limiter, a zero delay means unlimited
func New(delay time.Duration) (*Limiter, error) {
	if delay < 0 {
		return nil, errors.New("delay must be >= 0")
	}
	l := new(Limiter)
	l.Lock()
	defer l.Unlock()
	l.delay = delay
	if delay == 0 {
		l.lmt = rate.NewLimiter(rate.Inf, 1)
	} else {
		l.lmt = rate.NewLimiter(rate.Every(delay), 1)
	}
	return l, nil
}

// Delay returns the configured spacing
func (l *Limiter) Delay() time.Duration {
	l.RLock()
	defer l.RUnlock()
	return l.delay
}

// Wait returns the rate.limiter Wait function
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lmt.Wait(ctx)
}
