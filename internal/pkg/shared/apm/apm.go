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

package apm

import (
	"context"
	"net/http"
	"sync"

	"go.elastic.co/apm"
	"go.elastic.co/apm/module/apmhttp"
)

var enabled bool
var mu = sync.RWMutex{}

//Enabled returns whether apm is enabled
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

//Enable set apm status
func Enable(e bool) {
	mu.Lock()
	enabled = e
	mu.Unlock()
}

// Transaction wraps transaction from apm Default tracer and make it concurrency safe.
// A nil *Transaction is valid and does nothing, so callers don't have to check
// Enabled() before every call.
type Transaction struct {
	sync.Mutex
	Tx    *apm.Transaction
	ended bool
}

// StartLookup returns a transaction for one site lookup, or nil when apm is disabled
func StartLookup(site, target string) *Transaction {
	if !Enabled() {
		return nil
	}
	t := &Transaction{Tx: apm.DefaultTracer.StartTransaction("Site Lookup", "Automater")}
	t.SetCustom("Target", target)
	t.SetCustom("Source", site)
	return t
}

// SetCustom set custom value for the transaction
func (t *Transaction) SetCustom(key string, value string) {
	if t == nil {
		return
	}
	t.Lock()
	defer t.Unlock()
	if t.ended {
		return
	}
	t.Tx.Context.SetTag(key, value)
}

// Result set the result for the transaction
func (t *Transaction) Result(value string) {
	if t == nil {
		return
	}
	t.Lock()
	defer t.Unlock()
	if t.ended {
		return
	}
	t.Tx.Result = value
}

// SetError set and send error
func (t *Transaction) SetError(err error) {
	if t == nil {
		return
	}
	e := apm.DefaultTracer.NewError(err)
	e.SetTransaction(t.Tx)
	e.Send()
}

// End completes the transaction
func (t *Transaction) End() {
	if t == nil {
		return
	}
	t.Lock()
	defer t.Unlock()
	if t.ended {
		return
	}
	t.ended = true
	t.Tx.End()
}

// Context returns ctx carrying the transaction, so that requests sent through
// a client from WrapClient are recorded as its spans
func (t *Transaction) Context(ctx context.Context) context.Context {
	if t == nil {
		return ctx
	}
	return apm.ContextWithTransaction(ctx, t.Tx)
}

// WrapClient returns c instrumented for apm, or c itself when apm is disabled
func WrapClient(c *http.Client) *http.Client {
	if !Enabled() {
		return c
	}
	return apmhttp.WrapClient(c)
}
