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

// Package lookup provides the entry point for lookup plugins. A site whose
// method is "plugin" is queried through the Checker registered under the
// site's plugin name instead of over HTTP.
package lookup

import "context"

// Checker defines the behaviour that must be implemented by a lookup plugin
type Checker interface {
	Check(ctx context.Context, target string) (found bool, results []Result, err error)
	Initialize(config []byte) error
}

// Result defines the struct that must be returned by a lookup plugin.
// Category is the friendly name of the site category the result belongs
// to; it may be left empty for sites with a single category.
type Result struct {
	Provider string `json:"provider"`
	Term     string `json:"term"`
	Category string `json:"category"`
	Result   string `json:"result"`
}
