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

package pprof

import (
	"errors"

	"github.com/pkg/profile"
)

// Stopper is returned by GetProfiler and must be called when the run ends
type Stopper interface{ Stop() }

// GetProfiler starts pprof for a given profile, writing the result to dir.
// An empty dir lets the profile package pick a temporary directory.
func GetProfiler(p string, dir string) (i Stopper, err error) {
	opts := []func(*profile.Profile){profile.Quiet}
	if dir != "" {
		opts = append(opts, profile.ProfilePath(dir))
	}
	switch p {
	case "cpu":
		i = profile.Start(append(opts, profile.CPUProfile)...)
	case "memory":
		i = profile.Start(append(opts, profile.MemProfile)...)
	case "mutex":
		i = profile.Start(append(opts, profile.MutexProfile)...)
	case "block":
		i = profile.Start(append(opts, profile.BlockProfile)...)
	default:
		i = nil
		err = errors.New("invalid profiler, valid option is cpu|memory|mutex|block")
	}
	return
}
