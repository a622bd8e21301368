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

package lookup

import (
	"reflect"
	"sort"
	"sync"
)

// Checkers holds the registered Checker plugins
var Checkers = &checkerExt{extensions: make(map[string]Checker)}

type checkerExt struct {
	sync.Mutex
	extensions map[string]Checker
}

// RegisterExtension registers extension under name when it implements
// Checker, and returns the names of the interfaces it was registered for
func RegisterExtension(extension interface{}, name string) []string {
	c, ok := extension.(Checker)
	if !ok || !Checkers.Register(c, name) {
		return nil
	}
	return []string{"Checker"}
}

// UnregisterExtension removes the extension registered under name
func UnregisterExtension(name string) []string {
	if !Checkers.Unregister(name) {
		return nil
	}
	return []string{"Checker"}
}

// Register adds extension under name. An empty name defaults to the type
// name of extension. Existing names are not replaced.
func (ep *checkerExt) Register(extension Checker, name string) bool {
	ep.Lock()
	defer ep.Unlock()
	if name == "" {
		typ := reflect.TypeOf(extension)
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		name = typ.Name()
	}
	if _, exists := ep.extensions[name]; exists {
		return false
	}
	ep.extensions[name] = extension
	return true
}

// Unregister removes name, returning false if it wasn't registered
func (ep *checkerExt) Unregister(name string) bool {
	ep.Lock()
	defer ep.Unlock()
	if _, exists := ep.extensions[name]; !exists {
		return false
	}
	delete(ep.extensions, name)
	return true
}

// Lookup returns the Checker registered under name, or nil
func (ep *checkerExt) Lookup(name string) Checker {
	ep.Lock()
	defer ep.Unlock()
	return ep.extensions[name]
}

// All returns a copy of the registered Checkers
func (ep *checkerExt) All() map[string]Checker {
	ep.Lock()
	defer ep.Unlock()
	all := make(map[string]Checker, len(ep.extensions))
	for k, v := range ep.extensions {
		all[k] = v
	}
	return all
}

// Names returns the sorted names of the registered Checkers
func (ep *checkerExt) Names() []string {
	ep.Lock()
	defer ep.Unlock()
	names := []string{}
	for k := range ep.extensions {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
