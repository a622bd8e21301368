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
	"context"
	"reflect"
	"testing"
)

type Dummy struct{}

func (d Dummy) Initialize(b []byte) error {
	return nil
}

func (d Dummy) Check(ctx context.Context, target string) (found bool, results []Result, err error) {
	return
}

func TestExtPointsInterface(t *testing.T) {
	ext1 := RegisterExtension(new(Dummy), "Dummy")
	if !reflect.DeepEqual(ext1, []string{"Checker"}) {
		t.Fatal("Cannot register extension")
	}
	if ext := RegisterExtension("not a checker", "Str"); ext != nil {
		t.Fatal("Expected non-checker to be rejected")
	}

	var cs = Checkers

	if len(cs.All()) == 0 {
		t.Fatal("Expect a registered extension")
	}
	names := cs.Names()
	if !reflect.DeepEqual(names, []string{"Dummy"}) {
		t.Fatal("Expect a registered extension, got", names)
	}

	c1 := cs.Lookup("Dummy")
	if c1 == nil {
		t.Fatal("Cannot lookup extension")
	}
	if c2 := cs.Lookup("NA"); c2 != nil {
		t.Fatal("Expect c equals nil")
	}

	if !cs.Register(c1, "Dummy2") {
		t.Fatal("Cannot register new extension")
	}
	if cs.Register(c1, "Dummy2") {
		t.Fatal("Expected to fail on registering existing extension")
	}
	// empty name defaults to the type name, which is taken
	if cs.Register(c1, "") {
		t.Fatal("Expected to fail on registering existing extension")
	}
	if !cs.Unregister("Dummy2") {
		t.Fatal("Cannot unregister extension")
	}
	if cs.Unregister("Dummy2") {
		t.Fatal("Expected to fail on unregistering non-existent extension")
	}

	ext := UnregisterExtension("Dummy")
	if !reflect.DeepEqual(ext, []string{"Checker"}) {
		t.Fatal("Cannot unregister extension")
	}
	if ext := UnregisterExtension("Dummy"); ext != nil {
		t.Fatal("Expected nothing to unregister")
	}
}
