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

// Package target turns raw indicator strings into concrete lookup targets
package target

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/defenxor/automater/internal/pkg/automater/site"
	"github.com/defenxor/automater/internal/pkg/shared/fs"
	log "github.com/defenxor/automater/internal/pkg/shared/logger"
	"github.com/defenxor/automater/internal/pkg/shared/tsv"
)

var (
	// un-anchored on purpose, a dotted quad anywhere in the string marks it as IP-bearing
	ipAddress = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
	// the end of a range is either a bare last octet or a full dotted quad
	ipRangeDash = regexp.MustCompile(`(\d{1,3}\.\d{1,3}\.\d{1,3}\.)(\d{1,3})-(\d{1,3}(?:\.\d{1,3}){3}|\d{1,3})`)
	hash        = regexp.MustCompile(`^(?:[a-fA-F0-9]{32}|[a-fA-F0-9]{40}|[a-fA-F0-9]{64}|[a-fA-F0-9]{128})$`)

	refang = strings.NewReplacer("[.]", ".", "{.}", ".", "(.)", ".")
	defang = strings.NewReplacer("www.", "www[.]", "http", "hxxp")
)

// Refang reverses the textual obfuscation of an indicator
func Refang(s string) string {
	return refang.Replace(s)
}

// Defang obfuscates s for display so that it isn't clickable
func Defang(s string) string {
	return defang.Replace(s)
}

// IsIPBearing reports whether s contains a dotted quad anywhere. URLs with an
// embedded address are IP-bearing too.
func IsIPBearing(s string) bool {
	return ipAddress.MatchString(s)
}

// Type returns the target type used to select sources for s
func Type(s string) string {
	switch {
	case IsIPBearing(s):
		return site.TypeIP
	case hash.MatchString(s):
		return site.TypeHash
	}
	return site.TypeURL
}

// Normalize refangs raw and expands a dash range like 10.0.0.5-8 into one
// target per address. A range whose end isn't greater than its start yields
// only the start address. Anything else is returned unchanged.
func Normalize(raw string) []string {
	s := Refang(raw)
	if !IsIPBearing(s) {
		return []string{s}
	}
	m := ipRangeDash.FindStringSubmatch(s)
	if m == nil {
		return []string{s}
	}
	prefix := m[1]
	start, _ := strconv.Atoi(m[2])
	endStr := m[3]
	if i := strings.LastIndex(endStr, "."); i > -1 {
		endStr = endStr[i+1:]
	}
	end, _ := strconv.Atoi(endStr)

	if end <= start {
		return []string{prefix + m[2]}
	}
	result := make([]string, 0, end-start+1)
	for o := start; o <= end; o++ {
		result = append(result, prefix+strconv.Itoa(o))
	}
	return result
}

// NormalizeAll normalizes every entry of raw, keeping their order
func NormalizeAll(raw []string) []string {
	result := []string{}
	for _, r := range raw {
		result = append(result, Normalize(r)...)
	}
	return result
}

// ReadFile returns the indicators listed in filename, one per line. Only the
// first tab-separated column of a line is used.
func ReadFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tsv.ReadAll(f)
}

// FromArg returns the normalized targets for the command line argument arg,
// which is either a single indicator or a file listing them. An unreadable
// file is reported and results in zero targets.
func FromArg(arg string) []string {
	if !fs.IsRegularFile(arg) {
		return Normalize(arg)
	}
	raw, err := ReadFile(arg)
	if err != nil {
		log.Warn(log.M{Msg: "There was an error reading from the target input file " + arg + ": " + err.Error()})
		return []string{}
	}
	log.Info(log.M{Msg: "Read " + strconv.Itoa(len(raw)) + " indicators from " + arg})
	return NormalizeAll(raw)
}
