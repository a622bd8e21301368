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

package report

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/defenxor/automater/internal/pkg/automater/aggregate"
	"github.com/defenxor/automater/internal/pkg/automater/site"
)

const (
	cefTimeFormat   = "2006-01-02 15:04:05"
	cefVersion      = "CEF:Version1.1"
	cefVendor       = "TekDefense"
	cefProduct      = "Automater"
	cefProductVer   = "2.1"
	cefSignatureID  = "0"
	cefSevNoResult  = "1"
	cefSevHasResult = "2"
)

var (
	now      = time.Now
	hostname = os.Hostname

	reportMarker = regexp.MustCompile(`^\[\+\]\s+`)
	cefEscaper   = strings.NewReplacer(`\`, `\\`, `|`, `\|`, `"`, `\"`, "\r", "\\\r", "\n", "\\\n")
)

func cefLine(fields []string) string {
	escaped := make([]string, len(fields))
	for i := range fields {
		escaped[i] = cefEscaper.Replace(fields[i])
	}
	return strings.Join(escaped, "|") + crlf
}

func cefExtension(e aggregate.Entry) string {
	ext := "[tgt=" + e.Target + ",typ=" + e.Type + ",src=" + e.Source + ",res=" + e.Result + "]"
	if e.Kind != aggregate.Found {
		return ext
	}
	return ext + " " + reportMarker.ReplaceAllString(e.Prefix, "") + e.Result
}

func writeCEF(w io.Writer, results []site.Result) error {
	host, err := hostname()
	if err != nil {
		return err
	}
	prefix := now().Format(cefTimeFormat) + " " + host
	return aggregate.Walk(results, func(e aggregate.Entry) error {
		sev := cefSevHasResult
		if e.Kind != aggregate.Found {
			sev = cefSevNoResult
		}
		fields := []string{prefix, cefVersion, cefVendor, cefProduct, cefProductVer,
			cefSignatureID, cefExtension(e), sev, e.Target}
		_, err := io.WriteString(w, cefLine(fields))
		return err
	})
}
