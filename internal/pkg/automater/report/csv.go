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
	"strings"

	"github.com/defenxor/automater/internal/pkg/automater/aggregate"
	"github.com/defenxor/automater/internal/pkg/automater/site"
)

const crlf = "\r\n"

var csvHeader = []string{"Target", "Type", "Source", "Result"}

// every field is quoted, encoding/csv only quotes when needed
func writeCSVRecord(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i := range fields {
		quoted[i] = `"` + strings.ReplaceAll(fields[i], `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+crlf)
	return err
}

func writeCSV(w io.Writer, results []site.Result) error {
	if err := writeCSVRecord(w, csvHeader); err != nil {
		return err
	}
	return aggregate.Walk(results, func(e aggregate.Entry) error {
		return writeCSVRecord(w, []string{e.Target, e.Type, e.Source, e.Result})
	})
}
