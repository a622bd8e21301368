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
	"fmt"
	"io"

	"github.com/defenxor/automater/internal/pkg/automater/aggregate"
	"github.com/defenxor/automater/internal/pkg/automater/site"
	"github.com/defenxor/automater/internal/pkg/automater/target"
)

const (
	verboseBanner = "\n____________________     Results found for: %s     ____________________"
	botBanner     = "\n**_ Results found for: %s _**"
)

// Screen prints the report for results to w. The bot format is shorter and
// defangs the results.
func Screen(w io.Writer, results []site.Result, bot bool) error {
	printLine := func(line string) error {
		_, err := fmt.Fprintln(w, line)
		return err
	}
	if bot {
		return botLines(results, printLine)
	}
	return verboseLines(results, printLine)
}

func verboseLines(results []site.Result, emit func(string) error) error {
	return aggregate.Walk(results, func(e aggregate.Entry) error {
		if e.NewTarget {
			if err := emit(fmt.Sprintf(verboseBanner, e.Target)); err != nil {
				return err
			}
		}
		switch {
		case e.Kind == aggregate.SourceEmpty && e.Multi:
			return emit("No results in the " + e.Source + " category")
		case e.Kind == aggregate.SourceEmpty:
			return emit("No results found in the " + e.Source)
		}
		return emit(e.Prefix + " " + e.Result)
	})
}

func botLines(results []site.Result, emit func(string) error) error {
	return aggregate.Walk(results, func(e aggregate.Entry) error {
		if e.NewTarget {
			if err := emit(fmt.Sprintf(botBanner, e.Target)); err != nil {
				return err
			}
		}
		switch e.Kind {
		case aggregate.SourceEmpty:
			if !e.Multi {
				return emit("[+] " + e.Source + " " + aggregate.NoResults)
			}
			// one line for the whole source
			if e.Category == 0 {
				return emit("[+] " + e.SourceURL + " " + aggregate.NoResults)
			}
			return nil
		case aggregate.Missing:
			return emit(e.Prefix + " " + aggregate.NoResults)
		}
		return emit(e.Prefix + " " + target.Defang(e.Result))
	})
}

func writeText(w io.Writer, results []site.Result) error {
	return verboseLines(results, func(line string) error {
		_, err := io.WriteString(w, "\n"+line)
		return err
	})
}
