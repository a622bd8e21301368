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

// Package report renders site results on screen and into report files
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/defenxor/automater/internal/pkg/automater/site"
	"github.com/defenxor/automater/internal/pkg/shared/fs"
	log "github.com/defenxor/automater/internal/pkg/shared/logger"
)

// Options lists the report files to write. Empty names are skipped.
type Options struct {
	Text string
	CSV  string
	CEF  string
	HTML string
}

type fileRenderer struct {
	format   string
	filename string
	render   func(w io.Writer, results []site.Result) error
}

// Generate writes every file requested in opts and reports progress to out.
// A failing file doesn't stop the others; the first error is returned.
func Generate(out io.Writer, opts Options, results []site.Result) error {
	renderers := []fileRenderer{
		{"CEF", opts.CEF, writeCEF},
		{"text", opts.Text, writeText},
		{"HTML", opts.HTML, writeHTML},
		{"CSV", opts.CSV, writeCSV},
	}
	var first error
	for _, r := range renderers {
		if r.filename == "" {
			continue
		}
		fmt.Fprintf(out, "\n[+] Generating %s output: %s\n", r.format, r.filename)
		if err := writeFile(r.filename, results, r.render); err != nil {
			log.Warn(log.M{Msg: err.Error()})
			if first == nil {
				first = err
			}
			continue
		}
		fmt.Fprintf(out, "%s Generated\n", r.filename)
	}
	return first
}

// TextFile writes the verbose screen report to filename
func TextFile(filename string, results []site.Result) error {
	return writeFile(filename, results, writeText)
}

// CSVFile writes one quoted CSV record per aggregated row to filename
func CSVFile(filename string, results []site.Result) error {
	return writeFile(filename, results, writeCSV)
}

// CEFFile writes one CEF event per aggregated row to filename
func CEFFile(filename string, results []site.Result) error {
	return writeFile(filename, results, writeCEF)
}

// HTMLFile writes the aggregated rows as an HTML table to filename
func HTMLFile(filename string, results []site.Result) error {
	return writeFile(filename, results, writeHTML)
}

func writeFile(filename string, results []site.Result,
	render func(w io.Writer, results []site.Result) error) error {

	f, err := fs.CreateFile(filename)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", filename, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := render(w, results); err != nil {
		return fmt.Errorf("cannot write %s: %w", filename, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cannot write %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot close %s: %w", filename, err)
	}
	return nil
}
