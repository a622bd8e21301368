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
	"html/template"
	"io"

	"github.com/defenxor/automater/internal/pkg/automater/aggregate"
	"github.com/defenxor/automater/internal/pkg/automater/site"
)

const htmlOpening = `<style type="text/css">
    #table-3 {
        border: 1px solid #DFDFDF;
        background-color: #F9F9F9;
        width: 100%;
        -moz-border-radius: 3px;
        -webkit-border-radius: 3px;
        border-radius: 3px;
        font-family: Arial,"Bitstream Vera Sans",Helvetica,Verdana,sans-serif;
        color: #333;
    }
    #table-3 td, #table-3 th {
        border-top-color: white;
        border-bottom: 1px solid #DFDFDF;
        color: #555;
    }
    #table-3 th {
        text-shadow: rgba(255, 255, 255, 0.796875) 0px 1px 0px;
        font-family: Georgia,"Times New Roman","Bitstream Charter",Times,serif;
        font-weight: normal;
        padding: 7px 7px 8px;
        text-align: left;
        line-height: 1.3em;
        font-size: 14px;
    }
    #table-3 td {
        font-size: 12px;
        padding: 4px 7px 2px;
        vertical-align: top;
    }
    h1 {
        text-shadow: rgba(255, 255, 255, 0.796875) 0px 1px 0px;
        font-family: Georgia,"Times New Roman","Bitstream Charter",Times,serif;
        font-weight: normal;
        padding: 7px 7px 8px;
        text-align: Center;
        line-height: 1.3em;
        font-size: 40px;
    }
    h2 {
        text-shadow: rgba(255, 255, 255, 0.796875) 0px 1px 0px;
        font-family: Georgia,"Times New Roman","Bitstream Charter",Times,serif;
        font-weight: normal;
        padding: 7px 7px 8px;
        text-align: left;
        line-height: 1.3em;
        font-size: 16px;
    }
    h4 {
        text-shadow: rgba(255, 255, 255, 0.796875) 0px 1px 0px;
        font-family: Georgia,"Times New Roman","Bitstream Charter",Times,serif;
        font-weight: normal;
        padding: 7px 7px 8px;
        text-align: left;
        line-height: 1.3em;
        font-size: 10px;
    }
</style>
<html>
    <body>
        <title> Automater Results </title>
        <h1> Automater Results </h1>
        <table id="table-3">
            <tr>
            <th>Target</th>
            <th>Type</th>
            <th>Source</th>
            <th>Result</th>
            </tr>
`

const htmlRows = `{{range .}}<tr><td>{{.Target}}</td><td>{{.Type}}</td><td>{{.Source}}</td><td>{{.Result}}</td></tr>
{{end}}`

const htmlClosing = `        </table>
        <br><br>
        <p>Created using Automater <a href="https://github.com/defenxor/automater">https://github.com/defenxor/automater</a></p>
    </body>
</html>`

// cells are escaped by html/template
var htmlReport = template.Must(template.New("report").Parse(htmlOpening + htmlRows + htmlClosing))

func writeHTML(w io.Writer, results []site.Result) error {
	return htmlReport.Execute(w, aggregate.Aggregate(results))
}
