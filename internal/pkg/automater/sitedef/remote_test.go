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

package sitedef

import (
	"context"
	"io/ioutil"
	"net"
	"os"
	"path"
	"testing"
	"time"

	"github.com/buaazp/fasthttprouter"
	"github.com/defenxor/automater/internal/pkg/shared/fs"
	"github.com/valyala/fasthttp"
)

const remoteXML = `<sites><site name="a"><sitetype><entry>ip</entry></sitetype>` +
	`<sitefriendlyname><entry>A</entry></sitefriendlyname><regex><entry>(.*)</entry></regex>` +
	`<reportstringforresult><entry>[+] A:</entry></reportstringforresult>` +
	`<fullurl>http://a.test/%TARGET%</fullurl></site></sites>`

func mockRemote(t *testing.T) string {
	router := fasthttprouter.New()
	router.GET("/sites.xml", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString(remoteXML)
	})
	router.GET("/invalid.xml", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("<html>maintenance</html")
	})
	router.GET("/missing.xml", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		_ = fasthttp.Serve(ln, router.Handler)
	}()
	t.Cleanup(func() { ln.Close() })
	return "http://" + ln.Addr().String()
}

func TestRefresh(t *testing.T) {
	loadFixture(t)
	base := mockRemote(t)
	dir, err := ioutil.TempDir("", "automater-sitedef")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	local := path.Join(dir, "sites.xml")
	ctx := context.Background()
	r := Remote{URL: base + "/sites.xml", Timeout: 2 * time.Second}

	// no local file yet
	changed, err := Refresh(ctx, r, local)
	if err != nil || !changed {
		t.Fatalf("expected download, changed %v err %v", changed, err)
	}
	b, err := ioutil.ReadFile(local)
	if err != nil || string(b) != remoteXML {
		t.Fatalf("unexpected local content %s, err %v", b, err)
	}

	// same content
	changed, err = Refresh(ctx, r, local)
	if err != nil || changed {
		t.Fatalf("expected no change, changed %v err %v", changed, err)
	}
	upToDate, err := CheckVersion(ctx, r, local)
	if err != nil || !upToDate {
		t.Fatalf("expected up to date, got %v err %v", upToDate, err)
	}

	// local modified
	if err := fs.OverwriteFileBytes([]byte("<sites></sites>"), local); err != nil {
		t.Fatal(err)
	}
	upToDate, err = CheckVersion(ctx, r, local)
	if err != nil || upToDate {
		t.Fatalf("expected outdated, got %v err %v", upToDate, err)
	}
	changed, err = Refresh(ctx, r, local)
	if err != nil || !changed {
		t.Fatalf("expected update, changed %v err %v", changed, err)
	}

	// failures keep the local file
	for _, u := range []string{base + "/invalid.xml", base + "/missing.xml", "http://127.0.0.1:1/sites.xml"} {
		changed, err = Refresh(ctx, Remote{URL: u, Timeout: time.Second}, local)
		if err == nil || changed {
			t.Errorf("%s: expected failure, changed %v err %v", u, changed, err)
		}
		b, _ := ioutil.ReadFile(local)
		if string(b) != remoteXML {
			t.Errorf("%s: local file modified on failure", u)
		}
	}

	if _, err := CheckVersion(ctx, r, path.Join(dir, "none.xml")); err == nil {
		t.Error("expected error for missing local file")
	}
	if _, err := CheckVersion(ctx, Remote{URL: base + "/missing.xml"}, local); err == nil {
		t.Error("expected error for missing remote file")
	}
	if _, err := Refresh(ctx, Remote{URL: base + "/sites.xml", Proxy: "http://[::1"}, local); err == nil {
		t.Error("expected error for invalid proxy")
	}
}
