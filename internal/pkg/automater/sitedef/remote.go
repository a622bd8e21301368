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
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/defenxor/automater/internal/pkg/shared/fs"
	log "github.com/defenxor/automater/internal/pkg/shared/logger"
	"github.com/defenxor/automater/internal/pkg/shared/webclient"
)

// Remote describes where the reference sites file is published
type Remote struct {
	URL     string
	Proxy   string
	Timeout time.Duration
}

func (r Remote) fetch(ctx context.Context) ([]byte, error) {
	c, err := webclient.New(r.Proxy, r.Timeout)
	if err != nil {
		return nil, err
	}
	b, err := webclient.Get(ctx, c, r.URL)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s to retrieve the sites file: %w", r.URL, err)
	}
	return b, nil
}

func md5Hex(b []byte) string {
	h := md5.Sum(b)
	return hex.EncodeToString(h[:])
}

// Refresh downloads the remote sites file into localPath. A download that
// fails or doesn't parse leaves the local file untouched. changed reports
// whether the local file content was replaced.
func Refresh(ctx context.Context, r Remote, localPath string) (changed bool, err error) {
	localMD5, lerr := fs.MD5(localPath)
	if lerr != nil {
		log.Info(log.M{Msg: "Local file " + localPath + " not located, attempting download"})
	}

	b, err := r.fetch(ctx)
	if err != nil {
		log.Warn(log.M{Msg: err.Error() + ", using the local sites file"})
		return false, err
	}
	if _, err := Parse(b); err != nil {
		log.Warn(log.M{Msg: "Remote sites file at " + r.URL + " is invalid, using the local sites file"})
		return false, err
	}

	remoteMD5 := md5Hex(b)
	if lerr == nil && remoteMD5 == localMD5 {
		log.Info(log.M{Msg: "Local " + localPath + " is up to date with " + r.URL})
		return false, nil
	}
	if err := fs.OverwriteFileBytes(b, localPath); err != nil {
		return false, err
	}
	if lerr == nil {
		log.Info(log.M{Msg: "There was an updated remote sites file at " + r.URL + ", downloaded to " + localPath})
	} else {
		log.Info(log.M{Msg: "Downloaded remote sites file from " + r.URL + " to " + localPath})
	}
	return true, nil
}

// CheckVersion compares the local sites file with the remote one
func CheckVersion(ctx context.Context, r Remote, localPath string) (upToDate bool, err error) {
	localMD5, err := fs.MD5(localPath)
	if err != nil {
		return false, err
	}
	b, err := r.fetch(ctx)
	if err != nil {
		return false, err
	}
	upToDate = md5Hex(b) == localMD5
	if upToDate {
		log.Info(log.M{Msg: "All Automater files are up to date"})
	} else {
		log.Warn(log.M{Msg: "The local " + localPath + " requires an update, see " + r.URL})
	}
	return upToDate, nil
}
