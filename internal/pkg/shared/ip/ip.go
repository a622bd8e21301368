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

package ip

import (
	"errors"
	"net"

	"github.com/yl2chen/cidranger"
)

var privateRanger = cidranger.NewPCTrieRanger()

func init() {
	for _, cidr := range []string{
		"127.0.0.0/8",    // IPv4 loopback
		"10.0.0.0/8",     // RFC1918
		"172.16.0.0/12",  // RFC1918
		"192.168.0.0/16", // RFC1918
		"169.254.0.0/16", // IPv4 link-local
		"::1/128",        // IPv6 loopback
		"fe80::/10",      // IPv6 link-local
		"fc00::/7",       // IPv6 unique local
	} {
		_, block, _ := net.ParseCIDR(cidr)
		_ = privateRanger.Insert(cidranger.NewBasicRangerEntry(*block))
	}
}

// IsPrivateIP check if IP is in private range
func IsPrivateIP(ip string) (bool, error) {
	ipn := net.ParseIP(ip)
	if ipn == nil {
		return false, errors.New(ip + " is not a valid IP address")
	}
	return privateRanger.Contains(ipn)
}
