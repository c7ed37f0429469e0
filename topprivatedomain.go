/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import "github.com/disy-oss/httpurl/publicsuffix"

// overrideSuffixDatabase, when non-nil, is consulted by TopPrivateDomain
// instead of publicsuffix.Default. It exists purely so tests can
// substitute a fixture table, per the public-suffix design note; outside
// of tests it is always nil and TopPrivateDomain falls through to the
// one process-wide lazily-initialized default §5 describes.
var overrideSuffixDatabase publicsuffix.Database

// SetPublicSuffixDatabase overrides the database TopPrivateDomain
// consults. Passing nil restores the bundled default.
func SetPublicSuffixDatabase(db publicsuffix.Database) {
	overrideSuffixDatabase = db
}

// TopPrivateDomain returns the registrable domain of u.Host(): the
// shortest suffix that is one label below a public suffix. It reports
// ok==false for an IP-address host, a bare public suffix like "co.uk",
// or when no public suffix database is available at all.
func (u *URL) TopPrivateDomain() (string, bool) {
	db := overrideSuffixDatabase
	if db == nil {
		var err error
		db, err = publicsuffix.Default()
		if err != nil {
			return "", false
		}
	}
	return publicsuffix.TopPrivateDomain(db, u.host)
}
