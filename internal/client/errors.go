// SPDX-License-Identifier: Apache-2.0

package client

import "errors"

var errLoginFirst = errors.New("not logged in, use `login` first")
