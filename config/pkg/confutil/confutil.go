/*
 * Copyright © 2025 Kaleido, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package confutil

import (
	"cmp"
	"io/fs"
	"math/big"
	"strconv"
	"time"

	"github.com/docker/go-units"
)

// Readers for the optional pointer fields of the vdrconf structs. A nil or
// unparseable value falls back to the default from the matching ...Defaults var.
// pkg/log imports this package, so nothing here may log.

func P[T any](v T) *T {
	return &v
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// atLeast applies the floor to configured values only, defaults are trusted
func atLeast[T cmp.Ordered](v *T, floor, def T) T {
	if v == nil {
		return def
	}
	return max(*v, floor)
}

// parsed reads a string field through parse, falling back to parsing def
func parsed[T any](s *string, def string, parse func(string) (T, error)) (T, bool) {
	if s != nil {
		if v, err := parse(*s); err == nil {
			return v, true
		}
	}
	v, _ := parse(def)
	return v, false
}

func Int(v *int, def int) int {
	return valueOr(v, def)
}

func IntMin(v *int, floor int, def int) int {
	return atLeast(v, floor, def)
}

func Float64Min(v *float64, floor float64, def float64) float64 {
	return atLeast(v, floor, def)
}

func Bool(v *bool, def bool) bool {
	return valueOr(v, def)
}

func StringNotEmpty(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func parseFileMode(s string) (fs.FileMode, error) {
	mode, err := strconv.ParseUint(s, 8, 32)
	if err == nil && mode > 0777 {
		err = strconv.ErrRange
	}
	return fs.FileMode(mode), err
}

// UnixFileMode reads an octal permission string such as "0600"
func UnixFileMode(v *string, def string) fs.FileMode {
	mode, _ := parsed(v, def, parseFileMode)
	return mode
}

func DurationMin(v *string, floor time.Duration, def string) time.Duration {
	d, configured := parsed(v, def, time.ParseDuration)
	if configured {
		return max(d, floor)
	}
	return d
}

func parseBigInt(s string) (*big.Int, error) {
	i, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, strconv.ErrSyntax
	}
	return i, nil
}

// BigInt accepts decimal or 0x prefixed hex, as used for gas settings
func BigInt(v *string, def string) *big.Int {
	i, _ := parsed(v, def, parseBigInt)
	return i
}

// ByteSize accepts sizes such as "100Mb", as used for log file rotation
func ByteSize(v *string, floor int64, def string) int64 {
	size, configured := parsed(v, def, units.RAMInBytes)
	if configured {
		return max(size, floor)
	}
	return size
}
