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
	"io/fs"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumericFloors(t *testing.T) {
	assert.Equal(t, 100, Int(nil, 100))
	assert.Equal(t, 60, Int(P(60), 100))
	assert.Equal(t, 0, IntMin(P(-1), 0, 60))
	assert.Equal(t, 60, IntMin(nil, 0, 60))
	assert.Equal(t, 3, IntMin(P(3), 0, 60))
	assert.Equal(t, 1.0, Float64Min(P(0.5), 1.0, 2.0))
	assert.Equal(t, 2.0, Float64Min(nil, 1.0, 2.0))
	assert.Equal(t, 1.5, Float64Min(P(1.5), 1.0, 2.0))
}

func TestKeystoreFileModes(t *testing.T) {
	assert.Equal(t, fs.FileMode(0600), UnixFileMode(nil, "0600"))
	assert.Equal(t, fs.FileMode(0600), UnixFileMode(P(""), "0600"))
	assert.Equal(t, fs.FileMode(0640), UnixFileMode(P("0640"), "0600"))
	assert.Equal(t, fs.FileMode(0600), UnixFileMode(P("0778"), "0600"))
	assert.Equal(t, fs.FileMode(0600), UnixFileMode(P("1777"), "0600"))
}

func TestBoolAndStrings(t *testing.T) {
	assert.True(t, Bool(nil, true))
	assert.False(t, Bool(P(false), true))
	assert.Equal(t, "indybesu", StringNotEmpty(nil, "indybesu"))
	assert.Equal(t, "indybesu", StringNotEmpty(P(""), "indybesu"))
	assert.Equal(t, "ethr", StringNotEmpty(P("ethr"), "indybesu"))
}

func TestReceiptPollDurations(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, DurationMin(nil, 0, "250ms"))
	assert.Equal(t, 250*time.Millisecond, DurationMin(P("soon"), 0, "250ms"))
	assert.Equal(t, 2*time.Second, DurationMin(P("2s"), 0, "250ms"))
	assert.Equal(t, time.Millisecond, DurationMin(P("1us"), time.Millisecond, "250ms"))
}

func TestGasSettings(t *testing.T) {
	assert.Equal(t, big.NewInt(10000000), BigInt(nil, "10000000"))
	assert.Equal(t, big.NewInt(1000000000), BigInt(P("0x3b9aca00"), "0"))
	assert.Equal(t, big.NewInt(0), BigInt(P("free"), "0"))
}

func TestLogRotationSizes(t *testing.T) {
	assert.Equal(t, int64(100*1024*1024), ByteSize(nil, 0, "100Mb"))
	assert.Equal(t, int64(16*1024), ByteSize(P("16Kb"), 0, "100Mb"))
	assert.Equal(t, int64(1024), ByteSize(P("1b"), 1024, "100Mb"))
	assert.Equal(t, int64(100*1024*1024), ByteSize(P("lots"), 1024, "100Mb"))
}
