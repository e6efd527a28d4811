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

package retry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/stretchr/testify/assert"
)

func newFastRetry(maxAttempts int) *Retry {
	return NewRetryLimited(&vdrconf.RetryConfigWithMax{
		RetryConfig: vdrconf.RetryConfig{
			InitialDelay: confutil.P("1ms"),
			MaxDelay:     confutil.P("2ms"),
			Factor:       confutil.P(2.0),
		},
		MaxAttempts: confutil.P(maxAttempts),
	}, vdrconf.RetryDefaults)
}

func TestRetryUntilSuccess(t *testing.T) {
	r := newFastRetry(10)
	calls := 0
	err := r.Do(context.Background(), func(attempt int) (bool, error) {
		calls++
		if attempt < 3 {
			return true, fmt.Errorf("pop")
		}
		return true, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryNotRetryable(t *testing.T) {
	r := newFastRetry(10)
	calls := 0
	err := r.Do(context.Background(), func(attempt int) (bool, error) {
		calls++
		return false, fmt.Errorf("pop")
	})
	assert.Regexp(t, "pop", err)
	assert.Equal(t, 1, calls)
}

func TestRetryMaxAttempts(t *testing.T) {
	r := newFastRetry(4)
	calls := 0
	err := r.Do(context.Background(), func(attempt int) (bool, error) {
		calls++
		return true, fmt.Errorf("pop")
	})
	assert.Regexp(t, "pop", err)
	assert.Equal(t, 4, calls)
}

func TestRetryContextCanceled(t *testing.T) {
	r := NewRetryIndefinite(&vdrconf.RetryConfig{InitialDelay: confutil.P("10s")}, &vdrconf.RetryDefaults.RetryConfig)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Do(ctx, func(attempt int) (bool, error) {
		return true, fmt.Errorf("pop")
	})
	assert.Regexp(t, "VD010006", err)
}

func TestRetryDelayBackoff(t *testing.T) {
	r := NewRetryIndefinite(&vdrconf.RetryConfig{
		InitialDelay: confutil.P("100ms"),
		MaxDelay:     confutil.P("1s"),
		Factor:       confutil.P(3.0),
	}, &vdrconf.RetryDefaults.RetryConfig)
	assert.Equal(t, 100*time.Millisecond, r.delay(1))
	assert.Equal(t, 300*time.Millisecond, r.delay(2))
	assert.Equal(t, 900*time.Millisecond, r.delay(3))
	assert.Equal(t, time.Second, r.delay(4))
	assert.Equal(t, time.Second, r.delay(50))
}
