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
	"time"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Retry is an exponential backoff policy. Zero maxAttempts retries until the context ends.
type Retry struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	factor       float64
	maxAttempts  int
}

func NewRetryIndefinite(conf, defs *vdrconf.RetryConfig) *Retry {
	return &Retry{
		initialDelay: confutil.DurationMin(conf.InitialDelay, 0, *defs.InitialDelay),
		maxDelay:     confutil.DurationMin(conf.MaxDelay, 0, *defs.MaxDelay),
		factor:       confutil.Float64Min(conf.Factor, 1.0, *defs.Factor),
	}
}

// NewRetryLimited is used for receipt polling and startup, where giving up is the right outcome
func NewRetryLimited(conf, defs *vdrconf.RetryConfigWithMax) *Retry {
	r := NewRetryIndefinite(&conf.RetryConfig, &defs.RetryConfig)
	r.maxAttempts = confutil.IntMin(conf.MaxAttempts, 0, *defs.MaxAttempts)
	return r
}

// Do calls fn until it succeeds, says the error is not retryable, or attempts run out.
// The last error is returned, or a context error if the wait was interrupted.
func (r *Retry) Do(ctx context.Context, fn func(attempt int) (retryable bool, err error)) error {
	for attempt := 1; ; attempt++ {
		retryable, err := fn(attempt)
		if err == nil || !retryable {
			return err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			log.L(ctx).Debugf("Giving up after %d attempts: %s", attempt, err)
			return err
		}
		delay := r.delay(attempt)
		log.L(ctx).Debugf("Attempt %d failed, retrying in %s: %s", attempt, delay, err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return i18n.NewError(ctx, msgs.MsgContextCanceled)
		}
	}
}

func (r *Retry) delay(failures int) time.Duration {
	d := r.initialDelay
	for i := 1; i < failures && d < r.maxDelay; i++ {
		d = time.Duration(float64(d) * r.factor)
	}
	return min(d, r.maxDelay)
}
