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

package ledger

import (
	"context"
	"errors"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// NotFoundError is returned when the ledger holds no record for an id
type NotFoundError struct {
	ID  string
	err error
}

func NewNotFoundError(ctx context.Context, id string) *NotFoundError {
	return &NotFoundError{ID: id, err: i18n.NewError(ctx, msgs.MsgLedgerNotFound, id)}
}

func (e *NotFoundError) Error() string {
	return e.err.Error()
}

func (e *NotFoundError) Unwrap() error {
	return e.err
}

// LedgerError is any failure to communicate with, or execute on, the ledger
type LedgerError struct {
	err error
}

func NewLedgerError(err error) *LedgerError {
	return &LedgerError{err: err}
}

func (e *LedgerError) Error() string {
	return e.err.Error()
}

func (e *LedgerError) Unwrap() error {
	return e.err
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsLedgerError(err error) bool {
	var le *LedgerError
	return errors.As(err, &le)
}
