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

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ethclient"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

// CheckReceipt turns a reverted receipt into a LedgerError, decoding any
// custom error the contract raised (such as a duplicate id) with its ABI.
func CheckReceipt(ctx context.Context, contractABI abi.ABI, r *Receipt) error {
	if r.Success {
		return nil
	}
	reason := "no revert data"
	if len(r.RevertData) > 0 {
		reason = ethclient.DecodeRevertReason(ctx, contractABI, r.RevertData).Error()
	}
	return NewLedgerError(i18n.NewError(ctx, msgs.MsgLedgerTransactionReverted, r.TransactionHash, reason))
}
