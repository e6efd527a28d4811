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

package endorsement

import (
	"context"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ledger"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Signer is satisfied by *signer.Signer
type Signer interface {
	Address() ethtypes.Address0xHex
	Sign(ctx context.Context, data []byte) ([]byte, error)
}

type State string

const (
	StateBuiltEndorsingData State = "BuiltEndorsingData"
	StateIdentityEndorsed   State = "IdentityEndorsed"
	StateSubmitted          State = "Submitted"
)

// Flow is the two phase write: the identity owner signs the endorsing data,
// then the endorser wraps it in a transaction it signs and pays for.
// A Flow is used by one goroutine and moves strictly forward.
type Flow struct {
	lc         ledger.Client
	resourceID string
	data       *ledger.EndorsingData
	state      State
}

func NewFlow(ctx context.Context, lc ledger.Client, resourceID string, op *ledger.Operation) (*Flow, error) {
	data, err := lc.BuildEndorsingData(ctx, op)
	if err != nil {
		return nil, err
	}
	return &Flow{
		lc:         lc,
		resourceID: resourceID,
		data:       data,
		state:      StateBuiltEndorsingData,
	}, nil
}

func (f *Flow) ResourceID() string {
	return f.resourceID
}

func (f *Flow) State() State {
	return f.state
}

func (f *Flow) EndorsingData() *ledger.EndorsingData {
	return f.data
}

// SignAsIdentity attaches the identity signature. Nothing on the flow changes
// unless it succeeds.
func (f *Flow) SignAsIdentity(ctx context.Context, identity Signer) error {
	if identity.Address() != f.data.Identity() {
		return i18n.NewError(ctx, msgs.MsgEndorsementIdentityMismatch, identity.Address(), f.data.Identity())
	}
	sig, err := identity.Sign(ctx, f.data.SigningBytes())
	if err != nil {
		return err
	}
	signed, err := f.data.WithSignature(ctx, sig)
	if err != nil {
		return err
	}
	f.data = signed
	f.state = StateIdentityEndorsed
	log.L(ctx).Debugf("Endorsing data for %s signed by identity %s", f.resourceID, identity.Address())
	return nil
}

// SubmitAsEndorser builds, signs and submits the endorser transaction, then
// waits for the receipt. Calling it before SignAsIdentity is a programming
// error and panics before any ledger call.
func (f *Flow) SubmitAsEndorser(ctx context.Context, endorser Signer) (*ledger.Receipt, error) {
	if f.state != StateIdentityEndorsed {
		panic(i18n.NewError(ctx, msgs.MsgEndorsementNotEndorsed, f.state))
	}
	tx, err := f.lc.BuildTransactionFromEndorsingData(ctx, f.data, endorser.Address())
	if err != nil {
		return nil, err
	}
	if err := SignTransaction(ctx, tx, endorser); err != nil {
		return nil, err
	}
	receipt, err := SubmitAndWait(ctx, f.lc, tx)
	// a submitted transaction cannot be submitted again, whatever the outcome
	f.state = StateSubmitted
	return receipt, err
}

func SignTransaction(ctx context.Context, tx *ledger.Transaction, s Signer) error {
	sig, err := s.Sign(ctx, tx.SigningBytes())
	if err != nil {
		return err
	}
	return tx.SetSignature(ctx, sig)
}

// SubmitAndWait submits a signed transaction and returns its receipt, or a
// LedgerError when the transaction reverted.
func SubmitAndWait(ctx context.Context, lc ledger.Client, tx *ledger.Transaction) (*ledger.Receipt, error) {
	txHash, err := lc.Submit(ctx, tx)
	if err != nil {
		return nil, err
	}
	receipt, err := lc.GetReceipt(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if err := ledger.CheckReceipt(ctx, tx.Operation.ABI, receipt); err != nil {
		return receipt, err
	}
	log.L(ctx).Infof("Transaction %s for %s confirmed in block %d", txHash, tx.Operation.Method, receipt.BlockNumber)
	return receipt, nil
}
