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
	"math/big"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
)

type FinalizeFn func(ctx context.Context, sig *secp256k1.SignatureData) (ethtypes.HexBytes0xPrefix, error)

// Transaction is a write ready for its sender to sign and submit
type Transaction struct {
	From         ethtypes.Address0xHex
	Operation    *Operation
	signingBytes []byte
	finalize     FinalizeFn
	raw          ethtypes.HexBytes0xPrefix
}

func NewTransaction(from ethtypes.Address0xHex, op *Operation, signingBytes []byte, finalize FinalizeFn) *Transaction {
	return &Transaction{
		From:         from,
		Operation:    op,
		signingBytes: signingBytes,
		finalize:     finalize,
	}
}

// SigningBytes is the 32 byte digest the sender signs
func (t *Transaction) SigningBytes() []byte {
	return append([]byte{}, t.signingBytes...)
}

// SetSignature takes a 65 byte compact R||S||V signature over SigningBytes
func (t *Transaction) SetSignature(ctx context.Context, rsv []byte) error {
	sig, err := secp256k1.DecodeCompactRSV(ctx, rsv)
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgLedgerInvalidSignature, err.Error())
	}
	raw, err := t.finalize(ctx, sig)
	if err != nil {
		return err
	}
	t.raw = raw
	return nil
}

func (t *Transaction) Signed() bool {
	return t.raw != nil
}

func (t *Transaction) Raw() ethtypes.HexBytes0xPrefix {
	return t.raw
}

// EndorsingData is an identity-authored write, awaiting the identity signature
// and then an endorser to wrap it into a transaction. Values are never mutated,
// WithSignature returns a signed copy.
type EndorsingData struct {
	Operation    *Operation
	signingBytes []byte
	sig          *secp256k1.SignatureData
}

func NewEndorsingData(op *Operation, signingBytes []byte) *EndorsingData {
	return &EndorsingData{
		Operation:    op,
		signingBytes: signingBytes,
	}
}

func (ed *EndorsingData) Identity() ethtypes.Address0xHex {
	return ed.Operation.Identity
}

func (ed *EndorsingData) SigningBytes() []byte {
	return append([]byte{}, ed.signingBytes...)
}

func (ed *EndorsingData) Signed() bool {
	return ed.sig != nil
}

// Signature returns a copy of the attached signature, V in the 27/28 form
// that ecrecover expects
func (ed *EndorsingData) Signature() *secp256k1.SignatureData {
	if ed.sig == nil {
		return nil
	}
	return &secp256k1.SignatureData{
		V: new(big.Int).Set(ed.sig.V),
		R: new(big.Int).Set(ed.sig.R),
		S: new(big.Int).Set(ed.sig.S),
	}
}

func (ed *EndorsingData) WithSignature(ctx context.Context, rsv []byte) (*EndorsingData, error) {
	sig, err := secp256k1.DecodeCompactRSV(ctx, rsv)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgLedgerInvalidSignature, err.Error())
	}
	if sig.V.Int64() < 27 {
		sig.V.SetInt64(sig.V.Int64() + 27)
	}
	return &EndorsingData{
		Operation:    ed.Operation,
		signingBytes: ed.signingBytes,
		sig:          sig,
	}, nil
}
