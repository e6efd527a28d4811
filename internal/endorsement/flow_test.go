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
	"fmt"
	"testing"

	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ledger"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSigner struct {
	address ethtypes.Address0xHex
	sign    func(ctx context.Context, data []byte) ([]byte, error)
	calls   int
}

func (f *fakeSigner) Address() ethtypes.Address0xHex { return f.address }

func (f *fakeSigner) Sign(ctx context.Context, data []byte) ([]byte, error) {
	f.calls++
	return f.sign(ctx, data)
}

func keySigner(t *testing.T) *fakeSigner {
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	return &fakeSigner{
		address: kp.Address,
		sign: func(ctx context.Context, data []byte) ([]byte, error) {
			sig, err := kp.SignDirect(data)
			if err != nil {
				return nil, err
			}
			return sig.CompactRSV(), nil
		},
	}
}

type fakeLedger struct {
	buildEndorsingData                func(ctx context.Context, op *ledger.Operation) (*ledger.EndorsingData, error)
	buildTransactionFromEndorsingData func(ctx context.Context, ed *ledger.EndorsingData, endorser ethtypes.Address0xHex) (*ledger.Transaction, error)
	submit                            func(ctx context.Context, tx *ledger.Transaction) (ethtypes.HexBytes0xPrefix, error)
	getReceipt                        func(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ledger.Receipt, error)
	ledgerCalls                       int
}

func (f *fakeLedger) BuildTransaction(ctx context.Context, op *ledger.Operation, from ethtypes.Address0xHex) (*ledger.Transaction, error) {
	f.ledgerCalls++
	return nil, fmt.Errorf("unexpected")
}

func (f *fakeLedger) BuildEndorsingData(ctx context.Context, op *ledger.Operation) (*ledger.EndorsingData, error) {
	return f.buildEndorsingData(ctx, op)
}

func (f *fakeLedger) BuildTransactionFromEndorsingData(ctx context.Context, ed *ledger.EndorsingData, endorser ethtypes.Address0xHex) (*ledger.Transaction, error) {
	f.ledgerCalls++
	return f.buildTransactionFromEndorsingData(ctx, ed, endorser)
}

func (f *fakeLedger) Submit(ctx context.Context, tx *ledger.Transaction) (ethtypes.HexBytes0xPrefix, error) {
	f.ledgerCalls++
	return f.submit(ctx, tx)
}

func (f *fakeLedger) GetReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ledger.Receipt, error) {
	f.ledgerCalls++
	return f.getReceipt(ctx, txHash)
}

func (f *fakeLedger) Resolve(ctx context.Context, q *ledger.Query) (ledger.Container, error) {
	f.ledgerCalls++
	return nil, fmt.Errorf("unexpected")
}

func newTestFlow(t *testing.T, identity ethtypes.Address0xHex) (context.Context, *fakeLedger, *Flow) {
	ctx := context.Background()
	fl := &fakeLedger{
		buildEndorsingData: func(ctx context.Context, op *ledger.Operation) (*ledger.EndorsingData, error) {
			return ledger.NewEndorsingData(op, ledger.Keccak256([]byte(op.Method))), nil
		},
		buildTransactionFromEndorsingData: func(ctx context.Context, ed *ledger.EndorsingData, endorser ethtypes.Address0xHex) (*ledger.Transaction, error) {
			return ledger.NewTransaction(endorser, ed.Operation, ledger.Keccak256([]byte("tx")), func(ctx context.Context, sig *secp256k1.SignatureData) (ethtypes.HexBytes0xPrefix, error) {
				return ethtypes.HexBytes0xPrefix{0xf8, 0x01}, nil
			}), nil
		},
		submit: func(ctx context.Context, tx *ledger.Transaction) (ethtypes.HexBytes0xPrefix, error) {
			return ethtypes.HexBytes0xPrefix{0x01}, nil
		},
		getReceipt: func(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ledger.Receipt, error) {
			return &ledger.Receipt{TransactionHash: txHash, BlockNumber: 7, Success: true}, nil
		},
	}
	f, err := NewFlow(ctx, fl, "schema1", &ledger.Operation{
		ABI:      abi.ABI{},
		Method:   "createSchema",
		Identity: identity,
	})
	require.NoError(t, err)
	return ctx, fl, f
}

func TestFlowHappyPath(t *testing.T) {
	identity := keySigner(t)
	endorser := keySigner(t)
	ctx, fl, f := newTestFlow(t, identity.address)
	assert.Equal(t, StateBuiltEndorsingData, f.State())
	assert.Equal(t, "schema1", f.ResourceID())

	fl.buildTransactionFromEndorsingData = func(ctx context.Context, ed *ledger.EndorsingData, from ethtypes.Address0xHex) (*ledger.Transaction, error) {
		assert.True(t, ed.Signed())
		assert.Equal(t, endorser.address, from)
		return ledger.NewTransaction(from, ed.Operation, ledger.Keccak256([]byte("tx")), func(ctx context.Context, sig *secp256k1.SignatureData) (ethtypes.HexBytes0xPrefix, error) {
			return ethtypes.HexBytes0xPrefix{0xf8}, nil
		}), nil
	}

	require.NoError(t, f.SignAsIdentity(ctx, identity))
	assert.Equal(t, StateIdentityEndorsed, f.State())
	assert.True(t, f.EndorsingData().Signed())

	receipt, err := f.SubmitAsEndorser(ctx, endorser)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), receipt.BlockNumber)
	assert.Equal(t, StateSubmitted, f.State())
	assert.Equal(t, 1, identity.calls)
	assert.Equal(t, 1, endorser.calls)
}

func TestSubmitBeforeSignPanicsWithoutLedgerCall(t *testing.T) {
	endorser := keySigner(t)
	ctx, fl, f := newTestFlow(t, keySigner(t).address)
	assert.Panics(t, func() {
		_, _ = f.SubmitAsEndorser(ctx, endorser)
	})
	assert.Equal(t, 0, fl.ledgerCalls)
	assert.Equal(t, 0, endorser.calls)
}

func TestSignAsIdentityFailureLeavesFlowUnchanged(t *testing.T) {
	identity := keySigner(t)
	identity.sign = func(ctx context.Context, data []byte) ([]byte, error) {
		return nil, fmt.Errorf("pop")
	}
	ctx, fl, f := newTestFlow(t, identity.address)
	before := f.EndorsingData()
	beforeBytes := before.SigningBytes()

	err := f.SignAsIdentity(ctx, identity)
	assert.Regexp(t, "pop", err)
	assert.Equal(t, StateBuiltEndorsingData, f.State())
	assert.Same(t, before, f.EndorsingData())
	assert.False(t, f.EndorsingData().Signed())
	assert.Equal(t, beforeBytes, f.EndorsingData().SigningBytes())

	assert.Panics(t, func() {
		_, _ = f.SubmitAsEndorser(ctx, keySigner(t))
	})
	assert.Equal(t, 0, fl.ledgerCalls)
}

func TestSignAsIdentityBadSignature(t *testing.T) {
	identity := keySigner(t)
	identity.sign = func(ctx context.Context, data []byte) ([]byte, error) {
		return []byte{0x01}, nil
	}
	ctx, _, f := newTestFlow(t, identity.address)
	err := f.SignAsIdentity(ctx, identity)
	assert.Regexp(t, "VD010306", err)
	assert.Equal(t, StateBuiltEndorsingData, f.State())
	assert.False(t, f.EndorsingData().Signed())
}

func TestSignAsIdentityWrongSigner(t *testing.T) {
	identity := keySigner(t)
	ctx, _, f := newTestFlow(t, keySigner(t).address)
	err := f.SignAsIdentity(ctx, identity)
	assert.Regexp(t, "VD010400", err)
	assert.Equal(t, 0, identity.calls)
	assert.Equal(t, StateBuiltEndorsingData, f.State())
}

func TestNewFlowBuildFailure(t *testing.T) {
	fl := &fakeLedger{
		buildEndorsingData: func(ctx context.Context, op *ledger.Operation) (*ledger.EndorsingData, error) {
			return nil, fmt.Errorf("pop")
		},
	}
	_, err := NewFlow(context.Background(), fl, "id", &ledger.Operation{})
	assert.Regexp(t, "pop", err)
}

func TestSubmitAsEndorserReverted(t *testing.T) {
	identity := keySigner(t)
	ctx, fl, f := newTestFlow(t, identity.address)
	fl.getReceipt = func(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ledger.Receipt, error) {
		return &ledger.Receipt{TransactionHash: txHash, Success: false}, nil
	}
	require.NoError(t, f.SignAsIdentity(ctx, identity))
	receipt, err := f.SubmitAsEndorser(ctx, keySigner(t))
	assert.Regexp(t, "VD010308", err)
	assert.True(t, ledger.IsLedgerError(err))
	assert.NotNil(t, receipt)
	assert.Equal(t, StateSubmitted, f.State())
	assert.Panics(t, func() {
		_, _ = f.SubmitAsEndorser(ctx, keySigner(t))
	})
}

func TestSubmitAsEndorserErrors(t *testing.T) {
	identity := keySigner(t)
	ctx, fl, f := newTestFlow(t, identity.address)
	require.NoError(t, f.SignAsIdentity(ctx, identity))

	fl.buildTransactionFromEndorsingData = func(ctx context.Context, ed *ledger.EndorsingData, endorser ethtypes.Address0xHex) (*ledger.Transaction, error) {
		return nil, fmt.Errorf("build pop")
	}
	_, err := f.SubmitAsEndorser(ctx, keySigner(t))
	assert.Regexp(t, "build pop", err)
	assert.Equal(t, StateIdentityEndorsed, f.State())

	_, fl2, f2 := newTestFlow(t, identity.address)
	require.NoError(t, f2.SignAsIdentity(ctx, identity))
	endorser := keySigner(t)
	endorser.sign = func(ctx context.Context, data []byte) ([]byte, error) {
		return nil, fmt.Errorf("sign pop")
	}
	fl2.submit = func(ctx context.Context, tx *ledger.Transaction) (ethtypes.HexBytes0xPrefix, error) {
		assert.Fail(t, "submitted without a signature")
		return nil, nil
	}
	_, err = f2.SubmitAsEndorser(ctx, endorser)
	assert.Regexp(t, "sign pop", err)

	_, fl3, f3 := newTestFlow(t, identity.address)
	require.NoError(t, f3.SignAsIdentity(ctx, identity))
	fl3.submit = func(ctx context.Context, tx *ledger.Transaction) (ethtypes.HexBytes0xPrefix, error) {
		return nil, fmt.Errorf("submit pop")
	}
	_, err = f3.SubmitAsEndorser(ctx, keySigner(t))
	assert.Regexp(t, "submit pop", err)

	_, fl4, f4 := newTestFlow(t, identity.address)
	require.NoError(t, f4.SignAsIdentity(ctx, identity))
	fl4.getReceipt = func(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ledger.Receipt, error) {
		return nil, fmt.Errorf("receipt pop")
	}
	_, err = f4.SubmitAsEndorser(ctx, keySigner(t))
	assert.Regexp(t, "receipt pop", err)
}
