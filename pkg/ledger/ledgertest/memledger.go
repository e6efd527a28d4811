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

package ledgertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ledger"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/tidwall/sjson"
)

const ChainID = 1337

// MemLedger is an in-memory ledger.Client for tests. Writes are keyed by the
// "id" parameter, or the identity when there is none, and a second write to
// the same key reverts with the contract's ...AlreadyExist error. Signatures
// are checked by recovery, as the registry contracts do.
type MemLedger struct {
	mux      sync.Mutex
	records  map[string][]byte
	receipts map[string]*ledger.Receipt
	block    uint64

	// hooks to inject failures, nil means normal behavior
	OnBuild   func(op *ledger.Operation) error
	OnSubmit  func(tx *ledger.Transaction) error
	OnResolve func(q *ledger.Query) error

	Submitted int
	Resolved  int
}

func NewMemLedger() *MemLedger {
	return &MemLedger{
		records:  make(map[string][]byte),
		receipts: make(map[string]*ledger.Receipt),
	}
}

func recordKey(contract ethtypes.Address0xHex, key []byte) string {
	return contract.String() + "/" + ethtypes.HexBytes0xPrefix(key).String()
}

func writeKey(op *ledger.Operation) []byte {
	for _, p := range op.Params {
		if p.Name == "id" {
			return p.Value
		}
	}
	return op.Identity[:]
}

func writeDocument(op *ledger.Operation) []byte {
	var doc []byte
	for _, p := range op.Params {
		if p.Type == ledger.ParamBytes {
			doc = p.Value
		}
	}
	return doc
}

// Put stores a record directly, bypassing transactions
func (m *MemLedger) Put(contract ethtypes.Address0xHex, key []byte, doc []byte) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.records[recordKey(contract, key)] = doc
}

func (m *MemLedger) Has(contract ethtypes.Address0xHex, key []byte) bool {
	m.mux.Lock()
	defer m.mux.Unlock()
	_, ok := m.records[recordKey(contract, key)]
	return ok
}

func (m *MemLedger) newTransaction(from ethtypes.Address0xHex, op *ledger.Operation, kind string) *ledger.Transaction {
	signingBytes := ledger.Keccak256([]byte(kind), from[:], op.Contract[:], []byte(op.Method), writeKey(op))
	return ledger.NewTransaction(from, op, signingBytes, func(ctx context.Context, sig *secp256k1.SignatureData) (ethtypes.HexBytes0xPrefix, error) {
		signer, err := sig.RecoverDirect(signingBytes, ChainID)
		if err != nil {
			return nil, err
		}
		if *signer != from {
			return nil, fmt.Errorf("transaction signed by %s not %s", signer, from)
		}
		return append([]byte(kind), signingBytes...), nil
	})
}

func (m *MemLedger) BuildTransaction(ctx context.Context, op *ledger.Operation, from ethtypes.Address0xHex) (*ledger.Transaction, error) {
	if m.OnBuild != nil {
		if err := m.OnBuild(op); err != nil {
			return nil, err
		}
	}
	if from != op.Identity {
		return nil, fmt.Errorf("sender %s is not the identity %s", from, op.Identity)
	}
	return m.newTransaction(from, op, "self"), nil
}

func (m *MemLedger) BuildEndorsingData(ctx context.Context, op *ledger.Operation) (*ledger.EndorsingData, error) {
	if m.OnBuild != nil {
		if err := m.OnBuild(op); err != nil {
			return nil, err
		}
	}
	return ledger.NewEndorsingData(op, ledger.Keccak256([]byte{0x19, 0x00}, op.Contract[:], op.Identity[:], []byte(op.Method), writeKey(op))), nil
}

func (m *MemLedger) BuildTransactionFromEndorsingData(ctx context.Context, ed *ledger.EndorsingData, endorser ethtypes.Address0xHex) (*ledger.Transaction, error) {
	if !ed.Signed() {
		return nil, fmt.Errorf("endorsing data is not signed")
	}
	signer, err := ed.Signature().RecoverDirect(ed.SigningBytes(), ChainID)
	if err != nil {
		return nil, err
	}
	if *signer != ed.Identity() {
		return nil, fmt.Errorf("endorsing data signed by %s not %s", signer, ed.Identity())
	}
	return m.newTransaction(endorser, ed.Operation, "endorsed"), nil
}

func (m *MemLedger) Submit(ctx context.Context, tx *ledger.Transaction) (ethtypes.HexBytes0xPrefix, error) {
	if !tx.Signed() {
		return nil, fmt.Errorf("transaction not signed")
	}
	if m.OnSubmit != nil {
		if err := m.OnSubmit(tx); err != nil {
			return nil, err
		}
	}
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Submitted++
	m.block++
	op := tx.Operation
	txHash := ethtypes.HexBytes0xPrefix(ledger.Keccak256(tx.Raw(), []byte{byte(m.block)}))
	receipt := &ledger.Receipt{
		TransactionHash: txHash,
		BlockNumber:     m.block,
		Success:         true,
	}
	key := recordKey(op.Contract, writeKey(op))
	if _, exists := m.records[key]; exists {
		receipt.Success = false
		receipt.RevertData = alreadyExists(ctx, op)
	} else {
		m.records[key] = writeDocument(op)
	}
	m.receipts[txHash.String()] = receipt
	return txHash, nil
}

func alreadyExists(ctx context.Context, op *ledger.Operation) ethtypes.HexBytes0xPrefix {
	for name, e := range op.ABI.Errors() {
		if strings.HasSuffix(name, "AlreadyExist") {
			data, err := e.EncodeCallDataValuesCtx(ctx, []any{ethtypes.HexBytes0xPrefix(writeKey(op)).String()})
			if err == nil {
				return data
			}
		}
	}
	return nil
}

func (m *MemLedger) GetReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ledger.Receipt, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	receipt, ok := m.receipts[txHash.String()]
	if !ok {
		return nil, fmt.Errorf("unknown transaction %s", txHash)
	}
	return receipt, nil
}

func (m *MemLedger) Resolve(ctx context.Context, q *ledger.Query) (ledger.Container, error) {
	if m.OnResolve != nil {
		if err := m.OnResolve(q); err != nil {
			return nil, err
		}
	}
	m.mux.Lock()
	m.Resolved++
	doc, ok := m.records[recordKey(q.Contract, q.Params[0].Value)]
	m.mux.Unlock()
	if !ok || len(doc) == 0 {
		return nil, ledger.NewNotFoundError(ctx, ethtypes.HexBytes0xPrefix(q.Params[0].Value).String())
	}
	result := []byte(`{}`)
	var err error
	for _, path := range q.DocumentPaths {
		if result, err = sjson.SetRawBytes(result, path, doc); err != nil {
			return nil, err
		}
		metaPath := path[:strings.LastIndex(path, ".")+1] + "metadata.created"
		if result, err = sjson.SetBytes(result, metaPath, "1700000000"); err != nil {
			return nil, err
		}
	}
	return ledger.NewContainer(ctx, result)
}
