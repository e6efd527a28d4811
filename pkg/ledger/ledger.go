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

	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Client is the boundary to the ledger library. Build calls never sign, the
// signing bytes are handed to the caller's signer and the signature attached.
type Client interface {
	BuildTransaction(ctx context.Context, op *Operation, from ethtypes.Address0xHex) (*Transaction, error)
	BuildEndorsingData(ctx context.Context, op *Operation) (*EndorsingData, error)
	BuildTransactionFromEndorsingData(ctx context.Context, ed *EndorsingData, endorser ethtypes.Address0xHex) (*Transaction, error)
	Submit(ctx context.Context, tx *Transaction) (ethtypes.HexBytes0xPrefix, error)
	GetReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*Receipt, error)
	Resolve(ctx context.Context, q *Query) (Container, error)
}

type ParamType string

const (
	ParamAddress ParamType = "address"
	ParamBytes32 ParamType = "bytes32"
	ParamBytes   ParamType = "bytes"
)

// Param is one argument of a registry write, in both ABI encoding and the
// tightly packed form the identity signs.
type Param struct {
	Name  string
	Type  ParamType
	Value []byte
}

// Operation is a write of one resource. The first input of Method is the
// identity address, followed by Params. The endorsed form of the same write
// is the "<Method>Signed" function taking (identity, sigV, sigR, sigS, ...Params).
type Operation struct {
	Contract ethtypes.Address0xHex
	ABI      abi.ABI
	Method   string
	Identity ethtypes.Address0xHex
	Params   []Param
}

func (op *Operation) SignedMethod() string {
	return op.Method + "Signed"
}

// Query is a read-only call. DocumentPaths name the bytes fields of the result
// that carry JSON documents, which are expanded in place in the container.
type Query struct {
	Contract      ethtypes.Address0xHex
	ABI           abi.ABI
	Method        string
	Params        []Param
	DocumentPaths []string
}

type Receipt struct {
	TransactionHash ethtypes.HexBytes0xPrefix `json:"transactionHash"`
	BlockHash       ethtypes.HexBytes0xPrefix `json:"blockHash"`
	BlockNumber     uint64                    `json:"blockNumber"`
	Success         bool                      `json:"success"`
	RevertData      ethtypes.HexBytes0xPrefix `json:"revertData,omitempty"`
}
