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

package ethclient

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/rpcclient"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// EthClient is the low level JSON/RPC surface of the base ledger. Signing is
// not done here, the caller supplies fully signed raw transactions.
type EthClient interface {
	ChainID() int64
	CallContract(ctx context.Context, tx *ethsigner.Transaction, block string, errABI abi.ABI) (ethtypes.HexBytes0xPrefix, error)
	GetTransactionCount(ctx context.Context, addr ethtypes.Address0xHex) (uint64, error)
	SendRawTransaction(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error)
	// returns nil without error when the transaction is not yet mined
	GetTransactionReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*TransactionReceipt, error)
}

type TransactionReceipt struct {
	TransactionHash ethtypes.HexBytes0xPrefix `json:"transactionHash"`
	BlockHash       ethtypes.HexBytes0xPrefix `json:"blockHash"`
	BlockNumber     ethtypes.HexUint64        `json:"blockNumber"`
	Status          ethtypes.HexUint64        `json:"status"`
	RevertReason    ethtypes.HexBytes0xPrefix `json:"revertReason,omitempty"`
}

func (r *TransactionReceipt) Success() bool {
	return r.Status.Uint64() == 1
}

// RevertError is returned when a call reverts with data. ErrorName is the
// custom error matched from the supplied ABI, empty when nothing matched.
type RevertError struct {
	Data      ethtypes.HexBytes0xPrefix
	ErrorName string
	err       error
}

func (e *RevertError) Error() string {
	return e.err.Error()
}

func (e *RevertError) Unwrap() error {
	return e.err
}

func AsRevertError(err error) (*RevertError, bool) {
	var re *RevertError
	ok := errors.As(err, &re)
	return re, ok
}

type ethClient struct {
	chainID int64
	rpc     rpcclient.Client
}

func NewEthClient(ctx context.Context, conf *vdrconf.EthClientConfig) (EthClient, error) {
	rpc, err := rpcclient.NewHTTPClient(ctx, &conf.HTTP)
	if err != nil {
		return nil, err
	}
	return WrapRPCClient(ctx, rpc, conf.ChainID)
}

func WrapRPCClient(ctx context.Context, rpc rpcclient.Client, chainID *int64) (EthClient, error) {
	ec := &ethClient{rpc: rpc}
	if chainID != nil {
		ec.chainID = *chainID
		return ec, nil
	}
	if err := ec.setupChainID(ctx); err != nil {
		return nil, err
	}
	return ec, nil
}

func (ec *ethClient) ChainID() int64 {
	return ec.chainID
}

func (ec *ethClient) setupChainID(ctx context.Context) error {
	var chainID ethtypes.HexUint64
	if rpcErr := ec.rpc.CallRPC(ctx, &chainID, "eth_chainId"); rpcErr != nil {
		log.L(ctx).Errorf("eth_chainId failed: %+v", rpcErr)
		return i18n.WrapError(ctx, rpcErr, msgs.MsgEthClientChainIDFailed, rpcErr.Error())
	}
	ec.chainID = int64(chainID.Uint64())
	return nil
}

func (ec *ethClient) CallContract(ctx context.Context, tx *ethsigner.Transaction, block string, errABI abi.ABI) (data ethtypes.HexBytes0xPrefix, err error) {
	if rpcErr := ec.rpc.CallRPC(ctx, &data, "eth_call", tx, block); rpcErr != nil {
		log.L(ctx).Errorf("eth_call failed: %s", rpcErr)
		if errData := rpcErr.Data(); len(errData) != 0 {
			log.L(ctx).Debugf("Received error data in revert: %s", errData)
			var revertData ethtypes.HexBytes0xPrefix
			_ = json.Unmarshal(errData, &revertData)
			if len(revertData) > 0 {
				return nil, decodeRevert(ctx, errABI, revertData)
			}
		}
		return nil, i18n.WrapError(ctx, rpcErr, msgs.MsgEthClientRPCFailed, "eth_call", rpcErr.Error())
	}
	return data, nil
}

func decodeRevert(ctx context.Context, errABI abi.ABI, revertData ethtypes.HexBytes0xPrefix) *RevertError {
	re := &RevertError{Data: revertData}
	summary := revertData.String()
	if e, cv, ok := errABI.ParseErrorCtx(ctx, revertData); ok {
		re.ErrorName = e.Name
		summary = abi.FormatErrorStringCtx(ctx, e, cv)
	} else if errString, ok := errABI.ErrorStringCtx(ctx, revertData); ok {
		summary = errString
	}
	re.err = i18n.NewError(ctx, msgs.MsgEthClientCallReverted, summary)
	return re
}

// DecodeRevertReason decodes the revert data a node places on a receipt
func DecodeRevertReason(ctx context.Context, errABI abi.ABI, revertData ethtypes.HexBytes0xPrefix) *RevertError {
	return decodeRevert(ctx, errABI, revertData)
}

func (ec *ethClient) GetTransactionCount(ctx context.Context, addr ethtypes.Address0xHex) (uint64, error) {
	var transactionCount ethtypes.HexUint64
	if rpcErr := ec.rpc.CallRPC(ctx, &transactionCount, "eth_getTransactionCount", addr, "pending"); rpcErr != nil {
		log.L(ctx).Errorf("eth_getTransactionCount(%s) failed: %+v", addr, rpcErr)
		return 0, i18n.WrapError(ctx, rpcErr, msgs.MsgEthClientRPCFailed, "eth_getTransactionCount", rpcErr.Error())
	}
	return transactionCount.Uint64(), nil
}

func (ec *ethClient) SendRawTransaction(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error) {
	var txHash ethtypes.HexBytes0xPrefix
	if rpcErr := ec.rpc.CallRPC(ctx, &txHash, "eth_sendRawTransaction", rawTX); rpcErr != nil {
		addr, decodedTX, err := ethsigner.RecoverRawTransaction(ctx, rawTX, ec.chainID)
		if err != nil {
			log.L(ctx).Errorf("Invalid transaction build during signing: %s", err)
		} else {
			log.L(ctx).Errorf("Rejected TX (from=%s, nonce=%+v)", addr, decodedTX.Nonce)
		}
		return nil, i18n.WrapError(ctx, rpcErr, msgs.MsgEthClientSubmitFailed, rpcErr.Error())
	}
	return txHash, nil
}

func (ec *ethClient) GetTransactionReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*TransactionReceipt, error) {
	var receipt *TransactionReceipt
	if rpcErr := ec.rpc.CallRPC(ctx, &receipt, "eth_getTransactionReceipt", txHash); rpcErr != nil {
		log.L(ctx).Errorf("eth_getTransactionReceipt(%s) failed: %+v", txHash, rpcErr)
		return nil, i18n.WrapError(ctx, rpcErr, msgs.MsgEthClientRPCFailed, "eth_getTransactionReceipt", rpcErr.Error())
	}
	return receipt, nil
}
