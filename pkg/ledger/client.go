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
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ethclient"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/retry"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
)

type evmClient struct {
	ec          ethclient.EthClient
	txVersion   vdrconf.EthTXVersion
	gasLimit    *big.Int
	gasPrice    *big.Int
	receiptPoll *retry.Retry

	nonceLock  sync.Mutex
	nextNonces map[ethtypes.Address0xHex]uint64
}

func NewEVMClient(ec ethclient.EthClient, conf *vdrconf.EthClientConfig) Client {
	txVersion := conf.TXVersion
	if txVersion == "" {
		txVersion = vdrconf.EthClientDefaults.TXVersion
	}
	return &evmClient{
		ec:          ec,
		txVersion:   txVersion,
		gasLimit:    confutil.BigInt(conf.GasLimit, *vdrconf.EthClientDefaults.GasLimit),
		gasPrice:    confutil.BigInt(conf.GasPrice, *vdrconf.EthClientDefaults.GasPrice),
		receiptPoll: retry.NewRetryLimited(&conf.Receipts, &vdrconf.EthClientDefaults.Receipts),
		nextNonces:  make(map[ethtypes.Address0xHex]uint64),
	}
}

// allocateNonce hands out the next nonce for a sender. The node's pending
// count wins when it is ahead (transactions sent by another process), but two
// builds in this process never share a nonce.
func (c *evmClient) allocateNonce(ctx context.Context, from ethtypes.Address0xHex) (uint64, error) {
	c.nonceLock.Lock()
	defer c.nonceLock.Unlock()
	pending, err := c.ec.GetTransactionCount(ctx, from)
	if err != nil {
		return 0, NewLedgerError(err)
	}
	nonce := max(pending, c.nextNonces[from])
	c.nextNonces[from] = nonce + 1
	log.L(ctx).Debugf("Allocated nonce %d for %s (pending=%d)", nonce, from, pending)
	return nonce, nil
}

func (c *evmClient) forgetNonce(from ethtypes.Address0xHex) {
	c.nonceLock.Lock()
	defer c.nonceLock.Unlock()
	delete(c.nextNonces, from)
}

func hexParam(p Param) string {
	return ethtypes.HexBytes0xPrefix(p.Value).String()
}

func checkParam(ctx context.Context, p Param) error {
	expected := -1
	switch p.Type {
	case ParamAddress:
		expected = 20
	case ParamBytes32:
		expected = 32
	}
	if expected >= 0 && len(p.Value) != expected {
		return i18n.NewError(ctx, msgs.MsgLedgerInvalidParam, p.Name, p.Type, len(p.Value))
	}
	return nil
}

func encodeCall(ctx context.Context, contractABI abi.ABI, method string, inputs map[string]any) (ethtypes.HexBytes0xPrefix, error) {
	fn := contractABI.Functions()[method]
	if fn == nil {
		return nil, i18n.NewError(ctx, msgs.MsgLedgerUnknownMethod, method)
	}
	jsonInputs, err := json.Marshal(inputs)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgLedgerEncodeFailed, method)
	}
	callData, err := fn.EncodeCallDataJSONCtx(ctx, jsonInputs)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgLedgerEncodeFailed, method)
	}
	return callData, nil
}

func paramInputs(ctx context.Context, params []Param, inputs map[string]any) error {
	for _, p := range params {
		if err := checkParam(ctx, p); err != nil {
			return err
		}
		inputs[p.Name] = hexParam(p)
	}
	return nil
}

func (c *evmClient) BuildTransaction(ctx context.Context, op *Operation, from ethtypes.Address0xHex) (*Transaction, error) {
	inputs := map[string]any{"identity": op.Identity.String()}
	if err := paramInputs(ctx, op.Params, inputs); err != nil {
		return nil, err
	}
	callData, err := encodeCall(ctx, op.ABI, op.Method, inputs)
	if err != nil {
		return nil, err
	}
	return c.buildTransaction(ctx, op, from, callData)
}

// The identity signs keccak256(0x19 || 0x00 || contract || identity || method || packed params),
// which the registry contract recomputes in its "<method>Signed" entry point.
func (c *evmClient) BuildEndorsingData(ctx context.Context, op *Operation) (*EndorsingData, error) {
	if op.ABI.Functions()[op.SignedMethod()] == nil {
		return nil, i18n.NewError(ctx, msgs.MsgLedgerUnknownMethod, op.SignedMethod())
	}
	packed := [][]byte{{0x19}, {0x00}, op.Contract[:], op.Identity[:], []byte(op.Method)}
	for _, p := range op.Params {
		if err := checkParam(ctx, p); err != nil {
			return nil, err
		}
		packed = append(packed, p.Value)
	}
	return NewEndorsingData(op, Keccak256(packed...)), nil
}

func (c *evmClient) BuildTransactionFromEndorsingData(ctx context.Context, ed *EndorsingData, endorser ethtypes.Address0xHex) (*Transaction, error) {
	if !ed.Signed() {
		return nil, i18n.NewError(ctx, msgs.MsgLedgerEndorsingDataNotSigned)
	}
	op := ed.Operation
	sig := ed.Signature()
	var r, s [32]byte
	sig.R.FillBytes(r[:])
	sig.S.FillBytes(s[:])
	inputs := map[string]any{
		"identity": op.Identity.String(),
		"sigV":     sig.V.Int64(),
		"sigR":     ethtypes.HexBytes0xPrefix(r[:]).String(),
		"sigS":     ethtypes.HexBytes0xPrefix(s[:]).String(),
	}
	if err := paramInputs(ctx, op.Params, inputs); err != nil {
		return nil, err
	}
	callData, err := encodeCall(ctx, op.ABI, op.SignedMethod(), inputs)
	if err != nil {
		return nil, err
	}
	return c.buildTransaction(ctx, op, endorser, callData)
}

func (c *evmClient) buildTransaction(ctx context.Context, op *Operation, from ethtypes.Address0xHex, callData ethtypes.HexBytes0xPrefix) (*Transaction, error) {
	nonce, err := c.allocateNonce(ctx, from)
	if err != nil {
		return nil, err
	}
	contract := op.Contract
	tx := &ethsigner.Transaction{
		From:     json.RawMessage(fmt.Sprintf(`"%s"`, from)),
		To:       &contract,
		Nonce:    ethtypes.NewHexInteger(new(big.Int).SetUint64(nonce)),
		GasLimit: ethtypes.NewHexInteger(c.gasLimit),
		Value:    ethtypes.NewHexInteger(big.NewInt(0)),
		Data:     callData,
	}
	chainID := c.ec.ChainID()
	var sigPayload *ethsigner.TransactionSignaturePayload
	switch c.txVersion {
	case vdrconf.TXVersionEIP1559:
		tx.MaxFeePerGas = ethtypes.NewHexInteger(c.gasPrice)
		tx.MaxPriorityFeePerGas = ethtypes.NewHexInteger(c.gasPrice)
		sigPayload = tx.SignaturePayloadEIP1559(chainID)
	case vdrconf.TXVersionLegacyEIP155:
		tx.GasPrice = ethtypes.NewHexInteger(c.gasPrice)
		sigPayload = tx.SignaturePayloadLegacyEIP155(chainID)
	default:
		return nil, i18n.NewError(ctx, msgs.MsgEthClientInvalidTXVersion, c.txVersion)
	}
	txVersion := c.txVersion
	finalize := func(ctx context.Context, sig *secp256k1.SignatureData) (ethtypes.HexBytes0xPrefix, error) {
		// both finalizers expect the 27/28 recovery form
		if sig.V.Int64() < 27 {
			sig.V.SetInt64(sig.V.Int64() + 27)
		}
		var rawTX []byte
		var err error
		if txVersion == vdrconf.TXVersionEIP1559 {
			rawTX, err = tx.FinalizeEIP1559WithSignature(sigPayload, sig)
		} else {
			rawTX, err = tx.FinalizeLegacyEIP155WithSignature(sigPayload, sig, chainID)
		}
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgLedgerInvalidSignature, err.Error())
		}
		return rawTX, nil
	}
	return NewTransaction(from, op, Keccak256(sigPayload.Bytes()), finalize), nil
}

func (c *evmClient) Submit(ctx context.Context, tx *Transaction) (ethtypes.HexBytes0xPrefix, error) {
	if !tx.Signed() {
		return nil, i18n.NewError(ctx, msgs.MsgLedgerTransactionNotSigned)
	}
	txHash, err := c.ec.SendRawTransaction(ctx, tx.Raw())
	if err != nil {
		// the node did not take the nonce, so re-read its pending count next time
		c.forgetNonce(tx.From)
		return nil, NewLedgerError(err)
	}
	log.L(ctx).Infof("Submitted %s from %s: %s", tx.Operation.Method, tx.From, txHash)
	return txHash, nil
}

// GetReceipt polls until the transaction is mined. Polling only reads, so it
// is safe to repeat.
func (c *evmClient) GetReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*Receipt, error) {
	var receipt *ethclient.TransactionReceipt
	err := c.receiptPoll.Do(ctx, func(attempt int) (retryable bool, err error) {
		receipt, err = c.ec.GetTransactionReceipt(ctx, txHash)
		if err == nil && receipt == nil {
			err = i18n.NewError(ctx, msgs.MsgLedgerReceiptTimeout, txHash)
		}
		return true, err
	})
	if err != nil {
		return nil, NewLedgerError(err)
	}
	return &Receipt{
		TransactionHash: receipt.TransactionHash,
		BlockHash:       receipt.BlockHash,
		BlockNumber:     receipt.BlockNumber.Uint64(),
		Success:         receipt.Success(),
		RevertData:      receipt.RevertReason,
	}, nil
}

func (c *evmClient) Resolve(ctx context.Context, q *Query) (Container, error) {
	inputs := map[string]any{}
	if err := paramInputs(ctx, q.Params, inputs); err != nil {
		return nil, err
	}
	callData, err := encodeCall(ctx, q.ABI, q.Method, inputs)
	if err != nil {
		return nil, err
	}
	contract := q.Contract
	data, err := c.ec.CallContract(ctx, &ethsigner.Transaction{To: &contract, Data: callData}, "latest", q.ABI)
	if err != nil {
		if re, ok := ethclient.AsRevertError(err); ok && strings.HasSuffix(re.ErrorName, "NotFound") {
			return nil, NewNotFoundError(ctx, describeQuery(q))
		}
		return nil, NewLedgerError(err)
	}
	cv, err := q.ABI.Functions()[q.Method].Outputs.DecodeABIDataCtx(ctx, data, 0)
	var jsonData []byte
	if err == nil {
		jsonData, err = abi.NewSerializer().
			SetFormattingMode(abi.FormatAsObjects).
			SetIntSerializer(abi.Base10StringIntSerializer).
			SetFloatSerializer(abi.Base10StringFloatSerializer).
			SetByteSerializer(abi.HexByteSerializer0xPrefix).
			SerializeJSONCtx(ctx, cv)
	}
	if err != nil {
		return nil, NewLedgerError(i18n.WrapError(ctx, err, msgs.MsgLedgerDecodeFailed, q.Method))
	}
	jsonData, found, err := expandDocuments(ctx, jsonData, q.DocumentPaths)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, NewNotFoundError(ctx, describeQuery(q))
	}
	return NewContainer(ctx, jsonData)
}

func describeQuery(q *Query) string {
	args := make([]string, len(q.Params))
	for i, p := range q.Params {
		args[i] = hexParam(p)
	}
	return fmt.Sprintf("%s(%s)", q.Method, strings.Join(args, ","))
}
