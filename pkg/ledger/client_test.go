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
	"strings"
	"sync"
	"testing"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ethclient"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const testRegistryABI = `[
	{
		"type": "function",
		"name": "createSchema",
		"inputs": [
			{"name": "identity", "type": "address"},
			{"name": "id", "type": "bytes32"},
			{"name": "schema", "type": "bytes"}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "createSchemaSigned",
		"inputs": [
			{"name": "identity", "type": "address"},
			{"name": "sigV", "type": "uint8"},
			{"name": "sigR", "type": "bytes32"},
			{"name": "sigS", "type": "bytes32"},
			{"name": "id", "type": "bytes32"},
			{"name": "schema", "type": "bytes"}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "resolveSchema",
		"stateMutability": "view",
		"inputs": [
			{"name": "id", "type": "bytes32"}
		],
		"outputs": [
			{"name": "schema", "type": "tuple", "components": [
				{"name": "data", "type": "bytes"},
				{"name": "metadata", "type": "tuple", "components": [
					{"name": "created", "type": "uint256"}
				]}
			]}
		]
	},
	{
		"type": "error",
		"name": "SchemaNotFound",
		"inputs": [{"name": "id", "type": "bytes32"}]
	}
]`

type fakeEthClient struct {
	chainID             int64
	callContract        func(ctx context.Context, tx *ethsigner.Transaction, block string, errABI abi.ABI) (ethtypes.HexBytes0xPrefix, error)
	getTransactionCount func(ctx context.Context, addr ethtypes.Address0xHex) (uint64, error)
	sendRawTransaction  func(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error)
	getReceipt          func(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ethclient.TransactionReceipt, error)
}

func (f *fakeEthClient) ChainID() int64 { return f.chainID }

func (f *fakeEthClient) CallContract(ctx context.Context, tx *ethsigner.Transaction, block string, errABI abi.ABI) (ethtypes.HexBytes0xPrefix, error) {
	return f.callContract(ctx, tx, block, errABI)
}

func (f *fakeEthClient) GetTransactionCount(ctx context.Context, addr ethtypes.Address0xHex) (uint64, error) {
	return f.getTransactionCount(ctx, addr)
}

func (f *fakeEthClient) SendRawTransaction(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error) {
	return f.sendRawTransaction(ctx, rawTX)
}

func (f *fakeEthClient) GetTransactionReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ethclient.TransactionReceipt, error) {
	return f.getReceipt(ctx, txHash)
}

func newTestLedger(t *testing.T, txVersion vdrconf.EthTXVersion) (context.Context, *fakeEthClient, Client, abi.ABI) {
	var a abi.ABI
	require.NoError(t, json.Unmarshal([]byte(testRegistryABI), &a))
	fec := &fakeEthClient{
		chainID: 1337,
		getTransactionCount: func(ctx context.Context, addr ethtypes.Address0xHex) (uint64, error) {
			return 5, nil
		},
	}
	c := NewEVMClient(fec, &vdrconf.EthClientConfig{
		TXVersion: txVersion,
		GasLimit:  confutil.P("100000"),
		Receipts: vdrconf.RetryConfigWithMax{
			RetryConfig: vdrconf.RetryConfig{InitialDelay: confutil.P("1ms"), MaxDelay: confutil.P("1ms")},
			MaxAttempts: confutil.P(3),
		},
	})
	return context.Background(), fec, c, a
}

func testOperation(a abi.ABI, identity ethtypes.Address0xHex) *Operation {
	return &Operation{
		Contract: *ethtypes.MustNewAddress("0x0000000000000000000000000000000000005555"),
		ABI:      a,
		Method:   "createSchema",
		Identity: identity,
		Params: []Param{
			{Name: "id", Type: ParamBytes32, Value: Keccak256([]byte("schema1"))},
			{Name: "schema", Type: ParamBytes, Value: []byte(`{"name":"test"}`)},
		},
	}
}

func signWith(t *testing.T, kp *secp256k1.KeyPair, data []byte) []byte {
	sig, err := kp.SignDirect(data)
	require.NoError(t, err)
	return sig.CompactRSV()
}

func TestBuildSignSubmit(t *testing.T) {
	for _, txVersion := range []vdrconf.EthTXVersion{vdrconf.TXVersionLegacyEIP155, vdrconf.TXVersionEIP1559} {
		t.Run(string(txVersion), func(t *testing.T) {
			ctx, fec, c, a := newTestLedger(t, txVersion)
			kp, err := secp256k1.GenerateSecp256k1KeyPair()
			require.NoError(t, err)

			tx, err := c.BuildTransaction(ctx, testOperation(a, kp.Address), kp.Address)
			require.NoError(t, err)
			assert.False(t, tx.Signed())
			assert.Len(t, tx.SigningBytes(), 32)

			_, err = c.Submit(ctx, tx)
			assert.Regexp(t, "VD010304", err)

			require.NoError(t, tx.SetSignature(ctx, signWith(t, kp, tx.SigningBytes())))
			assert.True(t, tx.Signed())

			fec.sendRawTransaction = func(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error) {
				addr, decoded, err := ethsigner.RecoverRawTransaction(ctx, rawTX, 1337)
				require.NoError(t, err)
				assert.Equal(t, kp.Address.String(), addr.String())
				assert.Equal(t, int64(5), decoded.Nonce.Int64())
				assert.Equal(t, int64(100000), decoded.GasLimit.Int64())
				cv, err := a.Functions()["createSchema"].DecodeCallDataCtx(ctx, decoded.Data)
				require.NoError(t, err)
				assert.Len(t, cv.Children, 3)
				return Keccak256(rawTX), nil
			}
			txHash, err := c.Submit(ctx, tx)
			require.NoError(t, err)
			assert.Len(t, txHash, 32)
		})
	}
}

func TestBuildTransactionInvalidParamLength(t *testing.T) {
	ctx, _, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	op := testOperation(a, kp.Address)
	op.Params[0].Value = []byte{0x01}
	_, err = c.BuildTransaction(ctx, op, kp.Address)
	assert.Regexp(t, "VD010309", err)
}

func TestBuildTransactionUnknownMethod(t *testing.T) {
	ctx, _, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	op := testOperation(a, kp.Address)
	op.Method = "missing"
	_, err = c.BuildTransaction(ctx, op, kp.Address)
	assert.Regexp(t, "VD010300", err)
	_, err = c.BuildEndorsingData(ctx, op)
	assert.Regexp(t, "VD010300", err)
}

func TestBuildTransactionNonceFailure(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	fec.getTransactionCount = func(ctx context.Context, addr ethtypes.Address0xHex) (uint64, error) {
		return 0, fmt.Errorf("pop")
	}
	_, err = c.BuildTransaction(ctx, testOperation(a, kp.Address), kp.Address)
	assert.Regexp(t, "pop", err)
	assert.True(t, IsLedgerError(err))
}

func TestBuildTransactionBadTXVersion(t *testing.T) {
	ctx, _, c, a := newTestLedger(t, "wrong")
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	_, err = c.BuildTransaction(ctx, testOperation(a, kp.Address), kp.Address)
	assert.Regexp(t, "VD010204", err)
}

func TestSetSignatureBadLength(t *testing.T) {
	ctx, _, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	tx, err := c.BuildTransaction(ctx, testOperation(a, kp.Address), kp.Address)
	require.NoError(t, err)
	err = tx.SetSignature(ctx, []byte{0x01, 0x02})
	assert.Regexp(t, "VD010306", err)
	assert.False(t, tx.Signed())
}

func TestEndorsementRoundTrip(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	identity, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	endorser, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	op := testOperation(a, identity.Address)

	ed, err := c.BuildEndorsingData(ctx, op)
	require.NoError(t, err)
	assert.False(t, ed.Signed())
	assert.Nil(t, ed.Signature())
	assert.Equal(t, identity.Address, ed.Identity())

	expectedHash := Keccak256(
		[]byte{0x19, 0x00},
		op.Contract[:],
		identity.Address[:],
		[]byte("createSchema"),
		op.Params[0].Value,
		op.Params[1].Value,
	)
	assert.Equal(t, expectedHash, ed.SigningBytes())

	_, err = c.BuildTransactionFromEndorsingData(ctx, ed, endorser.Address)
	assert.Regexp(t, "VD010305", err)

	signed, err := ed.WithSignature(ctx, signWith(t, identity, ed.SigningBytes()))
	require.NoError(t, err)
	assert.False(t, ed.Signed())
	assert.True(t, signed.Signed())
	v := signed.Signature().V.Int64()
	assert.True(t, v == 27 || v == 28)

	// the signature must recover to the identity
	sig := signed.Signature()
	recovered, err := sig.RecoverDirect(signed.SigningBytes(), 1337)
	require.NoError(t, err)
	assert.Equal(t, identity.Address.String(), recovered.String())

	tx, err := c.BuildTransactionFromEndorsingData(ctx, signed, endorser.Address)
	require.NoError(t, err)
	assert.Equal(t, endorser.Address, tx.From)
	require.NoError(t, tx.SetSignature(ctx, signWith(t, endorser, tx.SigningBytes())))

	fec.sendRawTransaction = func(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error) {
		addr, decoded, err := ethsigner.RecoverRawTransaction(ctx, rawTX, 1337)
		require.NoError(t, err)
		assert.Equal(t, endorser.Address.String(), addr.String())
		cv, err := a.Functions()["createSchemaSigned"].DecodeCallDataCtx(ctx, decoded.Data)
		require.NoError(t, err)
		jsonData, err := abi.NewSerializer().
			SetFormattingMode(abi.FormatAsObjects).
			SetByteSerializer(abi.HexByteSerializer0xPrefix).
			SerializeJSONCtx(ctx, cv)
		require.NoError(t, err)
		var fields map[string]any
		require.NoError(t, json.Unmarshal(jsonData, &fields))
		assert.Equal(t, identity.Address.String(), fields["identity"])
		assert.Equal(t, fmt.Sprintf("%d", v), fmt.Sprintf("%v", fields["sigV"]))
		return Keccak256(rawTX), nil
	}
	_, err = c.Submit(ctx, tx)
	require.NoError(t, err)
}

func TestSubmitFailure(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	tx, err := c.BuildTransaction(ctx, testOperation(a, kp.Address), kp.Address)
	require.NoError(t, err)
	require.NoError(t, tx.SetSignature(ctx, signWith(t, kp, tx.SigningBytes())))
	fec.sendRawTransaction = func(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error) {
		return nil, fmt.Errorf("pop")
	}
	_, err = c.Submit(ctx, tx)
	assert.Regexp(t, "pop", err)
	assert.True(t, IsLedgerError(err))
}

func TestConcurrentBuildsFromOneSenderGetDistinctNonces(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	endorser, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)

	var lock sync.Mutex
	sent := map[int64]string{}
	fec.sendRawTransaction = func(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error) {
		_, decoded, err := ethsigner.RecoverRawTransaction(ctx, rawTX, 1337)
		if err != nil {
			return nil, err
		}
		lock.Lock()
		defer lock.Unlock()
		nonce := decoded.Nonce.Int64()
		if _, taken := sent[nonce]; taken {
			return nil, fmt.Errorf("nonce too low: %d", nonce)
		}
		sent[nonce] = decoded.Data.String()
		return Keccak256(rawTX), nil
	}

	const count = 10
	var g errgroup.Group
	for i := 0; i < count; i++ {
		g.Go(func() error {
			op := testOperation(a, endorser.Address)
			op.Params[0].Value = Keccak256([]byte(fmt.Sprintf("schema%d", i)))
			tx, err := c.BuildTransaction(ctx, op, endorser.Address)
			if err != nil {
				return err
			}
			sig, err := endorser.SignDirect(tx.SigningBytes())
			if err != nil {
				return err
			}
			if err := tx.SetSignature(ctx, sig.CompactRSV()); err != nil {
				return err
			}
			_, err = c.Submit(ctx, tx)
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, sent, count)
	for n := int64(5); n < 5+count; n++ {
		assert.Contains(t, sent, n)
	}
}

func TestNonceFollowsNodeWhenAhead(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	other, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)

	ec := c.(*evmClient)
	n, err := ec.allocateNonce(ctx, kp.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
	n, err = ec.allocateNonce(ctx, kp.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), n)

	// senders are tracked independently
	n, err = ec.allocateNonce(ctx, other.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)

	fec.getTransactionCount = func(ctx context.Context, addr ethtypes.Address0xHex) (uint64, error) {
		return 20, nil
	}
	tx, err := c.BuildTransaction(ctx, testOperation(a, kp.Address), kp.Address)
	require.NoError(t, err)
	require.NoError(t, tx.SetSignature(ctx, signWith(t, kp, tx.SigningBytes())))
	fec.sendRawTransaction = func(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error) {
		_, decoded, err := ethsigner.RecoverRawTransaction(ctx, rawTX, 1337)
		require.NoError(t, err)
		assert.Equal(t, int64(20), decoded.Nonce.Int64())
		return Keccak256(rawTX), nil
	}
	_, err = c.Submit(ctx, tx)
	require.NoError(t, err)
}

func TestSubmitFailureReleasesNonce(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	require.NoError(t, err)
	tx, err := c.BuildTransaction(ctx, testOperation(a, kp.Address), kp.Address)
	require.NoError(t, err)
	require.NoError(t, tx.SetSignature(ctx, signWith(t, kp, tx.SigningBytes())))
	fec.sendRawTransaction = func(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error) {
		return nil, fmt.Errorf("pop")
	}
	_, err = c.Submit(ctx, tx)
	assert.Regexp(t, "pop", err)

	n, err := c.(*evmClient).allocateNonce(ctx, kp.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
}

func TestGetReceiptPollsUntilMined(t *testing.T) {
	ctx, fec, c, _ := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	calls := 0
	fec.getReceipt = func(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ethclient.TransactionReceipt, error) {
		calls++
		if calls < 2 {
			return nil, nil
		}
		return &ethclient.TransactionReceipt{
			TransactionHash: txHash,
			BlockNumber:     12,
			Status:          1,
		}, nil
	}
	receipt, err := c.GetReceipt(ctx, ethtypes.MustNewHexBytes0xPrefix("0x1234"))
	require.NoError(t, err)
	assert.True(t, receipt.Success)
	assert.Equal(t, uint64(12), receipt.BlockNumber)
	assert.Equal(t, 2, calls)
}

func TestGetReceiptTimeout(t *testing.T) {
	ctx, fec, c, _ := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	fec.getReceipt = func(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ethclient.TransactionReceipt, error) {
		return nil, nil
	}
	_, err := c.GetReceipt(ctx, ethtypes.MustNewHexBytes0xPrefix("0x1234"))
	assert.Regexp(t, "VD010307", err)
	assert.True(t, IsLedgerError(err))
}

func encodeSchemaResult(t *testing.T, a abi.ABI, doc string) ethtypes.HexBytes0xPrefix {
	cv, err := a.Functions()["resolveSchema"].Outputs.ParseJSON([]byte(fmt.Sprintf(`{
		"schema": {
			"data": "%s",
			"metadata": {"created": "1700000000"}
		}
	}`, ethtypes.HexBytes0xPrefix(doc).String())))
	require.NoError(t, err)
	data, err := cv.EncodeABIData()
	require.NoError(t, err)
	return data
}

func testQuery(a abi.ABI) *Query {
	return &Query{
		Contract:      *ethtypes.MustNewAddress("0x0000000000000000000000000000000000005555"),
		ABI:           a,
		Method:        "resolveSchema",
		Params:        []Param{{Name: "id", Type: ParamBytes32, Value: Keccak256([]byte("schema1"))}},
		DocumentPaths: []string{"schema.data"},
	}
}

func TestResolveExpandsDocument(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	fec.callContract = func(ctx context.Context, tx *ethsigner.Transaction, block string, errABI abi.ABI) (ethtypes.HexBytes0xPrefix, error) {
		assert.Equal(t, "latest", block)
		return encodeSchemaResult(t, a, `{"name":"test","attrNames":["a","b"]}`), nil
	}
	container, err := c.Resolve(ctx, testQuery(a))
	require.NoError(t, err)
	assert.Equal(t, []string{"schema"}, container.Keys())

	schema, ok := container.Get("schema")
	require.True(t, ok)
	data, ok := schema.(Container).Get("data")
	require.True(t, ok)
	name, ok := data.(Container).Get("name")
	require.True(t, ok)
	assert.Equal(t, "test", name)
	attrs, _ := data.(Container).Get("attrNames")
	assert.Equal(t, []any{"a", "b"}, attrs)

	metadata, _ := schema.(Container).Get("metadata")
	created, _ := metadata.(Container).Get("created")
	assert.Equal(t, "1700000000", created)
}

func TestResolveEmptyDocumentNotFound(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	fec.callContract = func(ctx context.Context, tx *ethsigner.Transaction, block string, errABI abi.ABI) (ethtypes.HexBytes0xPrefix, error) {
		return encodeSchemaResult(t, a, ""), nil
	}
	_, err := c.Resolve(ctx, testQuery(a))
	assert.Regexp(t, "VD010303", err)
	assert.True(t, IsNotFound(err))
}

func TestResolveRevertNotFound(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	fec.callContract = func(ctx context.Context, tx *ethsigner.Transaction, block string, errABI abi.ABI) (ethtypes.HexBytes0xPrefix, error) {
		return nil, &ethclient.RevertError{ErrorName: "SchemaNotFound"}
	}
	_, err := c.Resolve(ctx, testQuery(a))
	assert.True(t, IsNotFound(err))
}

func TestResolveCallFailure(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	fec.callContract = func(ctx context.Context, tx *ethsigner.Transaction, block string, errABI abi.ABI) (ethtypes.HexBytes0xPrefix, error) {
		return nil, fmt.Errorf("pop")
	}
	_, err := c.Resolve(ctx, testQuery(a))
	assert.Regexp(t, "pop", err)
	assert.True(t, IsLedgerError(err))
	assert.False(t, IsNotFound(err))
}

func TestResolveBadDocument(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	fec.callContract = func(ctx context.Context, tx *ethsigner.Transaction, block string, errABI abi.ABI) (ethtypes.HexBytes0xPrefix, error) {
		return encodeSchemaResult(t, a, "not json"), nil
	}
	_, err := c.Resolve(ctx, testQuery(a))
	assert.Regexp(t, "VD010302", err)
}

func TestResolveUndecodableOutput(t *testing.T) {
	ctx, fec, c, a := newTestLedger(t, vdrconf.TXVersionLegacyEIP155)
	fec.callContract = func(ctx context.Context, tx *ethsigner.Transaction, block string, errABI abi.ABI) (ethtypes.HexBytes0xPrefix, error) {
		return ethtypes.MustNewHexBytes0xPrefix("0x01"), nil
	}
	_, err := c.Resolve(ctx, testQuery(a))
	assert.Regexp(t, "VD010302", err)
	assert.True(t, IsLedgerError(err))
}

func TestContainerRejectsNonObject(t *testing.T) {
	_, err := NewContainer(context.Background(), []byte(`[1,2]`))
	assert.Regexp(t, "VD010311", err)
	_, err = NewContainer(context.Background(), []byte(`{bad`))
	assert.Regexp(t, "VD010311", err)
}

func TestContainerLiteralKeys(t *testing.T) {
	c, err := NewContainer(context.Background(), []byte(`{"a.b": 1, "c": null, "d": true}`))
	require.NoError(t, err)
	v, ok := c.Get("a.b")
	assert.True(t, ok)
	assert.Equal(t, float64(1), v)
	v, ok = c.Get("c")
	assert.True(t, ok)
	assert.Nil(t, v)
	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCheckReceipt(t *testing.T) {
	ctx := context.Background()
	var a abi.ABI
	require.NoError(t, json.Unmarshal([]byte(testRegistryABI), &a))

	assert.NoError(t, CheckReceipt(ctx, a, &Receipt{Success: true}))

	err := CheckReceipt(ctx, a, &Receipt{TransactionHash: ethtypes.MustNewHexBytes0xPrefix("0xaabb")})
	assert.Regexp(t, "VD010308.*0xaabb.*no revert data", err)
	assert.True(t, IsLedgerError(err))

	revertData, err := a.Errors()["SchemaNotFound"].EncodeCallDataValuesCtx(ctx, []any{"0x" + strings.Repeat("11", 32)})
	require.NoError(t, err)
	err = CheckReceipt(ctx, a, &Receipt{TransactionHash: ethtypes.MustNewHexBytes0xPrefix("0xaabb"), RevertData: revertData})
	assert.Regexp(t, "SchemaNotFound", err)
}
