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

package signer

import (
	"context"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/kms"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"golang.org/x/crypto/sha3"
)

// Signer binds one managed asymmetric key to its ledger address.
// The address is derived on every New, so a rotated key gets a fresh address.
type Signer struct {
	keyID   string
	address ethtypes.Address0xHex
	km      kms.KeyManager
}

// SigningError wraps a key-store failure during Sign
type SigningError struct {
	KeyID string
	err   error
}

func (e *SigningError) Error() string {
	return e.err.Error()
}

func (e *SigningError) Unwrap() error {
	return e.err
}

func IsSigningError(err error) bool {
	var se *SigningError
	return errors.As(err, &se)
}

func New(ctx context.Context, keyID string, km kms.KeyManager) (*Signer, error) {
	pk, err := km.GetPublicKey(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if !pk.Type.IsAsymmetric() {
		return nil, i18n.NewError(ctx, msgs.MsgSignerKeyNotAsymmetric, keyID, pk.Type)
	}
	address, err := AddressFromPublicKey(pk.Bytes)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgSignerInvalidPublicKey, keyID)
	}
	log.L(ctx).Debugf("Signer %s resolved to %s", keyID, address)
	return &Signer{keyID: keyID, address: address, km: km}, nil
}

// AddressFromPublicKey accepts compressed or uncompressed secp256k1 points
func AddressFromPublicKey(pubKey []byte) (ethtypes.Address0xHex, error) {
	var address ethtypes.Address0xHex
	pk, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return address, err
	}
	hash := sha3.NewLegacyKeccak256()
	_, _ = hash.Write(pk.SerializeUncompressed()[1:])
	copy(address[:], hash.Sum(nil)[12:32])
	return address, nil
}

func (s *Signer) KeyID() string {
	return s.keyID
}

func (s *Signer) Address() ethtypes.Address0xHex {
	return s.address
}

// Sign returns a 65 byte compact R||S||V signature over the supplied digest
func (s *Signer) Sign(ctx context.Context, data []byte) ([]byte, error) {
	sig, err := s.km.Sign(ctx, &kms.SignRequest{
		KeyID:     s.keyID,
		Algorithm: kms.AlgorithmECDSASecp256k1,
		Data:      data,
	})
	if err != nil {
		if kms.IsKeyNotFound(err) {
			return nil, err
		}
		return nil, &SigningError{KeyID: s.keyID, err: i18n.WrapError(ctx, err, msgs.MsgSignerSigningFailed, s.keyID)}
	}
	if len(sig) != 65 {
		return nil, &SigningError{KeyID: s.keyID, err: i18n.NewError(ctx, msgs.MsgSignerInvalidSignatureLength, s.keyID, len(sig))}
	}
	return sig, nil
}
