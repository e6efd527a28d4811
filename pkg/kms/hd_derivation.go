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

package kms

import (
	"context"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/tyler-smith/go-bip39"
)

type hdDerivation struct {
	bip44Prefix string
	hdKeyChain  *hdkeychain.ExtendedKey
}

func isDerivationPath(keyID string) bool {
	return strings.HasPrefix(keyID, "m/")
}

// The seed is either 32 bytes of entropy, or a BIP39 mnemonic.
func newHDDerivation(ctx context.Context, seed []byte, bip44Prefix string) (*hdDerivation, error) {
	if len(seed) != 32 {
		var err error
		seed, err = bip39.NewSeedWithErrorChecking(string(seed), "")
		if err != nil {
			return nil, i18n.NewError(ctx, msgs.MsgKMSHDSeedInvalid)
		}
	}
	hdKeyChain, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgKMSHDSeedInvalid)
	}
	return &hdDerivation{
		bip44Prefix: strings.ReplaceAll(bip44Prefix, " ", ""),
		hdKeyChain:  hdKeyChain,
	}, nil
}

// Accepts either a full path ("m/44'/60'/0'/0/1") or, for key ids that are
// bare index lists ("0'/0/1"), a path under the configured BIP44 prefix.
func (hd *hdDerivation) fullPath(keyID string) string {
	if isDerivationPath(keyID) {
		return keyID
	}
	return hd.bip44Prefix + "/" + keyID
}

func (hd *hdDerivation) loadPrivateKey(ctx context.Context, keyID string) ([]byte, error) {
	segments := strings.Split(hd.fullPath(keyID), "/")
	if len(segments) < 2 || segments[0] != "m" {
		return nil, i18n.NewError(ctx, msgs.MsgKMSBIP32DerivationInvalid, keyID)
	}
	pos := hd.hdKeyChain
	for _, s := range segments[1:] {
		number, isHardened := strings.CutSuffix(s, "'")
		derivation, err := strconv.ParseUint(number, 10, 64)
		if err == nil {
			if derivation >= 0x80000000 {
				return nil, i18n.NewError(ctx, msgs.MsgKMSBIP32DerivationTooLarge, derivation)
			}
			if isHardened {
				derivation += 0x80000000
			}
			pos, err = pos.Derive(uint32(derivation))
		}
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgKMSBIP32DerivationInvalid, s)
		}
	}
	ecPrivKey, err := pos.ECPrivKey()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgKMSBIP32DerivationInvalid, keyID)
	}
	pkBytes := ecPrivKey.Key.Bytes()
	return pkBytes[:], nil
}
