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
	"crypto/rand"

	"github.com/google/uuid"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
)

type keyManager struct {
	store keyStore
	hd    *hdDerivation
}

func NewKeyManager(ctx context.Context, conf *vdrconf.KeyManagerConfig) (_ KeyManager, err error) {
	km := &keyManager{}
	switch conf.KeyStore.Type {
	case vdrconf.KeyStoreTypeFilesystem, "":
		km.store, err = newFilesystemStore(ctx, &conf.KeyStore.FileSystem)
	case vdrconf.KeyStoreTypeStatic:
		km.store, err = newStaticStore(ctx, &conf.KeyStore.Static)
	default:
		err = i18n.NewError(ctx, msgs.MsgKMSBadKeyStoreType, conf.KeyStore.Type)
	}
	if err != nil {
		return nil, err
	}
	if conf.KeyDerivation.Type == vdrconf.KeyDerivationTypeBIP32 {
		seedKeyID := confutil.StringNotEmpty(conf.KeyDerivation.SeedKeyID, *vdrconf.KeyDerivationDefaults.SeedKeyID)
		seed, err := km.store.LoadKey(ctx, seedKeyID)
		if err != nil {
			return nil, err
		}
		km.hd, err = newHDDerivation(ctx, seed.material,
			confutil.StringNotEmpty(conf.KeyDerivation.BIP44Prefix, *vdrconf.KeyDerivationDefaults.BIP44Prefix))
		if err != nil {
			return nil, err
		}
	}
	return km, nil
}

func (km *keyManager) loadKey(ctx context.Context, keyID string) (*keyEntry, error) {
	if keyID == "" {
		return nil, i18n.NewError(ctx, msgs.MsgKMSBadKeyID, keyID)
	}
	if isDerivationPath(keyID) {
		if km.hd == nil {
			return nil, i18n.NewError(ctx, msgs.MsgKMSHDNotEnabled, keyID)
		}
		privateKey, err := km.hd.loadPrivateKey(ctx, keyID)
		if err != nil {
			return nil, err
		}
		return &keyEntry{material: privateKey, keyType: KeyTypeSecp256k1}, nil
	}
	return km.store.LoadKey(ctx, keyID)
}

func (km *keyManager) GetPublicKey(ctx context.Context, keyID string) (*PublicKey, error) {
	key, err := km.loadKey(ctx, keyID)
	if err != nil {
		return nil, err
	}
	pk := &PublicKey{KeyID: keyID, Type: key.keyType}
	if key.keyType == KeyTypeSecp256k1 {
		if len(key.material) != 32 {
			return nil, i18n.NewError(ctx, msgs.MsgKMSInvalidPrivateKey, keyID)
		}
		pk.Bytes = secp256k1.KeyPairFromBytes(key.material).PublicKey.SerializeUncompressed()
	}
	return pk, nil
}

func (km *keyManager) Sign(ctx context.Context, req *SignRequest) ([]byte, error) {
	key, err := km.loadKey(ctx, req.KeyID)
	if err != nil {
		return nil, err
	}
	if req.Algorithm != AlgorithmECDSASecp256k1 || key.keyType != KeyTypeSecp256k1 {
		return nil, i18n.NewError(ctx, msgs.MsgKMSUnsupportedAlgorithm, req.Algorithm, req.KeyID)
	}
	if len(req.Data) == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgKMSEmptyPayload)
	}
	if len(key.material) != 32 {
		return nil, i18n.NewError(ctx, msgs.MsgKMSInvalidPrivateKey, req.KeyID)
	}
	sig, err := secp256k1.KeyPairFromBytes(key.material).SignDirect(req.Data)
	if err != nil {
		return nil, err
	}
	return sig.CompactRSV(), nil
}

func (km *keyManager) CreateKey(ctx context.Context, spec *KeySpec) (*CreatedKey, error) {
	if spec.Type != KeyTypeSecp256k1 {
		return nil, i18n.NewError(ctx, msgs.MsgKMSUnsupportedKeyType, spec.Type)
	}
	keyID := spec.KeyID
	if keyID == "" {
		keyID = uuid.NewString()
	}
	privateKey := make([]byte, 32)
	if _, err := rand.Read(privateKey); err != nil {
		return nil, err
	}
	kp := secp256k1.KeyPairFromBytes(privateKey)
	if err := km.store.StoreKey(ctx, keyID, kp.PrivateKeyBytes()); err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Created %s key %s", spec.Type, keyID)
	return &CreatedKey{
		KeyID:     keyID,
		PublicJWK: Secp256k1JWK(kp.PublicKey),
	}, nil
}
