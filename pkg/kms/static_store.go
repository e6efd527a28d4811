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
	"encoding/base64"
	"encoding/hex"
	"os"
	"strings"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"sigs.k8s.io/yaml"
)

type keyEntry struct {
	material []byte
	keyType  KeyType
}

type keyStore interface {
	LoadKey(ctx context.Context, keyID string) (*keyEntry, error)
	StoreKey(ctx context.Context, keyID string, material []byte) error
}

type staticStore struct {
	keys map[string]*keyEntry
}

// Unencrypted keys from config, inline or in files, with none/hex/base64 encoding.
// Keys in files allow a mounted secret (such as a BIP39 seed phrase) to be used.
func newStaticStore(ctx context.Context, conf *vdrconf.StaticKeyStoreConfig) (_ *staticStore, err error) {
	keyMap := make(map[string]vdrconf.StaticKeyEntryConfig)
	for k, v := range conf.Keys {
		keyMap[k] = v
	}
	if conf.File != "" {
		if err = loadStaticKeyFile(ctx, conf.File, keyMap); err != nil {
			return nil, err
		}
	}
	ss := &staticStore{keys: make(map[string]*keyEntry)}
	for keyID, keyEntryConf := range keyMap {
		var keyData []byte
		if keyEntryConf.Filename != "" {
			if keyData, err = os.ReadFile(keyEntryConf.Filename); err != nil {
				log.L(ctx).Errorf("Failed to load file %s: %s", keyEntryConf.Filename, err)
				return nil, i18n.NewError(ctx, msgs.MsgKMSStaticKeyInvalid, keyID)
			}
		} else if keyEntryConf.Inline != "" {
			keyData = []byte(keyEntryConf.Inline)
		}
		if len(keyData) > 0 && keyEntryConf.Trim {
			keyData = []byte(strings.TrimSpace(string(keyData)))
		}
		if len(keyData) == 0 {
			return nil, i18n.NewError(ctx, msgs.MsgKMSStaticKeyInvalid, keyID)
		}
		switch keyEntryConf.Encoding {
		case vdrconf.StaticKeyEntryEncodingNONE, "":
		case vdrconf.StaticKeyEntryEncodingHEX:
			if keyData, err = hex.DecodeString(strings.TrimPrefix(string(keyData), "0x")); err != nil {
				return nil, i18n.NewError(ctx, msgs.MsgKMSStaticKeyInvalid, keyID)
			}
		case vdrconf.StaticKeyEntryEncodingBase64:
			if keyData, err = base64.StdEncoding.DecodeString(string(keyData)); err != nil {
				return nil, i18n.NewError(ctx, msgs.MsgKMSStaticKeyInvalid, keyID)
			}
		default:
			return nil, i18n.NewError(ctx, msgs.MsgKMSStaticBadEncoding, keyID, keyEntryConf.Encoding)
		}
		keyType := KeyType(keyEntryConf.Type)
		switch keyType {
		case "":
			keyType = KeyTypeSecp256k1
		case KeyTypeSecp256k1, KeyTypeSymmetric:
		default:
			return nil, i18n.NewError(ctx, msgs.MsgKMSUnsupportedKeyType, keyEntryConf.Type)
		}
		ss.keys[keyID] = &keyEntry{material: keyData, keyType: keyType}
	}
	return ss, nil
}

func loadStaticKeyFile(ctx context.Context, filename string, keyMap map[string]vdrconf.StaticKeyEntryConfig) error {
	var fileKeyMap map[string]vdrconf.StaticKeyEntryConfig
	b, err := os.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(b, &fileKeyMap)
	}
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgKMSStaticKeyFileLoad)
	}
	for k, v := range fileKeyMap {
		keyMap[k] = v
	}
	return nil
}

func (ss *staticStore) LoadKey(ctx context.Context, keyID string) (*keyEntry, error) {
	log.L(ctx).Debugf("Resolving static key %s", keyID)
	key, ok := ss.keys[keyID]
	if !ok {
		return nil, NewKeyNotFoundError(ctx, keyID)
	}
	return key, nil
}

func (ss *staticStore) StoreKey(ctx context.Context, keyID string, material []byte) error {
	return i18n.NewError(ctx, msgs.MsgKMSReadOnlyStore, vdrconf.KeyStoreTypeStatic)
}
