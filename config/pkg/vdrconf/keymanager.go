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

package vdrconf

import "github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"

const (
	KeyStoreTypeFilesystem = "filesystem" // keystorev3 based filesystem storage
	KeyStoreTypeStatic     = "static"     // unencrypted keys in-line in the config
)

type KeyManagerConfig struct {
	KeyStore      KeyStoreConfig      `json:"keyStore"`
	KeyDerivation KeyDerivationConfig `json:"keyDerivation"`
}

type KeyStoreConfig struct {
	Type       string                   `json:"type"`
	FileSystem FileSystemKeyStoreConfig `json:"filesystem"`
	Static     StaticKeyStoreConfig     `json:"static"`
}

type KeyDerivationType string

const (
	// each key id maps to its own key material in the store
	KeyDerivationTypeDirect KeyDerivationType = "direct"
	// key ids starting "m/" are BIP32 paths derived from a seed held in the store
	KeyDerivationTypeBIP32 KeyDerivationType = "bip32"
)

type KeyDerivationConfig struct {
	Type        KeyDerivationType `json:"type"`
	SeedKeyID   *string           `json:"seedKey"`
	BIP44Prefix *string           `json:"bip44Prefix"`
}

var KeyDerivationDefaults = &KeyDerivationConfig{
	Type:        KeyDerivationTypeDirect,
	SeedKeyID:   confutil.P("seed"),
	BIP44Prefix: confutil.P("m/44'/60'"),
}

type StaticKeyEntryEncoding string

const (
	StaticKeyEntryEncodingNONE   StaticKeyEntryEncoding = "none"
	StaticKeyEntryEncodingHEX    StaticKeyEntryEncoding = "hex"
	StaticKeyEntryEncodingBase64 StaticKeyEntryEncoding = "base64"
)

type StaticKeyEntryConfig struct {
	Encoding StaticKeyEntryEncoding `json:"encoding"`
	Filename string                 `json:"filename"`
	Trim     bool                   `json:"trim"`
	Inline   string                 `json:"inline"`
	// key type, secp256k1 when empty
	Type string `json:"type"`
}

type StaticKeyStoreConfig struct {
	File string                          `json:"file,omitempty"`
	Keys map[string]StaticKeyEntryConfig `json:"keys"`
}

type FileSystemKeyStoreConfig struct {
	Path     *string     `json:"path"`
	Cache    CacheConfig `json:"cache"`
	FileMode *string     `json:"fileMode"`
	DirMode  *string     `json:"dirMode"`
}

var FileSystemDefaults = &FileSystemKeyStoreConfig{
	Path:     confutil.P("keystore"),
	FileMode: confutil.P("0600"),
	DirMode:  confutil.P("0700"),
	Cache: CacheConfig{
		Capacity: confutil.P(100),
	},
}
