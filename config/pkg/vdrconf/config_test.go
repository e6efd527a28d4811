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

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAndParseYAMLFile(t *testing.T) {
	ctx := context.Background()
	f := path.Join(t.TempDir(), "vdr.yaml")
	err := os.WriteFile(f, []byte(`
log:
  level: debug
blockchain:
  http:
    url: http://localhost:8545
  chainId: 1337
  gasLimit: "5000000"
contracts:
  didRegistry: "0x0000000000000000000000000000000000003333"
  schemaRegistry: "0x0000000000000000000000000000000000005555"
  credentialDefinitionRegistry: "0x0000000000000000000000000000000000004444"
did:
  network: localnet
keyManager:
  keyStore:
    type: static
    static:
      keys:
        endorser:
          encoding: hex
          inline: "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
endorser:
  defaultKeyId: endorser
db:
  type: sqlite
  sqlite:
    dsn: ":memory:"
`), 0600)
	require.NoError(t, err)

	var conf VDRConfig
	err = ReadAndParseYAMLFile(ctx, f, &conf)
	require.NoError(t, err)
	assert.Equal(t, "debug", *conf.Log.Level)
	assert.Equal(t, "http://localhost:8545", conf.Blockchain.HTTP.URL)
	assert.Equal(t, int64(1337), *conf.Blockchain.ChainID)
	assert.Equal(t, "0x0000000000000000000000000000000000005555", conf.Contracts.SchemaRegistry)
	assert.Equal(t, "localnet", *conf.DID.Network)
	assert.Nil(t, conf.DID.Method)
	assert.Equal(t, StaticKeyEntryEncodingHEX, conf.KeyManager.KeyStore.Static.Keys["endorser"].Encoding)
	assert.Equal(t, "endorser", conf.Endorser.DefaultKeyID)
	assert.Equal(t, ":memory:", conf.DB.SQLite.DSN)
}

func TestReadAndParseYAMLFileMissing(t *testing.T) {
	var conf VDRConfig
	err := ReadAndParseYAMLFile(context.Background(), path.Join(t.TempDir(), "missing.yaml"), &conf)
	assert.Regexp(t, "VD010001", err)
}

func TestReadAndParseYAMLFileBadYAML(t *testing.T) {
	f := path.Join(t.TempDir(), "bad.yaml")
	err := os.WriteFile(f, []byte(`{!!!`), 0600)
	require.NoError(t, err)
	var conf VDRConfig
	err = ReadAndParseYAMLFile(context.Background(), f, &conf)
	assert.Regexp(t, "VD010003", err)
}
