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

package componentmgr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *vdrconf.VDRConfig {
	return &vdrconf.VDRConfig{
		Blockchain: vdrconf.EthClientConfig{
			HTTP:    vdrconf.HTTPClientConfig{URL: "http://localhost:8545"},
			ChainID: confutil.P(int64(1337)),
		},
		Contracts: vdrconf.ContractsConfig{
			DidRegistry:                  "0x0000000000000000000000000000000000003333",
			SchemaRegistry:               "0x0000000000000000000000000000000000005555",
			CredentialDefinitionRegistry: "0x0000000000000000000000000000000000004444",
		},
		KeyManager: vdrconf.KeyManagerConfig{
			KeyStore: vdrconf.KeyStoreConfig{
				Type: vdrconf.KeyStoreTypeStatic,
				Static: vdrconf.StaticKeyStoreConfig{
					Keys: map[string]vdrconf.StaticKeyEntryConfig{
						"endorser": {
							Encoding: vdrconf.StaticKeyEntryEncodingHEX,
							Inline:   "8f2a55949038a9610f50fb23b5883af3b4ecb3c3bb792cbcefbd1542c692be63",
						},
					},
				},
			},
		},
		Endorser: vdrconf.EndorserConfig{DefaultKeyID: "endorser"},
		DB: vdrconf.DBConfig{
			Type: "sqlite",
			SQLite: vdrconf.SQLiteConfig{
				SQLDBConfig: vdrconf.SQLDBConfig{
					DSN:           ":memory:",
					AutoMigrate:   confutil.P(true),
					MigrationsDir: "../../db/migrations/sqlite",
				},
			},
		},
		Startup: vdrconf.StartupConfig{
			BlockchainConnectRetry: vdrconf.RetryConfigWithMax{
				RetryConfig: vdrconf.RetryConfig{InitialDelay: confutil.P("1ms")},
				MaxAttempts: confutil.P(2),
			},
		},
	}
}

func TestInitOK(t *testing.T) {
	cm := NewComponentManager(context.Background(), testConfig())
	require.NoError(t, cm.Init())
	defer cm.Stop()

	assert.NotNil(t, cm.KeyManager())
	assert.NotNil(t, cm.Persistence())
	assert.NotNil(t, cm.Ledger())
	assert.NotNil(t, cm.DIDStore())
	assert.NotNil(t, cm.Metrics())
	assert.Equal(t, "did:indybesu:testnet:", cm.Registries().DIDMethod.Prefix())
	assert.Equal(t, "indybesu", cm.AnonCredsRegistry().MethodName())
	assert.Equal(t, "indybesu", cm.DIDRegistrar().MethodName())
}

func TestInitKeyManagerFail(t *testing.T) {
	conf := testConfig()
	conf.KeyManager.KeyStore.Type = "wrong"
	err := NewComponentManager(context.Background(), conf).Init()
	assert.Regexp(t, "VD010801.*VD010104", err)
}

func TestInitEthClientRetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","error":{"code":-32000,"message":"pop"}}`))
	}))
	defer server.Close()

	conf := testConfig()
	conf.Blockchain.HTTP.URL = server.URL
	conf.Blockchain.ChainID = nil
	err := NewComponentManager(context.Background(), conf).Init()
	assert.Regexp(t, "VD010800.*VD010201", err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInitRegistriesFail(t *testing.T) {
	conf := testConfig()
	conf.Contracts.SchemaRegistry = "wrong"
	err := NewComponentManager(context.Background(), conf).Init()
	assert.Regexp(t, "VD010803.*VD010005", err)
}

func TestInitDBFail(t *testing.T) {
	conf := testConfig()
	conf.DB.Type = "wrong"
	cm := NewComponentManager(context.Background(), conf)
	err := cm.Init()
	assert.Regexp(t, "VD010802.*VD010700", err)
	cm.Stop()
}
