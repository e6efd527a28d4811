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

type EthTXVersion string

const (
	TXVersionLegacyEIP155 EthTXVersion = "legacy_eip155"
	TXVersionEIP1559      EthTXVersion = "eip1559"
)

// Fees are fixed from configuration, there is no estimation.
type EthClientConfig struct {
	HTTP      HTTPClientConfig   `json:"http"`
	ChainID   *int64             `json:"chainId"` // queried with eth_chainId when unset
	TXVersion EthTXVersion       `json:"txVersion"`
	GasLimit  *string            `json:"gasLimit"`
	GasPrice  *string            `json:"gasPrice"`
	Receipts  RetryConfigWithMax `json:"receipts"`
}

var EthClientDefaults = &EthClientConfig{
	TXVersion: TXVersionLegacyEIP155,
	GasLimit:  confutil.P("10000000"),
	GasPrice:  confutil.P("0"),
	Receipts: RetryConfigWithMax{
		RetryConfig: RetryConfig{
			InitialDelay: confutil.P("250ms"),
			MaxDelay:     confutil.P("2s"),
			Factor:       confutil.P(2.0),
		},
		MaxAttempts: confutil.P(60),
	},
}

// Addresses of the registry contracts on one network. Each adapter instance
// receives its own copy, so several networks can be served in one process.
type ContractsConfig struct {
	DidRegistry                  string `json:"didRegistry"`
	SchemaRegistry               string `json:"schemaRegistry"`
	CredentialDefinitionRegistry string `json:"credentialDefinitionRegistry"`
}

type DIDConfig struct {
	Method  *string `json:"method"`
	Network *string `json:"network"`
}

var DIDDefaults = &DIDConfig{
	Method:  confutil.P("indybesu"),
	Network: confutil.P("testnet"),
}

type EndorserConfig struct {
	// key used to pay for writes when the request does not name one
	DefaultKeyID string `json:"defaultKeyId"`
}
