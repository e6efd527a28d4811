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

package contracts

import (
	_ "embed"
	"encoding/json"

	"github.com/hyperledger/firefly-signer/pkg/abi"
)

//go:embed abis/DidRegistry.json
var didRegistryJSON []byte
var didRegistryABI = mustParseEmbeddedABI(didRegistryJSON)

//go:embed abis/SchemaRegistry.json
var schemaRegistryJSON []byte
var schemaRegistryABI = mustParseEmbeddedABI(schemaRegistryJSON)

//go:embed abis/CredentialDefinitionRegistry.json
var credDefRegistryJSON []byte
var credDefRegistryABI = mustParseEmbeddedABI(credDefRegistryJSON)

func mustParseEmbeddedABI(b []byte) abi.ABI {
	var a abi.ABI
	if err := json.Unmarshal(b, &a); err != nil {
		panic(err)
	}
	return a
}
