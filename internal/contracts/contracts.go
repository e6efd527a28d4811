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
	"context"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ledger"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/vdrapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

type (
	DidRegistry                  = ResourceRegistry[*vdrapi.DidDocument]
	SchemaRegistry               = ResourceRegistry[*vdrapi.Schema]
	CredentialDefinitionRegistry = ResourceRegistry[*vdrapi.CredentialDefinition]
)

// Registries are the three registry contracts of one ledger deployment
type Registries struct {
	DIDMethod            *DIDMethod
	Did                  *DidRegistry
	Schema               *SchemaRegistry
	CredentialDefinition *CredentialDefinitionRegistry
}

func NewRegistries(ctx context.Context, lc ledger.Client, conf *vdrconf.ContractsConfig, didConf *vdrconf.DIDConfig) (*Registries, error) {
	didAddr, err := contractAddress(ctx, "didRegistry", conf.DidRegistry)
	if err != nil {
		return nil, err
	}
	schemaAddr, err := contractAddress(ctx, "schemaRegistry", conf.SchemaRegistry)
	if err != nil {
		return nil, err
	}
	credDefAddr, err := contractAddress(ctx, "credentialDefinitionRegistry", conf.CredentialDefinitionRegistry)
	if err != nil {
		return nil, err
	}
	m := NewDIDMethod(didConf)
	return &Registries{
		DIDMethod:            m,
		Did:                  NewResourceRegistry(lc, didAddr, DidKind(m)),
		Schema:               NewResourceRegistry(lc, schemaAddr, SchemaKind),
		CredentialDefinition: NewResourceRegistry(lc, credDefAddr, CredentialDefinitionKind),
	}, nil
}

func contractAddress(ctx context.Context, name, value string) (ethtypes.Address0xHex, error) {
	a, err := ethtypes.NewAddress(value)
	if err != nil {
		return ethtypes.Address0xHex{}, i18n.WrapError(ctx, err, msgs.MsgConfigInvalidAddress, name, value)
	}
	return *a, nil
}
