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
	"fmt"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/mapping"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ledger"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/vdrapi"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

func CredentialDefinitionID(issuerID, schemaID, tag string) string {
	return fmt.Sprintf("%s/anoncreds/v0/CLAIM_DEF/%s/%s", issuerID, schemaID, tag)
}

func credDefID(ctx context.Context, cd *vdrapi.CredentialDefinition) (string, error) {
	switch {
	case cd == nil:
		return "", invalid(ctx, "credential definition", "missing")
	case cd.IssuerID == "":
		return "", invalid(ctx, "credential definition", "issuerId is required")
	case cd.SchemaID == "":
		return "", invalid(ctx, "credential definition", "schemaId is required")
	case cd.Tag == "":
		return "", invalid(ctx, "credential definition", "tag is required")
	case cd.Type != vdrapi.CredentialDefinitionTypeCL:
		return "", invalid(ctx, "credential definition", fmt.Sprintf("unsupported type '%s'", cd.Type))
	case len(cd.Value) == 0:
		return "", invalid(ctx, "credential definition", "value is required")
	}
	return CredentialDefinitionID(cd.IssuerID, cd.SchemaID, cd.Tag), nil
}

var CredentialDefinitionKind = &ResourceKind[*vdrapi.CredentialDefinition]{
	Name:          "credential definition",
	ABI:           credDefRegistryABI,
	CreateMethod:  "createCredentialDefinition",
	ResolveMethod: "resolveCredentialDefinition",
	DocumentPath:  []string{"credDefRecord", "data"},
	ID:            credDefID,
	WriteParams: func(ctx context.Context, id string, _ ethtypes.Address0xHex, cd *vdrapi.CredentialDefinition) ([]ledger.Param, error) {
		doc, err := mapping.EncodeDocument(ctx, "credential definition", cd)
		if err != nil {
			return nil, err
		}
		return []ledger.Param{
			{Name: "id", Type: ledger.ParamBytes32, Value: onChainID(id)},
			{Name: "schemaId", Type: ledger.ParamBytes32, Value: onChainID(cd.SchemaID)},
			{Name: "credDef", Type: ledger.ParamBytes, Value: doc},
		}, nil
	},
	ResolveParams: func(ctx context.Context, id string) ([]ledger.Param, error) {
		return []ledger.Param{{Name: "id", Type: ledger.ParamBytes32, Value: onChainID(id)}}, nil
	},
	Decode: mapping.DecodeCredentialDefinition,
}
