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

func SchemaID(issuerID, name, version string) string {
	return fmt.Sprintf("%s/anoncreds/v0/SCHEMA/%s/%s", issuerID, name, version)
}

func schemaID(ctx context.Context, s *vdrapi.Schema) (string, error) {
	switch {
	case s == nil:
		return "", invalid(ctx, "schema", "missing")
	case s.IssuerID == "":
		return "", invalid(ctx, "schema", "issuerId is required")
	case s.Name == "":
		return "", invalid(ctx, "schema", "name is required")
	case s.Version == "":
		return "", invalid(ctx, "schema", "version is required")
	case len(s.AttrNames) == 0:
		return "", invalid(ctx, "schema", "attrNames must not be empty")
	}
	return SchemaID(s.IssuerID, s.Name, s.Version), nil
}

var SchemaKind = &ResourceKind[*vdrapi.Schema]{
	Name:          "schema",
	ABI:           schemaRegistryABI,
	CreateMethod:  "createSchema",
	ResolveMethod: "resolveSchema",
	DocumentPath:  []string{"schemaRecord", "data"},
	ID:            schemaID,
	WriteParams: func(ctx context.Context, id string, _ ethtypes.Address0xHex, s *vdrapi.Schema) ([]ledger.Param, error) {
		doc, err := mapping.EncodeDocument(ctx, "schema", s)
		if err != nil {
			return nil, err
		}
		return []ledger.Param{
			{Name: "id", Type: ledger.ParamBytes32, Value: onChainID(id)},
			{Name: "schema", Type: ledger.ParamBytes, Value: doc},
		}, nil
	},
	ResolveParams: func(ctx context.Context, id string) ([]ledger.Param, error) {
		return []ledger.Param{{Name: "id", Type: ledger.ParamBytes32, Value: onChainID(id)}}, nil
	},
	Decode: mapping.DecodeSchema,
}
