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
	"strings"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/mapping"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ledger"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/vdrapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// DIDMethod identifies DIDs of the form did:<method>:<network>:<address>
type DIDMethod struct {
	Method  string
	Network string
}

func NewDIDMethod(conf *vdrconf.DIDConfig) *DIDMethod {
	return &DIDMethod{
		Method:  confutil.StringNotEmpty(conf.Method, *vdrconf.DIDDefaults.Method),
		Network: confutil.StringNotEmpty(conf.Network, *vdrconf.DIDDefaults.Network),
	}
}

func (m *DIDMethod) Prefix() string {
	return fmt.Sprintf("did:%s:%s:", m.Method, m.Network)
}

func (m *DIDMethod) DID(address ethtypes.Address0xHex) string {
	return m.Prefix() + address.String()
}

// Address extracts the identity address a DID is anchored on
func (m *DIDMethod) Address(ctx context.Context, did string) (ethtypes.Address0xHex, error) {
	var address ethtypes.Address0xHex
	if !strings.HasPrefix(did, m.Prefix()) {
		return address, i18n.NewError(ctx, msgs.MsgContractsNotDidIdentifier, did, m.Method, m.Network)
	}
	a, err := ethtypes.NewAddress(strings.TrimPrefix(did, m.Prefix()))
	if err != nil {
		return address, i18n.WrapError(ctx, err, msgs.MsgContractsNotDidIdentifier, did, m.Method, m.Network)
	}
	return *a, nil
}

// DidKind stores DID documents keyed by the identity address in the DID
func DidKind(m *DIDMethod) *ResourceKind[*vdrapi.DidDocument] {
	return &ResourceKind[*vdrapi.DidDocument]{
		Name:          "DID",
		ABI:           didRegistryABI,
		CreateMethod:  "createDid",
		ResolveMethod: "resolveDid",
		DocumentPath:  []string{"didRecord", "document"},
		ID: func(ctx context.Context, doc *vdrapi.DidDocument) (string, error) {
			if doc == nil {
				return "", invalid(ctx, "DID document", "missing")
			}
			if _, err := m.Address(ctx, doc.ID); err != nil {
				return "", err
			}
			if len(doc.VerificationMethod) == 0 {
				return "", invalid(ctx, "DID document", "at least one verification method is required")
			}
			return doc.ID, nil
		},
		WriteParams: func(ctx context.Context, did string, identity ethtypes.Address0xHex, doc *vdrapi.DidDocument) ([]ledger.Param, error) {
			address, err := m.Address(ctx, did)
			if err != nil {
				return nil, err
			}
			if address != identity {
				return nil, invalid(ctx, "DID document", fmt.Sprintf("identity %s does not own %s", identity, did))
			}
			encoded, err := mapping.EncodeDocument(ctx, "DID document", doc)
			if err != nil {
				return nil, err
			}
			return []ledger.Param{{Name: "document", Type: ledger.ParamBytes, Value: encoded}}, nil
		},
		ResolveParams: func(ctx context.Context, did string) ([]ledger.Param, error) {
			address, err := m.Address(ctx, did)
			if err != nil {
				return nil, err
			}
			return []ledger.Param{{Name: "identity", Type: ledger.ParamAddress, Value: address[:]}}, nil
		},
		Decode: mapping.DecodeDidDocument,
	}
}
