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
	"strings"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/endorsement"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/mapping"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ledger"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// ResourceKind describes how one resource type maps onto its registry contract
type ResourceKind[R any] struct {
	Name          string
	ABI           abi.ABI
	CreateMethod  string
	ResolveMethod string
	// path of the bytes field in the resolve output holding the JSON document
	DocumentPath []string
	// ID is pure, the id is known before anything is submitted
	ID            func(ctx context.Context, r R) (string, error)
	WriteParams   func(ctx context.Context, id string, identity ethtypes.Address0xHex, r R) ([]ledger.Param, error)
	ResolveParams func(ctx context.Context, id string) ([]ledger.Param, error)
	Decode        func(ctx context.Context, record map[string]any) (R, error)
}

// ResourceRegistry is the generic wrapper over one registry contract
type ResourceRegistry[R any] struct {
	lc      ledger.Client
	address ethtypes.Address0xHex
	kind    *ResourceKind[R]
}

func NewResourceRegistry[R any](lc ledger.Client, address ethtypes.Address0xHex, kind *ResourceKind[R]) *ResourceRegistry[R] {
	return &ResourceRegistry[R]{
		lc:      lc,
		address: address,
		kind:    kind,
	}
}

func (rr *ResourceRegistry[R]) Kind() string {
	return rr.kind.Name
}

func (rr *ResourceRegistry[R]) Address() ethtypes.Address0xHex {
	return rr.address
}

func (rr *ResourceRegistry[R]) ID(ctx context.Context, r R) (string, error) {
	return rr.kind.ID(ctx, r)
}

func (rr *ResourceRegistry[R]) operation(ctx context.Context, r R, identity ethtypes.Address0xHex) (string, *ledger.Operation, error) {
	id, err := rr.kind.ID(ctx, r)
	if err != nil {
		return "", nil, err
	}
	params, err := rr.kind.WriteParams(ctx, id, identity, r)
	if err != nil {
		return "", nil, err
	}
	return id, &ledger.Operation{
		Contract: rr.address,
		ABI:      rr.kind.ABI,
		Method:   rr.kind.CreateMethod,
		Identity: identity,
		Params:   params,
	}, nil
}

// Create writes the resource in a transaction signed and paid for by the identity itself
func (rr *ResourceRegistry[R]) Create(ctx context.Context, r R, s endorsement.Signer) (string, *ledger.Receipt, error) {
	if s == nil {
		return "", nil, i18n.NewError(ctx, msgs.MsgContractsNoSigner)
	}
	id, op, err := rr.operation(ctx, r, s.Address())
	if err != nil {
		return "", nil, err
	}
	ctx = log.WithLogField(ctx, rr.kind.Name, id)
	tx, err := rr.lc.BuildTransaction(ctx, op, s.Address())
	if err != nil {
		return id, nil, err
	}
	if err := endorsement.SignTransaction(ctx, tx, s); err != nil {
		return id, nil, err
	}
	receipt, err := endorsement.SubmitAndWait(ctx, rr.lc, tx)
	return id, receipt, err
}

// BuildEndorsement starts the two phase write for the given identity
func (rr *ResourceRegistry[R]) BuildEndorsement(ctx context.Context, r R, identity ethtypes.Address0xHex) (*endorsement.Flow, error) {
	id, op, err := rr.operation(ctx, r, identity)
	if err != nil {
		return nil, err
	}
	return endorsement.NewFlow(ctx, rr.lc, id, op)
}

// Endorse runs the whole endorsement flow: the identity signs first, then the
// endorser builds, signs and submits the transaction carrying that signature.
func (rr *ResourceRegistry[R]) Endorse(ctx context.Context, r R, identity, endorser endorsement.Signer) (string, *ledger.Receipt, error) {
	if identity == nil || endorser == nil {
		return "", nil, i18n.NewError(ctx, msgs.MsgContractsNoSigner)
	}
	flow, err := rr.BuildEndorsement(ctx, r, identity.Address())
	if err != nil {
		return "", nil, err
	}
	ctx = log.WithLogField(ctx, rr.kind.Name, flow.ResourceID())
	if err := flow.SignAsIdentity(ctx, identity); err != nil {
		return flow.ResourceID(), nil, err
	}
	receipt, err := flow.SubmitAsEndorser(ctx, endorser)
	return flow.ResourceID(), receipt, err
}

// Resolve reads the resource. A missing id gives a ledger.NotFoundError, a
// communication failure a ledger.LedgerError, a malformed record a mapping error.
func (rr *ResourceRegistry[R]) Resolve(ctx context.Context, id string) (R, error) {
	var empty R
	params, err := rr.kind.ResolveParams(ctx, id)
	if err != nil {
		return empty, err
	}
	container, err := rr.lc.Resolve(ctx, &ledger.Query{
		Contract:      rr.address,
		ABI:           rr.kind.ABI,
		Method:        rr.kind.ResolveMethod,
		Params:        params,
		DocumentPaths: []string{strings.Join(rr.kind.DocumentPath, ".")},
	})
	if err != nil {
		if ledger.IsNotFound(err) {
			return empty, ledger.NewNotFoundError(ctx, id)
		}
		return empty, err
	}
	record, err := mapping.Field(ctx, rr.kind.Name, mapping.ToRecord(container), rr.kind.DocumentPath...)
	if err != nil {
		return empty, err
	}
	return rr.kind.Decode(ctx, record)
}

// onChainID is the bytes32 storage key of a schema or credential definition
func onChainID(id string) []byte {
	return ledger.Keccak256([]byte(id))
}

func invalid(ctx context.Context, kind, reason string) error {
	return i18n.NewError(ctx, msgs.MsgContractsInvalidResource, kind, reason)
}
