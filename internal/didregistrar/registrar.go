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

package didregistrar

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/contracts"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/didstore"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/metrics"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/signer"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/kms"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ledger"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/vdrapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

const (
	VerificationMethodTypeSecp256k1 = "EcdsaSecp256k1VerificationKey2019"
	firstKeyFragment                = "#KEY-1"
)

// Registrar creates DIDs on the DID registry contract, and records the keys
// behind them in the local DID store once the ledger has confirmed the write.
type Registrar struct {
	regs            *contracts.Registries
	km              kms.KeyManager
	dids            didstore.Store
	defaultEndorser string
	metrics         metrics.VDRMetrics
}

func NewRegistrar(regs *contracts.Registries, km kms.KeyManager, dids didstore.Store, conf *vdrconf.EndorserConfig, m metrics.VDRMetrics) *Registrar {
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	return &Registrar{
		regs:            regs,
		km:              km,
		dids:            dids,
		defaultEndorser: conf.DefaultKeyID,
		metrics:         m,
	}
}

func (dr *Registrar) MethodName() string {
	return dr.regs.DIDMethod.Method
}

func withOperation(ctx context.Context, op string) context.Context {
	return log.WithLogField(ctx, "op", op+"-"+uuid.NewString()[:8])
}

func (dr *Registrar) failed(did, reason string) *vdrapi.DidResult {
	dr.metrics.RecordRegistration(dr.regs.Did.Kind(), metrics.OutcomeFailed)
	return &vdrapi.DidResult{
		DidState: vdrapi.DidState{
			State:  vdrapi.RegistrationFailed,
			Did:    did,
			Reason: reason,
		},
		DidRegistrationMetadata: map[string]any{},
		DidDocumentMetadata:     map[string]any{},
	}
}

// errored covers failures that are returned as errors rather than a failed state
func (dr *Registrar) errored(err error) (*vdrapi.DidResult, error) {
	dr.metrics.RecordRegistration(dr.regs.Did.Kind(), metrics.OutcomeError)
	return nil, err
}

func (dr *Registrar) endorserSigner(ctx context.Context, keyID string) (*signer.Signer, error) {
	if keyID == "" {
		keyID = dr.defaultEndorser
	}
	if keyID == "" {
		return nil, i18n.NewError(ctx, msgs.MsgAdapterNoEndorserKey)
	}
	return signer.New(ctx, keyID, dr.km)
}

func jwkRecord(jwk *kms.JWK) map[string]any {
	if jwk == nil {
		return nil
	}
	return map[string]any{
		"kty": jwk.Kty,
		"crv": jwk.Crv,
		"x":   jwk.X,
		"y":   jwk.Y,
	}
}

// BuildDidDocument assembles the document for a new DID controlled by a single key
func BuildDidDocument(did string, jwk *kms.JWK, services []vdrapi.Service) *vdrapi.DidDocument {
	vmID := did + firstKeyFragment
	doc := &vdrapi.DidDocument{
		Context: []string{vdrapi.DIDContextV1},
		ID:      did,
		VerificationMethod: []vdrapi.VerificationMethod{{
			ID:           vmID,
			Type:         VerificationMethodTypeSecp256k1,
			Controller:   did,
			PublicKeyJwk: jwkRecord(jwk),
		}},
		Authentication:  []string{vmID},
		AssertionMethod: []string{vmID},
	}
	for i, svc := range services {
		if svc.ID == "" {
			svc.ID = fmt.Sprintf("%s#service-%d", did, i+1)
		}
		doc.Service = append(doc.Service, svc)
	}
	return doc
}

// Create makes a new key, writes the DID anchored on its address through the
// endorsement flow, and only then imports the DID into the local store.
func (dr *Registrar) Create(ctx context.Context, opts *vdrapi.DidCreateOptions) (*vdrapi.DidResult, error) {
	ctx = withOperation(ctx, "createDid")
	keyType := kms.KeyType(opts.KeyType)
	if keyType == "" {
		keyType = kms.KeyTypeSecp256k1
	}
	if keyType != kms.KeyTypeSecp256k1 {
		err := i18n.NewError(ctx, msgs.MsgAdapterUnsupportedKeyType, keyType)
		return dr.failed("", string(vdrapi.ResolutionInvalid)+": "+err.Error()), nil
	}

	endorser, err := dr.endorserSigner(ctx, opts.EndorserKeyID)
	if err != nil {
		return dr.errored(err)
	}
	created, err := dr.km.CreateKey(ctx, &kms.KeySpec{Type: keyType, KeyID: opts.KeyID})
	if err != nil {
		return dr.errored(err)
	}
	identity, err := signer.New(ctx, created.KeyID, dr.km)
	if err != nil {
		return dr.errored(err)
	}

	did := dr.regs.DIDMethod.DID(identity.Address())
	ctx = log.WithLogField(ctx, "did", did)
	doc := BuildDidDocument(did, created.PublicJWK, opts.Services)

	_, receipt, err := dr.regs.Did.Endorse(ctx, doc, identity, endorser)
	if err != nil {
		if kms.IsKeyNotFound(err) || signer.IsSigningError(err) {
			return dr.errored(err)
		}
		log.L(ctx).Errorf("DID creation failed: %s", err)
		return dr.failed(did, string(vdrapi.ResolutionUnknownError)+": "+err.Error()), nil
	}

	if err := dr.dids.Import(ctx, &didstore.ImportRequest{
		DID:         did,
		DidDocument: doc,
		Keys:        []didstore.KeyBinding{{KeyID: created.KeyID, VerificationMethod: doc.VerificationMethod[0].ID}},
	}); err != nil {
		// the DID is on the ledger at this point, only the local binding is missing
		log.L(ctx).Errorf("DID written in transaction %s but local import failed: %s", receipt.TransactionHash, err)
		return dr.failed(did, string(vdrapi.ResolutionUnknownError)+": "+err.Error()), nil
	}

	log.L(ctx).Infof("Created DID %s with key %s in transaction %s", did, created.KeyID, receipt.TransactionHash)
	dr.metrics.RecordRegistration(dr.regs.Did.Kind(), metrics.OutcomeSuccess)
	return &vdrapi.DidResult{
		DidState: vdrapi.DidState{
			State:       vdrapi.RegistrationFinished,
			Did:         did,
			DidDocument: doc,
		},
		DidRegistrationMetadata: map[string]any{
			"transactionHash": receipt.TransactionHash.String(),
			"blockNumber":     receipt.BlockNumber,
			"keyId":           created.KeyID,
		},
		DidDocumentMetadata: map[string]any{},
	}, nil
}

// Update is not supported by the DID registry integration
func (dr *Registrar) Update(ctx context.Context, opts *vdrapi.DidUpdateOptions) *vdrapi.DidResult {
	ctx = withOperation(ctx, "updateDid")
	err := i18n.NewError(ctx, msgs.MsgAdapterNotImplemented, "DID update")
	log.L(ctx).Warnf("Rejected update of %s: %s", opts.Did, err)
	return dr.failed(opts.Did, "notImplemented: "+err.Error())
}

// Deactivate is not supported by the DID registry integration
func (dr *Registrar) Deactivate(ctx context.Context, opts *vdrapi.DidDeactivateOptions) *vdrapi.DidResult {
	ctx = withOperation(ctx, "deactivateDid")
	err := i18n.NewError(ctx, msgs.MsgAdapterNotImplemented, "DID deactivation")
	log.L(ctx).Warnf("Rejected deactivation of %s: %s", opts.Did, err)
	return dr.failed(opts.Did, "notImplemented: "+err.Error())
}

func (dr *Registrar) Resolve(ctx context.Context, did string) *vdrapi.DidResolutionResult {
	ctx = withOperation(ctx, "resolveDid")
	result := &vdrapi.DidResolutionResult{DidDocumentMetadata: map[string]any{}}
	outcome := metrics.OutcomeSuccess
	doc, err := dr.regs.Did.Resolve(ctx, did)
	switch {
	case err == nil:
		result.DidDocument = doc
	case ledger.IsNotFound(err):
		outcome = metrics.OutcomeNotFound
		result.DidResolutionMetadata = vdrapi.ResolutionMetadata{Error: vdrapi.ResolutionNotFound, Message: err.Error()}
	case ledger.IsLedgerError(err):
		outcome = metrics.OutcomeError
		result.DidResolutionMetadata = vdrapi.ResolutionMetadata{Error: vdrapi.ResolutionUnknownError, Message: err.Error()}
	default:
		// not a DID of this method, or a document that cannot be mapped
		outcome = metrics.OutcomeError
		code := vdrapi.ResolutionUnknownError
		if _, addrErr := dr.regs.DIDMethod.Address(ctx, did); addrErr != nil {
			code = vdrapi.ResolutionInvalid
		}
		result.DidResolutionMetadata = vdrapi.ResolutionMetadata{Error: code, Message: err.Error()}
	}
	if err != nil {
		log.L(ctx).Errorf("Failed to resolve DID %s: %s", did, err)
	}
	dr.metrics.RecordResolution(dr.regs.Did.Kind(), outcome)
	return result
}
