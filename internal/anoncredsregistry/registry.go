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

package anoncredsregistry

import (
	"context"
	"regexp"

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

// Registry is the AnonCreds registry surface over the schema and credential
// definition registry contracts. Ledger outcomes are reported in the results,
// only key and configuration problems are returned as errors.
type Registry struct {
	regs            *contracts.Registries
	km              kms.KeyManager
	dids            didstore.Store
	defaultEndorser string
	metrics         metrics.VDRMetrics
	supported       *regexp.Regexp
}

// NewRegistry builds the registry. The DID store is optional, without it every
// registration must name its identity key.
func NewRegistry(regs *contracts.Registries, km kms.KeyManager, dids didstore.Store, conf *vdrconf.EndorserConfig, m metrics.VDRMetrics) *Registry {
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	return &Registry{
		regs:            regs,
		km:              km,
		dids:            dids,
		defaultEndorser: conf.DefaultKeyID,
		metrics:         m,
		supported:       regexp.MustCompile("^" + regexp.QuoteMeta(regs.DIDMethod.Prefix())),
	}
}

func (r *Registry) MethodName() string {
	return r.regs.DIDMethod.Method
}

// SupportedIdentifier matches the issuer DIDs, and the resource ids derived from them
func (r *Registry) SupportedIdentifier() *regexp.Regexp {
	return r.supported
}

func withOperation(ctx context.Context, op string) context.Context {
	return log.WithLogField(ctx, "op", op+"-"+uuid.NewString()[:8])
}

// isKeyError identifies failures that are returned as errors, not results
func isKeyError(err error) bool {
	return kms.IsKeyNotFound(err) || signer.IsSigningError(err)
}

func resolutionMetadata(err error) vdrapi.ResolutionMetadata {
	code := vdrapi.ResolutionUnknownError
	if ledger.IsNotFound(err) {
		code = vdrapi.ResolutionNotFound
	}
	return vdrapi.ResolutionMetadata{Error: code, Message: err.Error()}
}

func outcome(rm vdrapi.ResolutionMetadata) string {
	switch rm.Error {
	case "":
		return metrics.OutcomeSuccess
	case vdrapi.ResolutionNotFound:
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}

func failedReason(err error) string {
	return string(vdrapi.ResolutionUnknownError) + ": " + err.Error()
}

func receiptMetadata(receipt *ledger.Receipt) map[string]any {
	md := map[string]any{}
	if receipt != nil {
		md["transactionHash"] = receipt.TransactionHash.String()
		md["blockNumber"] = receipt.BlockNumber
	}
	return md
}

func (r *Registry) identitySigner(ctx context.Context, issuerID, keyID string) (*signer.Signer, error) {
	if keyID == "" {
		if r.dids == nil {
			return nil, i18n.NewError(ctx, msgs.MsgAdapterNoIdentityKey, issuerID)
		}
		record, err := r.dids.Resolve(ctx, issuerID)
		if err != nil {
			if didstore.IsNotFound(err) {
				return nil, i18n.WrapError(ctx, err, msgs.MsgAdapterNoIdentityKey, issuerID)
			}
			return nil, err
		}
		if len(record.Keys) == 0 {
			return nil, i18n.NewError(ctx, msgs.MsgAdapterNoIdentityKey, issuerID)
		}
		keyID = record.Keys[0].KeyID
	}
	return signer.New(ctx, keyID, r.km)
}

func (r *Registry) endorserSigner(ctx context.Context, keyID string) (*signer.Signer, error) {
	if keyID == "" {
		keyID = r.defaultEndorser
	}
	if keyID == "" {
		return nil, i18n.NewError(ctx, msgs.MsgAdapterNoEndorserKey)
	}
	return signer.New(ctx, keyID, r.km)
}

func (r *Registry) signers(ctx context.Context, issuerID, identityKeyID, endorserKeyID string) (identity, endorser *signer.Signer, err error) {
	if identity, err = r.identitySigner(ctx, issuerID, identityKeyID); err == nil {
		endorser, err = r.endorserSigner(ctx, endorserKeyID)
	}
	return identity, endorser, err
}
