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

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/metrics"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/vdrapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

func (r *Registry) GetCredentialDefinition(ctx context.Context, credDefID string) *vdrapi.GetCredentialDefinitionResult {
	ctx = withOperation(ctx, "getCredentialDefinition")
	result := &vdrapi.GetCredentialDefinitionResult{
		CredentialDefinitionID:       credDefID,
		CredentialDefinitionMetadata: map[string]any{},
	}
	credDef, err := r.regs.CredentialDefinition.Resolve(ctx, credDefID)
	if err != nil {
		log.L(ctx).Errorf("Failed to resolve credential definition %s: %s", credDefID, err)
		result.ResolutionMetadata = resolutionMetadata(err)
	} else {
		result.CredentialDefinition = credDef
	}
	r.metrics.RecordResolution(r.regs.CredentialDefinition.Kind(), outcome(result.ResolutionMetadata))
	return result
}

// RegisterCredentialDefinition requires the referenced schema to be on the
// ledger, and checks that before any key is loaded or anything is signed.
func (r *Registry) RegisterCredentialDefinition(ctx context.Context, opts *vdrapi.RegisterCredentialDefinitionOptions) (*vdrapi.RegisterCredentialDefinitionResult, error) {
	ctx = withOperation(ctx, "registerCredentialDefinition")
	credDef := opts.CredentialDefinition
	result := &vdrapi.RegisterCredentialDefinitionResult{
		CredentialDefinitionState:    vdrapi.CredentialDefinitionState{CredentialDefinition: &credDef},
		RegistrationMetadata:         map[string]any{},
		CredentialDefinitionMetadata: map[string]any{},
	}
	failed := func(reason string) *vdrapi.RegisterCredentialDefinitionResult {
		r.metrics.RecordRegistration(r.regs.CredentialDefinition.Kind(), metrics.OutcomeFailed)
		result.CredentialDefinitionState.State = vdrapi.RegistrationFailed
		result.CredentialDefinitionState.Reason = reason
		return result
	}

	schema := r.GetSchema(ctx, credDef.SchemaID)
	if schema.ResolutionMetadata.Failed() {
		err := i18n.NewError(ctx, msgs.MsgAdapterSchemaNotFound, credDef.SchemaID, schema.ResolutionMetadata.Message)
		log.L(ctx).Errorf("Credential definition registration rejected: %s", err)
		return failed(string(schema.ResolutionMetadata.Error) + ": " + err.Error()), nil
	}

	identity, endorser, err := r.signers(ctx, credDef.IssuerID, opts.IdentityKeyID, opts.EndorserKeyID)
	if err != nil {
		r.metrics.RecordRegistration(r.regs.CredentialDefinition.Kind(), metrics.OutcomeError)
		return nil, err
	}

	credDefID, receipt, err := r.regs.CredentialDefinition.Endorse(ctx, &credDef, identity, endorser)
	if err != nil {
		if isKeyError(err) {
			r.metrics.RecordRegistration(r.regs.CredentialDefinition.Kind(), metrics.OutcomeError)
			return nil, err
		}
		log.L(ctx).Errorf("Credential definition registration failed: %s", err)
		return failed(failedReason(err)), nil
	}

	log.L(ctx).Infof("Registered credential definition %s in transaction %s", credDefID, receipt.TransactionHash)
	r.metrics.RecordRegistration(r.regs.CredentialDefinition.Kind(), metrics.OutcomeSuccess)
	result.CredentialDefinitionState.State = vdrapi.RegistrationFinished
	result.CredentialDefinitionState.CredentialDefinitionID = credDefID
	result.RegistrationMetadata = receiptMetadata(receipt)
	return result, nil
}
