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
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/vdrapi"
)

func (r *Registry) GetSchema(ctx context.Context, schemaID string) *vdrapi.GetSchemaResult {
	ctx = withOperation(ctx, "getSchema")
	result := &vdrapi.GetSchemaResult{
		SchemaID:       schemaID,
		SchemaMetadata: map[string]any{},
	}
	schema, err := r.regs.Schema.Resolve(ctx, schemaID)
	if err != nil {
		log.L(ctx).Errorf("Failed to resolve schema %s: %s", schemaID, err)
		result.ResolutionMetadata = resolutionMetadata(err)
	} else {
		result.Schema = schema
	}
	r.metrics.RecordResolution(r.regs.Schema.Kind(), outcome(result.ResolutionMetadata))
	return result
}

// RegisterSchema writes the schema through the endorsement flow. The error
// return is reserved for key problems, ledger failures give a failed state.
func (r *Registry) RegisterSchema(ctx context.Context, opts *vdrapi.RegisterSchemaOptions) (*vdrapi.RegisterSchemaResult, error) {
	ctx = withOperation(ctx, "registerSchema")
	schema := opts.Schema
	result := &vdrapi.RegisterSchemaResult{
		SchemaState:          vdrapi.SchemaState{Schema: &schema},
		RegistrationMetadata: map[string]any{},
		SchemaMetadata:       map[string]any{},
	}

	identity, endorser, err := r.signers(ctx, schema.IssuerID, opts.IdentityKeyID, opts.EndorserKeyID)
	if err != nil {
		r.metrics.RecordRegistration(r.regs.Schema.Kind(), metrics.OutcomeError)
		return nil, err
	}

	schemaID, receipt, err := r.regs.Schema.Endorse(ctx, &schema, identity, endorser)
	if err != nil {
		if isKeyError(err) {
			r.metrics.RecordRegistration(r.regs.Schema.Kind(), metrics.OutcomeError)
			return nil, err
		}
		log.L(ctx).Errorf("Schema registration failed: %s", err)
		r.metrics.RecordRegistration(r.regs.Schema.Kind(), metrics.OutcomeFailed)
		result.SchemaState.State = vdrapi.RegistrationFailed
		result.SchemaState.Reason = failedReason(err)
		return result, nil
	}

	log.L(ctx).Infof("Registered schema %s in transaction %s", schemaID, receipt.TransactionHash)
	r.metrics.RecordRegistration(r.regs.Schema.Kind(), metrics.OutcomeSuccess)
	result.SchemaState.State = vdrapi.RegistrationFinished
	result.SchemaState.SchemaID = schemaID
	result.RegistrationMetadata = receiptMetadata(receipt)
	return result, nil
}
