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

package vdrapi

// RegistrationState tags the outcome of a register or create operation
type RegistrationState string

const (
	RegistrationFinished RegistrationState = "finished"
	RegistrationFailed   RegistrationState = "failed"
)

// ResolutionError is the code carried by a failed resolution
type ResolutionError string

const (
	ResolutionNotFound     ResolutionError = "notFound"
	ResolutionUnknownError ResolutionError = "unknownError"
	ResolutionInvalid      ResolutionError = "invalid"
)

type ResolutionMetadata struct {
	Error   ResolutionError `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

func (rm *ResolutionMetadata) Failed() bool {
	return rm.Error != ""
}

type SchemaState struct {
	State    RegistrationState `json:"state"`
	Schema   *Schema           `json:"schema"`
	SchemaID string            `json:"schemaId,omitempty"`
	Reason   string            `json:"reason,omitempty"`
}

type RegisterSchemaOptions struct {
	Schema Schema `json:"schema"`
	// IdentityKeyID is optional when the issuer DID was created through this registrar
	IdentityKeyID string `json:"identityKeyId,omitempty"`
	// EndorserKeyID is optional when a default endorser is configured
	EndorserKeyID string `json:"endorserKeyId,omitempty"`
}

type RegisterSchemaResult struct {
	SchemaState          SchemaState    `json:"schemaState"`
	RegistrationMetadata map[string]any `json:"registrationMetadata"`
	SchemaMetadata       map[string]any `json:"schemaMetadata"`
}

type GetSchemaResult struct {
	SchemaID           string             `json:"schemaId"`
	Schema             *Schema            `json:"schema,omitempty"`
	ResolutionMetadata ResolutionMetadata `json:"resolutionMetadata"`
	SchemaMetadata     map[string]any     `json:"schemaMetadata"`
}

type CredentialDefinitionState struct {
	State                  RegistrationState     `json:"state"`
	CredentialDefinition   *CredentialDefinition `json:"credentialDefinition"`
	CredentialDefinitionID string                `json:"credentialDefinitionId,omitempty"`
	Reason                 string                `json:"reason,omitempty"`
}

type RegisterCredentialDefinitionOptions struct {
	CredentialDefinition CredentialDefinition `json:"credentialDefinition"`
	IdentityKeyID        string               `json:"identityKeyId,omitempty"`
	EndorserKeyID        string               `json:"endorserKeyId,omitempty"`
}

type RegisterCredentialDefinitionResult struct {
	CredentialDefinitionState    CredentialDefinitionState `json:"credentialDefinitionState"`
	RegistrationMetadata         map[string]any            `json:"registrationMetadata"`
	CredentialDefinitionMetadata map[string]any            `json:"credentialDefinitionMetadata"`
}

type GetCredentialDefinitionResult struct {
	CredentialDefinitionID       string                `json:"credentialDefinitionId"`
	CredentialDefinition         *CredentialDefinition `json:"credentialDefinition,omitempty"`
	ResolutionMetadata           ResolutionMetadata    `json:"resolutionMetadata"`
	CredentialDefinitionMetadata map[string]any        `json:"credentialDefinitionMetadata"`
}

type DidState struct {
	State       RegistrationState `json:"state"`
	Did         string            `json:"did,omitempty"`
	DidDocument *DidDocument      `json:"didDocument,omitempty"`
	Reason      string            `json:"reason,omitempty"`
}

type DidCreateOptions struct {
	// KeyType defaults to secp256k1, the only type the DID registry can verify
	KeyType string `json:"keyType,omitempty"`
	// KeyID optionally names the key created in the key manager
	KeyID         string    `json:"keyId,omitempty"`
	EndorserKeyID string    `json:"endorserKeyId,omitempty"`
	Services      []Service `json:"services,omitempty"`
}

type DidUpdateOptions struct {
	Did         string       `json:"did"`
	DidDocument *DidDocument `json:"didDocument"`
}

type DidDeactivateOptions struct {
	Did string `json:"did"`
}

type DidResult struct {
	DidState                DidState       `json:"didState"`
	DidRegistrationMetadata map[string]any `json:"didRegistrationMetadata"`
	DidDocumentMetadata     map[string]any `json:"didDocumentMetadata"`
}

type DidResolutionResult struct {
	DidDocument           *DidDocument       `json:"didDocument,omitempty"`
	DidResolutionMetadata ResolutionMetadata `json:"didResolutionMetadata"`
	DidDocumentMetadata   map[string]any     `json:"didDocumentMetadata"`
}
