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

// Schema is an AnonCreds schema. Immutable once registered.
type Schema struct {
	IssuerID  string   `json:"issuerId"`
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	AttrNames []string `json:"attrNames"`
}

const CredentialDefinitionTypeCL = "CL"

// CredentialDefinition is an AnonCreds credential definition. Value holds the
// public key material as a plain record (value.primary.r nests three deep).
type CredentialDefinition struct {
	IssuerID string         `json:"issuerId"`
	SchemaID string         `json:"schemaId"`
	Type     string         `json:"type"`
	Tag      string         `json:"tag"`
	Value    map[string]any `json:"value"`
}

type VerificationMethod struct {
	ID                  string         `json:"id"`
	Type                string         `json:"type"`
	Controller          string         `json:"controller"`
	PublicKeyJwk        map[string]any `json:"publicKeyJwk,omitempty"`
	BlockchainAccountID string         `json:"blockchainAccountId,omitempty"`
}

type Service struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint any    `json:"serviceEndpoint"`
}

type DidDocument struct {
	Context            []string             `json:"@context"`
	ID                 string               `json:"id"`
	Controller         []string             `json:"controller,omitempty"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Authentication     []string             `json:"authentication"`
	AssertionMethod    []string             `json:"assertionMethod,omitempty"`
	Service            []Service            `json:"service,omitempty"`
}

const DIDContextV1 = "https://www.w3.org/ns/did/v1"
