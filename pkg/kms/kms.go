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

package kms

import (
	"context"
	"errors"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

type KeyType string

const (
	KeyTypeSecp256k1 KeyType = "secp256k1"
	// raw secret material, usable for MACs but not for ledger signing
	KeyTypeSymmetric KeyType = "symmetric"
)

func (kt KeyType) IsAsymmetric() bool {
	return kt == KeyTypeSecp256k1
}

// Compact R||S||V output over a pre-hashed 32 byte payload
const AlgorithmECDSASecp256k1 = "ecdsa:secp256k1"

// PublicKey is the public material of a managed key. Bytes holds the 65 byte
// uncompressed point for secp256k1, and is empty for symmetric keys.
type PublicKey struct {
	KeyID string
	Type  KeyType
	Bytes []byte
}

type SignRequest struct {
	KeyID     string
	Algorithm string
	Data      []byte
}

type KeySpec struct {
	Type KeyType
	// optional, a random id is generated when empty
	KeyID string
}

type CreatedKey struct {
	KeyID     string `json:"keyId"`
	PublicJWK *JWK   `json:"publicJwk"`
}

// KeyManager is the custody boundary. Implementations must be safe for concurrent use.
type KeyManager interface {
	GetPublicKey(ctx context.Context, keyID string) (*PublicKey, error)
	Sign(ctx context.Context, req *SignRequest) ([]byte, error)
	// CreateKey fails if spec.KeyID names a key that already exists
	CreateKey(ctx context.Context, spec *KeySpec) (*CreatedKey, error)
}

type KeyNotFoundError struct {
	KeyID string
	err   error
}

func NewKeyNotFoundError(ctx context.Context, keyID string) *KeyNotFoundError {
	return &KeyNotFoundError{KeyID: keyID, err: i18n.NewError(ctx, msgs.MsgKMSKeyNotFound, keyID)}
}

func (e *KeyNotFoundError) Error() string {
	return e.err.Error()
}

func (e *KeyNotFoundError) Unwrap() error {
	return e.err
}

func IsKeyNotFound(err error) bool {
	var knf *KeyNotFoundError
	return errors.As(err, &knf)
}
