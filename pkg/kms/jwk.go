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
	"encoding/base64"

	"github.com/btcsuite/btcd/btcec/v2"
)

type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

func Secp256k1JWK(pubKey *btcec.PublicKey) *JWK {
	// 0x04 || X(32) || Y(32)
	uncompressed := pubKey.SerializeUncompressed()
	return &JWK{
		Kty: "EC",
		Crv: "secp256k1",
		X:   base64.RawURLEncoding.EncodeToString(uncompressed[1:33]),
		Y:   base64.RawURLEncoding.EncodeToString(uncompressed[33:65]),
	}
}
