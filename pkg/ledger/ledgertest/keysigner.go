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

package ledgertest

import (
	"context"
	"sync/atomic"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
)

// KeySigner signs with an in-memory key, and can be made to fail
type KeySigner struct {
	kp    *secp256k1.KeyPair
	calls atomic.Int32
	Err   error
}

func NewKeySigner() *KeySigner {
	kp, err := secp256k1.GenerateSecp256k1KeyPair()
	if err != nil {
		panic(err)
	}
	return &KeySigner{kp: kp}
}

func (s *KeySigner) Address() ethtypes.Address0xHex {
	return s.kp.Address
}

func (s *KeySigner) Sign(ctx context.Context, data []byte) ([]byte, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	sig, err := s.kp.SignDirect(data)
	if err != nil {
		return nil, err
	}
	return sig.CompactRSV(), nil
}

func (s *KeySigner) Calls() int {
	return int(s.calls.Load())
}
