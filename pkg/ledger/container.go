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

package ledger

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Container is the keyed value the ledger library hands back from a read.
// Nested objects are themselves Containers, arrays are []any, and leaves are
// string, float64, bool or nil.
type Container interface {
	Keys() []string
	Get(key string) (any, bool)
}

type jsonContainer struct {
	res gjson.Result
}

func NewContainer(ctx context.Context, data []byte) (Container, error) {
	if !gjson.ValidBytes(data) {
		return nil, i18n.NewError(ctx, msgs.MsgLedgerContainerNotObject)
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return nil, i18n.NewError(ctx, msgs.MsgLedgerContainerNotObject)
	}
	return &jsonContainer{res: res}, nil
}

func (c *jsonContainer) Keys() []string {
	keys := []string{}
	c.res.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// Get matches keys literally, so keys containing gjson path syntax are safe
func (c *jsonContainer) Get(key string) (v any, found bool) {
	c.res.ForEach(func(k, value gjson.Result) bool {
		if k.String() == key {
			v, found = wrapValue(value), true
			return false
		}
		return true
	})
	return v, found
}

func wrapValue(value gjson.Result) any {
	switch {
	case value.IsObject():
		return &jsonContainer{res: value}
	case value.IsArray():
		items := []any{}
		value.ForEach(func(_, item gjson.Result) bool {
			items = append(items, wrapValue(item))
			return true
		})
		return items
	default:
		return value.Value()
	}
}

// expandDocuments replaces each 0x hex bytes field at the given paths with the
// JSON document it encodes. Empty byte fields yield found=false.
func expandDocuments(ctx context.Context, data []byte, paths []string) (_ []byte, found bool, err error) {
	for _, path := range paths {
		hexStr := gjson.GetBytes(data, path).String()
		docBytes, err := hex.DecodeString(strings.TrimPrefix(hexStr, "0x"))
		if err != nil {
			return nil, false, i18n.WrapError(ctx, err, msgs.MsgLedgerDecodeFailed, path)
		}
		if len(docBytes) == 0 {
			return nil, false, nil
		}
		if !json.Valid(docBytes) {
			return nil, false, i18n.NewError(ctx, msgs.MsgLedgerDecodeFailed, path)
		}
		if data, err = sjson.SetRawBytes(data, path, docBytes); err != nil {
			return nil, false, i18n.WrapError(ctx, err, msgs.MsgLedgerDecodeFailed, path)
		}
	}
	return data, true, nil
}
