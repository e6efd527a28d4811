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

package mapping

import (
	"context"
	"encoding/json"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ledger"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/vdrapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/mitchellh/mapstructure"
)

// ToDomainShape converts ledger containers, at any depth, into plain
// map[string]any records. Slices and maps are walked, leaves are returned as
// they are. Applying it to its own output returns an equal value.
func ToDomainShape(v any) any {
	switch tv := v.(type) {
	case ledger.Container:
		keys := tv.Keys()
		record := make(map[string]any, len(keys))
		for _, k := range keys {
			child, _ := tv.Get(k)
			record[k] = ToDomainShape(child)
		}
		return record
	case map[string]any:
		record := make(map[string]any, len(tv))
		for k, child := range tv {
			record[k] = ToDomainShape(child)
		}
		return record
	case []any:
		items := make([]any, len(tv))
		for i, child := range tv {
			items[i] = ToDomainShape(child)
		}
		return items
	default:
		return v
	}
}

// ToRecord is ToDomainShape for a top level container
func ToRecord(c ledger.Container) map[string]any {
	return ToDomainShape(c).(map[string]any)
}

// Field walks a path of nested records
func Field(ctx context.Context, kind string, record map[string]any, path ...string) (map[string]any, error) {
	current := record
	for _, p := range path {
		next, ok := current[p].(map[string]any)
		if !ok {
			return nil, i18n.NewError(ctx, msgs.MsgMappingMissingField, kind, p)
		}
		current = next
	}
	return current, nil
}

func decode(ctx context.Context, kind string, record map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  target,
	})
	if err == nil {
		err = decoder.Decode(record)
	}
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgMappingDecodeFailed, kind)
	}
	return nil
}

func requireFields(ctx context.Context, kind string, record map[string]any, fields ...string) error {
	for _, f := range fields {
		if v, ok := record[f]; !ok || v == nil || v == "" {
			return i18n.NewError(ctx, msgs.MsgMappingMissingField, kind, f)
		}
	}
	return nil
}

func DecodeSchema(ctx context.Context, record map[string]any) (*vdrapi.Schema, error) {
	if err := requireFields(ctx, "schema", record, "issuerId", "name", "version", "attrNames"); err != nil {
		return nil, err
	}
	var schema vdrapi.Schema
	if err := decode(ctx, "schema", record, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

func DecodeCredentialDefinition(ctx context.Context, record map[string]any) (*vdrapi.CredentialDefinition, error) {
	if err := requireFields(ctx, "credential definition", record, "issuerId", "schemaId", "type", "tag", "value"); err != nil {
		return nil, err
	}
	// value.primary.r must all be plain records, whatever the source
	record = ToDomainShape(record).(map[string]any)
	var credDef vdrapi.CredentialDefinition
	if err := decode(ctx, "credential definition", record, &credDef); err != nil {
		return nil, err
	}
	return &credDef, nil
}

func DecodeDidDocument(ctx context.Context, record map[string]any) (*vdrapi.DidDocument, error) {
	if err := requireFields(ctx, "DID document", record, "id"); err != nil {
		return nil, err
	}
	if c, ok := record["@context"].(string); ok {
		// a single context may be a bare string
		record = copyRecord(record)
		record["@context"] = []any{c}
	}
	var doc vdrapi.DidDocument
	if err := decode(ctx, "DID document", record, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func copyRecord(record map[string]any) map[string]any {
	c := make(map[string]any, len(record))
	for k, v := range record {
		c[k] = v
	}
	return c
}

// EncodeDocument is the inverse of the decoders, producing the bytes stored on ledger
func EncodeDocument(ctx context.Context, kind string, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgMappingInvalidDocJSON, kind)
	}
	return b, nil
}
