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

package didstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/persistence"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/vdrapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"gorm.io/gorm"
)

// KeyBinding ties a verification method of a DID to the key manager key behind it
type KeyBinding struct {
	KeyID              string `json:"keyId"`
	VerificationMethod string `json:"verificationMethod"`
}

type ImportRequest struct {
	DID         string              `json:"did"`
	DidDocument *vdrapi.DidDocument `json:"didDocument"`
	Keys        []KeyBinding        `json:"keys"`
}

type DIDRecord struct {
	DID         string              `json:"did"`
	DidDocument *vdrapi.DidDocument `json:"didDocument"`
	Keys        []KeyBinding        `json:"keys"`
	Created     time.Time           `json:"created"`
}

// Store holds the DIDs this node controls, and the keys that sign for them
type Store interface {
	Import(ctx context.Context, req *ImportRequest) error
	Resolve(ctx context.Context, did string) (*DIDRecord, error)
}

type dbDID struct {
	DID      string `gorm:"column:did;primaryKey"`
	Document string `gorm:"column:document"`
	Created  int64  `gorm:"column:created"`
}

func (dbDID) TableName() string {
	return "dids"
}

type dbDIDKey struct {
	DID                string `gorm:"column:did;primaryKey"`
	KeyID              string `gorm:"column:key_id;primaryKey"`
	VerificationMethod string `gorm:"column:verification_method"`
}

func (dbDIDKey) TableName() string {
	return "did_keys"
}

type store struct {
	p persistence.Persistence
}

func NewStore(p persistence.Persistence) Store {
	return &store{p: p}
}

func IsNotFound(err error) bool {
	return hasMessageKey(err, msgs.MsgDIDStoreNotFound)
}

func IsAlreadyExists(err error) bool {
	return hasMessageKey(err, msgs.MsgDIDStoreAlreadyExists)
}

func hasMessageKey(err error, key i18n.ErrorMessageKey) bool {
	var ffe i18n.FFError
	return errors.As(err, &ffe) && ffe.MessageKey() == key
}

func (s *store) Import(ctx context.Context, req *ImportRequest) error {
	document, err := json.Marshal(req.DidDocument)
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgDIDStoreImportFailed, req.DID)
	}
	err = s.p.Transaction(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var existing []*dbDID
		err := tx.Table("dids").Where("did = ?", req.DID).Limit(1).Find(&existing).Error
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return i18n.NewError(ctx, msgs.MsgDIDStoreAlreadyExists, req.DID)
		}
		err = tx.Table("dids").Create(&dbDID{
			DID:      req.DID,
			Document: string(document),
			Created:  time.Now().UnixNano(),
		}).Error
		if err == nil && len(req.Keys) > 0 {
			keys := make([]*dbDIDKey, len(req.Keys))
			for i, k := range req.Keys {
				keys[i] = &dbDIDKey{DID: req.DID, KeyID: k.KeyID, VerificationMethod: k.VerificationMethod}
			}
			err = tx.Table("did_keys").Create(keys).Error
		}
		return err
	})
	if err != nil {
		if IsAlreadyExists(err) {
			return err
		}
		return i18n.WrapError(ctx, err, msgs.MsgDIDStoreImportFailed, req.DID)
	}
	log.L(ctx).Infof("Imported %s with %d keys", req.DID, len(req.Keys))
	return nil
}

func (s *store) Resolve(ctx context.Context, did string) (*DIDRecord, error) {
	db := s.p.DB().WithContext(ctx)
	var dids []*dbDID
	if err := db.Table("dids").Where("did = ?", did).Limit(1).Find(&dids).Error; err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgDIDStoreResolveFailed, did)
	}
	if len(dids) == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgDIDStoreNotFound, did)
	}
	var keys []*dbDIDKey
	if err := db.Table("did_keys").Where("did = ?", did).Order("key_id").Find(&keys).Error; err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgDIDStoreResolveFailed, did)
	}
	var doc vdrapi.DidDocument
	if err := json.Unmarshal([]byte(dids[0].Document), &doc); err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgDIDStoreResolveFailed, did)
	}
	rec := &DIDRecord{
		DID:         did,
		DidDocument: &doc,
		Keys:        make([]KeyBinding, len(keys)),
		Created:     time.Unix(0, dids[0].Created).UTC(),
	}
	for i, k := range keys {
		rec.Keys[i] = KeyBinding{KeyID: k.KeyID, VerificationMethod: k.VerificationMethod}
	}
	return rec, nil
}
