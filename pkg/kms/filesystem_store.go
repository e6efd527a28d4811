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
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/cache"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/keystorev3"
)

type filesystemStore struct {
	cache    cache.Cache[string, keystorev3.WalletFile]
	path     string
	fileMode os.FileMode
	dirMode  os.FileMode
}

func newFilesystemStore(ctx context.Context, conf *vdrconf.FileSystemKeyStoreConfig) (*filesystemStore, error) {
	var pathInfo fs.FileInfo
	dir, err := filepath.Abs(confutil.StringNotEmpty(conf.Path, *vdrconf.FileSystemDefaults.Path))
	if err == nil {
		pathInfo, err = os.Stat(dir)
	}
	if err != nil || !pathInfo.IsDir() {
		return nil, i18n.WrapError(ctx, err, msgs.MsgKMSBadPath, dir)
	}
	return &filesystemStore{
		cache:    cache.NewCache[string, keystorev3.WalletFile](&conf.Cache, &vdrconf.FileSystemDefaults.Cache),
		fileMode: confutil.UnixFileMode(conf.FileMode, *vdrconf.FileSystemDefaults.FileMode),
		dirMode:  confutil.UnixFileMode(conf.DirMode, *vdrconf.FileSystemDefaults.DirMode),
		path:     dir,
	}, nil
}

// Directory segments get a "_" prefix and the file a "-" prefix, so "a/b" and "a"
// never clash, and no segment can start with "."
func (fss *filesystemStore) keyPath(ctx context.Context, keyID string, forCreate bool) (string, error) {
	fullPath := fss.path
	segments := strings.Split(keyID, "/")
	for i, segment := range segments {
		if segment == "" {
			return "", i18n.NewError(ctx, msgs.MsgKMSBadKeyID, keyID)
		}
		isDir := i < (len(segments) - 1)
		if isDir {
			segment = "_" + segment
		} else {
			segment = "-" + segment
		}
		fullPath = path.Join(fullPath, segment)
		if forCreate && isDir {
			fsInfo, err := os.Stat(fullPath)
			if os.IsNotExist(err) {
				err = os.Mkdir(fullPath, fss.dirMode)
			} else if err == nil && !fsInfo.IsDir() {
				err = i18n.NewError(ctx, msgs.MsgKMSBadKeyID, keyID)
			}
			if err != nil {
				return "", err
			}
		}
	}
	return fullPath, nil
}

func (fss *filesystemStore) LoadKey(ctx context.Context, keyID string) (*keyEntry, error) {
	if wf, ok := fss.cache.Get(keyID); ok {
		return &keyEntry{material: wf.PrivateKey(), keyType: KeyTypeSecp256k1}, nil
	}
	absPathPrefix, err := fss.keyPath(ctx, keyID, false)
	if err != nil {
		return nil, err
	}
	keyFilePath := fmt.Sprintf("%s.key", absPathPrefix)
	passwordFilePath := fmt.Sprintf("%s.pwd", absPathPrefix)
	if _, err := os.Stat(keyFilePath); os.IsNotExist(err) {
		return nil, NewKeyNotFoundError(ctx, keyID)
	}
	keyData, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgKMSBadKeyFile, keyFilePath)
	}
	passData, err := os.ReadFile(passwordFilePath)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgKMSBadPassFile, passwordFilePath)
	}
	wf, err := keystorev3.ReadWalletFile(keyData, passData)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgKMSBadKeyFile, keyFilePath)
	}
	fss.cache.Set(keyID, wf)
	return &keyEntry{material: wf.PrivateKey(), keyType: KeyTypeSecp256k1}, nil
}

func (fss *filesystemStore) StoreKey(ctx context.Context, keyID string, material []byte) error {
	absPathPrefix, err := fss.keyPath(ctx, keyID, true)
	if err != nil {
		return err
	}
	keyFilePath := fmt.Sprintf("%s.key", absPathPrefix)
	passwordFilePath := fmt.Sprintf("%s.pwd", absPathPrefix)

	passwordBytes := make([]byte, 32)
	if _, err := rand.Read(passwordBytes); err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgKMSFSError)
	}
	password := hex.EncodeToString(passwordBytes)
	wf := keystorev3.NewWalletFileCustomBytesStandard(password, material)

	// O_EXCL makes the key file the claim on the id, so an existing key is never replaced
	keyFile, err := os.OpenFile(keyFilePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fss.fileMode)
	if os.IsExist(err) {
		return i18n.NewError(ctx, msgs.MsgKMSKeyAlreadyExists, keyID)
	}
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgKMSFSError)
	}
	_, err = keyFile.Write(wf.JSON())
	if closeErr := keyFile.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.WriteFile(passwordFilePath, []byte(password), fss.fileMode)
	}
	if err != nil {
		_ = os.Remove(keyFilePath)
		return i18n.WrapError(ctx, err, msgs.MsgKMSFSError)
	}
	fss.cache.Set(keyID, wf)
	return nil
}
