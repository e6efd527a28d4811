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

package msgs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

const vdrPrefix = "VD01"

var registered sync.Once
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	registered.Do(func() {
		i18n.RegisterPrefix(vdrPrefix, "Ledger VDR Adapter")
	})
	if !strings.HasPrefix(key, vdrPrefix) {
		panic(fmt.Errorf("must have prefix '%s': %s", vdrPrefix, key))
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (
	// Config VD0100XX
	MsgConfigFileMissing    = ffe("VD010001", "Config file not found at path: %s")
	MsgConfigFileReadError  = ffe("VD010002", "Failed to read config file %s with error: %s")
	MsgConfigFileParseError = ffe("VD010003", "Failed to parse config file: %s")
	MsgConfigMissingField   = ffe("VD010004", "Missing required configuration '%s'")
	MsgConfigInvalidAddress = ffe("VD010005", "Invalid contract address configured for '%s': %s")
	MsgContextCanceled      = ffe("VD010006", "Context canceled")

	// Key management VD0101XX
	MsgKMSKeyNotFound               = ffe("VD010100", "Key '%s' not found")
	MsgKMSUnsupportedKeyType        = ffe("VD010101", "Unsupported key type '%s'")
	MsgKMSUnsupportedAlgorithm      = ffe("VD010102", "Unsupported signing algorithm '%s' for key '%s'")
	MsgKMSEmptyPayload              = ffe("VD010103", "Signing payload is empty")
	MsgKMSBadKeyStoreType           = ffe("VD010104", "Unsupported key store type '%s'")
	MsgKMSBadPath                   = ffe("VD010105", "Key store path '%s' is not a directory")
	MsgKMSFSError                   = ffe("VD010106", "Key store filesystem error")
	MsgKMSBadKeyFile                = ffe("VD010107", "Failed to read key file '%s'")
	MsgKMSBadPassFile               = ffe("VD010108", "Failed to read password file '%s'")
	MsgKMSStaticKeyInvalid          = ffe("VD010109", "Static key '%s' is missing or invalid")
	MsgKMSStaticBadEncoding         = ffe("VD010110", "Static key '%s' has unsupported encoding '%s'")
	MsgKMSStaticKeyFileLoad         = ffe("VD010111", "Failed to load static key file")
	MsgKMSReadOnlyStore             = ffe("VD010112", "Key store '%s' does not support key creation")
	MsgKMSBadKeyID                  = ffe("VD010113", "Invalid key id '%s'")
	MsgKMSHDSeedInvalid             = ffe("VD010114", "HD wallet seed must be 32 bytes or a valid BIP39 mnemonic")
	MsgKMSBIP32DerivationInvalid    = ffe("VD010115", "Invalid BIP32 derivation path segment '%s'")
	MsgKMSBIP32DerivationTooLarge   = ffe("VD010116", "BIP32 derivation index too large: %d")
	MsgKMSHDNotEnabled              = ffe("VD010117", "Key id '%s' is a derivation path, but BIP32 key derivation is not enabled")
	MsgKMSInvalidPrivateKey         = ffe("VD010118", "Invalid private key material for key '%s'")
	MsgSignerKeyNotAsymmetric       = ffe("VD010119", "Key '%s' is of type '%s' which is not an asymmetric key")
	MsgSignerInvalidPublicKey       = ffe("VD010120", "Key '%s' has invalid public key material")
	MsgSignerSigningFailed          = ffe("VD010121", "Signing with key '%s' failed")
	MsgSignerInvalidSignatureLength = ffe("VD010122", "Signature from key '%s' has invalid length %d")
	MsgKMSKeyAlreadyExists          = ffe("VD010123", "Key '%s' already exists")

	// JSON/RPC and ethereum client VD0102XX
	MsgRPCClientInvalidHTTPURL   = ffe("VD010200", "Invalid HTTP URL: '%s'")
	MsgEthClientChainIDFailed    = ffe("VD010201", "Failed to query chain ID: %s")
	MsgEthClientCallReverted     = ffe("VD010202", "Call reverted: %s")
	MsgEthClientRPCFailed        = ffe("VD010203", "JSON/RPC call %s failed: %s")
	MsgEthClientInvalidTXVersion = ffe("VD010204", "Invalid transaction version: %s")
	MsgEthClientSubmitFailed     = ffe("VD010205", "Transaction submission failed: %s")
	MsgEthClientNoURL            = ffe("VD010206", "No JSON/RPC URL configured for the blockchain connection")

	// Ledger boundary VD0103XX
	MsgLedgerUnknownMethod          = ffe("VD010300", "Contract has no method '%s'")
	MsgLedgerEncodeFailed           = ffe("VD010301", "Failed to encode parameters for '%s'")
	MsgLedgerDecodeFailed           = ffe("VD010302", "Failed to decode result of '%s'")
	MsgLedgerNotFound               = ffe("VD010303", "Not found: %s", 404)
	MsgLedgerTransactionNotSigned   = ffe("VD010304", "Transaction has not been signed")
	MsgLedgerEndorsingDataNotSigned = ffe("VD010305", "Endorsing data has not been signed by the identity")
	MsgLedgerInvalidSignature       = ffe("VD010306", "Invalid signature: %s")
	MsgLedgerReceiptTimeout         = ffe("VD010307", "Timed out waiting for receipt of transaction %s")
	MsgLedgerTransactionReverted    = ffe("VD010308", "Transaction %s reverted: %s")
	MsgLedgerInvalidParam           = ffe("VD010309", "Parameter '%s' of type %s has invalid length %d")
	MsgLedgerCallFailed             = ffe("VD010310", "Ledger call failed: %s")
	MsgLedgerContainerNotObject     = ffe("VD010311", "Ledger result is not an object")

	// Endorsement and contracts VD0104XX
	MsgEndorsementIdentityMismatch = ffe("VD010400", "Signer %s is not the identity %s of the endorsing data")
	MsgEndorsementNotEndorsed      = ffe("VD010401", "submitAsEndorser called in state %s, the identity signature must be attached first")
	MsgContractsInvalidResource    = ffe("VD010402", "Invalid %s: %s")
	MsgContractsWriteFailed        = ffe("VD010403", "Ledger write of %s '%s' failed: %s")
	MsgContractsNoSigner           = ffe("VD010404", "No signer supplied")
	MsgContractsNotDidIdentifier   = ffe("VD010405", "'%s' is not a did:%s:%s identifier")

	// Mapping VD0105XX
	MsgMappingDecodeFailed   = ffe("VD010500", "Failed to map ledger value to %s")
	MsgMappingMissingField   = ffe("VD010501", "Ledger value for %s is missing '%s'")
	MsgMappingInvalidDocJSON = ffe("VD010502", "Ledger value for %s does not contain a JSON document")

	// Registry adapters VD0106XX
	MsgAdapterSchemaNotFound        = ffe("VD010600", "Schema '%s' referenced by the credential definition was not found: %s")
	MsgAdapterNoIdentityKey         = ffe("VD010601", "No identity key available for '%s'")
	MsgAdapterNoEndorserKey         = ffe("VD010602", "No endorser key supplied and no default endorser configured")
	MsgAdapterNotImplemented        = ffe("VD010603", "%s is not implemented for this ledger")
	MsgAdapterUnsupportedIdentifier = ffe("VD010604", "Identifier '%s' is not supported by this registry")
	MsgAdapterUnsupportedKeyType    = ffe("VD010605", "Key type '%s' is not supported for DID creation")

	// Persistence VD0107XX
	MsgPersistenceInvalidType         = ffe("VD010700", "Invalid database type '%s'")
	MsgPersistenceMissingDSN          = ffe("VD010701", "Missing database connection DSN")
	MsgPersistenceInitFailed          = ffe("VD010702", "Database init failed")
	MsgPersistenceMigrationFailed     = ffe("VD010703", "Database migration failed")
	MsgPersistenceMissingMigrationDir = ffe("VD010704", "Missing database migration directory for autoMigrate")
	MsgDIDStoreNotFound               = ffe("VD010705", "DID '%s' not found in the local store", 404)
	MsgDIDStoreImportFailed           = ffe("VD010706", "Failed to import DID '%s'")
	MsgDIDStoreAlreadyExists          = ffe("VD010707", "DID '%s' already exists in the local store", 409)
	MsgDIDStoreResolveFailed          = ffe("VD010708", "Failed to resolve DID '%s' from the local store")

	// Components VD0108XX
	MsgComponentEthClientInitError  = ffe("VD010800", "Error initializing ethereum client")
	MsgComponentKeyManagerInitError = ffe("VD010801", "Error initializing key manager")
	MsgComponentDBInitError         = ffe("VD010802", "Error initializing database")
	MsgComponentRegistriesInitError = ffe("VD010803", "Error initializing registry contracts")
)
