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

package componentmgr

import (
	"context"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/anoncredsregistry"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/contracts"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/didregistrar"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/didstore"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/metrics"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ethclient"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/kms"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/ledger"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/persistence"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/retry"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// ComponentManager builds every component of the adapter from one config,
// in dependency order, and closes what it opened on Stop.
type ComponentManager interface {
	Init() error
	Stop()

	KeyManager() kms.KeyManager
	Persistence() persistence.Persistence
	Ledger() ledger.Client
	Registries() *contracts.Registries
	DIDStore() didstore.Store
	Metrics() metrics.VDRMetrics
	AnonCredsRegistry() *anoncredsregistry.Registry
	DIDRegistrar() *didregistrar.Registrar
}

type componentManager struct {
	bgCtx context.Context
	conf  *vdrconf.VDRConfig

	keyManager  kms.KeyManager
	ethClient   ethclient.EthClient
	ledger      ledger.Client
	persistence persistence.Persistence
	registries  *contracts.Registries
	didStore    didstore.Store
	metrics     metrics.VDRMetrics

	anonCredsRegistry *anoncredsregistry.Registry
	didRegistrar      *didregistrar.Registrar

	// things that need to cleanly disconnect
	opened map[string]closeable
	// limited startup retry for connecting to blockchain
	ethClientStartupRetry *retry.Retry
}

type closeable interface {
	Close()
}

func NewComponentManager(bgCtx context.Context, conf *vdrconf.VDRConfig) ComponentManager {
	log.InitConfig(&conf.Log)
	return &componentManager{
		bgCtx:                 bgCtx,
		conf:                  conf,
		opened:                make(map[string]closeable),
		ethClientStartupRetry: retry.NewRetryLimited(&conf.Startup.BlockchainConnectRetry, &vdrconf.StartupConfigDefaults.BlockchainConnectRetry),
	}
}

func (cm *componentManager) Init() (err error) {
	cm.keyManager, err = kms.NewKeyManager(cm.bgCtx, &cm.conf.KeyManager)
	err = cm.wrapIfErr(err, msgs.MsgComponentKeyManagerInitError)

	if err == nil {
		err = cm.startEthClient()
		err = cm.wrapIfErr(err, msgs.MsgComponentEthClientInitError)
	}
	if err == nil {
		cm.ledger = ledger.NewEVMClient(cm.ethClient, &cm.conf.Blockchain)
		cm.registries, err = contracts.NewRegistries(cm.bgCtx, cm.ledger, &cm.conf.Contracts, &cm.conf.DID)
		err = cm.wrapIfErr(err, msgs.MsgComponentRegistriesInitError)
	}
	if err == nil {
		cm.persistence, err = persistence.NewPersistence(cm.bgCtx, &cm.conf.DB)
		err = cm.addIfOpened("database", cm.persistence, err, msgs.MsgComponentDBInitError)
	}
	if err == nil {
		cm.didStore = didstore.NewStore(cm.persistence)
		cm.metrics = metrics.NewMetrics(nil)
		cm.anonCredsRegistry = anoncredsregistry.NewRegistry(cm.registries, cm.keyManager, cm.didStore, &cm.conf.Endorser, cm.metrics)
		cm.didRegistrar = didregistrar.NewRegistrar(cm.registries, cm.keyManager, cm.didStore, &cm.conf.Endorser, cm.metrics)
		log.L(cm.bgCtx).Infof("Initialized for %s on chain %d", cm.registries.DIDMethod.Prefix(), cm.ethClient.ChainID())
	}
	return err
}

func (cm *componentManager) startEthClient() error {
	return cm.ethClientStartupRetry.Do(cm.bgCtx, func(attempt int) (retryable bool, err error) {
		cm.ethClient, err = ethclient.NewEthClient(cm.bgCtx, &cm.conf.Blockchain)
		return true, err
	})
}

func (cm *componentManager) wrapIfErr(err error, failMsg i18n.ErrorMessageKey, inserts ...any) error {
	if err != nil {
		return i18n.WrapError(cm.bgCtx, err, failMsg, inserts...)
	}
	return nil
}

func (cm *componentManager) addIfOpened(desc string, c closeable, err error, failMsg i18n.ErrorMessageKey) error {
	if err != nil {
		return i18n.WrapError(cm.bgCtx, err, failMsg)
	}
	cm.opened[desc] = c
	return nil
}

func (cm *componentManager) Stop() {
	log.L(cm.bgCtx).Info("Stopping")
	for name, c := range cm.opened {
		log.L(cm.bgCtx).Infof("Stopping %s", name)
		c.Close()
		log.L(cm.bgCtx).Debugf("Stopped %s", name)
	}
	cm.opened = make(map[string]closeable)
	log.L(cm.bgCtx).Debug("Stopped")
}

func (cm *componentManager) KeyManager() kms.KeyManager {
	return cm.keyManager
}

func (cm *componentManager) Persistence() persistence.Persistence {
	return cm.persistence
}

func (cm *componentManager) Ledger() ledger.Client {
	return cm.ledger
}

func (cm *componentManager) Registries() *contracts.Registries {
	return cm.registries
}

func (cm *componentManager) DIDStore() didstore.Store {
	return cm.didStore
}

func (cm *componentManager) Metrics() metrics.VDRMetrics {
	return cm.metrics
}

func (cm *componentManager) AnonCredsRegistry() *anoncredsregistry.Registry {
	return cm.anonCredsRegistry
}

func (cm *componentManager) DIDRegistrar() *didregistrar.Registrar {
	return cm.didRegistrar
}
