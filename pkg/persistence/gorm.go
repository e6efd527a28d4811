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

package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/google/uuid"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"gorm.io/gorm"

	// file:// migration sources
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Dialect binds a gorm driver and a golang-migrate driver for one database type
type Dialect interface {
	Name() string
	Dialector(dsn string) gorm.Dialector
	MigrationDriver(db *sql.DB) (migratedb.Driver, error)
}

type sqlPersistence struct {
	dialect       Dialect
	gdb           *gorm.DB
	db            *sql.DB
	migrationsDir string
}

// NewSQLPersistence opens the DB through the dialect, sizes the pool and optionally migrates it to the latest schema
func NewSQLPersistence(ctx context.Context, dialect Dialect, conf, defs *vdrconf.SQLDBConfig) (Persistence, error) {
	if conf.DSN == "" {
		return nil, i18n.NewError(ctx, msgs.MsgPersistenceMissingDSN)
	}

	gdb, err := gorm.Open(dialect.Dialector(conf.DSN), &gorm.Config{SkipDefaultTransaction: true})
	var db *sql.DB
	if err == nil {
		db, err = gdb.DB()
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgPersistenceInitFailed)
	}
	if conf.DebugQueries {
		gdb = gdb.Debug()
	}

	db.SetMaxOpenConns(confutil.IntMin(conf.MaxOpenConns, 1, *defs.MaxOpenConns))
	db.SetMaxIdleConns(confutil.Int(conf.MaxIdleConns, *defs.MaxIdleConns))
	db.SetConnMaxIdleTime(confutil.DurationMin(conf.ConnMaxIdleTime, 0, *defs.ConnMaxIdleTime))
	db.SetConnMaxLifetime(confutil.DurationMin(conf.ConnMaxLifetime, 0, *defs.ConnMaxLifetime))

	sp := &sqlPersistence{
		dialect:       dialect,
		gdb:           gdb,
		db:            db,
		migrationsDir: conf.MigrationsDir,
	}
	if confutil.Bool(conf.AutoMigrate, *defs.AutoMigrate) {
		if err := sp.migrateUp(ctx); err != nil {
			return nil, err
		}
	}
	return sp, nil
}

func (sp *sqlPersistence) migrateUp(ctx context.Context) error {
	if sp.migrationsDir == "" {
		return i18n.NewError(ctx, msgs.MsgPersistenceMissingMigrationDir)
	}
	source := "file://" + sp.migrationsDir
	log.L(ctx).Infof("Applying %s migrations from %s", sp.dialect.Name(), source)

	driver, err := sp.dialect.MigrationDriver(sp.db)
	var m *migrate.Migrate
	if err == nil {
		m, err = migrate.NewWithDatabaseInstance(source, sp.dialect.Name(), driver)
	}
	if err == nil {
		if err = m.Up(); errors.Is(err, migrate.ErrNoChange) {
			err = nil
		}
	}
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgPersistenceMigrationFailed)
	}
	version, dirty, _ := m.Version()
	log.L(ctx).Infof("Schema at version %d (dirty=%t)", version, dirty)
	return nil
}

func (sp *sqlPersistence) DB() *gorm.DB {
	return sp.gdb
}

func (sp *sqlPersistence) Close() {
	if err := sp.db.Close(); err != nil {
		log.L(context.Background()).Warnf("Error closing %s DB: %s", sp.dialect.Name(), err)
	}
}

// Transaction runs fn in a DB transaction, with a "dbtx" log field on the context it passes
func (sp *sqlPersistence) Transaction(ctx context.Context, fn func(ctx context.Context, tx *gorm.DB) error) error {
	txCtx := log.WithLogField(ctx, "dbtx", uuid.NewString()[:8])
	return sp.gdb.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		return fn(txCtx, tx)
	})
}
