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

	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	gormSQLite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type sqliteDialect struct{}

func newSQLiteProvider(ctx context.Context, conf *vdrconf.DBConfig) (Persistence, error) {
	return NewSQLPersistence(ctx, sqliteDialect{}, &conf.SQLite.SQLDBConfig, vdrconf.SQLiteDefaults)
}

func (sqliteDialect) Name() string {
	return "sqlite"
}

func (sqliteDialect) Dialector(dsn string) gorm.Dialector {
	return gormSQLite.Open(dsn)
}

func (sqliteDialect) MigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return migratesqlite3.WithInstance(db, &migratesqlite3.Config{})
}
