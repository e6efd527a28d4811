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

package mockpersistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DATA-DOG/go-sqlmock"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/persistence"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var errNoMigrations = errors.New("migrations are not supported against sqlmock")

// SQLMockProvider is a Persistence whose SQL is scripted through Mock,
// for exercising DB error paths. gorm sees it as postgres.
type SQLMockProvider struct {
	Mock sqlmock.Sqlmock
	P    persistence.Persistence
}

type mockDialect struct {
	conn *sql.DB
}

func (mockDialect) Name() string {
	return "sqlmock"
}

func (d mockDialect) Dialector(string) gorm.Dialector {
	return gormPostgres.New(gormPostgres.Config{Conn: d.conn})
}

func (mockDialect) MigrationDriver(*sql.DB) (migratedb.Driver, error) {
	return nil, errNoMigrations
}

func NewSQLMockProvider() (*SQLMockProvider, error) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}
	// single connection, no auto-migrate
	p, err := persistence.NewSQLPersistence(context.Background(), mockDialect{conn: conn},
		&vdrconf.SQLDBConfig{DSN: "sqlmock"}, vdrconf.SQLiteDefaults)
	if err != nil {
		return nil, err
	}
	return &SQLMockProvider{Mock: mock, P: p}, nil
}
