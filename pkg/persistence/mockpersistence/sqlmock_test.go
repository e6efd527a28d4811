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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSQLMockProviderScriptsTransaction(t *testing.T) {
	m, err := NewSQLMockProvider()
	require.NoError(t, err)

	m.Mock.ExpectBegin()
	m.Mock.ExpectExec("INSERT INTO dids").WillReturnError(fmt.Errorf("pop"))
	m.Mock.ExpectRollback()

	err = m.P.Transaction(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		return tx.Exec("INSERT INTO dids (did) VALUES (?)", "did:example:1").Error
	})
	assert.Regexp(t, "pop", err)
	assert.NoError(t, m.Mock.ExpectationsWereMet())
}

func TestMockDialectNoMigrations(t *testing.T) {
	d := mockDialect{}
	assert.Equal(t, "sqlmock", d.Name())
	_, err := d.MigrationDriver(nil)
	assert.ErrorIs(t, err, errNoMigrations)
}
