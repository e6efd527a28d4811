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

package cmd

import (
	"context"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/componentmgr"
	"github.com/spf13/cobra"
)

func newResolveSchemaCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve-schema <schemaId>",
		Short: "resolves an AnonCreds schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, cm componentmgr.ComponentManager) (any, error) {
				return cm.AnonCredsRegistry().GetSchema(ctx, args[0]), nil
			})
		},
	}
}

func newResolveCredDefCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve-creddef <credentialDefinitionId>",
		Short: "resolves an AnonCreds credential definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, cm componentmgr.ComponentManager) (any, error) {
				return cm.AnonCredsRegistry().GetCredentialDefinition(ctx, args[0]), nil
			})
		},
	}
}

func newResolveDIDCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve-did <did>",
		Short: "resolves a DID document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, cm componentmgr.ComponentManager) (any, error) {
				return cm.DIDRegistrar().Resolve(ctx, args[0]), nil
			})
		},
	}
}
