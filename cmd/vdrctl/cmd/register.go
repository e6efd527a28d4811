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
	"encoding/json"
	"os"

	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/componentmgr"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/vdrapi"
	"github.com/spf13/cobra"
)

type signerFlags struct {
	identityKey string
	endorserKey string
}

func (sf *signerFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sf.identityKey, "identity-key", "", "key id of the issuer, looked up from the local DID store when empty")
	cmd.Flags().StringVar(&sf.endorserKey, "endorser-key", "", "key id of the endorser, the configured default when empty")
}

type registerSchemaFlags struct {
	signerFlags
	schema vdrapi.Schema
}

func newRegisterSchemaCommand(flags *rootFlags) *cobra.Command {
	rf := &registerSchemaFlags{}
	cmd := &cobra.Command{
		Use:   "register-schema",
		Short: "registers an AnonCreds schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, cm componentmgr.ComponentManager) (any, error) {
				return cm.AnonCredsRegistry().RegisterSchema(ctx, &vdrapi.RegisterSchemaOptions{
					Schema:        rf.schema,
					IdentityKeyID: rf.identityKey,
					EndorserKeyID: rf.endorserKey,
				})
			})
		},
	}
	rf.bind(cmd)
	cmd.Flags().StringVar(&rf.schema.IssuerID, "issuer", "", "issuer DID")
	cmd.Flags().StringVar(&rf.schema.Name, "name", "", "schema name")
	cmd.Flags().StringVar(&rf.schema.Version, "version", "", "schema version")
	cmd.Flags().StringSliceVar(&rf.schema.AttrNames, "attr", nil, "attribute names")
	_ = cmd.MarkFlagRequired("issuer")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

type registerCredDefFlags struct {
	signerFlags
	file string
}

func newRegisterCredDefCommand(flags *rootFlags) *cobra.Command {
	rf := &registerCredDefFlags{}
	cmd := &cobra.Command{
		Use:   "register-creddef",
		Short: "registers an AnonCreds credential definition read from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var credDef vdrapi.CredentialDefinition
			data, err := os.ReadFile(rf.file)
			if err == nil {
				err = json.Unmarshal(data, &credDef)
			}
			if err != nil {
				return err
			}
			return run(cmd, flags, func(ctx context.Context, cm componentmgr.ComponentManager) (any, error) {
				return cm.AnonCredsRegistry().RegisterCredentialDefinition(ctx, &vdrapi.RegisterCredentialDefinitionOptions{
					CredentialDefinition: credDef,
					IdentityKeyID:        rf.identityKey,
					EndorserKeyID:        rf.endorserKey,
				})
			})
		},
	}
	rf.bind(cmd)
	cmd.Flags().StringVarP(&rf.file, "file", "f", "", "credential definition JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type createDIDFlags struct {
	opts            vdrapi.DidCreateOptions
	serviceType     string
	serviceEndpoint string
}

func newCreateDIDCommand(flags *rootFlags) *cobra.Command {
	cf := &createDIDFlags{}
	cmd := &cobra.Command{
		Use:   "create-did",
		Short: "creates a key and writes a new DID for it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cf.serviceEndpoint != "" {
				cf.opts.Services = append(cf.opts.Services, vdrapi.Service{Type: cf.serviceType, ServiceEndpoint: cf.serviceEndpoint})
			}
			return run(cmd, flags, func(ctx context.Context, cm componentmgr.ComponentManager) (any, error) {
				return cm.DIDRegistrar().Create(ctx, &cf.opts)
			})
		},
	}
	cmd.Flags().StringVar(&cf.opts.KeyType, "key-type", "secp256k1", "key type")
	cmd.Flags().StringVar(&cf.opts.KeyID, "key-id", "", "key id to create, generated when empty")
	cmd.Flags().StringVar(&cf.opts.EndorserKeyID, "endorser-key", "", "key id of the endorser, the configured default when empty")
	cmd.Flags().StringVar(&cf.serviceType, "service-type", "DIDCommMessaging", "type of the service endpoint")
	cmd.Flags().StringVar(&cf.serviceEndpoint, "service-endpoint", "", "optional service endpoint URL")
	return cmd
}
