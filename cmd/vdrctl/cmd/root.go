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
	"fmt"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/componentmgr"
	"github.com/hiero-ledger/heka-identity-platform-sub002/pkg/log"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
}

func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:          "vdrctl",
		Short:        "Ledger VDR CLI",
		Long:         "vdrctl registers and resolves DIDs, AnonCreds schemas and credential definitions on the ledger.",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "vdr.yaml", "YAML config file")

	rootCmd.AddCommand(newResolveSchemaCommand(flags))
	rootCmd.AddCommand(newResolveCredDefCommand(flags))
	rootCmd.AddCommand(newResolveDIDCommand(flags))
	rootCmd.AddCommand(newRegisterSchemaCommand(flags))
	rootCmd.AddCommand(newRegisterCredDefCommand(flags))
	rootCmd.AddCommand(newCreateDIDCommand(flags))
	return rootCmd
}

// run loads the config, starts the components, and prints the JSON result of fn
func run(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, cm componentmgr.ComponentManager) (any, error)) error {
	ctx := log.WithLogField(cmd.Context(), "cmd", cmd.Name())
	var conf vdrconf.VDRConfig
	if err := vdrconf.ReadAndParseYAMLFile(ctx, flags.configFile, &conf); err != nil {
		return err
	}
	cm := componentmgr.NewComponentManager(ctx, &conf)
	defer cm.Stop()
	if err := cm.Init(); err != nil {
		return err
	}
	result, err := fn(ctx, cm)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
