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

package rpcclient

import (
	"context"
	"net/url"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/hiero-ledger/heka-identity-platform-sub002/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/ffresty"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/rpcbackend"
)

// Client is the JSON/RPC connection to the ledger node
type Client interface {
	CallRPC(ctx context.Context, result any, method string, params ...any) *CallError
}

// CallError is a failed call. RPC holds the error object returned by the node.
type CallError struct {
	Method string
	RPC    *rpcbackend.RPCError
}

func (e *CallError) Error() string {
	return e.RPC.Error().Error()
}

// Data is the raw "data" member of the node's error, where reverts are reported
func (e *CallError) Data() []byte {
	return e.RPC.Data.Bytes()
}

type backendClient struct {
	backend rpcbackend.Backend
}

func NewHTTPClient(ctx context.Context, conf *vdrconf.HTTPClientConfig) (Client, error) {
	if conf.URL == "" {
		return nil, i18n.NewError(ctx, msgs.MsgEthClientNoURL)
	}
	u, err := url.Parse(conf.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, i18n.WrapError(ctx, err, msgs.MsgRPCClientInvalidHTTPURL, conf.URL)
	}
	defs := vdrconf.DefaultHTTPConfig
	rc := ffresty.NewWithConfig(ctx, ffresty.Config{
		URL: u.String(),
		HTTPConfig: ffresty.HTTPConfig{
			HTTPHeaders:           conf.HTTPHeaders,
			AuthUsername:          conf.Auth.Username,
			AuthPassword:          conf.Auth.Password,
			HTTPRequestTimeout:    fftypes.FFDuration(confutil.DurationMin(conf.RequestTimeout, 0, *defs.RequestTimeout)),
			HTTPConnectionTimeout: fftypes.FFDuration(confutil.DurationMin(conf.ConnectionTimeout, 0, *defs.ConnectionTimeout)),
		},
	})
	return WrapBackend(rpcbackend.NewRPCClient(rc)), nil
}

// WrapBackend adapts any firefly-signer backend, such as one over an existing resty client
func WrapBackend(backend rpcbackend.Backend) Client {
	return &backendClient{backend: backend}
}

func (c *backendClient) CallRPC(ctx context.Context, result any, method string, params ...any) *CallError {
	if rpcErr := c.backend.CallRPC(ctx, result, method, params...); rpcErr != nil {
		return &CallError{Method: method, RPC: rpcErr}
	}
	return nil
}
