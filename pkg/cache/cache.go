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

package cache

import (
	cacheimpl "github.com/Code-Hex/go-generics-cache"
	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
)

// Cache is a size bounded LRU, safe for concurrent use
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, val V)
	Delete(key K)
}

type lruCache[K comparable, V any] struct {
	*cacheimpl.Cache[K, V]
}

func NewCache[K comparable, V any](conf, defs *vdrconf.CacheConfig) Cache[K, V] {
	capacity := confutil.IntMin(conf.Capacity, 1, *defs.Capacity)
	return lruCache[K, V]{
		Cache: cacheimpl.New(cacheimpl.AsLRU[K, V](lru.WithCapacity(capacity))),
	}
}

func (c lruCache[K, V]) Set(key K, val V) {
	c.Cache.Set(key, val)
}
