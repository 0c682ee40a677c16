// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/buraksezer/olric"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
	log "github.com/sirupsen/logrus"
)

// RepoDataCache keeps GitHub repository snapshots between generations.
type RepoDataCache interface {
	Get(key string) (*view.RepositoryData, bool)
	Put(key string, data view.RepositoryData)
}

const repoDataDMapName = "readme-repo-data"

// NewOlricRepoDataCache stores snapshots in a DMap shared by every node of the cluster.
func NewOlricRepoDataCache(op OlricProvider, ttl time.Duration) RepoDataCache {
	return &olricRepoDataCache{op: op, ttl: ttl}
}

type olricRepoDataCache struct {
	op   OlricProvider
	ttl  time.Duration
	once sync.Once
	dm   *olric.DMap
}

func (c *olricRepoDataCache) dmap() *olric.DMap {
	c.once.Do(func() {
		var err error
		c.dm, err = c.op.Get().NewDMap(repoDataDMapName)
		if err != nil {
			log.Errorf("Failed to create DMap %s: %s", repoDataDMapName, err.Error())
		}
	})
	return c.dm
}

func (c *olricRepoDataCache) Get(key string) (*view.RepositoryData, bool) {
	dm := c.dmap()
	if dm == nil {
		return nil, false
	}
	val, err := dm.Get(key)
	if err != nil {
		if !errors.Is(err, olric.ErrKeyNotFound) {
			log.Warnf("Failed to read repository data %s from cache: %s", key, err.Error())
		}
		return nil, false
	}
	return decodeRepoData(key, val)
}

func (c *olricRepoDataCache) Put(key string, data view.RepositoryData) {
	dm := c.dmap()
	if dm == nil {
		return
	}
	b, err := json.Marshal(data)
	if err != nil {
		log.Errorf("Failed to encode repository data %s: %s", key, err.Error())
		return
	}
	if err = dm.PutEx(key, b, c.ttl); err != nil {
		log.Warnf("Failed to store repository data %s in cache: %s", key, err.Error())
	}
}

// NewLocalRepoDataCache is used when the olric node is disabled.
func NewLocalRepoDataCache(capacity int, ttl time.Duration) RepoDataCache {
	cache := libcache.LRU.New(capacity)
	cache.SetTTL(ttl)
	cache.RegisterOnExpired(func(key, _ interface{}) {
		cache.Delete(key)
	})
	return &localRepoDataCache{cache: cache}
}

type localRepoDataCache struct {
	cache libcache.Cache
}

func (c *localRepoDataCache) Get(key string) (*view.RepositoryData, bool) {
	val, ok := c.cache.Load(key)
	if !ok {
		return nil, false
	}
	return decodeRepoData(key, val)
}

func (c *localRepoDataCache) Put(key string, data view.RepositoryData) {
	b, err := json.Marshal(data)
	if err != nil {
		log.Errorf("Failed to encode repository data %s: %s", key, err.Error())
		return
	}
	c.cache.Store(key, b)
}

func decodeRepoData(key string, val interface{}) (*view.RepositoryData, bool) {
	b, ok := val.([]byte)
	if !ok {
		log.Warnf("Unexpected cached value type %T for %s", val, key)
		return nil, false
	}
	var data view.RepositoryData
	if err := json.Unmarshal(b, &data); err != nil {
		log.Warnf("Failed to decode cached repository data %s: %s", key, err.Error())
		return nil, false
	}
	return &data, true
}
