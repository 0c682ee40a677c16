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
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/buraksezer/olric"
	discovery "github.com/buraksezer/olric-cloud-plugin/lib"
	"github.com/buraksezer/olric/config"
	log "github.com/sirupsen/logrus"
)

const (
	OlricModeLocal = "local"
	OlricModeLan   = "lan"
)

const DefaultOlricClusterLabel = "olric-cluster=readme-generator"

// OlricConfig describes the embedded node shared by the repository cache and the model topic.
type OlricConfig struct {
	DiscoveryMode string
	ReplicaCount  int
	// Namespace and ClusterLabel select the k8s pods of the cluster in lan mode.
	Namespace    string
	ClusterLabel string
	BindAddr     string
}

type OlricProvider interface {
	Get() *olric.Olric
	Shutdown(ctx context.Context) error
}

type olricProviderImpl struct {
	started sync.WaitGroup
	node    *olric.Olric
}

// NewOlricProvider starts an embedded olric node. Get blocks until the node has joined the cluster.
func NewOlricProvider(cfg OlricConfig) (OlricProvider, error) {
	nodeCfg, err := buildOlricConfig(cfg)
	if err != nil {
		return nil, err
	}

	prov := &olricProviderImpl{}
	prov.started.Add(1)
	nodeCfg.Started = prov.started.Done

	prov.node, err = olric.New(nodeCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create olric node: %w", err)
	}

	go func() {
		if err := prov.node.Start(); err != nil {
			log.Panicf("Olric node for readme generator cannot be started. Error: %s", err.Error())
		}
	}()

	return prov, nil
}

func (op *olricProviderImpl) Get() *olric.Olric {
	op.started.Wait()
	return op.node
}

func (op *olricProviderImpl) Shutdown(ctx context.Context) error {
	return op.node.Shutdown(ctx)
}

func buildOlricConfig(cfg OlricConfig) (*config.Config, error) {
	if cfg.DiscoveryMode == "" {
		cfg.DiscoveryMode = OlricModeLocal
	}
	if cfg.ReplicaCount <= 0 {
		cfg.ReplicaCount = 1
	}
	if cfg.ClusterLabel == "" {
		cfg.ClusterLabel = DefaultOlricClusterLabel
	}
	if cfg.BindAddr == "" {
		cfg.BindAddr = "0.0.0.0"
	}

	switch cfg.DiscoveryMode {
	case OlricModeLan:
		if cfg.Namespace == "" {
			return nil, fmt.Errorf("namespace is required for olric %s discovery", OlricModeLan)
		}
		log.Infof("Olric runs in cloud mode, namespace %s, replicas %d", cfg.Namespace, cfg.ReplicaCount)
		nodeCfg := newQuietConfig(OlricModeLan)
		nodeCfg.ServiceDiscovery = map[string]interface{}{
			"plugin":   &discovery.CloudDiscovery{},
			"provider": "k8s",
			"args":     fmt.Sprintf("namespace=%s label_selector=\"%s\"", cfg.Namespace, cfg.ClusterLabel),
		}
		nodeCfg.PartitionCount = uint64(cfg.ReplicaCount * 4)
		nodeCfg.ReplicaCount = cfg.ReplicaCount
		nodeCfg.MemberCountQuorum = int32(cfg.ReplicaCount)
		nodeCfg.BootstrapTimeout = 60 * time.Second
		nodeCfg.MaxJoinAttempts = 60
		return nodeCfg, nil
	case OlricModeLocal:
		log.Info("Olric runs in local mode")
		nodeCfg := newQuietConfig(OlricModeLocal)
		port, err := freePort(cfg.BindAddr)
		if err != nil {
			return nil, err
		}
		memberlistPort, err := freePort(cfg.BindAddr)
		if err != nil {
			return nil, err
		}
		nodeCfg.BindAddr = cfg.BindAddr
		nodeCfg.BindPort = port
		nodeCfg.MemberlistConfig.BindAddr = cfg.BindAddr
		nodeCfg.MemberlistConfig.BindPort = memberlistPort
		nodeCfg.PartitionCount = 5
		return nodeCfg, nil
	default:
		log.Warnf("Unknown olric discovery mode %s, %s mode is used", cfg.DiscoveryMode, OlricModeLocal)
		cfg.DiscoveryMode = OlricModeLocal
		return buildOlricConfig(cfg)
	}
}

func newQuietConfig(mode string) *config.Config {
	nodeCfg := config.New(mode)
	nodeCfg.LogLevel = "WARN"
	nodeCfg.LogVerbosity = 2
	return nodeCfg
}

// freePort asks the OS for an unused port on addr.
func freePort(addr string) (int, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(addr, "0"))
	if err != nil {
		return 0, fmt.Errorf("failed to find a free port on %s: %w", addr, err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port, nil
}
