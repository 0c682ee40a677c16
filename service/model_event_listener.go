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

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/Netcracker/qubership-readme-generator/client"
	"github.com/Netcracker/qubership-readme-generator/exception"
	"github.com/Netcracker/qubership-readme-generator/utils"
	"github.com/Netcracker/qubership-readme-generator/view"
	"github.com/buraksezer/olric"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const ModelChangedTopicName = "llm-model-changed"

// LLMModelService switches the model of the local LLM client and, when a
// cluster is available, broadcasts the change to the other nodes.
type LLMModelService interface {
	Start()
	GetModel() (string, error)
	UpdateModel(ctx context.Context, model string) error
	listen(message olric.DTopicMessage)
}

// NewLLMModelService accepts nil op for a single node setup.
func NewLLMModelService(llmClient client.LLMClient, op client.OlricProvider) LLMModelService {
	return &llmModelServiceImpl{
		llmClient: llmClient,
		op:        op,
		nodeId:    uuid.NewString(),
		isReadyWg: sync.WaitGroup{},
	}
}

type llmModelServiceImpl struct {
	llmClient         client.LLMClient
	op                client.OlricProvider
	nodeId            string
	modelChangedTopic *olric.DTopic
	isReadyWg         sync.WaitGroup
}

func (m *llmModelServiceImpl) Start() {
	if m.op == nil {
		return
	}
	m.isReadyWg.Add(1)
	utils.SafeAsync(func() {
		m.initModelChangedDTopic()
	})
}

func (m *llmModelServiceImpl) GetModel() (string, error) {
	if m.llmClient == nil {
		return "", llmNotConfigured()
	}
	return m.llmClient.GetModel(), nil
}

func (m *llmModelServiceImpl) UpdateModel(ctx context.Context, model string) error {
	if m.llmClient == nil {
		return llmNotConfigured()
	}
	model = strings.TrimSpace(model)
	if err := m.llmClient.UpdateModel(model); err != nil {
		return err
	}
	log.Infof("LLM model switched to %s", model)

	if m.op == nil {
		return nil
	}
	m.isReadyWg.Wait()
	if m.modelChangedTopic == nil {
		log.Warnf("DTopic %s is not available, model change is applied to this node only", ModelChangedTopicName)
		return nil
	}
	msg, err := json.Marshal(view.ModelChangedNotification{Model: model, NodeId: m.nodeId})
	if err != nil {
		return err
	}
	if err = m.modelChangedTopic.Publish(string(msg)); err != nil {
		return fmt.Errorf("failed to publish model change: %w", err)
	}
	return nil
}

func (m *llmModelServiceImpl) listen(message olric.DTopicMessage) {
	str, ok := message.Message.(string)
	if !ok {
		log.Warnf("LLMModelService.listen: unexpected event %+v, will not be processed", message.Message)
		return
	}

	var notification view.ModelChangedNotification
	err := json.Unmarshal([]byte(str), &notification)
	if err != nil {
		log.Errorf("LLMModelService.listen: error unmarshalling model change notification: %v", err)
		return
	}
	if notification.NodeId == m.nodeId || m.llmClient == nil {
		return
	}

	err = m.llmClient.UpdateModel(notification.Model)
	if err != nil {
		log.Errorf("LLMModelService.listen: failed to apply model %s: %v", notification.Model, err)
		return
	}
	log.Infof("LLM model switched to %s by node %s", notification.Model, notification.NodeId)
}

func (m *llmModelServiceImpl) initModelChangedDTopic() {
	defer m.isReadyWg.Done()

	topic, err := m.op.Get().NewDTopic(ModelChangedTopicName, 100, olric.UnorderedDelivery)
	if err != nil {
		log.Errorf("Failed to create DTopic %s: %s", ModelChangedTopicName, err.Error())
		return
	}

	_, err = topic.AddListener(m.listen)
	if err != nil {
		log.Errorf("Failed to add listener to DTopic %s: %s", ModelChangedTopicName, err.Error())
		return
	}
	m.modelChangedTopic = topic
}

func llmNotConfigured() error {
	return &exception.CustomError{
		Status:  http.StatusFailedDependency,
		Code:    exception.LLMNotConfigured,
		Message: exception.LLMNotConfiguredMsg,
	}
}
