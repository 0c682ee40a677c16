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

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/Netcracker/qubership-readme-generator/client"
	"github.com/Netcracker/qubership-readme-generator/controller"
	"github.com/Netcracker/qubership-readme-generator/db"
	"github.com/Netcracker/qubership-readme-generator/entity"
	"github.com/Netcracker/qubership-readme-generator/repository"
	"github.com/Netcracker/qubership-readme-generator/security"
	"github.com/Netcracker/qubership-readme-generator/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const repoCacheCapacity = 1000
const retentionJobInterval = time.Hour

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
}

func main() {
	systemInfoService, err := service.NewSystemInfoService()
	if err != nil {
		panic(err)
	}
	setLogLevel(systemInfoService.GetLogLevel())

	var olricProvider client.OlricProvider
	var repoCache client.RepoDataCache
	if systemInfoService.GetOlricDiscoveryMode() == service.OlricDisabled {
		repoCache = client.NewLocalRepoDataCache(repoCacheCapacity, systemInfoService.GetRepoCacheTTL())
	} else {
		olricProvider, err = client.NewOlricProvider(systemInfoService.GetOlricConfig())
		if err != nil {
			log.Fatalf("Failed to start olric node: %s", err.Error())
		}
		repoCache = client.NewOlricRepoDataCache(olricProvider, systemInfoService.GetRepoCacheTTL())
	}

	generationRepository, closeStorage, err := makeGenerationRepository(systemInfoService)
	if err != nil {
		log.Fatalf("Failed to initialize history storage: %s", err.Error())
	}
	defer closeStorage()

	githubClient := client.NewGithubClient(systemInfoService.GetGithubApiUrl(), systemInfoService.GetGithubToken())
	llmClient := makeLLMClient(systemInfoService)

	templateService, err := service.NewTemplateService()
	if err != nil {
		log.Fatalf("Failed to load README templates: %s", err.Error())
	}
	authorizationService := service.NewAuthorizationService()
	repoDataService := service.NewRepositoryDataService(githubClient, repoCache, systemInfoService.IsGithubFallbackEnabled())
	promptService := service.NewPromptService(templateService)
	licenseService := service.NewLicenseService()
	historyService := service.NewHistoryService(generationRepository)
	exportService := service.NewExportService()
	cleanupService := service.NewCleanupService(generationRepository)
	modelService := service.NewLLMModelService(llmClient, olricProvider)
	readmeService := service.NewReadmeService(llmClient, repoDataService, promptService, licenseService, historyService,
		service.ReadmeServiceConfig{
			ScoringMode:    systemInfoService.GetScoringMode(),
			ValidateLLMKey: systemInfoService.IsLLMKeyValidationEnabled(),
			PersistHistory: true,
		})

	modelService.Start()
	if retention := systemInfoService.GetHistoryRetention(); retention > 0 {
		stopRetention := cleanupService.StartRetentionJob(retention, retentionJobInterval)
		defer stopRetention()
	}

	readmeController := controller.NewReadmeController(readmeService)
	markdownController := controller.NewMarkdownController(exportService, systemInfoService.GetScoringMode())
	licenseController := controller.NewLicenseController(licenseService)
	templateController := controller.NewTemplateController(templateService)
	historyController := controller.NewHistoryController(historyService, exportService, authorizationService)
	cleanupController := controller.NewCleanupController(cleanupService, authorizationService)
	llmTuningController := controller.NewLLMTuningController(modelService, authorizationService)
	healthController := controller.NewHealthController()

	secure := security.NoSecure
	if len(systemInfoService.GetApiKeys()) > 0 || systemInfoService.GetJwtSecret() != "" {
		if err = security.SetupGoGuardian(systemInfoService.GetApiKeys(), systemInfoService.GetJwtSecret()); err != nil {
			log.Fatalf("Failed to set up authentication: %s", err.Error())
		}
		secure = security.Secure
	} else {
		log.Warnf("Neither %s nor %s is set, the API is not secured", service.API_KEYS, service.JWT_SECRET)
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/readme", secure(readmeController.GenerateReadme)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/quality", secure(markdownController.ScoreMarkdown)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/render", secure(markdownController.RenderMarkdown)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/export", secure(markdownController.ExportMarkdown)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/license", secure(licenseController.GenerateLicense)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/templates", secure(templateController.ListTemplates)).Methods(http.MethodGet)

	router.HandleFunc("/api/v1/history", secure(historyController.ListGenerations)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/history/{generationId}", secure(historyController.GetGeneration)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/history/{generationId}", secure(historyController.DeleteGeneration)).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/history/{generationId}/export", secure(historyController.ExportGeneration)).Methods(http.MethodGet)

	router.HandleFunc("/api/v1/admin/history", secure(cleanupController.ClearHistory)).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/admin/llm/model", secure(llmTuningController.GetModel)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/admin/llm/model", secure(llmTuningController.UpdateModel)).Methods(http.MethodPut)

	router.HandleFunc("/live", healthController.HandleLiveRequest).Methods(http.MethodGet)
	router.HandleFunc("/ready", healthController.HandleReadyRequest).Methods(http.MethodGet)
	healthController.SetReady()

	debug.SetGCPercent(30)

	srv := makeServer(systemInfoService, router)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Failed to shut down HTTP server: %s", err.Error())
		}
		if olricProvider != nil {
			if err := olricProvider.Shutdown(shutdownCtx); err != nil {
				log.Errorf("Failed to shut down olric node: %s", err.Error())
			}
		}
	}()

	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("%v", err)
	}
	log.Info("Server stopped")
}

func setLogLevel(level string) {
	if level == "" {
		log.SetLevel(log.InfoLevel)
		return
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level %q, INFO is used", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

func makeGenerationRepository(systemInfoService service.SystemInfoService) (repository.GenerationRepository, func(), error) {
	if systemInfoService.GetStorageType() == service.StorageTypePostgres {
		cp := db.NewConnectionProvider(systemInfoService.GetCredsFromEnv())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.CreateSchema(ctx, cp, (*entity.Generation)(nil)); err != nil {
			return nil, nil, err
		}
		return repository.NewGenerationRepository(cp), func() { _ = cp.Close() }, nil
	}

	sqlDB, err := db.OpenSqlite(systemInfoService.GetSqlitePath())
	if err != nil {
		return nil, nil, err
	}
	log.Infof("README history is stored in %s", systemInfoService.GetSqlitePath())
	return repository.NewSqliteGenerationRepository(sqlDB), func() { _ = sqlDB.Close() }, nil
}

// makeLLMClient returns nil when no key is configured; generation then answers with a configuration error.
func makeLLMClient(systemInfoService service.SystemInfoService) client.LLMClient {
	if systemInfoService.GetLLMApiKey() == "" {
		return nil
	}
	llmClient, err := client.NewOpenaiClient(systemInfoService.GetLLMApiKey(), systemInfoService.GetLLMModel(), systemInfoService.GetLLMBaseUrl())
	if err != nil {
		log.Errorf("Failed to create LLM client: %s", err.Error())
		return nil
	}
	return llmClient
}

func makeServer(systemInfoService service.SystemInfoService, r *mux.Router) *http.Server {
	listenAddr := systemInfoService.GetListenAddress()

	log.Infof("Listen addr = %s", listenAddr)

	var corsOptions []handlers.CORSOption

	corsOptions = append(corsOptions, handlers.AllowedHeaders([]string{"Connection", "Accept-Encoding", "Content-Encoding", "X-Requested-With", "Content-Type", "Authorization", "api-key", "X-Github-Token"}))

	allowedOrigin := systemInfoService.GetOriginAllowed()
	if allowedOrigin != "" {
		corsOptions = append(corsOptions, handlers.AllowedOrigins([]string{allowedOrigin}))
	}
	corsOptions = append(corsOptions, handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"}))

	return &http.Server{
		Handler:      handlers.CompressHandler(handlers.CORS(corsOptions...)(r)),
		Addr:         listenAddr,
		WriteTimeout: 600 * time.Second,
		ReadTimeout:  60 * time.Second,
	}
}
