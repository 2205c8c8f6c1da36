package lambda

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"luna-chat-api/internal/config"
	"luna-chat-api/pkg/server"
)

// ContainerManager builds the service container once per warm Lambda
// instance and hands it to every invocation.
type ContainerManager struct {
	container *server.Container
	loader    func() (*config.Config, error)
	mu        sync.RWMutex
	initOnce  sync.Once
	initErr   error
}

var (
	globalContainerManager *ContainerManager
	containerManagerOnce   sync.Once
)

// GetContainerManager returns the global container manager instance
func GetContainerManager() *ContainerManager {
	containerManagerOnce.Do(func() {
		globalContainerManager = NewContainerManager(config.GetOptimizedConfig)
	})
	return globalContainerManager
}

// NewContainerManager creates a manager that loads configuration with loader
func NewContainerManager(loader func() (*config.Config, error)) *ContainerManager {
	return &ContainerManager{loader: loader}
}

// GetContainer returns the service container, initializing it on first use.
// An initialization failure is sticky for the lifetime of the instance.
func (cm *ContainerManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.initOnce.Do(func() {
		err := cm.initialize()
		cm.mu.Lock()
		cm.initErr = err
		cm.mu.Unlock()
	})

	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.initErr != nil {
		return nil, cm.initErr
	}
	return cm.container, nil
}

func (cm *ContainerManager) initialize() error {
	cfg, err := cm.loader()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.ConfigureLogging(cfg.Log); err != nil {
		logrus.WithError(err).Warn("Falling back to default logging")
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	serverless := config.GetServerlessConfig()
	logrus.WithFields(logrus.Fields{
		"function": serverless.FunctionName,
		"region":   serverless.Region,
		"stage":    serverless.Stage,
		"mode":     config.GetDeploymentMode(),
	}).Info("Container initialized")

	cm.mu.Lock()
	cm.container = container
	cm.mu.Unlock()

	return nil
}

// IsHealthy reports whether a container has been built successfully.
// Before the first invocation it is false, which marks a cold start.
func (cm *ContainerManager) IsHealthy() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return cm.initErr == nil && cm.container != nil
}
