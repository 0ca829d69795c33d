// Package fub provides the Follow Up Boss bounded context module.
// This file defines the module that encapsulates all CRM client setup.
package fub

import (
	"transaction_form/internal/fub/client"
	"transaction_form/internal/fub/service"
	"transaction_form/platform/config"
	"transaction_form/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Module is the Follow Up Boss bounded context module.
type Module struct {
	service *service.Service
}

// NewModule creates the CRM module. The agent roster is cached in Redis when
// rdb is non-nil, in process otherwise.
func NewModule(cfg config.FUBConfig, rdb *redis.Client, log *logger.Logger) *Module {
	apiClient := client.New(cfg, log)

	var agentCache service.AgentCache
	switch {
	case cfg.GetFUBAgentCacheTTL() <= 0:
		log.Info("fub agent cache disabled")
	case rdb != nil:
		agentCache = service.NewRedisCache(rdb, cfg.GetFUBAgentCacheTTL())
		log.Info("fub agent cache: redis", "ttl", cfg.GetFUBAgentCacheTTL().String())
	default:
		agentCache = service.NewMemoryCache(cfg.GetFUBAgentCacheTTL())
		log.Info("fub agent cache: memory", "ttl", cfg.GetFUBAgentCacheTTL().String())
	}

	return &Module{service: service.New(apiClient, agentCache, log)}
}

// Service returns the CRM service for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}
