package config

import (
	"encoding/json"
	"os"
	"sync"

	apperrors "session-router/internal/common/errors"
	"session-router/internal/common/logging"
	"session-router/internal/routing"
)

// FileProvider reads the routing-rule set from a JSON file on every call.
// The dispatchers hold this provider, not a config value, so file edits are
// visible on the next message without a restart. Reads are a single small
// file stat/read/parse, cheap enough to run per message.
//
// A missing file or unreadable content yields an empty rule set, never an
// error: the router keeps running and the problem is logged once per
// distinct failure.
type FileProvider struct {
	path   string
	logger logging.Logger

	mu      sync.Mutex
	lastErr string
}

// NewFileProvider creates a provider for the given routes file. A nil
// logger falls back to the global logger.
func NewFileProvider(path string, logger logging.Logger) *FileProvider {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &FileProvider{path: path, logger: logger}
}

// RouterConfig implements routing.ConfigProvider.
func (p *FileProvider) RouterConfig() routing.RouterConfig {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Absent configuration is an empty rule set.
			p.clearErr()
			return routing.RouterConfig{}
		}
		p.reportErr(apperrors.ConfigError("failed to read routes file").WithContext("path", p.path), err)
		return routing.RouterConfig{}
	}

	var cfg routing.RouterConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		p.reportErr(apperrors.ConfigError("failed to parse routes file").WithContext("path", p.path), err)
		return routing.RouterConfig{}
	}

	p.clearErr()
	return cfg
}

// reportErr logs a load failure, deduplicating consecutive identical
// failures so a broken file does not flood the log on every message.
func (p *FileProvider) reportErr(appErr error, cause error) {
	p.mu.Lock()
	repeat := p.lastErr == cause.Error()
	p.lastErr = cause.Error()
	p.mu.Unlock()

	if !repeat {
		p.logger.Error(appErr.Error(), cause, logging.String("path", p.path))
	}
}

func (p *FileProvider) clearErr() {
	p.mu.Lock()
	p.lastErr = ""
	p.mu.Unlock()
}

// Static is a fixed-value routing.ConfigProvider, used by tests and by
// hosts that manage configuration themselves.
type Static struct {
	Config routing.RouterConfig
}

// RouterConfig implements routing.ConfigProvider.
func (s Static) RouterConfig() routing.RouterConfig {
	return s.Config
}
