// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/aquapump/aquapump/agent"
	"github.com/aquapump/aquapump/store/db"
	"github.com/aquapump/aquapump/store/dynamodb"
	"github.com/aquapump/aquapump/store/postgres"
)

const (
	defaultPort        = 8081
	defaultHost        = "0.0.0.0"
	defaultEnvironment = "development"
	defaultAgentURL    = "https://toolkit.rork.com"

	productionEnvironment = "production"
)

// Config is the environment-driven server configuration.
type Config struct {
	Port        int
	Host        string
	Environment string

	// CORSOrigins is the cross-origin allow-list. The default single "*"
	// entry allows every origin.
	CORSOrigins []string

	AgentURL string

	Stores db.Configs
}

// Production reports whether the runtime environment flag marks a production
// deployment; error responses hide internal detail when it does.
func (c Config) Production() bool {
	return c.Environment == productionEnvironment
}

func newConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("host", defaultHost)
	v.SetDefault("environment", defaultEnvironment)
	v.SetDefault("agent_url", defaultAgentURL)

	// recognized environment variables
	v.BindEnv("port", "PORT")
	v.BindEnv("host", "HOST")
	v.BindEnv("environment", "ENVIRONMENT", "NODE_ENV")
	v.BindEnv("cors_origin", "CORS_ORIGIN")
	v.BindEnv("agent_url", "AGENT_URL")
	v.BindEnv("database_url", "DATABASE_URL")
	v.BindEnv("dynamo.region", "DYNAMO_REGION")
	v.BindEnv("dynamo.endpoint", "DYNAMO_ENDPOINT")
	v.BindEnv("dynamo.access_key", "DYNAMO_ACCESS_KEY")
	v.BindEnv("dynamo.secret_key", "DYNAMO_SECRET_KEY")
	v.BindEnv("dynamo.pump_table", "DYNAMO_PUMP_TABLE")
	v.BindEnv("dynamo.log_table", "DYNAMO_LOG_TABLE")

	cfg := Config{
		Port:        v.GetInt("port"),
		Host:        v.GetString("host"),
		Environment: v.GetString("environment"),
		AgentURL:    v.GetString("agent_url"),
		CORSOrigins: splitOrigins(v.GetString("cors_origin")),
	}

	if v.IsSet("dynamo.region") || v.IsSet("dynamo.endpoint") {
		// read the bound keys one by one: UnmarshalKey does not merge
		// env-bound nested keys, so an env-only deployment would come
		// back empty
		cfg.Stores.Dynamo = &dynamodb.Config{
			Region:    v.GetString("dynamo.region"),
			Endpoint:  v.GetString("dynamo.endpoint"),
			AccessKey: v.GetString("dynamo.access_key"),
			SecretKey: v.GetString("dynamo.secret_key"),
			PumpTable: v.GetString("dynamo.pump_table"),
			LogTable:  v.GetString("dynamo.log_table"),
		}
	} else if url := v.GetString("database_url"); url != "" {
		cfg.Stores.Postgres = &postgres.Config{URL: url}
	}

	return cfg, nil
}

// splitOrigins parses the comma-separated allow-list, defaulting to every
// origin when unset.
func splitOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func newStoreConfigs(cfg Config) db.Configs {
	return cfg.Stores
}

func newAgentConfig(cfg Config, logger *zap.Logger) agent.Config {
	return agent.Config{Address: cfg.AgentURL, Logger: logger}
}
