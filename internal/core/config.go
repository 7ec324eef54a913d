package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetDefaultLanguage() Language
	GetHistoryLimit() int
}

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetBaseURL() string
	GetAPIKey() string
	GetTimeout() time.Duration
	GetMaxRetries() int
	GetHistoryTokens() int
}
