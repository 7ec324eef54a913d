package installer

import "strings"

// Keys written to the .env file.
const (
	KeyLanguage       = "INTAKE_DEFAULT_LANGUAGE"
	KeyDebug          = "INTAKE_DEBUG"
	KeyProvider       = "LLM_PROVIDER"
	KeyModel          = "LLM_MODEL"
	KeyBaseURL        = "LLM_BASE_URL"
	KeyAPIKey         = "LLM_API_KEY"
	KeyEnableHTTP     = "ENABLE_HTTP"
	KeyEnableTelegram = "ENABLE_TELEGRAM"
	KeyTelegramToken  = "TELEGRAM_TOKEN"
	KeyTelegramChats  = "TELEGRAM_ALLOWED_CHATS"
	KeyCacheBackend   = "CACHE_BACKEND"
	KeyRedisAddr      = "REDIS_ADDR"

	// keyChannel only lives in the state between steps.
	keyChannel = "_CHANNEL"
)

type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) provider() string {
	return strings.ToLower(s.EnvVars[KeyProvider])
}

func (s *InstallState) wantsTelegram() bool {
	return strings.Contains(strings.ToLower(s.EnvVars[keyChannel]), "telegram")
}
