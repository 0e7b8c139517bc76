package config

const (
	EnvLocal = "local"
	EnvProd  = "prod"
)

var globalConfig *Config

// Global returns the process-wide configuration set by SetGlobal.
func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env    string `env:"ULTIMA_ENV" env-default:"local"`
	Addr   string `env:"ULTIMA_ADDR" env-default:":8008"`
	DBPath string `env:"ULTIMA_DB_PATH" env-default:"ultima.db"`
	OpenAI OpenAIConfig
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model   string `env:"OPENAI_MODEL" env-default:"gpt-3.5-turbo"`
}
