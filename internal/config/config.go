package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 int    `mapstructure:"port"`
	LogLevel             string `mapstructure:"log_level"`
	ConversationsFile    string `mapstructure:"conversations_file"`
	QuestionnaireVersion string `mapstructure:"questionnaire_version"`
	MaxUploadMB          int    `mapstructure:"max_upload_mb"`
}

const (
	defaultPort                 = 8760
	defaultLogLevel             = "info"
	defaultConversationsFile    = "conversations.json"
	defaultQuestionnaireVersion = "v2"
	defaultMaxUploadMB          = 512
)

// Load reads configuration from the environment and, when path is not empty,
// from a yaml file. Environment variables win over the file. A path that
// cannot be read or parsed is an error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("port", defaultPort)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("conversations_file", defaultConversationsFile)
	v.SetDefault("questionnaire_version", defaultQuestionnaireVersion)
	v.SetDefault("max_upload_mb", defaultMaxUploadMB)

	_ = v.BindEnv("port", "DONOR_PORT")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("conversations_file", "DONOR_CONVERSATIONS_FILE")
	_ = v.BindEnv("questionnaire_version", "DONOR_QUESTIONNAIRE_VERSION")
	_ = v.BindEnv("max_upload_mb", "DONOR_MAX_UPLOAD_MB")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:                 intOr(v, "port", defaultPort),
		LogLevel:             strOr(v, "log_level", defaultLogLevel),
		ConversationsFile:    strOr(v, "conversations_file", defaultConversationsFile),
		QuestionnaireVersion: strOr(v, "questionnaire_version", defaultQuestionnaireVersion),
		MaxUploadMB:          intOr(v, "max_upload_mb", defaultMaxUploadMB),
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	return cfg, nil
}

func strOr(v *viper.Viper, key, fallback string) string {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}
	return fallback
}

// intOr falls back when the value does not parse as a positive int.
// viper.GetInt returns 0 for unparseable strings.
func intOr(v *viper.Viper, key string, fallback int) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return fallback
}
