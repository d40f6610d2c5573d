package config

import (
	"os"
	"strings"
)

// PathFromEnv returns TASKLIST_CONFIG, or fallback when unset.
func PathFromEnv(fallback string) string {
	if p := strings.TrimSpace(os.Getenv("TASKLIST_CONFIG")); p != "" {
		return p
	}
	return fallback
}

// ApplyEnv overrides loaded values with TASKLIST_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("TASKLIST_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKLIST_LOG_FORMAT")); v != "" {
		c.Log.Format = v
		c.Log.ApplyDefaults()
	}
	if v, ok := getEnvBool("TASKLIST_DEV_STATIC"); ok {
		c.Server.DevStatic = v
	}
}

func getEnvBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	default:
		return false, false
	}
}
