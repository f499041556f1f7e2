package config

import (
	"encoding/json"
	"os"

	"github.com/terminalchat/terminalchat/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config fields untouched.
type jsonConfig struct {
	AppDir        *string `json:"app_dir"`
	DatabasePath  *string `json:"database_path"`
	FilesDir      *string `json:"files_dir"`
	SessionSecret *string `json:"session_secret"`
	LogLevel      *string `json:"log_level"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flag. No flag means no JSON layer. Read and unmarshal errors
// panic; the file was explicitly requested, so silently ignoring it would
// hide a misconfiguration.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.AppDir != nil {
		cfg.AppDir = *jc.AppDir
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.FilesDir != nil {
		cfg.FilesDir = *jc.FilesDir
	}
	if jc.SessionSecret != nil {
		cfg.SessionSecret = *jc.SessionSecret
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
