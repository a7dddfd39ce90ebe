package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/autokeeper/internal/flagx"
	"github.com/dmitrijs2005/autokeeper/internal/timex"
)

// JsonConfig is used only for unmarshalling; absent keys keep the current
// value.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	SessionDB      *string         `json:"session_db"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c/-config. Read and
// unmarshal errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.SessionDB != nil {
		cfg.SessionDB = *jc.SessionDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
