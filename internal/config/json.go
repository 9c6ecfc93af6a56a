package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly
// duration handling. The file format intentionally has no field for the
// passphrase or password: secrets enter via environment or flags only.
type StructuredJSONConfig struct {
	Remote struct {
		URL            string   `json:"supabase_url"`
		APIKey         string   `json:"supabase_key"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"remote,omitempty"`

	Account struct {
		Email string `json:"email"`
	} `json:"account,omitempty"`

	Sync struct {
		Enabled            *bool    `json:"enabled"`
		VaultName          string   `json:"vault_name"`
		Mode               string   `json:"mode"`
		Domains            []string `json:"domains"`
		Interval           Duration `json:"sync_interval"`
		DebounceWindow     Duration `json:"debounce_window"`
		AuthDebounceWindow Duration `json:"auth_debounce_window"`
		ObservationsFile   string   `json:"observations_file"`
	} `json:"sync,omitempty"`

	Status struct {
		Address string `json:"status_address"`
		DBPath  string `json:"status_db_path"`
	} `json:"status,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Remote: Remote{
			URL:            jsonCfg.Remote.URL,
			APIKey:         jsonCfg.Remote.APIKey,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		Account: Account{
			Email: jsonCfg.Account.Email,
		},
		Sync: Sync{
			Enabled:            jsonCfg.Sync.Enabled,
			VaultName:          jsonCfg.Sync.VaultName,
			Mode:               jsonCfg.Sync.Mode,
			Domains:            jsonCfg.Sync.Domains,
			Interval:           time.Duration(jsonCfg.Sync.Interval),
			DebounceWindow:     time.Duration(jsonCfg.Sync.DebounceWindow),
			AuthDebounceWindow: time.Duration(jsonCfg.Sync.AuthDebounceWindow),
			ObservationsFile:   jsonCfg.Sync.ObservationsFile,
		},
		Status: Status{
			Address: jsonCfg.Status.Address,
			DBPath:  jsonCfg.Status.DBPath,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
