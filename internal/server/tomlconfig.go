package server

import "github.com/BurntSushi/toml"

// fileConfig mirrors Config's on-disk TOML representation. Fields left out
// of the file keep whatever DefaultConfig already set.
type fileConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Dir        string `toml:"dir"`
	DBFilename string `toml:"dbfilename"`
	ReplicaOf  string `toml:"replicaof"`
}

// LoadConfigFile reads a TOML config file at path and overlays it onto
// DefaultConfig. A missing or empty field in the file leaves the default
// untouched.
func LoadConfigFile(path string) (*Config, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if fc.Host != "" {
		cfg.Host = fc.Host
	}
	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if fc.Dir != "" {
		cfg.Dir = fc.Dir
	}
	if fc.DBFilename != "" {
		cfg.DBFilename = fc.DBFilename
	}
	if fc.ReplicaOf != "" {
		cfg.ReplicaOf = fc.ReplicaOf
	}
	return cfg, nil
}
