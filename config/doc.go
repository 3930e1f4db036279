// Package config loads client configuration from files and the environment.
//
// It uses Viper to read a YAML file, merges variables from a .env file
// (godotenv) and finally applies ESPLORA_* environment variables, which
// take precedence over the file.
//
// # Usage
//
//	var cfg esplora.Config
//	if err := config.Load(&cfg, config.WithConfigFile("esplora.yml")); err != nil {
//	    return err
//	}
//
// Environment variables map onto keys by dropping the prefix and
// lowercasing, with underscores tried both as separators and as nesting
// (ESPLORA_BASE_URL → base_url, ESPLORA_TLS_CA_FILE → tls.ca_file).
package config
