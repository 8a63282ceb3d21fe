package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultServerURL = "http://localhost:8080"

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vf", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// getServerURL returns the server URL from env var, config, or default.
func getServerURL() string {
	if v := os.Getenv("VF_SERVER_URL"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return defaultServerURL
}

func newConfigCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI settings",
		Long:  "Show the server the CLI talks to, or save a new one with --server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, server)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "save this server URL")

	return cmd
}

func runConfig(cmd *cobra.Command, server string) error {
	out := cmd.OutOrStdout()

	if server != "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.ServerURL = server
		if err := saveConfig(cfg); err != nil {
			return err
		}
	}

	if isJSON() {
		return printJSON(out, map[string]string{"server_url": getServerURL()})
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Server: %s\n", getServerURL())
	fmt.Fprintf(out, "Config: %s\n", path)
	return nil
}
