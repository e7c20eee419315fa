package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DataConfig struct {
	// Dirs are probed in order; the first one containing a year's file wins.
	Dirs      []string          `yaml:"dirs"`
	Years     map[string]string `yaml:"years"`
	StaticDir string            `yaml:"static_dir"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
}

// defaultYearFiles maps every Lok Sabha election year to its results CSV.
// A missing file means that year is simply absent from the dataset.
func defaultYearFiles() map[string]string {
	files := make(map[string]string)
	for _, y := range []string{
		"1952", "1957", "1962", "1967", "1971", "1977", "1980", "1984",
		"1989", "1991", "1996", "1998", "1999", "2004", "2009", "2014",
		"2019", "2024",
	} {
		files[y] = "lok_sabha_" + y + "_data.csv"
	}
	return files
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: "5000"},
		Data: DataConfig{
			Dirs:      []string{"../data", "data", "static/data"},
			Years:     defaultYearFiles(),
			StaticDir: "../frontend",
		},
	}
}

// Load reads configuration from a YAML file layered over the built-in
// defaults. An empty path or a missing file is fine: the defaults match the
// standard repo layout. A .env file (if present) and the PORT environment
// variable override the server port last.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
		}
	}

	// .env is optional; ignore the error the same way gewnthar-style
	// deployments do when no file is checked in.
	_ = godotenv.Load()
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	if len(cfg.Data.Years) == 0 {
		cfg.Data.Years = defaultYearFiles()
	}
	if len(cfg.Data.Dirs) == 0 {
		return nil, fmt.Errorf("config: no data directories configured")
	}

	return cfg, nil
}
