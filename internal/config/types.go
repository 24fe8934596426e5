package config

// DefaultPath is where the CLI looks for configuration when no --config
// flag is given.
const DefaultPath = ".trackboard.yml"

// Config is the top-level trackboard configuration, corresponding to
// .trackboard.yml.
type Config struct {
	BackendURL      string   `yaml:"backend_url" koanf:"backend_url"`
	Port            int      `yaml:"port" koanf:"port"`
	StaticDir       string   `yaml:"static_dir" koanf:"static_dir"`
	APIPrefix       string   `yaml:"api_prefix" koanf:"api_prefix"`
	CachePath       string   `yaml:"cache_path" koanf:"cache_path"`
	CacheGeneration string   `yaml:"cache_generation" koanf:"cache_generation"`
	Precache        []string `yaml:"precache" koanf:"precache"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
