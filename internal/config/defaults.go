package config

// DefaultPrecache are the static asset patterns warmed into the offline
// cache on startup.
var DefaultPrecache = []string{
	"/",
	"/index.html",
	"/manifest.json",
	"/css/**/*.css",
	"/js/**/*.js",
	"/icons/*.png",
}

// DefaultConfig returns a Config with sensible defaults for a local
// tracker backend.
func DefaultConfig() *Config {
	return &Config{
		BackendURL:      "http://localhost:8000/api/v1",
		Port:            8080,
		StaticDir:       "static",
		APIPrefix:       "/api/",
		CachePath:       "trackboard.cache.db",
		CacheGeneration: "v4",
		Precache:        DefaultPrecache,
		AllowAllOrigins: true,
	}
}
