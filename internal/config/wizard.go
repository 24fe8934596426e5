package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .trackboard.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to trackboard! Let's configure your tracker UI.")
	fmt.Println()

	defaults := DefaultConfig()

	backendPrompt := promptui.Prompt{
		Label:   "Tracker backend base URL",
		Default: defaults.BackendURL,
	}
	backendURL, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}

	portPrompt := promptui.Prompt{
		Label:   "Port to serve the UI on",
		Default: strconv.Itoa(defaults.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	staticPrompt := promptui.Prompt{
		Label:   "Static asset directory",
		Default: defaults.StaticDir,
	}
	staticDir, err := staticPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("static dir: %w", err)
	}

	cachePrompt := promptui.Prompt{
		Label:   "Offline cache database path",
		Default: defaults.CachePath,
	}
	cachePath, err := cachePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cache path: %w", err)
	}

	offlinePrompt := promptui.Select{
		Label: "Enable offline caching of backend reads",
		Items: []string{"yes", "no"},
	}
	_, offline, err := offlinePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("offline selection: %w", err)
	}

	cfg := DefaultConfig()
	cfg.BackendURL = backendURL
	cfg.Port = port
	cfg.StaticDir = staticDir
	cfg.CachePath = cachePath
	if offline == "no" {
		cfg.Precache = nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}
