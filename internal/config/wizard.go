package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
)

// detectDataFile returns the first well-known data file present in the
// current directory, or the default location.
func detectDataFile() string {
	for _, candidate := range []string{"data/articles.json", "articles.json", "public/data/articles.json"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return DefaultDataURL
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to kabar! Let's configure your catalog.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Data source.
	dataPrompt := promptui.Prompt{
		Label:    "Article data file (http(s) URL or local path)",
		Default:  detectDataFile(),
		Validate: validateRequired,
	}
	dataURL, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data source: %w", err)
	}
	cfg.DataURL = strings.TrimSpace(dataURL)

	// 2. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: DefaultSiteTitle,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.SiteTitle = strings.TrimSpace(title)

	// 3. Cache backend.
	backendPrompt := promptui.Select{
		Label: "Select cache backend",
		Items: []string{
			"sqlite - persists across restarts",
			"memory - lives as long as the process",
		},
	}
	backendIdx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cache backend: %w", err)
	}
	cfg.Cache.Backend = []CacheBackend{CacheSQLite, CacheMemory}[backendIdx]

	// 4. Cache TTL.
	ttlPrompt := promptui.Prompt{
		Label:    "Cache lifetime",
		Default:  DefaultCacheTTL.String(),
		Validate: validateDuration,
	}
	ttl, err := ttlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cache ttl: %w", err)
	}
	cfg.Cache.TTL = strings.TrimSpace(ttl)

	// 5. Server port.
	portPrompt := promptui.Prompt{
		Label:    "Server port",
		Default:  strconv.Itoa(DefaultPort),
		Validate: validatePort,
	}
	port, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(port))

	// 6. Static export directory.
	outputPrompt := promptui.Prompt{
		Label:    "Output directory for the static site",
		Default:  DefaultOutputDir,
		Validate: validateRequired,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.Site.OutputDir = strings.TrimSpace(outputDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func validateDuration(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return errors.New("use a duration such as 5m or 90s")
	}
	if d <= 0 {
		return errors.New("duration must be positive")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}
	return nil
}
