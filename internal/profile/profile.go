// Package profile loads a named INI profile's [Profile] section as a set
// of query parameters, per spec.md §6's /getprofile contract and
// original_source/web_api.rs's load_profile_query.
package profile

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Load tries "<basePath>/<name>" then "<basePath>/base/<name>", parses
// its [Profile] section, and returns the section's key=value pairs
// encoded as a single URL query string (suitable for re-parsing into a
// SubQuery struct the same way a /sub request's query is parsed).
func Load(basePath, name string) (string, error) {
	candidates := []string{filepath.Join(basePath, name)}
	if filepath.Base(filepath.Dir(name)) != "base" {
		candidates = append(candidates, filepath.Join(basePath, "base", name))
	}

	var lastErr error
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			lastErr = err
			continue
		}

		cfg, err := ini.Load(path)
		if err != nil {
			return "", fmt.Errorf("failed to parse profile %q: %w", path, err)
		}

		section, err := cfg.GetSection("Profile")
		if err != nil {
			return "", fmt.Errorf("profile %q has no [Profile] section", path)
		}

		values := url.Values{}
		for _, key := range section.Keys() {
			values.Set(key.Name(), key.Value())
		}
		return values.Encode(), nil
	}

	return "", fmt.Errorf("profile not found: %s (%w)", name, lastErr)
}
