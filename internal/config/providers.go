package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProviderEndpoints holds the base URLs for the four upstream news APIs.
// Defaults point at the real services; a YAML override file lets staging
// environments and integration tests aim the clients elsewhere.
type ProviderEndpoints struct {
	GNews   string `yaml:"gnews"`
	NewsAPI string `yaml:"newsapi"`
	Bing    string `yaml:"bing"`
	NYT     string `yaml:"nyt"`
}

// DefaultProviderEndpoints returns the production upstream base URLs.
func DefaultProviderEndpoints() ProviderEndpoints {
	return ProviderEndpoints{
		GNews:   "https://gnews.io/api/v4",
		NewsAPI: "https://newsapi.org/v2",
		Bing:    "https://api.bing.microsoft.com/v7.0",
		NYT:     "https://api.nytimes.com/svc/topstories/v2",
	}
}

type providerFile struct {
	Providers ProviderEndpoints `yaml:"providers"`
}

// LoadProviderEndpoints returns the provider base URLs, applying overrides
// from the YAML file at path when path is non-empty. Fields left empty in
// the file keep their defaults.
func LoadProviderEndpoints(path string) (ProviderEndpoints, error) {
	endpoints := DefaultProviderEndpoints()
	if path == "" {
		return endpoints, nil
	}

	// #nosec G304 -- path comes from the PROVIDERS_CONFIG env var set by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return endpoints, fmt.Errorf("read provider config: %w", err)
	}

	var file providerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return endpoints, fmt.Errorf("parse provider config: %w", err)
	}

	if file.Providers.GNews != "" {
		endpoints.GNews = file.Providers.GNews
	}
	if file.Providers.NewsAPI != "" {
		endpoints.NewsAPI = file.Providers.NewsAPI
	}
	if file.Providers.Bing != "" {
		endpoints.Bing = file.Providers.Bing
	}
	if file.Providers.NYT != "" {
		endpoints.NYT = file.Providers.NYT
	}
	return endpoints, nil
}
