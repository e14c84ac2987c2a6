package main

import (
	"fmt"
	"net/http"
	"time"

	"chatter"
	"chatter/config"
	"chatter/websearch"
)

// resolveSearch constructs the search backend named by the config. Config
// validation has already checked the credentials for the chosen backend.
func resolveSearch(cfg config.Config) (chatter.SearchProvider, error) {
	client := &http.Client{Timeout: time.Duration(cfg.APITimeoutSecs) * time.Second}
	switch cfg.SearchProvider {
	case "google":
		return websearch.NewGoogle(cfg.GoogleAPIKey, cfg.GoogleCSEID,
			websearch.WithGoogleMaxResults(cfg.SearchMaxResults),
			websearch.WithGoogleHTTPClient(client)), nil
	case "duckduckgo":
		return websearch.NewDuckDuckGo(
			websearch.WithDuckDuckGoMaxResults(cfg.SearchMaxResults),
			websearch.WithDuckDuckGoHTTPClient(client)), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q: must be \"google\" or \"duckduckgo\"", cfg.SearchProvider)
	}
}
