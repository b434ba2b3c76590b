package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("POKEHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("POKEHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "pokehub"
	}

	dur := 24 * time.Hour
	if ttl := os.Getenv("POKEHUB_JWT_TTL_HOURS"); ttl != "" {
		if h, err := strconv.Atoi(ttl); err == nil && h > 0 {
			dur = time.Duration(h) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: dur,
	}
}

// CatalogConfig configures the upstream PokeAPI client.
type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

func LoadCatalogConfig() CatalogConfig {
	base := os.Getenv("POKEHUB_API_BASE")
	if base == "" {
		base = "https://pokeapi.co/api/v2"
	}
	return CatalogConfig{
		BaseURL: base,
		Timeout: 12 * time.Second,
	}
}

// DexConfig configures the query layer: default page size, how many keys
// the search fallback may scan, and how many detail fetches it may fan out.
type DexConfig struct {
	PageLimit      int
	SearchScanMax  int
	SearchFetchCap int
}

func LoadDexConfig() DexConfig {
	cfg := DexConfig{
		PageLimit:      20,
		SearchScanMax:  2000,
		SearchFetchCap: 20,
	}
	if v := os.Getenv("POKEHUB_SEARCH_SCAN_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SearchScanMax = n
		}
	}
	return cfg
}
