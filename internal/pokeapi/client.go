package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"pokehub/pkg/utils"
)

// ErrNotFound signals that the requested resource does not exist upstream
// (HTTP 404). Transient transport or decode failures are returned as
// ordinary wrapped errors, distinct from this sentinel.
var ErrNotFound = errors.New("pokeapi: not found")

// Client talks to the PokeAPI REST catalog. It performs no caching and no
// retries; every call is a fresh request against the upstream.
type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(cfg utils.CatalogConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Client{
		BaseURL: cfg.BaseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type listResponse struct {
	Count   int `json:"count"`
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

type typeResponse struct {
	Name    string `json:"name"`
	Pokemon []struct {
		Slot    int      `json:"slot"`
		Pokemon NamedRef `json:"pokemon"`
	} `json:"pokemon"`
}

// ListPage fetches one offset window of the Pokémon key list.
func (c *Client) ListPage(ctx context.Context, limit, offset int) (Page, error) {
	u := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.BaseURL, limit, offset)

	var lr listResponse
	if err := c.getJSON(ctx, u, &lr); err != nil {
		return Page{}, err
	}

	keys := make([]string, 0, len(lr.Results))
	for _, r := range lr.Results {
		if r.Name != "" {
			keys = append(keys, r.Name)
		}
	}
	return Page{Total: lr.Count, Keys: keys}, nil
}

// AllKeys fetches the key list unpaginated, bounded by max entries.
// Used by the search fallback scan.
func (c *Client) AllKeys(ctx context.Context, max int) (Page, error) {
	return c.ListPage(ctx, max, 0)
}

// Pokemon fetches the primary record for a canonical key or numeric id.
func (c *Client) Pokemon(ctx context.Context, key string) (*Pokemon, error) {
	u := fmt.Sprintf("%s/pokemon/%s", c.BaseURL, url.PathEscape(key))

	var p Pokemon
	if err := c.getJSON(ctx, u, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Species fetches the enrichment record by id or canonical key.
func (c *Client) Species(ctx context.Context, idOrKey string) (*Species, error) {
	u := fmt.Sprintf("%s/pokemon-species/%s", c.BaseURL, url.PathEscape(idOrKey))

	var s Species
	if err := c.getJSON(ctx, u, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// TypeMembers fetches the full, unpaginated member list of a type.
func (c *Client) TypeMembers(ctx context.Context, typeKey string) ([]string, error) {
	u := fmt.Sprintf("%s/type/%s", c.BaseURL, url.PathEscape(typeKey))

	var tr typeResponse
	if err := c.getJSON(ctx, u, &tr); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(tr.Pokemon))
	for _, m := range tr.Pokemon {
		if m.Pokemon.Name != "" {
			keys = append(keys, m.Pokemon.Name)
		}
	}
	return keys, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("pokeapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("pokeapi: request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("pokeapi: read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pokeapi: status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("pokeapi: decode: %w", err)
	}
	return nil
}
