package dex

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"pokehub/internal/pokeapi"
	"pokehub/pkg/models"
	"pokehub/pkg/utils"
)

// Catalog is the slice of the PokeAPI client the query layer depends on.
// Implementations must return pokeapi.ErrNotFound for missing resources
// and ordinary errors for transient failures.
type Catalog interface {
	ListPage(ctx context.Context, limit, offset int) (pokeapi.Page, error)
	AllKeys(ctx context.Context, max int) (pokeapi.Page, error)
	Pokemon(ctx context.Context, key string) (*pokeapi.Pokemon, error)
	Species(ctx context.Context, idOrKey string) (*pokeapi.Species, error)
	TypeMembers(ctx context.Context, typeKey string) ([]string, error)
}

// Service orchestrates listing, search and per-Pokémon detail aggregation
// over the catalog. It holds no state between calls; every result is
// re-derived from fresh catalog fetches.
type Service struct {
	catalog Catalog
	cfg     utils.DexConfig
}

func NewService(catalog Catalog, cfg utils.DexConfig) *Service {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 20
	}
	if cfg.SearchScanMax <= 0 {
		cfg.SearchScanMax = 2000
	}
	if cfg.SearchFetchCap <= 0 {
		cfg.SearchFetchCap = 20
	}
	return &Service{catalog: catalog, cfg: cfg}
}

// FetchDetails resolves one Pokémon by canonical key or numeric id and
// merges in the species record. The species fetch is strictly best-effort:
// any failure there degrades to fallback fields and never surfaces.
// A missing primary record returns pokeapi.ErrNotFound.
func (s *Service) FetchDetails(ctx context.Context, nameOrID string) (*models.Pokemon, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))

	raw, err := s.catalog.Pokemon(ctx, key)
	if err != nil {
		return nil, err
	}

	species, err := s.catalog.Species(ctx, strconv.Itoa(raw.ID))
	if err != nil {
		species = nil
	}

	p := ToPokemon(raw, species)
	return &p, nil
}

// ListAll returns one offset-paginated page of the full catalog, with
// details fetched concurrently for every key on the page.
func (s *Service) ListAll(ctx context.Context, page, limit int) (*Page, error) {
	offset := (page - 1) * limit

	keys, err := s.catalog.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	items, err := s.fetchBatch(ctx, keys.Keys, false)
	if err != nil {
		return nil, err
	}

	return newPage(items, keys.Total, page, limit), nil
}

// Search resolves a query in two phases: an exact key/id lookup first,
// then a case-insensitive substring scan over the bounded key list.
// Search results are single-shot, never paginated; Total reports the
// uncapped match count even when detail fetching is capped.
func (s *Service) Search(ctx context.Context, query string) (*Page, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return &Page{Items: []models.Pokemon{}}, nil
	}

	// fast path: the query is an exact key or id
	p, err := s.FetchDetails(ctx, q)
	if err == nil {
		return &Page{Items: []models.Pokemon{*p}, Total: 1}, nil
	}
	if !errors.Is(err, pokeapi.ErrNotFound) {
		return nil, err
	}

	// fallback: substring scan over the key list, in catalog order
	all, err := s.catalog.AllKeys(ctx, s.cfg.SearchScanMax)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, key := range all.Keys {
		if strings.Contains(strings.ToLower(key), q) {
			matches = append(matches, key)
		}
	}

	total := len(matches)
	if len(matches) > s.cfg.SearchFetchCap {
		matches = matches[:s.cfg.SearchFetchCap]
	}

	// keys can vanish between the list and detail fetches; drop those
	items, err := s.fetchBatch(ctx, matches, true)
	if err != nil {
		return nil, err
	}

	return &Page{Items: items, Total: total}, nil
}

// ListByType pages through a type's member list. The upstream returns the
// membership unpaginated, so the slice arithmetic happens here.
// An unknown type returns pokeapi.ErrNotFound, distinct from an empty page.
func (s *Service) ListByType(ctx context.Context, typeKey string, page, limit int) (*Page, error) {
	key := strings.ToLower(strings.TrimSpace(typeKey))

	members, err := s.catalog.TypeMembers(ctx, key)
	if err != nil {
		return nil, err
	}

	total := len(members)
	offset := (page - 1) * limit

	var window []string
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		window = members[offset:end]
	}

	items, err := s.fetchBatch(ctx, window, true)
	if err != nil {
		return nil, err
	}

	return newPage(items, total, page, limit), nil
}

// fetchBatch fans out FetchDetails over keys and joins the whole batch,
// writing each result into its input-index slot so output order matches
// key order no matter which fetch finishes first. With skipMissing set,
// not-found entries are dropped from the result; otherwise any failure
// aborts the batch.
func (s *Service) fetchBatch(ctx context.Context, keys []string, skipMissing bool) ([]models.Pokemon, error) {
	slots := make([]*models.Pokemon, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			p, err := s.FetchDetails(gctx, key)
			if err != nil {
				if skipMissing && errors.Is(err, pokeapi.ErrNotFound) {
					return nil
				}
				return err
			}
			slots[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]models.Pokemon, 0, len(keys))
	for _, p := range slots {
		if p != nil {
			items = append(items, *p)
		}
	}
	return items, nil
}
