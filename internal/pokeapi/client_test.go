package pokeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokehub/pkg/utils"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(utils.CatalogConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func TestListPage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "20", r.URL.Query().Get("offset"))
		w.Write([]byte(`{
			"count": 1302,
			"results": [
				{"name": "spearow", "url": "https://pokeapi.co/api/v2/pokemon/21/"},
				{"name": "fearow", "url": "https://pokeapi.co/api/v2/pokemon/22/"}
			]
		}`))
	}))

	page, err := c.ListPage(context.Background(), 2, 20)
	require.NoError(t, err)
	assert.Equal(t, 1302, page.Total)
	assert.Equal(t, []string{"spearow", "fearow"}, page.Keys)
}

func TestPokemon(t *testing.T) {
	t.Run("decodes the raw record", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/pokemon/pikachu", r.URL.Path)
			w.Write([]byte(`{
				"id": 25, "name": "pikachu", "height": 4, "weight": 60,
				"types": [{"slot": 1, "type": {"name": "electric"}}],
				"sprites": {"front_default": "sprite.png", "other": {"official-artwork": {"front_default": "art.png"}}}
			}`))
		}))

		p, err := c.Pokemon(context.Background(), "pikachu")
		require.NoError(t, err)
		assert.Equal(t, 25, p.ID)
		assert.Equal(t, 4, p.Height)
		assert.Equal(t, "electric", p.Types[0].Type.Name)
		assert.Equal(t, "art.png", p.Sprites.Other.OfficialArtwork.FrontDefault)
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))

		_, err := c.Pokemon(context.Background(), "missingno")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("5xx is a transient error, not ErrNotFound", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))

		_, err := c.Pokemon(context.Background(), "pikachu")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("truncated body is a read error, not a decode error", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// declare more bytes than we send so the client's read fails
			w.Header().Set("Content-Length", "500")
			w.Write([]byte(`{"id": 25`))
		}))

		_, err := c.Pokemon(context.Background(), "pikachu")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.ErrorContains(t, err, "read response")
	})

	t.Run("bad json is a transient error", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id": `))
		}))

		_, err := c.Pokemon(context.Background(), "pikachu")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestSpecies(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon-species/25", r.URL.Path)
		w.Write([]byte(`{
			"flavor_text_entries": [{"flavor_text": "Stores electricity.", "language": {"name": "en"}}],
			"genera": [{"genus": "Mouse Pokémon", "language": {"name": "en"}}],
			"color": {"name": "yellow"},
			"capture_rate": 190,
			"base_happiness": 50
		}`))
	}))

	s, err := c.Species(context.Background(), "25")
	require.NoError(t, err)
	assert.Equal(t, "yellow", s.Color.Name)
	assert.Equal(t, 190, s.CaptureRate)
	assert.Equal(t, "Stores electricity.", s.FlavorTextEntries[0].FlavorText)
}

func TestTypeMembers(t *testing.T) {
	t.Run("flattens the member list", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/type/electric", r.URL.Path)
			w.Write([]byte(`{
				"name": "electric",
				"pokemon": [
					{"slot": 1, "pokemon": {"name": "pikachu"}},
					{"slot": 1, "pokemon": {"name": "voltorb"}}
				]
			}`))
		}))

		members, err := c.TypeMembers(context.Background(), "electric")
		require.NoError(t, err)
		assert.Equal(t, []string{"pikachu", "voltorb"}, members)
	})

	t.Run("unknown type maps to ErrNotFound", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))

		_, err := c.TypeMembers(context.Background(), "shadow")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
