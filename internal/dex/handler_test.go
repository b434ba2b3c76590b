package dex

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(f *fakeCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(newTestService(f)).RegisterRoutes(router.Group("/pokemon"))
	return router
}

func doRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHandlerGet(t *testing.T) {
	router := newTestRouter(newFakeCatalog("pikachu"))

	t.Run("known pokemon", func(t *testing.T) {
		w := doRequest(router, "/pokemon/pikachu")
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Pikachu", body["display_name"])
	})

	t.Run("unknown pokemon is a 404", func(t *testing.T) {
		w := doRequest(router, "/pokemon/missingno")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandlerList(t *testing.T) {
	keys := make([]string, 0, 30)
	for i := 1; i <= 30; i++ {
		keys = append(keys, fmt.Sprintf("mon-%02d", i))
	}

	t.Run("paginates", func(t *testing.T) {
		router := newTestRouter(newFakeCatalog(keys...))
		w := doRequest(router, "/pokemon?page=2&limit=10")
		require.Equal(t, http.StatusOK, w.Code)

		var page Page
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Len(t, page.Items, 10)
		assert.Equal(t, 30, page.Total)
		assert.Equal(t, 2, page.Page)
		assert.True(t, page.HasNext)
		assert.True(t, page.HasPrev)
	})

	t.Run("oversized limit is clamped to 100", func(t *testing.T) {
		big := make([]string, 0, 120)
		for i := 1; i <= 120; i++ {
			big = append(big, fmt.Sprintf("big-%03d", i))
		}
		router := newTestRouter(newFakeCatalog(big...))

		w := doRequest(router, "/pokemon?limit=500")
		require.Equal(t, http.StatusOK, w.Code)

		var page Page
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Len(t, page.Items, 100)
		assert.Equal(t, 120, page.Total)
		assert.True(t, page.HasNext)
	})

	t.Run("transient upstream failure is a 500", func(t *testing.T) {
		f := newFakeCatalog(keys...)
		f.pokemonErr = fmt.Errorf("upstream down")
		router := newTestRouter(f)

		w := doRequest(router, "/pokemon")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandlerListByType(t *testing.T) {
	f := newFakeCatalog("pikachu", "voltorb")
	f.typeGroups["electric"] = []string{"pikachu", "voltorb"}
	router := newTestRouter(f)

	t.Run("known type", func(t *testing.T) {
		w := doRequest(router, "/pokemon/types/electric")
		require.Equal(t, http.StatusOK, w.Code)

		var page Page
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 2, page.Total)
	})

	t.Run("unknown type is a 404, not an empty page", func(t *testing.T) {
		w := doRequest(router, "/pokemon/types/shadow")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandlerSearch(t *testing.T) {
	router := newTestRouter(newFakeCatalog("charmander", "charmeleon", "charizard", "bulbasaur"))

	t.Run("substring query", func(t *testing.T) {
		w := doRequest(router, "/pokemon/search?q=char")
		require.Equal(t, http.StatusOK, w.Code)

		var page Page
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Len(t, page.Items, 3)
		assert.Equal(t, 3, page.Total)
	})

	t.Run("empty query", func(t *testing.T) {
		w := doRequest(router, "/pokemon/search?q=")
		require.Equal(t, http.StatusOK, w.Code)

		var page Page
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.Total)
	})
}
