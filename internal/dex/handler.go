package dex

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pokehub/internal/pokeapi"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)                   // GET /pokemon
	rg.GET("/search", h.search)          // GET /pokemon/search?q=
	rg.GET("/types/:type", h.listByType) // GET /pokemon/types/:type
	rg.GET("/:name", h.get)              // GET /pokemon/:name
}

const maxPageLimit = 100

// pageParams reads page/limit from the query string. Page defaults to 1,
// limit defaults to the configured page size and is clamped to maxPageLimit.
func (h *Handler) pageParams(c *gin.Context) (page, limit int) {
	page = parseInt(c.Query("page"), 1)
	limit = parseInt(c.Query("limit"), h.Service.cfg.PageLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = h.Service.cfg.PageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func (h *Handler) list(c *gin.Context) {
	page, limit := h.pageParams(c)

	res, err := h.Service.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		log.Printf("[dex] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) search(c *gin.Context) {
	res, err := h.Service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Printf("[dex] search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) listByType(c *gin.Context) {
	page, limit := h.pageParams(c)

	res, err := h.Service.ListByType(c.Request.Context(), c.Param("type"), page, limit)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		log.Printf("[dex] list by type failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.Service.FetchDetails(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		log.Printf("[dex] get failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
