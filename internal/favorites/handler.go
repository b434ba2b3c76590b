package favorites

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pokehub/internal/auth"
	"pokehub/internal/dex"
	"pokehub/internal/pokeapi"
	synchub "pokehub/internal/sync"
	"pokehub/pkg/models"
)

type Handler struct {
	Repo *Repo
	Dex  *dex.Service
	Hub  *synchub.Hub
}

func NewHandler(repo *Repo, dexSvc *dex.Service, hub *synchub.Hub) *Handler {
	return &Handler{Repo: repo, Dex: dexSvc, Hub: hub}
}

// RegisterRoutes expects rg to already carry the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.list)
	rg.GET("/favorites/:name", h.getOne)
	rg.PUT("/favorites/:name", h.put)
	rg.DELETE("/favorites/:name", h.delete)
}

type putReq struct {
	Note string `json:"note"`
}

func (h *Handler) put(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	name := strings.ToLower(strings.TrimSpace(c.Param("name")))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pokemon name required"})
		return
	}

	var req putReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
	}

	// resolve against the catalog so favorites only hold real Pokémon,
	// stored under their canonical key
	p, err := h.Dex.FetchDetails(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		log.Printf("[favorites] resolve %q failed: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	fav := models.Favorite{
		UserID:  claims.UserID,
		Pokemon: p.Name,
		Note:    strings.TrimSpace(req.Note),
	}
	if err := h.Repo.Upsert(c.Request.Context(), fav); err != nil {
		log.Printf("[favorites] upsert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		ev := synchub.FavoriteEvent{
			Type:    synchub.EventFavoriteAdd,
			UserID:  claims.UserID,
			Pokemon: p.Name,
			Note:    fav.Note,
			At:      time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, gin.H{"pokemon": p.Name, "status": "saved"})
}

func (h *Handler) delete(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	name := strings.ToLower(strings.TrimSpace(c.Param("name")))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pokemon name required"})
		return
	}

	ok, err := h.Repo.Delete(c.Request.Context(), claims.UserID, name)
	if err != nil {
		log.Printf("[favorites] delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if h.Hub != nil {
		ev := synchub.FavoriteEvent{
			Type:    synchub.EventFavoriteRemove,
			UserID:  claims.UserID,
			Pokemon: name,
			At:      time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, limit, offset)
	if err != nil {
		log.Printf("[favorites] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) getOne(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	name := strings.ToLower(strings.TrimSpace(c.Param("name")))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pokemon name required"})
		return
	}

	fav, err := h.Repo.Get(c.Request.Context(), claims.UserID, name)
	if err != nil {
		log.Printf("[favorites] get failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if fav == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, fav)
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
