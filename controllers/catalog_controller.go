package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Isann22/NutriTrack-Backend/services"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalogs services.Catalogs
}

func NewCatalogController(cats services.Catalogs) *CatalogController {
	return &CatalogController{Catalogs: cats}
}

type catalogSummary struct {
	Recipes int      `json:"recipes"`
	Columns []string `json:"columns"`
}

func (cc *CatalogController) List(c *gin.Context) {
	out := make(map[string]catalogSummary, len(cc.Catalogs))
	for slot, cat := range cc.Catalogs {
		cols := cat.Columns()
		names := make([]string, len(cols))
		for i, n := range cols {
			names[i] = string(n)
		}
		out[string(slot)] = catalogSummary{Recipes: cat.Len(), Columns: names}
	}
	respondOK(c, out)
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB Pinger // nil when the catalog is not Postgres-backed
}

func (h *HealthController) Health(c *gin.Context) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			respondError(c, http.StatusServiceUnavailable, "database unreachable: "+err.Error())
			return
		}
	}
	respondOK(c, gin.H{"ok": true})
}
