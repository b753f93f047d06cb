// Package api serves a read-only HTTP view of a spell catalog.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coolbeans/spellbook/pkg/library"
)

// SpellHandler serves spell lookups from a catalog.
type SpellHandler struct {
	catalog *library.Catalog
}

// NewSpellHandler creates a SpellHandler.
func NewSpellHandler(catalog *library.Catalog) *SpellHandler {
	return &SpellHandler{catalog: catalog}
}

// Liveness handles GET /healthz
func (h *SpellHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// List handles GET /api/spells?level=&class=&concentration=
func (h *SpellHandler) List(c *gin.Context) {
	var filter library.Filter

	if levelParam := c.Query("level"); levelParam != "" {
		level, err := strconv.Atoi(levelParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid level")
			return
		}
		filter.Level = &level
	}
	filter.Class = c.Query("class")

	if concentrationParam := c.Query("concentration"); concentrationParam != "" {
		concentration, err := strconv.ParseBool(concentrationParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid concentration flag")
			return
		}
		filter.ConcentrationOnly = concentration
	}

	c.JSON(http.StatusOK, library.Summaries(h.catalog.List(filter)))
}

// Get handles GET /api/spells/:index
func (h *SpellHandler) Get(c *gin.Context) {
	spell, err := h.catalog.Get(c.Param("index"))
	if errors.Is(err, library.ErrSpellNotFound) {
		respondError(c, http.StatusNotFound, "Spell not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, spell)
}

// ByClass handles GET /api/classes/:class/spells
func (h *SpellHandler) ByClass(c *gin.Context) {
	c.JSON(http.StatusOK, library.Summaries(h.catalog.ByClass(c.Param("class"))))
}

// Stats handles GET /api/stats
func (h *SpellHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Stats())
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
