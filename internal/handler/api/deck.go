package api

import (
	"errors"
	"net/http"

	resdto "tarot-sessions/internal/handler/dto/response"
	"tarot-sessions/internal/infra/deckcatalog"
	"tarot-sessions/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type DeckHandler struct {
	catalog *deckcatalog.Catalog
}

func NewDeckHandler(catalog *deckcatalog.Catalog) *DeckHandler {
	return &DeckHandler{catalog: catalog}
}

// @Summary List decks
// @Description List all published decks
// @Tags decks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.DeckResponse
// @Failure 401 {object} map[string]string
// @Router /decks [get]
func (h *DeckHandler) ListDecks(c *gin.Context) {
	decks := h.catalog.ListDecks(c.Request.Context())

	response := make([]*resdto.DeckResponse, len(decks))
	for i, d := range decks {
		response[i] = resdto.FromDeck(d)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get deck
// @Description Get a deck with its full card list
// @Tags decks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deck ID"
// @Success 200 {object} resdto.DeckDetailResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /decks/{id} [get]
func (h *DeckHandler) GetDeck(c *gin.Context) {
	d, err := h.catalog.GetDeck(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errs.ErrDeckNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDeckDetail(d))
}
