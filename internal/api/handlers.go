package api

import (
	"bytes"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/youruser/talingdeck/internal/cards"
	"github.com/youruser/talingdeck/internal/deck"
	imagepkg "github.com/youruser/talingdeck/internal/image"
)

// Handler serves the deck builder API. Catalog and banlist are loaded once
// at startup and never change afterwards.
type Handler struct {
	Catalog  *cards.Catalog
	Banlist  cards.Banlist
	Sessions *Sessions
	Logger   *zap.Logger
	// FetchImage loads card art for deck images; nil means download over HTTP.
	FetchImage imagepkg.Fetcher
}

func NewHandler(catalog *cards.Catalog, banlist cards.Banlist, sessions *Sessions, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if banlist == nil {
		banlist = cards.Banlist{}
	}
	return &Handler{
		Catalog:  catalog,
		Banlist:  banlist,
		Sessions: sessions,
		Logger:   logger,
	}
}

// health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cards": h.Catalog.Len(), "banlist": len(h.Banlist)})
}

func (h *Handler) listCards(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.ShouldBindQuery(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := cards.Filter(h.Catalog.Cards(), opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

func (h *Handler) filterHandler(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := cards.Filter(h.Catalog.Cards(), opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

func (h *Handler) cardOptions(c *gin.Context) {
	c.JSON(http.StatusOK, cards.Options(h.Catalog.Cards()))
}

func (h *Handler) getBanlist(c *gin.Context) {
	c.JSON(http.StatusOK, h.Banlist)
}

type deckView struct {
	ID         string          `json:"id"`
	PlayerName string          `json:"playerName"`
	DeckName   string          `json:"deckName"`
	State      deck.State      `json:"state"`
	MainCount  int             `json:"mainCount"`
	LifeCount  int             `json:"lifeCount"`
	Categories deck.Categories `json:"categories"`
	Validity   deck.Validity   `json:"validity"`
}

func viewOf(id string, d *deck.Deck) deckView {
	return deckView{
		ID:         id,
		PlayerName: d.PlayerName(),
		DeckName:   d.DeckName(),
		State:      d.State(),
		MainCount:  d.MainCount(),
		LifeCount:  d.LifeCount(),
		Categories: d.Categorize(),
		Validity:   d.Validity(),
	}
}

// fail writes the error response for session lookups and storage failures.
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrUnknownDeck) {
		c.JSON(http.StatusNotFound, gin.H{"error": "deck not found"})
		return
	}
	_ = c.Error(err)
	h.Logger.Error("deck request failed", zap.String("deck_id", c.Param("id")), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (h *Handler) createDeck(c *gin.Context) {
	var snap *deck.Snapshot
	if c.Request.ContentLength != 0 {
		var body deck.Snapshot
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		snap = &body
	}
	created, err := h.Sessions.Create(c.Request.Context(), snap, h.Banlist)
	if err != nil {
		h.fail(c, err)
		return
	}
	id := created.ID
	var view deckView
	if err := h.Sessions.With(c.Request.Context(), id, func(d *deck.Deck) bool {
		view = viewOf(id, d)
		return false
	}); err != nil {
		h.fail(c, err)
		return
	}
	rejected := make([]rejection, 0, len(created.Rejected))
	for _, res := range created.Rejected {
		rejected = append(rejected, rejection{
			RuleName: res.Card.RuleName,
			Reason:   res.Reason,
			Message:  addNotice(res),
		})
	}
	c.JSON(http.StatusCreated, gin.H{"deck": view, "missing": created.Missing, "rejected": rejected})
}

// rejection is a snapshot card that admission refused when creating a deck.
type rejection struct {
	RuleName string      `json:"ruleName"`
	Reason   deck.Reason `json:"reason"`
	Message  string      `json:"message"`
}

func (h *Handler) getDeck(c *gin.Context) {
	id := c.Param("id")
	var view deckView
	if err := h.Sessions.With(c.Request.Context(), id, func(d *deck.Deck) bool {
		view = viewOf(id, d)
		return false
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) deleteDeck(c *gin.Context) {
	if err := h.Sessions.Drop(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) lookupCard(c *gin.Context, ruleName string) (cards.Card, bool) {
	card, ok := h.Catalog.Lookup(ruleName)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found", "ruleName": ruleName})
	}
	return card, ok
}

func (h *Handler) addCard(c *gin.Context) {
	var req struct {
		RuleName string `json:"ruleName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	card, ok := h.lookupCard(c, req.RuleName)
	if !ok {
		return
	}
	id := c.Param("id")
	var (
		res  deck.Result
		view deckView
	)
	if err := h.Sessions.With(c.Request.Context(), id, func(d *deck.Deck) bool {
		res = d.AddCard(card, h.Banlist)
		view = viewOf(id, d)
		return res.OK()
	}); err != nil {
		h.fail(c, err)
		return
	}
	status := http.StatusOK
	if !res.OK() {
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"reason": res.Reason, "message": addNotice(res), "result": res, "deck": view})
}

func (h *Handler) checkCard(c *gin.Context) {
	card, ok := h.lookupCard(c, c.Param("rule"))
	if !ok {
		return
	}
	var res deck.Result
	if err := h.Sessions.With(c.Request.Context(), c.Param("id"), func(d *deck.Deck) bool {
		res = d.Check(card, h.Banlist)
		return false
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed": res.OK(), "reason": res.Reason, "message": addNotice(res)})
}

func (h *Handler) removeCard(c *gin.Context) {
	id := c.Param("id")
	rule := c.Param("rule")
	var (
		res  deck.Result
		view deckView
	)
	if err := h.Sessions.With(c.Request.Context(), id, func(d *deck.Deck) bool {
		res = d.RemoveCard(rule)
		view = viewOf(id, d)
		return res.OK()
	}); err != nil {
		h.fail(c, err)
		return
	}
	status := http.StatusOK
	if !res.OK() {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"reason": res.Reason, "message": removeNotice(res), "deck": view})
}

func (h *Handler) updateMeta(c *gin.Context) {
	var req struct {
		PlayerName *string `json:"playerName"`
		DeckName   *string `json:"deckName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	var view deckView
	if err := h.Sessions.With(c.Request.Context(), id, func(d *deck.Deck) bool {
		if req.PlayerName != nil {
			d.SetPlayerName(*req.PlayerName)
		}
		if req.DeckName != nil {
			d.SetDeckName(*req.DeckName)
		}
		view = viewOf(id, d)
		return req.PlayerName != nil || req.DeckName != nil
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) clearDeck(c *gin.Context) {
	id := c.Param("id")
	var view deckView
	if err := h.Sessions.With(c.Request.Context(), id, func(d *deck.Deck) bool {
		d.Clear()
		view = viewOf(id, d)
		return true
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deck cleared!", "deck": view})
}

func (h *Handler) snapshot(c *gin.Context) {
	var snap deck.Snapshot
	if err := h.Sessions.With(c.Request.Context(), c.Param("id"), func(d *deck.Deck) bool {
		snap = d.Snapshot()
		return false
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) exportDeck(c *gin.Context) {
	force := c.Query("force") == "1" || c.Query("force") == "true"
	var (
		text string
		xerr error
	)
	if err := h.Sessions.With(c.Request.Context(), c.Param("id"), func(d *deck.Deck) bool {
		text, xerr = deck.ExportRecipe(d, force)
		return false
	}); err != nil {
		h.fail(c, err)
		return
	}
	if errors.Is(xerr, deck.ErrIncomplete) {
		c.JSON(http.StatusConflict, gin.H{"error": xerr.Error()})
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// deckImage renders the deck sheet; the QR code links back to the deck's snapshot.
func (h *Handler) deckImage(c *gin.Context) {
	id := c.Param("id")
	var cats deck.Categories
	if err := h.Sessions.With(c.Request.Context(), id, func(d *deck.Deck) bool {
		cats = d.Categorize()
		return false
	}); err != nil {
		h.fail(c, err)
		return
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := scheme + "://" + c.Request.Host + "/api/decks/" + id + "/snapshot"

	out, err := imagepkg.RenderDeck(c.Request.Context(), cats, link, h.FetchImage, h.Logger)
	if err != nil {
		h.fail(c, err)
		return
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := imagepkg.DefaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if errors.Is(err, imagepkg.ErrQRContent) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
