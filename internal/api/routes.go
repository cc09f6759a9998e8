package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/cards", h.listCards)
		api.GET("/cards/options", h.cardOptions)
		api.POST("/filter", h.filterHandler)
		api.GET("/banlist", h.getBanlist)
		api.GET("/qr", qrHandler)

		decks := api.Group("/decks")
		decks.POST("", h.createDeck)
		decks.GET("/:id", h.getDeck)
		decks.DELETE("/:id", h.deleteDeck)
		decks.PUT("/:id/meta", h.updateMeta)
		decks.POST("/:id/clear", h.clearDeck)
		decks.POST("/:id/cards", h.addCard)
		decks.GET("/:id/cards/:rule/check", h.checkCard)
		decks.DELETE("/:id/cards/:rule", h.removeCard)
		decks.GET("/:id/snapshot", h.snapshot)
		decks.GET("/:id/export", h.exportDeck)
		decks.GET("/:id/image", h.deckImage)
	}
}
