package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"edi-orders/internal/models"
	"edi-orders/internal/service"
)

type Handler struct {
	svc service.EdifactOrders
}

func NewHandler(s service.EdifactOrders) *Handler {
	return &Handler{svc: s}
}

type getAllInterchangesResponse struct {
	Data []models.Interchange `json:"data"`
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/interchange", h.CreateInterchange)
		api.GET("/interchange/:ref", h.GetInterchangeByRef)
		api.GET("/interchange/db/:ref", h.GetDbInterchangeByRef)
		api.GET("/interchanges", h.GetAllInterchanges)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
