package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vehicle-storefront/internal/apiclient"
)

func (h *handlers) searchVehicles(c *gin.Context) {
	query := apiclient.VehicleQuery{
		Name:     c.Query("name"),
		Brand:    c.Query("brand"),
		Model:    c.Query("model"),
		Type:     c.Query("type"),
		FuelType: c.Query("fuelType"),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
		Page:     intQuery(c, "page", 0),
		Size:     intQuery(c, "size", 10),
		SortBy:   c.DefaultQuery("sortBy", "id"),
		SortDir:  c.DefaultQuery("sortDir", "asc"),
	}

	page, err := h.deps.Catalog.SearchVehicles(c.Request.Context(), query)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) getVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}
	vehicle, err := h.deps.Catalog.GetVehicle(c.Request.Context(), id)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}
