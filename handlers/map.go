package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"trashmap/apperrors"
	"trashmap/mapaggr"
	"trashmap/models"
)

// GetMap returns entry points inside the requested viewport, thinned out by
// S2 cell aggregation. With format=geojson the result is rendered as a
// GeoJSON FeatureCollection.
func (h *TrashHandler) GetMap(c *gin.Context) {
	vp, err := viewportQuery(c)
	if err != nil {
		apperrors.JSON(c, http.StatusBadRequest, apperrors.CodeInvalidInput, err.Error())
		return
	}

	points, err := h.service.GetPointsInViewport(c.Request.Context(), vp)
	if err != nil {
		log.Errorf("Error getting points for viewport %v: %v", vp, err)
		apperrors.JSON(c, http.StatusInternalServerError, apperrors.CodeInternal, "Failed to fetch map points")
		return
	}

	a := mapaggr.New(vp)
	for _, p := range points {
		a.AddPoint(p)
	}
	aggregated := a.ToArray()

	if c.Query("format") == "geojson" {
		c.JSON(http.StatusOK, mapaggr.ToGeoJSON(aggregated))
		return
	}
	c.JSON(http.StatusOK, models.MapResponse{Points: aggregated})
}

func viewportQuery(c *gin.Context) (*models.ViewPort, error) {
	parse := func(key string) (float64, error) {
		raw, ok := c.GetQuery(key)
		if !ok {
			return 0, fmt.Errorf("%s is required", key)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %s: %v", key, err)
		}
		return v, nil
	}

	var vp models.ViewPort
	var err error
	if vp.LatMin, err = parse("sw_lat"); err != nil {
		return nil, err
	}
	if vp.LonMin, err = parse("sw_lon"); err != nil {
		return nil, err
	}
	if vp.LatMax, err = parse("ne_lat"); err != nil {
		return nil, err
	}
	if vp.LonMax, err = parse("ne_lon"); err != nil {
		return nil, err
	}
	if vp.LatMin >= vp.LatMax || vp.LonMin >= vp.LonMax {
		return nil, fmt.Errorf("viewport corners are inverted")
	}
	return &vp, nil
}
