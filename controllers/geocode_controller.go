package controllers

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"puffpoint-backend/app"

	"github.com/gin-gonic/gin"
)

const (
	geocodeMaxLimit  = 5
	geocodeUserAgent = "puffpoint/0.1 (contact: support@puffpoint.app)"
)

type GeocodeController struct {
	client  *http.Client
	baseURL string
}

func GetGeocodeController(baseURL string) *GeocodeController {
	return &GeocodeController{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GET /api/geocode?q=&limit=
// 原样转发 nominatim 的 JSON；空查询直接回空数组，不打上游。
func (gc *GeocodeController) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []any{})
		return
	}

	limit := geocodeMaxLimit
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "5")); err == nil {
		limit = v
	}
	if limit > geocodeMaxLimit {
		limit = geocodeMaxLimit
	}
	if limit < 1 {
		limit = 1
	}

	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=%d", gc.baseURL, url.QueryEscape(q), limit)
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, u, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	req.Header.Set("User-Agent", geocodeUserAgent)
	req.Header.Set("Accept-Language", "de,en;q=0.8")
	req.Header.Set("Cache-Control", "max-age=3600")

	resp, err := gc.client.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, app.H{"error": "geocoding upstream unavailable"})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, app.H{"error": "geocoding upstream unavailable"})
		return
	}
	c.Data(resp.StatusCode, "application/json", body)
}
