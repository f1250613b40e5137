package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"car-dashboard/models"
	"car-dashboard/services"
	"car-dashboard/storage"
)

// dataset resolves the current snapshot. When the load failed it writes
// the classified error and halts the request: FetchError maps to 502,
// ProcessingError to 500. Rendering never proceeds on a failed load.
func (s *Server) dataset(c *gin.Context) (models.Table, bool) {
	snap := s.cache.Get(c.Request.Context())
	if snap.Err != nil {
		kind := models.ErrorKind(snap.Err)
		status := http.StatusInternalServerError
		if kind == "FetchError" {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": kind, "message": snap.Err.Error()})
		return models.Table{}, false
	}
	return snap.Table, true
}

// filtersFromQuery picks the equality filters out of the query string;
// parameters are named after the category columns.
func filtersFromQuery(c *gin.Context) services.Filters {
	f := services.Filters{}
	for _, col := range models.CategoryColumns {
		if v, ok := c.GetQuery(col); ok && v != "" {
			f[col] = v
		}
	}
	return f
}

func (s *Server) handleListings(c *gin.Context) {
	t, ok := s.dataset(c)
	if !ok {
		return
	}
	filtered := services.ApplyFilters(t, filtersFromQuery(c))

	c.JSON(http.StatusOK, gin.H{
		"total":    t.Len(),
		"filtered": filtered.Len(),
		"columns":  filtered.Columns,
		"rows":     filtered.Rows,
	})
}

func (s *Server) handleFilters(c *gin.Context) {
	t, ok := s.dataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": services.FilterOptions(t)})
}

func (s *Server) handleKPIs(c *gin.Context) {
	t, ok := s.dataset(c)
	if !ok {
		return
	}
	filtered := services.ApplyFilters(t, filtersFromQuery(c))
	c.JSON(http.StatusOK, s.insights.KPIs(filtered))
}

func (s *Server) handleStats(c *gin.Context) {
	t, ok := s.dataset(c)
	if !ok {
		return
	}
	filtered := services.ApplyFilters(t, filtersFromQuery(c))
	c.JSON(http.StatusOK, gin.H{"stats": s.insights.Stats(filtered)})
}

// handleCounts returns the value counts of one category column when
// ?column= is given, otherwise of every category column present.
func (s *Server) handleCounts(c *gin.Context) {
	t, ok := s.dataset(c)
	if !ok {
		return
	}
	filtered := services.ApplyFilters(t, filtersFromQuery(c))

	if col, given := c.GetQuery("column"); given {
		if !isCategoryColumn(col) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "BadRequest", "message": fmt.Sprintf("unknown category column %q", col)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"column": col, "counts": s.insights.ValueCounts(filtered, col)})
		return
	}

	all := make(map[string][]models.ValueCount)
	for _, col := range models.CategoryColumns {
		if counts := s.insights.ValueCounts(filtered, col); counts != nil {
			all[col] = counts
		}
	}
	c.JSON(http.StatusOK, gin.H{"counts": all})
}

func (s *Server) handleBrands(c *gin.Context) {
	t, ok := s.dataset(c)
	if !ok {
		return
	}
	filtered := services.ApplyFilters(t, filtersFromQuery(c))
	c.JSON(http.StatusOK, gin.H{"brands": s.insights.TopBrands(filtered, s.cfg.TopBrands)})
}

func (s *Server) handleTimeline(c *gin.Context) {
	t, ok := s.dataset(c)
	if !ok {
		return
	}
	filtered := services.ApplyFilters(t, filtersFromQuery(c))
	c.JSON(http.StatusOK, gin.H{"timeline": s.insights.Timeline(filtered)})
}

// handleExport streams the filtered table as a CSV attachment with a
// timestamped filename.
func (s *Server) handleExport(c *gin.Context) {
	t, ok := s.dataset(c)
	if !ok {
		return
	}
	filtered := services.ApplyFilters(t, filtersFromQuery(c))

	var buf bytes.Buffer
	if err := storage.NewCSVWriter(&buf).Write(filtered); err != nil {
		s.logger.Error("[server] CSV export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ExportError", "message": err.Error()})
		return
	}

	name := storage.ExportFilename(s.cfg.ExportPrefix, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) handleMeta(c *gin.Context) {
	snap := s.cache.Get(c.Request.Context())

	meta := gin.H{
		"snapshot_id": snap.ID,
		"fetched_at":  snap.FetchedAt.Format(time.RFC3339),
		"rows":        snap.Table.Len(),
	}
	if snap.Err != nil {
		meta["error"] = models.ErrorKind(snap.Err)
	}
	c.JSON(http.StatusOK, meta)
}

func (s *Server) handleRefresh(c *gin.Context) {
	s.cache.Invalidate()
	s.logger.Info("[server] cache invalidated by refresh request")
	c.JSON(http.StatusOK, gin.H{"status": "cache cleared"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isCategoryColumn(col string) bool {
	for _, c := range models.CategoryColumns {
		if c == col {
			return true
		}
	}
	return false
}
