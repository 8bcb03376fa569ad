// Package api serves run history and lifetime stats over HTTP as JSON, plus
// PNG scorecards. It is read-only.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/pop-arcade/internal/card"
	"github.com/vovakirdan/pop-arcade/internal/history"
	"github.com/vovakirdan/pop-arcade/internal/registry"
	"github.com/vovakirdan/pop-arcade/internal/storage"
)

// RunSource provides the kept run list, newest first.
type RunSource interface {
	Runs() []history.Record
}

// Lifetime provides scores that outlive the run list.
type Lifetime interface {
	TopScores(modeID string, limit int) ([]storage.ScoreEntry, error)
	GetAllModeStats() (map[string]*storage.ModeStats, error)
}

// Config wires the router. Lifetime may be nil.
type Config struct {
	Runs     RunSource
	Lifetime Lifetime
	Logger   *log.Logger
}

type handlers struct {
	runs     RunSource
	lifetime Lifetime
	logger   *log.Logger
}

// NewRouter builds the HTTP handler.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	h := &handlers{runs: cfg.Runs, lifetime: cfg.Lifetime, logger: cfg.Logger}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(cfg.Logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api")
	v1.GET("/modes", h.modes)
	v1.GET("/runs", h.listRuns)
	v1.GET("/runs/:id", h.getRun)
	v1.GET("/runs/:id/card.png", h.runCard)
	v1.GET("/modes/:mode/latest", h.latest)
	v1.GET("/modes/:mode/best", h.best)
	v1.GET("/modes/:mode/scores", h.scores)
	v1.GET("/stats", h.stats)

	return router
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

type modeInfo struct {
	ID     string           `json:"id"`
	Title  string           `json:"title"`
	Latest []history.Record `json:"latest"`
	Best   []history.Record `json:"best"`
}

func (h *handlers) modes(c *gin.Context) {
	runs := h.runs.Runs()
	var out []modeInfo
	for _, info := range registry.List() {
		out = append(out, modeInfo{
			ID:     info.ID,
			Title:  info.Title,
			Latest: nonNil(history.LatestForMode(runs, info.ID, history.ShelfSize)),
			Best:   nonNil(history.BestForMode(runs, info.ID, history.ShelfSize)),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) listRuns(c *gin.Context) {
	runs := h.runs.Runs()
	if mode := c.Query("mode"); mode != "" {
		runs = history.LatestForMode(runs, mode, history.MaxRuns)
	}
	limit, ok := queryLimit(c, history.MaxRuns)
	if !ok {
		return
	}
	if limit < len(runs) {
		runs = runs[:limit]
	}
	c.JSON(http.StatusOK, nonNil(runs))
}

func (h *handlers) findRun(c *gin.Context) (history.Record, bool) {
	id := c.Param("id")
	for _, r := range h.runs.Runs() {
		if r.ID == id {
			return r, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
	return history.Record{}, false
}

func (h *handlers) getRun(c *gin.Context) {
	if r, ok := h.findRun(c); ok {
		c.JSON(http.StatusOK, r)
	}
}

func (h *handlers) runCard(c *gin.Context) {
	r, ok := h.findRun(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "image/png")
	if err := card.EncodePNG(c.Writer, card.Scorecard(card.FromRecord(r))); err != nil {
		h.logger.Error("cannot render scorecard", "id", r.ID, "error", err)
		c.Status(http.StatusInternalServerError)
	}
}

func (h *handlers) latest(c *gin.Context) {
	c.JSON(http.StatusOK, nonNil(history.LatestForMode(h.runs.Runs(), c.Param("mode"), history.ShelfSize)))
}

func (h *handlers) best(c *gin.Context) {
	c.JSON(http.StatusOK, nonNil(history.BestForMode(h.runs.Runs(), c.Param("mode"), history.ShelfSize)))
}

type scoreEntry struct {
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *handlers) scores(c *gin.Context) {
	if h.lifetime == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lifetime scores are not stored"})
		return
	}
	limit, ok := queryLimit(c, 10)
	if !ok {
		return
	}
	entries, err := h.lifetime.TopScores(c.Param("mode"), limit)
	if err != nil {
		h.logger.Error("cannot load top scores", "mode", c.Param("mode"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load scores"})
		return
	}
	out := make([]scoreEntry, len(entries))
	for i, e := range entries {
		out[i] = scoreEntry{Score: e.Score, CreatedAt: e.CreatedAt}
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) stats(c *gin.Context) {
	if h.lifetime == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lifetime scores are not stored"})
		return
	}
	all, err := h.lifetime.GetAllModeStats()
	if err != nil {
		h.logger.Error("cannot load mode stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load stats"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// queryLimit reads ?limit=. It writes a 400 and returns false for a bad
// value.
func queryLimit(c *gin.Context, def int) (int, bool) {
	raw := c.DefaultQuery("limit", strconv.Itoa(def))
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return n, true
}

func nonNil(runs []history.Record) []history.Record {
	if runs == nil {
		return []history.Record{}
	}
	return runs
}
