// Package ui exposes the comparison pipeline over HTTP: a JSON API built on
// gin plus a chi-routed report surface mounted under /reports.
package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"betweenstats/adapters/dataset"
	"betweenstats/app"
	"betweenstats/internal"
	"betweenstats/internal/config"
	"betweenstats/internal/errors"
	"betweenstats/ports"
)

// Server is the HTTP front of the application.
type Server struct {
	engine  *gin.Engine
	compare *app.CompareService
	sweep   *app.SweepService
	logger  *internal.Logger

	// table is the optional database-backed source, nil when no
	// DATABASE_URL is configured.
	table ports.DataSource
}

// NewServer wires the API routes. The table source may be nil.
func NewServer(cfg *config.Config, table ports.DataSource) *Server {
	gin.SetMode(cfg.Server.GinMode)

	compare := app.NewCompareService()
	s := &Server{
		engine:  gin.New(),
		compare: compare,
		sweep:   app.NewSweepService(compare, cfg.Analysis.SweepConcurrency),
		logger:  internal.DefaultLogger,
		table:   table,
	}

	s.engine.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/compare", s.handleCompare)
	api.GET("/datasets", s.handleListDatasets)
	api.GET("/datasets/:name/columns", s.handleDatasetColumns)
	api.POST("/datasets/:name/compare", s.handleDatasetCompare)
	api.POST("/datasets/:name/sweep", s.handleDatasetSweep)

	if s.table != nil {
		api.GET("/table/columns", s.handleTableColumns)
		api.POST("/table/compare", s.handleTableCompare)
		api.POST("/table/sweep", s.handleTableSweep)
	}

	s.engine.Any("/reports/*path", gin.WrapH(NewReportRouter()))
}

// Start runs the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting server on %s", addr)
	return s.engine.Run(addr)
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type compareRequest struct {
	Values  []float64   `json:"values" binding:"required"`
	Groups  []string    `json:"groups" binding:"required"`
	Options app.Options `json:"options"`
}

func (s *Server) handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	analysis, err := s.compare.Compare(c.Request.Context(), req.Values, req.Groups, req.Options)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) handleListDatasets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"datasets": dataset.List()})
}

func (s *Server) handleDatasetColumns(c *gin.Context) {
	table, err := dataset.Load(c.Param("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	columns, err := table.Columns(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dataset": table.Name(), "columns": columns})
}

type sourceCompareRequest struct {
	ValueColumn string      `json:"value_column" binding:"required"`
	GroupColumn string      `json:"group_column" binding:"required"`
	Options     app.Options `json:"options"`
}

func (s *Server) handleDatasetCompare(c *gin.Context) {
	table, err := dataset.Load(c.Param("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.compareSource(c, table)
}

func (s *Server) handleDatasetSweep(c *gin.Context) {
	table, err := dataset.Load(c.Param("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.sweepSource(c, table)
}

func (s *Server) handleTableColumns(c *gin.Context) {
	columns, err := s.table.Columns(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

func (s *Server) handleTableCompare(c *gin.Context) {
	s.compareSource(c, s.table)
}

func (s *Server) handleTableSweep(c *gin.Context) {
	s.sweepSource(c, s.table)
}

func (s *Server) compareSource(c *gin.Context, src ports.DataSource) {
	var req sourceCompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	analysis, err := s.compare.CompareSource(c.Request.Context(), src, req.ValueColumn, req.GroupColumn, req.Options)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) sweepSource(c *gin.Context, src ports.DataSource) {
	var req app.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.GroupColumn == "" || len(req.ValueColumns) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_column and value_columns are required"})
		return
	}

	result, err := s.sweep.Run(c.Request.Context(), src, req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// writeError maps application errors onto HTTP statuses.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeSchema, errors.CodeConfigInvalid:
		status = http.StatusBadRequest
	case errors.CodeInsufficientData, errors.CodeUnsupportedCombination:
		status = http.StatusUnprocessableEntity
	case errors.CodeDataSource:
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
