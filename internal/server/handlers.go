package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LCLAMEDIA/openorders/internal/model"
	"github.com/LCLAMEDIA/openorders/internal/store"
)

// Response is the common API envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// Health reports liveness.
// GET /api/health
func (s *Server) Health(c *gin.Context) {
	success(c, gin.H{"status": "ok"})
}

// ProcessReport accepts an open-orders report upload and runs the pipeline.
// POST /api/oor/process (multipart field "file", optional "dry_run")
func (s *Server) ProcessReport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "missing file upload")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		errorResponse(c, 1002, "failed to open upload")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		errorResponse(c, 1002, "failed to read upload")
		return
	}

	dryRun, _ := strconv.ParseBool(c.PostForm("dry_run"))

	outcome := s.processor.Process(c.Request.Context(), fileHeader.Filename, data, dryRun)
	if outcome.ErrorKind != "" {
		// Classified failures are part of the contract, not transport errors.
		c.JSON(http.StatusOK, Response{
			Code:    2001,
			Message: string(outcome.ErrorKind),
			Data:    outcome,
		})
		return
	}
	success(c, outcome)
}

// ListRuns returns recent processing runs.
// GET /api/oor/runs?limit=50
func (s *Server) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := s.store.ListRuns(limit)
	if err != nil {
		errorResponse(c, 5001, err.Error())
		return
	}
	if runs == nil {
		runs = []*model.Run{}
	}
	success(c, runs)
}

// GetRun returns one processing run.
// GET /api/oor/runs/:id
func (s *Server) GetRun(c *gin.Context) {
	run, err := s.store.GetRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		errorResponse(c, 4004, "run not found")
		return
	}
	if err != nil {
		errorResponse(c, 5001, err.Error())
		return
	}
	success(c, run)
}

// DownloadExport serves a processed artifact from the exports directory.
// GET /api/oor/exports/:name
func (s *Server) DownloadExport(c *gin.Context) {
	name := c.Param("name")
	// The exports directory is flat; reject anything that is not a bare name.
	if name != filepath.Base(name) || name == "." || name == ".." {
		errorResponse(c, 4001, "invalid export name")
		return
	}
	c.FileAttachment(s.cfg.DataPath("exports", name), name)
}
