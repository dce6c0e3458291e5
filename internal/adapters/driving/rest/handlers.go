package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// normaliseRequest is the body of POST /v1/normalise and POST /v1/chunk.
type normaliseRequest struct {
	Text    string                   `json:"text"`
	Options *domain.NormaliseOptions `json:"options,omitempty"`
}

// processRequest is the body of POST /v1/process.
type processRequest struct {
	DocumentID string                   `json:"document_id,omitempty"`
	Text       string                   `json:"text"`
	Options    *domain.NormaliseOptions `json:"options,omitempty"`
	Context    domain.ProcessingContext `json:"context"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleNormalise(c *gin.Context) {
	var req normaliseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	out, err := s.ports.Pipeline.Normalise(c.Request.Context(), req.Text, s.optionsOr(req.Options))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": out})
}

func (s *Server) handleChunk(c *gin.Context) {
	var req normaliseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	chunks, err := s.ports.Pipeline.Chunk(c.Request.Context(), req.Text, s.optionsOr(req.Options))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chunks": chunks})
}

func (s *Server) handleProcess(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	res, err := s.ports.Pipeline.Process(c.Request.Context(), domain.ProcessRequest{
		DocumentID: req.DocumentID,
		Text:       req.Text,
		Options:    s.optionsOr(req.Options),
		Context:    req.Context,
	})
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleStatus(c *gin.Context) {
	status, err := s.ports.Pipeline.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleProfile(c *gin.Context) {
	if s.ports.Profile == nil {
		abort(c, fmt.Errorf("%w: profiles are not enabled", domain.ErrNotFound))
		return
	}

	p, err := s.ports.Profile.Get(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) optionsOr(opts *domain.NormaliseOptions) domain.NormaliseOptions {
	if opts == nil {
		return s.options
	}
	return *opts
}
