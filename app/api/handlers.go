package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"GoRagServer/app/documents"
	"GoRagServer/app/models"
	"GoRagServer/app/rag"
)

type queryRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the RAG system!"})
}

func (s *Server) handleEmbed(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if !documents.Allowed(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type, expected .pdf or .md"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	chunks, err := s.svc.Ingest(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		log.Printf("❌ Embedding %s failed: %v", fileHeader.Filename, err)
		switch {
		case errors.Is(err, documents.ErrUnsupportedType), errors.Is(err, documents.ErrUnreadable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File embedded successfully",
		"chunks":  chunks,
	})
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	answer, err := s.svc.Answer(c.Request.Context(), req.Query)
	if err != nil {
		s.tracker.Record(false)
		switch {
		case errors.Is(err, rag.ErrEmptyQuery):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, rag.ErrNoRelevantContext):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrGenerationUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		default:
			log.Printf("❌ Query failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	s.tracker.Record(true)

	// Sources and token usage stay internal; the outer payload has always
	// exposed only the answer, its context and the wall time.
	c.JSON(http.StatusOK, gin.H{
		"response":      answer.Response,
		"context":       answer.Context,
		"response_time": fmt.Sprintf("%.2f seconds", answer.ResponseTime.Seconds()),
	})
}

func (s *Server) handleMonitoring(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.Status())
}

func (s *Server) handleDocuments(c *gin.Context) {
	docs, err := s.history.ListDocuments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}
