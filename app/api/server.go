package api

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"GoRagServer/app/monitoring"
	"GoRagServer/app/rag"
	"GoRagServer/app/storage"
)

// RagService is the slice of the rag package the HTTP surface needs.
type RagService interface {
	Ingest(ctx context.Context, filename string, file io.Reader) (int, error)
	Answer(ctx context.Context, question string) (*rag.GroundedAnswer, error)
}

type Server struct {
	svc     RagService
	tracker *monitoring.Tracker
	history storage.Interface
}

func NewServer(svc RagService, tracker *monitoring.Tracker, history storage.Interface) *Server {
	return &Server{
		svc:     svc,
		tracker: tracker,
		history: history,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), corsMiddleware(), requestTimer())

	r.GET("/", s.handleRoot)
	r.POST("/embed", s.handleEmbed)
	r.POST("/query", s.handleQuery)
	r.GET("/monitoring", s.handleMonitoring)
	r.GET("/documents", s.handleDocuments)

	return r
}
