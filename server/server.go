package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/config"
	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/core"
)

// Server is the REST surface for the browser dashboard: the body catalog,
// the CME event list, and the live status snapshot. The websocket stream
// rides on the same listener.
type Server struct {
	cfg config.ServerSettings
	hub *Hub

	mu     sync.RWMutex
	bodies []core.Body
	cmes   []core.CMEEvent
}

func New(cfg config.ServerSettings, hub *Hub) *Server {
	return &Server{cfg: cfg, hub: hub}
}

// SetData replaces the served catalog and event list. Called from the frame
// loop whenever a data load completes.
func (s *Server) SetData(bodies []core.Body, cmes []core.CMEEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies = append([]core.Body(nil), bodies...)
	s.cmes = append([]core.CMEEvent(nil), cmes...)
}

func (s *Server) router() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	api := r.Group("/api")
	{
		api.GET("/bodies", s.getBodies)
		api.GET("/cmes", s.getCMEs)
		api.GET("/cmes/:id", s.getCMEByID)
		api.GET("/status", s.getStatus)
	}
	r.GET("/ws", func(c *gin.Context) {
		s.hub.ServeWS(c.Writer, c.Request)
	})
	return r
}

// Run builds the router and serves until the process exits. Blocks; run on
// its own goroutine.
func (s *Server) Run() error {
	gin.SetMode(gin.ReleaseMode)
	r := s.router()

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Printf("Dashboard API listening on http://localhost%s", addr)
	return r.Run(addr)
}

func (s *Server) getBodies(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"data": s.bodies, "count": len(s.bodies)})
}

func (s *Server) getCMEs(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"data": s.cmes, "count": len(s.cmes)})
}

func (s *Server) getCMEByID(c *gin.Context) {
	id := c.Param("id")
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cme := range s.cmes {
		if cme.ID == id {
			c.JSON(http.StatusOK, gin.H{"data": cme})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "CME not found"})
}

// getStatus reports the latest published frame snapshot.
func (s *Server) getStatus(c *gin.Context) {
	s.hub.mu.RLock()
	defer s.hub.mu.RUnlock()
	if !s.hub.hasSnapshot {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "simulation not started"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.hub.latest})
}
