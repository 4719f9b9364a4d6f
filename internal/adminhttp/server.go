// Package adminhttp exposes the read-only admin HTTP surface (spec.md
// §6): per-connection health, uptime, and status, served over gin the
// way the teacher's src/server/fastAPI.go wires its REST endpoints.
package adminhttp

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"termbridge/internal/connection"
	"termbridge/internal/logger"
)

// Server is the admin HTTP surface over a connection registry. It never
// mutates connection state — every route is a read.
type Server struct {
	registry *connection.Registry
	log      *logger.Logger
	engine   *gin.Engine
	host     string
	port     int
}

// New builds a Server bound to registry. debug selects gin's debug mode
// (mirrored from the top-level log level, same as the teacher does).
func New(registry *connection.Registry, log *logger.Logger, host string, port int, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		registry: registry,
		log:      log,
		engine:   gin.Default(),
		host:     host,
		port:     port,
	}

	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Next()
	})

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/connections", s.listConnections)
	s.engine.GET("/connections/:account/health", s.connectionHealth)
	s.engine.GET("/connections/:account/uptime", s.connectionUptime)
	s.engine.GET("/connections/:account/status", s.connectionStatus)
}

// Start runs the admin server, blocking until it exits or fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	s.log.Info("starting admin HTTP server on %s", addr)
	return s.engine.Run(addr)
}

func (s *Server) lookup(c *gin.Context) (*connection.Connection, bool) {
	accountID := c.Param("account")
	conn, ok := s.registry.Get(accountID)
	if !ok {
		c.JSON(404, gin.H{"error": "unknown account"})
		return nil, false
	}
	return conn, true
}

func (s *Server) listConnections(c *gin.Context) {
	conns := s.registry.All()
	accounts := make([]string, 0, len(conns))
	for _, conn := range conns {
		accounts = append(accounts, conn.AccountID())
	}
	c.JSON(200, gin.H{"accounts": accounts})
}

func (s *Server) connectionHealth(c *gin.Context) {
	conn, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(200, conn.HealthMonitor().HealthStatus())
}

func (s *Server) connectionUptime(c *gin.Context) {
	conn, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(200, conn.HealthMonitor().Uptime())
}

func (s *Server) connectionStatus(c *gin.Context) {
	conn, ok := s.lookup(c)
	if !ok {
		return
	}
	status := conn.HealthMonitor().HealthStatus()
	c.JSON(200, gin.H{
		"accountId":         conn.AccountID(),
		"connected":         status.Connected,
		"connectedToBroker": status.ConnectedToBroker,
		"synchronized":      status.Synchronized,
		"closed":            conn.Closed(),
	})
}
