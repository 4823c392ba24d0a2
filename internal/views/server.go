// Package views exposes the waiter, kitchen and manager views as a JSON
// surface over the shared order store.
package views

import (
	"github.com/gin-gonic/gin"

	"maitred/internal/notify"
	"maitred/internal/session"
	"maitred/internal/store"
)

// Server handles the role-view HTTP requests
type Server struct {
	router   *gin.Engine
	store    *store.Store
	tracker  *notify.Tracker
	sessions *session.Manager
}

// NewServer creates a view server over the given collaborators.
func NewServer(st *store.Store, tracker *notify.Tracker, sessions *session.Manager) *Server {
	server := &Server{
		router:   gin.Default(),
		store:    st,
		tracker:  tracker,
		sessions: sessions,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	s.router.POST("/login", s.handleLogin)
	s.router.POST("/logout", s.handleLogout)
	s.router.GET("/session", s.handleSession)

	api := s.router.Group("/api")
	{
		api.GET("/menu", s.handleMenu)
		api.GET("/status", s.handleSyncStatus)

		api.GET("/orders", s.handleListOrders)
		api.POST("/orders", s.handleSubmitOrder)
		api.POST("/orders/refresh", s.handleRefresh)
		api.PUT("/orders/:id/status", s.handleUpdateStatus)
		api.DELETE("/orders/:id", s.handleDeleteOrder)

		api.GET("/notifications", s.handleListNotifications)
		api.DELETE("/notifications", s.handleDismissAll)
		api.DELETE("/notifications/:id", s.handleDismiss)

		api.GET("/stats", s.handleStats)

		api.POST("/recommendations", s.handleRecommendations)
		api.POST("/portion", s.handlePortion)
	}
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}
