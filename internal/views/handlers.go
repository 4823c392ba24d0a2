package views

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"maitred/internal/analytics"
	"maitred/internal/models"
	"maitred/internal/recommend"
	"maitred/internal/session"
)

// loginRequest is the login form body
type loginRequest struct {
	Name string       `json:"name"`
	Role session.Role `json:"role"`
}

// submitRequest is a waiter's draft submission. ConfirmLargeOrder is the
// explicit override required when the portion check classifies the order
// as excess.
type submitRequest struct {
	Table             string             `json:"table"`
	Items             []models.OrderItem `json:"items"`
	Customers         []models.Customer  `json:"customers"`
	ConfirmLargeOrder bool               `json:"confirmLargeOrder"`
}

// customersRequest carries a draft's customer list for recommendations
type customersRequest struct {
	Customers []models.Customer `json:"customers"`
}

// portionRequest carries a draft's items and customers for a portion check
type portionRequest struct {
	Items     []models.OrderItem `json:"items"`
	Customers []models.Customer  `json:"customers"`
}

// statusRequest is the body of a status advance
type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Maitred sync client is running"})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.sessions.Login(req.Name, req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleLogout(c *gin.Context) {
	s.sessions.Logout()
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

func (s *Server) handleSession(c *gin.Context) {
	user := s.sessions.Current()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleMenu(c *gin.Context) {
	c.JSON(http.StatusOK, models.Menu())
}

// handleSyncStatus reports the store's connection and loading state.
func (s *Server) handleSyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"isLoading":   s.store.IsLoading(),
		"isConnected": s.store.IsConnected(),
		"lastError":   s.store.LastError(),
	})
}

func (s *Server) handleListOrders(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		if !models.ValidStatus(models.OrderStatus(status)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status: " + status})
			return
		}
		orders := s.store.ByStatus(models.OrderStatus(status))
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
		return
	}
	c.JSON(http.StatusOK, s.store.Orders())
}

// handleSubmitOrder validates a waiter's draft, runs the portion check and
// delegates to the backend. Validation failures never reach the backend;
// an excess portion needs the explicit override flag.
func (s *Server) handleSubmitOrder(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := hydrateItems(req.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := models.Draft{Table: req.Table, Items: items, Customers: req.Customers}
	if err := draft.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	portion := recommend.ClassifyPortion(
		recommend.OrderCalories(draft.Items),
		recommend.RecommendedCalories(draft.Customers),
	)
	if portion.Blocking() && !req.ConfirmLargeOrder {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Order seems too large and may lead to food waste; confirm to proceed",
			"portion": portion,
		})
		return
	}

	var waiter string
	if user := s.sessions.Current(); user != nil {
		waiter = user.Name
	}

	if !s.store.Submit(c.Request.Context(), draft.Payload(waiter)) {
		c.JSON(http.StatusBadGateway, gin.H{"error": s.store.LastError()})
		return
	}

	// The created order arrives through the channel; only acknowledge here.
	c.JSON(http.StatusAccepted, gin.H{"status": "submitted", "total": draft.Total()})
}

// handleUpdateStatus advances an order through the pipeline. Only the next
// status in the linear state machine is accepted.
func (s *Server) handleUpdateStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	order, found := s.store.Get(orderID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	next, ok := order.Status.Next()
	if !ok || next != req.Status {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("cannot move order from %s to %s", order.Status, req.Status),
		})
		return
	}

	s.store.SetStatus(c.Request.Context(), orderID, req.Status)
	c.JSON(http.StatusAccepted, gin.H{"status": "requested"})
}

func (s *Server) handleDeleteOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	s.store.Remove(c.Request.Context(), orderID)
	c.JSON(http.StatusAccepted, gin.H{"status": "requested"})
}

func (s *Server) handleRefresh(c *gin.Context) {
	s.store.Refresh(c.Request.Context())
	c.JSON(http.StatusAccepted, gin.H{"status": "refreshing"})
}

func (s *Server) handleListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.Notifications())
}

func (s *Server) handleDismiss(c *gin.Context) {
	s.tracker.Dismiss(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "dismissed"})
}

func (s *Server) handleDismissAll(c *gin.Context) {
	s.tracker.DismissAll()
	c.JSON(http.StatusOK, gin.H{"status": "dismissed"})
}

// handleStats serves the manager dashboard aggregates.
func (s *Server) handleStats(c *gin.Context) {
	orders := s.store.Orders()
	c.JSON(http.StatusOK, gin.H{
		"orderStats":  analytics.CountByStatus(orders),
		"healthStats": analytics.CountHealthConditions(orders),
		"ageStats":    analytics.AgeDemographics(orders),
		"wasteStats":  analytics.PredictFoodWaste(orders),
	})
}

// customerRecommendation pairs one customer with their suitable items
type customerRecommendation struct {
	CustomerID int               `json:"customerId"`
	Items      []models.MenuItem `json:"items"`
}

// handleRecommendations returns per-customer suitable items, the
// safe-for-everyone list and the party's calorie budget.
func (s *Server) handleRecommendations(c *gin.Context) {
	var req customersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu := models.Menu()
	perCustomer := make([]customerRecommendation, 0, len(req.Customers))
	for _, customer := range req.Customers {
		perCustomer = append(perCustomer, customerRecommendation{
			CustomerID: customer.ID,
			Items:      recommend.RecommendationsFor(customer, menu),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"perCustomer":         perCustomer,
		"safeForEveryone":     recommend.SafeForEveryone(req.Customers, menu),
		"recommendedCalories": recommend.RecommendedCalories(req.Customers),
	})
}

// handlePortion previews the portion classification for a draft in
// progress.
func (s *Server) handlePortion(c *gin.Context) {
	var req portionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := hydrateItems(req.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	portion := recommend.ClassifyPortion(
		recommend.OrderCalories(items),
		recommend.RecommendedCalories(req.Customers),
	)
	c.JSON(http.StatusOK, portion)
}

// hydrateItems fills catalog fields into line items that arrive with only
// a menu item reference.
func hydrateItems(items []models.OrderItem) ([]models.OrderItem, error) {
	hydrated := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			menuItem, found := models.MenuItemByID(item.MenuItemID)
			if !found {
				return nil, fmt.Errorf("unknown menu item %d", item.MenuItemID)
			}
			item.Name = menuItem.Name
			item.Category = menuItem.Category
			item.Price = menuItem.Price
			item.Calories = menuItem.Calories
			item.Protein = menuItem.Protein
			item.Carbs = menuItem.Carbs
			item.Fat = menuItem.Fat
			item.Sugar = menuItem.Sugar
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		hydrated = append(hydrated, item)
	}
	return hydrated, nil
}
