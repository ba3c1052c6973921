package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Carts are keyed by an opaque session id the storefront generates and
// sends on every request.
const sessionHeader = "X-Session-ID"

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

func sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing " + sessionHeader + " header",
		})
		return "", false
	}
	return id, true
}

// GetCart returns the session cart with resolved prices and totals
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	session, ok := sessionID(c)
	if !ok {
		return
	}

	detail, err := ctrl.cartService.GetCart(c.Request.Context(), session)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"session_id": session,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch cart",
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// AddToCart adds a configured product to the session cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	session, ok := sessionID(c)
	if !ok {
		return
	}

	var req service.AddItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"session_id": session,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	detail, err := ctrl.cartService.AddItem(c.Request.Context(), session, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, service.ErrInvalidCaseType):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid case type",
			})
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Quantity must be positive",
			})
		case errors.Is(err, service.ErrModelNotSellable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "This phone model is not available for the selected case type",
			})
		default:
			log.Error("Failed to add to cart", err, map[string]interface{}{
				"session_id": session,
				"product_id": req.ProductID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to add to cart",
			})
		}
		return
	}

	c.JSON(http.StatusOK, detail)
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem changes a line's quantity; zero or less removes the line
// PUT /api/v1/cart/:product_id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	session, ok := sessionID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product_id parameter",
		})
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	detail, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), session, uint(productID), req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
			return
		}
		log.Error("Failed to update cart item", err, map[string]interface{}{
			"session_id": session,
			"product_id": productID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// RemoveCartItem removes a line
// DELETE /api/v1/cart/:product_id
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	session, ok := sessionID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product_id parameter",
		})
		return
	}

	detail, err := ctrl.cartService.RemoveItem(c.Request.Context(), session, uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"session_id": session,
			"product_id": productID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ClearCart empties the session cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	session, ok := sessionID(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.ClearCart(c.Request.Context(), session); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"session_id": session,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
