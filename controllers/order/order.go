package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zeeshan2604/hotwheels-api/config"
	"github.com/Zeeshan2604/hotwheels-api/middleware"
	"github.com/Zeeshan2604/hotwheels-api/models"
	"github.com/Zeeshan2604/hotwheels-api/pricing"
)

// -------- Request Structs --------

type OrderLineInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type ShippingAddressInput struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Country string `json:"country" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

type PlaceOrderRequest struct {
	OrderItems      []OrderLineInput     `json:"order_items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddressInput `json:"shipping_address" binding:"required"`
	TotalPrice      float64              `json:"total_price" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

var errInvalidStatus = errors.New("invalid order status")

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	case string(models.OrderStatusCompleted):
		return models.OrderStatusCompleted, nil
	default:
		return "", errInvalidStatus
	}
}

// statusTransitions is consulted only when ORDERS_ENFORCE_TRANSITIONS is on.
// By default any status may overwrite any status. Delivered, cancelled and
// completed are terminal.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled, models.OrderStatusCompleted},
	models.OrderStatusShipped:    {models.OrderStatusDelivered, models.OrderStatusCompleted},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
	models.OrderStatusCompleted:  {},
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Handlers --------

// POST /orders
//
// Checkout. Every line is validated against the catalog and snapshotted
// inside one transaction; if any product is unknown nothing is persisted.
// The caller's cart is cleared in the same transaction.
func PlaceOrder(db *gorm.DB, verifier pricing.Verifier, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, _ := middleware.CallerIdentity(c)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			var orderItems []models.OrderItem
			var verifyLines []pricing.Line

			for _, line := range req.OrderItems {
				var product models.Product
				if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
					if err == gorm.ErrRecordNotFound {
						return errUnknownProduct
					}
					return err
				}
				orderItems = append(orderItems, models.OrderItem{
					ProductID:    product.ID,
					ProductName:  product.Name,
					ProductImage: product.Image,
					UnitPrice:    product.Price,
					Quantity:     line.Quantity,
				})
				verifyLines = append(verifyLines, pricing.Line{
					ProductID: product.ID,
					UnitPrice: product.Price,
					Quantity:  line.Quantity,
				})
			}

			if err := verifier.Verify(verifyLines, req.TotalPrice); err != nil {
				return err
			}

			order = models.Order{
				OrderRef: generateOrderRef(),
				UserID:   ident.UserID,
				Items:    orderItems,
				ShippingAddress: models.ShippingAddress{
					Address: req.ShippingAddress.Address,
					City:    req.ShippingAddress.City,
					State:   req.ShippingAddress.State,
					Zip:     req.ShippingAddress.Zip,
					Country: req.ShippingAddress.Country,
					Phone:   req.ShippingAddress.Phone,
				},
				TotalPrice: req.TotalPrice,
				Status:     models.OrderStatusPending,
				CreatedAt:  time.Now(),
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			// Empty the cart as part of checkout, not as a second call.
			var cart models.Cart
			err := tx.Where("user_id = ?", ident.UserID).First(&cart).Error
			if err == nil {
				if err := tx.Where("cart_id = ?", cart.CartID).
					Delete(&models.CartItem{}).Error; err != nil {
					return err
				}
			} else if err != gorm.ErrRecordNotFound {
				return err
			}

			return nil
		})
		if err != nil {
			switch {
			case errors.Is(err, errUnknownProduct):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Order references a product that does not exist"})
			case errors.Is(err, pricing.ErrTotalMismatch):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Total price does not match catalog prices"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		hub.Broadcast(OrderEvent{Type: "order_created", OrderID: order.ID, Status: order.Status})
		c.JSON(http.StatusCreated, order)
	}
}

var errUnknownProduct = errors.New("unknown product in order")

// GET /orders/user
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, _ := middleware.CallerIdentity(c)

		var orders []models.Order
		if err := db.
			Where("user_id = ?", ident.UserID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// findOrder resolves a path parameter to an order. A numeric value is a
// primary key, anything else an order ref; the two are never mixed in one
// query because the id column is an integer and a ref string would fail the
// cast on Postgres.
func findOrder(db *gorm.DB, param string) (models.Order, error) {
	var order models.Order
	query := db.Preload("Items")
	if id, err := strconv.ParseUint(param, 10, 64); err == nil {
		return order, query.First(&order, "id = ?", id).Error
	}
	return order, query.Where("order_ref = ?", param).First(&order).Error
}

// GET /orders/:id — accepts the numeric id or the order ref.
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := findOrder(db, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if !middleware.OwnerOrAdmin(c, order.UserID) {
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /orders/:id
//
// Overwrites the status field and nothing else. Items, address and total
// are immutable after checkout.
func UpdateOrderStatus(db *gorm.DB, cfg config.OrdersConfig, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if !middleware.OwnerOrAdmin(c, order.UserID) {
			return
		}

		if cfg.EnforceTransitions && !transitionAllowed(order.Status, newStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Illegal status transition from " + string(order.Status) + " to " + string(newStatus),
			})
			return
		}

		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		hub.Broadcast(OrderEvent{Type: "status_changed", OrderID: order.ID, Status: newStatus})

		order.Status = newStatus
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /orders/:id
//
// Removes the order and its lines in one transaction.
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if !middleware.OwnerOrAdmin(c, order.UserID) {
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}

// GET /admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
