/*
Package order is the order HTTP surface: the customer API under /api/orders,
the cart and order pages, and the employee order desk.

Order-scoped routes (/order/:id, /api/orders/:id) run behind the order guard,
which has already checked ownership and, for mutations, the Pending state.
Pay and cancel are excluded from the guard; the application service checks
them itself.
*/
package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/ctxutil"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/response"
	orderapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/order"
)

// Controller Order controller
type Controller struct {
	orderService *orderapp.Service
}

func NewController(orderService *orderapp.Service) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes Register order routes
func (c *Controller) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/api/orders")
	{
		orders.POST("", c.CreateOrder)
		orders.GET("", c.ListOrders)
		orders.GET("/:id", c.GetOrder)
		orders.PUT("/:id", c.UpdateItems)
		orders.POST("/:id/pay", c.Pay)
		orders.POST("/:id/cancel", c.Cancel)
	}

	router.GET("/cart", c.Cart)
	pages := router.Group("/order")
	{
		pages.GET("/:id", c.GetOrder)
		pages.POST("/:id", c.UpdateItems)
		pages.POST("/:id/pay", c.Pay)
		pages.POST("/:id/cancel", c.Cancel)
	}

	desk := router.Group("/employee/order")
	{
		desk.GET("/", c.ListAll)
		desk.PUT("/:id", c.UpdateStatus)
	}
}

// CreateOrder POST /api/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	customerID, _ := ctxutil.CustomerID(ctx)
	order, err := c.orderService.CreateOrder(ctxutil.WithRequestID(ctx), customerID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, order, "order created successfully")
}

// ListOrders GET /api/orders
func (c *Controller) ListOrders(ctx *gin.Context) {
	customerID, _ := ctxutil.CustomerID(ctx)
	orders, err := c.orderService.ListCustomerOrders(ctxutil.WithRequestID(ctx), customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// Cart GET /cart
//
// The order guard redirects here with ?error=<message>; the message is echoed back.
func (c *Controller) Cart(ctx *gin.Context) {
	customerID, _ := ctxutil.CustomerID(ctx)
	orders, err := c.orderService.Cart(ctxutil.WithRequestID(ctx), customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	message := "cart retrieved successfully"
	if e := ctx.Query("error"); e != "" {
		message = e
	}
	response.HandleSuccess(ctx, orders, message)
}

// GetOrder GET /api/orders/:id and GET /order/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	if o, ok := ctxutil.GuardedOrder(ctx); ok {
		response.HandleSuccess(ctx, orderapp.ToResponse(o), "order retrieved successfully")
		return
	}

	orderID, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	customerID, _ := ctxutil.CustomerID(ctx)
	order, err := c.orderService.GetOrder(ctxutil.WithRequestID(ctx), customerID, orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// UpdateItems PUT /api/orders/:id and POST /order/:id
func (c *Controller) UpdateItems(ctx *gin.Context) {
	orderID, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	var req orderapp.UpdateItemsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	customerID, _ := ctxutil.CustomerID(ctx)
	order, err := c.orderService.UpdateItems(ctxutil.WithRequestID(ctx), customerID, orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order updated successfully")
}

// Pay POST /api/orders/:id/pay and POST /order/:id/pay
func (c *Controller) Pay(ctx *gin.Context) {
	orderID, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	customerID, _ := ctxutil.CustomerID(ctx)
	order, err := c.orderService.Pay(ctxutil.WithRequestID(ctx), customerID, orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order paid successfully")
}

// Cancel POST /api/orders/:id/cancel and POST /order/:id/cancel
func (c *Controller) Cancel(ctx *gin.Context) {
	orderID, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	customerID, _ := ctxutil.CustomerID(ctx)
	order, err := c.orderService.Cancel(ctxutil.WithRequestID(ctx), customerID, orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order cancelled successfully")
}

// ListAll GET /employee/order/?status=&page=&page_size=
func (c *Controller) ListAll(ctx *gin.Context) {
	var q orderapp.ListOrdersQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	page, err := c.orderService.ListAll(ctxutil.WithRequestID(ctx), q)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Orders, response.NewPagination(page.Page, page.PageSize, page.Total), "orders retrieved successfully")
}

// UpdateStatus PUT /employee/order/:id
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	orderID, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	var req orderapp.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.UpdateStatus(ctxutil.WithRequestID(ctx), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order status updated successfully")
}
