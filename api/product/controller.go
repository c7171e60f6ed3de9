package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/ctxutil"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/response"
	productapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/errors"
)

// Controller serves the public catalogue and the employee product desk.
type Controller struct {
	productService *productapp.Service
}

func NewController(productService *productapp.Service) *Controller {
	return &Controller{productService: productService}
}

func (c *Controller) RegisterRoutes(router gin.IRouter) {
	catalogue := router.Group("/api/products")
	{
		catalogue.GET("", c.ListCatalogue)
		catalogue.GET("/:id", c.GetProduct)
	}

	desk := router.Group("/employee/product")
	{
		desk.GET("/", c.ListAll)
		desk.POST("/", c.Create)
		desk.PUT("/:id", c.Update)
		desk.PATCH("/:id", c.AdjustStock)
		desk.DELETE("/:id", c.Delete)
	}
}

// ListCatalogue GET /api/products[?sku=]
func (c *Controller) ListCatalogue(ctx *gin.Context) {
	if sku := ctx.Query("sku"); sku != "" {
		p, err := c.productService.GetBySKU(ctxutil.WithRequestID(ctx), sku)
		if err != nil {
			response.HandleAppError(ctx, err)
			return
		}
		if !p.Active {
			response.HandleAppError(ctx, errors.NotFound("product not found: "+p.SKU))
			return
		}
		response.HandleSuccess(ctx, []*productapp.ProductResponse{p}, "products retrieved successfully")
		return
	}

	products, err := c.productService.List(ctxutil.WithRequestID(ctx), true)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "products retrieved successfully")
}

// GetProduct GET /api/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	id, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	p, err := c.productService.Get(ctxutil.WithRequestID(ctx), id, true)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "product retrieved successfully")
}

// ListAll GET /employee/product/
func (c *Controller) ListAll(ctx *gin.Context) {
	products, err := c.productService.List(ctxutil.WithRequestID(ctx), false)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "products retrieved successfully")
}

// Create POST /employee/product/
func (c *Controller) Create(ctx *gin.Context) {
	var req productapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	p, err := c.productService.Create(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, p, "product created successfully")
}

// Update PUT /employee/product/:id
func (c *Controller) Update(ctx *gin.Context) {
	id, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	var req productapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	p, err := c.productService.Update(ctxutil.WithRequestID(ctx), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "product updated successfully")
}

// AdjustStock PATCH /employee/product/:id
func (c *Controller) AdjustStock(ctx *gin.Context) {
	id, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	var req productapp.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	p, err := c.productService.AdjustStock(ctxutil.WithRequestID(ctx), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "stock adjusted successfully")
}

// Delete DELETE /employee/product/:id
func (c *Controller) Delete(ctx *gin.Context) {
	id, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if err := c.productService.Delete(ctxutil.WithRequestID(ctx), id); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
