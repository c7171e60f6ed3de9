package wishlist

import (
	"github.com/gin-gonic/gin"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/ctxutil"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/response"
	wishlistapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/wishlist"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/errors"
)

type Controller struct {
	wishlistService *wishlistapp.Service
}

func NewController(wishlistService *wishlistapp.Service) *Controller {
	return &Controller{wishlistService: wishlistService}
}

func (c *Controller) RegisterRoutes(router gin.IRouter) {
	wishlist := router.Group("/api/wishlist")
	{
		wishlist.GET("", c.List)
		wishlist.POST("/:productId", c.Add)
		wishlist.DELETE("/:productId", c.Remove)
	}
}

// List GET /api/wishlist
func (c *Controller) List(ctx *gin.Context) {
	customerID, _ := ctxutil.CustomerID(ctx)
	items, err := c.wishlistService.List(ctxutil.WithRequestID(ctx), customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, items, "wishlist retrieved successfully")
}

// Add POST /api/wishlist/:productId
func (c *Controller) Add(ctx *gin.Context) {
	productID, err := ctxutil.ParamID(ctx, "productId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	customerID, _ := ctxutil.CustomerID(ctx)
	if err := c.wishlistService.Add(ctxutil.WithRequestID(ctx), customerID, productID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "added to wishlist")
}

// Remove DELETE /api/wishlist/:productId
func (c *Controller) Remove(ctx *gin.Context) {
	productID, err := ctxutil.ParamID(ctx, "productId")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	customerID, _ := ctxutil.CustomerID(ctx)
	removed, err := c.wishlistService.Remove(ctxutil.WithRequestID(ctx), customerID, productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !removed {
		response.HandleAppError(ctx, errors.NotFound("product is not on the wishlist"))
		return
	}
	response.HandleSuccess(ctx, nil, "removed from wishlist")
}
