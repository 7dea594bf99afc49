package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/mvalodim/pet_shop/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	ReviewHandler  *ReviewHTTP
	SearchHandler  *SearchHTTP
	Session        *authmw.SessionMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/auth/session", d.AuthHandler.EstablishSession)
	v1.POST("/auth/logout", d.AuthHandler.Logout)
	v1.GET("/auth/me", d.AuthHandler.Me, d.Session.RequireAuth)

	v1.GET("/categories", d.CatalogHandler.GetCategories)
	v1.GET("/products", d.CatalogHandler.GetProducts)
	v1.GET("/products/slug/:slug", d.CatalogHandler.GetProductBySlug)
	v1.GET("/products/:id", d.CatalogHandler.GetProduct)
	v1.GET("/products/:id/reviews", d.ReviewHandler.GetByProduct)
	v1.GET("/search", d.SearchHandler.Search)

	v1.POST("/reviews", d.ReviewHandler.Create, d.Session.RequireAuth)

	cart := v1.Group("/cart", d.Session.RequireAuth)
	cart.GET("", d.CartHandler.GetItems)
	cart.DELETE("", d.CartHandler.Clear)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.PATCH("/items/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/items/:id", d.CartHandler.RemoveItem)

	orders := v1.Group("/orders", d.Session.RequireAuth)
	orders.POST("", d.OrderHandler.Create)
	orders.GET("", d.OrderHandler.GetByUser)
	orders.GET("/number/:number", d.OrderHandler.GetByNumber)
	orders.GET("/:id", d.OrderHandler.GetByID)

	admin := v1.Group("/admin", d.Session.RequireAdmin)
	admin.POST("/categories", d.CatalogHandler.CreateCategory)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)
}
