package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinica-api/internal/application/auth"
	"github.com/clinova/clinica-api/internal/application/catalog"
	"github.com/clinova/clinica-api/internal/application/inventory"
	"github.com/clinova/clinica-api/internal/application/orders"
	"github.com/clinova/clinica-api/internal/application/sales"
	"github.com/clinova/clinica-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *catalog.ProductUseCase
	ApplyUC     *inventory.ApplyMovementUseCase
	InventoryQ  *inventory.QueryUseCase
	OrderUC     *orders.PurchaseOrderUseCase
	SaleUC      *sales.RecordSaleUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (protegido; crear y editar solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)

	// Libro de stock (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ApplyUC, deps.InventoryQ)
	invGroup.Post("/movements", inventoryHandler.ApplyMovement)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)
	invGroup.Get("/expiring-lots", inventoryHandler.ListExpiringLots)
	invGroup.Get("/:productId", inventoryHandler.GetInventory)
	invGroup.Get("/:productId/lots", inventoryHandler.ListLots)
	invGroup.Get("/:productId/movements", inventoryHandler.ListMovements)
	invGroup.Put("/:productId/threshold", inventoryHandler.SetThreshold)

	// Órdenes de compra (protegido)
	orderGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orderGroup.Post("/", orderHandler.Create)
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/:id", orderHandler.GetByID)
	orderGroup.Post("/:id/receive", orderHandler.Receive)

	// Ventas (protegido)
	saleGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	saleGroup.Post("/", saleHandler.Create)
	saleGroup.Get("/", saleHandler.List)
	saleGroup.Get("/:id", saleHandler.GetByID)
}
