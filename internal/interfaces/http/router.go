package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-obra-api/internal/application/asset"
	"github.com/jhoicas/Almacen-obra-api/internal/application/checkout"
	"github.com/jhoicas/Almacen-obra-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-obra-api/internal/application/maintenance"
	"github.com/jhoicas/Almacen-obra-api/internal/application/purchasing"
	"github.com/jhoicas/Almacen-obra-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	AssetUC       *usecase.AssetUseCase
	LocationUC    *usecase.LocationUseCase
	LedgerUC      *ledger.UseCase
	Lifecycle     *asset.LifecycleManager
	CheckoutUC    *checkout.UseCase
	MaintenanceUC *maintenance.UseCase
	PurchasingUC  *purchasing.UseCase
}

// Router registra las rutas de la API. La autorización ocurrió antes de
// llegar aquí; la capa llamante identifica al actor vía X-User.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products (catálogo + lecturas derivadas del motor de stock)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", inventoryHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)
	products.Get("/:id/stock", inventoryHandler.GetStock)
	products.Get("/:id/movements", inventoryHandler.ListMovements)

	// Inventory movements (motor de stock)
	invGroup := api.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Post("/adjustments", inventoryHandler.RegisterAdjustment)

	// Assets (registro + lifecycle)
	assets := api.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC, deps.Lifecycle)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	assets.Post("/", assetHandler.Create)
	assets.Get("/", assetHandler.List)
	assets.Get("/tag/:tag", assetHandler.GetByTag)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Patch("/:id/location", assetHandler.TransferLocation)
	assets.Post("/:id/discard", assetHandler.Discard)
	assets.Post("/:id/return", checkoutHandler.ReturnByAsset)
	assets.Get("/:id/checkouts", checkoutHandler.ListByAsset)
	assets.Get("/:id/maintenance-orders", maintenanceHandler.ListByAsset)

	// Checkouts (préstamos)
	checkouts := api.Group("/checkouts")
	checkouts.Post("/", checkoutHandler.Create)
	checkouts.Get("/open", checkoutHandler.ListOpen)
	checkouts.Post("/:id/return", checkoutHandler.Return)

	// Maintenance orders
	orders := api.Group("/maintenance-orders")
	orders.Post("/", maintenanceHandler.Open)
	orders.Get("/active", maintenanceHandler.ListActive)
	orders.Get("/:id", maintenanceHandler.GetByID)
	orders.Patch("/:id/status", maintenanceHandler.AdvanceStatus)

	// Purchase requests
	purchases := api.Group("/purchase-requests")
	purchaseHandler := NewPurchaseHandler(deps.PurchasingUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Patch("/:id/status", purchaseHandler.UpdateStatus)

	// Locations
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Delete("/:id", locationHandler.Deactivate)
}
