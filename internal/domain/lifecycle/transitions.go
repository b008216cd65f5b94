// Package lifecycle contiene las máquinas de estado del dominio como funciones
// puras: tabla de transiciones de activos, cadena de mantenimiento y pipeline
// de compras. Cualquier transición ausente de la tabla se rechaza.
package lifecycle

import (
	"time"

	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
)

// assetTransitions tabla cerrada de transiciones de estado de activos.
// DISCARDED es terminal: ninguna transición sale de él.
var assetTransitions = map[string]map[string]bool{
	entity.AssetStatusAvailable: {
		entity.AssetStatusInUse:       true,
		entity.AssetStatusMaintenance: true,
		entity.AssetStatusDiscarded:   true,
	},
	entity.AssetStatusInUse: {
		entity.AssetStatusAvailable: true,
		entity.AssetStatusDiscarded: true,
	},
	entity.AssetStatusMaintenance: {
		entity.AssetStatusAvailable: true,
		entity.AssetStatusDiscarded: true,
	},
	entity.AssetStatusDiscarded: {},
}

// CanAssetTransition indica si el cambio de estado from→to está en la tabla.
func CanAssetTransition(from, to string) bool {
	return assetTransitions[from][to]
}

// maintenanceOrder orden de la cadena BROKEN → OPEN → WAITING_PAYMENT → COMPLETED.
var maintenanceOrder = map[string]int{
	entity.MaintenanceStatusBroken:         0,
	entity.MaintenanceStatusOpen:           1,
	entity.MaintenanceStatusWaitingPayment: 2,
	entity.MaintenanceStatusCompleted:      3,
}

// CanMaintenanceAdvance permite solo el paso adelante adyacente; ni
// retrocesos ni saltos.
func CanMaintenanceAdvance(from, to string) bool {
	fromRank, okFrom := maintenanceOrder[from]
	toRank, okTo := maintenanceOrder[to]
	return okFrom && okTo && toRank == fromRank+1
}

// purchaseTransitions pipeline de compras. ORDERED puede saltarse:
// APPROVED puede pasar directo a DELIVERED.
var purchaseTransitions = map[string]map[string]bool{
	entity.PurchaseStatusPending: {
		entity.PurchaseStatusApproved: true,
		entity.PurchaseStatusRejected: true,
	},
	entity.PurchaseStatusApproved: {
		entity.PurchaseStatusOrdered:   true,
		entity.PurchaseStatusDelivered: true,
	},
	entity.PurchaseStatusOrdered: {
		entity.PurchaseStatusDelivered: true,
	},
	entity.PurchaseStatusRejected:  {},
	entity.PurchaseStatusDelivered: {},
}

// CanPurchaseTransition indica si el cambio de estado de la solicitud es válido.
func CanPurchaseTransition(from, to string) bool {
	return purchaseTransitions[from][to]
}

// DaysOpen días completos transcurridos desde la apertura de la orden.
// Calculado en lectura, nunca almacenado.
func DaysOpen(order *entity.MaintenanceOrder, now time.Time) int {
	if now.Before(order.OpenedAt) {
		return 0
	}
	return int(now.Sub(order.OpenedAt).Hours() / 24)
}

// IsOverdue indica si un préstamo abierto pasó su fecha esperada de devolución.
// Cómputo de solo lectura; no es una transición de estado.
func IsOverdue(c *entity.Checkout, now time.Time) bool {
	return c.IsOpen() && c.ExpectedReturn != nil && c.ExpectedReturn.Before(now)
}
