package routes

import (
	"github.com/labstack/echo/v4"

	"profico-inventory/internal/controllers"
)

func runEquipmentRouter(
	g *echo.Group,
	equipmentCtrl *controllers.EquipmentController,
	maintenanceCtrl *controllers.MaintenanceController,
	statsCtrl *controllers.StatsController,
	exportCtrl *controllers.ExportController,
) {
	// Статичные пути идут раньше /equipment/:id, иначе echo сматчит их
	// как параметр.
	g.GET("/equipment/workflow-stats", statsCtrl.GetWorkflowStats)
	g.GET("/equipment/export", exportCtrl.ExportEquipments)
	g.GET("/tags", equipmentCtrl.GetTags)

	g.GET("/equipment", equipmentCtrl.GetEquipments)
	g.POST("/equipment", equipmentCtrl.CreateEquipment)
	g.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	g.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment)

	g.POST("/equipment/:id/assign", equipmentCtrl.AssignEquipment)
	g.POST("/equipment/:id/unassign", equipmentCtrl.UnassignEquipment)
	g.POST("/equipment/:id/status", equipmentCtrl.OverrideStatus)
	g.GET("/equipment/:id/history", equipmentCtrl.GetHistory)

	g.GET("/equipment/:id/maintenance", maintenanceCtrl.GetMaintenanceRecords)
	g.POST("/equipment/:id/maintenance", maintenanceCtrl.CreateMaintenanceRecord)
}
