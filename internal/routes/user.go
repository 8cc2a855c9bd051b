package routes

import (
	"github.com/labstack/echo/v4"

	"profico-inventory/internal/controllers"
)

func runUserRouter(g *echo.Group, ctrl *controllers.UserController) {
	g.GET("/users", ctrl.GetUsers)
	g.POST("/users", ctrl.CreateUser)
	g.PUT("/users/:id/role", ctrl.UpdateUserRole)
}
