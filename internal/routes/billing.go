package routes

import (
	"github.com/labstack/echo/v4"

	"profico-inventory/internal/controllers"
)

func runBillingRouter(
	g *echo.Group,
	subscriptionCtrl *controllers.SubscriptionController,
	invoiceCtrl *controllers.InvoiceController,
	statsCtrl *controllers.StatsController,
) {
	g.GET("/billing/stats", statsCtrl.GetBillingStats)

	g.GET("/subscriptions", subscriptionCtrl.GetSubscriptions)
	g.POST("/subscriptions", subscriptionCtrl.CreateSubscription)
	g.GET("/subscriptions/:id", subscriptionCtrl.FindSubscription)
	g.PUT("/subscriptions/:id", subscriptionCtrl.UpdateSubscription)

	g.GET("/invoices", invoiceCtrl.GetInvoices)
	g.POST("/invoices", invoiceCtrl.CreateInvoice)
	g.GET("/invoices/:id", invoiceCtrl.FindInvoice)
	g.PUT("/invoices/:id/status", invoiceCtrl.UpdateInvoiceStatus)
}
