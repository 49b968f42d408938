package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"property-backend/auth"
	"property-backend/controllers"
	"property-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.AuthController,
	tc *controllers.TenantController,
	cc *controllers.ContractController,
	pc *controllers.PolicyController,
	mc *controllers.MeterController,
	ic *controllers.InvoiceController,
	mo *controllers.MoveOutController,
	jwtManager *auth.JWTManager,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", ac.Login)
			authRoutes.POST("/forgot", ac.ForgotPassword)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(jwtManager))

		rooms := protected.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.PATCH("/:id", controllers.UpdateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.DELETE("/:id", controllers.DeleteRoom)
		}

		tenants := protected.Group("/tenants")
		{
			tenants.GET("", tc.GetTenants)
			tenants.GET("/:id", tc.GetTenantByID)
			tenants.POST("", tc.CreateTenant)
			tenants.PUT("/:id", tc.UpdateTenant)
			tenants.DELETE("/:id", tc.DeleteTenant)
		}

		contracts := protected.Group("/contracts")
		{
			contracts.GET("", cc.GetContracts)
			contracts.GET("/:id", cc.GetContractByID)
			contracts.POST("", cc.CreateContract)
			contracts.PUT("/:id", cc.UpdateContract)
		}

		policies := protected.Group("/policies")
		{
			policies.GET("", pc.GetPolicies)
			policies.GET("/:utility", pc.GetPolicy)
			policies.PUT("/:utility", pc.UpdatePolicy)
		}

		meters := protected.Group("/meter-readings")
		{
			meters.POST("", mc.RecordReading)
			meters.GET("/room/:roomId", mc.GetReadingsByRoom)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", ic.GetInvoices)
			invoices.GET("/:id", ic.GetInvoiceByID)
			invoices.POST("", ic.GenerateInvoice)
			invoices.POST("/:id/items", ic.AddItem)
			invoices.DELETE("/:id/items/:index", ic.RemoveItem)
			invoices.PUT("/:id/discount", ic.SetDiscount)
			invoices.PUT("/:id/other-fees", ic.SetOtherFees)
			invoices.POST("/:id/recompute", ic.RecomputeUtilities)
			invoices.POST("/:id/pay", ic.MarkPaid)
			invoices.POST("/:id/cancel", ic.CancelInvoice)
		}

		moveout := protected.Group("/moveout")
		{
			moveout.POST("/preview", mo.Preview)
			moveout.POST("/settle-invoice", mo.SettleInvoice)
			moveout.POST("/confirm", mo.Confirm)
			moveout.GET("/outstanding/:contractId", mo.GetOutstanding)
			moveout.GET("/records/:id", mo.GetRecord)
		}

		maintenance := protected.Group("/maintenance")
		{
			maintenance.GET("", controllers.GetMaintenanceRequests)
			maintenance.POST("", controllers.CreateMaintenanceRequest)
			maintenance.PUT("/:id", controllers.UpdateMaintenanceRequest)
			maintenance.DELETE("/:id", controllers.DeleteMaintenanceRequest)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("/property", controllers.GetPropertySettings)
			settings.PUT("/property", controllers.UpdatePropertySettings)
		}
	}

	return r
}
