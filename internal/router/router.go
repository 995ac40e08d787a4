package router

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/collinskipkorir28/surfaypro/config"
	"github.com/collinskipkorir28/surfaypro/internal/handler"
	"github.com/collinskipkorir28/surfaypro/internal/middleware"
	"github.com/collinskipkorir28/surfaypro/internal/repository"
	"github.com/collinskipkorir28/surfaypro/pkg/payment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func Setup(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	paymentRepo := repository.NewPaymentRepository()
	userRepo := repository.NewUserRepository()

	provider := payment.NewDarajaProvider(
		cfg.Mpesa.APIURL,
		cfg.Mpesa.ConsumerKey,
		cfg.Mpesa.ConsumerSecret,
		cfg.Mpesa.BusinessShortCode,
		cfg.Mpesa.Passkey,
		cfg.Mpesa.CallbackURL,
	)

	mpesaHandler := handler.NewMpesaHandler(cfg, paymentRepo, provider)
	mpesaWebhookHandler := handler.NewMpesaWebhookHandler(paymentRepo)
	userHandler := handler.NewUserHandler(userRepo)
	adminHandler := handler.NewAdminHandler(paymentRepo, userRepo)
	metaHandler := handler.NewMetaHandler(cfg)

	api := r.Group("/api")
	{
		api.GET("", metaHandler.Index)
		api.GET("/health", metaHandler.Health)

		mpesa := api.Group("/mpesa")
		{
			mpesa.POST("/stkpush", mpesaHandler.STKPush)
			mpesa.POST("/status", mpesaHandler.Status)
			mpesa.POST("/callback", mpesaWebhookHandler.Handle)
		}

		api.POST("/users/register", userHandler.Register)

		admin := api.Group("/admin")
		{
			admin.GET("/payments", adminHandler.ListPayments)
			admin.GET("/users", adminHandler.ListUsers)
		}
	}

	r.StaticFile("/", filepath.Join(cfg.Server.StaticDir, "index.html"))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Endpoint not found",
		})
	})

	return r
}
