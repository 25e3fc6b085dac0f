package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/auth"
	adminControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/admin"
	userControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/user"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/middleware"
)

// SetupAuthRoutes wires session issuance: the storefront identity exchange,
// the static admin login and the role elevation endpoint, plus the signed-in
// user's profile surface.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	// identity exchange, protected by the shared key
	api.POST("/auth/exchange", middleware.ValidateExchangeKey, userControllers.ExchangeIdentity(db))

	// static admin login
	api.POST("/auth/admin/login", adminControllers.LoginHandler(auth.NewStaticProviderFromEnv()))

	session := api.Group("", middleware.RequireSession)
	{
		session.POST("/auth/elevate", adminControllers.ElevateHandler(db))

		session.GET("/me", userControllers.GetProfile(db))
		session.PUT("/me", userControllers.UpdateProfile(db))
		session.GET("/me/favorites", userControllers.ListFavorites(db))
		session.POST("/me/favorites/:product_id", userControllers.AddFavorite(db))
		session.DELETE("/me/favorites/:product_id", userControllers.RemoveFavorite(db))
		session.POST("/me/addresses", userControllers.CreateAddress(db))
		session.DELETE("/me/addresses/:id", userControllers.DeleteAddress(db))
		session.PUT("/me/measurements", userControllers.UpsertBodyProfile(db))
		session.GET("/me/cards", userControllers.ListSavedCards(db))
		session.POST("/me/cards", userControllers.SaveCard(db))
		session.DELETE("/me/cards/:id", userControllers.DeleteSavedCard(db))
		session.GET("/me/coupons", userControllers.ListMyCoupons(db))
	}
}
