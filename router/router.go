package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menudeck/menudeck/controllers"
	"github.com/menudeck/menudeck/middlewares"
	"github.com/menudeck/menudeck/models"
	"github.com/menudeck/menudeck/storage"
	"github.com/menudeck/menudeck/store"
)

// SetupRouter wires the public and admin surfaces. The role gate on the
// admin mutation routes is advisory; the store re-checks every
// operation, so a request that slips past the gate is still rejected.
func SetupRouter(db *gorm.DB, dataStore *store.Store, objects storage.ObjectStore, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(extra...)

	userCtrl := controllers.NewUserController(db)
	publicCtrl := controllers.NewPublicController(dataStore)
	restaurantCtrl := controllers.NewRestaurantController(dataStore)
	categoryCtrl := controllers.NewMenuCategoryController(dataStore)
	itemCtrl := controllers.NewMenuItemController(dataStore)
	roleCtrl := controllers.NewUserRoleController(dataStore)
	imageCtrl := controllers.NewImageController(objects)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public read access for uploaded images when the local object
	// store is in use.
	if local, ok := objects.(*storage.Local); ok {
		r.Static("/uploads", local.Dir)
	}

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/restaurants", publicCtrl.ListRestaurants)
	r.GET("/restaurants/:slug/menu", publicCtrl.GetMenuBySlug)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// Role grants. Reads are self-scoped by the policy, so no gate.
	auth.GET("/roles", roleCtrl.GetRoles)

	// Image objects: any authenticated caller, per the bucket policy.
	auth.POST("/images", imageCtrl.Upload)
	auth.DELETE("/images/:key", imageCtrl.Delete)

	admin := auth.Group("/")
	admin.Use(middlewares.RequireRole(dataStore.Policy(), models.RoleAdmin))
	{
		// RESTAURANTS
		admin.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
		admin.POST("/restaurants", restaurantCtrl.CreateRestaurant)
		admin.PATCH("/restaurants/:restaurant_id", restaurantCtrl.UpdateRestaurant)
		admin.DELETE("/restaurants/:restaurant_id", restaurantCtrl.DeleteRestaurant)

		// MENU CATEGORIES
		admin.GET("/restaurants/:restaurant_id/categories", categoryCtrl.GetCategories)
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		// MENU ITEMS
		admin.GET("/categories/:cat_id/items", itemCtrl.GetItems)
		admin.POST("/items", itemCtrl.CreateItem)
		admin.GET("/items/:item_id", itemCtrl.GetItemByID)
		admin.PATCH("/items/:item_id", itemCtrl.UpdateItem)
		admin.DELETE("/items/:item_id", itemCtrl.DeleteItem)

		// ROLE GRANTS
		admin.POST("/roles", roleCtrl.CreateRole)
		admin.DELETE("/roles/:role_id", roleCtrl.DeleteRole)
	}

	return r
}
