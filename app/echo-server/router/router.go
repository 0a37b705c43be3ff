package router

import (
	"stableCraft/internal/middleware"
	"stableCraft/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/refresh-token", handler.RefreshToken)

	users.POST("/logout", handler.Logout, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, middleware.SelfOrAdmin())
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupHorseRoutes(api *echo.Group, handler *rest.HorseHandler, authRequired echo.MiddlewareFunc) {
	horses := api.Group("/horses", authRequired)

	horses.POST("", handler.CreateHorse)
	horses.GET("", handler.GetAllHorses)
	horses.GET("/:id", handler.GetHorseByID)
	horses.PUT("/:id", handler.UpdateHorse)
	horses.DELETE("/:id", handler.DeleteHorse)
}

func SetupGroomRoutes(api *echo.Group, handler *rest.GroomHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	grooms := api.Group("/grooms", authRequired)

	grooms.POST("", handler.CreateGroom)
	grooms.GET("", handler.GetAllGrooms)
	grooms.GET("/:id", handler.GetGroomByID)
	grooms.PUT("/:id", handler.UpdateGroom)
	grooms.DELETE("/:id", handler.DeleteGroom)

	grooms.GET("/:id/bonus-traits", handler.GetBonusTraits, adminOnly)
	grooms.PUT("/:id/bonus-traits", handler.AssignBonusTraits, adminOnly)
}

func SetupAssignmentRoutes(api *echo.Group, handler *rest.AssignmentHandler, authRequired echo.MiddlewareFunc) {
	assignments := api.Group("/assignments", authRequired)

	assignments.POST("", handler.AssignGroom)
	assignments.GET("", handler.GetAssignmentsByHorse)
	assignments.PATCH("/:id/end", handler.EndAssignment)
}

func SetupCompatibilityRoutes(api *echo.Group, handler *rest.CompatHandler, authRequired echo.MiddlewareFunc) {
	compatibility := api.Group("/compatibility", authRequired)

	compatibility.GET("/score", handler.Score)
	compatibility.POST("/preview", handler.Preview)
	compatibility.GET("/grooms", handler.GroomsForTemperament)
	compatibility.GET("/breakdown", handler.Breakdown)
	compatibility.POST("/trait-probability", handler.TraitProbability)
}

func SetupMilestoneRoutes(api *echo.Group, handler *rest.MilestoneHandler, authRequired echo.MiddlewareFunc) {
	milestones := api.Group("/milestones", authRequired)

	milestones.POST("/evaluate", handler.Evaluate)
	milestones.GET("", handler.ListByHorse)
	milestones.GET("/types", handler.Types)
}
