// Package http wires the gin engine: middleware chain first, then the
// route table. Route paths line up with the authorization rules in
// shared/authorization, which key on path prefixes.
package http

import (
	"github.com/gin-gonic/gin"

	"assetdesk/internal/interfaces/http/handlers"
	"assetdesk/internal/interfaces/http/middleware"
	"assetdesk/internal/shared/logger"
)

// Handlers bundles every endpoint group the router mounts.
type Handlers struct {
	User         *handlers.UserHandler
	Equipment    *handlers.EquipmentHandler
	Maintenance  *handlers.MaintenanceHandler
	Patrol       *handlers.PatrolHandler
	Organization *handlers.OrganizationHandler
	Statistics   *handlers.StatisticsHandler
}

// NewEngine assembles the gin engine with the full middleware chain and
// route table.
func NewEngine(h Handlers, guard *middleware.SessionGuard, log logger.Interface, debugMode bool) *gin.Engine {
	if debugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(),
		guard.Handle(),
	)

	api := engine.Group("/api")

	user := api.Group("/user")
	{
		user.POST("/login", h.User.Login)
		user.GET("/wechat", h.User.WeChatLogin)
		user.GET("/logout", h.User.Logout)
		user.GET("/alive", h.User.Alive)
		user.GET("/info", h.User.Info)
		user.PATCH("/password", h.User.ChangePassword)
		user.PATCH("/update", h.User.UpdateProfile)
		user.GET("/config", h.User.GetConfig)
		user.PATCH("/config", h.User.UpdateConfig)

		// Guarded by the super administrator bit in the route rules.
		user.POST("/create", h.User.CreateUser)
		user.POST("/reset_password", h.User.ResetPassword)
		user.GET("/admin", h.User.ListUsers)
		user.PATCH("/permission", h.User.UpdateRole)

		user.GET("/dispatch-query", h.User.DispatchQuery)
	}

	equipment := api.Group("/equipment")
	{
		equipment.GET("", h.Equipment.List)
		equipment.POST("", h.Equipment.Create)
		equipment.PATCH("", h.Equipment.Update)
		equipment.DELETE("", h.Equipment.Delete)
		equipment.GET("/detail", h.Equipment.Detail)
		equipment.GET("/options", h.Equipment.Options)
		equipment.GET("/export", h.Equipment.Export)
	}

	maintenance := api.Group("/maintenance")
	{
		// Public surface for reporters and field workers.
		maintenance.POST("/report", h.Maintenance.Report)
		maintenance.GET("/captcha", h.Maintenance.Captcha)
		maintenance.PATCH("/arrival", h.Maintenance.Arrival)
		maintenance.PATCH("/fix", h.Maintenance.Fix)
		maintenance.PATCH("/appraisal", h.Maintenance.Appraisal)
		maintenance.PATCH("/cancel", h.Maintenance.Cancel)

		maintenance.GET("", h.Maintenance.List)
		maintenance.GET("/options", h.Maintenance.Options)
		maintenance.GET("/flow", h.Maintenance.Flow)
		maintenance.PATCH("/dispatch", h.Maintenance.Dispatch)
		maintenance.PATCH("/remote", h.Maintenance.RemoteFix)
		maintenance.POST("/resend", h.Maintenance.Resend)
	}

	patrol := api.Group("/patrol")
	{
		patrol.GET("", h.Patrol.List)
		patrol.POST("", h.Patrol.Create)
		patrol.GET("/detail", h.Patrol.Detail)
		patrol.PATCH("/check", h.Patrol.CheckOff)
		patrol.PATCH("/cancel", h.Patrol.Cancel)
	}

	organization := api.Group("/organization")
	{
		organization.GET("", h.Organization.Tree)
		organization.GET("/contact", h.Organization.Contact)
		organization.POST("/contact", h.Organization.SetContact)

		// Guarded by the super administrator bit in the route rules.
		organization.POST("/add", h.Organization.Add)
		organization.PATCH("/update", h.Organization.Rename)
		organization.DELETE("/remove", h.Organization.Remove)
	}

	statistics := api.Group("/statistics")
	{
		statistics.GET("/department", h.Statistics.Department)
		statistics.GET("/category", h.Statistics.Category)
		statistics.GET("/age", h.Statistics.Age)
		statistics.GET("/export", h.Statistics.Export)
	}

	return engine
}
