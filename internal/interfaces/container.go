// Package interfaces assembles the dependency graph: infrastructure
// adapters at the bottom, use cases in the middle, HTTP handlers on
// top.
package interfaces

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	equipmentusecases "assetdesk/internal/application/equipment/usecases"
	"assetdesk/internal/application/notification"
	organizationusecases "assetdesk/internal/application/organization/usecases"
	patrolusecases "assetdesk/internal/application/patrol/usecases"
	statisticsusecases "assetdesk/internal/application/statistics/usecases"
	userusecases "assetdesk/internal/application/user/usecases"
	workorderusecases "assetdesk/internal/application/workorder/usecases"
	"assetdesk/internal/domain/patrol"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/infrastructure/auth"
	"assetdesk/internal/infrastructure/cache"
	"assetdesk/internal/infrastructure/config"
	"assetdesk/internal/infrastructure/email"
	"assetdesk/internal/infrastructure/repository"
	"assetdesk/internal/infrastructure/sms"
	"assetdesk/internal/infrastructure/wechat"
	httpiface "assetdesk/internal/interfaces/http"
	"assetdesk/internal/interfaces/http/handlers"
	"assetdesk/internal/interfaces/http/middleware"
	"assetdesk/internal/shared/db"
	"assetdesk/internal/shared/id"
	"assetdesk/internal/shared/logger"
)

// Container holds the assembled application. Patrols is exposed so the
// server command can hang the overdue-plan sweeper off the same
// repository the handlers use.
type Container struct {
	Engine  *gin.Engine
	Patrols patrol.Repository
}

// Build wires every layer together. The cache store is passed in so
// the server can run against Redis and tests against memory.
func Build(cfg *config.Config, database *gorm.DB, store cache.Store, log logger.Interface) *Container {
	// infrastructure
	txMgr := db.NewTransactionManager(database)
	codec := id.NewCodec(cfg.Auth.IDSecret)

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpireHours, cfg.Auth.RefreshWindowMinutes)
	sessions := auth.NewSessionStore(store, cfg.Auth.TokenExpireHours, cfg.Auth.GraceTTLSeconds)
	revoked := auth.NewRevocationFilter(store)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)
	version := cache.NewVersionStamper(store)

	orders := repository.NewWorkOrderRepository(database)
	orderHistory := repository.NewOrderHistoryRepository(database)
	equipmentRepo := repository.NewEquipmentRepository(database)
	details := repository.NewComputerDetailRepository(database)
	edits := repository.NewEditHistoryRepository(database)
	profiles := repository.NewProfileRepository(database)
	departments := repository.NewDepartmentRepository(database)
	patrols := repository.NewPatrolRepository(database)
	itConfig := repository.NewItConfigRepository(database)
	captchas := repository.NewCaptchaRepository(database)
	emailHistory := repository.NewEmailHistoryRepository(database)

	sequence := workorder.NewSequenceGenerator(store)

	smtpSender := email.NewSMTPService(&cfg.Email)
	smsSender := sms.NewHTTPSender(&cfg.SMS)
	wechatClient := wechat.NewClient(&cfg.WeChat, store)

	captchaService := notification.NewCaptchaService(captchas, store, smsSender, itConfig, log, cfg.SMS.WindowSeconds)
	notifier := notification.NewEmailNotifier(smtpSender, orderHistory, emailHistory, captchas, itConfig, log)

	// use cases
	login := userusecases.NewLoginUseCase(profiles, hasher, jwtService, sessions, log)
	userHandler := handlers.NewUserHandler(
		login,
		userusecases.NewWeChatLoginUseCase(profiles, wechatClient, login, log),
		userusecases.NewLogoutUseCase(jwtService, revoked, sessions, log),
		userusecases.NewChangePasswordUseCase(profiles, hasher, log),
		userusecases.NewResetPasswordUseCase(profiles, hasher, log),
		userusecases.NewCreateUserUseCase(profiles, hasher, log),
		userusecases.NewUpdateProfileUseCase(profiles, log),
		userusecases.NewUpdateRoleUseCase(profiles, log),
		userusecases.NewListUsersUseCase(profiles),
		userusecases.NewGetUserUseCase(profiles),
		userusecases.NewGetConfigUseCase(itConfig),
		userusecases.NewUpdateConfigUseCase(itConfig, version, log),
		workorderusecases.NewListWorkersUseCase(profiles),
		codec,
		log,
	)

	equipmentHandler := handlers.NewEquipmentHandler(
		equipmentusecases.NewCreateEquipmentUseCase(equipmentRepo, details, edits, txMgr, version, log),
		equipmentusecases.NewUpdateEquipmentUseCase(equipmentRepo, details, edits, txMgr, version, log),
		equipmentusecases.NewDeleteEquipmentUseCase(equipmentRepo, details, edits, txMgr, version, log),
		equipmentusecases.NewListEquipmentUseCase(equipmentRepo),
		equipmentusecases.NewGetEquipmentUseCase(equipmentRepo, details, edits),
		equipmentusecases.NewEquipmentOptionsUseCase(equipmentRepo),
		equipmentusecases.NewExportEquipmentUseCase(equipmentRepo),
		codec,
		log,
	)

	maintenanceHandler := handlers.NewMaintenanceHandler(
		workorderusecases.NewReportOrderUseCase(orders, orderHistory, equipmentRepo, edits, sequence, captchaService, txMgr, log),
		workorderusecases.NewDispatchOrderUseCase(orders, orderHistory, profiles, notifier, txMgr, log),
		workorderusecases.NewArrivalUseCase(orders, orderHistory, profiles, txMgr, log),
		workorderusecases.NewOnSiteFixUseCase(orders, orderHistory, profiles, equipmentRepo, edits, txMgr, log),
		workorderusecases.NewRemoteFixUseCase(orders, orderHistory, equipmentRepo, edits, txMgr, log),
		workorderusecases.NewEvaluateOrderUseCase(orders, orderHistory, captchaService, txMgr, log),
		workorderusecases.NewCancelOrderUseCase(orders, orderHistory, equipmentRepo, edits, captchaService, txMgr, log),
		workorderusecases.NewResendNotificationUseCase(orders, profiles, notifier, log),
		workorderusecases.NewListOrdersUseCase(orders, log),
		workorderusecases.NewOrderOptionsUseCase(orders),
		workorderusecases.NewOrderFlowUseCase(orders, orderHistory),
		captchaService,
		codec,
		log,
	)

	patrolHandler := handlers.NewPatrolHandler(
		patrolusecases.NewCreatePlanUseCase(patrols, profiles, sequence, log),
		patrolusecases.NewCheckOffUseCase(patrols, log),
		patrolusecases.NewCancelPlanUseCase(patrols, log),
		patrolusecases.NewListPlansUseCase(patrols),
		patrolusecases.NewPlanDetailUseCase(patrols),
		codec,
		log,
	)

	organizationHandler := handlers.NewOrganizationHandler(
		organizationusecases.NewAddDepartmentUseCase(departments, log),
		organizationusecases.NewRemoveDepartmentUseCase(departments, log),
		organizationusecases.NewRenameDepartmentUseCase(departments, log),
		organizationusecases.NewSetContactUseCase(departments, log),
		organizationusecases.NewTreeUseCase(departments),
		organizationusecases.NewGetContactUseCase(departments),
		codec,
		log,
	)

	departmentStats := statisticsusecases.NewDepartmentStatsUseCase(equipmentRepo, departments)
	categoryStats := statisticsusecases.NewCategoryStatsUseCase(equipmentRepo)
	statisticsHandler := handlers.NewStatisticsHandler(
		departmentStats,
		categoryStats,
		statisticsusecases.NewAgeStatsUseCase(equipmentRepo),
		statisticsusecases.NewExportStatsUseCase(departmentStats, categoryStats),
		codec,
		log,
	)

	guard := middleware.NewSessionGuard(jwtService, sessions, revoked, log)
	engine := httpiface.NewEngine(httpiface.Handlers{
		User:         userHandler,
		Equipment:    equipmentHandler,
		Maintenance:  maintenanceHandler,
		Patrol:       patrolHandler,
		Organization: organizationHandler,
		Statistics:   statisticsHandler,
	}, guard, log, cfg.Server.Mode == "debug")

	return &Container{Engine: engine, Patrols: patrols}
}
