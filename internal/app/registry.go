package app

import (
	"database/sql"
	"path/filepath"

	"noassets/internal/area"
	"noassets/internal/auth"
	"noassets/internal/issuance"
	"noassets/internal/item"
	"noassets/internal/itemtype"
	"noassets/internal/messaging/kafka"
	"noassets/internal/rbac"
	"noassets/internal/rbac/infra"
	"noassets/internal/repair"
	"noassets/internal/trail"
	"noassets/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	itemTypeRepo := itemtype.NewRepository(gormDB)
	itemRepo := item.NewRepository(gormDB)
	areaRepo := area.NewRepository(gormDB)
	issuanceRepo := issuance.NewRepository(gormDB)
	repairRepo := repair.NewRepository(gormDB)
	trailRepo := trail.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(
		filepath.Join("internal", "rbac", "infra", "model.conf"),
		filepath.Join("internal", "rbac", "infra", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Audit Recorder ---
	recorder := trail.NewOutboxRecorder(outboxRepo, logger)

	// --- Services ---
	userService := user.NewService(gormDB, userRepo, recorder, logger)
	authService := auth.NewService(userRepo, recorder, logger)
	itemTypeService := itemtype.NewService(itemTypeRepo, recorder, rdb, logger)
	itemService := item.NewService(gormDB, itemRepo, itemTypeRepo, recorder, logger)
	areaService := area.NewService(gormDB, areaRepo, recorder, logger)
	issuanceService := issuance.NewService(gormDB, issuanceRepo, itemRepo, areaRepo, recorder, logger)
	repairService := repair.NewService(gormDB, repairRepo, itemRepo, recorder, logger)
	trailService := trail.NewService(trailRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	userHandler := user.NewHandler(userService, logger)
	itemTypeHandler := itemtype.NewHandler(itemTypeService, logger)
	itemHandler := item.NewHandlerWithRedis(itemService, rdb, logger)
	areaHandler := area.NewHandler(areaService, logger)
	issuanceHandler := issuance.NewHandlerWithRedis(issuanceService, rdb, logger)
	repairHandler := repair.NewHandlerWithRedis(repairService, rdb, logger)
	trailHandler := trail.NewHandler(trailService, logger)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, userService, logger)
		user.RegisterRoutes(api, userHandler, userService, logger)
		itemtype.RegisterRoutes(api, itemTypeHandler, userService, rbacService, logger)
		item.RegisterRoutes(api, itemHandler, userService, rbacService, rdb, logger)
		area.RegisterRoutes(api, areaHandler, userService, rbacService, logger)
		issuance.RegisterRoutes(api, issuanceHandler, userService, rbacService, rdb, logger)
		repair.RegisterRoutes(api, repairHandler, userService, rbacService, rdb, logger)
		trail.RegisterRoutes(api, trailHandler, userService, logger)
	}

	return nil
}
