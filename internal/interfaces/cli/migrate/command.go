package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetdesk/internal/infrastructure/config"
	"assetdesk/internal/infrastructure/database"
	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Create or update the database schema from the persistence models.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply the schema",
		Long:  `Create missing tables and columns so the schema matches the persistence models.`,
		RunE:  runUp,
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which tables exist",
		RunE:  runStatus,
	}
}

func allModels() []any {
	return []any{
		&models.ProfileModel{},
		&models.DepartmentMetaModel{},
		&models.DepartmentRelationModel{},
		&models.DepartmentContactModel{},
		&models.EquipmentModel{},
		&models.ComputerDetailModel{},
		&models.EditHistoryModel{},
		&models.WorkOrderModel{},
		&models.OrderHistoryModel{},
		&models.PatrolMetaModel{},
		&models.PatrolDetailModel{},
		&models.CaptchaMetaModel{},
		&models.EmailHistoryModel{},
		&models.ItConfigModel{},
	}
}

func initEnv() (logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return logger.NewLogger(), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("applying schema", "environment", env)

	if err := database.Get().AutoMigrate(allModels()...); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("schema up to date")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("checking schema", "environment", env)

	migrator := database.Get().Migrator()
	for _, model := range allModels() {
		fmt.Printf("%-32T present=%v\n", model, migrator.HasTable(model))
	}

	return nil
}
