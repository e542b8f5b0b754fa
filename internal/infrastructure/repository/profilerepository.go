package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/db"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func profileToModel(p *user.Profile) *models.ProfileModel {
	return &models.ProfileModel{
		ID:           p.ID,
		Username:     p.Username,
		WorkNumber:   p.WorkNumber,
		Name:         p.Name,
		Department:   p.Department,
		Phone:        p.Phone,
		Role:         p.Role,
		PasswordHash: p.PasswordHash,
		Email:        p.Email,
		WxID:         p.WxID,
	}
}

func profileToDomain(m *models.ProfileModel) *user.Profile {
	return &user.Profile{
		ID:           m.ID,
		Username:     m.Username,
		WorkNumber:   m.WorkNumber,
		Name:         m.Name,
		Department:   m.Department,
		Phone:        m.Phone,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		Email:        m.Email,
		WxID:         m.WxID,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *user.Profile) error {
	model := profileToModel(profile)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	profile.ID = model.ID
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uint) (*user.Profile, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*user.Profile, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *ProfileRepository) GetByWorkNumber(ctx context.Context, workNumber string) (*user.Profile, error) {
	return r.getBy(ctx, "work_number = ?", workNumber)
}

func (r *ProfileRepository) GetByWxID(ctx context.Context, wxID string) (*user.Profile, error) {
	return r.getBy(ctx, "wx_id = ?", wxID)
}

func (r *ProfileRepository) getBy(ctx context.Context, query string, arg any) (*user.Profile, error) {
	var model models.ProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, arg).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profileToDomain(&model), nil
}

func (r *ProfileRepository) List(ctx context.Context, page, pageSize int) ([]*user.Profile, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.ProfileModel{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	if page > 0 && pageSize > 0 {
		tx = tx.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var rows []models.ProfileModel
	if err := tx.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]*user.Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, profileToDomain(&rows[i]))
	}
	return profiles, total, nil
}

func (r *ProfileRepository) ListMaintenanceWorkers(ctx context.Context) ([]*user.Profile, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	mask := authorization.PermMaintenance | authorization.PermMaintenanceHigher
	var rows []models.ProfileModel
	if err := tx.Where("role & ? > 0", uint(mask)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance workers: %w", err)
	}

	profiles := make([]*user.Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, profileToDomain(&rows[i]))
	}
	return profiles, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *user.Profile) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ProfileModel{}).
		Where("id = ?", profile.ID).
		Updates(profileToModel(profile))
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	return nil
}

func (r *ProfileRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ProfileModel{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("profile not found")
	}
	return nil
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, id uint, role authorization.Permission) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ProfileModel{}).
		Where("id = ?", id).
		Update("role", uint(role))
	if result.Error != nil {
		return fmt.Errorf("failed to update role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("profile not found")
	}
	return nil
}
