package repository

import (
	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/model"
	"gorm.io/gorm"
)

type AdminUserRepository interface {
	Create(admin *model.AdminUser) error
	FindByUUID(id uuid.UUID) (*model.AdminUser, error)
	FindAll() ([]model.AdminUser, error)
	Update(admin *model.AdminUser) error
}

type adminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) Create(admin *model.AdminUser) error {
	return r.db.Create(admin).Error
}

func (r *adminUserRepository) FindByUUID(id uuid.UUID) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := r.db.Where("uuid = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminUserRepository) FindAll() ([]model.AdminUser, error) {
	var admins []model.AdminUser
	if err := r.db.Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminUserRepository) Update(admin *model.AdminUser) error {
	return r.db.Save(admin).Error
}
