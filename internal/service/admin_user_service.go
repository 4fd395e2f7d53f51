package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/patrick-john02/ATCRS/internal/apperr"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/model"
	"github.com/patrick-john02/ATCRS/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminUserService is the super-admin tier: it manages administrator
// account rows. Passwords and tokens are owned by the external auth
// service.
type AdminUserService interface {
	CreateAdmin(req dto.AdminUserCreateDTO) (*dto.AdminUserDTO, error)
	UpdateAdmin(adminUUID uuid.UUID, req dto.AdminUserUpdateDTO) (*dto.AdminUserDTO, error)
	DeactivateAdmin(adminUUID uuid.UUID) error
	ListAdmins() ([]dto.AdminUserDTO, error)
}

type adminUserService struct {
	adminRepo repository.AdminUserRepository
}

func NewAdminUserService(adminRepo repository.AdminUserRepository) AdminUserService {
	return &adminUserService{adminRepo: adminRepo}
}

func (s *adminUserService) CreateAdmin(req dto.AdminUserCreateDTO) (*dto.AdminUserDTO, error) {
	admin := model.AdminUser{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		IsActive: true,
	}
	if err := s.adminRepo.Create(&admin); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to create admin user")
		return nil, err
	}

	var out dto.AdminUserDTO
	copier.Copy(&out, &admin)
	return &out, nil
}

func (s *adminUserService) UpdateAdmin(adminUUID uuid.UUID, req dto.AdminUserUpdateDTO) (*dto.AdminUserDTO, error) {
	admin, err := s.findAdmin(adminUUID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		admin.Email = *req.Email
	}
	if req.FullName != nil {
		admin.FullName = *req.FullName
	}
	if req.IsActive != nil {
		admin.IsActive = *req.IsActive
	}
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}

	var out dto.AdminUserDTO
	copier.Copy(&out, admin)
	return &out, nil
}

func (s *adminUserService) DeactivateAdmin(adminUUID uuid.UUID) error {
	admin, err := s.findAdmin(adminUUID)
	if err != nil {
		return err
	}
	admin.IsActive = false
	return s.adminRepo.Update(admin)
}

func (s *adminUserService) ListAdmins() ([]dto.AdminUserDTO, error) {
	admins, err := s.adminRepo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdminUserDTO, len(admins))
	for i := range admins {
		copier.Copy(&out[i], &admins[i])
	}
	return out, nil
}

func (s *adminUserService) findAdmin(adminUUID uuid.UUID) (*model.AdminUser, error) {
	admin, err := s.adminRepo.FindByUUID(adminUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("admin %s: %w", adminUUID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return admin, nil
}
