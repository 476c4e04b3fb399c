package services

import (
	"errors"
	"strings"

	"frontdesk-backend/apperror"
	"frontdesk-backend/models"

	"gorm.io/gorm"
)

type RoomCategoryService struct {
	DB *gorm.DB
}

func NewRoomCategoryService(db *gorm.DB) *RoomCategoryService {
	return &RoomCategoryService{DB: db}
}

func (s *RoomCategoryService) Create(category *models.RoomCategory) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return apperror.New(apperror.KindValidation, "category name is required")
	}
	if category.Status == "" {
		category.Status = models.CategoryStatusActive
	}
	if err := s.DB.Create(category).Error; err != nil {
		if isDuplicateKey(err) {
			return apperror.Newf(apperror.KindConflict, "category %s already exists", category.Name)
		}
		return err
	}
	return nil
}

func (s *RoomCategoryService) GetAll() ([]models.RoomCategory, error) {
	var categories []models.RoomCategory
	err := s.DB.Order("created_at DESC").Find(&categories).Error
	return categories, err
}

func (s *RoomCategoryService) GetByID(id uint) (*models.RoomCategory, error) {
	var category models.RoomCategory
	if err := s.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "category not found")
		}
		return nil, err
	}
	return &category, nil
}

func (s *RoomCategoryService) Update(id uint, name, status *string) (*models.RoomCategory, error) {
	updates := map[string]interface{}{}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperror.New(apperror.KindValidation, "category name cannot be blank")
		}
		updates["name"] = trimmed
	}
	if status != nil {
		updates["status"] = strings.TrimSpace(*status)
	}
	if len(updates) == 0 {
		return nil, apperror.New(apperror.KindValidation, "nothing to update")
	}

	res := s.DB.Model(&models.RoomCategory{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if isDuplicateKey(res.Error) {
			return nil, apperror.New(apperror.KindConflict, "category name already exists")
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.New(apperror.KindNotFound, "category not found")
	}
	return s.GetByID(id)
}

func (s *RoomCategoryService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var rooms int64
		if err := tx.Model(&models.Room{}).Where("category_id = ?", id).Count(&rooms).Error; err != nil {
			return err
		}
		if rooms > 0 {
			return apperror.New(apperror.KindConflict, "category still has rooms")
		}
		res := tx.Delete(&models.RoomCategory{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.New(apperror.KindNotFound, "category not found")
		}
		return nil
	})
}
