package repository

import (
	"github.com/dvitale199/blossom/internal/model"
	"gorm.io/gorm"
)

type SpaceRepository struct {
	DB *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) *SpaceRepository {
	return &SpaceRepository{DB: db}
}

func (r *SpaceRepository) Create(space *model.Space) error {
	return r.DB.Create(space).Error
}

// FindByUser lists a user's spaces, most recently touched first.
func (r *SpaceRepository) FindByUser(userID uint) ([]model.Space, error) {
	var spaces []model.Space
	err := r.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&spaces).Error
	return spaces, err
}

// FindByID returns the space only if it belongs to the user.
func (r *SpaceRepository) FindByID(id string, userID uint) (*model.Space, error) {
	var space model.Space
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&space).Error
	if err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *SpaceRepository) Delete(id string, userID uint) (bool, error) {
	result := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Space{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
