package service

import (
	"errors"

	"github.com/dvitale199/blossom/internal/model"
	"github.com/dvitale199/blossom/internal/repository"
	"github.com/dvitale199/blossom/internal/util"
	"gorm.io/gorm"
)

type SpaceService struct {
	Repo *repository.SpaceRepository
}

func NewSpaceService(repo *repository.SpaceRepository) *SpaceService {
	return &SpaceService{Repo: repo}
}

type CreateSpaceRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Topic string `json:"topic" binding:"required,min=1,max=500"`
	Goal  string `json:"goal" binding:"max=1000"`
}

func (s *SpaceService) ListSpaces(userID uint) ([]model.Space, error) {
	return s.Repo.FindByUser(userID)
}

func (s *SpaceService) GetSpace(id string, userID uint) (*model.Space, error) {
	space, err := s.Repo.FindByID(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSpaceNotFound
	}
	return space, err
}

func (s *SpaceService) CreateSpace(userID uint, req CreateSpaceRequest) (*model.Space, error) {
	space := &model.Space{
		UserID: userID,
		Name:   req.Name,
		Topic:  req.Topic,
		Goal:   req.Goal,
	}
	if err := s.Repo.Create(space); err != nil {
		return nil, err
	}
	return space, nil
}

func (s *SpaceService) DeleteSpace(id string, userID uint) error {
	deleted, err := s.Repo.Delete(id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrSpaceNotFound
	}
	return nil
}
