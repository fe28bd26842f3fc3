package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

// GroupService manages confusable word groups. System groups ship with
// the server; user groups are fully editable.
type GroupService interface {
	List(ctx context.Context) ([]models.WordGroup, error)
	Get(ctx context.Context, id string) (*models.WordGroup, error)
	Create(ctx context.Context, group models.WordGroup) (*models.WordGroup, error)
	Update(ctx context.Context, group models.WordGroup) (*models.WordGroup, error)
	Delete(ctx context.Context, id string) error
	SeedSystemGroups(ctx context.Context, groups []models.WordGroup) error
}

type groupService struct {
	groupRepo repository.GroupRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repository.GroupRepository) GroupService {
	return &groupService{groupRepo: groupRepo}
}

func (s *groupService) List(ctx context.Context) ([]models.WordGroup, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return groups, nil
}

func (s *groupService) Get(ctx context.Context, id string) (*models.WordGroup, error) {
	group, err := s.groupRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("word group", id)
	}
	return group, nil
}

func (s *groupService) Create(ctx context.Context, group models.WordGroup) (*models.WordGroup, error) {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	group.Source = models.GroupUser
	if group.Category == "" {
		group.Category = models.CategoryMeaning
	}
	if group.Confidence == 0 {
		group.Confidence = 100
	}
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now

	if err := group.Validate(); err != nil {
		return nil, errors.NewValidationError("group", err.Error())
	}
	if err := s.groupRepo.Insert(ctx, group); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &group, nil
}

func (s *groupService) Update(ctx context.Context, group models.WordGroup) (*models.WordGroup, error) {
	existing, err := s.Get(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if existing.Source == models.GroupSystem {
		return nil, errors.NewBadRequestError("system groups cannot be edited")
	}

	group.Source = existing.Source
	group.CreatedAt = existing.CreatedAt
	group.UpdatedAt = time.Now().UTC()
	if err := group.Validate(); err != nil {
		return nil, errors.NewValidationError("group", err.Error())
	}
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &group, nil
}

func (s *groupService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.Source == models.GroupSystem {
		return errors.NewBadRequestError("system groups cannot be deleted")
	}
	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

// SeedSystemGroups installs built-in groups once; existing IDs are left
// untouched so user edits to other groups survive restarts.
func (s *groupService) SeedSystemGroups(ctx context.Context, groups []models.WordGroup) error {
	log := logger.FromContext(ctx).WithPrefix("group")

	seeded := 0
	for _, group := range groups {
		existing, err := s.groupRepo.Get(ctx, group.ID)
		if err != nil {
			return errors.NewInternalError(err)
		}
		if existing != nil {
			continue
		}
		group.Source = models.GroupSystem
		now := time.Now().UTC()
		group.CreatedAt = now
		group.UpdatedAt = now
		if err := group.Validate(); err != nil {
			return errors.NewValidationError("group", err.Error())
		}
		if err := s.groupRepo.Insert(ctx, group); err != nil {
			return errors.NewInternalError(err)
		}
		seeded++
	}
	if seeded > 0 {
		log.Info("seeded %d system word groups", seeded)
	}
	return nil
}
