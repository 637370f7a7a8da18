package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	resourceerrors "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/resources/errors"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/resources/repository"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/config"
	apperrors "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/errors"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/sanitizer"
)

type ResourceService interface {
	Create(ctx context.Context, resource *model.Resource) error
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	List(ctx context.Context) ([]*model.Resource, error)
}

type resourceService struct {
	repo     repository.ResourceRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewResourceService(repo repository.ResourceRepository, cfg *config.Config) ResourceService {
	return &resourceService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *resourceService) Create(ctx context.Context, resource *model.Resource) error {
	resource.Number = sanitizer.TrimAndNormalize(resource.Number)
	resource.Description = sanitizer.TrimAndNormalize(resource.Description)

	if err := s.validate.Struct(resource); err != nil {
		s.cfg.Log.Warn("Resource validation failed", "error", err)
		return apperrors.Validation("Invalid resource input", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		s.cfg.Log.Error("Failed to create resource", "error", err)
		return apperrors.Internal("Failed to create resource", err)
	}

	s.cfg.Log.Info("Resource created", "id", resource.ID, "type", resource.Type, "number", resource.Number)
	return nil
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Resource", id)
		}
		if errors.Is(err, resourceerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid resource ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve resource", err)
	}
	return resource, nil
}

func (s *resourceService) List(ctx context.Context) ([]*model.Resource, error) {
	resources, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list resources", "error", err)
		return nil, apperrors.Internal("Failed to retrieve resources", err)
	}
	return resources, nil
}
