package category

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Storer interface {
	createOne(ctx context.Context, newCategory *CreateCategoryRequest) (uuid.UUID, error)
	updateOne(ctx context.Context, update *UpdateCategoryRequest) error
	deleteOne(ctx context.Context, categoryID uuid.UUID) error
	findAll(ctx context.Context) ([]*Category, error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createCategory(ctx context.Context, newCategory *CreateCategoryRequest) (uuid.UUID, error) {
	newCategory.Name = strings.TrimSpace(newCategory.Name)
	newCategory.Description = strings.TrimSpace(newCategory.Description)

	return s.store.createOne(ctx, newCategory)
}

func (s *service) updateCategory(ctx context.Context, update *UpdateCategoryRequest) error {
	if update.Name != nil {
		*update.Name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		*update.Description = strings.TrimSpace(*update.Description)
	}

	return s.store.updateOne(ctx, update)
}

func (s *service) deleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	return s.store.deleteOne(ctx, categoryID)
}

func (s *service) getAllCategories(ctx context.Context) ([]*Category, error) {
	return s.store.findAll(ctx)
}
