package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/pkg/apperr"
	"github.com/shashiranjanraj/vanij/pkg/logger"
)

// ProductInput carries the client-supplied catalog fields. LowStockThreshold
// is a pointer so an absent field can be told apart from an explicit zero.
type ProductInput struct {
	Name              string  `json:"name" validate:"required,max=200"`
	SKU               string  `json:"sku" validate:"nullable,alpha_dash"`
	Price             float64 `json:"price" validate:"gte=0"`
	QuantityInStock   int     `json:"quantityInStock" validate:"gte=0"`
	Category          string  `json:"category"`
	LowStockThreshold *int    `json:"lowStockThreshold" validate:"nullable,gte=0"`
}

// ProductService implements catalog management on top of a CatalogStore.
// Stock adjustments made through Update are operator corrections; order flow
// never passes through this service.
type ProductService struct {
	catalog CatalogStore
}

func NewProductService(catalog CatalogStore) *ProductService {
	return &ProductService{catalog: catalog}
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return models.Product{}, err
	}

	threshold := models.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}

	product := models.NewProduct(
		strings.TrimSpace(in.Name),
		strings.TrimSpace(in.SKU),
		in.Price, in.QuantityInStock,
		strings.TrimSpace(in.Category),
		threshold,
	)
	if err := s.catalog.Create(ctx, &product); err != nil {
		if err == apperr.ErrDuplicateID {
			return models.Product{}, &apperr.ValidationError{
				Field:  "sku",
				Reason: "already in use",
			}
		}
		return models.Product{}, err
	}

	logger.WithCtx(ctx).Info("product created", "product_id", product.ID.Hex(), "name", product.Name)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, productID string, in ProductInput) (models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return models.Product{}, err
	}

	current, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return models.Product{}, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.SKU = strings.TrimSpace(in.SKU)
	current.Price = in.Price
	current.QuantityInStock = in.QuantityInStock
	current.Category = strings.TrimSpace(in.Category)
	if in.LowStockThreshold != nil {
		current.LowStockThreshold = *in.LowStockThreshold
	}

	if err := s.catalog.Update(ctx, productID, current); err != nil {
		return models.Product{}, err
	}
	return current, nil
}

func (s *ProductService) Delete(ctx context.Context, productID string) error {
	if err := s.catalog.Delete(ctx, productID); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("product deleted", "product_id", productID)
	return nil
}

func (s *ProductService) Get(ctx context.Context, productID string) (models.Product, error) {
	return s.catalog.Get(ctx, productID)
}

func (s *ProductService) List(ctx context.Context, offset, limit int64) ([]models.Product, int64, error) {
	return s.catalog.List(ctx, offset, limit)
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &apperr.ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Price < 0 {
		return &apperr.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if in.QuantityInStock < 0 {
		return &apperr.ValidationError{Field: "quantityInStock", Reason: "must not be negative"}
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return &apperr.ValidationError{Field: "lowStockThreshold", Reason: "must not be negative"}
	}
	return nil
}
