package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/mvalodim/pet_shop/internal/logging"
	"github.com/mvalodim/pet_shop/internal/models"
	"github.com/mvalodim/pet_shop/internal/mykafka"
	"github.com/mvalodim/pet_shop/internal/repo"
	"github.com/mvalodim/pet_shop/internal/search"
	"github.com/mvalodim/pet_shop/internal/transport"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]transport.ProductResponse, error) {
	products, err := s.Repo.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	return transport.ProductsFromModels(products), nil
}

func (s *CatalogService) GetProductsByCategory(ctx context.Context, categoryID uint) ([]transport.ProductResponse, error) {
	products, err := s.Repo.GetProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return transport.ProductsFromModels(products), nil
}

// GetProduct returns (nil, nil) for a missing product: absence is a null
// result on single-item lookups, not an error.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*transport.ProductResponse, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	resp := transport.ProductFromModel(product)
	return &resp, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*transport.ProductResponse, error) {
	product, err := s.Repo.GetProductBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	resp := transport.ProductFromModel(product)
	return &resp, nil
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" || req.Slug == "" {
		return nil, fmt.Errorf("name and slug required: %w", ErrValidation)
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
		Image:       req.Image,
	}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*transport.ProductResponse, error) {
	if req.Name == "" || req.Slug == "" {
		return nil, fmt.Errorf("name and slug required: %w", ErrValidation)
	}
	if req.CategoryID == 0 {
		return nil, fmt.Errorf("category_id required: %w", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	product := models.Product{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Slug:            req.Slug,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		Image:           req.Image,
		Stock:           req.Stock,
		SKU:             req.SKU,
		IsActive:        true,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]interface{}{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})
	s.index(ctx, &product)

	resp := transport.ProductFromModel(&product)
	return &resp, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, req transport.UpdateProductRequest, id uint) (*transport.ProductResponse, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	product, err := s.Repo.PatchProduct(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]interface{}{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})
	s.index(ctx, product)

	resp := transport.ProductFromModel(product)
	return &resp, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	s.publish(ctx, map[string]interface{}{
		"type":       "product_deleted",
		"product_id": id,
	})
	if s.ES != nil {
		if err := search.DeleteProduct(ctx, s.ES, search.ProductIndex, id); err != nil {
			logging.FromContext(ctx).Warn("es_delete_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) publish(ctx context.Context, event map[string]interface{}) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, mykafka.TopicProductEvents, fmt.Sprint(event["product_id"]), event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_failed", "error", err)
	}
}

func (s *CatalogService) index(ctx context.Context, product *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, search.ProductIndex, product); err != nil {
		logging.FromContext(ctx).Warn("es_index_failed", "product_id", product.ID, "error", err)
	}
}
