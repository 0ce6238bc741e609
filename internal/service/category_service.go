package service

import (
	"strings"

	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List 获取分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List()
}

// CategorySummary 后台分类列表项
type CategorySummary struct {
	models.Category
	ProductCount int64 `json:"product_count"`
}

// ListWithCounts 后台分类列表（含商品数）
func (s *CategoryService) ListWithCounts() ([]CategorySummary, error) {
	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	result := make([]CategorySummary, 0, len(categories))
	for _, category := range categories {
		count, err := s.repo.CountProducts(category.Name)
		if err != nil {
			return nil, err
		}
		result = append(result, CategorySummary{Category: category, ProductCount: count})
	}
	return result, nil
}

// Create 新增分类（名称去空白且唯一）
func (s *CategoryService) Create(name string, sortOrder int) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	existing, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}
	category := models.Category{Name: name, SortOrder: sortOrder}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete 删除分类，商品上的分类名称保持不变
func (s *CategoryService) Delete(name string) error {
	deleted, err := s.repo.DeleteByName(strings.TrimSpace(name))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	return nil
}
