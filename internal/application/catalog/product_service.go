package catalog

import (
	"context"

	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ImageRemover deletes hosted images that are no longer referenced
type ImageRemover interface {
	RemoveImages(ctx context.Context, urls ...string)
}

// ProductService handles product business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	imageRemover   ImageRemover
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetImageRemover sets the media cleanup used when products are deleted
func (s *ProductService) SetImageRemover(remover ImageRemover) {
	s.imageRemover = remover
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List retrieves a paginated list of products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.InStock != nil {
		domainFilter.Filters["in_stock"] = *filter.InStock
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// CheckAvailability returns the current state of the requested products.
// Unknown IDs are left out of the result.
func (s *ProductService) CheckAvailability(ctx context.Context, req CheckAvailabilityRequest) (*CheckAvailabilityResponse, error) {
	ids := lo.Uniq(req.ProductIDs)
	if len(ids) == 0 {
		return &CheckAvailabilityResponse{Products: []ProductResponse{}}, nil
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &CheckAvailabilityResponse{Products: ToProductResponses(products)}, nil
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	images := toImageInputs(req.Images)
	if len(images) == 0 && req.ImageURL != "" {
		images = []catalog.ImageInput{{URL: req.ImageURL, IsMain: true}}
	}

	product, err := catalog.NewProduct(req.Name, req.Price, images)
	if err != nil {
		return nil, err
	}
	product.SetDescription(req.Description)

	if req.IsUnique {
		product.MarkUnique(true)
	} else if req.StockQuantity != nil {
		if err := product.SetStockQuantity(req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.InStock != nil && !*req.InStock {
		product.SetInStock(false)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	response := ToProductResponse(product)
	return &response, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		product.SetDescription(*req.Description)
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	switch {
	case len(req.Images) > 0:
		if err := product.ReplaceImages(toImageInputs(req.Images)); err != nil {
			return nil, err
		}
	case req.ImageURL != nil && *req.ImageURL != "":
		if err := product.SetLegacyImage(*req.ImageURL); err != nil {
			return nil, err
		}
	}

	if req.InStock != nil {
		product.SetInStock(*req.InStock)
	}
	if req.IsUnique != nil {
		if *req.IsUnique && req.StockQuantity != nil {
			product.IsUnique = true
		} else {
			product.MarkUnique(*req.IsUnique)
		}
	}
	if req.StockQuantity != nil {
		if err := product.SetStockQuantity(req.StockQuantity); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product and its hosted images
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.imageRemover != nil {
		urls := lo.Map(product.Images, func(img catalog.ProductImage, _ int) string { return img.URL })
		if product.ImageURL != "" {
			urls = append(urls, product.ImageURL)
		}
		s.imageRemover.RemoveImages(ctx, urls...)
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	events := product.GetDomainEvents()
	product.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish product events", zap.Error(err))
	}
}
