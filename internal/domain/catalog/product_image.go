package catalog

import (
	"sort"
	"strings"

	"github.com/atelier/storefront/internal/domain/shared"
)

// ProductImage is one picture of a product's gallery
type ProductImage struct {
	URL    string
	IsMain bool
	Order  int
}

// ImageInput is an image as submitted by a client. Order is optional.
type ImageInput struct {
	URL    string
	IsMain bool
	Order  *int
}

// NormalizeImages validates a submitted gallery and returns it with exactly one
// main image and an explicit display order.
// When no image is flagged main, the first one becomes main; when several are
// flagged, the first flagged one wins.
func NormalizeImages(inputs []ImageInput) ([]ProductImage, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "at least one image is required")
	}

	mainIndex := 0
	for i, in := range inputs {
		if in.IsMain {
			mainIndex = i
			break
		}
	}

	images := make([]ProductImage, 0, len(inputs))
	for i, in := range inputs {
		url := strings.TrimSpace(in.URL)
		if url == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Image URL cannot be empty")
		}
		order := i
		if in.Order != nil {
			order = *in.Order
		}
		images = append(images, ProductImage{
			URL:    url,
			IsMain: i == mainIndex,
			Order:  order,
		})
	}

	sort.SliceStable(images, func(a, b int) bool {
		return images[a].Order < images[b].Order
	})
	return images, nil
}

// mainImage returns the main image of a normalized gallery
func mainImage(images []ProductImage) (ProductImage, bool) {
	for _, img := range images {
		if img.IsMain {
			return img, true
		}
	}
	if len(images) > 0 {
		return images[0], true
	}
	return ProductImage{}, false
}
