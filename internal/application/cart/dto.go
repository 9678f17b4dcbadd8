package cart

import (
	"github.com/atelier/storefront/internal/domain/cart"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// LineRequest is one cart line held by the client
type LineRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// VerifyRequest is the cart submitted for verification
type VerifyRequest struct {
	Items []LineRequest `json:"items" binding:"required,dive"`
}

// PatchResponse is a correction the client applies to one cart line
type PatchResponse struct {
	Type      cart.PatchType         `json:"type"`
	ProductID uuid.UUID              `json:"productId"`
	Reason    cart.UnavailableReason `json:"reason,omitempty"`
	Quantity  *int                   `json:"quantity,omitempty"`
}

// VerifyResponse is the outcome of a cart verification
type VerifyResponse struct {
	Valid            bool            `json:"valid"`
	UnavailableItems []uuid.UUID     `json:"unavailableItems"`
	UpdatesToApply   []PatchResponse `json:"updatesToApply"`
}

// ToLines converts request lines to domain cart lines
func ToLines(items []LineRequest) []cart.Line {
	return lo.Map(items, func(item LineRequest, _ int) cart.Line {
		return cart.Line{ProductID: item.ProductID, Quantity: item.Quantity}
	})
}

// ToVerifyResponse converts a reconciliation result
func ToVerifyResponse(result cart.Result) VerifyResponse {
	return VerifyResponse{
		Valid:            result.Valid,
		UnavailableItems: result.UnavailableItems,
		UpdatesToApply: lo.Map(result.UpdatesToApply, func(p cart.Patch, _ int) PatchResponse {
			resp := PatchResponse{Type: p.Type, ProductID: p.ProductID, Reason: p.Reason}
			if p.Type == cart.PatchUpdateQuantity {
				q := p.Quantity
				resp.Quantity = &q
			}
			return resp
		}),
	}
}
