package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-supplychain/components/console"
)

// ProductStatusInput identifies the tracked product.
type ProductStatusInput struct {
	ProductID string
}

type statusService interface {
	ProductStatus(ctx context.Context, productID string) (console.ProductStatusSnapshot, error)
}

// ProductStatusQuery fetches the live tracking snapshot for a product.
type ProductStatusQuery struct {
	service statusService
}

// NewProductStatusQuery builds the query.
func NewProductStatusQuery(service statusService) *ProductStatusQuery {
	return &ProductStatusQuery{service: service}
}

var _ gocommand.Querier[ProductStatusInput, console.ProductStatusSnapshot] = (*ProductStatusQuery)(nil)

// Query fetches the snapshot.
func (q *ProductStatusQuery) Query(ctx context.Context, input ProductStatusInput) (console.ProductStatusSnapshot, error) {
	return q.service.ProductStatus(ctx, input.ProductID)
}
