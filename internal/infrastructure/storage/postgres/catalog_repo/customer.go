package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/customer"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres"
)

const customerTable = "customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*customer.Customer](
			txManager,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByNameOrCode retrieves a customer by exact, case-sensitive name or
// code match. The invoice resolver depends on the match being exact.
func (r *CustomerRepo) FindByNameOrCode(ctx context.Context, value string) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Or{
			squirrel.Eq{"name": value},
			squirrel.Eq{"code": value},
		}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("created_at ASC").
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", value)
		}
		return nil, err
	}
	return c, nil
}
