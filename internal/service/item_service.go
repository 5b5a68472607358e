package service

import (
	"context"

	"github.com/example/bookshop/internal/domain/item"
	"github.com/example/bookshop/internal/repository"
)

// ItemService owns the item catalog.
type ItemService struct {
	uow repository.UnitOfWork
}

func NewItemService(uow repository.UnitOfWork) *ItemService {
	return &ItemService{uow: uow}
}

// SaveItem registers a new book.
func (s *ItemService) SaveItem(ctx context.Context, name string, price, stock int, author, isbn string) (string, error) {
	it, err := item.NewBook(name, price, stock, author, isbn)
	if err != nil {
		return "", err
	}
	err = s.uow.Do(ctx, func(r repository.Repos) error {
		_, err := r.Items().Save(ctx, it)
		return err
	})
	if err != nil {
		return "", err
	}
	return it.ID, nil
}

// UpdateItem applies only the supplied fields to the current stored state.
// It deliberately never accepts a fully populated replacement entity:
// loading and mutating inside the unit of work keeps unspecified fields
// untouched.
func (s *ItemService) UpdateItem(ctx context.Context, id string, name *string, price *int, stock *int) error {
	return s.uow.Do(ctx, func(r repository.Repos) error {
		it, err := r.Items().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if name != nil {
			if *name == "" {
				return item.ErrInvalidName
			}
			it.Name = *name
		}
		if price != nil {
			if *price < 0 {
				return item.ErrInvalidPrice
			}
			it.Price = *price
		}
		if stock != nil {
			if *stock < 0 {
				return item.ErrInvalidStock
			}
			it.StockQuantity = *stock
		}
		return r.Items().Update(ctx, it)
	})
}

// FindItems lists the catalog.
func (s *ItemService) FindItems(ctx context.Context) ([]*item.Item, error) {
	var items []*item.Item
	err := s.uow.DoReadOnly(ctx, func(r repository.Repos) error {
		var err error
		items, err = r.Items().FindAll(ctx)
		return err
	})
	return items, err
}

// FindOne loads a single item by id.
func (s *ItemService) FindOne(ctx context.Context, id string) (*item.Item, error) {
	var it *item.Item
	err := s.uow.DoReadOnly(ctx, func(r repository.Repos) error {
		var err error
		it, err = r.Items().FindByID(ctx, id)
		return err
	})
	return it, err
}
