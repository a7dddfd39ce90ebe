package services

import (
	"context"

	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"golang.org/x/sync/errgroup"
)

// paginate runs the page query and the count query concurrently.
func paginate[T any](
	ctx context.Context,
	page models.Page,
	list func(ctx context.Context) ([]T, error),
	count func(ctx context.Context) (int, error),
) (*models.PageOf[T], error) {
	var (
		items []T
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = list(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.PageOf[T]{Items: items, Pagination: models.NewPagination(page, total)}, nil
}
