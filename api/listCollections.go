package api

import (
	"context"

	"github.com/shelfdb/shelfdb/service"
)

func listCollections(ctx context.Context) ([]*service.Collection, error) {
	s := GetServicer(ctx)
	return s.ListCollections(ctx)
}
