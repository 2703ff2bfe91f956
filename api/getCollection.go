package api

import (
	"context"

	"github.com/fulldump/box"

	"github.com/shelfdb/shelfdb/service"
)

func getCollection(ctx context.Context) (*service.Collection, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	return s.GetCollection(ctx, collectionName)
}
