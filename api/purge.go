package api

import (
	"context"

	"github.com/fulldump/box"
)

type purgeResponse struct {
	Purged bool `json:"purged"`
}

// purge truncates the backing file to zero bytes without deleting it.
func purge(ctx context.Context) (*purgeResponse, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	purged, err := s.PurgeCollection(ctx, collectionName)
	if err != nil {
		return nil, err
	}

	return &purgeResponse{Purged: purged}, nil
}
