package api

import (
	"context"

	"github.com/fulldump/box"
)

type clearResponse struct {
	Cleared bool `json:"cleared"`
}

// clear empties the collection both in memory and on disk.
func clear(ctx context.Context) (*clearResponse, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	err := s.ClearAndPersist(ctx, collectionName)
	if err != nil {
		return nil, err
	}

	return &clearResponse{Cleared: true}, nil
}
