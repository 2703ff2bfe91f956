package api

import (
	"context"

	"github.com/fulldump/box"
)

type persistResponse struct {
	Persisted bool `json:"persisted"`
}

// persist explicitly writes the in-memory sequence back to disk.
func persist(ctx context.Context) (*persistResponse, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	err := s.Persist(ctx, collectionName)
	if err != nil {
		return nil, err
	}

	return &persistResponse{Persisted: true}, nil
}
