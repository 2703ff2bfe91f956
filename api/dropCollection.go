package api

import (
	"context"

	"github.com/fulldump/box"
)

type dropResponse struct {
	Dropped bool `json:"dropped"`
}

func dropCollection(ctx context.Context) (*dropResponse, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	dropped, err := s.DropCollection(ctx, collectionName)
	if err != nil {
		return nil, err
	}

	return &dropResponse{Dropped: dropped}, nil
}
