package api

import (
	"context"

	"github.com/fulldump/box"
)

type copyResponse struct {
	Copied bool   `json:"copied"`
	Name   string `json:"name,omitempty"`
}

// copyCollection duplicates the backing file under a timestamped name.
func copyCollection(ctx context.Context) (*copyResponse, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	name, copied, err := s.CopyCollection(ctx, collectionName)
	if err != nil {
		return nil, err
	}

	return &copyResponse{Copied: copied, Name: name}, nil
}
