package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fulldump/box"
	"github.com/google/uuid"
)

type removeRequest struct {
	Id     string         `json:"id"`
	Filter map[string]any `json:"filter"`
}

type removeResponse struct {
	Removed int `json:"removed"`
}

// remove deletes by identifier when "id" is present, otherwise it deletes
// every document matching the filter.
func remove(ctx context.Context, w http.ResponseWriter, input *removeRequest) (*removeResponse, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	if input.Id != "" {
		id, err := uuid.Parse(input.Id)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return nil, fmt.Errorf("invalid document id '%s'", input.Id)
		}
		removed, err := s.RemoveByID(ctx, collectionName, id)
		if err != nil {
			return nil, err
		}
		n := 0
		if removed {
			n = 1
		}
		return &removeResponse{Removed: n}, nil
	}

	if len(input.Filter) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return nil, fmt.Errorf("either 'id' or 'filter' is required")
	}

	removed, err := s.RemoveMatching(ctx, collectionName, input.Filter)
	if err != nil {
		return nil, err
	}

	return &removeResponse{Removed: len(removed)}, nil
}
