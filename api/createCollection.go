package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shelfdb/shelfdb/service"
)

type createCollectionRequest struct {
	Name string `json:"name"`
}

func createCollection(ctx context.Context, w http.ResponseWriter, input *createCollectionRequest) (*service.Collection, error) {

	s := GetServicer(ctx)

	if input.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		return nil, fmt.Errorf("collection name is required")
	}

	col, err := s.CreateCollection(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return col, nil
}
