package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fulldump/box"
	"github.com/google/uuid"

	"github.com/shelfdb/shelfdb/record"
	"github.com/shelfdb/shelfdb/service"
)

type updateRequest struct {
	Id       string         `json:"id"`
	Document map[string]any `json:"document"`
}

type updateResponse struct {
	Updated bool `json:"updated"`
}

// update replaces the document with the given identifier in place.
func update(ctx context.Context, w http.ResponseWriter, input *updateRequest) (*updateResponse, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	id, err := uuid.Parse(input.Id)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, fmt.Errorf("invalid document id '%s'", input.Id)
	}

	updated, err := s.UpdateByID(ctx, collectionName, id, record.Document(input.Document))
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, service.ErrorDocumentNotFound
	}

	return &updateResponse{Updated: true}, nil
}
