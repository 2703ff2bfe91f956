package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fulldump/box"
	"github.com/google/uuid"

	"github.com/shelfdb/shelfdb/record"
)

func getDocument(ctx context.Context, w http.ResponseWriter) (record.Document, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	documentId := box.GetUrlParameter(ctx, "documentId")

	id, err := uuid.Parse(documentId)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, fmt.Errorf("invalid document id '%s'", documentId)
	}

	return s.GetDocument(ctx, collectionName, id)
}
