package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/shelfdb/shelfdb/record"
	"github.com/shelfdb/shelfdb/service"
)

func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	query := service.FindQuery{
		Limit: 1,
	}
	err := json.NewDecoder(r.Body).Decode(&query)
	if err != nil && err != io.EOF {
		return err
	}

	jsonWriter := json.NewEncoder(w)

	return s.Find(ctx, collectionName, query, func(doc record.Document) {
		jsonWriter.Encode(doc)
	})
}
