package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fulldump/box"

	"github.com/shelfdb/shelfdb/collection"
	"github.com/shelfdb/shelfdb/service"
)

func writePrettyError(w http.ResponseWriter, status int, message, description string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"message":     message,
			"description": description,
		},
	})
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)
		r := box.GetRequest(ctx)

		switch {
		case errors.Is(err, service.ErrorCollectionNotFound),
			errors.Is(err, service.ErrorDocumentNotFound):
			writePrettyError(w, http.StatusNotFound, err.Error(), "check the collection name and document id")

		case errors.Is(err, service.ErrorCollectionAlreadyExists):
			writePrettyError(w, http.StatusConflict, err.Error(), "choose a different collection name or reuse the existing one")

		case errors.Is(err, collection.ErrMalformed):
			writePrettyError(w, http.StatusInternalServerError, err.Error(), "the collection file is unreadable until it is fixed or purged")

		case errors.Is(err, box.ErrResourceNotFound):
			writePrettyError(w, http.StatusNotFound, err.Error(), fmt.Sprintf("resource '%s' not found", r.URL.String()))

		case errors.Is(err, box.ErrMethodNotAllowed):
			writePrettyError(w, http.StatusMethodNotAllowed, err.Error(), fmt.Sprintf("method '%s' not allowed", r.Method))

		default:
			var syntaxError *json.SyntaxError
			if errors.As(err, &syntaxError) {
				writePrettyError(w, http.StatusBadRequest, err.Error(), "malformed JSON")
				return
			}
			writePrettyError(w, http.StatusInternalServerError, err.Error(), "unexpected error")
		}
	}
}
