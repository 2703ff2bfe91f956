package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/shelfdb/shelfdb/database"
	"github.com/shelfdb/shelfdb/service"
)

func jsonUnmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}

func TestAcceptance(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		db, err := database.Open(&database.Config{
			Dir: t.TempDir(),
		}, nil)
		biff.AssertNil(err)

		s := service.NewService(db)

		b := Build(s, "test")
		b.WithInterceptors(
			RecoverFromPanic,
			PrettyErrorInterceptor,
		)

		api := apitest.NewWithHandler(b)

		a.Alternative("List empty", func(a *biff.A) {
			resp := api.Request("GET", "/v1/collections").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []any{})
		})

		a.Alternative("Create collection", func(a *biff.A) {
			resp := api.Request("POST", "/v1/collections").
				WithBodyJson(map[string]any{"name": "users"}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusCreated)

			a.Alternative("Create again conflicts", func(a *biff.A) {
				resp := api.Request("POST", "/v1/collections").
					WithBodyJson(map[string]any{"name": "users"}).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			})

			a.Alternative("List", func(a *biff.A) {
				resp := api.Request("GET", "/v1/collections").Do()
				biff.AssertEqualJson(resp.BodyJson(), []any{
					map[string]any{"name": "users", "total": 0.0},
				})
			})
		})

		a.Alternative("Get missing collection", func(a *biff.A) {
			resp := api.Request("GET", "/v1/collections/nope").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})

		a.Alternative("Insert and read back", func(a *biff.A) {
			resp := api.Request("POST", "/v1/collections/users:insert").
				WithBodyString(`{"name":"a"}` + "\n" + `{"name":"b"}`).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusCreated)

			inserted := map[string]any{}
			firstLine := strings.SplitN(resp.BodyString(), "\n", 2)[0]
			biff.AssertNil(jsonUnmarshal(firstLine, &inserted))
			id := inserted["id"].(string)

			a.Alternative("Get document", func(a *biff.A) {
				resp := api.Request("GET", "/v1/collections/users/documents/"+id).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				doc := resp.BodyJson().(map[string]any)
				biff.AssertEqual(doc["name"], "a")
			})

			a.Alternative("Find with filter", func(a *biff.A) {
				resp := api.Request("POST", "/v1/collections/users:find").
					WithBodyJson(map[string]any{"filter": map[string]any{"name": "b"}, "limit": 10}).Do()
				doc := map[string]any{}
				biff.AssertNil(jsonUnmarshal(resp.BodyString(), &doc))
				biff.AssertEqual(doc["name"], "b")
			})

			a.Alternative("Update by id", func(a *biff.A) {
				resp := api.Request("POST", "/v1/collections/users:update").
					WithBodyJson(map[string]any{
						"id":       id,
						"document": map[string]any{"name": "z"},
					}).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				get := api.Request("GET", "/v1/collections/users/documents/"+id).Do()
				doc := get.BodyJson().(map[string]any)
				biff.AssertEqual(doc["name"], "z")
			})

			a.Alternative("Remove by filter", func(a *biff.A) {
				resp := api.Request("POST", "/v1/collections/users:remove").
					WithBodyJson(map[string]any{"filter": map[string]any{"name": "a"}}).Do()
				biff.AssertEqualJson(resp.BodyJson(), map[string]any{"removed": 1.0})
			})

			a.Alternative("Persist", func(a *biff.A) {
				resp := api.Request("POST", "/v1/collections/users:persist").Do()
				biff.AssertEqualJson(resp.BodyJson(), map[string]any{"persisted": true})
			})

			a.Alternative("Clear", func(a *biff.A) {
				api.Request("POST", "/v1/collections/users:clear").Do()
				resp := api.Request("GET", "/v1/collections/users").Do()
				biff.AssertEqualJson(resp.BodyJson(), map[string]any{"name": "users", "total": 0.0})
			})

			a.Alternative("Purge", func(a *biff.A) {
				resp := api.Request("POST", "/v1/collections/users:purge").Do()
				biff.AssertEqualJson(resp.BodyJson(), map[string]any{"purged": true})
			})

			a.Alternative("Copy", func(a *biff.A) {
				resp := api.Request("POST", "/v1/collections/users:copyCollection").Do()
				body := resp.BodyJson().(map[string]any)
				biff.AssertEqual(body["copied"], true)
				biff.AssertTrue(strings.HasPrefix(body["name"].(string), "users_"))
			})

			a.Alternative("Drop", func(a *biff.A) {
				resp := api.Request("POST", "/v1/collections/users:dropCollection").Do()
				biff.AssertEqualJson(resp.BodyJson(), map[string]any{"dropped": true})

				get := api.Request("GET", "/v1/collections/users").Do()
				biff.AssertEqual(get.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Release", func(a *biff.A) {
			resp := api.Request("GET", "/release").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		})
	})
}
