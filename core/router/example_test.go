package router_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/reqctx"
	"github.com/mrCamelCode/potami/core/router"
)

func ExampleMux() {
	requestID := reqctx.NewKey[string]("unknown")

	m := router.New()
	m.Use(func(ctx handler.Context, set reqctx.Setter) handler.Response {
		reqctx.Set(set, requestID, "req-1")
		return nil
	})
	m.Get("/users/{id}", func(ctx handler.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			_, err := fmt.Fprintf(w, "user=%s request=%s",
				ctx.Param("id"), reqctx.Value(ctx.Values(), requestID))
			return err
		}
	})

	srv := httptest.NewServer(m)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/users/42")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Println(string(body))
	// Output: user=42 request=req-1
}

func ExampleMux_group() {
	m := router.New()
	m.Group("/api", func(api router.Router) {
		api.Get("/status", func(ctx handler.Context) handler.Response {
			return func(w http.ResponseWriter, r *http.Request) error {
				_, err := io.WriteString(w, "ok")
				return err
			}
		})
	})

	for _, rt := range m.Routes() {
		fmt.Println(rt.Method, rt.Pattern)
	}
	// Output: GET /api/status
}
