package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/okian/ecoscore/internal/config"
	"github.com/okian/ecoscore/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestWiring(t *testing.T) {
	convey.Convey("Given configuration loaded from the environment", t, func() {
		_ = os.Setenv("ECOSCORE_ADDR", ":8080")
		_ = os.Setenv("ECOSCORE_SUGGEST_PROVIDER", "none")
		defer func() {
			_ = os.Unsetenv("ECOSCORE_ADDR")
			_ = os.Unsetenv("ECOSCORE_SUGGEST_PROVIDER")
		}()

		ctx := context.Background()
		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.Addr, convey.ShouldEqual, ":8080")

		convey.Convey("When building the service and handler", func() {
			svc, err := newService(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()
			h := newHandler(ctx, cfg, svc, logger.Nop())

			get := func(path string) *httptest.ResponseRecorder {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				return w
			}

			convey.Convey("Then every route group is mounted", func() {
				for _, path := range []string{"/", "/healthz", "/stats", "/metrics", "/history", "/score-summary", "/api-docs", "/openapi.yaml", "/static/script.js"} {
					convey.So(get(path).Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("And scoring without a provider falls back to the placeholder", func() {
				body := `{"product_name":"Mug","materials":["Plastic"],"weight_grams":300,"transport":"air","packaging":"wrap","gwp":10,"cost":20,"circularity":80}`
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body)))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "Unable to generate suggestions at this time.")
				convey.So(svc.GetStats()["suggestionProvider"], convey.ShouldEqual, "none")
			})
		})
	})

	convey.Convey("Given an unknown suggestion provider", t, func() {
		cfg := config.New(context.Background())
		cfg.SuggestProvider = "mystery"

		convey.Convey("Then building the service fails", func() {
			_, err := newService(context.Background(), cfg, logger.Nop())
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
