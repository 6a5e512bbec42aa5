package logger_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"football-league-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseLevel(t *testing.T) {
	Convey("Given level names", t, func() {
		cases := map[string]zerolog.Level{
			"":        zerolog.InfoLevel,
			"info":    zerolog.InfoLevel,
			"DEBUG":   zerolog.DebugLevel,
			" warn ":  zerolog.WarnLevel,
			"warning": zerolog.WarnLevel,
			"error":   zerolog.ErrorLevel,
		}
		for name, want := range cases {
			got, err := logger.ParseLevel(name)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		Convey("An unknown name is rejected", func() {
			_, err := logger.ParseLevel("chatty")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Given the request logger writing JSON", t, func() {
		var buf bytes.Buffer
		So(logger.SetupWriter(&buf, "info", false), ShouldBeNil)
		defer func() { log.Logger = zerolog.Nop() }()

		r := gin.New()
		r.Use(logger.GinLogger())
		r.GET("/api/teams", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })

		Convey("When a request is served", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/teams?x=1", nil))

			Convey("Then one structured line describes it", func() {
				var entry map[string]interface{}
				So(json.Unmarshal(buf.Bytes(), &entry), ShouldBeNil)
				So(entry["method"], ShouldEqual, "GET")
				So(entry["path"], ShouldEqual, "/api/teams?x=1")
				So(entry["status"], ShouldEqual, float64(200))
				So(entry["message"], ShouldEqual, "request")
			})
		})
	})
}
