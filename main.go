package main

import (
	"bitwise74/videogen-api/app"
	"bitwise74/videogen-api/config"
	"bitwise74/videogen-api/db"
	"bitwise74/videogen-api/internal"
	"bitwise74/videogen-api/internal/tracing"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	config.ParseFlags()

	// Config warnings need a logger before the level is known
	err := app.MakeLogger("info")
	if err != nil {
		panic(err)
	}

	err = config.Setup()
	if err != nil {
		panic(err)
	}

	err = app.MakeLogger(viper.GetString("app.log_level"))
	if err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var handler http.Handler

	dbOpts := db.OptionsFromConfig()
	s := db.New(ctx, dbOpts)

	d := internal.NewDeps(s,
		viper.GetString("generation.sample_video_url"),
		viper.GetString("upload.url_prefix"),
		dbOpts.URL != "",
	)

	router, err := app.NewRouter(d, app.OptionsFromConfig())
	if err != nil {
		panic(err)
	}
	handler = router

	if viper.GetBool("tracing.enabled") {
		shutdown, err := tracing.Init(ctx, viper.GetString("tracing.service_name"), viper.GetString("tracing.endpoint"))
		if err != nil {
			panic(err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdown(ctx); err != nil {
				zap.L().Error("Failed to shut down tracer", zap.Error(err))
			}
		}()

		handler = otelhttp.NewHandler(router, viper.GetString("tracing.service_name"))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", viper.GetInt("host.port")),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("Server starting", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Failed to shut down server", zap.Error(err))
	}

	if err := s.Close(shutdownCtx); err != nil {
		zap.L().Error("Failed to close database", zap.Error(err))
	}
}
