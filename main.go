package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/objectflow/ingester/internals/app"
	config "github.com/objectflow/ingester/internals/configuration"
	"github.com/objectflow/ingester/internals/handlers"
	"github.com/objectflow/ingester/internals/router"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	// Version is the binary version (tag) + build number (CI pipeline)
	Version string
	// BuildDate is the date of build
	BuildDate string
)

// @title ObjectFlow Ingester API Swagger
// @version 1.0
// @description Rule-driven ingestion of object-storage files into document stores

// @host localhost:9001
func main() {
	hostname, _ := os.Hostname()
	config.InitMetricLabels(hostname)

	config.InitializeConfig()
	config.InitLogger(viper.GetBool("LOGGER_PRODUCTION"))

	zap.L().Info("Starting Ingester...", zap.String("version", Version), zap.String("build_date", BuildDate))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, err := app.New(ctx)
	if err != nil {
		zap.L().Fatal("Service initialization", zap.Error(err))
	}

	if services.Poller != nil {
		go services.Poller.Run(ctx)
	}

	serverPort := viper.GetInt("HTTP_SERVER_PORT")
	serverEnableTLS := viper.GetBool("HTTP_SERVER_ENABLE_TLS")
	serverTLSCert := viper.GetString("HTTP_SERVER_TLS_FILE_CRT")
	serverTLSKey := viper.GetString("HTTP_SERVER_TLS_FILE_KEY")

	ingesterHandler := handlers.NewIngesterHandler(services.Orchestrator)
	srv := router.NewServer(serverPort, router.New(ingesterHandler))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var err error
		if serverEnableTLS {
			err = srv.ListenAndServeTLS(serverTLSCert, serverTLSKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server listen", zap.Error(err))
		}
	}()
	zap.L().Info("Server Started", zap.String("addr", srv.Addr))

	<-done

	cancel()

	ctxShutDown, cancelShutDown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutDown()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		zap.L().Fatal("Server shutdown failed", zap.Error(err))
	}
	services.Close(ctxShutDown)
	zap.L().Info("Server shutdown")
}
