package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	disperse "disperse_back"
	"disperse_back/internal/config"
	"disperse_back/internal/wallet"
	"disperse_back/pkg/evmclient"
	"disperse_back/pkg/handler"
	"disperse_back/pkg/repository"
	"disperse_back/pkg/service"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.Infoln("starting disperse service")
	if err := godotenv.Load(); err != nil {
		logrus.Infof("no .env file loaded: %s", err)
	}

	if err := InitConfig(); err != nil {
		logrus.Warnf("config file not read, using defaults and environment: %s", err)
	}
	config.SetDefaults()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %s", err)
	}

	signers, err := loadSigners(cfg.Keys)
	if err != nil {
		logrus.Fatalf("invalid signing keys: %s", err)
	}

	dialCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	client, err := evmclient.Dial(dialCtx, cfg.Chain.RPCURL, evmclient.Config{
		ChainID:        cfg.Chain.ChainID,
		Confirmations:  cfg.Chain.Confirmations,
		PollInterval:   cfg.Chain.PollInterval,
		ConfirmTimeout: cfg.Chain.ConfirmTimeout,
		GasMarginPct:   cfg.Chain.GasMarginPct,
	})
	cancel()
	if err != nil {
		logrus.Fatalf("failed to connect to chain: %s", err)
	}
	defer client.Close()
	logrus.WithFields(logrus.Fields{
		"chain_id": cfg.Chain.ChainID,
		"contract": cfg.Chain.Contract.Hex(),
	}).Info("chain client ready")

	var db *sqlx.DB
	if cfg.DB.Enabled {
		db, err = repository.NewPostgresDB(repository.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			Username: cfg.DB.Username,
			Password: cfg.DB.Password,
			DBName:   cfg.DB.DBName,
			SSLMode:  cfg.DB.SSLMode,
		})
		if err != nil {
			logrus.Fatalf("failed to initialize database: %s", err)
		}
		defer db.Close()
		logrus.Info("transaction journal enabled")
	}

	repos := repository.NewRepository(db)
	services := service.NewService(repos, client, signers, cfg.Chain.Contract)
	handlers := handler.NewHandler(services, cfg.Server)

	srv := new(disperse.Server)
	go func() {
		if err := srv.Run(cfg.Server.Port, handlers.InitRoute(), cfg.Server.ReadTimeout, cfg.Server.WriteTimeout); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("failed to run http server: %s", err)
		}
	}()
	logrus.Infof("listening on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error on server shutdown: %s", err)
	}
}

func InitConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// loadSigners parses the configured keys. Missing keys only disable the matching endpoints.
func loadSigners(keys config.KeysConfig) (service.Signers, error) {
	var signers service.Signers

	if keys.Disperse == "" {
		logrus.Warn("PRIVATE_KEY not set, disperse endpoints will fail")
	} else {
		acc, err := wallet.ParsePrivateKey(keys.Disperse)
		if err != nil {
			return signers, errors.Wrap(err, "PRIVATE_KEY")
		}
		signers.Disperse = acc
		logrus.WithField("address", acc.Address.Hex()).Info("disperse signer loaded")
	}

	if keys.Collect == "" {
		logrus.Warn("PRIVATE_KEYS_COLLECT not set, collect endpoints will fail")
	} else {
		accs, err := wallet.ParsePrivateKeys(keys.Collect)
		if err != nil {
			return signers, errors.Wrap(err, "PRIVATE_KEYS_COLLECT")
		}
		signers.Collect = accs
		logrus.WithField("count", len(accs)).Info("collect signers loaded")
	}

	return signers, nil
}
