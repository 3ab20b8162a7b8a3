package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/database/mongoclient"
	"github.com/bidmarket/goapi/base/database/redisclient"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/base/metrics"
	bValidator "github.com/bidmarket/goapi/base/validator"
	mmiddleware "github.com/bidmarket/goapi/middleware"
	"github.com/bidmarket/goapi/service/query"
	"github.com/bidmarket/goapi/service/redis"
	hc_delivery "github.com/bidmarket/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/bidmarket/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/bidmarket/goapi/stores/healthcheck/usecase"
	paytoken_repository "github.com/bidmarket/goapi/stores/paytoken/repository"
	paytoken_usecase "github.com/bidmarket/goapi/stores/paytoken/usecase"
	sale_delivery "github.com/bidmarket/goapi/stores/sale/delivery/http"
	sale_repository "github.com/bidmarket/goapi/stores/sale/repository"
	sale_usecase "github.com/bidmarket/goapi/stores/sale/usecase"
	storage_delivery "github.com/bidmarket/goapi/stores/storage/delivery/http"
	storage_repository "github.com/bidmarket/goapi/stores/storage/repository"
	storage_usecase "github.com/bidmarket/goapi/stores/storage/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	costPerSale, err := decimal.NewFromString(viper.GetString("market.storageCostPerSale"))
	if err != nil {
		panic(err)
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	saleRepo := sale_repository.NewSaleRepo(q)
	indexRepo := sale_repository.NewIndexRepo(q)
	storageRepo := storage_repository.New(q)
	paytokenRepo := paytoken_repository.NewPayTokenRepo(q, redisCache)

	hc := hc_usecase.New(hcRepo)
	paytokenUC := paytoken_usecase.New(paytokenRepo)
	ledger := storage_usecase.New(&storage_usecase.StorageLedgerCfg{
		Repo:        storageRepo,
		IndexRepo:   indexRepo,
		CostPerSale: costPerSale,
	})
	market := sale_usecase.New(&sale_usecase.MarketUsecaseCfg{
		SaleRepo:   saleRepo,
		IndexRepo:  indexRepo,
		Ledger:     ledger,
		PaytokenUC: paytokenUC,
		Query:      q,
	})

	hc_delivery.New(e, hc)
	sale_delivery.New(e, market, paytokenUC)
	storage_delivery.New(e, ledger)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
