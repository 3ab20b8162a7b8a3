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

	"github.com/bidmarket/goapi/base/backoff"
	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/database/mongoclient"
	"github.com/bidmarket/goapi/base/goroutine"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/base/metrics"
	"github.com/bidmarket/goapi/domain/sale"
	mmiddleware "github.com/bidmarket/goapi/middleware"
	"github.com/bidmarket/goapi/service/query"
	paytoken_usecase "github.com/bidmarket/goapi/stores/paytoken/usecase"
	sale_repository "github.com/bidmarket/goapi/stores/sale/repository"
	sale_usecase "github.com/bidmarket/goapi/stores/sale/usecase"
	storage_repository "github.com/bidmarket/goapi/stores/storage/repository"
	storage_usecase "github.com/bidmarket/goapi/stores/storage/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/sweeper/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer cancel()

	// liveness endpoint for the container runtime
	startEchoServer()

	interval := viper.GetDuration("sweeper.interval")
	batchSize := viper.GetInt32("sweeper.batchSize")

	ctx.WithFields(log.Fields{
		"interval":  interval,
		"batchSize": batchSize,
	}).Info("config")

	ctx.Info("init mongo")
	q := initMongo()

	costPerSale, err := decimal.NewFromString(viper.GetString("market.storageCostPerSale"))
	if err != nil {
		ctx.WithField("err", err).Panic("invalid market.storageCostPerSale")
	}

	saleRepo := sale_repository.NewSaleRepo(q)
	indexRepo := sale_repository.NewIndexRepo(q)
	storageRepo := storage_repository.New(q)
	ledger := storage_usecase.New(&storage_usecase.StorageLedgerCfg{
		Repo:        storageRepo,
		IndexRepo:   indexRepo,
		CostPerSale: costPerSale,
	})
	market := sale_usecase.New(&sale_usecase.MarketUsecaseCfg{
		SaleRepo:  saleRepo,
		IndexRepo: indexRepo,
		Ledger:    ledger,
		// the sweeper never creates listings, token support checks are not needed
		PaytokenUC: paytoken_usecase.New(nil),
		Query:      q,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	restartBackoff := backoff.NewExponential(time.Second, time.Minute)
	for {
		panicCh := goroutine.RecoverableGo(func() {
			sweepLoop(ctx, market, interval, batchSize)
		})

		select {
		case sig := <-quit:
			ctx.WithField("signal", sig).Info("received signal")
			return
		case p := <-panicCh:
			if p == nil {
				// sweep loop only returns when the context ends
				return
			}
			ctx.WithField("panic", p.Panic).Error("sweep loop panicked, restarting")
			if err := restartBackoff.Backoff(ctx); err != nil {
				return
			}
		}
	}
}

func sweepLoop(ctx bCtx.Ctx, market sale.MarketUsecase, interval time.Duration, batchSize int32) {
	met := metrics.New("sweeper")
	bo := backoff.NewExponential(interval, 10*interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx.Info("sweeper started")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := market.RemoveExpired(ctx, time.Now(), batchSize)
			if err != nil {
				ctx.WithField("err", err).Error("failed to market.RemoveExpired")
				met.BumpSum("sweep.err", 1)
				if err := bo.Backoff(ctx); err != nil {
					return
				}
				continue
			}
			bo.Reset()
			met.BumpHistogram("sweep.removed", float64(removed))
			if removed > 0 {
				ctx.WithField("removed", removed).Info("removed expired sales")
			}
		}
	}
}

func startEchoServer() {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.Error("shutting down the server")
		}
	}()
}

func initMongo() query.Mongo {
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	return query.New(mongoClient, checkIndex)
}
