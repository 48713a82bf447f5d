package main

import (
	"context"
	"flag"
	"log/syslog"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/ritmofit/ritmo"
	"github.com/ritmofit/ritmo/persistent"
	"github.com/ritmofit/ritmo/transport/rest"
	"github.com/sirupsen/logrus"
	logrusys "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/tidwall/buntdb"
	"github.com/uptrace/bun"
	_ "github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

func listenAndServe(
	ctx context.Context,
	bdb *buntdb.DB,
	db *bun.DB,
	debug bool,
) func() error {
	userStore := &persistent.UserStore{DB: db}
	activityStore := &persistent.ActivityStore{DB: db}
	likeStore := &persistent.LikeStore{DB: db}
	commentStore := &persistent.CommentStore{DB: db}
	metricsStore := &persistent.MetricsStore{DB: db}
	sessionStore := &persistent.SessionStore{Buntdb: bdb}

	feed := ritmo.FeedService{Activities: activityStore, Likes: likeStore}

	authController := rest.AuthController{
		UserStore:    userStore,
		SessionStore: sessionStore,
		MetricsStore: metricsStore,
	}
	activityController := rest.ActivityController{
		Feed:         feed,
		Store:        activityStore,
		Likes:        likeStore,
		SessionStore: sessionStore,
		UserStore:    userStore,
	}
	commentController := rest.CommentController{
		Store:        commentStore,
		SessionStore: sessionStore,
		UserStore:    userStore,
	}
	userController := rest.UserController{Store: userStore}
	companyController := rest.CompanyController{Metrics: metricsStore}

	server := fiber.New()
	server.Use(rest.LogHandler())

	api := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: rest.ErrorHandler,
	})

	allowOrigins := os.Getenv("CORS_ALLOW_ORIGINS")
	if allowOrigins != "" {
		api.Use(cors.New(cors.Config{AllowOrigins: allowOrigins}))
	}

	api.Get("/status", monitor.New())
	authController.InstallTo(api)
	activityController.InstallTo(api)
	commentController.InstallTo(api)
	userController.InstallTo(api)
	companyController.InstallTo(api)

	server.Mount("/api/", api)
	server.Use(rest.NotFoundHandler)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		if debug {
			addr = "127.0.0.1:3000"
		} else {
			addr = ":3000"
		}
	}
	go server.Listen(addr)

	return server.Shutdown
}

func setupLogger(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.Stamp,
		FullTimestamp:   true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	syslogHook, err := logrusys.NewSyslogHook("", "", syslog.LOG_USER, "ritmo_backend")
	if err != nil {
		logrus.WithError(err).Warningln("Could not create syslog hook.")
		return
	}
	logrus.AddHook(syslogHook)
}

func awaitInterruption() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}

func main() {
	flag.Parse()
	debug := os.Getenv("DEBUG") == "true"
	setupLogger(debug)
	logrus.Infoln("Starting backend.")

	pgDsn := os.Getenv("POSTGRES_DSN")
	if pgDsn == "" {
		logrus.Fatalln("Environment variable POSTGRES_DSN is not set!")
	}

	buntPath := os.Getenv("BUNTDB_PATH")
	if buntPath == "" {
		buntPath = "kv.db"
	}
	bdb, err := buntdb.Open(buntPath)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not open buntdb.")
	}
	defer bdb.Close()

	logrus.Infoln("Opening database.")
	ctx := context.Background()
	db := persistent.PgOpen(ctx, pgDsn)
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	defer db.Close()

	if err := persistent.CreateSchema(ctx, db); err != nil {
		logrus.WithError(err).Fatalln("Could not create schema.")
	}
	companyName := os.Getenv("COMPANY_NAME")
	if companyName == "" {
		companyName = "Ritmo"
	}
	err = persistent.EnsureCompany(ctx, db, companyName, os.Getenv("COMPANY_LOGO_URL"))
	if err != nil {
		logrus.WithError(err).Fatalln("Could not ensure company row.")
	}

	logrus.Infoln("Starting listening... To shut down use ^C")
	shutdown := listenAndServe(ctx, bdb, db, debug)

	awaitInterruption()

	logrus.Infoln("Shutting down...")
	if err := shutdown(); err != nil {
		logrus.WithError(err).Warningln("Fiber shutdown failed.")
	}
	logrus.Exit(0)
}
