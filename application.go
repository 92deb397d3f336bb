// Package main Model Gallery REST API
//
// This package provides the REST API of the robot model gallery: the paged
// catalog listing, the demo model routes, cover images and a proxy to the 3D
// asset file server.
//
// Schemes: http, https
// Host: localhost:9090
// BasePath: /
// Version: 0.1.0
//
// swagger:meta
// go:generate swagger generate spec
package main

// Import this file's dependencies
import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/bundles/assets"
	"github.com/gazebo-web/model-gallery/globals"
	"github.com/gazebo-web/model-gallery/migrate"
	"github.com/go-playground/form"
	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/validator.v9"
)

const (
	defaultHTTPPort = "9090"
	// populateSeed makes the generated catalog repeatable across restarts.
	populateSeed int64 = 20240601
)

// Router is the HTTP handler of the gallery server.
var Router http.Handler

// ///////////////////////////////////////////////
// / Initialize this package
// /
// / Environment variables:
// /    GALLERY_DB_DIALECT     : sqlite3 (default) or mysql
// /    GALLERY_DB_PATH        : sqlite database file (default in memory)
// /    GALLERY_DB_USERNAME    : Mysql username
// /    GALLERY_DB_PASSWORD    : Mysql password
// /    GALLERY_DB_ADDRESS     : Mysql address (host:port)
// /    GALLERY_DB_NAME        : Mysql database name (such as "gallery")
// /    GALLERY_POPULATE_COUNT : Number of generated models (default 600)
// /    GALLERY_UPLOADS_DIR    : Directory with cover images (model-{id}.jpg)
// /    GALLERY_S3_BUCKET      : S3 bucket with cover images. Wins over the dir.
// /    GALLERY_PLACEHOLDER_URL: Format of the missing cover redirect
// /    GALLERY_FILE_SERVER_URL: 3D asset file server proxied at /sanweifile
// /    GALLERY_ELASTIC_ADDRESS: Elastic Search server for keyword search
// /    GALLERY_MEMCACHE_ADDRESS: Memcache server for listing results
// /    GALLERY_VERBOSITY      : Log verbosity (0-4)
func init() {
	var err error

	verbosity := gz.VerbosityWarning
	if verbStr, verr := gz.ReadEnvVar("GALLERY_VERBOSITY"); verr == nil {
		verbosity, _ = strconv.Atoi(verbStr)
	}

	logStd := gz.ReadStdLogEnvVar()
	logger := gz.NewLogger("init", logStd, verbosity)
	logCtx := gz.NewContextWithLogger(context.Background(), logger)

	isGoTest := flag.Lookup("test.v") != nil

	globals.Validate = initValidator()
	globals.FormDecoder = form.NewDecoder()

	if placeholder, err := gz.ReadEnvVar("GALLERY_PLACEHOLDER_URL"); err == nil {
		globals.PlaceholderURL = placeholder
	}
	fileServer, fileServerErr := gz.ReadEnvVar("GALLERY_FILE_SERVER_URL")
	if fileServerErr == nil {
		globals.FileServerURL = fileServer
	}

	if globals.DB, err = openDatabase(isGoTest); err != nil {
		logger.Critical("Unable to open the database:", err)
		log.Fatal("Unable to open the database: ", err)
	}

	// Migrate database tables
	DBMigrate(logCtx, globals.DB)
	// Run custom DB migration scripts
	migrate.ModelUUIDs(logCtx, globals.DB)
	migrate.LikesFromViews(logCtx, globals.DB)

	DBAddDefaultData(logCtx, globals.DB)

	// Note: tests populate the DB themselves, with their own sizes.
	if !isGoTest {
		DBPopulate(logCtx, globals.DB, populateCount(logCtx), populateSeed)
	}

	if !isGoTest {
		globals.Assets = initAssetStore(logCtx)

		if addr, err := gz.ReadEnvVar("GALLERY_MEMCACHE_ADDRESS"); err == nil {
			globals.QueryCache = memcache.New(addr)
		}

		if err := connectToElasticSearch(logCtx); err == nil {
			createIndex(logCtx)
			updateIndex(logCtx, globals.DB)
		}
	}

	var proxyTarget string
	if fileServerErr == nil {
		proxyTarget = fileServer
	}
	Router = newRouter(logger, verbosity, proxyTarget)
}

// openDatabase opens the gallery DB. Tests always get a fresh in-memory
// sqlite DB.
func openDatabase(isGoTest bool) (*gorm.DB, error) {
	dialect, err := gz.ReadEnvVar("GALLERY_DB_DIALECT")
	if err != nil || isGoTest {
		dialect = "sqlite3"
	}

	switch dialect {
	case "mysql":
		cfg := mysql.NewConfig()
		cfg.User, _ = gz.ReadEnvVar("GALLERY_DB_USERNAME")
		cfg.Passwd, _ = gz.ReadEnvVar("GALLERY_DB_PASSWORD")
		cfg.Net = "tcp"
		cfg.Addr, _ = gz.ReadEnvVar("GALLERY_DB_ADDRESS")
		cfg.DBName, _ = gz.ReadEnvVar("GALLERY_DB_NAME")
		cfg.ParseTime = true
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		db, err := gorm.Open("mysql", cfg.FormatDSN())
		if err != nil {
			return nil, errors.Wrap(err, "opening mysql database")
		}
		return db, nil
	case "sqlite3":
		path := ":memory:"
		if p, err := gz.ReadEnvVar("GALLERY_DB_PATH"); err == nil && !isGoTest {
			path = p
		}
		db, err := gorm.Open("sqlite3", path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening sqlite database %s", path)
		}
		// Every connection to :memory: is a different database.
		db.DB().SetMaxOpenConns(1)
		return db, nil
	}
	return nil, errors.Errorf("unsupported database dialect %q", dialect)
}

func populateCount(ctx context.Context) int {
	countStr, err := gz.ReadEnvVar("GALLERY_POPULATE_COUNT")
	if err != nil {
		return defaultPopulateCount
	}
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 0 {
		gz.LoggerFromContext(ctx).Warning("Invalid GALLERY_POPULATE_COUNT value:", countStr)
		return defaultPopulateCount
	}
	return count
}

// initAssetStore picks the cover image store: S3 when a bucket is
// configured, else a local directory. It returns nil when neither is.
func initAssetStore(ctx context.Context) assets.Store {
	logger := gz.LoggerFromContext(ctx)
	if bucket, err := gz.ReadEnvVar("GALLERY_S3_BUCKET"); err == nil {
		sess, err := session.NewSession()
		if err != nil {
			logger.Error("Unable to create AWS session. Covers will use the placeholder.", err)
			return nil
		}
		logger.Info("Serving covers from S3 bucket:", bucket)
		return assets.NewS3Store(sess, bucket, "covers")
	}
	if dir, err := gz.ReadEnvVar("GALLERY_UPLOADS_DIR"); err == nil {
		if _, err := os.Stat(dir); err != nil {
			logger.Warning("GALLERY_UPLOADS_DIR is not readable:", err)
		}
		logger.Info("Serving covers from:", dir)
		return assets.DirStore{Dir: dir}
	}
	logger.Info("No cover store configured. Covers will use the placeholder.")
	return nil
}

func initValidator() *validator.Validate {
	validate := validator.New()
	InstallCustomValidators(validate)
	return validate
}

// ///////////////////////////////////////////////
// Run the router and server
func main() {
	port := defaultHTTPPort
	if p, err := gz.ReadEnvVar("GALLERY_HTTP_PORT"); err == nil {
		port = p
	}
	log.Println("Model gallery listening on port", port)
	log.Fatal(http.ListenAndServe(":"+port, Router))
}
