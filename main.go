package main

import (
	"embed"
	"io/fs"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/amoreira/letterpress/internal/auth"
	"github.com/amoreira/letterpress/internal/cache"
	"github.com/amoreira/letterpress/internal/config"
	"github.com/amoreira/letterpress/internal/content"
	"github.com/amoreira/letterpress/internal/db"
	"github.com/amoreira/letterpress/internal/logger"
	"github.com/amoreira/letterpress/internal/media"
	"github.com/amoreira/letterpress/internal/render"
	"github.com/amoreira/letterpress/internal/routes"
	"github.com/amoreira/letterpress/internal/sitecontent"
	"github.com/amoreira/letterpress/internal/store"
	"github.com/amoreira/letterpress/internal/util"
)

//go:embed static/* templates/*
var assets embed.FS

var appLogger zerolog.Logger

var (
	database       db.DB
	primaryStore   store.PrimaryStore
	secondaryStore store.SecondaryStore
	resolver       *content.Resolver
	publisher      *content.Publisher
	mediaService   *media.Service
	homeContent    *sitecontent.Service
	authProvider   auth.Provider
)

func main() {
	setLoggers(logger.New("info"))

	if err := godotenv.Load(); err != nil {
		appLogger.Debug().Msg("No .env file found")
	}

	configPath := envOr("LETTERPRESS_CONFIG", "config.yaml")
	if err := config.LoadConfig(configPath); err != nil {
		appLogger.Fatal().Err(err).Str("path", configPath).Msg("Failed to load config")
	}

	// Recreate the logger now that the configured level is known
	setLoggers(logger.New(config.AppConfig.Logging.Level))

	database = db.NewSQLite(envOr("LETTERPRESS_DB", "letterpress.db"))
	if err := database.Init(); err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer database.Close()

	primaryStore = store.NewDBPrimaryStore(database)
	secondaryStore = newSecondaryStore()

	resolver = content.NewResolver(primaryStore, secondaryStore)
	publisher = content.NewPublisher(primaryStore, secondaryStore)
	mediaService = media.NewService(database)
	homeContent = sitecontent.NewService(database)
	authProvider = newAuthProvider()

	// Hash static assets once so responses can carry stable ETags
	static, _ := fs.Sub(assets, config.StaticLocalDir)
	fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			data, _ := fs.ReadFile(static, path)
			cache.SetStaticHash(config.StaticUrlPath+path, util.ContentHash(data))
		}
		return nil
	})

	mux := http.NewServeMux()

	mux.HandleFunc(routes.RobotsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCType, "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("User-agent: *\nDisallow:"))
	})

	mux.Handle(config.StaticUrlPath, http.StripPrefix(config.StaticUrlPath, http.FileServer(http.FS(static))))

	mux.HandleFunc(routes.RootPath, serveIndex)
	mux.HandleFunc(routes.PostsPath, servePost)
	mux.HandleFunc(routes.MediaPath, serveMedia)
	mux.HandleFunc(routes.FeedPath, serveFeed)
	mux.HandleFunc(routes.SyntaxThemeSet, serveSyntaxThemePostSet)
	mux.HandleFunc(routes.SyntaxThemeGet, serveSyntaxThemeGetTheme)

	registerAPIRoutes(mux)

	handler := authProvider.WithHeaderAuthorization()(secureHeaders(mux))

	addr := config.AppConfig.Server.Host + ":" + config.AppConfig.Server.Port
	appLogger.Info().Str("addr", addr).Msg("Server listening")
	if err := http.ListenAndServe(addr, cacheIt(handler)); err != nil {
		appLogger.Fatal().Err(err).Msg("Server stopped")
	}
}

// newSecondaryStore builds the published-file store the config asks for.
// The filesystem store also watches its directory so out-of-band edits
// show up without a restart.
func newSecondaryStore() store.SecondaryStore {
	cfg := config.AppConfig.Content

	if cfg.Store == "s3" {
		s3Store, err := store.NewS3SecondaryStore(
			os.Getenv("S3_ACCESS_KEY_ID"),
			os.Getenv("S3_SECRET_ACCESS_KEY"),
			cfg.S3Endpoint,
			cfg.S3Bucket,
		)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("Failed to initialize S3 store")
		}
		return s3Store
	}

	fsStore := store.NewFSSecondaryStore(cfg.PostsDir)
	if err := fsStore.Watch(); err != nil {
		appLogger.Warn().Err(err).Str("dir", cfg.PostsDir).Msg("File watching disabled")
	}
	return fsStore
}

func newAuthProvider() auth.Provider {
	if !config.AppConfig.Auth.Enabled {
		appLogger.Warn().Msg("Auth disabled, CMS API is open")
		return auth.NewNoopProvider()
	}

	clerkKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkKey == "" {
		appLogger.Fatal().Msg("CLERK_SECRET_KEY is required when auth is enabled")
	}
	return auth.NewClerkProvider(clerkKey)
}

func setLoggers(l zerolog.Logger) {
	appLogger = l

	auth.SetLogger(l.With().Str("component", "auth").Logger())
	config.SetLogger(l.With().Str("component", "config").Logger())
	content.SetLogger(l.With().Str("component", "content").Logger())
	db.SetLogger(l.With().Str("component", "db").Logger())
	media.SetLogger(l.With().Str("component", "media").Logger())
	render.SetLogger(l.With().Str("component", "render").Logger())
	sitecontent.SetLogger(l.With().Str("component", "sitecontent").Logger())
	store.SetLogger(l.With().Str("component", "store").Logger())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func secureHeaders(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routes.RobotsPath {
			w.Header().Set("X-Frame-Options", "deny")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-XSS-Protection", "1; mode=block")
		}
		h.ServeHTTP(w, r)
	})
}

func cacheIt(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCacheControl, "no-cache")
		w.Header().Set("Vary", "Cookie")

		if hash, ok := cache.GetStaticHash(r.URL.Path); ok {
			w.Header().Set(config.HCacheControl, "public, max-age=3600")
			w.Header().Set(config.HETag, hash)
		}

		h.ServeHTTP(w, r)
	})
}
