package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "equestrian/internal/app/http"
	"equestrian/internal/config"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/middleware"
	"equestrian/internal/pedigree"
	"equestrian/internal/repository"
	breedsvc "equestrian/internal/services/breed_service"
	gallerysvc "equestrian/internal/services/gallery_service"
	horsesvc "equestrian/internal/services/horse_service"
	infosvc "equestrian/internal/services/info_service"
	ownersvc "equestrian/internal/services/owner_service"
	tokensvc "equestrian/internal/services/token_service"
	usersvc "equestrian/internal/services/user_service"
	filestorage "equestrian/internal/storage/filestorage"
	"equestrian/internal/storage/postgresql"
	redisapp "equestrian/internal/storage/redis"
	httprouters "equestrian/internal/transport/http"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	Horses     *horsesvc.HorseService
	Users      *usersvc.UserService
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

// New собирает зависимости сервиса: Postgres, кэш родословной, хранилище токенов,
// файловое хранилище, сервисы и HTTP-сервер
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := &App{log: log, storage: storage}

	var (
		parentCache pedigree.ParentCache
		tokenRepo   repository.TokenRepository
	)

	switch cfg.Cache.Backend {
	case config.CacheRedis:
		client, err := redisapp.Connect(ctx, redisapp.Options{
			Addr:     cfg.Redis.RedisAddr,
			Password: cfg.Redis.RedisPassword,
			DB:       cfg.Redis.RedisDB,
		})
		if err != nil {
			a.Stop()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.redis = client
		parentCache = repository.NewRedisParentCache(a.redis, cfg.Cache.ParentTTL)
		tokenRepo = repository.NewRedisTokenRepo(a.redis)
	default:
		parentCache = pedigree.NewMemoryParentCache(cfg.Cache.ParentTTL)
		tokenRepo = repository.NewMemoryTokenRepo()
	}

	files, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.FileStorage.MaxSize)
	if err != nil {
		a.Stop()
		return nil, fmt.Errorf("%s: file storage: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool())

	tree := pedigree.NewTreeBuilder(log, repo.Horse, parentCache)
	locker := pedigree.NewKeyedLocker()

	tokenService := tokensvc.NewTokenService(log, tokenRepo, repo.User, cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	userService := usersvc.NewUserService(log, repo.User, tokenService)
	horseService := horsesvc.NewHorseService(log, repo.Horse, repo.Breed, repo.Owner, repo.Photo, tree, locker)
	a.Horses = horseService
	a.Users = userService

	cookies := middleware.CookieConfig{
		Secure:     cfg.JWT.CookieSecure,
		AccessTTL:  tokenService.AccessTTL(),
		RefreshTTL: tokenService.RefreshTTL(),
	}

	routers := httprouters.NewRouter(log, cookies, httprouters.Services{
		Users:   userService,
		Tokens:  tokenService,
		Horses:  horseService,
		Breeds:  breedsvc.NewBreedService(log, repo.Breed),
		Owners:  ownersvc.NewOwnerService(log, repo.Owner),
		Gallery: gallerysvc.NewGalleryService(log, repo.Photo, files),
		Info:    infosvc.NewInfoService(log, repo.Info, repo.Contact),
	})

	a.HTTPServer = httpapp.New(log, httpapp.Options{
		Host:      cfg.HTTP.Host,
		Port:      cfg.HTTP.Port,
		Timeout:   cfg.HTTP.Timeout,
		LoginRate: cfg.HTTP.LoginRate,
		MediaDir:  cfg.FileStorage.BaseDir,
		MediaURL:  cfg.FileStorage.BaseURL,
	}, routers, middleware.JWTCookieAuth(log, tokenService, cookies))

	return a, nil
}

// Stop закрывает соединения с хранилищами
func (a *App) Stop() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("failed to close redis", sl.Err(err))
		}
	}
	a.storage.Stop()
}
