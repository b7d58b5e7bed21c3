package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/sessions"
	"github.com/tickex-lab/backend/config"
	"github.com/tickex-lab/backend/internal/client"
	"github.com/tickex-lab/backend/internal/domain"
	"github.com/tickex-lab/backend/internal/repository"
	"github.com/tickex-lab/backend/pkg/authenticator"
	"github.com/tickex-lab/backend/pkg/logger"
	"github.com/tickex-lab/backend/pkg/router"
	"github.com/tickex-lab/backend/pkg/storage"
	"github.com/tickex-lab/backend/pkg/xcontext"
	"github.com/tickex-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs

	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	eventRepo        repository.EventRepository
	ticketRepo       repository.TicketRepository
	fileRepo         repository.FileRepository

	authDomain   domain.AuthDomain
	userDomain   domain.UserDomain
	eventDomain  domain.EventDomain
	ticketDomain domain.TicketDomain
	fileDomain   domain.FileDomain

	chainCaller      client.ChainCaller
	collectionCaller client.CollectionCaller
	searchCaller     client.SearchCaller

	redisClient xredis.Client
	storage     storage.Storage

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "tickex"),
			Password: getEnv("MYSQL_PASSWORD", "tickex"),
			Database: getEnv("MYSQL_DATABASE", "tickex"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("API_HOST", "localhost"),
			Port: getEnv("API_PORT", "8080"),
			Cert: getEnv("API_CERT", ""),
			Key:  getEnv("API_KEY", ""),
		},
		CollectionServer: config.RPCServerConfigs{
			ServerConfigs: config.ServerConfigs{
				Host: getEnv("COLLECTION_HOST", "localhost"),
				Port: getEnv("COLLECTION_PORT", "8081"),
			},
			RPCName:  getEnv("COLLECTION_RPC_NAME", "collection"),
			Endpoint: getEnv("COLLECTION_ENDPOINT", "http://localhost:8081"),
		},
		SearchServer: config.SearchServerConfigs{
			RPCServerConfigs: config.RPCServerConfigs{
				ServerConfigs: config.ServerConfigs{
					Host: getEnv("SEARCH_HOST", "localhost"),
					Port: getEnv("SEARCH_PORT", "8082"),
				},
				RPCName:  getEnv("SEARCH_RPC_NAME", "search"),
				Endpoint: getEnv("SEARCH_ENDPOINT", "http://localhost:8082"),
			},
			IndexDir: getEnv("SEARCH_INDEX_DIR", "searchindex"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getDuration("ACCESS_TOKEN_DURATION", time.Hour),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: getDuration("REFRESH_TOKEN_DURATION", 30*24*time.Hour),
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("SESSION_SECRET", "session-secret"),
			Name:   getEnv("SESSION_NAME", "session"),
		},
		Storage: config.S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", "access"),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", "secret"),
			SSLDisabled:    getBool("STORAGE_SSL_DISABLED", true),
		},
		File: config.FileConfigs{
			MaxSize: getInt64("MAX_UPLOAD_SIZE", 2<<20),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Chain: config.ChainConfigs{
			RPCName:             getEnv("CHAIN_RPC_NAME", "chain"),
			Endpoint:            getEnv("CHAIN_ENDPOINT", "http://localhost:8899"),
			SecretKey:           getEnv("CHAIN_SECRET_KEY", "chain-secret"),
			MinAuthorityBalance: getInt64("CHAIN_MIN_AUTHORITY_BALANCE", 1_000_000_000),
		},
		Ticket: config.TicketConfigs{
			Symbol:           getEnv("TICKET_SYMBOL", "TCKT"),
			CollectionFamily: getEnv("TICKET_COLLECTION_FAMILY", "Tickex"),
			RoyaltyPercent:   int(getInt64("TICKET_ROYALTY_PERCENT", 5)),
			MaxPerBuyer:      int(getInt64("TICKET_MAX_PER_BUYER", 1)),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), *s.configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLoggerWithLevel(level))
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadAuth() {
	s.ctx = xcontext.WithTokenEngine(s.ctx,
		authenticator.NewTokenEngine(s.configs.Auth.TokenSecret))
	s.ctx = xcontext.WithSessionStore(s.ctx,
		sessions.NewCookieStore([]byte(s.configs.Session.Secret)))
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
	s.eventRepo = repository.NewEventRepository()
	s.ticketRepo = repository.NewTicketRepository()
	s.fileRepo = repository.NewFileRepository()
}

func (s *srv) loadChainCaller() {
	rpcClient, err := rpc.DialContext(s.ctx, s.configs.Chain.Endpoint)
	if err != nil {
		panic(err)
	}

	s.chainCaller = client.NewChainCaller(rpcClient)
}

func (s *srv) loadCollectionCaller() {
	rpcClient, err := rpc.DialContext(s.ctx, s.configs.CollectionServer.Endpoint)
	if err != nil {
		panic(err)
	}

	s.collectionCaller = client.NewCollectionCaller(rpcClient)
}

func (s *srv) loadSearchCaller() {
	rpcClient, err := rpc.DialContext(s.ctx, s.configs.SearchServer.Endpoint)
	if err != nil {
		panic(err)
	}

	s.searchCaller = client.NewSearchCaller(rpcClient)
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.eventRepo, s.searchCaller)
	s.eventDomain = domain.NewEventDomain(
		s.eventRepo, s.userRepo, s.collectionCaller, s.searchCaller, s.redisClient)
	s.ticketDomain = domain.NewTicketDomain(
		s.ticketRepo, s.eventRepo, s.chainCaller, s.redisClient)
	s.fileDomain = domain.NewFileDomain(s.storage, s.fileRepo, s.userRepo)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return duration
}

func getInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	number, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		panic(err)
	}

	return number
}

func getBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		panic(err)
	}

	return b
}
