package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tickex-lab/backend/internal/middleware"
	"github.com/tickex-lab/backend/pkg/prometheus"
	"github.com/tickex-lab/backend/pkg/router"
	"github.com/tickex-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadAuth()
	s.loadSnowFlake()
	s.loadStorage()
	s.loadRedis()
	s.loadRepos()
	s.loadChainCaller()
	s.loadCollectionCaller()
	s.loadSearchCaller()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}
	xcontext.Logger(s.ctx).Infof("Api server stopped")

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSaveSession())
	{
		router.GET(authRouter, "/wallet/login", s.authDomain.WalletLogin)
		router.POST(authRouter, "/wallet/verify", s.authDomain.WalletVerify)
		router.POST(authRouter, "/refresh", s.authDomain.Refresh)
	}

	// Public API
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/getEvent", s.eventDomain.Get)
		router.GET(publicRouter, "/getListEvent", s.eventDomain.GetList)
		router.GET(publicRouter, "/getEventsByCreator", s.eventDomain.GetByCreator)
		router.GET(publicRouter, "/getPublicProfile", s.userDomain.GetPublic)
	}

	// These following APIs need authentication with only Access Token.
	onlyTokenAuthRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	onlyTokenAuthRouter.Before(authVerifier.Middleware())
	{
		// User API
		router.GET(onlyTokenAuthRouter, "/getMe", s.userDomain.GetMe)
		router.POST(onlyTokenAuthRouter, "/updateUser", s.userDomain.Update)

		// Event API
		router.POST(onlyTokenAuthRouter, "/createEvent", s.eventDomain.Create)
		router.POST(onlyTokenAuthRouter, "/deleteEvent", s.eventDomain.Delete)

		// Ticket API
		router.POST(onlyTokenAuthRouter, "/buyTicket", s.ticketDomain.Buy)
		router.GET(onlyTokenAuthRouter, "/getMyTickets", s.ticketDomain.GetMy)

		// File API
		router.POST(onlyTokenAuthRouter, "/uploadImage", s.fileDomain.UploadImage)
		router.POST(onlyTokenAuthRouter, "/uploadAvatar", s.fileDomain.UploadAvatar)
	}

	s.router.Inner.GET("/metrics", gin.WrapH(prometheus.NewHandler()))
}
