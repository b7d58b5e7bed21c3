package main

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/cors"
	"github.com/tickex-lab/backend/internal/domain"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

// collectionService adapts the domain to the rpc handler. The service context
// carries configs and logger; the errorx message travels in the rpc error.
type collectionService struct {
	ctx    context.Context
	domain domain.CollectionDomain
}

func (c *collectionService) Provision(
	req model.ProvisionCollectionRequest,
) (*model.ProvisionCollectionResponse, error) {
	return c.domain.Provision(c.ctx, &req)
}

func (s *srv) startCollectionRPC(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadChainCaller()

	collectionDomain := domain.NewCollectionDomain(s.chainCaller)

	collectionServerCfg := xcontext.Configs(s.ctx).CollectionServer
	rpcHandler := rpc.NewServer()
	err := rpcHandler.RegisterName(collectionServerCfg.RPCName, &collectionService{
		ctx:    s.ctx,
		domain: collectionDomain,
	})
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot register collection service: %v", err)
		return err
	}
	defer rpcHandler.Stop()

	httpSrv := &http.Server{
		Handler: cors.AllowAll().Handler(rpcHandler),
		Addr:    collectionServerCfg.Address(),
	}

	xcontext.Logger(s.ctx).Infof("Started rpc server of collection provisioning")
	if err := httpSrv.ListenAndServe(); err != nil {
		xcontext.Logger(s.ctx).Errorf("An error occurs when running rpc server: %v", err)
		return err
	}
	xcontext.Logger(s.ctx).Infof("Stopped rpc server of collection provisioning")

	return nil
}
