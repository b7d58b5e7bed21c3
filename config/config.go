package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database         DatabaseConfigs
	ApiServer        ServerConfigs
	CollectionServer RPCServerConfigs
	SearchServer     SearchServerConfigs
	Auth             AuthConfigs
	Session          SessionConfigs
	Storage          S3Configs
	File             FileConfigs
	Redis            RedisConfigs
	Chain            ChainConfigs
	Ticket           TicketConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type RPCServerConfigs struct {
	ServerConfigs
	RPCName  string
	Endpoint string
}

type SearchServerConfigs struct {
	RPCServerConfigs
	IndexDir string
}

type AuthConfigs struct {
	TokenSecret  string
	AccessToken  TokenConfigs
	RefreshToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	SSLDisabled    bool
}

type FileConfigs struct {
	MaxSize int64
}

type RedisConfigs struct {
	Addr string
}

type ChainConfigs struct {
	// RPCName prefixes every method of the chain RPC endpoint.
	RPCName  string
	Endpoint string

	// SecretKey derives the provisioning authority keypair.
	SecretKey string

	// MinAuthorityBalance is the funding floor of the provisioning authority,
	// in the chain's smallest unit.
	MinAuthorityBalance int64
}

type TicketConfigs struct {
	Symbol           string
	CollectionFamily string
	RoyaltyPercent   int

	// MaxPerBuyer caps how many tickets one buyer can hold for one event.
	// Zero disables the cap.
	MaxPerBuyer int
}
