package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/tickex-lab/backend/config"
	"github.com/tickex-lab/backend/pkg/authenticator"
	"github.com/tickex-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey            struct{}
	txKey            struct{}
	configsKey       struct{}
	loggerKey        struct{}
	tokenEngineKey   struct{}
	sessionStoreKey  struct{}
	snowflakeKey     struct{}
	httpRequestKey   struct{}
	httpWriterKey    struct{}
	requestUserIDKey struct{}
	walletAddressKey struct{}
	errorKey         struct{}
	responseKey      struct{}
	startTimeKey     struct{}
)

// dbTransaction tracks whether the transaction is still open, so a deferred
// WithRollbackDBTransaction is safe after WithCommitDBTransaction.
type dbTransaction struct {
	tx   *gorm.DB
	done bool
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction began by WithDBTransaction if any, otherwise the
// root *gorm.DB.
func DB(ctx context.Context) *gorm.DB {
	if t, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !t.done {
		return t.tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !t.done {
		t.tx.Commit()
		t.done = true
	}

	return ctx
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !t.done {
		t.tx.Rollback()
		t.done = true
	}

	return ctx
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	return ctx.Value(sessionStoreKey{}).(sessions.Store)
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	return ctx.Value(snowflakeKey{}).(*snowflake.Node)
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	return ctx.Value(httpWriterKey{}).(http.ResponseWriter)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

// RequestUserID returns the authenticated user id, or an empty string for an
// anonymous request.
func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(requestUserIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithRequestWalletAddress(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, walletAddressKey{}, address)
}

// RequestWalletAddress returns the wallet address carried by the access token,
// or an empty string if the user has not connected a wallet.
func RequestWalletAddress(ctx context.Context) string {
	if address, ok := ctx.Value(walletAddressKey{}).(string); ok {
		return address
	}

	return ""
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	if err, ok := ctx.Value(errorKey{}).(error); ok {
		return err
	}

	return nil
}

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

// Response returns the object the handler responded with. It is only non-nil
// in After middlewares and Closers.
func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		return t
	}

	return time.Time{}
}
