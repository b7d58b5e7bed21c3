package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandlerFunc is the signature of every API handler. The request is bound from
// the query string on GET and from the JSON body on POST.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after a handler. It may derive a new context
// which the rest of the chain sees.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written.
type CloserFunc func(ctx context.Context)

type Router struct {
	Inner gin.IRouter

	engine  *gin.Engine
	base    context.Context
	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a root router. The given context carries the shared request
// dependencies and is the parent of every request context.
func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	return &Router{
		Inner:  engine,
		engine: engine,
		base:   ctx,
	}
}

// Branch clones the router with an independent middleware chain but the same
// route namespace.
func (r *Router) Branch() *Router {
	return &Router{
		Inner:   r.Inner,
		engine:  r.engine,
		base:    r.base,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

// Group branches the router under a path prefix.
func (r *Router) Group(pattern string) *Router {
	branch := r.Branch()
	branch.Inner = r.Inner.Group(pattern)
	return branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(relativePath, root string) {
	r.Inner.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}
