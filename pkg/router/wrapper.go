package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := router.base
		ctx = xcontext.WithHTTPRequest(ctx, ginCtx.Request)
		ctx = xcontext.WithHTTPWriter(ctx, ginCtx.Writer)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		ctx = run(ctx, router, method, handler, ginCtx)

		handleResponse(ctx)
		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}

func run[Request, Response any](
	ctx context.Context,
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
	ginCtx *gin.Context,
) context.Context {
	var err error
	for _, m := range router.befores {
		if ctx, err = m(ctx); err != nil {
			return xcontext.WithError(ctx, err)
		}
	}

	var req Request
	switch method {
	case "GET":
		err = ginCtx.ShouldBindQuery(&req)
	case "POST":
		// Multipart uploads read the form from the raw request themselves.
		if ginCtx.ContentType() == "application/json" {
			err = ginCtx.ShouldBindJSON(&req)
		}
	}
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
		return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	ctx = xcontext.WithResponse(ctx, resp)
	for _, m := range router.afters {
		if ctx, err = m(ctx); err != nil {
			return xcontext.WithError(ctx, err)
		}
	}

	return ctx
}
