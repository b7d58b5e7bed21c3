package middleware

import (
	"context"
	"strings"

	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/router"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if a.useAccessToken {
			token := getAccessToken(ctx)
			if token == "" {
				return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
			}

			var info model.AccessToken
			if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
				return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
			}

			ctx = xcontext.WithRequestUserID(ctx, info.ID)
			ctx = xcontext.WithRequestWalletAddress(ctx, info.Address)
			return ctx, nil
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}
		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
