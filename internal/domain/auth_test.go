package domain

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/internal/repository"
	"github.com/tickex-lab/backend/pkg/crypto"
	"github.com/tickex-lab/backend/pkg/testutil"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

func Test_authDomain_WalletVerify_FullFlow(t *testing.T) {
	ctx := testutil.MockContext()

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	loginResp, err := domain.WalletLogin(ctx, &model.WalletLoginRequest{Address: address})
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.Nonce)

	// Store the nonce and address in the session the way the save middleware
	// does after a login response.
	loginReq := httptest.NewRequest(http.MethodGet, "/wallet/login", nil)
	loginWriter := httptest.NewRecorder()
	store := xcontext.SessionStore(ctx)
	session, err := store.Get(loginReq, xcontext.Configs(ctx).Session.Name)
	require.NoError(t, err)
	for k, v := range loginResp.SessionInfo() {
		session.Values[k] = v
	}
	require.NoError(t, session.Save(loginReq, loginWriter))

	verifyReq := httptest.NewRequest(http.MethodPost, "/wallet/verify", nil)
	for _, cookie := range loginWriter.Result().Cookies() {
		verifyReq.AddCookie(cookie)
	}

	verifyCtx := xcontext.WithHTTPRequest(ctx, verifyReq)
	verifyCtx = xcontext.WithHTTPWriter(verifyCtx, httptest.NewRecorder())

	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(loginResp.Nonce)), key)
	require.NoError(t, err)

	resp, err := domain.WalletVerify(verifyCtx, &model.WalletVerifyRequest{
		Signature: hexutil.Encode(signature),
	})
	require.NoError(t, err)
	require.Equal(t, address, resp.User.WalletAddress)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	// The first user of a fresh system becomes the super admin.
	require.Equal(t, string(entity.SuperAdminRole), resp.User.Role)

	accessToken := model.AccessToken{}
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &accessToken))
	require.Equal(t, resp.User.ID, accessToken.ID)
	require.Equal(t, address, accessToken.Address)

	// The nonce was consumed, a replayed signature is rejected.
	_, err = domain.WalletVerify(verifyCtx, &model.WalletVerifyRequest{
		Signature: hexutil.Encode(signature),
	})
	require.Error(t, err)
	require.Equal(t, "You need to login before verifying", err.Error())
}

func Test_authDomain_WalletVerify_MismatchedAddress(t *testing.T) {
	ctx := testutil.MockContext()

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	otherKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	otherAddress := ethcrypto.PubkeyToAddress(otherKey.PublicKey).Hex()

	loginResp, err := domain.WalletLogin(ctx, &model.WalletLoginRequest{Address: otherAddress})
	require.NoError(t, err)

	loginReq := httptest.NewRequest(http.MethodGet, "/wallet/login", nil)
	loginWriter := httptest.NewRecorder()
	store := xcontext.SessionStore(ctx)
	session, err := store.Get(loginReq, xcontext.Configs(ctx).Session.Name)
	require.NoError(t, err)
	for k, v := range loginResp.SessionInfo() {
		session.Values[k] = v
	}
	require.NoError(t, session.Save(loginReq, loginWriter))

	verifyReq := httptest.NewRequest(http.MethodPost, "/wallet/verify", nil)
	for _, cookie := range loginWriter.Result().Cookies() {
		verifyReq.AddCookie(cookie)
	}

	verifyCtx := xcontext.WithHTTPRequest(ctx, verifyReq)
	verifyCtx = xcontext.WithHTTPWriter(verifyCtx, httptest.NewRecorder())

	// The signature comes from a key that does not own the claimed address.
	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(loginResp.Nonce)), key)
	require.NoError(t, err)

	_, err = domain.WalletVerify(verifyCtx, &model.WalletVerifyRequest{
		Signature: hexutil.Encode(signature),
	})
	require.Error(t, err)
	require.Equal(t, "Mismatched address", err.Error())
}

func Test_authDomain_WalletVerify_ShortSignature(t *testing.T) {
	ctx := testutil.MockContext()

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	loginResp, err := domain.WalletLogin(ctx, &model.WalletLoginRequest{Address: address})
	require.NoError(t, err)

	loginReq := httptest.NewRequest(http.MethodGet, "/wallet/login", nil)
	loginWriter := httptest.NewRecorder()
	store := xcontext.SessionStore(ctx)
	session, err := store.Get(loginReq, xcontext.Configs(ctx).Session.Name)
	require.NoError(t, err)
	for k, v := range loginResp.SessionInfo() {
		session.Values[k] = v
	}
	require.NoError(t, session.Save(loginReq, loginWriter))

	verifyReq := httptest.NewRequest(http.MethodPost, "/wallet/verify", nil)
	for _, cookie := range loginWriter.Result().Cookies() {
		verifyReq.AddCookie(cookie)
	}

	verifyCtx := xcontext.WithHTTPRequest(ctx, verifyReq)
	verifyCtx = xcontext.WithHTTPWriter(verifyCtx, httptest.NewRecorder())

	// A truncated signature must be rejected, not recovered.
	_, err = domain.WalletVerify(verifyCtx, &model.WalletVerifyRequest{Signature: "0x01"})
	require.Error(t, err)
	require.Equal(t, "Invalid signature length", err.Error())
}

func Test_authDomain_CreateUser_DuplicatedWallet(t *testing.T) {
	ctx := testutil.MockContext()

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	user := &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		Name:          "0xabc",
		WalletAddress: sql.NullString{Valid: true, String: "0xabc"},
	}
	require.NoError(t, domain.createUser(ctx, user))

	err := domain.createUser(ctx, &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		Name:          "0xabc",
		WalletAddress: sql.NullString{Valid: true, String: "0xabc"},
	})
	require.Error(t, err)
	require.Equal(t, "This wallet address is already registered", err.Error())
}

func Test_authDomain_WalletLogin_EmptyAddress(t *testing.T) {
	ctx := testutil.MockContext()

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	_, err := domain.WalletLogin(ctx, &model.WalletLoginRequest{})
	require.Error(t, err)
	require.Equal(t, "Not allow an empty address", err.Error())
}

func Test_authDomain_Refresh(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	refreshTokenObj := model.RefreshToken{
		Family:  "foo",
		Counter: 0,
	}

	err = domain.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     user.ID,
		Family:     crypto.SHA256([]byte(refreshTokenObj.Family)),
		Counter:    0,
		Expiration: time.Now().Add(time.Minute),
	})
	require.NoError(t, err)

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(time.Minute, refreshTokenObj)
	require.NoError(t, err)

	// Successfully for the first refresh.
	resp, err := domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshToken})
	require.NoError(t, err)

	accessToken := model.AccessToken{}
	err = xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &accessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, accessToken.ID)

	// Detect stolen for the second refresh, the refresh token will be deleted
	// after this call.
	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshToken})
	require.Error(t, err)
	require.Equal(t, "Your refresh token will be revoked because it is detected as stolen", err.Error())

	// Not found refresh token for the third refresh.
	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshToken})
	require.Error(t, err)
	require.Equal(t, "Request failed", err.Error())
}

func Test_authDomain_Refresh_Expired(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	refreshTokenObj := model.RefreshToken{Family: "expired", Counter: 0}
	err = domain.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     user.ID,
		Family:     crypto.SHA256([]byte(refreshTokenObj.Family)),
		Counter:    0,
		Expiration: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(time.Minute, refreshTokenObj)
	require.NoError(t, err)

	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshToken})
	require.Error(t, err)
	require.Equal(t, "Your refresh token is expired", err.Error())
}
