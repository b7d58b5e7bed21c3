package domain

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/internal/repository"
	"github.com/tickex-lab/backend/pkg/crypto"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	WalletLogin(context.Context, *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	WalletVerify(context.Context, *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
	Refresh(context.Context, *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
}

type authDomain struct {
	hasSuperAdmin      bool
	hasSuperAdminMutex sync.Mutex

	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
) AuthDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

func (d *authDomain) WalletLogin(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	if req.Address == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty address")
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate random string: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletLoginResponse{Address: req.Address, Nonce: nonce}, nil
}

func (d *authDomain) WalletVerify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	nonce, address, err := d.popWalletSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.verifyWalletAnswer(ctx, req.Signature, nonce, address); err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByWalletAddress(ctx, address)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by wallet address: %v", err)
			return nil, errorx.Unknown
		}

		user = &entity.User{
			Base:          entity.Base{ID: uuid.NewString()},
			WalletAddress: sql.NullString{Valid: true, String: address},
			Name:          address,
		}

		if err := d.createUser(ctx, user); err != nil {
			return nil, err
		}
	}

	refreshToken, err := d.generateRefreshToken(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:      user.ID,
			Name:    user.Name,
			Address: user.WalletAddress.String,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletVerifyResponse{
		User:         model.ConvertUser(user, true),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	// Verify the refresh token from client.
	refreshToken := model.RefreshToken{}
	err := xcontext.TokenEngine(ctx).Verify(req.RefreshToken, &refreshToken)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Failed to verify refresh token: %v", err)
		return nil, errorx.Unknown
	}

	// Load the storage refresh token from database.
	hashedFamily := crypto.SHA256([]byte(refreshToken.Family))
	storageToken, err := d.refreshTokenRepo.Get(ctx, hashedFamily)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get refresh token family %s: %v", refreshToken.Family, err)
		return nil, errorx.Unknown
	}

	// Check the expiration of storage refresh token.
	if storageToken.Expiration.Before(time.Now()) {
		return nil, errorx.New(errorx.TokenExpired, "Your refresh token is expired")
	}

	// Check if refresh token is stolen or invalid.
	// NOTE: DO NOT create transaction here. The delete and rotate query is independent.
	if refreshToken.Counter != storageToken.Counter {
		err = d.refreshTokenRepo.Delete(ctx, hashedFamily)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete refresh token: %v", err)
			return nil, errorx.Unknown
		}

		return nil, errorx.New(errorx.StolenDetected,
			"Your refresh token will be revoked because it is detected as stolen")
	}

	// Rotate the refresh token by increasing counter by 1.
	err = d.refreshTokenRepo.Rotate(ctx, hashedFamily)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rotate the refresh token: %v", err)
		return nil, errorx.Unknown
	}

	// Everything is ok, generate refresh token and access token.
	newRefreshToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration,
		model.RefreshToken{
			Family:  refreshToken.Family,
			Counter: refreshToken.Counter + 1,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, storageToken.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	newAccessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:      user.ID,
			Name:    user.Name,
			Address: user.WalletAddress.String,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// popWalletSession reads the nonce and address stored by WalletLogin, then
// removes them so a signature cannot be replayed.
func (d *authDomain) popWalletSession(ctx context.Context) (nonce, address string, err error) {
	req := xcontext.HTTPRequest(ctx)
	session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the session: %v", err)
		return "", "", errorx.Unknown
	}

	nonceValue, nonceOK := session.Values["nonce"]
	addressValue, addressOK := session.Values["address"]
	if !nonceOK || !addressOK {
		return "", "", errorx.New(errorx.BadRequest, "You need to login before verifying")
	}

	delete(session.Values, "nonce")
	delete(session.Values, "address")
	if err := session.Save(req, xcontext.HTTPWriter(ctx)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save the session: %v", err)
		return "", "", errorx.Unknown
	}

	nonce, _ = nonceValue.(string)
	address, _ = addressValue.(string)
	return nonce, address, nil
}

func (d *authDomain) verifyWalletAnswer(ctx context.Context, hexSignature, nonce, address string) error {
	hash := accounts.TextHash([]byte(nonce))
	signature, err := hexutil.Decode(hexSignature)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode signature: %v", err)
		return errorx.Unknown
	}

	if len(signature) != ethcrypto.SignatureLength {
		return errorx.New(errorx.BadRequest, "Invalid signature length")
	}

	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	}

	recovered, err := ethcrypto.SigToPub(hash, signature)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recover signature to address: %v", err)
		return errorx.Unknown
	}

	recoveredAddr := ethcrypto.PubkeyToAddress(*recovered)
	if !bytes.Equal(recoveredAddr.Bytes(), ethcommon.HexToAddress(address).Bytes()) {
		return errorx.New(errorx.BadRequest, "Mismatched address")
	}

	return nil
}

func (d *authDomain) createUser(ctx context.Context, user *entity.User) error {
	d.hasSuperAdminMutex.Lock()
	defer d.hasSuperAdminMutex.Unlock()

	// The first user of the system is the super admin.
	if !d.hasSuperAdmin {
		count, err := d.userRepo.Count(ctx)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count number of users: %v", err)
			return errorx.Unknown
		}

		if count == 0 {
			user.Role = entity.SuperAdminRole
		}

		d.hasSuperAdmin = true
	}

	_, err := d.userRepo.GetByName(ctx, user.Name)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
			return errorx.Unknown
		}

		return errorx.New(errorx.AlreadyExists, "This wallet address is already registered")
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *authDomain) generateRefreshToken(ctx context.Context, userID string) (string, error) {
	refreshTokenFamily, err := crypto.GenerateRandomString()
	if err != nil {
		return "", err
	}

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration,
		model.RefreshToken{
			Family:  refreshTokenFamily,
			Counter: 0,
		})
	if err != nil {
		return "", err
	}

	err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     userID,
		Family:     crypto.SHA256([]byte(refreshTokenFamily)),
		Counter:    0,
		Expiration: time.Now().Add(xcontext.Configs(ctx).Auth.RefreshToken.Expiration),
	})
	if err != nil {
		return "", err
	}

	return refreshToken, nil
}
