// Package auth provides authentication and authorization support.
// Authentication: you are who you say you are.
// Authorization: you have permission to do what you are asking to do.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/types/actions"
	"github.com/veltrip/platform/business/types/resource"
	"github.com/veltrip/platform/business/types/role"
	"github.com/veltrip/platform/foundation/logger"
)

var (
	ErrForbidden    = errors.New("attempted action is not allowed")
	ErrKIDMissing   = errors.New("kid missing from token header")
	ErrKIDMalformed = errors.New("kid in token header is malformed")
	ErrUserDisabled = errors.New("user is disabled")
	ErrInvalidRole  = errors.New("token contains an invalid role")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id,omitempty"`
	Role      string `json:"role"`
}

// KeyLookup declares a method set of behavior for looking up
// private and public keys for JWT use.
type KeyLookup interface {
	PrivateKey(kid string) (key string, err error)
	PublicKey(kid string) (key string, err error)
}

// Config represents information required to initialize auth.
type Config struct {
	Log       *logger.Logger
	UserBus   *userbus.Core
	KeyLookup KeyLookup
	Issuer    string
}

// Auth is used to authenticate clients.
type Auth struct {
	log       *logger.Logger
	keyLookup KeyLookup
	userBus   *userbus.Core
	enforcer  *casbin.Enforcer
	method    jwt.SigningMethod
	parser    *jwt.Parser
	issuer    string
}

// New creates an Auth to support authentication/authorization. The role
// policy is static and lives in process; there is no policy storage.
func New(cfg Config) (*Auth, error) {
	enforcer, err := newEnforcer()
	if err != nil {
		return nil, fmt.Errorf("building enforcer: %w", err)
	}

	return &Auth{
		log:       cfg.Log,
		keyLookup: cfg.KeyLookup,
		userBus:   cfg.UserBus,
		enforcer:  enforcer,
		method:    jwt.GetSigningMethod(jwt.SigningMethodRS256.Name),
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name})),
		issuer:    cfg.Issuer,
	}, nil
}

// Issuer provides the configured issuer used to authenticate tokens.
func (a *Auth) Issuer() string {
	return a.issuer
}

// GenerateToken generates a signed JWT token string representing the user
// Claims. CompanyID is omitted from the claims for platform admins.
func (a *Auth) GenerateToken(kid string, userID uuid.UUID, companyID uuid.UUID, r role.Role) (string, error) {
	var cid string
	if companyID != uuid.Nil {
		cid = companyID.String()
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		CompanyID: cid,
		Role:      r.String(),
	}

	token := jwt.NewWithClaims(a.method, claims)
	token.Header["kid"] = kid

	privateKeyPEM, err := a.keyLookup.PrivateKey(kid)
	if err != nil {
		return "", fmt.Errorf("private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("parsing private key from PEM: %w", err)
	}

	str, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// Authenticate processes the token to validate the sender's token is valid.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (Claims, error) {
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		return Claims{}, errors.New("expected authorization header format: Bearer <token>")
	}

	jwtUnverified := bearerToken[7:]

	var claims Claims
	token, _, err := a.parser.ParseUnverified(jwtUnverified, &claims)
	if err != nil {
		return Claims{}, fmt.Errorf("error parsing token: %w", err)
	}

	kidRaw, exists := token.Header["kid"]
	if !exists {
		return Claims{}, ErrKIDMissing
	}

	kid, ok := kidRaw.(string)
	if !ok {
		return Claims{}, ErrKIDMalformed
	}

	pem, err := a.keyLookup.PublicKey(kid)
	if err != nil {
		return Claims{}, fmt.Errorf("fetching public key for kid %q: %w", kid, err)
	}

	if err := a.verifySignatureAndClaims(jwtUnverified, pem); err != nil {
		a.log.Info(ctx, "authenticate failed", "userID", claims.Subject)
		return Claims{}, fmt.Errorf("authentication failed: %w", err)
	}

	if _, err := role.Parse(claims.Role); err != nil {
		return Claims{}, ErrInvalidRole
	}

	if err := a.isUserEnabled(ctx, claims); err != nil {
		return Claims{}, fmt.Errorf("user not enabled: %w", err)
	}

	return claims, nil
}

// Authorize checks the static role policy for the resource and action. The
// admin role bypasses the policy inside the matcher. Ownership and tenant
// checks beyond the role level belong to the business layer.
func (a *Auth) Authorize(ctx context.Context, claims Claims, res resource.Resource, act actions.Action) error {
	sub := "ROLE:" + claims.Role

	ok, err := a.enforcer.Enforce(sub, res.String(), act.String())
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: role %q may not %s %s", ErrForbidden, claims.Role, act, res)
	}

	return nil
}

// Login verifies the user's credentials for token generation.
func (a *Auth) Login(ctx context.Context, email mail.Address, password string) (userbus.User, error) {
	usr, err := a.userBus.Authenticate(ctx, email, password)
	if err != nil {
		return userbus.User{}, fmt.Errorf("invalid credentials: %w", err)
	}

	return usr, nil
}

// isUserEnabled checks if the user is active in the database.
func (a *Auth) isUserEnabled(ctx context.Context, claims Claims) error {
	if a.userBus == nil {
		return nil
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return fmt.Errorf("parsing user ID %q from claims: %w", claims.Subject, err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("query user: %w", err)
	}

	if !usr.Enabled {
		return ErrUserDisabled
	}

	return nil
}

// verifySignatureAndClaims parses the token with the public key, validates
// the signature, and checks the issuer claim.
func (a *Auth) verifySignatureAndClaims(tokenStr, pemStr string) error {
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemStr))
	if err != nil {
		return fmt.Errorf("parsing public key: %w", err)
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})

	if err != nil {
		return fmt.Errorf("validating token signature: %w", err)
	}

	if !token.Valid {
		return errors.New("token is invalid")
	}

	if claims.Issuer != a.issuer {
		return fmt.Errorf("invalid issuer: expected %q, got %q", a.issuer, claims.Issuer)
	}

	return nil
}
