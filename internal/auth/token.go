package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
)

type userIdKey struct{}

// Verifier checks bearer tokens minted by the external identity provider.
type Verifier struct {
	secretKey []byte
}

func NewVerifier(secretKey string) Verifier {
	return Verifier{secretKey: []byte(secretKey)}
}

func (v Verifier) VerifyToken(c context.Context, token string) (uuid.UUID, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Verifier VerifyToken").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	logger.Trace().Msg("parsing claims")
	claims := jwt.RegisteredClaims{}
	jwtToken, err := jwt.ParseWithClaims(token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return v.secretKey, nil
		},
		jwt.WithAudience(constants.AudienceUser),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.IssuerIdentity),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", errors.Join(inErrors.ErrTokenInvalid, err))
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	logger.Trace().Msg("parsed claims")

	logger = logger.With().Str(log.KeyProcess, "validating token").Logger()
	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return uuid.Nil, inErrors.ErrTokenInvalid
	}

	if claims.Subject == "" {
		logger.Error().Err(inErrors.ErrEmptySubject).Msg(inErrors.ErrEmptySubject.Error())
		return uuid.Nil, inErrors.ErrEmptySubject
	}

	userId, err := uuid.Parse(claims.Subject)
	if err != nil {
		err = fmt.Errorf("failed parsing subject with error=%w", errors.Join(inErrors.ErrTokenInvalid, err))
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	logger.Trace().Str(log.KeyUserID, userId.String()).Msg("validated token")

	return userId, nil
}

// IssueToken mints a token the way the identity provider does. Used by tests and local tooling.
func (v Verifier) IssueToken(userId uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    constants.IssuerIdentity,
		Subject:   userId.String(),
		Audience:  jwt.ClaimStrings{constants.AudienceUser},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secretKey)
}

func AttachUserIdToContext(c context.Context, userId uuid.UUID) context.Context {
	return context.WithValue(c, userIdKey{}, userId)
}

// UserIdFromContext returns uuid.Nil when no identity is attached.
func UserIdFromContext(c context.Context) uuid.UUID {
	userId, ok := c.Value(userIdKey{}).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userId
}
