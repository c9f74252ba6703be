package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const TokenTypeSession = "session"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Session is what a console session token carries. Backend holds the listings backend
// cookies obtained at login so that user lookups and logout can replay them.
type Session struct {
	UserID   int64
	Email    string
	Name     string
	Remember bool
	Backend  map[string]string
}

type Claims struct {
	UserID    int64             `json:"user_id"`
	Email     string            `json:"email,omitempty"`
	Name      string            `json:"name,omitempty"`
	Remember  bool              `json:"remember,omitempty"`
	Backend   map[string]string `json:"backend,omitempty"`
	TokenType string            `json:"token_type"`

	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`

	jwtlib.RegisteredClaims
}

func (c Claims) Session() Session {
	return Session{UserID: c.UserID, Email: c.Email, Name: c.Name, Remember: c.Remember, Backend: c.Backend}
}

type Service interface {
	GenerateSessionToken(s Session) (string, time.Time, error)
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret []byte

	expiresIn         time.Duration
	rememberExpiresIn time.Duration

	now func() time.Time
}

func NewHMACService(secret string, expiresIn, rememberExpiresIn time.Duration) *HMACService {
	return &HMACService{
		secret:            []byte(secret),
		expiresIn:         expiresIn,
		rememberExpiresIn: rememberExpiresIn,
		now:               time.Now,
	}
}

// GenerateSessionToken signs a session. Remembered sessions use the longer expiry.
func (s *HMACService) GenerateSessionToken(sess Session) (string, time.Time, error) {
	expIn := s.expiresIn
	if sess.Remember {
		expIn = s.rememberExpiresIn
	}
	if len(s.secret) == 0 || expIn <= 0 {
		return "", time.Time{}, ErrTokenInvalid
	}

	now := s.now()
	exp := now.Add(expIn)

	c := Claims{
		UserID:    sess.UserID,
		Email:     sess.Email,
		Name:      sess.Name,
		Remember:  sess.Remember,
		Backend:   sess.Backend,
		TokenType: TokenTypeSession,
		IssuedAt:  now.UTC(),
		ExpiredAt: exp.UTC(),
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now.UTC()),
			ExpiresAt: jwtlib.NewNumericDate(exp.UTC()),
			Subject:   strconv.FormatInt(sess.UserID, 10),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, ErrTokenInvalid
	}
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	now := s.now().UTC()
	if !c.ExpiredAt.IsZero() && now.After(c.ExpiredAt.UTC()) {
		return Claims{}, ErrTokenExpired
	}
	if c.TokenType != TokenTypeSession {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}
