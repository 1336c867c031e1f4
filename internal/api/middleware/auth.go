package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
)

// Capability право на группу операций
type Capability string

const (
	CapShiftsRead         Capability = "shifts:read"
	CapShiftsWrite        Capability = "shifts:write"
	CapWorkersRead        Capability = "workers:read"
	CapWorkersWrite       Capability = "workers:write"
	CapCancellationsRead  Capability = "cancellations:read"
	CapCancellationsWrite Capability = "cancellations:write"
	CapRebookingRead      Capability = "rebooking:read"
	CapRebookingWrite     Capability = "rebooking:write"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
	msgForbidden    = "недостаточно прав"
)

var (
	ErrMissingToken = errors.New("middleware: missing bearer token")
	ErrInvalidToken = errors.New("middleware: invalid token")
)

type contextKey string

const principalKey contextKey = "principal"

// Claims содержимое токена: стандартные поля и список прав
type Claims struct {
	Caps []string `json:"caps"`
	jwt.RegisteredClaims
}

// Principal аутентифицированный вызывающий
type Principal struct {
	Subject      string
	Capabilities []Capability
}

// Has проверяет наличие права
func (p *Principal) Has(c Capability) bool {
	return slices.Contains(p.Capabilities, c)
}

// Authenticator проверяет HS256 bearer-токены
type Authenticator struct {
	secret []byte
	issuer string
	logger Logger
}

func NewAuthenticator(secret, issuer string, logger Logger) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		issuer: issuer,
		logger: logger,
	}
}

// Middleware кладёт Principal в контекст запроса, без токена отвечает 401
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := a.Authenticate(r)
		if err != nil {
			a.logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
			if errors.Is(err, ErrMissingToken) {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// Authenticate разбирает заголовок Authorization
func (a *Authenticator) Authenticate(r *http.Request) (*Principal, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	caps := make([]Capability, 0, len(claims.Caps))
	for _, c := range claims.Caps {
		caps = append(caps, Capability(c))
	}

	return &Principal{Subject: claims.Subject, Capabilities: caps}, nil
}

// IssueToken подписывает токен с правами (локальные запуски и тесты)
func (a *Authenticator) IssueToken(subject string, caps ...Capability) (string, error) {
	raw := make([]string, 0, len(caps))
	for _, c := range caps {
		raw = append(raw, string(c))
	}

	claims := &Claims{
		Caps: raw,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: subject,
			Issuer:  a.issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// RequireCapability пропускает запрос только при наличии права
// Без Principal в контексте (авторизация выключена) запрос пропускается
func RequireCapability(c Capability, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if ok && !principal.Has(c) {
				logger.Warn("Auth: %s %s - subject=%s lacks %s", r.Method, r.URL.Path, principal.Subject, c)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal извлекает Principal из контекста
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}
