package echoapi

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/sciencewithkalana/portal/core"
	"github.com/sciencewithkalana/portal/core/student"
)

var (
	// appJWTConfig is the default JWT auth middleware config. The signing key
	// is set from configuration in NewServer.
	appJWTConfig = middleware.JWTConfig{
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "studentToken",
		Claims:        new(Claims),
	}
	contextStudentKey = "student"

	adminSubject = "admin"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	FullName     string `json:"fullName,omitempty"`
	Grade        int    `json:"grade,omitempty"`
	IsStudent    bool   `json:"is_student,omitempty"` // -> STUDENT PORTAL
	IsAdmin      bool   `json:"is_admin,omitempty"`   // -> ADMIN CONSOLE
}

// GetStudentClaims builds the claims issued to a logged-in student.
func GetStudentClaims(usr student.Student, conf *core.Config, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   usr.ID,
			Audience:  "Portal",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		FullName:     usr.FullName,
		Grade:        usr.Grade,
		IsStudent:    true,
	}
}

// GetAdminClaims builds the claims issued to the admin console session.
func GetAdminClaims(conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   adminSubject,
			Audience:  "Portal",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		OrigIssuedAt: now.Unix(),
		IsAdmin:      true,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// optionalContextClaims parses the Authorization header directly so public
// endpoints can recognise a logged-in student without requiring one.
func optionalContextClaims(ctx echo.Context) (Claims, bool) {
	if claims, err := getContextClaims(ctx); err == nil {
		return claims, true
	}

	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return Claims{}, false
	}
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
		return appJWTConfig.SigningKey, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, false
	}
	return *claims, true
}

func getContextStudent(ctx echo.Context, svc *student.Service, clms ...Claims) (student.Student, error) {
	if usr, ok := ctx.Get(contextStudentKey).(student.Student); ok {
		return usr, nil
	}

	var claims Claims
	var err error
	if len(clms) > 0 {
		claims = clms[0]
	} else {
		claims, err = getContextClaims(ctx)
		if err != nil {
			return student.Student{}, errors.Wrap(err, "getting context claims")
		}
	}
	if !claims.IsStudent {
		return student.Student{}, errUnauthorized
	}

	usr, err := svc.GetByID(claims.Subject)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "finding student by ID")
	}
	ctx.Set(contextStudentKey, usr)
	return usr, nil
}

func refreshToken(ctx echo.Context, stuSvc *student.Service, conf *core.Config) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	var newClaims *Claims
	if claims.IsAdmin {
		newClaims = GetAdminClaims(conf)
		newClaims.OrigIssuedAt = claims.OrigIssuedAt
	} else {
		usr, err := getContextStudent(ctx, stuSvc, claims)
		if err != nil {
			return "", errors.Wrap(err, "getting context student")
		}
		if !usr.IsActive {
			return "", errAccountDeactivated
		}
		newClaims = GetStudentClaims(usr, conf, claims.OrigIssuedAt)
	}

	token, err := GenerateToken(newClaims)
	return token, errors.Wrap(err, "generating token")
}
