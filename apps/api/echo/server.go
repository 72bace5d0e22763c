package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/sciencewithkalana/portal/core"
	"github.com/sciencewithkalana/portal/core/assessment"
	"github.com/sciencewithkalana/portal/core/auth"
	"github.com/sciencewithkalana/portal/core/catalog"
	"github.com/sciencewithkalana/portal/core/enrollment"
	"github.com/sciencewithkalana/portal/core/liveclass"
	"github.com/sciencewithkalana/portal/core/notice"
	"github.com/sciencewithkalana/portal/core/student"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		StudentSvc    *student.Service
		AuthSvc       *auth.Service
		CatalogSvc    *catalog.Service
		EnrollmentSvc *enrollment.Service
		AssessmentSvc *assessment.Service
		NoticeSvc     *notice.Service
		LiveClassSvc  *liveclass.Service

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	appJWTConfig.SigningKey = []byte(opts.Conf.SecretKey)
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, func() {
		_ = s.Stop(context.Background())
	})
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerStudentAPI(v1, jwt, s.opts)
	registerCatalogAPI(v1, jwt, s.opts)
	registerEnrollmentAPI(v1, jwt, s.opts)
	registerAdminAPI(v1, jwt, s.opts)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Conf.Server.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Science with Kalana API!")
}
