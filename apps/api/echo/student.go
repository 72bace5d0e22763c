package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sciencewithkalana/portal/core"
	"github.com/sciencewithkalana/portal/core/auth"
	"github.com/sciencewithkalana/portal/core/student"
)

type studentApi struct {
	opts *Options
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := studentApi{opts: opts}

	sg := g.Group("/students")

	// un-authed endpoints
	sg.POST("/register", api.register)
	sg.POST("/login", api.login)
	sg.POST("/admin-login", api.adminLogin)

	// authed endpoints
	ag := sg.Group("", jwt)
	ag.POST("/token-refresh", api.refreshToken)
	ag.POST("/logout", api.logout)
	ag.GET("/me", api.me, studentMiddleware())
	ag.PUT("/me", api.updateMe, studentMiddleware())
}

// Handlers

func (api *studentApi) register(ctx echo.Context) error {
	var data student.Registration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Registration")
	}

	res, err := api.opts.StudentSvc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering student")
	}
	if !res.Success {
		return ctx.JSON(http.StatusBadRequest, res)
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *studentApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	usr, ok := api.opts.AuthSvc.Login(data.StudentID, data.Password)
	if !ok {
		// single failure message; callers cannot tell which check failed
		return core.NewValidationError(errors.New(auth.FailureMessage))
	}

	token, err := GenerateToken(GetStudentClaims(usr, api.opts.Conf))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Student: &usr})
}

func (api *studentApi) adminLogin(ctx echo.Context) error {
	var data AdminLoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AdminLoginRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	if !api.opts.AuthSvc.AdminLogin(data.Username, data.Password) {
		return core.NewValidationError(errors.New(auth.FailureMessage))
	}

	token, err := GenerateToken(GetAdminClaims(api.opts.Conf))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *studentApi) logout(ctx echo.Context) error {
	api.opts.AuthSvc.Logout()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) me(ctx echo.Context) error {
	usr, err := getContextStudent(ctx, api.opts.StudentSvc)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *studentApi) updateMe(ctx echo.Context) error {
	usr, err := getContextStudent(ctx, api.opts.StudentSvc)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	// activation is admin-only
	data.IsActive = nil

	usr, err = api.opts.StudentSvc.Update(usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *studentApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.opts.StudentSvc, api.opts.Conf)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

type (
	LoginRequest struct {
		StudentID string `json:"studentId" validate:"required"`
		Password  string `json:"password" validate:"required"`
	}

	AdminLoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token   string           `json:"token"`
		Student *student.Student `json:"student,omitempty"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.StudentID = core.CleanString(lr.StudentID)
	return validate.Struct(lr)
}

func (ar *AdminLoginRequest) Validate(validate *validator.Validate) error {
	ar.Username = core.CleanString(ar.Username, true /* lower */)
	return validate.Struct(ar)
}
