package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sciencewithkalana/portal/core/catalog"
	"github.com/sciencewithkalana/portal/core/liveclass"
	"github.com/sciencewithkalana/portal/core/notice"
)

type catalogApi struct {
	opts *Options
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := catalogApi{opts: opts}

	cg := g.Group("/classes")

	// public: the catalog and free lessons are browsable without an account
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.GET("/:id/lessons", api.queryLessons)

	g.GET("/notices", api.queryNotices)
	g.GET("/live-classes", api.queryLiveClasses)
}

// Handlers

func (api *catalogApi) query(ctx echo.Context) error {
	filter := new(catalog.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []catalog.Class{})
	}
	filter.Clean()

	classes, err := api.opts.CatalogSvc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []catalog.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *catalogApi) retrieve(ctx echo.Context) error {
	cls, err := api.opts.CatalogSvc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding class by ID")
	}
	return ctx.JSON(http.StatusOK, cls)
}

// queryLessons lists the lessons the caller may play. Anonymous visitors and
// students without paid access only see free lessons.
func (api *catalogApi) queryLessons(ctx echo.Context) error {
	var studentID string
	if claims, ok := optionalContextClaims(ctx); ok && claims.IsStudent {
		studentID = claims.Subject
	}

	lessons, err := api.opts.EnrollmentSvc.VisibleLessons(studentID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying visible lessons")
	}
	if lessons == nil {
		lessons = []catalog.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *catalogApi) queryNotices(ctx echo.Context) error {
	notices, err := api.opts.NoticeSvc.QueryCurrent()
	if err != nil {
		return errors.Wrap(err, "querying notices")
	}
	if notices == nil {
		notices = []notice.Notice{}
	}
	return ctx.JSON(http.StatusOK, notices)
}

func (api *catalogApi) queryLiveClasses(ctx echo.Context) error {
	sessions, err := api.opts.LiveClassSvc.QueryActive()
	if err != nil {
		return errors.Wrap(err, "querying live classes")
	}
	if sessions == nil {
		sessions = []liveclass.LiveClass{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}
