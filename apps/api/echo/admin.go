package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sciencewithkalana/portal/core/assessment"
	"github.com/sciencewithkalana/portal/core/catalog"
	"github.com/sciencewithkalana/portal/core/enrollment"
	"github.com/sciencewithkalana/portal/core/liveclass"
	"github.com/sciencewithkalana/portal/core/notice"
	"github.com/sciencewithkalana/portal/core/student"
)

type adminApi struct {
	opts *Options
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := adminApi{opts: opts}

	ag := g.Group("/admin", jwt, adminMiddleware())

	ag.GET("/stats", api.stats)

	// students
	ag.GET("/students", api.queryStudents)
	ag.GET("/students/:id", api.retrieveStudent)
	ag.PUT("/students/:id", api.updateStudent)
	ag.DELETE("/students", api.destroyStudents)

	// payments
	ag.GET("/payments", api.queryPayments)
	ag.GET("/payments/pending", api.queryPendingPayments)
	ag.POST("/payments/:id/approve", api.approvePayment)
	ag.POST("/payments/:id/reject", api.rejectPayment)
	ag.POST("/activate", api.activateManually)
	ag.POST("/sync-enrollments", api.syncEnrollments)

	// catalog
	ag.POST("/classes", api.createClass)
	ag.PUT("/classes/:id", api.updateClass)
	ag.DELETE("/classes", api.destroyClasses)
	ag.POST("/lessons", api.addLesson)
	ag.PUT("/classes/:id/lessons/:lessonId", api.updateLesson)
	ag.DELETE("/classes/:id/lessons/:lessonId", api.destroyLesson)

	// papers & marks
	ag.GET("/papers", api.queryPapers)
	ag.POST("/papers", api.createPaper)
	ag.POST("/papers/:id/marks", api.recordMark)
	ag.DELETE("/papers", api.destroyPapers)

	// notices & live classes
	ag.GET("/notices", api.queryNotices)
	ag.POST("/notices", api.createNotice)
	ag.DELETE("/notices", api.destroyNotices)
	ag.GET("/live-classes", api.queryLiveClasses)
	ag.POST("/live-classes", api.createLiveClass)
	ag.DELETE("/live-classes", api.destroyLiveClasses)
}

// Handlers

func (api *adminApi) stats(ctx echo.Context) error {
	stats, err := api.opts.EnrollmentSvc.ComputeStats()
	if err != nil {
		return errors.Wrap(err, "computing stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

// students

func (api *adminApi) queryStudents(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Student{})
	}
	filter.Clean()

	students, err := api.opts.StudentSvc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *adminApi) retrieveStudent(ctx echo.Context) error {
	usr, err := api.opts.StudentSvc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *adminApi) updateStudent(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	usr, err := api.opts.StudentSvc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *adminApi) destroyStudents(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.opts.StudentSvc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// payments

func (api *adminApi) queryPayments(ctx echo.Context) error {
	payments, err := api.opts.EnrollmentSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []enrollment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *adminApi) queryPendingPayments(ctx echo.Context) error {
	payments, err := api.opts.EnrollmentSvc.QueryPending()
	if err != nil {
		return errors.Wrap(err, "querying pending payments")
	}
	if payments == nil {
		payments = []enrollment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *adminApi) approvePayment(ctx echo.Context) error {
	pmt, err := api.opts.EnrollmentSvc.Approve(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == enrollment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "approving payment")
	}
	return ctx.JSON(http.StatusOK, pmt)
}

func (api *adminApi) rejectPayment(ctx echo.Context) error {
	pmt, err := api.opts.EnrollmentSvc.Reject(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == enrollment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "rejecting payment")
	}
	return ctx.JSON(http.StatusOK, pmt)
}

func (api *adminApi) activateManually(ctx echo.Context) error {
	var data ActivateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ActivateRequest")
	}
	if err := api.opts.Validate.Struct(&data); err != nil {
		return err
	}

	if err := api.opts.EnrollmentSvc.ActivateManually(data.StudentID, data.ClassID); err != nil {
		cause := errors.Cause(err)
		if cause == student.ErrNotFound || cause == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "activating manually")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Student activated for class."})
}

func (api *adminApi) syncEnrollments(ctx echo.Context) error {
	if err := api.opts.EnrollmentSvc.SyncEnrollments(); err != nil {
		return errors.Wrap(err, "syncing enrollments")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Enrollments rebuilt from completed payments."})
}

// catalog

func (api *adminApi) createClass(ctx echo.Context) error {
	var data catalog.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	data.Clean()
	if err := api.opts.Validate.Struct(&data); err != nil {
		return err
	}

	cls, err := api.opts.CatalogSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *adminApi) updateClass(ctx echo.Context) error {
	var data catalog.UpdateClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}

	cls, err := api.opts.CatalogSvc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *adminApi) destroyClasses(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.opts.CatalogSvc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting classes")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) addLesson(ctx echo.Context) error {
	var data catalog.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	data.Clean()
	if err := api.opts.Validate.Struct(&data); err != nil {
		return err
	}

	lsn, err := api.opts.CatalogSvc.AddLesson(data)
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "adding lesson")
	}
	return ctx.JSON(http.StatusCreated, lsn)
}

func (api *adminApi) updateLesson(ctx echo.Context) error {
	var data UpdateLessonRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLessonRequest")
	}
	data.Lesson.ID = ctx.Param("lessonId")

	lsn, err := api.opts.CatalogSvc.UpdateLesson(ctx.Param("id"), data.Lesson, data.IsActive, data.IsFree)
	if err != nil {
		cause := errors.Cause(err)
		if cause == catalog.ErrNotFound || cause == catalog.ErrLessonNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating lesson")
	}
	return ctx.JSON(http.StatusOK, lsn)
}

func (api *adminApi) destroyLesson(ctx echo.Context) error {
	if err := api.opts.CatalogSvc.DeleteLesson(ctx.Param("id"), ctx.Param("lessonId")); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// papers & marks

func (api *adminApi) queryPapers(ctx echo.Context) error {
	if classID := ctx.QueryParam("classId"); classID != "" {
		papers, err := api.opts.AssessmentSvc.QueryByClass(classID)
		if err != nil {
			return errors.Wrap(err, "querying papers by class")
		}
		return ctx.JSON(http.StatusOK, papers)
	}

	papers, err := api.opts.AssessmentSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying papers")
	}
	if papers == nil {
		papers = []assessment.Paper{}
	}
	return ctx.JSON(http.StatusOK, papers)
}

func (api *adminApi) createPaper(ctx echo.Context) error {
	var data assessment.NewPaper
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPaper")
	}
	data.Clean()
	if err := api.opts.Validate.Struct(&data); err != nil {
		return err
	}

	ppr, err := api.opts.AssessmentSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating paper")
	}
	return ctx.JSON(http.StatusCreated, ppr)
}

func (api *adminApi) recordMark(ctx echo.Context) error {
	var data RecordMarkRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RecordMarkRequest")
	}
	if err := api.opts.Validate.Struct(&data); err != nil {
		return err
	}

	ppr, err := api.opts.AssessmentSvc.RecordMark(ctx.Param("id"), data.StudentID, data.Marks)
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "recording mark")
	}
	return ctx.JSON(http.StatusOK, ppr)
}

func (api *adminApi) destroyPapers(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.opts.AssessmentSvc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting papers")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// notices & live classes

func (api *adminApi) queryNotices(ctx echo.Context) error {
	// includes expired notices
	notices, err := api.opts.NoticeSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying notices")
	}
	if notices == nil {
		notices = []notice.Notice{}
	}
	return ctx.JSON(http.StatusOK, notices)
}

func (api *adminApi) createNotice(ctx echo.Context) error {
	var data notice.NewNotice
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotice")
	}
	data.Clean()
	if err := api.opts.Validate.Struct(&data); err != nil {
		return err
	}

	ntc, err := api.opts.NoticeSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating notice")
	}
	return ctx.JSON(http.StatusCreated, ntc)
}

func (api *adminApi) destroyNotices(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.opts.NoticeSvc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting notices")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) queryLiveClasses(ctx echo.Context) error {
	sessions, err := api.opts.LiveClassSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying live classes")
	}
	if sessions == nil {
		sessions = []liveclass.LiveClass{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *adminApi) createLiveClass(ctx echo.Context) error {
	var data liveclass.NewLiveClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLiveClass")
	}
	data.Clean()
	if err := api.opts.Validate.Struct(&data); err != nil {
		return err
	}

	lc, err := api.opts.LiveClassSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating live class")
	}
	return ctx.JSON(http.StatusCreated, lc)
}

func (api *adminApi) destroyLiveClasses(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.opts.LiveClassSvc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting live classes")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	DestroyMultipleRequest struct {
		IDs []string `query:"id"`
	}

	ActivateRequest struct {
		StudentID string `json:"studentId" validate:"required"`
		ClassID   string `json:"classId" validate:"required"`
	}

	RecordMarkRequest struct {
		StudentID string `json:"studentId" validate:"required"`
		Marks     int    `json:"marks" validate:"min=0"`
	}

	UpdateLessonRequest struct {
		catalog.Lesson
		IsActive *bool `json:"isActive"`
		IsFree   *bool `json:"isFree"`
	}
)
