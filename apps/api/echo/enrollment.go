package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sciencewithkalana/portal/core/catalog"
	"github.com/sciencewithkalana/portal/core/enrollment"
)

type enrollmentApi struct {
	opts *Options
}

func registerEnrollmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := enrollmentApi{opts: opts}

	eg := g.Group("/enrollment", jwt, studentMiddleware())
	eg.POST("/payments", api.submitPayment)
	eg.GET("/payments", api.queryMyPayments)
	eg.GET("/classes", api.queryMyClasses)
	eg.GET("/classes/:id/access", api.checkAccess)
	eg.GET("/marks", api.queryMyMarks)
}

// Handlers

// submitPayment records a payment for the logged-in student. The studentId in
// the body is ignored; the token is authoritative.
func (api *enrollmentApi) submitPayment(ctx echo.Context) error {
	usr, err := getContextStudent(ctx, api.opts.StudentSvc)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	var data enrollment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	data.StudentID = usr.ID
	if err := api.opts.Validate.Struct(&data); err != nil {
		return err
	}

	pmt, err := api.opts.EnrollmentSvc.Submit(data)
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "submitting payment")
	}
	return ctx.JSON(http.StatusCreated, pmt)
}

func (api *enrollmentApi) queryMyPayments(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	payments, err := api.opts.EnrollmentSvc.QueryByStudent(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []enrollment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *enrollmentApi) queryMyClasses(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	classes, err := api.opts.EnrollmentSvc.AccessibleClasses(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying accessible classes")
	}
	if classes == nil {
		classes = []catalog.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *enrollmentApi) checkAccess(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	ok, err := api.opts.EnrollmentSvc.HasAccess(claims.Subject, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "checking access")
	}
	return ctx.JSON(http.StatusOK, AccessResponse{HasAccess: ok})
}

// queryMyMarks lists the logged-in student's marks across all papers.
func (api *enrollmentApi) queryMyMarks(ctx echo.Context) error {
	usr, err := getContextStudent(ctx, api.opts.StudentSvc)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	papers, err := api.opts.AssessmentSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying papers")
	}

	marks := []StudentMarkResponse{}
	for _, ppr := range papers {
		for _, mark := range ppr.StudentMarks {
			if mark.StudentID == usr.ID {
				marks = append(marks, StudentMarkResponse{
					PaperID:   ppr.ID,
					PaperName: ppr.Name,
					ClassID:   ppr.ClassID,
					Marks:     mark.Marks,
					MaxMarks:  ppr.MaxMarks,
				})
			}
		}
	}
	return ctx.JSON(http.StatusOK, marks)
}

type (
	AccessResponse struct {
		HasAccess bool `json:"hasAccess"`
	}

	StudentMarkResponse struct {
		PaperID   string `json:"paperId"`
		PaperName string `json:"paperName"`
		ClassID   string `json:"classId"`
		Marks     int    `json:"marks"`
		MaxMarks  int    `json:"maxMarks"`
	}
)
