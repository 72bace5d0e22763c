package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	echoapi "github.com/sciencewithkalana/portal/apps/api/echo"
	"github.com/sciencewithkalana/portal/core/assessment"
	"github.com/sciencewithkalana/portal/core/catalog"
	"github.com/sciencewithkalana/portal/core/enrollment"
	"github.com/sciencewithkalana/portal/core/liveclass"
	"github.com/sciencewithkalana/portal/core/notice"
	"github.com/sciencewithkalana/portal/core/student"
	testutil "github.com/sciencewithkalana/portal/tests"
)

func Test_adminApi_authRequired(t *testing.T) {
	resetStore(t)

	usr := register(t, "Nimal Perera", "0771234567", "secret", 10)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "Admin required", token: getToken(t, usr), wantCode: http.StatusForbidden, wantData: marshallObj(t, errForbidden)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/admin/stats"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminApi_stats(t *testing.T) {
	resetStore(t)

	register(t, "Nimal Perera", "0771234567", "secret", 10)
	register(t, "Kasun Silva", "0719876543", "secret", 11)
	cls := testutil.CreateClass(t, clsRepo, 10, "Grade 10 Science", 3000, true)
	testutil.CreateClass(t, clsRepo, 6, "Old Group", 1500, false)

	testutil.CreatePayment(t, payRepo, "SK-x-1", cls.ID, enrollment.StatusCompleted, 3000, time.Now())
	testutil.CreatePayment(t, payRepo, "SK-x-2", cls.ID, enrollment.StatusCompleted, 2000, time.Now())
	testutil.CreatePayment(t, payRepo, "SK-x-3", cls.ID, enrollment.StatusPending, 3000)
	testutil.CreatePayment(t, payRepo, "SK-x-4", cls.ID, enrollment.StatusFailed, 3000)

	tt := httpTest{
		name: "Aggregates", method: http.MethodGet, path: "/v1/admin/stats", token: getAdminToken(t),
		wantCode: http.StatusOK,
		wantData: marshallObj(t, enrollment.Stats{
			TotalStudents: 2, ActiveClasses: 1, TotalRevenue: 5000, PendingPayments: 1,
		}),
	}
	t.Run(tt.name, func(t *testing.T) {
		req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_adminApi_students(t *testing.T) {
	resetStore(t)
	adminToken := getAdminToken(t)

	usr1 := register(t, "Nimal Perera", "0771234567", "secret", 10)
	usr2 := register(t, "Kasun Silva", "0719876543", "secret", 11)

	t.Run("Query", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/students", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallList(t, usr1, usr2)}, rec)
	})

	t.Run("Search", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/students?search=kasun", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallList(t, usr2)}, rec)
	})

	t.Run("Retrieve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/students/"+usr1.ID, adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, usr1)}, rec)

		req, rec = newAuthRequest(http.MethodGet, "/v1/admin/students/SK-2026-9999", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "not found"})}, rec)
	})

	t.Run("Deactivate", func(t *testing.T) {
		body := marshallObj(t, student.UpdateStudent{IsActive: bPtr(false)})
		req, rec := newAuthRequest(http.MethodPut, "/v1/admin/students/"+usr1.ID, adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var respData student.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if respData.IsActive {
			t.Error("failed! student still active")
		}
	})

	t.Run("Bulk destroy", func(t *testing.T) {
		v := url.Values{"id": []string{usr1.ID, usr2.ID}}
		req, rec := newAuthRequest(http.MethodDelete, "/v1/admin/students?"+v.Encode(), adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}

		left, err := stuRepo.QueryAllStudents()
		if err != nil {
			t.Fatalf("QueryAllStudents(): %v", err)
		}
		if len(left) != 0 {
			t.Errorf("failed! %d students left", len(left))
		}
	})
}

func Test_adminApi_payments(t *testing.T) {
	resetStore(t)
	adminToken := getAdminToken(t)

	usr := register(t, "Nimal Perera", "0771234567", "secret", 10)
	cls := testutil.CreateClass(t, clsRepo, 10, "Grade 10 Science", 3000, true)
	pending := testutil.CreatePayment(t, payRepo, usr.ID, cls.ID, enrollment.StatusPending, cls.Price)
	rejected := testutil.CreatePayment(t, payRepo, usr.ID, cls.ID, enrollment.StatusPending, cls.Price)

	t.Run("Query pending", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/payments/pending", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallList(t, pending, rejected)}, rec)
	})

	t.Run("Approve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/payments/"+pending.ID+"/approve", adminToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var pmt enrollment.Payment
		if err := json.Unmarshal(rec.Body.Bytes(), &pmt); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if pmt.Status != enrollment.StatusCompleted {
			t.Errorf("failed! Status = %q; want %q", pmt.Status, enrollment.StatusCompleted)
		}
		if pmt.PaidAt == nil {
			t.Error("failed! PaidAt not stamped")
		}

		ok, err := enrSvc.HasAccess(usr.ID, cls.ID)
		if err != nil {
			t.Fatalf("HasAccess(): %v", err)
		}
		if !ok {
			t.Error("failed! approval did not grant access")
		}
	})

	t.Run("Reject", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/payments/"+rejected.ID+"/reject", adminToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var pmt enrollment.Payment
		if err := json.Unmarshal(rec.Body.Bytes(), &pmt); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if pmt.Status != enrollment.StatusFailed {
			t.Errorf("failed! Status = %q; want %q", pmt.Status, enrollment.StatusFailed)
		}
	})

	t.Run("Approve unknown", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/payments/pay-nope/approve", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "not found"})}, rec)
	})
}

func Test_adminApi_activateManually(t *testing.T) {
	resetStore(t)
	adminToken := getAdminToken(t)

	usr := register(t, "Nimal Perera", "0771234567", "secret", 10)
	cls := testutil.CreateClass(t, clsRepo, 10, "Grade 10 Science", 3000, true)

	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{
				"studentId": "this field is required",
				"classId":   "this field is required",
			}),
		},
		{
			name: "unknown student", wantCode: http.StatusNotFound,
			body:     marshallObj(t, echoapi.ActivateRequest{StudentID: "SK-2026-9999", ClassID: cls.ID}),
			wantData: marshallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "activated", wantCode: http.StatusOK,
			body:     marshallObj(t, echoapi.ActivateRequest{StudentID: usr.ID, ClassID: cls.ID}),
			wantData: marshallObj(t, echoapi.SuccessResponse{Success: "Student activated for class."}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/admin/activate"
		tt.token = adminToken

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// the override grants access without any payment
	ok, err := enrSvc.HasAccess(usr.ID, cls.ID)
	if err != nil {
		t.Fatalf("HasAccess(): %v", err)
	}
	if !ok {
		t.Error("failed! override did not grant access")
	}
	payments, err := payRepo.QueryPaymentsByStudent(usr.ID)
	if err != nil {
		t.Fatalf("QueryPaymentsByStudent(): %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("failed! override fabricated %d payments", len(payments))
	}
}

func Test_adminApi_syncEnrollments(t *testing.T) {
	resetStore(t)

	usr := register(t, "Nimal Perera", "0771234567", "secret", 10)
	cls := testutil.CreateClass(t, clsRepo, 10, "Grade 10 Science", 3000, true)
	testutil.CreatePayment(t, payRepo, usr.ID, cls.ID, enrollment.StatusCompleted, cls.Price, time.Now())

	req, rec := newAuthRequest(http.MethodPost, "/v1/admin/sync-enrollments", getAdminToken(t))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marshallObj(t, echoapi.SuccessResponse{Success: "Enrollments rebuilt from completed payments."}),
	}, rec)

	got, err := clsRepo.GetClassByID(cls.ID)
	if err != nil {
		t.Fatalf("GetClassByID(): %v", err)
	}
	if len(got.EnrolledStudents) != 1 || got.EnrolledStudents[0] != usr.ID {
		t.Errorf("failed! EnrolledStudents = %v", got.EnrolledStudents)
	}
}

func Test_adminApi_classes(t *testing.T) {
	resetStore(t)
	adminToken := getAdminToken(t)

	var cls catalog.Class

	t.Run("Create", func(t *testing.T) {
		body := marshallObj(t, catalog.NewClass{
			Grade: 10, Name: "Grade 10 Science", NameSinhala: "10 ශ්‍රේණිය විද්‍යාව",
			Price: 3000, Type: catalog.TypeMonthly,
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/classes", adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &cls); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if !cls.IsActive {
			t.Error("failed! new class not active")
		}
	})

	t.Run("Create requires type", func(t *testing.T) {
		body := marshallObj(t, catalog.NewClass{Grade: 10, Name: "X", Price: 3000, Type: "weekly"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/classes", adminToken, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"type": "type must be one of [monthly special]"}),
		}, rec)
	})

	t.Run("Update", func(t *testing.T) {
		price := 3500.0
		body := marshallObj(t, catalog.UpdateClass{Price: &price, IsActive: bPtr(false)})
		req, rec := newAuthRequest(http.MethodPut, "/v1/admin/classes/"+cls.ID, adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var respData catalog.Class
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if respData.Price != 3500 || respData.IsActive || respData.Name != cls.Name {
			t.Errorf("failed! got %+v", respData)
		}
	})

	t.Run("Lessons", func(t *testing.T) {
		body := marshallObj(t, catalog.NewLesson{
			ClassID: cls.ID, Title: "Forces", YoutubeURL: "https://www.youtube.com/embed/abc", Order: 1,
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/lessons", adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var lsn catalog.Lesson
		if err := json.Unmarshal(rec.Body.Bytes(), &lsn); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if !lsn.IsActive {
			t.Error("failed! new lesson not active")
		}

		// retitle and free it up
		update := marshallObj(t, echoapi.UpdateLessonRequest{
			Lesson: catalog.Lesson{Title: "Forces & Motion"}, IsFree: bPtr(true),
		})
		req, rec = newAuthRequest(http.MethodPut, "/v1/admin/classes/"+cls.ID+"/lessons/"+lsn.ID, adminToken, update)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &lsn); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if lsn.Title != "Forces & Motion" || !lsn.IsFree {
			t.Errorf("failed! got %+v", lsn)
		}

		req, rec = newAuthRequest(http.MethodDelete, "/v1/admin/classes/"+cls.ID+"/lessons/"+lsn.ID, adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("Bulk destroy", func(t *testing.T) {
		v := url.Values{"id": []string{cls.ID}}
		req, rec := newAuthRequest(http.MethodDelete, "/v1/admin/classes?"+v.Encode(), adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
	})
}

func Test_adminApi_papers(t *testing.T) {
	resetStore(t)
	adminToken := getAdminToken(t)

	usr := register(t, "Nimal Perera", "0771234567", "secret", 10)

	var ppr assessment.Paper

	t.Run("Create", func(t *testing.T) {
		body := marshallObj(t, assessment.NewPaper{ClassID: "cls-1", Name: "Term 1 Paper", MaxMarks: 100})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/papers", adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &ppr); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
	})

	t.Run("Record mark", func(t *testing.T) {
		body := marshallObj(t, echoapi.RecordMarkRequest{StudentID: usr.ID, Marks: 72})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/papers/"+ppr.ID+"/marks", adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var respData assessment.Paper
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if len(respData.StudentMarks) != 1 || respData.StudentMarks[0].Marks != 72 {
			t.Errorf("failed! StudentMarks = %v", respData.StudentMarks)
		}
	})

	t.Run("Query by class", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/papers?classId=cls-nope", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallList(t, []interface{}{}...)}, rec)
	})

	t.Run("Bulk destroy", func(t *testing.T) {
		v := url.Values{"id": []string{ppr.ID}}
		req, rec := newAuthRequest(http.MethodDelete, "/v1/admin/papers?"+v.Encode(), adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
	})
}

func Test_adminApi_notices(t *testing.T) {
	resetStore(t)
	adminToken := getAdminToken(t)

	expired := time.Now().Add(-24 * time.Hour)
	old, err := ntcRepo.CreateNotice(notice.Notice{Title: "Old", Message: "Gone", Type: notice.TypeGeneral, CreatedAt: time.Now().UTC(), ExpiresAt: &expired})
	if err != nil {
		t.Fatalf("CreateNotice(): %v", err)
	}

	var ntc notice.Notice

	t.Run("Create", func(t *testing.T) {
		body := marshallObj(t, notice.NewNotice{Title: "Welcome", Message: "New classes", Type: notice.TypeGeneral})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/notices", adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &ntc); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
	})

	t.Run("Query includes expired", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/notices", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallList(t, old, ntc)}, rec)
	})

	t.Run("Bulk destroy", func(t *testing.T) {
		v := url.Values{"id": []string{old.ID, ntc.ID}}
		req, rec := newAuthRequest(http.MethodDelete, "/v1/admin/notices?"+v.Encode(), adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
	})
}

func Test_adminApi_liveClasses(t *testing.T) {
	resetStore(t)
	adminToken := getAdminToken(t)

	var lc liveclass.LiveClass

	t.Run("Create", func(t *testing.T) {
		body := marshallObj(t, liveclass.NewLiveClass{
			ClassID: "cls-1", Title: "Physics", Date: "2026-09-05", Time: "18:00",
			MeetingLink: "https://zoom.us/j/123",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/live-classes", adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &lc); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if !lc.IsActive {
			t.Error("failed! new session not active")
		}
	})

	t.Run("Query", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/live-classes", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallList(t, lc)}, rec)
	})

	t.Run("Bulk destroy", func(t *testing.T) {
		v := url.Values{"id": []string{lc.ID}}
		req, rec := newAuthRequest(http.MethodDelete, "/v1/admin/live-classes?"+v.Encode(), adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
	})
}
