package tests

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/sciencewithkalana/portal/core/catalog"
	"github.com/sciencewithkalana/portal/core/enrollment"
	"github.com/sciencewithkalana/portal/core/liveclass"
	"github.com/sciencewithkalana/portal/core/notice"
	testutil "github.com/sciencewithkalana/portal/tests"
)

func Test_catalogApi_query(t *testing.T) {
	resetStore(t)

	path := func(grade int, typ, search string, activeOnly bool) string {
		v := make(url.Values)
		if grade != 0 {
			v.Add("grade", strconv.Itoa(grade))
		}
		if typ != "" {
			v.Add("type", typ)
		}
		if search != "" {
			v.Add("search", search)
		}
		if activeOnly {
			v.Add("active_only", "true")
		}
		return "/v1/classes?" + v.Encode()
	}

	g6 := testutil.CreateClass(t, clsRepo, 6, "Grade 6 Science", 1500, true)
	g10 := testutil.CreateClass(t, clsRepo, 10, "Grade 10 Science", 3000, true)
	retired := testutil.CreateClass(t, clsRepo, 10, "Old Revision Group", 2500, false)

	empty := marshallList(t, []interface{}{}...)

	tests := []httpTest{
		{name: "Get all", path: "/v1/classes", wantData: marshallList(t, g6, g10, retired)},
		{name: "grade=6", path: path(6, "", "", false), wantData: marshallList(t, g6)},
		{name: "grade (unknown)", path: path(9, "", "", false), wantData: empty},
		{name: "type=monthly", path: path(0, "monthly", "", false), wantData: marshallList(t, g6, g10, retired)},
		{name: "type=special", path: path(0, "special", "", false), wantData: empty},
		{name: "search=revision", path: path(0, "", "revision", false), wantData: marshallList(t, retired)},
		{name: "active_only", path: path(0, "", "", true), wantData: marshallList(t, g6, g10)},
		{name: "grade & active_only", path: path(10, "", "", true), wantData: marshallList(t, g10)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_retrieve(t *testing.T) {
	resetStore(t)

	cls := testutil.CreateClass(t, clsRepo, 10, "Grade 10 Science", 3000, true)

	tests := []httpTest{
		{name: "Found", path: "/v1/classes/" + cls.ID, wantData: marshallObj(t, cls)},
		{name: "Not found", path: "/v1/classes/cls-nope", wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "not found"})},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_queryLessons(t *testing.T) {
	resetStore(t)

	usr := register(t, "Nimal Perera", "0771234567", "secret", 10)
	cls := testutil.CreateClass(t, clsRepo, 10, "Grade 10 Science", 3000, true)

	freeLsn, err := clsRepo.AddLesson(cls.ID, catalog.Lesson{Title: "Intro", Order: 1, IsActive: true, IsFree: true})
	if err != nil {
		t.Fatalf("AddLesson(): %v", err)
	}
	paidLsn, err := clsRepo.AddLesson(cls.ID, catalog.Lesson{Title: "Forces", Order: 2, IsActive: true})
	if err != nil {
		t.Fatalf("AddLesson(): %v", err)
	}
	// retired lessons are invisible to everyone
	if _, err = clsRepo.AddLesson(cls.ID, catalog.Lesson{Title: "Old", Order: 3, IsFree: true}); err != nil {
		t.Fatalf("AddLesson(): %v", err)
	}

	testutil.CreatePayment(t, payRepo, usr.ID, cls.ID, enrollment.StatusCompleted, cls.Price, time.Now())

	lessonsPath := "/v1/classes/" + cls.ID + "/lessons"
	tests := []httpTest{
		{name: "Anonymous sees free lessons", path: lessonsPath, wantData: marshallList(t, freeLsn)},
		{name: "Paid student sees all active lessons", path: lessonsPath, token: getToken(t, usr), wantData: marshallList(t, freeLsn, paidLsn)},
		{name: "Unknown class", path: "/v1/classes/cls-nope/lessons", wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "not found"})},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_queryNotices(t *testing.T) {
	resetStore(t)

	expired := time.Now().Add(-24 * time.Hour)
	soon := time.Now().Add(24 * time.Hour)

	evergreen, err := ntcRepo.CreateNotice(notice.Notice{Title: "Welcome", Message: "New classes starting", Type: notice.TypeGeneral, CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("CreateNotice(): %v", err)
	}
	live, err := ntcRepo.CreateNotice(notice.Notice{Title: "Seats open", Message: "Limited seats", Type: notice.TypeUrgent, CreatedAt: time.Now().UTC(), ExpiresAt: &soon})
	if err != nil {
		t.Fatalf("CreateNotice(): %v", err)
	}
	if _, err = ntcRepo.CreateNotice(notice.Notice{Title: "Old", Message: "Gone", Type: notice.TypeGeneral, CreatedAt: time.Now().UTC(), ExpiresAt: &expired}); err != nil {
		t.Fatalf("CreateNotice(): %v", err)
	}

	tt := httpTest{
		name: "Current notices only", method: http.MethodGet, path: "/v1/notices",
		wantCode: http.StatusOK, wantData: marshallList(t, evergreen, live),
	}
	t.Run(tt.name, func(t *testing.T) {
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_catalogApi_queryLiveClasses(t *testing.T) {
	resetStore(t)

	second, err := lvcRepo.CreateLiveClass(liveclass.LiveClass{ClassID: "cls-1", Title: "Chemistry", Date: "2026-09-07", Time: "16:00", IsActive: true})
	if err != nil {
		t.Fatalf("CreateLiveClass(): %v", err)
	}
	first, err := lvcRepo.CreateLiveClass(liveclass.LiveClass{ClassID: "cls-1", Title: "Physics", Date: "2026-09-05", Time: "18:00", IsActive: true})
	if err != nil {
		t.Fatalf("CreateLiveClass(): %v", err)
	}
	if _, err = lvcRepo.CreateLiveClass(liveclass.LiveClass{ClassID: "cls-1", Title: "Cancelled", Date: "2026-09-06", Time: "10:00"}); err != nil {
		t.Fatalf("CreateLiveClass(): %v", err)
	}

	tt := httpTest{
		name: "Active sessions sorted by start", method: http.MethodGet, path: "/v1/live-classes",
		wantCode: http.StatusOK, wantData: marshallList(t, first, second),
	}
	t.Run(tt.name, func(t *testing.T) {
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}
