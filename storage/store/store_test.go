package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sciencewithkalana/portal/core/student"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	// absent slot leaves dst untouched
	dst := map[string]int{"kept": 1}
	ok, err := s.Load("missing", &dst)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, map[string]int{"kept": 1}, dst)

	assert.NoError(t, s.Save("counts", map[string]int{"a": 1, "b": 2}))
	got := map[string]int{}
	ok, err = s.Load("counts", &got)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, got)

	// save replaces the whole slot
	assert.NoError(t, s.Save("counts", map[string]int{"c": 3}))
	got = map[string]int{}
	_, err = s.Load("counts", &got)
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"c": 3}, got)

	assert.NoError(t, s.Delete("counts"))
	ok, err = s.Load("counts", &got)
	assert.NoError(t, err)
	assert.False(t, ok)

	// deleting an absent slot is fine
	assert.NoError(t, s.Delete("counts"))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	assert.NoError(t, err)

	ok, err := s.Load("missing", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Save(KeyIsAdmin, true))
	if _, err = os.Stat(filepath.Join(dir, KeyIsAdmin+".json")); err != nil {
		t.Fatalf("slot file not written: %v", err)
	}

	// a second store over the same dir sees the data
	s2, err := NewFileStore(dir)
	assert.NoError(t, err)
	var isAdmin bool
	ok, err = s2.Load(KeyIsAdmin, &isAdmin)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, isAdmin)

	assert.NoError(t, s.Delete(KeyIsAdmin))
	ok, err = s.Load(KeyIsAdmin, &isAdmin)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, s.Delete(KeyIsAdmin))
}

func TestLoadSlice_seeding(t *testing.T) {
	s := NewMemoryStore()

	// first read of an absent slot writes the defaults back
	var classes []map[string]interface{}
	repo := NewClassRepository(s)
	seeded, err := repo.QueryAllClasses()
	assert.NoError(t, err)
	assert.NotEmpty(t, seeded)
	ok, err := s.Load(KeyClasses, &classes)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, classes, len(seeded))

	// a present-but-empty slot is not reseeded
	s2 := NewMemoryStore()
	assert.NoError(t, s2.Save(KeyClasses, []string{}))
	empty, err := NewClassRepository(s2).QueryAllClasses()
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNextID(t *testing.T) {
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 100; i++ {
		id := nextID("x")
		assert.False(t, seen[id], "duplicate id %s", id)
		assert.True(t, id > prev)
		seen[id] = true
		prev = id
	}
}

func TestNextID_frozenClock(t *testing.T) {
	defer func() { NowFunc = time.Now }()
	NowFunc = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }

	// ids keep increasing even when the clock does not
	a, b := nextID("pay"), nextID("pay")
	assert.NotEqual(t, a, b)
	assert.True(t, b > a)
}

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(NewMemoryStore())

	sess, err := repo.GetSession()
	assert.NoError(t, err)
	assert.Nil(t, sess.Student)
	assert.False(t, sess.IsAdmin)

	usr := student.Student{ID: "SK-2026-0001", FullName: "Nimal Perera"}
	assert.NoError(t, repo.SetStudent(usr))
	sess, err = repo.GetSession()
	assert.NoError(t, err)
	assert.Equal(t, usr.ID, sess.Student.ID)
	assert.False(t, sess.IsAdmin)

	// an admin session displaces the student one
	assert.NoError(t, repo.SetAdmin())
	sess, err = repo.GetSession()
	assert.NoError(t, err)
	assert.Nil(t, sess.Student)
	assert.True(t, sess.IsAdmin)

	// and vice versa
	assert.NoError(t, repo.SetStudent(usr))
	sess, err = repo.GetSession()
	assert.NoError(t, err)
	assert.NotNil(t, sess.Student)
	assert.False(t, sess.IsAdmin)

	assert.NoError(t, repo.ClearSession())
	sess, err = repo.GetSession()
	assert.NoError(t, err)
	assert.Nil(t, sess.Student)
	assert.False(t, sess.IsAdmin)
}

func TestStudentRepository_credentialRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	repo := NewStudentRepository(s)

	usr, err := repo.CreateStudent(student.Student{
		FullName:     "Nimal Perera",
		MobileNumber: "0771234567",
		Grade:        10,
		Password:     "secret",
		IsActive:     true,
	})
	assert.NoError(t, err)

	// a fresh repository over the same store still sees the credential
	got, err := NewStudentRepository(s).GetStudentByID(usr.ID)
	assert.NoError(t, err)
	assert.Equal(t, "secret", got.Password)

	// the credential serializes in the slot but never in the public model
	var raw json.RawMessage
	ok, err := s.Load(KeyStudents, &raw)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, string(raw), `"password":"secret"`)

	public, err := json.Marshal(got)
	assert.NoError(t, err)
	assert.NotContains(t, string(public), "secret")

	// updates keep it stored too
	_, err = repo.UpdateStudent(student.Student{ID: usr.ID, Password: "changed"}, nil)
	assert.NoError(t, err)
	got, err = repo.GetStudentByID(usr.ID)
	assert.NoError(t, err)
	assert.Equal(t, "changed", got.Password)
}
