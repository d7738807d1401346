package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateCourseAndGet(t *testing.T) {
	db := testDB(t)
	ctx := testCtx(t)
	courses := NewCourseRepository(db)

	annID := seedUser(t, ctx, db, "ann", RoleTeacher)

	id, err := courses.CreateCourse(ctx, "Mathematics", "Linear algebra and calculus.", annID)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}

	c, err := courses.GetCourseByID(ctx, id)
	if err != nil {
		t.Fatalf("GetCourseByID() failed: %v", err)
	}
	if c == nil {
		t.Fatal("GetCourseByID() = nil for a course that was just created")
	}
	if c.Title != "Mathematics" || c.Description != "Linear algebra and calculus." {
		t.Errorf("GetCourseByID() = %+v, want the created title and description", c)
	}
	if ExternalID(c.TeacherID) != annID {
		t.Errorf("GetCourseByID() TeacherID = %s, want %s", ExternalID(c.TeacherID), annID)
	}

	missing, err := courses.GetCourseByID(ctx, primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("GetCourseByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("GetCourseByID() = %+v, want nil for an unknown id", missing)
	}
}

func TestGetCourseWithTeacher(t *testing.T) {
	db := testDB(t)
	ctx := testCtx(t)
	courses := NewCourseRepository(db)

	annID := seedUser(t, ctx, db, "ann", RoleTeacher)
	mathID := seedCourse(t, ctx, db, annID, "Mathematics")

	c, err := courses.GetCourseWithTeacher(ctx, mathID)
	if err != nil {
		t.Fatalf("GetCourseWithTeacher() failed: %v", err)
	}
	if c == nil {
		t.Fatal("GetCourseWithTeacher() = nil for an existing course")
	}
	if c.Title != "Mathematics" || c.TeacherName != "ann" {
		t.Errorf("GetCourseWithTeacher() = %+v, want Mathematics taught by ann", c)
	}

	missing, err := courses.GetCourseWithTeacher(ctx, primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("GetCourseWithTeacher() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("GetCourseWithTeacher() = %+v, want nil for an unknown id", missing)
	}
}

func TestGetTeacherCourses(t *testing.T) {
	db := testDB(t)
	ctx := testCtx(t)
	courses := NewCourseRepository(db)

	annID := seedUser(t, ctx, db, "ann", RoleTeacher)
	tomID := seedUser(t, ctx, db, "tom", RoleTeacher)
	mathID := seedCourse(t, ctx, db, annID, "Mathematics")
	seedCourse(t, ctx, db, annID, "History")
	seedCourse(t, ctx, db, tomID, "Drama")

	bobID := seedUser(t, ctx, db, "bob", RoleStudent)
	carolID := seedUser(t, ctx, db, "carol", RoleStudent)
	enroll(t, ctx, db, bobID, mathID)
	enroll(t, ctx, db, carolID, mathID)

	got, err := courses.GetTeacherCourses(ctx, annID)
	if err != nil {
		t.Fatalf("GetTeacherCourses() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetTeacherCourses() returned %d courses, want 2", len(got))
	}
	// Creation order, not alphabetical.
	if got[0].Title != "Mathematics" || got[1].Title != "History" {
		t.Errorf("GetTeacherCourses() order = [%s, %s], want [Mathematics, History]", got[0].Title, got[1].Title)
	}
	if got[0].EnrollmentCount != 2 || got[1].EnrollmentCount != 0 {
		t.Errorf("GetTeacherCourses() counts = [%d, %d], want [2, 0]", got[0].EnrollmentCount, got[1].EnrollmentCount)
	}

	// The count is computed per call, so a new enrollment shows up on the
	// next read with no write to the course document.
	daveID := seedUser(t, ctx, db, "dave", RoleStudent)
	enroll(t, ctx, db, daveID, mathID)

	got, err = courses.GetTeacherCourses(ctx, annID)
	if err != nil {
		t.Fatalf("GetTeacherCourses() failed: %v", err)
	}
	if got[0].EnrollmentCount != 3 {
		t.Errorf("GetTeacherCourses() count after enrolling = %d, want 3", got[0].EnrollmentCount)
	}
}

func TestStudentAndAvailableCoursesPartition(t *testing.T) {
	db := testDB(t)
	ctx := testCtx(t)
	courses := NewCourseRepository(db)

	annID := seedUser(t, ctx, db, "ann", RoleTeacher)
	tomID := seedUser(t, ctx, db, "tom", RoleTeacher)
	algebraID := seedCourse(t, ctx, db, annID, "Algebra")
	seedCourse(t, ctx, db, annID, "Biology")
	chemID := seedCourse(t, ctx, db, annID, "Chemistry")
	seedCourse(t, ctx, db, tomID, "Drama")

	bobID := seedUser(t, ctx, db, "bob", RoleStudent)
	enroll(t, ctx, db, bobID, algebraID)
	enroll(t, ctx, db, bobID, chemID)

	enrolled, err := courses.GetStudentCourses(ctx, bobID)
	if err != nil {
		t.Fatalf("GetStudentCourses() failed: %v", err)
	}
	available, err := courses.GetAvailableCourses(ctx, bobID)
	if err != nil {
		t.Fatalf("GetAvailableCourses() failed: %v", err)
	}

	var enrolledTitles, availableTitles []string
	for _, c := range enrolled {
		enrolledTitles = append(enrolledTitles, c.Title)
		if c.TeacherName != "ann" {
			t.Errorf("GetStudentCourses() teacher_name for %s = %q, want ann", c.Title, c.TeacherName)
		}
	}
	for _, c := range available {
		availableTitles = append(availableTitles, c.Title)
	}

	// Creation order within each list.
	assert.Equal(t, []string{"Algebra", "Chemistry"}, enrolledTitles)
	assert.Equal(t, []string{"Biology", "Drama"}, availableTitles)

	// Together the two lists cover every course exactly once.
	assert.ElementsMatch(t,
		[]string{"Algebra", "Biology", "Chemistry", "Drama"},
		append(enrolledTitles, availableTitles...))

	for _, c := range available {
		if c.Title == "Drama" && c.TeacherName != "tom" {
			t.Errorf("GetAvailableCourses() teacher_name for Drama = %q, want tom", c.TeacherName)
		}
	}
}

// Walks the first session of a fresh deployment: a teacher creates a
// course, a student finds it, joins it, and the teacher sees the count move.
func TestFreshClassroomLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := testCtx(t)
	courses := NewCourseRepository(db)

	annID := seedUser(t, ctx, db, "ann", RoleTeacher)
	mathID := seedCourse(t, ctx, db, annID, "Math")

	teaching, err := courses.GetTeacherCourses(ctx, annID)
	if err != nil {
		t.Fatalf("GetTeacherCourses() failed: %v", err)
	}
	if len(teaching) != 1 || teaching[0].EnrollmentCount != 0 {
		t.Fatalf("GetTeacherCourses() = %+v, want one course with no enrollments", teaching)
	}

	bobID := seedUser(t, ctx, db, "bob", RoleStudent)

	available, err := courses.GetAvailableCourses(ctx, bobID)
	if err != nil {
		t.Fatalf("GetAvailableCourses() failed: %v", err)
	}
	if len(available) != 1 || available[0].Title != "Math" {
		t.Fatalf("GetAvailableCourses() = %+v, want [Math]", available)
	}

	enroll(t, ctx, db, bobID, mathID)

	teaching, err = courses.GetTeacherCourses(ctx, annID)
	if err != nil {
		t.Fatalf("GetTeacherCourses() failed: %v", err)
	}
	if teaching[0].EnrollmentCount != 1 {
		t.Errorf("enrollment_count after joining = %d, want 1", teaching[0].EnrollmentCount)
	}

	enrolled, err := courses.GetStudentCourses(ctx, bobID)
	if err != nil {
		t.Fatalf("GetStudentCourses() failed: %v", err)
	}
	if len(enrolled) != 1 || enrolled[0].Title != "Math" {
		t.Errorf("GetStudentCourses() = %+v, want [Math]", enrolled)
	}

	available, err = courses.GetAvailableCourses(ctx, bobID)
	if err != nil {
		t.Fatalf("GetAvailableCourses() failed: %v", err)
	}
	if len(available) != 0 {
		t.Errorf("GetAvailableCourses() = %+v, want none left", available)
	}
}

func TestStudentCoursesEmptyWithoutEnrollments(t *testing.T) {
	db := testDB(t)
	ctx := testCtx(t)
	courses := NewCourseRepository(db)

	annID := seedUser(t, ctx, db, "ann", RoleTeacher)
	seedCourse(t, ctx, db, annID, "Mathematics")
	bobID := seedUser(t, ctx, db, "bob", RoleStudent)

	enrolled, err := courses.GetStudentCourses(ctx, bobID)
	if err != nil {
		t.Fatalf("GetStudentCourses() failed: %v", err)
	}
	if len(enrolled) != 0 {
		t.Errorf("GetStudentCourses() = %d courses, want 0", len(enrolled))
	}

	available, err := courses.GetAvailableCourses(ctx, bobID)
	if err != nil {
		t.Fatalf("GetAvailableCourses() failed: %v", err)
	}
	if len(available) != 1 {
		t.Errorf("GetAvailableCourses() = %d courses, want 1", len(available))
	}
}
