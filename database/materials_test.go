package database

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddMaterialAndGet(t *testing.T) {
	db := testDB(t)
	ctx := testCtx(t)
	mat := NewMaterialRepository(db)

	annID := seedUser(t, ctx, db, "ann", RoleTeacher)
	mathID := seedCourse(t, ctx, db, annID, "Mathematics")

	id, err := mat.AddMaterial(ctx, mathID, "Week 1 notes", "uploads/week1.pdf")
	if err != nil {
		t.Fatalf("AddMaterial() failed: %v", err)
	}

	m, err := mat.GetMaterialByID(ctx, id)
	if err != nil {
		t.Fatalf("GetMaterialByID() failed: %v", err)
	}
	if m == nil {
		t.Fatal("GetMaterialByID() = nil for a material that was just added")
	}
	if ExternalID(m.CourseID) != mathID {
		t.Errorf("GetMaterialByID() CourseID = %s, want %s", ExternalID(m.CourseID), mathID)
	}
	if m.Title != "Week 1 notes" || m.FilePath != "uploads/week1.pdf" {
		t.Errorf("GetMaterialByID() = %+v, want title %q and filepath %q", m, "Week 1 notes", "uploads/week1.pdf")
	}
	if m.UploadedAt.IsZero() {
		t.Error("GetMaterialByID() UploadedAt is zero")
	}

	missing, err := mat.GetMaterialByID(ctx, primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("GetMaterialByID() for an absent id failed: %v", err)
	}
	if missing != nil {
		t.Errorf("GetMaterialByID() = %+v for an absent id, want nil", missing)
	}
}

func TestGetCourseMaterials(t *testing.T) {
	db := testDB(t)
	ctx := testCtx(t)
	mat := NewMaterialRepository(db)

	annID := seedUser(t, ctx, db, "ann", RoleTeacher)
	mathID := seedCourse(t, ctx, db, annID, "Mathematics")
	histID := seedCourse(t, ctx, db, annID, "History")

	for _, title := range []string{"Syllabus", "Week 1 notes", "Recap"} {
		if _, err := mat.AddMaterial(ctx, mathID, title, "uploads/"+title+".pdf"); err != nil {
			t.Fatalf("AddMaterial(%q) failed: %v", title, err)
		}
	}
	if _, err := mat.AddMaterial(ctx, histID, "Reading list", "uploads/reading.pdf"); err != nil {
		t.Fatalf("AddMaterial() failed: %v", err)
	}

	materials, err := mat.GetCourseMaterials(ctx, mathID)
	if err != nil {
		t.Fatalf("GetCourseMaterials() failed: %v", err)
	}
	if len(materials) != 3 {
		t.Fatalf("GetCourseMaterials() returned %d materials, want 3", len(materials))
	}
	// Upload order, not title order.
	for i, want := range []string{"Syllabus", "Week 1 notes", "Recap"} {
		if materials[i].Title != want {
			t.Errorf("GetCourseMaterials()[%d].Title = %q, want %q", i, materials[i].Title, want)
		}
	}
}

func TestGetCourseMaterialsEmptyCourse(t *testing.T) {
	db := testDB(t)
	ctx := testCtx(t)
	mat := NewMaterialRepository(db)

	annID := seedUser(t, ctx, db, "ann", RoleTeacher)
	mathID := seedCourse(t, ctx, db, annID, "Mathematics")

	materials, err := mat.GetCourseMaterials(ctx, mathID)
	if err != nil {
		t.Fatalf("GetCourseMaterials() failed: %v", err)
	}
	if len(materials) != 0 {
		t.Errorf("GetCourseMaterials() returned %d materials for a course with none", len(materials))
	}
}
