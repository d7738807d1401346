package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/AKSHAYxGITHUB/remote-classroom/database"
)

// ImportReport summarizes what a roster import changed.
type ImportReport struct {
	UsersCreated    int
	UsersExisting   int
	Enrolled        int
	AlreadyEnrolled int
}

func (r *ImportReport) String() string {
	return fmt.Sprintf("%d users created, %d already existed, %d enrolled, %d already enrolled",
		r.UsersCreated, r.UsersExisting, r.Enrolled, r.AlreadyEnrolled)
}

type RosterImporter struct {
	users      *database.UserRepository
	courses    *database.CourseRepository
	enrollment *database.EnrollmentRepository
}

func NewRosterImporter(db *mongo.Database) *RosterImporter {
	return &RosterImporter{
		users:      database.NewUserRepository(db),
		courses:    database.NewCourseRepository(db),
		enrollment: database.NewEnrollmentRepository(db),
	}
}

// ImportRoster reads a username,password CSV and enrolls every listed
// student in the course, creating accounts that do not exist yet. Rows
// whose user or enrollment already exists are counted and skipped, so
// running the same roster twice is harmless.
func (imp *RosterImporter) ImportRoster(ctx context.Context, filePath, courseID string) (*ImportReport, error) {
	if err := ValidateRoster(filePath); err != nil {
		return nil, err
	}

	course, err := imp.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, fmt.Errorf("course %s does not exist", courseID)
	}

	records, err := readCSV(filePath)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	for i := 1; i < len(records); i++ {
		record := records[i]

		username := strings.TrimSpace(record[0])
		password := record[1]
		if username == "" {
			return report, &ValidationError{Message: fmt.Sprintf("row %d has an empty username", i+1)}
		}

		userID, created, err := imp.createOrGetStudent(ctx, username, password)
		if err != nil {
			return report, fmt.Errorf("row %d (%s): %w", i+1, username, err)
		}
		if created {
			report.UsersCreated++
		} else {
			report.UsersExisting++
		}

		_, err = imp.enrollment.EnrollStudent(ctx, userID, courseID)
		switch {
		case errors.Is(err, database.ErrAlreadyEnrolled):
			report.AlreadyEnrolled++
		case err != nil:
			return report, fmt.Errorf("row %d (%s): %w", i+1, username, err)
		default:
			report.Enrolled++
		}
	}

	return report, nil
}

// createOrGetStudent resolves a roster row to a user id, inserting a new
// student account when the username is unknown. A concurrent insert of the
// same username is handled by re-reading the winner.
func (imp *RosterImporter) createOrGetStudent(ctx context.Context, username, password string) (string, bool, error) {
	user, err := imp.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", false, err
	}
	if user != nil {
		return database.ExternalID(user.ID), false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", false, err
	}

	id, err := imp.users.CreateUser(ctx, username, string(hash), database.RoleStudent)
	if errors.Is(err, database.ErrUsernameTaken) {
		existing, lookupErr := imp.users.GetUserByUsername(ctx, username)
		if lookupErr != nil {
			return "", false, lookupErr
		}
		if existing != nil {
			return database.ExternalID(existing.ID), false, nil
		}
		return "", false, err
	}
	if err != nil {
		return "", false, err
	}

	return id, true, nil
}

func readCSV(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return csv.NewReader(file).ReadAll()
}
