package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/AKSHAYxGITHUB/remote-classroom/config"
	"github.com/AKSHAYxGITHUB/remote-classroom/database"
)

// Config keeps the seeder independent from the application config; it only
// needs to know where the store lives.
type Config struct {
	URL  string `env:"MONGODB_URL"`
	Name string `env:"MONGODB_NAME" envDefault:"remote_classroom"`
}

// Seeds a small demo classroom (teacher ann, student bob, two courses) and
// prints every aggregate view over it. Safe to run more than once.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load("../.env"); err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("Failed to load .env: %v", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
	if cfg.URL == "" {
		cfg.URL = os.Getenv("DATABASE_URL")
	}
	if cfg.URL == "" {
		log.Fatal("MONGODB_URL or DATABASE_URL must be set")
	}

	client, err := database.Connect(ctx, &config.DatabaseConfig{URL: cfg.URL, Name: cfg.Name})
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Name)
	if err := database.InitSchema(ctx, db); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	if err := seed(ctx, db); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}
}

func seed(ctx context.Context, db *mongo.Database) error {
	users := database.NewUserRepository(db)
	courses := database.NewCourseRepository(db)
	enrollment := database.NewEnrollmentRepository(db)
	materials := database.NewMaterialRepository(db)
	attendance := database.NewAttendanceRepository(db)
	posts := database.NewPostRepository(db)

	annID, err := ensureUser(ctx, users, "ann", database.RoleTeacher)
	if err != nil {
		return err
	}
	bobID, err := ensureUser(ctx, users, "bob", database.RoleStudent)
	if err != nil {
		return err
	}

	mathID, err := ensureCourse(ctx, courses, annID, "Mathematics", "Linear algebra and calculus.")
	if err != nil {
		return err
	}
	// A second course bob never joins, so the available list has something
	// to show.
	if _, err := ensureCourse(ctx, courses, annID, "History", "Modern European history."); err != nil {
		return err
	}

	if _, err := enrollment.EnrollStudent(ctx, bobID, mathID); err != nil && !errors.Is(err, database.ErrAlreadyEnrolled) {
		return err
	}

	mats, err := materials.GetCourseMaterials(ctx, mathID)
	if err != nil {
		return err
	}
	if len(mats) == 0 {
		if _, err := materials.AddMaterial(ctx, mathID, "Week 1 notes", "uploads/math/week1.pdf"); err != nil {
			return err
		}
	}

	board, err := posts.GetCoursePosts(ctx, mathID)
	if err != nil {
		return err
	}
	if len(board) == 0 {
		postID, err := posts.CreatePost(ctx, mathID, annID, "Welcome to Mathematics. First lecture is on Monday.")
		if err != nil {
			return err
		}
		if _, err := posts.CreateReply(ctx, postID, bobID, "Looking forward to it."); err != nil {
			return err
		}
	}

	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	// Record a day, wipe it, then record today: the summary below should
	// count a single present day no matter how often this runs.
	if err := attendance.RecordAttendance(ctx, bobID, mathID, yesterday, database.StatusAbsent); err != nil {
		return err
	}
	if err := attendance.DeleteAttendanceForDate(ctx, mathID, yesterday); err != nil {
		return err
	}
	if err := attendance.RecordAttendance(ctx, bobID, mathID, today, database.StatusPresent); err != nil {
		return err
	}

	return report(ctx, db, annID, bobID, mathID)
}

func report(ctx context.Context, db *mongo.Database, annID, bobID, mathID string) error {
	users := database.NewUserRepository(db)
	courses := database.NewCourseRepository(db)
	attendance := database.NewAttendanceRepository(db)
	posts := database.NewPostRepository(db)

	teaching, err := courses.GetTeacherCourses(ctx, annID)
	if err != nil {
		return err
	}
	fmt.Println("ann teaches:")
	for _, c := range teaching {
		fmt.Printf("  %s (%d enrolled)\n", c.Title, c.EnrollmentCount)
	}

	enrolled, err := courses.GetStudentCourses(ctx, bobID)
	if err != nil {
		return err
	}
	fmt.Println("bob is enrolled in:")
	for _, c := range enrolled {
		fmt.Printf("  %s (taught by %s)\n", c.Title, c.TeacherName)
	}

	available, err := courses.GetAvailableCourses(ctx, bobID)
	if err != nil {
		return err
	}
	fmt.Println("bob could still join:")
	for _, c := range available {
		fmt.Printf("  %s (taught by %s)\n", c.Title, c.TeacherName)
	}

	board, err := posts.GetCoursePosts(ctx, mathID)
	if err != nil {
		return err
	}
	fmt.Println("Mathematics board:")
	for _, p := range board {
		fmt.Printf("  [%s] %s (%d replies)\n", p.Username, p.Content, p.ReplyCount)
	}

	roster, err := users.GetCourseStudents(ctx, mathID)
	if err != nil {
		return err
	}
	fmt.Println("Mathematics students:")
	for _, s := range roster {
		fmt.Printf("  %s\n", s.Username)
	}

	summary, err := attendance.GetAttendanceSummary(ctx, bobID, mathID)
	if err != nil {
		return err
	}
	fmt.Printf("bob was present %d of %d recorded days in Mathematics\n", summary.Present, summary.Total)

	return nil
}

func ensureUser(ctx context.Context, users *database.UserRepository, username string, role database.Role) (string, error) {
	existing, err := users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return database.ExternalID(existing.ID), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.MinCost)
	if err != nil {
		return "", err
	}
	return users.CreateUser(ctx, username, string(hash), role)
}

func ensureCourse(ctx context.Context, courses *database.CourseRepository, teacherID, title, description string) (string, error) {
	owned, err := courses.GetTeacherCourses(ctx, teacherID)
	if err != nil {
		return "", err
	}
	for _, c := range owned {
		if c.Title == title {
			return database.ExternalID(c.ID), nil
		}
	}
	return courses.CreateCourse(ctx, title, description, teacherID)
}
