package application

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AKSHAYxGITHUB/remote-classroom/config"
	"github.com/AKSHAYxGITHUB/remote-classroom/database"
	"github.com/AKSHAYxGITHUB/remote-classroom/logger"
)

// Application owns the shared store connection and the repository set built
// on it. Collaborating layers (route handlers, admin tooling) take
// repositories from here instead of holding store handles of their own.
type Application struct {
	Client *mongo.Client
	DB     *mongo.Database

	Users      *database.UserRepository
	Courses    *database.CourseRepository
	Enrollment *database.EnrollmentRepository
	Materials  *database.MaterialRepository
	Attendance *database.AttendanceRepository
	Posts      *database.PostRepository

	logger *logger.Logger
}

func NewApplication() *Application {
	return &Application{}
}

// Configure connects to the store, declares the schema and wires the
// repositories. An unreachable store fails here, and the caller must treat
// that as fatal: the process cannot run without one.
func (app *Application) Configure(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	app.logger = log

	client, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	app.Client = client
	app.DB = client.Database(cfg.Database.Name)

	if err := database.InitSchema(ctx, app.DB); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}
	log.Infof("Collections and indexes initialized in database %q", cfg.Database.Name)

	app.Users = database.NewUserRepository(app.DB)
	app.Courses = database.NewCourseRepository(app.DB)
	app.Enrollment = database.NewEnrollmentRepository(app.DB)
	app.Materials = database.NewMaterialRepository(app.DB)
	app.Attendance = database.NewAttendanceRepository(app.DB)
	app.Posts = database.NewPostRepository(app.DB)

	return nil
}

func (app *Application) Close(ctx context.Context) error {
	if app.Client == nil {
		return nil
	}
	return app.Client.Disconnect(ctx)
}
