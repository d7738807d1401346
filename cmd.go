package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/AKSHAYxGITHUB/remote-classroom/application"
	"github.com/AKSHAYxGITHUB/remote-classroom/database"
	"github.com/AKSHAYxGITHUB/remote-classroom/logger"
	"github.com/AKSHAYxGITHUB/remote-classroom/services"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	app *application.Application
	log *logger.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  init                              - create missing collections and indexes, then exit")
	fmt.Println("  adduser -username NAME -role ROLE - create an account; the password is prompted next")
	fmt.Println("  import -course ID -file PATH      - enroll a username,password CSV roster into a course")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserName := addUserCmd.String("username", "", "Unique login name for the new account.")
	addUserRole := addUserCmd.String("role", string(database.RoleStudent), `Account role, "student" or "teacher".`)

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importCourse := importCmd.String("course", "", "Id of the course the roster enrolls into.")
	importFile := importCmd.String("file", "", "Path to a username,password CSV file.")

	switch args[1] {
	case "init":
		// Schema setup already ran while connecting; this command exists so
		// a first deploy can run it explicitly and exit.
		cli.log.Infof("Schema ready in database %q", cli.app.DB.Name())
		return nil
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(ctx, *addUserName, string(pwd), database.Role(*addUserRole))
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importCourse == "" || *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importRoster(ctx, *importCourse, *importFile)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) addUser(ctx context.Context, username, password string, role database.Role) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	id, err := cli.app.Users.CreateUser(ctx, username, string(hash), role)
	if err != nil {
		return err
	}

	cli.log.Infof("Created %s %q with id %s", role, username, id)
	return nil
}

func (cli *commandLine) importRoster(ctx context.Context, courseID, filePath string) error {
	report, err := services.NewRosterImporter(cli.app.DB).ImportRoster(ctx, filePath, courseID)
	if err != nil {
		return err
	}

	cli.log.Infof("Roster import finished: %s", report)
	return nil
}
