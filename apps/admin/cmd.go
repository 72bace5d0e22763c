package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/sciencewithkalana/portal/core/enrollment"
	"github.com/sciencewithkalana/portal/core/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	stuSvc *student.Service
	enrSvc *enrollment.Service

	migrate func(args []string) error
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - run a database migration command (postgres backend only)")
	fmt.Println("  approve -payment ID - approve a pending payment and enroll the student")
	fmt.Println("  reject -payment ID - reject a pending payment")
	fmt.Println("  activate -student ID -class ID - manually activate a class for a student")
	fmt.Println("  resetpassword -student ID - reset a student's password")
	fmt.Println("  sync - rebuild class enrollments from completed payments")
	fmt.Println("  stats - print the dashboard aggregates")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	approveCmd := flag.NewFlagSet("approve", flag.ExitOnError)
	approveID := approveCmd.String("payment", "", "The payment ID to approve.")

	rejectCmd := flag.NewFlagSet("reject", flag.ExitOnError)
	rejectID := rejectCmd.String("payment", "", "The payment ID to reject.")

	activateCmd := flag.NewFlagSet("activate", flag.ExitOnError)
	activateStudent := activateCmd.String("student", "", "The student ID to activate.")
	activateClass := activateCmd.String("class", "", "The class ID to activate for.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordID := resetPasswordCmd.String("student", "", "The student's ID. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "approve":
		if err := approveCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *approveID == "" {
			approveCmd.Usage()
			return errHelp
		}
		pmt, err := cli.enrSvc.Approve(*approveID)
		if err != nil {
			return err
		}
		fmt.Printf("payment %s approved; student %s enrolled in class %s\n", pmt.ID, pmt.StudentID, pmt.ClassID)
		return nil
	case "reject":
		if err := rejectCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *rejectID == "" {
			rejectCmd.Usage()
			return errHelp
		}
		pmt, err := cli.enrSvc.Reject(*rejectID)
		if err != nil {
			return err
		}
		fmt.Printf("payment %s rejected\n", pmt.ID)
		return nil
	case "activate":
		if err := activateCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *activateStudent == "" || *activateClass == "" {
			activateCmd.Usage()
			return errHelp
		}
		if err := cli.enrSvc.ActivateManually(*activateStudent, *activateClass); err != nil {
			return err
		}
		fmt.Printf("student %s activated for class %s\n", *activateStudent, *activateClass)
		return nil
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordID == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordID, string(pwd))
	case "sync":
		if err := cli.enrSvc.SyncEnrollments(); err != nil {
			return err
		}
		fmt.Println("enrollments rebuilt from completed payments")
		return nil
	case "stats":
		stats, err := cli.enrSvc.ComputeStats()
		if err != nil {
			return err
		}
		fmt.Printf("students: %d\nactive classes: %d\nrevenue: Rs. %.2f\npending payments: %d\n",
			stats.TotalStudents, stats.ActiveClasses, stats.TotalRevenue, stats.PendingPayments)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) resetPassword(studentID, pwd string) error {
	_, err := cli.stuSvc.Update(studentID, student.UpdateStudent{Password: pwd})
	return err
}
