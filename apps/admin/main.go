package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/sciencewithkalana/portal/core"
	"github.com/sciencewithkalana/portal/core/enrollment"
	"github.com/sciencewithkalana/portal/core/student"
	"github.com/sciencewithkalana/portal/database"
	emailsvc "github.com/sciencewithkalana/portal/services/email"
	"github.com/sciencewithkalana/portal/storage/store"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up storage
	var db *sqlx.DB
	var st store.Store
	var err error
	switch conf.Storage.Backend {
	case "postgres":
		db, err = database.Open(conf)
		errAndDie(err)
		defer db.Close()
		st = store.NewSQLStore(db)
	case "memory":
		st = store.NewMemoryStore()
	default:
		st, err = store.NewFileStore(conf.Storage.DataDir)
		errAndDie(err)
	}

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	studentRepo := store.NewStudentRepository(st)
	classRepo := store.NewClassRepository(st)

	verifier := student.PlainVerifier{}
	mailSvc := emailsvc.NewConsoleService(conf)
	stuSvc := student.NewService(studentRepo, verifier, mailSvc, conf, validate, translator)
	enrSvc := enrollment.NewService(
		store.NewPaymentRepository(st),
		store.NewOverrideRepository(st),
		classRepo,
		studentRepo,
		mailSvc,
		conf,
	)

	// start CLI
	cli := commandLine{
		stuSvc:  stuSvc,
		enrSvc:  enrSvc,
		migrate: newMigrateFunc(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
