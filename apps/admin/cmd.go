package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/catalog"
	"github.com/trezcool/shule/core/school"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf    *core.Config
	db      *sql.DB
	catRepo catalog.Repository
	schRepo school.Repository
	assSvc  *assessment.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - run DB migrations. ex: migrate up")
	fmt.Println("  seedcatalog [-file PATH] - load education system templates into the DB")
	fmt.Println("  suggest -country CODE [-type TYPE] - rank education systems for a school")
	fmt.Println("  configure -school ID -system ID [-file PATH] - activate a school's academic config")
	fmt.Println("  resolve -school ID - print a school's resolved academic system")
	fmt.Println("  mergeca [-student ID] [-subject ID] [-class ID] [-term ID] - merge CA component rows into composites")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seedcatalog", flag.ExitOnError)
	seedFile := seedCmd.String("file", "", "Path to a catalog JSON file. Defaults to the embedded seed.")

	suggestCmd := flag.NewFlagSet("suggest", flag.ExitOnError)
	suggestCountry := suggestCmd.String("country", "", "ISO country code of the school. Required.")
	suggestType := suggestCmd.String("type", "", "School type: primary, secondary or tertiary.")

	configureCmd := flag.NewFlagSet("configure", flag.ExitOnError)
	configureSchool := configureCmd.String("school", "", "The school's ID. Required.")
	configureSystem := configureCmd.String("system", "", "The base education system ID. Required.")
	configureFile := configureCmd.String("file", "", "Path to a customizations JSON file.")

	resolveCmd := flag.NewFlagSet("resolve", flag.ExitOnError)
	resolveSchool := resolveCmd.String("school", "", "The school's ID. Required.")

	mergeCmd := flag.NewFlagSet("mergeca", flag.ExitOnError)
	mergeStudent := mergeCmd.String("student", "", "Limit the merge to one student.")
	mergeSubject := mergeCmd.String("subject", "", "Limit the merge to one subject.")
	mergeClass := mergeCmd.String("class", "", "Limit the merge to one class.")
	mergeTerm := mergeCmd.String("term", "", "Limit the merge to one term.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seedcatalog":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seedCatalog(*seedFile)
	case "suggest":
		if err := suggestCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *suggestCountry == "" {
			suggestCmd.Usage()
			return errHelp
		}
		return cli.suggest(*suggestCountry, *suggestType)
	case "configure":
		if err := configureCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *configureSchool == "" || *configureSystem == "" {
			configureCmd.Usage()
			return errHelp
		}
		return cli.configure(*configureSchool, *configureSystem, *configureFile)
	case "resolve":
		if err := resolveCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resolveSchool == "" {
			resolveCmd.Usage()
			return errHelp
		}
		return cli.resolve(*resolveSchool)
	case "mergeca":
		if err := mergeCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.mergeCA(assessment.Filter{
			StudentID: *mergeStudent,
			SubjectID: *mergeSubject,
			ClassID:   *mergeClass,
			TermID:    *mergeTerm,
		})
	default:
		cli.printUsage()
		return errHelp
	}
}
