package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"oabplanner/backend/config"
	"oabplanner/backend/models"
	"oabplanner/backend/repository"
	"oabplanner/backend/utils"

	"github.com/urfave/cli/v2"
)

type dryRun struct{}

func (dryRun) Create(context.Context, *models.Question) error { return nil }

func main() {
	app := &cli.App{
		Name:  "importer",
		Usage: "load OAB exam questions from a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "CSV with columns materia, edicao, tema, enunciado, alt_a..alt_d, correta, comentario",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "parse and log every row without writing to the database",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	file := c.String("file")
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	var store QuestionCreator = dryRun{}
	if !c.Bool("dry-run") {
		db, err := repository.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		store = repository.NewQuestionRepository(db)
	}

	sum, err := importQuestions(c.Context, f, store, logger)
	if err != nil {
		return err
	}
	printBanner(os.Stdout, file, sum)
	return nil
}
