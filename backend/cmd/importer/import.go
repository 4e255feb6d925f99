package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"oabplanner/backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const missingStatement = "(enunciado não informado)"

// QuestionCreator is the single write the importer needs.
type QuestionCreator interface {
	Create(ctx context.Context, q *models.Question) error
}

type Summary struct {
	Imported int
	Skipped  int
}

// columns maps header names to record positions. Unknown headers are
// ignored and absent ones read as empty strings.
type columns map[string]int

func newColumns(header []string) columns {
	cols := make(columns, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func (c columns) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (c columns) question(record []string) models.Question {
	q := models.Question{
		ID:          uuid.NewString(),
		Subject:     c.get(record, "materia"),
		Edition:     c.get(record, "edicao"),
		Topic:       c.get(record, "tema"),
		Statement:   c.get(record, "enunciado"),
		OptionA:     c.get(record, "alt_a"),
		OptionB:     c.get(record, "alt_b"),
		OptionC:     c.get(record, "alt_c"),
		OptionD:     c.get(record, "alt_d"),
		Correct:     strings.ToUpper(c.get(record, "correta")),
		Explanation: c.get(record, "comentario"),
	}
	if q.Statement == "" {
		q.Statement = missingStatement
	}
	return q
}

// importQuestions writes one question per CSV row. A row that cannot be
// parsed or stored is logged and skipped; only a failure to read the
// input at all stops the import.
func importQuestions(ctx context.Context, r io.Reader, store QuestionCreator, logger *zap.Logger) (Summary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Summary{}, fmt.Errorf("read header: %w", err)
	}
	cols := newColumns(header)

	var sum Summary
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			logger.Warn("skipping malformed row", zap.Int("line", parseErr.StartLine), zap.Error(err))
			sum.Skipped++
			continue
		}
		if err != nil {
			return sum, err
		}

		line, _ := reader.FieldPos(0)
		q := cols.question(record)
		if err := store.Create(ctx, &q); err != nil {
			logger.Error("failed to import row", zap.Int("line", line), zap.String("subject", q.Subject), zap.Error(err))
			sum.Skipped++
			continue
		}

		logger.Info("imported question",
			zap.Int("line", line),
			zap.String("id", q.ID),
			zap.String("subject", q.Subject),
			zap.String("edition", q.Edition),
		)
		sum.Imported++
	}
	return sum, nil
}

func printBanner(w io.Writer, file string, sum Summary) {
	line := strings.Repeat("=", 48)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, " Import finished: %s\n", file)
	fmt.Fprintf(w, " Imported: %d  Skipped: %d\n", sum.Imported, sum.Skipped)
	fmt.Fprintln(w, line)
}
