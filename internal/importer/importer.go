package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/avelar/wordflash/internal/models"
)

// Expected column order: word, translation, part of speech, hint, CEFR,
// tags (semicolon separated). Only the first two are required.
const (
	colWord = iota
	colTranslation
	colPartOfSpeech
	colHint
	colCEFR
	colTags
)

// Result summarizes one import run.
type Result struct {
	TotalRows int      `json:"total_rows"`
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
	Cards     []models.WordCard
}

// ParseCSV reads word cards from CSV data. A header row starting with
// "word" is skipped automatically.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}
	return buildCards(rows), nil
}

// ParseXLSX reads word cards from the first sheet of an XLSX file.
func ParseXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("xlsx file has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return buildCards(rows), nil
}

func buildCards(rows [][]string) *Result {
	result := &Result{}
	seen := make(map[string]bool)
	now := time.Now().UTC()

	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if isEmpty(row) {
			continue
		}
		result.TotalRows++

		card, err := cardFromRow(row, now)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		key := strings.ToLower(card.Word)
		if seen[key] {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate word %q", i+1, card.Word))
			continue
		}
		seen[key] = true
		result.Cards = append(result.Cards, card)
		result.Imported++
	}
	return result
}

func cardFromRow(row []string, now time.Time) (models.WordCard, error) {
	card := models.WordCard{
		ID:           uuid.NewString(),
		Word:         cell(row, colWord),
		Translation:  cell(row, colTranslation),
		PartOfSpeech: strings.ToLower(cell(row, colPartOfSpeech)),
		Hint:         cell(row, colHint),
		CEFR:         strings.ToUpper(cell(row, colCEFR)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if card.PartOfSpeech == "" {
		card.PartOfSpeech = "noun"
	}
	if tags := cell(row, colTags); tags != "" {
		for _, tag := range strings.Split(tags, ";") {
			if tag = strings.TrimSpace(tag); tag != "" {
				card.Tags = append(card.Tags, tag)
			}
		}
	}
	if err := card.Validate(); err != nil {
		return models.WordCard{}, err
	}
	return card, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isHeader(row []string) bool {
	return strings.EqualFold(cell(row, colWord), "word")
}

func isEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
