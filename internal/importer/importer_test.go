package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	data := strings.Join([]string{
		"word,translation,part of speech,hint,cefr,tags",
		"affect,afetar,verb,to influence,b1,confusable;formal",
		"effect,efeito,noun,,B1,confusable",
	}, "\n")

	result, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Cards, 2)

	first := result.Cards[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "affect", first.Word)
	assert.Equal(t, "afetar", first.Translation)
	assert.Equal(t, "verb", first.PartOfSpeech)
	assert.Equal(t, "to influence", first.Hint)
	assert.Equal(t, "B1", first.CEFR)
	assert.Equal(t, []string{"confusable", "formal"}, first.Tags)
}

func TestParseCSVWithoutHeader(t *testing.T) {
	result, err := ParseCSV(strings.NewReader("hello,ola\nworld,mundo\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, "noun", result.Cards[0].PartOfSpeech)
}

func TestParseCSVSkipsInvalidAndDuplicateRows(t *testing.T) {
	data := strings.Join([]string{
		"word,translation",
		"hello,ola",
		",missing-word",
		"hello,duplicated",
		"bad,tradução,notapartofspeech",
	}, "\n")

	result, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	assert.Len(t, result.Errors, 3)
}

func TestParseCSVSkipsBlankLines(t *testing.T) {
	result, err := ParseCSV(strings.NewReader("hello,ola\n,,\nworld,mundo\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.Imported)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"word", "translation", "part of speech", "hint", "cefr", "tags"},
		{"their", "deles", "pronoun", "", "A2", "homophone"},
		{"there", "ali", "adverb", "", "A2", "homophone"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	result, err := ParseXLSX(&buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Cards, 2)
	assert.Equal(t, "their", result.Cards[0].Word)
	assert.Equal(t, "pronoun", result.Cards[0].PartOfSpeech)
	assert.Equal(t, []string{"homophone"}, result.Cards[1].Tags)
}

func TestParseXLSXRejectsGarbage(t *testing.T) {
	_, err := ParseXLSX(strings.NewReader("not an xlsx file"))
	assert.Error(t, err)
}
