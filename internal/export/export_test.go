package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/task"
)

var sample = []task.Task{
	{ID: "task_1", Text: "Buy milk"},
	{ID: "task_2", Text: "Call Bob, later", Completed: true},
}

func TestExport_JSON(t *testing.T) {
	body, ct, err := NewExporter("").Export(sample, "json")
	require.NoError(t, err)
	assert.Equal(t, "application/json; charset=utf-8", ct)

	var got []task.Task
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, sample, got)
}

func TestExport_CSV(t *testing.T) {
	body, ct, err := NewExporter("").Export(sample, "CSV")
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", ct)

	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "text", "completed"},
		{"task_1", "Buy milk", "false"},
		{"task_2", "Call Bob, later", "true"},
	}, rows)
}

func TestExport_PDF(t *testing.T) {
	for _, tasks := range [][]task.Task{sample, nil} {
		body, ct, err := NewExporter("Groceries").Export(tasks, "pdf")
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", ct)
		assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	_, _, err := NewExporter("").Export(sample, "xls")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExport_EveryListedFormatRenders(t *testing.T) {
	exp := NewExporter("")
	assert.Equal(t, []string{"json", "csv", "pdf"}, exp.Formats())

	for _, f := range exp.Formats() {
		_, _, err := exp.Export(sample, f)
		assert.NoError(t, err, f)
	}
}
