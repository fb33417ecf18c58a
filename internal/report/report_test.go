package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWriterCSVConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "submissions.csv")
	w, err := NewWriter(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.Write(Record{
				Hash:         fmt.Sprintf("HASH%02d", i),
				State:        "validated_success",
				EngineResult: "tesSUCCESS",
				LedgerIndex:  uint32(100 + i),
			}))
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(n), w.Written())
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, n+1)
	assert.Equal(t, header, rows[0])
	for _, row := range rows[1:] {
		assert.Len(t, row, len(header))
	}
}

func TestWriterCSVAppendsWithoutSecondHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.csv")
	for range 2 {
		w, err := NewWriter(path, nil)
		require.NoError(t, err)
		require.NoError(t, w.Write(Record{Hash: "ABC", State: "expired"}))
		require.NoError(t, w.Close())
	}

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestWriterJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.jsonl")
	w, err := NewWriter(path, nil)
	require.NoError(t, err)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, w.Write(Record{Timestamp: ts, Hash: "A", State: "validated_failure", Result: "tecPATH_DRY"}))
	require.NoError(t, w.Write(Record{Timestamp: ts, Hash: "B", State: "expired"}))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		records = append(records, r)
	}
	require.Len(t, records, 2)
	assert.Equal(t, "tecPATH_DRY", records[0].Result)
	assert.True(t, ts.Equal(records[1].Timestamp))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatFromPath("a.csv"))
	assert.Equal(t, FormatCSV, FormatFromPath("a"))
	assert.Equal(t, FormatJSON, FormatFromPath("a.JSONL"))
}
