// internal/report/report.go
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Format is the report file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json" // one JSON object per line
)

var header = []string{"timestamp", "hash", "account", "state", "engine_result", "result", "ledger_index", "last_ledger_sequence"}

// Record is one finished submission.
type Record struct {
	Timestamp          time.Time `json:"timestamp"`
	Hash               string    `json:"hash"`
	Account            string    `json:"account"`
	State              string    `json:"state"`
	EngineResult       string    `json:"engine_result,omitempty"`
	Result             string    `json:"result,omitempty"`
	LedgerIndex        uint32    `json:"ledger_index,omitempty"`
	LastLedgerSequence uint32    `json:"last_ledger_sequence,omitempty"`
}

func (r Record) row() []string {
	return []string{
		r.Timestamp.UTC().Format(time.RFC3339),
		r.Hash,
		r.Account,
		r.State,
		r.EngineResult,
		r.Result,
		strconv.FormatUint(uint64(r.LedgerIndex), 10),
		strconv.FormatUint(uint64(r.LastLedgerSequence), 10),
	}
}

// Writer дописывает записи об отправках в файл. Потокобезопасен, каждая
// запись сбрасывается на диск до возврата из Write.
type Writer struct {
	mu      sync.Mutex
	file    *os.File
	format  Format
	csv     *csv.Writer
	json    *json.Encoder
	logger  *zap.Logger
	written uint64
}

// FormatFromPath picks the format from the file extension, CSV by default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl", ".ndjson":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// NewWriter открывает файл на дозапись. В новый CSV пишется заголовок.
func NewWriter(path string, logger *zap.Logger) (*Writer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat report: %w", err)
	}

	w := &Writer{
		file:   file,
		format: FormatFromPath(path),
		logger: logger.Named("report"),
	}
	switch w.format {
	case FormatJSON:
		w.json = json.NewEncoder(file)
	default:
		w.csv = csv.NewWriter(file)
		if stat.Size() == 0 {
			if err := w.writeCSV(header); err != nil {
				file.Close()
				return nil, err
			}
		}
	}
	return w, nil
}

func (w *Writer) writeCSV(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Write записывает r
func (w *Writer) Write(r Record) error {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var err error
	if w.format == FormatJSON {
		err = w.json.Encode(r)
	} else {
		err = w.writeCSV(r.row())
	}
	if err != nil {
		w.logger.Error("Failed to write report record", zap.String("hash", r.Hash), zap.Error(err))
		return err
	}
	w.written++
	return nil
}

// Written returns the number of records written by this writer.
func (w *Writer) Written() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.file.Sync(); err != nil {
		w.logger.Warn("Failed to sync report", zap.Error(err))
	}
	return w.file.Close()
}
