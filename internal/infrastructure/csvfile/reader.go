package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/clubarchive/matchlinker/internal/domain/fixture"
	"github.com/clubarchive/matchlinker/internal/platform/logging"
)

// ReadResult carries the parsed records and the malformed-row count; a bad
// row is skipped and counted, never fatal to the batch.
type ReadResult struct {
	Records     []fixture.Record
	RowsRead    int
	ParseErrors int
}

// Reader streams fixture records out of a delimited export. Quoted fields
// containing the delimiter are handled by the csv tokenizer; the same
// tokenizer is used for every source file.
type Reader struct {
	year   int
	logger *logging.Logger
}

func NewReader(year int, logger *logging.Logger) *Reader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reader{year: year, logger: logger}
}

// ReadFile parses the export at path.
func (r *Reader) ReadFile(path string) (ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	return r.Read(f)
}

// Read parses a delimited export from any stream.
func (r *Reader) Read(src io.Reader) (ReadResult, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var result ReadResult
	line := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.RowsRead++
			result.ParseErrors++
			r.logger.Warn("malformed source row", "line", line, "error", err)
			continue
		}
		if isHeaderRow(line, fields) {
			continue
		}
		result.RowsRead++

		rec, err := fixture.ParseRow(fields, r.year, line)
		if err != nil {
			result.ParseErrors++
			r.logger.Warn("unparseable source row", "line", line, "error", err)
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

// Exports sometimes lead with a header row; detect it by a non-date first
// column on line one.
func isHeaderRow(line int, fields []string) bool {
	if line != 1 || len(fields) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(fields[0]))
	return first == "date" || first == "match_date" || first == "matchdate"
}
