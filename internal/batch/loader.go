package batch

import (
	"encoding/csv"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	imagepkg "github.com/youruser/overlay/internal/image"
	"github.com/youruser/overlay/internal/util"
)

// LoadRows reads every non-blank record of a header-less CSV file.
func LoadRows(path string) ([][]string, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	rows, err := ReadRows(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return rows, nil
}

func ReadRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 || (len(rec) == 1 && rec[0] == "") {
			continue
		}
		if len(rows) == 0 {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// LoadBaseImage decodes a base photo, reporting a missing file as
// ErrInputNotFound.
func LoadBaseImage(path string) (image.Image, error) {
	if !util.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	return imagepkg.OpenImage(path)
}
