package reader

import (
	"bufio"
	"f1q1report/pkg/raceerrors"
	"os"

	"github.com/pkg/errors"
)

// ReadLines returns every line of the file without line terminators.
// A path that does not exist or cannot be opened is a MissedFile error.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, raceerrors.MissedFile(path, err)
	}
	defer f.Close()

	lines := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return lines, nil
}
