package output

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"userseed/internal/models"
)

// WriteResults truncates path and writes one "<username> <token>" line per
// registration, in order. An empty slice leaves an empty file behind.
func WriteResults(path string, regs []models.Registration) error {
	return writeLines(path, len(regs), func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%s %s\n", regs[i].Username, regs[i].Token)
		return err
	})
}

// WriteFailures writes one "<username> <error>" line per failed candidate.
func WriteFailures(path string, failures []models.Failure) error {
	return writeLines(path, len(failures), func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%s %s\n", failures[i].Username, failures[i].Err)
		return err
	})
}

func writeLines(path string, n int, line func(*bufio.Writer, int) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for i := 0; i < n; i++ {
		if err := line(w, i); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// ReadResults parses a file produced by WriteResults.
func ReadResults(path string) ([]models.Registration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var regs []models.Registration
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		username, token, ok := strings.Cut(line, " ")
		if !ok || username == "" || token == "" {
			return nil, fmt.Errorf("%s:%d: malformed line", path, lineNo)
		}
		regs = append(regs, models.Registration{Username: username, Token: token})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return regs, nil
}
