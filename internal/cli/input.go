// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/taibuivan/bookrec/internal/platform/constants"
	"github.com/taibuivan/bookrec/pkg/convert"
	"github.com/taibuivan/bookrec/pkg/query"
)

// errInvalidInput marks input refused at the prompt. The message has been printed.
var errInvalidInput = errors.New("invalid input")

// readLine returns the next raw line, or io.EOF when the input has ended.
func (s *Shell) readLine(label string) (string, error) {
	s.printf("%s", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

// prompt returns the next line trimmed.
func (s *Shell) prompt(label string) (string, error) {
	line, err := s.readLine(label)
	return strings.TrimSpace(line), err
}

// promptInt reads an integer, printing notice when the line is not one.
func (s *Shell) promptInt(label, notice string) (int, error) {
	line, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	v, ok := convert.Int(line)
	if !ok {
		s.printf("%s\n", notice)
		return 0, errInvalidInput
	}
	return v, nil
}

// promptScore reads a sub-score in [MinScore, MaxScore].
func (s *Shell) promptScore(label string) (int, error) {
	v, err := s.promptInt(label, "Invalid score.")
	if err != nil {
		return 0, err
	}
	if v < constants.MinScore || v > constants.MaxScore {
		s.printf("Invalid score.\n")
		return 0, errInvalidInput
	}
	return v, nil
}

// promptIDs reads a ','- or '|'-separated ID list. Bad tokens are dropped.
func (s *Shell) promptIDs(label string) ([]int, error) {
	line, err := s.prompt(label)
	if err != nil {
		return nil, err
	}
	return query.IDList(line), nil
}

// settle ends an action whose input was refused without reporting an error.
func settle(err error) error {
	if errors.Is(err, errInvalidInput) {
		return nil
	}
	return err
}
