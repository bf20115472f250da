package runner

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jacoelho/crmarray/internal/config"
	"github.com/jacoelho/crmarray/internal/document"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotContainer   = errors.New("input must be a mapping or a sequence")
	ErrInvalidOption  = errors.New("invalid option")
	ErrUnknownCommand = errors.New("unknown command")
)

// text is written as is, not encoded.
type text string

// Runner applies one command to one input document.
type Runner struct {
	config *config.Config
	logger *zap.Logger
	stdin  io.Reader
}

// New creates a Runner. stdin is read when no input file is configured.
func New(cfg *config.Config, logger *zap.Logger, stdin io.Reader) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		config: cfg,
		logger: logger,
		stdin:  stdin,
	}
}

// Run decodes the input, applies the command and writes the result to w.
func (r *Runner) Run(w io.Writer) error {
	start := time.Now()

	handler, ok := commands[r.config.Command]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, r.config.Command)
	}

	doc, err := r.load(r.config.Input)
	if err != nil {
		return err
	}
	r.dump("input", doc)

	doc, err = r.narrow(doc)
	if err != nil {
		return err
	}

	result, err := handler(r, doc)
	if err != nil {
		return fmt.Errorf("%s: %w", r.config.Command, err)
	}
	r.dump("result", result)

	r.logger.Debug("command finished",
		zap.String("command", r.config.Command),
		zap.Duration("elapsed", time.Since(start)))

	return r.write(w, result)
}

// load decodes path, or stdin for "" and "-".
func (r *Runner) load(path string) (any, error) {
	if path == "" || path == "-" {
		r.logger.Debug("reading stdin")
		return document.Decode(r.stdin)
	}

	r.logger.Debug("reading document", zap.String("path", path))
	return document.DecodeFile(path)
}

// narrow applies -select. A single match becomes the document; several
// become a sequence.
func (r *Runner) narrow(doc any) (any, error) {
	if r.config.Select == "" {
		return doc, nil
	}

	matches, err := document.Select(doc, r.config.Select)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("selected",
		zap.String("path", r.config.Select),
		zap.Int("matches", len(matches)))

	if len(matches) == 1 {
		return matches[0], nil
	}
	return matches, nil
}

func (r *Runner) write(w io.Writer, result any) error {
	if t, ok := result.(text); ok && r.config.Format != document.FormatJSON {
		s := string(t)
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		_, err := io.WriteString(w, s)
		return err
	}
	if t, ok := result.(text); ok {
		result = string(t)
	}
	return document.Encode(w, result, r.config.Format)
}
