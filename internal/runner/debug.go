package runner

import (
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                16,
}

// dump logs a Go-syntax dump of value when debug output is enabled.
func (r *Runner) dump(label string, value any) {
	if !r.config.Debug {
		return
	}
	r.logger.Debug(label, zap.String("dump", dumper.Sdump(value)))
}
