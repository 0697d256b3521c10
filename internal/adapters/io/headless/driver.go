// Package headless implements the Headless IO Driver (§4.4): used whenever
// RuntimeContext.Headless is true. Prompt resolution never reaches this
// driver — it is short-circuited inside each Prompt Primitive per §4.5
// step 3 — so Request here only ever sees Log/Print requests in practice.
// A PromptFor* request reaching it anyway (a driver script bypassing the
// Prompt Primitives and calling a lower-level hook) is a programming
// error, not a runtime condition, and fails loudly rather than guessing.
package headless

import (
	"context"

	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

var _ usecases.IODriver = (*Driver)(nil)

// Driver implements usecases.IODriver for headless renders, delegating
// Log/Print requests to a Logger and rejecting any prompt request.
type Driver struct {
	logger usecases.Logger
}

// New creates a Headless IO Driver logging through logger.
func New(logger usecases.Logger) *Driver {
	return &Driver{logger: logger}
}

func (d *Driver) Request(ctx context.Context, req entities.CommandRequest) (entities.CommandResponse, error) {
	switch req.Kind {
	case entities.ReqLogTrace, entities.ReqLogDebug:
		if d.logger != nil {
			d.logger.Debug(req.Text)
		}
		return entities.NewNoneResponse(), nil
	case entities.ReqLogInfo:
		if d.logger != nil {
			d.logger.Info(req.Text)
		}
		return entities.NewNoneResponse(), nil
	case entities.ReqLogWarn:
		if d.logger != nil {
			d.logger.Warn(req.Text)
		}
		return entities.NewNoneResponse(), nil
	case entities.ReqLogError:
		if d.logger != nil {
			d.logger.Error(req.Text, nil)
		}
		return entities.NewNoneResponse(), nil
	case entities.ReqPrint:
		if d.logger != nil {
			d.logger.Info(req.Text)
		}
		return entities.NewNoneResponse(), nil
	default:
		return entities.CommandResponse{}, entities.NewError(entities.KindIO,
			"headless driver received a prompt request directly; prompt primitives must short-circuit headless resolution themselves")
	}
}
