package prompt

import (
	"context"

	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

// dispatch sends req through io and folds the response into a Value via
// onSuccess, applying the uniform §4.5 step-4 interpretation for
// None/Error/Abort responses. onSuccess is invoked only for the remaining
// variants and is responsible for rejecting any it does not expect with
// UnexpectedResponseError.
func dispatch(
	ctx context.Context,
	io usecases.IODriver,
	req entities.CommandRequest,
	key, message string,
	optional bool,
	onSuccess func(entities.CommandResponse) (entities.Value, error),
) (entities.Value, error) {
	resp, err := io.Request(ctx, req)
	if err != nil {
		return entities.Unit, entities.Wrap(entities.KindIO, "IO driver request failed", err)
	}

	switch resp.Kind {
	case entities.RespNone:
		if !optional {
			return entities.Unit, entities.NewKeyedError(entities.KindAnswerNotOptional, key,
				"prompt \""+message+"\" is not optional")
		}
		return entities.Unit, nil
	case entities.RespError:
		return entities.Unit, entities.NewKeyedError(entities.KindPrompt, key, resp.ErrText)
	case entities.RespAbort:
		return entities.Unit, entities.NewKeyedError(entities.KindScriptAbort, key, "prompt aborted")
	default:
		return onSuccess(resp)
	}
}

func unexpected(key, message, wantKind string) error {
	return entities.NewKeyedError(entities.KindUnexpectedResponse, key,
		"expected a "+wantKind+" response to prompt \""+message+"\"")
}
