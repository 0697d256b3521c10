// Package terminal implements the Terminal IO Driver (§4.4(a)): an
// interactive IODriver dispatching every CommandRequest variant to a
// lipgloss-styled prompt, reading input through the line editor in
// internal/adapters/cli.
//
// Grounded on internal/adapters/cli/prompts.go's four untyped prompt
// methods, expanded here into the single Request dispatcher the IO Driver
// Protocol requires, styled with charmbracelet/lipgloss exactly as the
// teacher's other terminal-facing adapters do.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/archetect/archetect/internal/adapters/cli"
	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

var _ usecases.IODriver = (*Driver)(nil)

var (
	messageStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	logStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Driver implements usecases.IODriver over the process's stdin/stdout.
type Driver struct {
	prompts *cli.Prompts
}

// New creates a Terminal IO Driver reading from stdin.
func New() *Driver {
	return &Driver{prompts: cli.NewPrompts(bufio.NewReader(os.Stdin))}
}

// Request dispatches req to the matching interactive widget.
func (d *Driver) Request(ctx context.Context, req entities.CommandRequest) (entities.CommandResponse, error) {
	switch req.Kind {
	case entities.ReqPromptText:
		return d.promptText(req.Prompt), nil
	case entities.ReqPromptInt:
		return d.promptInt(req.Prompt), nil
	case entities.ReqPromptBool:
		return d.promptBool(req.Prompt), nil
	case entities.ReqPromptList:
		return d.promptList(req.Prompt), nil
	case entities.ReqPromptSelect:
		return d.promptSelect(req.Prompt), nil
	case entities.ReqPromptMultiSelect:
		return d.promptMultiSelect(req.Prompt), nil
	case entities.ReqLogTrace, entities.ReqLogDebug:
		fmt.Fprintln(os.Stderr, helpStyle.Render(req.Text))
		return entities.NewNoneResponse(), nil
	case entities.ReqLogInfo:
		fmt.Fprintln(os.Stderr, logStyle.Render(req.Text))
		return entities.NewNoneResponse(), nil
	case entities.ReqLogWarn:
		fmt.Fprintln(os.Stderr, warnStyle.Render(req.Text))
		return entities.NewNoneResponse(), nil
	case entities.ReqLogError:
		fmt.Fprintln(os.Stderr, errorStyle.Render(req.Text))
		return entities.NewNoneResponse(), nil
	case entities.ReqPrint:
		fmt.Println(req.Text)
		return entities.NewNoneResponse(), nil
	default:
		return entities.CommandResponse{}, entities.NewError(entities.KindIO, "unsupported request kind "+string(req.Kind))
	}
}

func label(info *entities.PromptInfo) string {
	msg := messageStyle.Render(info.Message)
	if info.Help != "" {
		return msg + " " + helpStyle.Render("("+info.Help+")")
	}
	return msg
}

func defaultString(info *entities.PromptInfo) string {
	if info.Default == nil {
		return ""
	}
	return info.Default.AsString()
}

func withDefault(label, defaultValue string) string {
	if defaultValue == "" {
		return label + ": "
	}
	return fmt.Sprintf("%s [%s]: ", label, defaultValue)
}

func (d *Driver) promptText(info *entities.PromptInfo) entities.CommandResponse {
	input, ok := d.prompts.ReadLine(withDefault(label(info), defaultString(info)))
	if !ok {
		return entities.NewAbortResponse()
	}
	if input == "" && info.Default != nil {
		return entities.NewStringResponse(info.Default.AsString())
	}
	if input == "" && info.Default == nil && info.Optional {
		return entities.NewNoneResponse()
	}
	return entities.NewStringResponse(input)
}

func (d *Driver) promptInt(info *entities.PromptInfo) entities.CommandResponse {
	input, ok := d.prompts.ReadLine(withDefault(label(info), defaultString(info)))
	if !ok {
		return entities.NewAbortResponse()
	}
	if input == "" {
		if info.Default != nil {
			return entities.NewIntegerResponse(info.Default.Int)
		}
		if info.Optional {
			return entities.NewNoneResponse()
		}
	}
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return entities.NewErrorResponse(input + " is not a valid integer")
	}
	return entities.NewIntegerResponse(n)
}

func (d *Driver) promptBool(info *entities.PromptInfo) entities.CommandResponse {
	defaultYes := info.Default != nil && info.Default.Bool
	result := d.prompts.PromptYesNo(label(info), defaultYes)
	return entities.NewBooleanResponse(result)
}

func (d *Driver) promptList(info *entities.PromptInfo) entities.CommandResponse {
	values := d.prompts.PromptStringMulti(label(info))
	out := make([]entities.Value, len(values))
	for i, v := range values {
		out[i] = entities.NewStringValue(v)
	}
	return entities.NewArrayResponse(out)
}

func (d *Driver) promptSelect(info *entities.PromptInfo) entities.CommandResponse {
	choice := d.prompts.PromptSelect(label(info), info.Options)
	if choice == "" {
		return entities.NewAbortResponse()
	}
	return entities.NewStringResponse(choice)
}

func (d *Driver) promptMultiSelect(info *entities.PromptInfo) entities.CommandResponse {
	fmt.Println(label(info))
	for i, opt := range info.Options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	input, ok := d.prompts.ReadLine("Select (comma-separated indices): ")
	if !ok {
		return entities.NewAbortResponse()
	}
	if input == "" {
		return entities.NewArrayResponse(nil)
	}

	var out []entities.Value
	for _, tok := range strings.Split(input, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || idx < 1 || idx > len(info.Options) {
			return entities.NewErrorResponse(strings.TrimSpace(tok) + " is not a valid option index")
		}
		out = append(out, entities.NewStringValue(info.Options[idx-1]))
	}
	return entities.NewArrayResponse(out)
}
