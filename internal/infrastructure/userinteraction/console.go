package userinteraction

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"isa-agent/internal/application/port/output"
	"isa-agent/internal/domain/entity"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

type ConsoleUserInteraction struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewConsoleUserInteraction(in io.Reader, out io.Writer) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// AskQuestion accepts a final line without a trailing newline.
func (u *ConsoleUserInteraction) AskQuestion(ctx context.Context, question string) (string, error) {
	fmt.Fprintf(u.out, "%s\n> ", question)

	answer, err := u.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func (u *ConsoleUserInteraction) ShowToolStart(ctx context.Context, tool entity.ToolName, description, rule string) {
	icon, name := getToolDisplay(tool)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(u.out, "\n%s %s\n", icon, name)

	dim := color.New(color.Faint)
	if description != "" {
		dim.Fprintf(u.out, "   %s\n", description)
	}
	dim.Fprintf(u.out, "   rule: %s\n\n", rule)
}

func (u *ConsoleUserInteraction) ShowToolResult(ctx context.Context, tool entity.ToolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(u.out, "❌ Error: ")
		fmt.Fprintln(u.out, result)
		return
	}
	fmt.Fprintln(u.out, result)
}

func getToolDisplay(tool entity.ToolName) (string, string) {
	displays := map[entity.ToolName][2]string{
		entity.ToolVectorSearch:   {"🔎", "Document search"},
		entity.ToolKnowledgeGraph: {"🕸️", "Knowledge graph"},
		entity.ToolValidation:     {"✅", "Identifier validation"},
	}

	if display, ok := displays[tool]; ok {
		return display[0], display[1]
	}
	return "🔧", string(tool)
}
