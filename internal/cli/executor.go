// Package cli runs registered tools locally and formats their results for
// the terminal. It is the non-MCP front door to the same dispatcher the
// MCP server uses, so CLI and MCP behavior cannot drift apart.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"renderctl/internal/tools"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how results are rendered.
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ExecutorOptions configures a ToolExecutor.
type ExecutorOptions struct {
	Format OutputFormat
	Quiet  bool

	// Out and ErrOut default to os.Stdout and os.Stderr.
	Out    io.Writer
	ErrOut io.Writer
}

// ToolExecutor dispatches tools and renders the results.
type ToolExecutor struct {
	dispatcher *tools.Dispatcher
	options    ExecutorOptions
}

// NewToolExecutor builds an executor over a dispatcher.
func NewToolExecutor(dispatcher *tools.Dispatcher, options ExecutorOptions) (*ToolExecutor, error) {
	switch options.Format {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
	case "":
		options.Format = OutputFormatTable
	default:
		return nil, fmt.Errorf("unsupported output format %q (want table, json, or yaml)", options.Format)
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.ErrOut == nil {
		options.ErrOut = os.Stderr
	}
	return &ToolExecutor{dispatcher: dispatcher, options: options}, nil
}

// Execute dispatches a tool and prints the formatted result. A tool
// failure is printed to ErrOut and returned as an error so commands exit
// non-zero.
func (e *ToolExecutor) Execute(ctx context.Context, toolName string, arguments map[string]interface{}) error {
	result := e.dispatcher.Dispatch(ctx, tools.Invocation{Name: toolName, Arguments: arguments})

	if result.IsError() {
		fmt.Fprintf(e.options.ErrOut, "Error: %s\n", result.Failure.String())
		return fmt.Errorf("%s", result.Failure.String())
	}

	return e.formatOutput(result)
}

func (e *ToolExecutor) formatOutput(result tools.Result) error {
	switch e.options.Format {
	case OutputFormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result as JSON: %w", err)
		}
		fmt.Fprintln(e.options.Out, string(data))
		return nil
	case OutputFormatYAML:
		return e.outputYAML(result)
	default:
		return e.outputTable(result)
	}
}

func (e *ToolExecutor) outputYAML(result tools.Result) error {
	// Round-trip through JSON so yaml sees plain maps with the same field
	// names the JSON output uses.
	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(jsonData, &generic); err != nil {
		return fmt.Errorf("decoding result: %w", err)
	}
	yamlData, err := yaml.Marshal(generic)
	if err != nil {
		return fmt.Errorf("converting result to YAML: %w", err)
	}
	fmt.Fprint(e.options.Out, string(yamlData))
	return nil
}

func (e *ToolExecutor) outputTable(result tools.Result) error {
	if !e.options.Quiet && result.Summary != "" {
		fmt.Fprintln(e.options.Out, text.FgHiWhite.Sprint(result.Summary))
	}
	if result.Data == nil {
		return nil
	}

	jsonData, err := json.Marshal(result.Data)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(jsonData, &generic); err != nil {
		return fmt.Errorf("decoding result: %w", err)
	}

	switch d := generic.(type) {
	case map[string]interface{}:
		return e.tableFromObject(d)
	case []interface{}:
		return e.tableFromArray(d)
	default:
		fmt.Fprintln(e.options.Out, string(jsonData))
		return nil
	}
}

// tableFromObject renders wrapped collections ({"services": [...], "total": N})
// as a table and everything else as key-value rows.
func (e *ToolExecutor) tableFromObject(data map[string]interface{}) error {
	if key := findArrayKey(data); key != "" {
		arr := data[key].([]interface{})
		if err := e.tableFromArray(arr); err != nil {
			return err
		}
		if total, ok := data["total"]; ok && !e.options.Quiet {
			fmt.Fprintf(e.options.Out, "\n%s %v\n", text.FgHiBlue.Sprint("Total:"), total)
		}
		return nil
	}
	return e.keyValueTable(data)
}

func findArrayKey(data map[string]interface{}) string {
	for _, key := range []string{"services", "deploys", "logs", "items", "results"} {
		if _, ok := data[key].([]interface{}); ok {
			return key
		}
	}
	return ""
}

func (e *ToolExecutor) tableFromArray(data []interface{}) error {
	if len(data) == 0 {
		fmt.Fprintln(e.options.Out, text.FgYellow.Sprint("No items found"))
		return nil
	}

	first, ok := data[0].(map[string]interface{})
	if !ok {
		for _, item := range data {
			fmt.Fprintf(e.options.Out, "%v\n", item)
		}
		return nil
	}

	columns := orderedColumns(first)

	t := table.NewWriter()
	t.SetOutputMirror(e.options.Out)
	t.SetStyle(table.StyleRounded)

	headers := make(table.Row, len(columns))
	for i, col := range columns {
		headers[i] = text.FgHiCyan.Sprint(strings.ToUpper(col))
	}
	t.AppendHeader(headers)

	for _, item := range data {
		row := make(table.Row, len(columns))
		itemMap, _ := item.(map[string]interface{})
		for i, col := range columns {
			row[i] = cellValue(itemMap[col])
		}
		t.AppendRow(row)
	}

	t.Render()
	return nil
}

func (e *ToolExecutor) keyValueTable(data map[string]interface{}) error {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	t := table.NewWriter()
	t.SetOutputMirror(e.options.Out)
	t.SetStyle(table.StyleRounded)
	for _, key := range keys {
		t.AppendRow(table.Row{text.FgHiCyan.Sprint(key), cellValue(data[key])})
	}
	t.Render()
	return nil
}

// orderedColumns puts well-known identity columns first and the rest in
// sorted order.
func orderedColumns(sample map[string]interface{}) []string {
	priority := []string{"id", "name", "type", "status", "region", "timestamp", "level", "message"}
	seen := make(map[string]bool, len(sample))
	var columns []string
	for _, col := range priority {
		if _, ok := sample[col]; ok {
			columns = append(columns, col)
			seen[col] = true
		}
	}
	var rest []string
	for col := range sample {
		if !seen[col] {
			rest = append(rest, col)
		}
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

func cellValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return val
	}
}
