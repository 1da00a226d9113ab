package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
)

// Formatter is the interface for output formatting
type Formatter interface {
	Print(data any) error
	PrintList(items any, columns []Column) error
	PrintError(err error)
	PrintHint(msg string)
}

// Column defines a column for table/list output
type Column struct {
	Name  string // Display name
	Key   string // Struct field name or map key
	Width int    // Width for rich mode (0 = auto)
}

// New creates a formatter for the specified mode writing to stdout and stderr
func New(mode string) Formatter {
	return NewWithWriters(mode, os.Stdout, os.Stderr)
}

// NewWithWriters creates a formatter that writes results to out and
// errors and hints to errOut
func NewWithWriters(mode string, out, errOut io.Writer) Formatter {
	switch mode {
	case "json":
		return &jsonFormatter{out: out, errOut: errOut}
	case "rich":
		return &richFormatter{out: out, errOut: errOut, profile: termenv.ColorProfile()}
	default:
		return &plainFormatter{out: out, errOut: errOut}
	}
}

// jsonFormatter outputs JSON
type jsonFormatter struct {
	out, errOut io.Writer
}

func (f *jsonFormatter) Print(data any) error {
	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (f *jsonFormatter) PrintList(items any, columns []Column) error {
	v := indirect(reflect.ValueOf(items))
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("PrintList requires a slice")
	}

	return f.Print(map[string]any{
		"data":  items,
		"count": v.Len(),
	})
}

func (f *jsonFormatter) PrintError(err error) {
	enc := json.NewEncoder(f.errOut)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]string{"error": err.Error()})
}

// PrintHint is a no-op: JSON consumers get the error object only
func (f *jsonFormatter) PrintHint(msg string) {}

// plainFormatter outputs tab-separated values
type plainFormatter struct {
	out, errOut io.Writer
}

func (f *plainFormatter) Print(data any) error {
	fields := fieldsOf(data)
	if len(fields) == 1 && fields[0][0] == "" {
		fmt.Fprintln(f.out, fields[0][1])
		return nil
	}
	for _, kv := range fields {
		fmt.Fprintf(f.out, "%s\t%s\n", kv[0], kv[1])
	}
	return nil
}

func (f *plainFormatter) PrintList(items any, columns []Column) error {
	rows, err := rowsOf(items, columns)
	if err != nil {
		return err
	}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}
	fmt.Fprintln(f.out, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(f.out, strings.Join(row, "\t"))
	}
	return nil
}

func (f *plainFormatter) PrintError(err error) {
	fmt.Fprintf(f.errOut, "error: %v\n", err)
}

func (f *plainFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.errOut, "hint: %v\n", msg)
}

// richFormatter outputs styled content for terminal
type richFormatter struct {
	out, errOut io.Writer
	profile     termenv.Profile
}

var (
	keyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	hintStyle  = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8"))
)

func (f *richFormatter) Print(data any) error {
	fields := fieldsOf(data)
	if len(fields) == 1 && fields[0][0] == "" {
		// Bare values (tokens, passwords) stay unstyled so they can be copied
		fmt.Fprintln(f.out, fields[0][1])
		return nil
	}
	for _, kv := range fields {
		fmt.Fprintf(f.out, "%s: %s\n", f.render(keyStyle, kv[0]), f.render(valueStyle, kv[1]))
	}
	return nil
}

func (f *richFormatter) PrintList(items any, columns []Column) error {
	rows, err := rowsOf(items, columns)
	if err != nil {
		return err
	}
	RenderTable(f.out, columns, rows)
	return nil
}

func (f *richFormatter) PrintError(err error) {
	fmt.Fprintln(f.errOut, f.render(errorStyle, "error: "+err.Error()))
}

func (f *richFormatter) PrintHint(msg string) {
	fmt.Fprintln(f.errOut, f.render(hintStyle, "hint: "+msg))
}

func (f *richFormatter) render(style lipgloss.Style, s string) string {
	if f.profile == termenv.Ascii {
		return s
	}
	return style.Render(s)
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return v
}

// fieldsOf flattens a struct into name/value pairs; any other value becomes
// a single pair with an empty name
func fieldsOf(data any) [][2]string {
	v := indirect(reflect.ValueOf(data))
	if v.Kind() != reflect.Struct {
		return [][2]string{{"", fmt.Sprintf("%v", data)}}
	}

	t := v.Type()
	fields := make([][2]string, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		fields = append(fields, [2]string{t.Field(i).Name, fmt.Sprintf("%v", v.Field(i).Interface())})
	}
	return fields
}

// rowsOf extracts column values from a slice of structs or maps
func rowsOf(items any, columns []Column) ([][]string, error) {
	v := indirect(reflect.ValueOf(items))
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("PrintList requires a slice")
	}

	rows := make([][]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := indirect(v.Index(i))
		row := make([]string, len(columns))
		for j, col := range columns {
			var field reflect.Value
			switch item.Kind() {
			case reflect.Map:
				field = item.MapIndex(reflect.ValueOf(col.Key))
			case reflect.Struct:
				field = item.FieldByName(col.Key)
			}
			if field.IsValid() {
				row[j] = fmt.Sprintf("%v", field.Interface())
			}
		}
		rows[i] = row
	}
	return rows, nil
}
