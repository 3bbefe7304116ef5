package internal

import (
	"errors"
	"fmt"
	"strings"
)

const (
	FormatPDF  = "pdf"
	FormatText = "txt"

	ReportBaseName = "ProjectReport"
	DefaultTitle   = "Android Project Report"
	DefaultFont    = "NotoSansSC-Regular.ttf"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ReportOptions - public options from CLI.
type ReportOptions struct {
	Root     string
	Rules    string
	Format   string
	Font     string
	Title    string
	Encoding string
	Depth    int
	Progress bool

	rules  RuleSet
	decode Decoder
}

// Validate checks invariants.
func (o *ReportOptions) Validate() error {
	if strings.TrimSpace(o.Root) == "" {
		return errors.New("project root is required")
	}
	if _, err := Rules(o.rulesName()); err != nil {
		return err
	}
	switch o.format() {
	case FormatPDF, FormatText:
	default:
		return fmt.Errorf("%w %q (known: %s, %s)", ErrUnknownFormat, o.Format, FormatPDF, FormatText)
	}
	if o.Depth < 0 {
		return errors.New("depth must be >= 0")
	}
	if _, err := NewDecoder(o.Encoding); err != nil {
		return err
	}
	return nil
}

// Prepare resolves the rule set and decoder and fills defaults.
// Call after a successful Validate.
func (o *ReportOptions) Prepare() {
	o.Rules = o.rulesName()
	o.Format = o.format()
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Font == "" {
		o.Font = DefaultFont
	}
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	o.rules, _ = Rules(o.Rules)
	o.decode, _ = NewDecoder(o.Encoding)
}

// OutputName is the constant artifact file name for the chosen format.
func (o *ReportOptions) OutputName() string {
	return ReportBaseName + "." + o.format()
}

func (o *ReportOptions) rulesName() string {
	if o.Rules == "" {
		return DefaultRules
	}
	return o.Rules
}

func (o *ReportOptions) format() string {
	if o.Format == "" {
		return FormatPDF
	}
	return strings.ToLower(o.Format)
}
