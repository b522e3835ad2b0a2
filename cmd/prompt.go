package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jywlabs/kalam/internal/form"
	"github.com/jywlabs/kalam/internal/schema"
)

// prompter asks questions on out and reads answers from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// line reads one answer. An empty answer keeps current.
func (p *prompter) line(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	input, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return current, nil
	}
	return input, nil
}

// block reads lines until an empty line or end of input.
func (p *prompter) block(label, current string) (string, error) {
	fmt.Fprintf(p.out, "%s (finish with an empty line):\n", label)
	if current != "" {
		fmt.Fprintf(p.out, "  current: %s\n", current)
	}
	var lines []string
	for {
		input, err := p.in.ReadString('\n')
		text := strings.TrimRight(input, "\r\n")
		if text == "" {
			if err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			break
		}
		lines = append(lines, text)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
	}
	if len(lines) == 0 {
		return current, nil
	}
	return strings.Join(lines, "\n"), nil
}

// collectForm walks the title and every field of the controller's content
// type, prompting for each. Required inputs are marked with '*'.
func collectForm(ctrl *form.Controller, p *prompter) error {
	ct := ctrl.ContentType()

	fmt.Fprintf(p.out, "\nFill in the %s form:\n", strings.ToLower(ct.Label))
	fmt.Fprintln(p.out, "(Press Enter to keep the value in brackets; * marks required fields)")
	fmt.Fprintln(p.out)

	title, err := p.line(form.TitleLabel+" *", ctrl.Field(form.TitleField))
	if err != nil {
		return err
	}
	ctrl.UpdateField(form.TitleField, title)

	for _, f := range ct.Fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		if f.Placeholder != "" {
			fmt.Fprintf(p.out, "  %s\n", f.Placeholder)
		}

		var value string
		if f.Kind == schema.KindMultiLine {
			value, err = p.block(label, ctrl.Field(f.ID))
		} else {
			value, err = p.line(label, ctrl.Field(f.ID))
		}
		if err != nil {
			return err
		}
		ctrl.UpdateField(f.ID, value)
	}
	fmt.Fprintln(p.out)
	return nil
}
