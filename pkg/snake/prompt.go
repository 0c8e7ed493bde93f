// Package snake fills in missing command flags by asking on the terminal.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Choice is one entry of a select prompt.
type Choice struct {
	Value string
	Label string
}

// Field is a flag to ask for.
type Field struct {
	Flag     string
	Required bool
	// Choices turns the prompt into a select list.
	Choices []Choice
	// Validate checks free text answers.
	Validate func(string) error
}

var ErrAborted = errors.New("snake: prompt aborted")

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func asFlags(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("--%s, -%s", f.Name, f.Shorthand)
	}
	return fmt.Sprintf("--%s", f.Name)
}

// PromptFlags asks for every field whose flag was not given on the command
// line and sets the answer on the flag.
func PromptFlags(cmd *cobra.Command, fields ...Field) error {
	for _, field := range fields {
		f := cmd.Flags().Lookup(field.Flag)
		if f == nil {
			return fmt.Errorf("snake: unknown flag %q", field.Flag)
		}
		if f.Changed {
			continue
		}
		var (
			answer string
			err    error
		)
		if len(field.Choices) > 0 {
			answer, err = selectFlag(cmd, f, field)
		} else {
			answer, err = promptFlag(cmd, f, field)
		}
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return ErrAborted
			}
			return err
		}
		if answer == "" && !field.Required {
			continue
		}
		if err := cmd.Flags().Set(f.Name, answer); err != nil {
			return fmt.Errorf("snake: %s: %w", asFlags(f), err)
		}
	}
	return nil
}

func promptFlag(cmd *cobra.Command, f *pflag.Flag, field Field) (string, error) {
	validate := func(input string) error {
		input = strings.TrimSpace(input)
		if input == "" {
			if field.Required && f.DefValue == "" {
				return errors.New("required")
			}
			return nil
		}
		if field.Validate != nil {
			return field.Validate(input)
		}
		return nil
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}

	prompt := promptui.Prompt{
		Label:     f.Usage,
		Default:   f.DefValue,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

func selectFlag(cmd *cobra.Command, f *pflag.Flag, field Field) (string, error) {
	items := field.Choices
	if !field.Required {
		items = append([]Choice{{Label: "(skip)"}}, items...)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Label | bold }} {{ .Value | faint }}",
		Inactive: "   {{ .Label }} {{ .Value | faint }}",
		Selected: "{{ .Label | bold }}",
	}

	searcher := func(input string, index int) bool {
		c := items[index]
		name := strings.Replace(strings.ToLower(c.Label+c.Value), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     f.Usage,
		Items:     items,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return items[i].Value, nil
}
