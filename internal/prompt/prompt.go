// Package prompt asks the operator for a module's answers on a terminal.
// Questions are read line by line from an io.Reader, so the flow can be
// driven by a test or a pipe as easily as by a person.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/fpbx-tools/modgen/internal/params"
)

// ErrAborted is returned when the operator declines the final confirmation.
var ErrAborted = errors.New("generation aborted")

// Defaults returns the answers offered when the operator just presses enter.
func Defaults() params.Answers {
	return params.Answers{
		Name:        "helloworld",
		Version:     "13.0.1",
		Description: "Generated Module",
		License:     string(params.LicenseAGPLv3),
		Category:    string(params.CategoryConnectivity),
	}
}

var question = color.New(color.FgGreen)

// Ask runs the question flow and returns the confirmed answers. The module
// name is normalized (trimmed and lowercased) before it is returned.
func Ask(r io.Reader, w io.Writer, defaults params.Answers) (params.Answers, error) {
	reader := bufio.NewReader(r)
	var a params.Answers

	name, err := ask(reader, w, "What is your module's name no spaces?", defaults.Name)
	if err != nil {
		return a, err
	}
	a.Name = params.Normalize(name)

	if a.Version, err = ask(reader, w, "What is your module's version?", defaults.Version); err != nil {
		return a, err
	}
	if a.Description, err = ask(reader, w, "What is your module's description?", defaults.Description); err != nil {
		return a, err
	}

	licenses := make([]string, len(params.Licenses))
	for i, l := range params.Licenses {
		licenses[i] = string(l)
	}
	if a.License, err = choose(reader, w, "What is the license for this module?", licenses, defaults.License); err != nil {
		return a, err
	}

	categories := make([]string, len(params.Categories))
	for i, c := range params.Categories {
		categories[i] = string(c)
	}
	if a.Category, err = choose(reader, w, "What type of module is this?", categories, defaults.Category); err != nil {
		return a, err
	}

	ok, err := confirm(reader, w, a)
	if err != nil {
		return a, err
	}
	if !ok {
		return a, ErrAborted
	}
	return a, nil
}

// ask prints a question and returns the trimmed reply, or def when the
// reply is empty.
func ask(reader *bufio.Reader, w io.Writer, text, def string) (string, error) {
	question.Fprintf(w, "%s ", text)
	if def != "" {
		fmt.Fprintf(w, "[%s] ", def)
	}

	line, err := readLine(reader)
	if err != nil {
		return "", fmt.Errorf("reading answer to %q: %w", text, err)
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// choose presents a numbered list. The reply may be the item's number or
// its exact value; an empty reply selects def.
func choose(reader *bufio.Reader, w io.Writer, text string, items []string, def string) (string, error) {
	question.Fprintf(w, "%s\n", text)
	for i, item := range items {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Enter number [1-%d] (default %s): ", len(items), def)

	line, err := readLine(reader)
	if err != nil {
		return "", fmt.Errorf("reading selection: %w", err)
	}
	if line == "" {
		return def, nil
	}
	for _, item := range items {
		if line == item {
			return item, nil
		}
	}
	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(items) {
		return "", fmt.Errorf("%w: selection %q: choose 1-%d", params.ErrInvalidAnswer, line, len(items))
	}
	return items[num-1], nil
}

// confirm shows a summary of the answers and asks for a yes/no reply.
// Anything other than y/yes counts as no.
func confirm(reader *bufio.Reader, w io.Writer, a params.Answers) (bool, error) {
	fmt.Fprintln(w)
	question.Fprintln(w, "Generate a module with the following information?")
	fmt.Fprintf(w, "Module rawname: %s\n", a.Name)
	fmt.Fprintf(w, "Module version: %s\n", a.Version)
	fmt.Fprintf(w, "Module description: %s\n", a.Description)
	fmt.Fprintf(w, "Module type: %s\n", a.Category)
	fmt.Fprintf(w, "Module License: %s\n", a.License)
	fmt.Fprint(w, "Type [yes|no]: ")

	line, err := readLine(reader)
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine returns the next line without its terminator. A final line
// without a newline is accepted; EOF with no data is an error.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
