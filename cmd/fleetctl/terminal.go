package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// terminal implements the screen UI interfaces on a line-oriented console.
// Images are "picked" from paths supplied on the command line.
type terminal struct {
	in    *bufio.Reader
	out   io.Writer
	route string
	files map[string]string
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{in: bufio.NewReader(in), out: out, files: map[string]string{}}
}

func (t *terminal) Alert(title, message string) {
	if message == "" {
		fmt.Fprintf(t.out, "%s\n", title)
		return
	}
	fmt.Fprintf(t.out, "%s: %s\n", title, message)
}

func (t *terminal) Push(route string) {
	logrus.WithField("route", route).Debug("push")
	t.route = route
}

func (t *terminal) Replace(route string) {
	logrus.WithField("route", route).Debug("replace")
	t.route = route
}

// Dial prints the URL; a terminal has no phone handler.
func (t *terminal) Dial(url string) error {
	fmt.Fprintf(t.out, "Call %s\n", url)
	return nil
}

func (t *terminal) PickImage(field string) (string, error) {
	path := t.files[field]
	if path == "" {
		return "", nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	return path, nil
}

// Prompt reads one line after printing label.
func (t *terminal) Prompt(label string) (string, error) {
	fmt.Fprint(t.out, label)
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question; anything but y or yes is a no.
func (t *terminal) Confirm(question string) bool {
	answer, err := t.Prompt(question + " [y/N] ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
