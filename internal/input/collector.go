// Package input gathers the candidate profile sent to the hiring API.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/ramaditya/webtask/internal/models"
)

// Collector prompts on out and reads one line per value from in.
type Collector struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewCollector returns a Collector reading from in and prompting on out.
func NewCollector(in io.Reader, out io.Writer) *Collector {
	return &Collector{reader: bufio.NewReader(in), out: out}
}

// Collect reads name, regNo and email, in that order. Values are not validated.
func (c *Collector) Collect() (models.WebhookRequest, error) {
	var (
		req models.WebhookRequest
		err error
	)
	if req.Name, err = c.readLine("Enter your name: "); err != nil {
		return req, err
	}
	if req.RegNo, err = c.readLine("Enter your regNo: "); err != nil {
		return req, err
	}
	if req.Email, err = c.readLine("Enter your email: "); err != nil {
		return req, err
	}
	return req, nil
}

func (c *Collector) readLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(c.out, prompt)
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", errors.Wrap(err, "failed to read input")
		}
		// A last line without a terminating newline still counts.
		if line == "" {
			return "", errors.Wrapf(io.ErrUnexpectedEOF, "no input for %q", prompt)
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
