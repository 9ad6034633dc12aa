// Package askcmder provides the ask command for querying a running ragd server.
package askcmder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/primefold/ragd/api"
	"github.com/primefold/ragd/pkg/cliui"
)

const askLongDesc string = `Ask a running ragd server a question.

Examples:
  ragd ask "可以绑定多个手机号吗？"
  ragd ask --target http://localhost:8080 "如何重置密码？"`

const askShortDesc string = "Ask the server a question"

type askCommander struct {
	target string
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmder.run(args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.target, "target", "t", "http://localhost:8080", "ragd server URL")

	return cmd
}

func (c *askCommander) run(question string) error {
	var answer api.AskResponse

	err := cliui.Step(os.Stdout, "Asking", func() error {
		var stepErr error
		answer, stepErr = c.ask(question)
		return stepErr
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n\n  %s\n\n",
		cliui.AnswerStyle.Render(answer.Answer),
		cliui.StepStyle.Render(fmt.Sprintf("answered in %dms", answer.LatencyMS)),
	)
	return nil
}

func (c *askCommander) ask(question string) (api.AskResponse, error) {
	payload, err := json.Marshal(api.AskRequest{Question: question})
	if err != nil {
		return api.AskResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Post(
		strings.TrimRight(c.target, "/")+"/v1/ask",
		"application/json",
		bytes.NewReader(payload),
	)
	if err != nil {
		return api.AskResponse{}, fmt.Errorf("reaching server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errResp api.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return api.AskResponse{}, fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return api.AskResponse{}, fmt.Errorf("server error (%d): %s", resp.StatusCode, string(body))
	}

	var answer api.AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return api.AskResponse{}, fmt.Errorf("decoding response: %w", err)
	}

	return answer, nil
}
