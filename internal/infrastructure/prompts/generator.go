package prompts

import (
	"bytes"
	"strings"
	"text/template"
)

type JudgePromptData struct {
	Expected string
	Actual   string
}

// GenerateJudgePrompt renders baseTemplate with expected and actual embedded
// verbatim. text/template performs no escaping.
func GenerateJudgePrompt(baseTemplate, expected, actual string) (string, error) {
	tmpl, err := template.New("judge").Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, JudgePromptData{Expected: expected, Actual: actual}); err != nil {
		return "", err
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
