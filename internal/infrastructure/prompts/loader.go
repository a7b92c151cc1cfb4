package prompts

import (
	_ "embed"
)

//go:embed judge.txt
var JudgePrompt string
