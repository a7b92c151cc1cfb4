package entity

import (
	"errors"
	"fmt"
	"time"
)

// Candidate is one judging backend coordinate probed by the evaluator.
type Candidate struct {
	Project  string
	Location string
	Model    string
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Project, c.Location, c.Model)
}

type CandidateSet struct {
	Projects  []string
	Locations []string
	Models    []string
}

// Enumerate returns the cross product with projects outermost and models
// innermost.
func (s CandidateSet) Enumerate() []Candidate {
	result := make([]Candidate, 0, s.Size())
	for _, project := range s.Projects {
		for _, location := range s.Locations {
			for _, model := range s.Models {
				result = append(result, Candidate{
					Project:  project,
					Location: location,
					Model:    model,
				})
			}
		}
	}
	return result
}

func (s CandidateSet) Size() int {
	return len(s.Projects) * len(s.Locations) * len(s.Models)
}

type AttemptOutcome string

const (
	OutcomeSuccess          AttemptOutcome = "success"
	OutcomePermanentFailure AttemptOutcome = "permanent_failure"
	OutcomeTransientFailure AttemptOutcome = "transient_failure"
)

type AttemptStage string

const (
	StageSession  AttemptStage = "session"
	StageModel    AttemptStage = "model"
	StagePrompt   AttemptStage = "prompt"
	StageGenerate AttemptStage = "generate"
)

type Attempt struct {
	Candidate Candidate
	Stage     AttemptStage
	Outcome   AttemptOutcome
	Err       error
	Duration  time.Duration
}

type EvaluationReport struct {
	Judgment  string
	Success   bool
	Cancelled bool
	Winner    *Candidate
	Attempts  []Attempt
}

// EvaluationRecord is one row of a golden dataset.
type EvaluationRecord struct {
	Actual   string `json:"actual"`
	Expected string `json:"expected"`
}

type FailureKind int

const (
	FailureTransient FailureKind = iota
	FailurePermanent
)

func (k FailureKind) Outcome() AttemptOutcome {
	if k == FailurePermanent {
		return OutcomePermanentFailure
	}
	return OutcomeTransientFailure
}

// BackendError tags a judging backend failure as permanent (misconfiguration,
// auth, unknown model) or transient (quota, network, timeout).
type BackendError struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *BackendError) Error() string {
	kind := "transient"
	if e.Kind == FailurePermanent {
		kind = "permanent"
	}
	return fmt.Sprintf("%s (%s): %v", e.Op, kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func Permanent(op string, err error) error {
	return &BackendError{Kind: FailurePermanent, Op: op, Err: err}
}

func Transient(op string, err error) error {
	return &BackendError{Kind: FailureTransient, Op: op, Err: err}
}

// ClassifyFailure maps an attempt error to an outcome. Errors that carry no
// BackendError are treated as transient.
func ClassifyFailure(err error) AttemptOutcome {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind.Outcome()
	}
	return OutcomeTransientFailure
}
