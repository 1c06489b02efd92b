// Package scenario replays scripted pointer sessions through the
// interaction controller and collects the intents it dispatches.
//
// A scenario is a YAML document:
//
//	name: resize-text
//	steps:
//	  - tab: Annotate
//	  - event:
//	      type: transformend
//	      target: {className: Text, attrs: {id: a1, name: Text, scaleX: 2, width: 80}}
//	  - event: {type: dblclick, target: {attrs: {id: a1, name: Text}}}
//	  - wait: 10ms
//	  - draw_mode: true
package scenario

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/dshills/annotate/pkg/domain/types"
	operr "github.com/dshills/annotate/pkg/errors"
	"github.com/dshills/annotate/pkg/surface"
)

//go:embed schema.json
var schemaJSON []byte

// ErrSchema is returned when a scenario document does not match the
// scenario schema.
var ErrSchema = errors.New("scenario schema validation failed")

// StepKind discriminates scenario steps.
type StepKind string

const (
	StepTab      StepKind = "tab"
	StepEvent    StepKind = "event"
	StepWait     StepKind = "wait"
	StepDrawMode StepKind = "draw_mode"
)

// Step is one scenario instruction.
type Step struct {
	Kind StepKind
	// Tab is the tab to switch to for StepTab.
	Tab types.TabID
	// Event is the JSON event document for StepEvent. It is parsed again
	// on every run so node mutations do not leak between runs.
	Event json.RawMessage
	// Wait is the pause for StepWait.
	Wait time.Duration
}

// Scenario is a parsed scenario document.
type Scenario struct {
	Name        string
	Description string
	Steps       []Step
	// Path is the file the scenario was loaded from, if any.
	Path string
}

type yamlScenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Steps       []yamlStep `yaml:"steps"`
}

type yamlStep struct {
	Tab      string         `yaml:"tab,omitempty"`
	Event    map[string]any `yaml:"event,omitempty"`
	Wait     string         `yaml:"wait,omitempty"`
	DrawMode bool           `yaml:"draw_mode,omitempty"`
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	if err := ValidateAgainstSchema(data); err != nil {
		return nil, err
	}

	var doc yamlScenario
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	sc := &Scenario{
		Name:        doc.Name,
		Description: doc.Description,
		Steps:       make([]Step, 0, len(doc.Steps)),
	}

	for i, ys := range doc.Steps {
		step, err := convertStep(ys)
		if err != nil {
			return nil, operr.NewOperationalError("parsing step", doc.Name, i+1, err)
		}
		sc.Steps = append(sc.Steps, step)
	}

	return sc, nil
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}

	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	sc.Path = path
	return sc, nil
}

// LoadAll loads every scenario in paths, stopping at the first error.
func LoadAll(paths []string) ([]*Scenario, error) {
	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := Load(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func convertStep(ys yamlStep) (Step, error) {
	switch {
	case ys.Tab != "":
		return Step{Kind: StepTab, Tab: types.TabID(ys.Tab)}, nil

	case ys.Event != nil:
		raw, err := json.Marshal(ys.Event)
		if err != nil {
			return Step{}, fmt.Errorf("failed to encode event: %w", err)
		}
		// Parse once up front so malformed events fail at load time.
		if _, err := surface.ParseEvent(raw); err != nil {
			return Step{}, err
		}
		return Step{Kind: StepEvent, Event: raw}, nil

	case ys.Wait != "":
		d, err := time.ParseDuration(ys.Wait)
		if err != nil {
			return Step{}, fmt.Errorf("invalid wait: %w", err)
		}
		return Step{Kind: StepWait, Wait: d}, nil

	case ys.DrawMode:
		return Step{Kind: StepDrawMode}, nil
	}

	return Step{}, errors.New("empty step")
}

// ValidateAgainstSchema validates scenario YAML bytes against the embedded
// JSON schema.
func ValidateAgainstSchema(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty scenario input")
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
	}

	return nil
}
