// Package automation loads scripted trace scenarios from YAML.
package automation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/experiment"
	"github.com/san-kum/partfield/internal/input"
)

// Scenario is a named cursor script. Preset is optional and only used when
// the command line does not pick one.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Mode   string     `yaml:"mode"`
	Target [2]float32 `yaml:"target"`
	Frames int        `yaml:"frames"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Script converts the scenario into experiment steps.
func (s *Scenario) Script() ([]experiment.Step, error) {
	steps := make([]experiment.Step, 0, len(s.Steps))
	for i, st := range s.Steps {
		mode, ok := input.ParseMode(st.Mode)
		if !ok {
			return nil, fmt.Errorf("step %d: unknown mode %q", i+1, st.Mode)
		}
		if st.Frames < 0 {
			return nil, fmt.Errorf("step %d: negative frame count", i+1)
		}
		steps = append(steps, experiment.Step{
			Mode:   mode,
			Target: dynamo.Vec2{X: st.Target[0], Y: st.Target[1]},
			Frames: st.Frames,
		})
	}
	return steps, nil
}

// Save writes the scenario back as YAML.
func (s *Scenario) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FromScript builds a scenario from parsed steps.
func FromScript(name string, steps []experiment.Step) *Scenario {
	s := &Scenario{Name: name, Steps: make([]ScenarioStep, 0, len(steps))}
	for _, st := range steps {
		s.Steps = append(s.Steps, ScenarioStep{
			Mode:   st.Mode.String(),
			Target: [2]float32{st.Target.X, st.Target.Y},
			Frames: st.Frames,
		})
	}
	return s
}
