package obd

import (
	"fmt"

	"github.com/looplab/tarjan"
)

// Parameter describes one telemetry value the dashboard can display.
type Parameter struct {
	Id    string  `json:"id"`
	Title string  `json:"title"`
	Unit  string  `json:"unit"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`

	// Derived parameters are computed from other parameters instead of
	// being queried from the adapter.
	Derived   bool     `json:"derived,omitempty"`
	DependsOn []string `json:"dependsOn,omitempty"`
}

// parameterList is the single source of truth for every known parameter,
// in dashboard display order.
var parameterList = []Parameter{
	{Id: "SPEED", Title: "Speed", Unit: "mph", Min: 0, Max: 160},
	{Id: "RPM", Title: "Engine RPM", Unit: "rpm", Min: 0, Max: 8000},
	{Id: "COOLANT_TEMP", Title: "Coolant Temp", Unit: "°C", Min: -40, Max: 215},
	{Id: "CONTROL_MODULE_VOLTAGE", Title: "Voltage", Unit: "V", Min: 0, Max: 16},
	{Id: "ENGINE_LOAD", Title: "Engine Load", Unit: "%", Min: 0, Max: 100},
	{Id: "THROTTLE_POS", Title: "Throttle", Unit: "%", Min: 0, Max: 100},
	{Id: "INTAKE_TEMP", Title: "Intake Air Temp", Unit: "°C", Min: -40, Max: 215},
	{Id: "TIMING_ADVANCE", Title: "Timing Advance", Unit: "°", Min: -64, Max: 64},
	{Id: "MAF", Title: "Mass Air Flow", Unit: "g/s", Min: 0, Max: 655},
	{Id: "COMMANDED_EQUIV_RATIO", Title: "Air/Fuel Ratio", Unit: ":1", Min: 10, Max: 20},
	{Id: "FUEL_LEVEL", Title: "Fuel Level", Unit: "%", Min: 0, Max: 100},
	{Id: "INTAKE_PRESSURE", Title: "Intake Pressure", Unit: "kPa", Min: 0, Max: 255},
	{Id: "SHORT_FUEL_TRIM_1", Title: "Short Fuel Trim", Unit: "%", Min: -100, Max: 100},
	{Id: "LONG_FUEL_TRIM_1", Title: "Long Fuel Trim", Unit: "%", Min: -100, Max: 100},
	{Id: "O2_B1S1", Title: "O2 Sensor", Unit: "V", Min: 0, Max: 1.275},
	{Id: "FUEL_PRESSURE", Title: "Fuel Pressure", Unit: "kPa", Min: 0, Max: 765},
	{Id: "OIL_TEMP", Title: "Oil Temp", Unit: "°C", Min: -40, Max: 210},
	{Id: "FUEL_ECONOMY", Title: "Fuel Economy", Unit: "mpg", Min: 0, Max: 100,
		Derived: true, DependsOn: []string{"SPEED", "MAF", "COMMANDED_EQUIV_RATIO"}},
	{Id: "DISTANCE_TO_EMPTY", Title: "Distance To Empty", Unit: "mi", Min: 0, Max: 600,
		Derived: true, DependsOn: []string{"FUEL_LEVEL", "FUEL_ECONOMY"}},
	{Id: "IGNITION_TIMING", Title: "Ignition Timing", Unit: "°", Min: -64, Max: 64,
		Derived: true, DependsOn: []string{"TIMING_ADVANCE"}},
}

var parameterMap = func() map[string]Parameter {
	result := make(map[string]Parameter, len(parameterList))
	for _, p := range parameterList {
		result[p.Id] = p
	}
	return result
}()

// Parameters returns all known parameters in display order.
func Parameters() []Parameter {
	return append([]Parameter{}, parameterList...)
}

// GetParameter looks up a parameter by id.
func GetParameter(id string) (Parameter, bool) {
	p, ok := parameterMap[id]
	return p, ok
}

// IsKnownParameter reports whether id names a known parameter.
func IsKnownParameter(id string) bool {
	_, ok := parameterMap[id]
	return ok
}

// ValidateParameters checks the derived parameter definitions: every
// dependency must exist and the dependency graph must be acyclic.
func ValidateParameters() error {
	graph := map[interface{}][]interface{}{}
	for _, p := range parameterList {
		var deps []interface{}
		for _, dep := range p.DependsOn {
			if !IsKnownParameter(dep) {
				return fmt.Errorf("parameter %s depends on unknown parameter '%s'", p.Id, dep)
			}
			deps = append(deps, dep)
		}
		graph[p.Id] = deps
	}

	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return fmt.Errorf("parameter dependency cycle: %v", items)
		}
	}
	return nil
}
