package assumption

import (
	"fmt"
	"os"

	"dcf_lite/pkg/core/utils"
)

// Decode reads an assumption payload written as JSON, sloppy JSON or Hjson.
// Fields the payload leaves out fall back to the form defaults: 0 for
// numbers, 1 share outstanding, the growth method and the unlevered model.
func Decode(data []byte) (AssumptionSet, error) {
	a := AssumptionSet{
		SharesOutstanding: 1,
		TVMethod:          TVGrowth,
		ModelType:         Unlevered,
	}
	if _, err := utils.SmartParse(string(data), &a); err != nil {
		return AssumptionSet{}, fmt.Errorf("failed to decode assumptions: %w", err)
	}
	return a, nil
}

// LoadFile decodes and validates the assumption file at path.
func LoadFile(path string) (AssumptionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AssumptionSet{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	a, err := Decode(data)
	if err != nil {
		return AssumptionSet{}, err
	}
	if err := a.Validate(); err != nil {
		return AssumptionSet{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
