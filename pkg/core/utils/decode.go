package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// Strategy names the parser that accepted a payload.
type Strategy string

const (
	StrategyJSON   Strategy = "json"
	StrategyRepair Strategy = "json-repair"
	StrategyHJSON  Strategy = "hjson"
)

// RepairJSON fixes the usual hand-edit mistakes: unquoted keys, single
// quotes, trailing commas, comments, unclosed brackets, code fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// HJSONToJSON converts Hjson (comments, unquoted keys and strings, optional
// commas) into standard JSON.
func HJSONToJSON(data string) (string, error) {
	var v interface{}
	if err := hjson.Unmarshal([]byte(data), &v); err != nil {
		return "", fmt.Errorf("hjson parse failed: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("json marshal failed: %w", err)
	}
	return string(out), nil
}

// SmartParse decodes input into target, trying in order:
//  1. standard JSON
//  2. Hjson
//  3. JSON repair
//
// Hjson runs before repair because repair reads an unquoted Hjson value as a
// string running to the end of the document. Every strategy ends in
// encoding/json so target's json tags and custom unmarshalers apply the same
// way. Fields absent from input keep whatever target already held.
func SmartParse(input string, target interface{}) (Strategy, error) {
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return StrategyJSON, nil
	}

	if converted, err := HJSONToJSON(input); err == nil {
		if err := json.Unmarshal([]byte(converted), target); err == nil {
			return StrategyHJSON, nil
		}
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return StrategyRepair, nil
		}
	}

	return "", fmt.Errorf("smart parse failed: input is not JSON, Hjson or repairable JSON")
}
