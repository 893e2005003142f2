package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseServiceYAML parses and validates a YAML service map. It returns the
// validated document, or an ordered list of human-readable errors suitable
// for direct display. Exactly one of the two return values is non-nil.
//
// The pipeline short-circuits between stages: tab rejection, syntactic
// parse, per-field schema validation, then cross-field checks. Within the
// schema and cross-field stages every violation is collected so a single
// pass reports all problems.
func ParseServiceYAML(input string) (*Document, []string) {
	// Tabs are legal YAML but a reliable source of indentation confusion.
	if strings.Contains(input, "\t") {
		return nil, []string{"YAML contains tab characters. Use spaces for indentation instead."}
	}

	var raw interface{}
	if err := yaml.Unmarshal([]byte(input), &raw); err != nil {
		return nil, []string{err.Error()}
	}

	if raw == nil {
		return nil, []string{"YAML document is empty"}
	}

	root, ok := raw.(map[string]interface{})
	if !ok {
		return nil, []string{"YAML root must be an object with 'services' and 'connections' keys"}
	}

	doc, errs := validateDocument(root)
	if len(errs) > 0 {
		return nil, errs
	}

	if errs := crossCheck(doc); len(errs) > 0 {
		return nil, errs
	}

	return doc, nil
}

// crossCheck enforces the document-level rules. Each rule is evaluated
// independently and contributes at most one error.
func crossCheck(doc *Document) []string {
	var errs []string

	if len(doc.Services) == 0 {
		errs = append(errs, "At least one service is required")
	}

	ids := make(map[string]bool, len(doc.Services))
	duplicate := false
	for _, svc := range doc.Services {
		if ids[svc.ID] {
			duplicate = true
		}
		ids[svc.ID] = true
	}
	if duplicate {
		errs = append(errs, "Duplicate service IDs found")
	}

	dangling := false
	selfLoop := false
	for _, conn := range doc.Connections {
		if !ids[conn.Source] || !ids[conn.Target] {
			dangling = true
		}
		if conn.Source == conn.Target {
			selfLoop = true
		}
	}
	if dangling {
		errs = append(errs, "Connection references a service ID that is not defined in the services list")
	}
	if selfLoop {
		errs = append(errs, "A service cannot connect to itself")
	}

	return errs
}
