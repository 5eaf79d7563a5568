package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	//go:embed schema/client-config.schema.json
	clientConfigSchema []byte
	//go:embed schema/fastmcp.schema.json
	fastmcpSchema []byte
	//go:embed schema/pyproject.schema.json
	pyprojectSchema []byte
)

var printer = message.NewPrinter(language.English)

// ValidationResult contains the outcome of a manifest validation.
type ValidationResult struct {
	Kind   Kind
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/mcpServers/demo/url")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed, or "semver"
}

// String renders the issue as "path: message".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// compiledSchema compiles one embedded schema on first use.
type compiledSchema struct {
	name   string
	raw    []byte
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

func (c *compiledSchema) get() (*jsonschema.Schema, error) {
	c.once.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(c.raw))
		if err != nil {
			c.err = fmt.Errorf("unmarshaling schema %s: %w", c.name, err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(c.name, doc); err != nil {
			c.err = fmt.Errorf("adding schema resource %s: %w", c.name, err)
			return
		}
		c.schema, c.err = compiler.Compile(c.name)
		if c.err != nil {
			c.err = fmt.Errorf("compiling schema %s: %w", c.name, c.err)
		}
	})
	return c.schema, c.err
}

var schemas = map[Kind]*compiledSchema{
	KindClientConfig: {name: "client-config.schema.json", raw: clientConfigSchema},
	KindFastMCP:      {name: "fastmcp.schema.json", raw: fastmcpSchema},
	KindPyProject:    {name: "pyproject.schema.json", raw: pyprojectSchema},
}

// Validate checks raw manifest bytes of the given kind.
// The error return is for parse or schema compilation failures.
// Validation issues are returned in the ValidationResult.
func Validate(kind Kind, data []byte) (*ValidationResult, error) {
	entry, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for manifest kind %q", kind)
	}
	schema, err := entry.get()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	jsonData, err := toJSON(kind, data)
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	result := &ValidationResult{Kind: kind, Valid: true}

	if err := schema.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		result.Issues = append(result.Issues, extractIssues(validationErr)...)
	}

	result.Issues = append(result.Issues, checkVersions(kind, data)...)
	result.Valid = len(result.Issues) == 0
	return result, nil
}

// ValidateFile reads a file, detects its kind from the name and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	kind := DetectKind(path)
	if kind == KindUnknown {
		return nil, fmt.Errorf("%s is not a recognized manifest", path)
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	result, err := Validate(kind, data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return result, nil
}

// toJSON converts manifest bytes to JSON for the schema validator.
// TOML documents are decoded to a generic map and re-encoded.
func toJSON(kind Kind, data []byte) ([]byte, error) {
	if kind != KindPyProject {
		var probe interface{}
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return data, nil
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	return jsonData, nil
}

// checkVersions reports version fields that are not semantic versions.
// Schema validation has already run, so decode failures are ignored here.
func checkVersions(kind Kind, data []byte) []ValidationIssue {
	var version, path string
	switch kind {
	case KindFastMCP:
		var m FastMCPManifest
		if json.Unmarshal(data, &m) != nil {
			return nil
		}
		version, path = m.Version, "/version"
	case KindPyProject:
		var p PyProject
		if toml.Unmarshal(data, &p) != nil {
			return nil
		}
		version, path = p.Project.Version, "/project/version"
	default:
		return nil
	}

	if version == "" {
		return nil
	}
	if _, err := semver.NewVersion(strings.TrimPrefix(version, "v")); err != nil {
		return []ValidationIssue{{
			Path:    path,
			Message: fmt.Sprintf("%q is not a semantic version", version),
			Keyword: "semver",
		}}
	}
	return nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "anyOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
