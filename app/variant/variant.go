package variant

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"planillas/app/facets"
	"planillas/app/report"
)

//go:embed definitions/*.yaml
var definitions embed.FS

// Default is the variant used when none is configured
const Default = "muni"

// Variant is a validated dashboard configuration: which facets are shown,
// which search boxes exist and which reports are computed
type Variant struct {
	Name     string
	Title    string
	Registry *facets.Registry
	Searches []facets.SearchGroup
	Reports  []string
	Report   report.Config
}

type facetDoc struct {
	Key   string `yaml:"key"`
	Field string `yaml:"field"`
	Label string `yaml:"label"`
	Order string `yaml:"order"`
}

type searchDoc struct {
	Key    string   `yaml:"key"`
	Label  string   `yaml:"label"`
	Fields []string `yaml:"fields"`
}

// document is the yaml shape of a variant. Thresholds are decoded on top of
// the defaults so a document only lists what it changes.
type document struct {
	Name           string             `yaml:"name"`
	Title          string             `yaml:"title"`
	Facets         []facetDoc         `yaml:"facets"`
	Searches       []searchDoc        `yaml:"searches"`
	Reports        []string           `yaml:"reports"`
	Thresholds     report.Thresholds  `yaml:"thresholds"`
	Ages           map[string]float64 `yaml:"ages"`
	PayBreakpoints []float64          `yaml:"pay_breakpoints"`
	MaxBuckets     int                `yaml:"max_buckets"`
}

// Names lists the embedded variants
func Names() []string {
	entries, err := definitions.ReadDir("definitions")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(out)
	return out
}

// Load returns an embedded variant by name, or reads a variant file when
// name looks like a yaml path
func Load(name string) (*Variant, error) {
	if ext := path.Ext(name); ext == ".yaml" || ext == ".yml" {
		return LoadFile(name)
	}
	data, err := definitions.ReadFile("definitions/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown variant %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return Parse(data)
}

// MustLoad is Load for embedded variants; it panics on error
func MustLoad(name string) *Variant {
	v, err := Load(name)
	if err != nil {
		panic(err)
	}
	return v
}

// LoadFile reads a variant document from disk
func LoadFile(filePath string) (*Variant, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read variant file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a variant document. Unknown keys are
// rejected so a typo never silently disables a facet.
func Parse(data []byte) (*Variant, error) {
	doc := document{Thresholds: report.DefaultThresholds()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse variant: %w", err)
	}
	return doc.validate()
}
