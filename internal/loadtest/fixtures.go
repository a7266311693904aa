package loadtest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fixtureFile is the YAML layout of a fixtures file:
//
//	products:
//	  - product_name: Mug
//	    materials: [ceramic]
//	    ...
type fixtureFile struct {
	Products []Product `yaml:"products"`
}

// LoadFixtures reads products from a YAML file.
func LoadFixtures(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes products from YAML. Every product needs a name.
func ParseFixtures(data []byte) ([]Product, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if len(f.Products) == 0 {
		return nil, ErrNoProducts
	}
	for i, p := range f.Products {
		if p.ProductName == "" {
			return nil, fmt.Errorf("fixture %d: missing product_name", i)
		}
		if p.Materials == nil {
			f.Products[i].Materials = []string{}
		}
	}
	return f.Products, nil
}
