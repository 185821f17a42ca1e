package types

import (
	"fmt"
	"time"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed seed_catalog.yaml
var seedCatalogYAML []byte

type seedFile struct {
	Products []Product `yaml:"products"`
}

// SeedCatalog returns the built-in product catalog used when the products
// collection is empty on first run.
func SeedCatalog() ([]Product, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedCatalogYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return f.Products, nil
}

// SeedAdminUser returns the demo account created when the users collection
// is empty on first run.
func SeedAdminUser(now time.Time) User {
	return User{
		ID:            "1",
		Name:          "Admin User",
		Age:           30,
		Email:         "admin@mediswift.in",
		Phone:         "9876543210",
		Address:       "3rd Floor, Park Street, Kolkata, West Bengal - 700016",
		Password:      "admin123",
		WalletBalance: 1000,
		JoinedDate:    now,
	}
}
