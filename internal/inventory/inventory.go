// Package inventory matches tracked stock against aggregated production
// requirements and handles stock intake from packaging details.
package inventory

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
	"github.com/jin0205/sourdough-pro-ai/internal/units"
)

// Row is one reconciliation line: stock vs. plan demand, all in grams.
// Rows without an ID are synthetic: required by the plan but not tracked
// in inventory.
type Row struct {
	ID        string
	Name      string
	InStock   float64
	Allocated float64
	Balance   float64
	CostPerKg float64
}

// Tracked reports whether the row is backed by an inventory item.
func (r Row) Tracked() bool { return r.ID != "" }

// Status classifies a reconciliation row for display.
type Status string

const (
	StatusOK        Status = "ok"
	StatusLowStock  Status = "low"       // under a kilogram left
	StatusRestock   Status = "restock"   // demand exceeds stock
	StatusUntracked Status = "untracked" // required but not in inventory
)

// Status returns the row's classification. Untracked rows always show a
// negative balance as the restock signal.
func (r Row) Status() Status {
	switch {
	case !r.Tracked():
		return StatusUntracked
	case r.Balance < 0:
		return StatusRestock
	case r.Balance < 1000:
		return StatusLowStock
	default:
		return StatusOK
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Reconcile builds the stock-vs-demand table. Every inventory item gets a
// row with the requirement matched by trimmed, case-insensitive name (zero
// when the plan doesn't need it); every requirement with no inventory
// match gets a synthetic untracked row. Rows come back sorted by name.
func Reconcile(items []domain.InventoryItem, requirements map[string]float64) []Row {
	byKey := make(map[string]float64, len(requirements))
	for name, weight := range requirements {
		byKey[normalize(name)] += weight
	}

	rows := make([]Row, 0, len(items)+len(requirements))
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		key := normalize(item.Name)
		allocated := byKey[key]
		seen[key] = true
		rows = append(rows, Row{
			ID:        item.ID,
			Name:      item.Name,
			InStock:   item.Quantity,
			Allocated: allocated,
			Balance:   item.Quantity - allocated,
			CostPerKg: item.CostPerKg,
		})
	}

	for name, weight := range requirements {
		if seen[normalize(name)] {
			continue
		}
		rows = append(rows, Row{
			Name:      name,
			Allocated: weight,
			Balance:   -weight,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// Package describes a stock purchase as bought: per-unit weight, how many
// units, and the price of the whole package. Quantity and cost per kg are
// derived from it exactly once, at entry time.
type Package struct {
	Weight          float64
	Unit            domain.Unit
	ItemsPerPackage float64
	CostPerPackage  float64
}

// TotalGrams is the package's total content in grams. A stock quantity is
// never negative, so an invalid per-unit weight counts as zero.
func (p Package) TotalGrams() float64 {
	weight := p.Weight
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		weight = 0
	}
	count := p.ItemsPerPackage
	if count <= 0 {
		count = 1
	}
	return units.ToGrams(weight, p.Unit) * count
}

// CostPerKg is the effective price per kilogram of the package contents,
// zero when the package is empty.
func (p Package) CostPerKg() float64 {
	grams := p.TotalGrams()
	if grams <= 0 {
		return 0
	}
	return p.CostPerPackage / grams * 1000
}

// NewItem builds an inventory item from a received package, keeping the
// packaging provenance for later editing.
func NewItem(name string, pkg Package, now time.Time) domain.InventoryItem {
	return domain.InventoryItem{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(name),
		Quantity:        pkg.TotalGrams(),
		CostPerKg:       pkg.CostPerKg(),
		LastUpdated:     now,
		PackageWeight:   pkg.Weight,
		PackageUnit:     pkg.Unit,
		ItemsPerPackage: pkg.ItemsPerPackage,
		CostPerPackage:  pkg.CostPerPackage,
	}
}
