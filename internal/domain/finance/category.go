package finance

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ExpenseCategory classifies expenses within a society. Category names are
// unique per society, enforced at the storage layer.
type ExpenseCategory struct {
	shared.SocietyAggregateRoot
	Name          string
	Description   string
	Color         string
	MonthlyBudget *valueobject.Money
	IsDefault     bool
}

// NewExpenseCategory creates a category owned by the given society.
func NewExpenseCategory(societyID uuid.UUID, name, color string) (*ExpenseCategory, error) {
	if societyID == uuid.Nil {
		return nil, shared.NewValidationError("Society is required")
	}
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return nil, shared.NewValidationError("Category name must be between 2 and 100 characters")
	}
	if color != "" && !hexColorRegex.MatchString(color) {
		return nil, shared.NewValidationError("Color must be a hex value like #3B82F6")
	}

	return &ExpenseCategory{
		SocietyAggregateRoot: shared.NewSocietyAggregateRoot(societyID),
		Name:                 name,
		Color:                color,
	}, nil
}

// Update changes the category's name, description and color.
func (c *ExpenseCategory) Update(name, description, color string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return shared.NewValidationError("Category name must be between 2 and 100 characters")
	}
	if color != "" && !hexColorRegex.MatchString(color) {
		return shared.NewValidationError("Color must be a hex value like #3B82F6")
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.Color = color
	c.Touch()
	return nil
}

// SetMonthlyBudget sets the planned monthly spend for the category.
func (c *ExpenseCategory) SetMonthlyBudget(budget valueobject.Money) error {
	if err := validateAmount(budget); err != nil {
		return err
	}
	c.MonthlyBudget = &budget
	c.Touch()
	return nil
}

// ClearMonthlyBudget removes the planned spend.
func (c *ExpenseCategory) ClearMonthlyBudget() {
	c.MonthlyBudget = nil
	c.Touch()
}

// defaultCategorySeed is one entry of the standard category set every new
// society starts with.
type defaultCategorySeed struct {
	Name          string
	Color         string
	MonthlyBudget float64
}

var defaultCategorySeeds = []defaultCategorySeed{
	{Name: "Security", Color: "#EF4444", MonthlyBudget: 50000},
	{Name: "Cleaning", Color: "#10B981", MonthlyBudget: 30000},
	{Name: "Electricity", Color: "#F59E0B", MonthlyBudget: 40000},
	{Name: "Water", Color: "#3B82F6", MonthlyBudget: 20000},
	{Name: "Repairs", Color: "#8B5CF6", MonthlyBudget: 50000},
	{Name: "Salaries", Color: "#EC4899", MonthlyBudget: 80000},
	{Name: "Gardening", Color: "#14B8A6", MonthlyBudget: 15000},
	{Name: "Other", Color: "#6B7280", MonthlyBudget: 20000},
}

// DefaultCategories builds the standard category set for a society.
func DefaultCategories(societyID uuid.UUID) ([]*ExpenseCategory, error) {
	categories := make([]*ExpenseCategory, 0, len(defaultCategorySeeds))
	for _, seed := range defaultCategorySeeds {
		category, err := NewExpenseCategory(societyID, seed.Name, seed.Color)
		if err != nil {
			return nil, err
		}
		if err := category.SetMonthlyBudget(valueobject.NewMoneyINRFromFloat(seed.MonthlyBudget)); err != nil {
			return nil, err
		}
		category.IsDefault = true
		categories = append(categories, category)
	}
	return categories, nil
}

func validateAmount(amount valueobject.Money) error {
	if amount.IsNegative() {
		return shared.NewValidationError("Amount cannot be negative")
	}
	if !amount.HasMaxTwoDecimals() {
		return shared.NewValidationError("Amount cannot have more than two decimal places")
	}
	return nil
}
