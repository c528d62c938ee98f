package models

// View types returned by the summary engine. They are built fresh on every
// read; persistence entities are never handed back as wire views.

// ExpenseView is the read-only projection of an expense
type ExpenseView struct {
	UUID         string  `json:"uuid"`
	Date         string  `json:"date"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	BaseCcy      string  `json:"base_ccy"`
	ExchangeRate float64 `json:"exchange_rate"`
	BudgetCcy    string  `json:"budget_ccy"`
	BudgetAmount float64 `json:"budget_amount"`
}

// CategoryDetail is a category with its expenses attached
type CategoryDetail struct {
	UUID     string        `json:"uuid"`
	Name     string        `json:"category_name"`
	Amount   float64       `json:"amount"`
	BaseCcy  string        `json:"base_ccy"`
	Expenses []ExpenseView `json:"expenses"`
}

// BudgetDetail is the full tree for a budget: every category under it and
// every expense under each category
type BudgetDetail struct {
	UUID       string           `json:"uuid"`
	Username   string           `json:"username"`
	Amount     float64          `json:"amount"`
	BaseCcy    string           `json:"base_ccy"`
	Month      int              `json:"month"`
	Year       int              `json:"year"`
	Categories []CategoryDetail `json:"categories"`
}

// CategoryStats replaces a category's expense list with spent/remaining,
// both denominated in the budget's currency
type CategoryStats struct {
	UUID      string  `json:"uuid"`
	Name      string  `json:"category_name"`
	Amount    float64 `json:"amount"`
	BaseCcy   string  `json:"base_ccy"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// BudgetStats is the per-category spent/remaining rollup for a budget
type BudgetStats struct {
	UUID       string          `json:"uuid"`
	Username   string          `json:"username"`
	Amount     float64         `json:"amount"`
	BaseCcy    string          `json:"base_ccy"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Categories []CategoryStats `json:"categories"`
}
