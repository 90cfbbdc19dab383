package model

// Category IDs for the fixed category set.
const (
	CategoryFoodDining    = "food-dining"
	CategoryGroceries     = "groceries"
	CategoryGasTransport  = "gas-transport"
	CategoryShopping      = "shopping"
	CategorySubscriptions = "subscriptions"
	CategoryUtilities     = "utilities"
	CategoryHealth        = "health"
	CategoryIncome        = "income"
)

// Category represents one entry in the fixed category set. Categories are
// global, read-only configuration; keyword order matters because the first
// substring match wins.
type Category struct {
	ID       string
	Name     string
	Keywords []string
}

// categories is declared in matching order. Scanning stops at the first
// category whose keyword list matches, so broader buckets come later.
var categories = []Category{
	{
		ID:   CategoryFoodDining,
		Name: "Food & Dining",
		Keywords: []string{
			"restaurant", "mcdonald", "burger", "pizza", "taco", "chipotle",
			"subway", "starbucks", "dunkin", "coffee", "cafe", "doordash",
			"grubhub", "uber eats", "ubereats", "postmates", "wendy", "chick-fil-a",
			"chickfila", "kfc", "sonic", "diner", "grill", "bakery",
		},
	},
	{
		ID:   CategoryGroceries,
		Name: "Groceries",
		Keywords: []string{
			"grocery", "supermarket", "safeway", "kroger", "albertsons",
			"whole foods", "wholefds", "trader joe", "aldi", "food store",
			"fry's", "frys", "market", "wegmans", "publix", "heb", "winco",
		},
	},
	{
		ID:   CategoryGasTransport,
		Name: "Gas & Transport",
		Keywords: []string{
			"shell", "chevron", "exxon", "mobil", "arco", "circle k", "qt",
			"quiktrip", "gas", "fuel", "uber", "lyft", "parking", "toll",
			"transit", "metro", "amtrak",
		},
	},
	{
		ID:   CategorySubscriptions,
		Name: "Subscriptions",
		Keywords: []string{
			"netflix", "spotify", "hulu", "disney", "hbo", "paramount",
			"youtube", "apple.com", "apple com", "itunes", "audible", "prime video",
			"membership", "subscription", "patreon",
		},
	},
	{
		ID:   CategoryUtilities,
		Name: "Utilities",
		Keywords: []string{
			"electric", "water", "sewer", "internet", "comcast", "xfinity",
			"cox", "centurylink", "verizon", "t-mobile", "tmobile", "at&t",
			"att ", "utility", "utilities", "power", "energy", "srp", "aps",
		},
	},
	{
		ID:   CategoryHealth,
		Name: "Health",
		Keywords: []string{
			"pharmacy", "cvs", "walgreens", "rite aid", "doctor", "dental",
			"medical", "clinic", "hospital", "optomet", "urgent care", "gym",
			"fitness",
		},
	},
	{
		ID:   CategoryIncome,
		Name: "Income",
		Keywords: []string{
			"payroll", "direct deposit", "deposit", "salary", "refund",
			"reimbursement", "interest paid", "cashback", "transfer in",
		},
	},
	{
		ID:   CategoryShopping,
		Name: "Shopping",
		Keywords: []string{
			"amazon", "amzn", "walmart", "target", "costco", "best buy",
			"ebay", "etsy", "home depot", "lowes", "ikea", "nike", "old navy",
			"ross", "tj maxx", "tjmaxx", "marshalls", "nordstrom",
		},
	},
}

// Categories returns the fixed category set in declared matching order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID returns the category with the given ID, or nil if unknown.
func CategoryByID(id string) *Category {
	for i := range categories {
		if categories[i].ID == id {
			c := categories[i]
			return &c
		}
	}
	return nil
}

// ValidCategory reports whether id names a configured category.
func ValidCategory(id string) bool {
	return CategoryByID(id) != nil
}
