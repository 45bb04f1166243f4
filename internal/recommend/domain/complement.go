package domain

// Category ids the complement table speaks about.
const (
	CategorySmartphones int64 = 1
	CategoryLaptops     int64 = 2
	CategoryTablets     int64 = 3
	CategoryCases       int64 = 4
	CategoryChargers    int64 = 5
	CategoryAccessories int64 = 6
	CategoryPeripherals int64 = 7
)

// complements pairs a cart category with the categories that sell well next
// to it. The table is data, not derived logic: it is symmetric in places and
// deliberately not in others (accessories map to nothing, chargers point
// back at phones and tablets but not the reverse for tablets).
var complements = map[int64][]int64{
	CategorySmartphones: {CategoryCases, CategoryChargers, CategoryAccessories},
	CategoryLaptops:     {CategoryAccessories, CategoryPeripherals},
	CategoryTablets:     {CategoryCases, CategoryAccessories},
	CategoryCases:       {CategorySmartphones},
	CategoryChargers:    {CategorySmartphones, CategoryTablets},
	CategoryPeripherals: {CategoryLaptops},
}

// ComplementaryCategories returns the categories complementary to
// categoryID, in table order, or nil when the table has no entry.
func ComplementaryCategories(categoryID int64) []int64 {
	return complements[categoryID]
}
