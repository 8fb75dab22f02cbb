package pricing

// CreditPackage is a purchasable bundle of credits. Prices are USD and carry
// the 25% launch discount already.
type CreditPackage struct {
	Id      string
	Credits float64
	Price   float64
	Popular bool
}

var creditPackages = []CreditPackage{
	{Id: "package_28", Credits: 28, Price: 18.75},
	{Id: "package_60", Credits: 60, Price: 37.50, Popular: true},
	{Id: "package_133", Credits: 133, Price: 75.00},
	{Id: "package_429", Credits: 429, Price: 225.00},
}

// Packages returns the catalogue in display order.
func Packages() []CreditPackage {
	out := make([]CreditPackage, len(creditPackages))
	copy(out, creditPackages)
	return out
}

// FindPackage returns the package with the given id, or nil.
func FindPackage(id string) *CreditPackage {
	for i := range creditPackages {
		if creditPackages[i].Id == id {
			pkg := creditPackages[i]
			return &pkg
		}
	}
	return nil
}
