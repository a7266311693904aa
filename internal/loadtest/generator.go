package loadtest

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const randomFloatDivisor = 1000000

var (
	materialChoices  = []string{"steel", "glass", "plastic", "bamboo", "aluminium", "cotton", "Plastic"}
	transportChoices = []string{"sea", "rail", "road", "air", "Air freight"}
	packagingChoices = []string{"recyclable cardboard", "plastic wrap", "Recyclable paper", "foam", "none"}
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func pick(choices []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(choices))))
	return choices[n.Int64()]
}

// between returns a random value in [lo, hi) rounded to one decimal.
func between(lo, hi float64) float64 {
	v := lo + getRandomFloat()*(hi-lo)
	return float64(int(v*10)) / 10
}

// GenerateProducts creates n products with unique names spread across the
// scoring range.
func GenerateProducts(n int) []Product {
	products := make([]Product, n)
	for i := range products {
		materials := []string{pick(materialChoices)}
		if getRandomFloat() < 0.5 {
			materials = append(materials, pick(materialChoices))
		}
		products[i] = Product{
			ProductName: "product-" + uuid.NewString(),
			Materials:   materials,
			WeightGrams: between(10, 2000),
			Transport:   pick(transportChoices),
			Packaging:   pick(packagingChoices),
			GWP:         between(0, 12),
			Cost:        between(0, 25),
			Circularity: between(0, 100),
		}
	}
	return products
}
