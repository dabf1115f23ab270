package recommend

import (
	"math"
	"sort"
	"strings"

	"nexusmarket/models"
)

const (
	maxRecommendations = 100
	perCategoryLimit   = 20
)

// Brand treats the first word of a product name as its brand.
func Brand(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToLower(strings.Fields(name)[0])
}

// Gender infers a target gender from a product name, for fashion matching.
func Gender(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "men") || strings.Contains(n, "boy"):
		// "women" also contains "men"; check the female markers first.
		if strings.Contains(n, "women") || strings.Contains(n, "girl") {
			return "female"
		}
		return "male"
	case strings.Contains(n, "girl"):
		return "female"
	default:
		return "unisex"
	}
}

// NameSimilarity is the Jaccard similarity of the word sets of two names.
func NameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	setA := wordSet(a)
	setB := wordSet(b)
	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

// interactions returns the user's viewed, cart and wishlist products in
// chronological order (viewed history is already newest-first; cart and
// wishlist are appended oldest-last, so they are reversed).
func interactions(user *models.User) []models.Product {
	out := make([]models.Product, 0, len(user.ViewedItems)+len(user.Cart)+len(user.Wishlist))
	out = append(out, user.ViewedItems...)
	for i := len(user.Cart) - 1; i >= 0; i-- {
		c := user.Cart[i]
		out = append(out, models.Product{Name: c.Name, Category: c.Category, Price: c.Price, Image: c.Image})
	}
	for i := len(user.Wishlist) - 1; i >= 0; i-- {
		out = append(out, user.Wishlist[i])
	}
	return out
}

type scored struct {
	product models.Product
	score   float64
}

// ForUser scores the catalog against the user's interactions and returns the
// recommendation list to store on the user document: the interacted items
// themselves (deduplicated, in order) followed by the best candidates per
// interacted category, capped at 100 entries.
func ForUser(user *models.User, catalog []models.Product) []models.Product {
	interacted := interactions(user)
	if len(interacted) == 0 {
		return nil
	}

	byCategory := make(map[string][]models.Product)
	var categoryOrder []string
	interactedNames := make(map[string]bool)
	for _, item := range interacted {
		interactedNames[item.Name] = true
		if item.Category == "" {
			continue
		}
		if _, seen := byCategory[item.Category]; !seen {
			categoryOrder = append(categoryOrder, item.Category)
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	var fresh []models.Product
	for _, category := range categoryOrder {
		if len(fresh) >= maxRecommendations {
			break
		}
		triggers := byCategory[category]

		var candidates []scored
		for _, product := range catalog {
			if product.Category != category || interactedNames[product.Name] {
				continue
			}
			best := 0.0
			for _, trigger := range triggers {
				if s := score(product, trigger, category); s > best {
					best = s
				}
			}
			candidates = append(candidates, scored{product: product, score: best})
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})
		if len(candidates) > perCategoryLimit {
			candidates = candidates[:perCategoryLimit]
		}
		for _, c := range candidates {
			fresh = append(fresh, c.product)
			interactedNames[c.product.Name] = true
		}
	}

	// The user's own interacted items lead the list, deduplicated by name.
	seen := make(map[string]bool)
	final := make([]models.Product, 0, maxRecommendations)
	for _, item := range interacted {
		if !seen[item.Name] {
			final = append(final, item)
			seen[item.Name] = true
		}
	}
	final = append(final, fresh...)
	if len(final) > maxRecommendations {
		final = final[:maxRecommendations]
	}
	return final
}

// score rates one candidate against one trigger item from the same category:
// shared brand and name overlap always count; price proximity matters for
// electronics, gender match for fashion.
func score(product, trigger models.Product, category string) float64 {
	s := 0.0
	if Brand(product.Name) == Brand(trigger.Name) {
		s += 0.5
	}
	s += NameSimilarity(product.Name, trigger.Name) * 0.5

	switch category {
	case "laptop", "mobile":
		if trigger.Price > 0 {
			diff := math.Abs(product.Price-trigger.Price) / trigger.Price
			s += 0.3 * (1 - math.Min(diff, 1.0))
		}
	case "fashion":
		if Gender(product.Name) == Gender(trigger.Name) {
			s += 0.4
		}
	}
	return s
}
