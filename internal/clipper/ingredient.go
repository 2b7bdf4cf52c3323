package clipper

import (
	"strconv"
	"strings"

	"meal-planner/internal/recipe"
)

// units maps the spellings found on recipe sites to the unit stored in recipes.
var units = map[string]string{
	"g": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kilogram": "kg", "kilograms": "kg",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"tbsp": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"cup": "cup", "cups": "cup",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"clove": "clove", "cloves": "clove",
	"can": "can", "cans": "can",
	"pinch": "pinch",
}

var vulgarFractions = map[rune]float64{
	'½': 0.5, '⅓': 1.0 / 3, '⅔': 2.0 / 3, '¼': 0.25, '¾': 0.75, '⅛': 0.125,
}

// ParseIngredientLine reads a line such as "200 g flour", "1 1/2 cups milk"
// or "2 onions". Lines without a leading quantity are rejected. A quantity
// without a known unit is counted in pieces ("pc").
func ParseIngredientLine(line string) (recipe.Ingredient, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return recipe.Ingredient{}, false
	}

	amount, used := parseQuantity(fields)
	if used == 0 || amount <= 0 {
		return recipe.Ingredient{}, false
	}
	rest := fields[used:]

	unit := "pc"
	if len(rest) > 0 {
		if u, ok := units[strings.TrimSuffix(rest[0], ".")]; ok {
			unit = u
			rest = rest[1:]
		}
	}
	if len(rest) > 0 && rest[0] == "of" {
		rest = rest[1:]
	}

	name := strings.Join(rest, " ")
	if i := strings.IndexByte(name, ','); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return recipe.Ingredient{}, false
	}
	return recipe.Ingredient{Name: name, Amount: amount, Unit: unit}, true
}

// parseQuantity reads up to two leading fields as a number ("2"), a fraction
// ("1/2"), a mixed number ("1 1/2") or a vulgar fraction ("1½", "½").
func parseQuantity(fields []string) (float64, int) {
	total, used := 0.0, 0
	for used < len(fields) && used < 2 {
		v, ok := parseNumber(fields[used])
		if !ok {
			break
		}
		if used == 1 && v >= 1 {
			break
		}
		total += v
		used++
	}
	return total, used
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", ".")
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 == nil && err2 == nil && d != 0 {
			return n / d, true
		}
		return 0, false
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return 0, false
	}
	frac, ok := vulgarFractions[runes[len(runes)-1]]
	if !ok {
		return 0, false
	}
	whole := 0.0
	if len(runes) > 1 {
		w, err := strconv.ParseFloat(string(runes[:len(runes)-1]), 64)
		if err != nil {
			return 0, false
		}
		whole = w
	}
	return whole + frac, true
}
