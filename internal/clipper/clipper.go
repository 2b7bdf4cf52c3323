package clipper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"meal-planner/internal/logger"
	"meal-planner/internal/recipe"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ErrNoRecipe is returned when a page carries no schema.org Recipe data.
var ErrNoRecipe = errors.New("no recipe data found on page")

// Clipper fetches recipe pages and turns their structured data into recipe drafts.
type Clipper struct {
	httpClient *http.Client
}

// Draft is a recipe read from a web page. Meal components are never present
// on the page and are left for the author to choose.
type Draft struct {
	Recipe    *recipe.Recipe
	Unparsed  []string
	SourceURL string
}

// NewClipper creates a new Clipper instance.
func NewClipper(httpClient *http.Client) *Clipper {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Clipper{httpClient: httpClient}
}

// jsonLDRecipe is the subset of schema.org/Recipe the clipper reads.
type jsonLDRecipe struct {
	Name             string          `json:"name"`
	RecipeIngredient []string        `json:"recipeIngredient"`
	RecipeYield      json.RawMessage `json:"recipeYield"`
	TotalTime        string          `json:"totalTime"`
	CookTime         string          `json:"cookTime"`
	PrepTime         string          `json:"prepTime"`
}

// ClipURL fetches the URL and extracts the first Recipe node found in its
// JSON-LD blocks.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*Draft, error) {
	doc, err := c.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	var found *jsonLDRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		node, err := findRecipeNode([]byte(s.Text()))
		if err != nil {
			logger.Debug("Skipping unreadable JSON-LD block", zap.String("url", url), zap.Error(err))
			return true
		}
		found = node
		return node == nil
	})
	if found == nil {
		return nil, ErrNoRecipe
	}

	name := strings.TrimSpace(found.Name)
	if name == "" {
		name = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	link := url
	draft := &Draft{
		Recipe: &recipe.Recipe{
			Name:           name,
			CookingTimeMin: cookingMinutes(found),
			Servings:       parseYield(found.RecipeYield),
			RecipeLink:     &link,
		},
		SourceURL: url,
	}
	for _, line := range found.RecipeIngredient {
		ing, ok := ParseIngredientLine(line)
		if !ok {
			draft.Unparsed = append(draft.Unparsed, strings.TrimSpace(line))
			continue
		}
		draft.Recipe.Ingredients = append(draft.Recipe.Ingredients, ing)
	}

	logger.Info("Clipped recipe",
		zap.String("url", url),
		zap.String("name", name),
		zap.Int("ingredients", len(draft.Recipe.Ingredients)),
		zap.Int("unparsed", len(draft.Unparsed)),
	)
	return draft, nil
}

func (c *Clipper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// findRecipeNode looks for a Recipe node in a JSON-LD document. The node may
// be the document itself, an element of a top-level array or an element of
// an @graph list.
func findRecipeNode(data []byte) (*jsonLDRecipe, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var walk func(v any) map[string]any
	walk = func(v any) map[string]any {
		switch node := v.(type) {
		case []any:
			for _, el := range node {
				if m := walk(el); m != nil {
					return m
				}
			}
		case map[string]any:
			if isRecipeType(node["@type"]) {
				return node
			}
			if graph, ok := node["@graph"]; ok {
				return walk(graph)
			}
		}
		return nil
	}

	node := walk(raw)
	if node == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(node)
	if err != nil {
		return nil, err
	}
	var r jsonLDRecipe
	if err := json.Unmarshal(encoded, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, el := range v {
			if s, ok := el.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func cookingMinutes(r *jsonLDRecipe) int {
	if total := ParseDuration(r.TotalTime); total > 0 {
		return total
	}
	return ParseDuration(r.PrepTime) + ParseDuration(r.CookTime)
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration converts an ISO-8601 duration such as PT1H30M to whole
// minutes. Unreadable input yields 0.
func ParseDuration(s string) int {
	m := isoDuration.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0
	}
	n := func(i int) int {
		v, _ := strconv.Atoi(m[i])
		return v
	}
	minutes := n(1)*24*60 + n(2)*60 + n(3)
	if n(4) >= 30 {
		minutes++
	}
	return minutes
}

var leadingNumber = regexp.MustCompile(`\d+`)

func parseYield(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return firstInt(s)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return parseYield(list[0])
	}
	return 0
}

func firstInt(s string) int {
	v, _ := strconv.Atoi(leadingNumber.FindString(s))
	return v
}
