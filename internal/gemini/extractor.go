package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
)

var _ domain.Extractor = (*Client)(nil)

// ParseRecipeText extracts a structured recipe from free text, all
// weights in grams.
func (c *Client) ParseRecipeText(ctx context.Context, text string) (*domain.ExtractedRecipe, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errorf(KindInvalidResponse, nil, "no recipe text given")
	}

	reply, err := c.generate(ctx, promptExtract+"\n\nRecipe text:\n"+text, true)
	if err != nil {
		return nil, err
	}

	var recipe domain.ExtractedRecipe
	if err := json.Unmarshal([]byte(stripFences(reply)), &recipe); err != nil {
		return nil, errorf(KindInvalidResponse, err, "recipe JSON malformed")
	}

	if len(recipe.Ingredients) == 0 {
		return nil, errorf(KindInvalidResponse, nil, "no ingredients extracted")
	}
	anyWeight := false
	for _, ing := range recipe.Ingredients {
		if ing.Weight > 0 {
			anyWeight = true
			break
		}
	}
	if !anyWeight {
		return nil, errorf(KindInvalidResponse, nil, "extracted recipe has no weights")
	}

	c.log.Info("gemini: extracted %d ingredients from %d chars of text", len(recipe.Ingredients), len(text))
	return &recipe, nil
}

var numberPattern = regexp.MustCompile(`[\d]+(?:\.[\d]+)?`)

// SuggestIngredientCost returns a market price estimate in $/kg. The
// reply is scraped for the first number, so a chatty model still works.
func (c *Client) SuggestIngredientCost(ctx context.Context, name string) (float64, error) {
	reply, err := c.generate(ctx, promptCost+name, false)
	if err != nil {
		return 0, err
	}

	match := numberPattern.FindString(reply)
	if match == "" {
		return 0, errorf(KindInvalidResponse, nil, "no price in reply %q", truncate(reply, 80))
	}
	price, err := strconv.ParseFloat(match, 64)
	if err != nil || price <= 0 {
		return 0, errorf(KindInvalidResponse, err, "unusable price %q", match)
	}
	return price, nil
}

// RecipeSuggestions returns free-text advice for a goal against the given
// formula context.
func (c *Client) RecipeSuggestions(ctx context.Context, recipeContext, goal string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nCurrent formula:\n%s\n\nGoal: %s", promptSuggest, recipeContext, goal)
	reply, err := c.generate(ctx, prompt, false)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", errorf(KindInvalidResponse, nil, "empty suggestion")
	}
	return reply, nil
}
