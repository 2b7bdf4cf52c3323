package telegram

import (
	"errors"
	"os"
	"strings"
	"testing"

	"meal-planner/internal/logger"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Set(zap.NewNop())
	os.Exit(m.Run())
}

type mockSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (m *mockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m.err != nil {
		return tgbotapi.Message{}, m.err
	}
	m.sent = append(m.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func testPlan() planner.WeekPlan {
	link := "https://example.com/tacos"
	tacos := &recipe.Recipe{Name: "Fish_Tacos", CookingTimeMin: 15, RecipeLink: &link, MealComponents: []recipe.MealComponent{recipe.Meat, recipe.Carb},
		Ingredients: []recipe.Ingredient{{Name: "cod", Amount: 300, Unit: "g"}, {Name: "tortilla", Amount: 6, Unit: "pc"}}}
	salad := &recipe.Recipe{Name: "Salad", CookingTimeMin: 10, MealComponents: []recipe.MealComponent{recipe.Vegetable},
		Ingredients: []recipe.Ingredient{{Name: "lettuce", Amount: 1, Unit: "pc"}}}
	return planner.WeekPlan{
		planner.Tuesday: {Description: "Leftover day"},
		planner.Monday:  planner.BuildDayPlan(tacos, salad),
	}
}

func TestFormatPlanMarkdownParts(t *testing.T) {
	plan := testPlan()
	planOutput, shoppingOutput := formatPlanMarkdownParts(plan, shopping.Aggregate(plan, nil))

	assert.Contains(t, planOutput, "📅 *Weekly Meal Plan*")
	assert.Contains(t, planOutput, "*Monday*: Fish\\_Tacos with Salad (15 min)")
	assert.Contains(t, planOutput, "[recipe](https://example.com/tacos)")
	assert.Contains(t, planOutput, "*Tuesday*: Leftover day")
	assert.Less(t, strings.Index(planOutput, "Monday"), strings.Index(planOutput, "Tuesday"))
	assert.Contains(t, planOutput, "⏱ *Total Cooking:* 15 mins")

	assert.Contains(t, shoppingOutput, "🛒 *Shopping List*")
	assert.Contains(t, shoppingOutput, "• cod: 300 g")
	assert.Less(t, strings.Index(shoppingOutput, "cod"), strings.Index(shoppingOutput, "lettuce"))
	assert.NotContains(t, shoppingOutput, "Mixed units")
}

func TestSendPlan(t *testing.T) {
	t.Run("TwoMessages", func(t *testing.T) {
		sender := &mockSender{}
		plan := testPlan()
		require.NoError(t, NewNotifierWithSender(sender, 42).SendPlan(plan, shopping.Aggregate(plan, nil)))
		require.Len(t, sender.sent, 2)
		for _, msg := range sender.sent {
			assert.Equal(t, int64(42), msg.ChatID)
			assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
		}
	})

	t.Run("SendError", func(t *testing.T) {
		sender := &mockSender{err: errors.New("blocked")}
		err := NewNotifierWithSender(sender, 42).SendPlan(testPlan(), shopping.Summary{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "blocked")
	})
}
