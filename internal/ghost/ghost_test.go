package ghost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"meal-planner/internal/config"
	"meal-planner/internal/logger"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAdminKey = "abc123:0123456789abcdef0123456789abcdef"

func TestMain(m *testing.M) {
	logger.Set(zap.NewNop())
	os.Exit(m.Run())
}

func TestCreatePost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/ghost/api/v3/admin/posts/", r.URL.Path)
			assert.Equal(t, "html", r.URL.Query().Get("source"))

			auth := r.Header.Get("Authorization")
			require.True(t, strings.HasPrefix(auth, "Ghost "))
			token, err := jwt.Parse(strings.TrimPrefix(auth, "Ghost "), func(tok *jwt.Token) (any, error) {
				return []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}, nil
			}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithAudience("/v3/admin/"))
			require.NoError(t, err)
			assert.Equal(t, "abc123", token.Header["kid"])

			var body struct {
				Posts []map[string]string `json:"posts"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Posts, 1)
			assert.Equal(t, "draft", body.Posts[0]["status"])

			w.WriteHeader(http.StatusCreated)
			fmt.Fprintf(w, `{"posts":[{"id":"p1","title":%q,"status":"draft","url":"https://blog.example/p1/"}]}`, body.Posts[0]["title"])
		}))
		defer server.Close()

		client := NewClient(&config.Config{GhostURL: server.URL, GhostAdminKey: testAdminKey})
		post, err := client.CreatePost(context.Background(), "Week 42", "<p>hi</p>", false)
		require.NoError(t, err)
		assert.Equal(t, "p1", post.ID)
		assert.Equal(t, "Week 42", post.Title)
		assert.Equal(t, "draft", post.Status)
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"errors":[{"message":"Unauthorized"}]}`)
		}))
		defer server.Close()

		client := NewClient(&config.Config{GhostURL: server.URL, GhostAdminKey: testAdminKey})
		_, err := client.CreatePost(context.Background(), "t", "h", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("InvalidKey", func(t *testing.T) {
		for _, key := range []string{"nocolon", "id:nothex", "a:b:c"} {
			client := NewClient(&config.Config{GhostURL: "http://unused", GhostAdminKey: key})
			_, err := client.CreatePost(context.Background(), "t", "h", true)
			assert.Error(t, err, "key %q", key)
		}
	})
}

func TestFormatPlanHTML(t *testing.T) {
	link := "https://example.com/chili?a=1&b=2"
	chili := &recipe.Recipe{Name: "Chili", CookingTimeMin: 45, RecipeLink: &link, MealComponents: []recipe.MealComponent{recipe.Meat},
		Ingredients: []recipe.Ingredient{{Name: "beans", Amount: 400, Unit: "g"}}}
	bread := &recipe.Recipe{Name: "Bread", MealComponents: []recipe.MealComponent{recipe.Carb},
		Ingredients: []recipe.Ingredient{{Name: "beans", Amount: 1, Unit: "can"}}}

	plan := planner.WeekPlan{
		planner.Tuesday: {Description: "Leftover day"},
		planner.Monday:  planner.BuildDayPlan(chili, bread),
	}
	out := FormatPlanHTML(plan, shopping.Aggregate(plan, nil))

	assert.True(t, strings.Index(out, "Monday") < strings.Index(out, "Tuesday"))
	assert.Contains(t, out, `<a href="https://example.com/chili?a=1&amp;b=2">recipe</a>`)
	assert.Contains(t, out, "<li>beans: 400 g</li>")
	assert.Contains(t, out, "mixed units (can vs g)")
	assert.Equal(t, "Meal plan for the week of 2026-10-12", PlanTitle("2026-10-12"))
}
