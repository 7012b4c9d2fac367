package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Isann22/NutriTrack-Backend/controllers"
	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/Isann22/NutriTrack-Backend/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPlan struct{}

func (fixedPlan) Recommend(context.Context, models.ProfileInput) (*models.MealPlan, error) {
	return &models.MealPlan{MealPlan: map[models.MealSlot]models.MealPlanEntry{}}, nil
}

func router(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(Deps{
		Recommendation: controllers.NewRecommendationController(fixedPlan{}),
		Catalog:        controllers.NewCatalogController(services.Catalogs{}),
		Health:         &controllers.HealthController{},
		JWTSecret:      secret,
	})
}

func post(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	body := `{"age":30,"weight":70,"height":1.75,"gender":"F","weight_goal":"Maintain"}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendation", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRouterOpen(t *testing.T) {
	r := router("")
	assert.Equal(t, http.StatusOK, post(r, "").Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetupRouterWithAuth(t *testing.T) {
	r := router("s3cret")
	assert.Equal(t, http.StatusUnauthorized, post(r, "").Code)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, post(r, "Bearer "+tok).Code)

	// health stays public
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
