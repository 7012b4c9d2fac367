package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/Isann22/NutriTrack-Backend/services"
	"github.com/Isann22/NutriTrack-Backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recommender is what the controller needs from the recommendation service.
type Recommender interface {
	Recommend(ctx context.Context, in models.ProfileInput) (*models.MealPlan, error)
}

type RecommendationController struct {
	Rec Recommender
}

func NewRecommendationController(rec Recommender) *RecommendationController {
	return &RecommendationController{Rec: rec}
}

type profileRequest struct {
	Age           int     `json:"age" binding:"required,gt=0"`
	Weight        float64 `json:"weight" binding:"required,gt=0"`
	Height        float64 `json:"height" binding:"required,gt=0"`
	Gender        string  `json:"gender" binding:"required"`
	ActivityLevel string  `json:"activity_level"`
	WeightGoal    string  `json:"weight_goal"`
}

func (r profileRequest) toProfile(needGoal bool) (models.ProfileInput, error) {
	g, err := models.ParseGender(r.Gender)
	if err != nil {
		return models.ProfileInput{}, err
	}
	in := models.ProfileInput{
		Age:           r.Age,
		Weight:        r.Weight,
		Height:        r.Height,
		Gender:        g,
		ActivityLevel: models.ActivityLevel(r.ActivityLevel),
	}
	if needGoal {
		if in.WeightGoal, err = models.ParseWeightGoal(r.WeightGoal); err != nil {
			return models.ProfileInput{}, err
		}
	}
	return in, nil
}

func (rc *RecommendationController) Recommend(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toProfile(true)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := rc.Rec.Recommend(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidProfile) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.Log.Error("recommendation failed",
			zap.String("request_id", c.GetString("requestID")),
			zap.Error(err))
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(c, plan)
}

// Metrics returns BMI, its category and BMR without touching any model.
func (rc *RecommendationController) Metrics(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toProfile(false)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	bmi, _ := utils.CalculateBMI(in.Weight, in.Height)
	respondOK(c, gin.H{
		"bmi":          utils.Round2(bmi),
		"bmi_category": utils.BMICategory(bmi),
		"bmr":          utils.Round2(utils.CalculateBMR(in.Age, in.Weight, in.Height, in.Gender)),
	})
}
