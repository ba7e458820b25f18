package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/middleware"
	"github.com/Xornee/langify-your-daily-english-boost/backend/services"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

type VocabularyController struct {
	Vocabulary *services.VocabularyService
	Cfg        *config.Config
}

func NewVocabularyController(vocabulary *services.VocabularyService, cfg *config.Config) *VocabularyController {
	return &VocabularyController{Vocabulary: vocabulary, Cfg: cfg}
}

type addWordRequest struct {
	VocabularyID uint `json:"vocabularyId" validate:"required"`
}

type reviewRequest struct {
	Correct bool `json:"correct"`
}

// GetVocabulary godoc
// @Summary Caller's saved words
// @Tags Vocabulary
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /vocabulary [get]
func (vc *VocabularyController) GetVocabulary(c *fiber.Ctx) error {
	words, err := vc.Vocabulary.List(c.UserContext(), middleware.Session(c).UserID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, words)
}

// AddWord godoc
// @Summary Save a vocabulary item, idempotent
// @Tags Vocabulary
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body addWordRequest true "Item to save"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /vocabulary [post]
func (vc *VocabularyController) AddWord(c *fiber.Ctx) error {
	var input addWordRequest
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	word, err := vc.Vocabulary.Add(c.UserContext(), middleware.Session(c).UserID, input.VocabularyID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, word)
}

// RemoveWord godoc
// @Summary Forget a saved word
// @Tags Vocabulary
// @Security ApiKeyAuth
// @Param vocabularyId path int true "Vocabulary item ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /vocabulary/{vocabularyId} [delete]
func (vc *VocabularyController) RemoveWord(c *fiber.Ctx) error {
	vocabularyID, ok := paramID(c, "vocabularyId")
	if !ok {
		return utils.BadRequest(c, "Invalid vocabulary ID")
	}

	if err := vc.Vocabulary.Remove(c.UserContext(), middleware.Session(c).UserID, vocabularyID); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.NoContent(c)
}

// ReviewWord godoc
// @Summary Record one recall of a saved word
// @Tags Vocabulary
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param vocabularyId path int true "Vocabulary item ID"
// @Param input body reviewRequest true "Recall result"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /vocabulary/{vocabularyId}/review [post]
func (vc *VocabularyController) ReviewWord(c *fiber.Ctx) error {
	vocabularyID, ok := paramID(c, "vocabularyId")
	if !ok {
		return utils.BadRequest(c, "Invalid vocabulary ID")
	}
	var input reviewRequest
	if sent, ok := parseBody(c, &input); !ok {
		return sent
	}

	word, err := vc.Vocabulary.Review(c.UserContext(), middleware.Session(c).UserID, vocabularyID, input.Correct)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, word)
}
