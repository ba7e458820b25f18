package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils/validate"
)

// paramID читает положительный числовой параметр пути
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// parseBody разбирает тело запроса и проверяет теги validate.
// При ошибке ответ уже записан, вызывающий возвращает sent.
func parseBody(c *fiber.Ctx, dst interface{}) (sent error, ok bool) {
	if err := c.BodyParser(dst); err != nil {
		return utils.BadRequest(c, "Invalid request body"), false
	}
	if err := validate.Struct(dst); err != nil {
		return utils.ValidationError(c, validate.Fields(err)), false
	}
	return nil, true
}
