package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessAndErrorEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c fiber.Ctx) error {
		return Success(c, fiber.StatusOK, "", map[string]int{"n": 1})
	})
	app.Get("/bad", func(c fiber.Ctx) error {
		return Error(c, fiber.StatusBadGateway, "", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":200,"message":"ok","data":{"n":1}}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/bad", nil))
	require.NoError(t, err)
	var got SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, MessageBadGateway, got.Message)
	assert.Nil(t, got.Data)
}
