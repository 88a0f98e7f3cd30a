package api

import (
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/markusressel/dim2go/internal/light"
	"github.com/markusressel/dim2go/internal/util"
	"github.com/qdm12/reprint"
	"net/http"
	"strconv"
)

// Light is the representation of a light in the api
type Light struct {
	Id     string                    `json:"id"`
	Config configuration.LightConfig `json:"config"`
	State  dimmer.State              `json:"state"`
}

type StepDeltaSuggestion struct {
	Target    int `json:"target"`
	StepDelta int `json:"stepDelta"`
}

func registerLightEndpoints(rest *echo.Echo) {
	group := rest.Group("/light")

	group.GET("/", getLights)
	group.GET("/:"+urlParamId+"/", getLight)
	group.POST("/:"+urlParamId+"/", executeOperation)
	group.GET("/:"+urlParamId+"/history/", getHistory)
	group.GET("/:"+urlParamId+"/suggest/", suggestStepDelta)
}

func toLight(runner *light.Runner) Light {
	return Light{
		Id:     runner.GetId(),
		Config: reprint.This(runner.GetConfig()).(configuration.LightConfig),
		State:  runner.GetState(),
	}
}

// returns a list of all currently configured lights
func getLights(c echo.Context) error {
	runners := light.LightMap.Items()
	data := []Light{}
	for _, id := range util.SortedKeys(runners) {
		data = append(data, toLight(runners[id]))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getLight(c echo.Context) error {
	id := c.Param(urlParamId)
	runner, exists := light.LightMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, toLight(runner), indentationChar)
	}
}

func executeOperation(c echo.Context) error {
	id := c.Param(urlParamId)
	runner, exists := light.LightMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	var op light.Operation
	if err := c.Bind(&op); err != nil {
		return returnBadRequest(c, fmt.Errorf("invalid operation: %v", err))
	}

	_, err := runner.Execute(op)
	if err != nil {
		return returnBadRequest(c, err)
	}
	return c.JSONPretty(http.StatusOK, toLight(runner), indentationChar)
}

func getHistory(c echo.Context) error {
	id := c.Param(urlParamId)
	runner, exists := light.LightMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	limit := 0
	if value := c.QueryParam("limit"); len(value) > 0 {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return returnBadRequest(c, fmt.Errorf("invalid limit: %s", value))
		}
		limit = parsed
	}

	events, err := runner.History(limit)
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, events, indentationChar)
}

func suggestStepDelta(c echo.Context) error {
	id := c.Param(urlParamId)
	runner, exists := light.LightMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	target, err := strconv.Atoi(c.QueryParam("target"))
	if err != nil {
		return returnBadRequest(c, errors.New("missing or invalid target"))
	}

	stepDelta, err := runner.SuggestStepDelta(target)
	if err != nil {
		return returnBadRequest(c, err)
	}
	return c.JSONPretty(http.StatusOK, StepDeltaSuggestion{Target: target, StepDelta: stepDelta}, indentationChar)
}
