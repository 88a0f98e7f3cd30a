package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/markusressel/dim2go/internal/light"
	"github.com/markusressel/dim2go/internal/persistence"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to the REST api of a running daemon
type Client struct {
	baseUrl    string
	httpClient *http.Client
}

func NewClient(host string, port int) *Client {
	return NewClientWithUrl(fmt.Sprintf("http://%s:%d", host, port))
}

func NewClientWithUrl(baseUrl string) *Client {
	return &Client{
		baseUrl: baseUrl,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *Client) IsAlive() error {
	return c.do(http.MethodGet, EndpointPathAlive, nil, nil)
}

func (c *Client) GetLights() ([]Light, error) {
	var result []Light
	err := c.do(http.MethodGet, "/light/", nil, &result)
	return result, err
}

func (c *Client) GetLight(id string) (Light, error) {
	var result Light
	err := c.do(http.MethodGet, "/light/"+url.PathEscape(id)+"/", nil, &result)
	return result, err
}

// Execute sends an operation to the light with the given id and returns the light afterwards
func (c *Client) Execute(id string, op light.Operation) (Light, error) {
	var result Light
	err := c.do(http.MethodPost, "/light/"+url.PathEscape(id)+"/", op, &result)
	return result, err
}

func (c *Client) History(id string, limit int) ([]persistence.Event, error) {
	var result []persistence.Event
	path := "/light/" + url.PathEscape(id) + "/history/?limit=" + strconv.Itoa(limit)
	err := c.do(http.MethodGet, path, nil, &result)
	return result, err
}

func (c *Client) SuggestStepDelta(id string, target int) (StepDeltaSuggestion, error) {
	var result StepDeltaSuggestion
	path := "/light/" + url.PathEscape(id) + "/suggest/?target=" + strconv.Itoa(target)
	err := c.do(http.MethodGet, path, nil, &result)
	return result, err
}

func (c *Client) do(method string, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	request, err := http.NewRequest(method, c.baseUrl+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		var apiError Result
		if err := json.NewDecoder(response.Body).Decode(&apiError); err != nil {
			return fmt.Errorf("unexpected status: %s", response.Status)
		}
		return fmt.Errorf("%s: %s", apiError.Name, apiError.Message)
	}

	if result == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(result)
}
