package httpServices

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	authTypes "luggage-link/types/auth"
)

// IdentityClient talks to the external identity provider that owns
// credentials and issues the RS256 tokens this service verifies.
type IdentityClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *IdentityClient {
	return &IdentityClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (c *IdentityClient) Login(req authTypes.LoginRequest) (*LoginResponse, error) {
	body, err := json.Marshal(loginPayload{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/identity/login/", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("identity login API returned non-OK status: " + resp.Status)
	}

	var apiResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}

func (c *IdentityClient) Register(req authTypes.RegisterRequest) (*RegisterResponse, error) {
	body, err := json.Marshal(registerPayload{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/identity/register/", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("identity register API returned non-OK status: " + resp.Status)
	}

	var apiResp RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}

func (c *IdentityClient) Logout(accessToken string) error {
	httpReq, err := http.NewRequest("POST", c.baseURL+"/identity/logout/", nil)
	if err != nil {
		return err
	}

	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errors.New("identity logout API returned non-OK status: " + resp.Status)
	}

	return nil
}
