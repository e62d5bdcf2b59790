package sheet

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sheetsScope     = "https://www.googleapis.com/auth/spreadsheets.readonly"
	defaultTokenURI = "https://oauth2.googleapis.com/token"
	sheetsBaseURL   = "https://sheets.googleapis.com/v4/spreadsheets"
)

// serviceAccount is the subset of a Google service-account JSON key we need.
type serviceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// GoogleSource implements Source against the Google Sheets v4 values API,
// authenticating with a service-account JWT grant.
type GoogleSource struct {
	SpreadsheetID string
	Worksheet     string
	Client        *http.Client

	account serviceAccount

	token       string
	tokenExpiry time.Time

	// overridable in tests
	baseURL  string
	tokenURI string
}

// NewGoogleSource parses the service-account credentials JSON and builds a
// source for one worksheet. Bad credentials are a fatal startup condition,
// surfaced here rather than on first fetch.
func NewGoogleSource(credsJSON, spreadsheetID, worksheet, proxyURL string) (*GoogleSource, error) {
	var sa serviceAccount
	if err := json.Unmarshal([]byte(credsJSON), &sa); err != nil {
		return nil, fmt.Errorf("parse service account JSON: %w", err)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, fmt.Errorf("service account JSON missing client_email or private_key")
	}
	if sa.TokenURI == "" {
		sa.TokenURI = defaultTokenURI
	}

	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GoogleSource{
		SpreadsheetID: spreadsheetID,
		Worksheet:     worksheet,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		account:  sa,
		baseURL:  sheetsBaseURL,
		tokenURI: sa.TokenURI,
	}, nil
}

func (g *GoogleSource) Name() string { return "google-sheets" }

// FetchRows returns all values of the configured worksheet as a string grid.
func (g *GoogleSource) FetchRows() ([][]string, error) {
	token, err := g.accessToken()
	if err != nil {
		return nil, fmt.Errorf("google auth: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s", g.baseURL,
		url.PathEscape(g.SpreadsheetID), url.PathEscape(g.Worksheet))
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch values: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch values: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return result.Values, nil
}

// accessToken returns a cached bearer token, exchanging a fresh RS256
// service-account assertion when the cached one is near expiry.
func (g *GoogleSource) accessToken() (string, error) {
	if g.token != "" && time.Now().Before(g.tokenExpiry.Add(-time.Minute)) {
		return g.token, nil
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(g.account.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   g.account.ClientEmail,
		"scope": sheetsScope,
		"aud":   g.tokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}
	resp, err := g.Client.Post(g.tokenURI, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token exchange: status %d, body: %s", resp.StatusCode, string(body))
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token exchange returned empty access_token")
	}

	g.token = tr.AccessToken
	g.tokenExpiry = now.Add(time.Duration(tr.ExpiresIn) * time.Second)
	return g.token, nil
}
