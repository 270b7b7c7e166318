//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SetupAdmin creates the first admin account via the setup endpoint and
// returns the auth token.
func (env *TestEnv) SetupAdmin(username, password string) string {
	env.t.Helper()
	resp := env.POST("/admin/setup", map[string]string{
		"username": username,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("SetupAdmin: expected 201, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("SetupAdmin: decode: %v", err)
	}
	return result.Token
}

// LoginAdmin authenticates an existing admin and returns the auth token.
func (env *TestEnv) LoginAdmin(username, password string) string {
	env.t.Helper()
	resp := env.POST("/admin/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("LoginAdmin: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("LoginAdmin: decode: %v", err)
	}
	return result.Token
}

// SeedAdmin inserts an admin directly into the DB and returns a JWT.
// Useful for tests that do not exercise the setup flow itself.
func (env *TestEnv) SeedAdmin(username, password string) string {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		env.t.Fatalf("SeedAdmin: hash: %v", err)
	}

	var adminID int64
	err = env.Pool.QueryRow(ctx,
		"INSERT INTO admins (username, password_hash) VALUES ($1, $2) RETURNING id",
		username, string(hash)).Scan(&adminID)
	if err != nil {
		env.t.Fatalf("SeedAdmin: insert: %v", err)
	}

	token, err := env.JWTMgr.GenerateToken(adminID, username)
	if err != nil {
		env.t.Fatalf("SeedAdmin: token: %v", err)
	}
	return token
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a JSON POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("POST %s: encode: %v", path, err)
		}
	}
	req, err := http.NewRequest("POST", env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("POST %s: new request: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest("GET", env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("AuthGET %s: new request: %v", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("AuthGET %s: %v", path, err)
	}
	return resp
}

// AuthPOST performs an authenticated JSON POST request.
func (env *TestEnv) AuthPOST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.POST(path, body, token)
}

// MultipartFile attaches a named file to a multipart registration form.
type MultipartFile struct {
	Field    string
	Filename string
	Content  []byte
}

// PostMultipart submits a multipart/form-data request, as browsers do for
// the registration forms.
func (env *TestEnv) PostMultipart(path string, fields map[string]string, files []MultipartFile) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			env.t.Fatalf("PostMultipart %s: write field %s: %v", path, k, err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			env.t.Fatalf("PostMultipart %s: create file %s: %v", path, f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			env.t.Fatalf("PostMultipart %s: write file %s: %v", path, f.Field, err)
		}
	}
	if err := mw.Close(); err != nil {
		env.t.Fatalf("PostMultipart %s: close writer: %v", path, err)
	}

	req, err := http.NewRequest("POST", env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("PostMultipart %s: new request: %v", path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("PostMultipart %s: %v", path, err)
	}
	return resp
}

// DecodeBody decodes a JSON response body into out and closes the body.
func (env *TestEnv) DecodeBody(resp *http.Response, out interface{}) {
	env.t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		env.t.Fatalf("DecodeBody: %v", err)
	}
}

// DrainBody reads and closes a response body, returning it as a string.
func (env *TestEnv) DrainBody(resp *http.Response) string {
	env.t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		env.t.Fatalf("DrainBody: %v", err)
	}
	return string(b)
}
