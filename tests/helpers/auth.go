package helpers

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"os"
	"testing"

	authorizer "github.com/localnerve/authorizer-go"
)

// SessionCookie is the Authorizer session cookie the service validates
const SessionCookie = "cookie_session"

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword generates a 10 character password with a capital and special char
func GeneratePassword() string {
	const (
		lower   = "abcdefghijklmnopqrstuvwxyz"
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
		all     = lower + upper + special + numbers
	)

	password := make([]byte, 10)
	password[0] = upper[randInt(len(upper))]
	password[1] = special[randInt(len(special))]
	password[2] = numbers[randInt(len(numbers))]

	for i := 3; i < 10; i++ {
		password[i] = all[randInt(len(all))]
	}

	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// SignUp registers an account with the given roles. An existing account is not an error.
func SignUp(t *testing.T, authzURL, email, password string, roles []string) {
	t.Helper()

	client, err := authorizer.NewAuthorizerClient(os.Getenv("AUTHZ_CLIENT_ID"), authzURL, "", nil)
	if err != nil {
		t.Fatalf("Failed to create authorizer client: %v", err)
	}

	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	if _, err := client.SignUp(&authorizer.SignUpInput{
		Email:           &email,
		Password:        password,
		ConfirmPassword: password,
		Roles:           rolesPtrs,
	}); err != nil {
		t.Logf("Signup failed (might already exist): %v", err)
	}
}

// AcquireSession signs up and logs in, returning the session cookie value the
// Authorizer sets on login
func AcquireSession(t *testing.T, authzURL, email, password string, roles []string) string {
	t.Helper()

	SignUp(t, authzURL, email, password, roles)

	body, err := json.Marshal(map[string]any{
		"query": `mutation login($data: LoginInput!) { login(params: $data) { access_token } }`,
		"variables": map[string]any{
			"data": map[string]any{"email": email, "password": password, "roles": roles},
		},
	})
	if err != nil {
		t.Fatalf("Failed to encode login request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, authzURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to create login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-authorizer-client-id", os.Getenv("AUTHZ_CLIENT_ID"))
	req.Header.Set("x-authorizer-url", authzURL)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			return c.Value
		}
	}

	t.Fatalf("Login response had no %s cookie (status %d)", SessionCookie, resp.StatusCode)
	return ""
}
