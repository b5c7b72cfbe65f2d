package runtime_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ramaditya/webtask/internal/hiring"
	"github.com/ramaditya/webtask/internal/input"
	"github.com/ramaditya/webtask/internal/query"
	"github.com/ramaditya/webtask/internal/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submission struct {
	Authorization string
	ContentType   string
	Body          map[string]any
}

type fakeHiringAPI struct {
	*httptest.Server
	generateCalls atomic.Int32
	submitCalls   atomic.Int32
	submitted     submission
}

// newFakeHiringAPI serves /generate with the response built by respond and records /submit calls.
func newFakeHiringAPI(t *testing.T, respond func(base string) string) *fakeHiringAPI {
	api := &fakeHiringAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		api.generateCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, respond(api.URL))
	})
	mux.HandleFunc("/submit", func(w http.ResponseWriter, r *http.Request) {
		api.submitCalls.Add(1)
		api.submitted.Authorization = r.Header.Get("Authorization")
		api.submitted.ContentType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&api.submitted.Body))
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

func validResponse(base string) string {
	return fmt.Sprintf(`{"webhook":%q,"accessToken":"Bearer-less.token.value"}`, base+"/submit")
}

func newRuntime(api *fakeHiringAPI, stdin string, out io.Writer) *runtime.Runtime {
	client := hiring.NewClient(hiring.WithEndpoint(api.URL + "/generate"))
	collector := input.NewCollector(strings.NewReader(stdin), out)
	return runtime.NewRuntime(collector, client, runtime.WithOutput(out))
}

func TestRunSubmitsSelectedQuery(t *testing.T) {
	testCases := []struct {
		Name     string
		RegNo    string
		Expected string
	}{
		{
			Name:     "even_reg_no",
			RegNo:    "1234567890",
			Expected: query.DepartmentRoster,
		},
		{
			Name:     "odd_reg_no",
			RegNo:    "1234567891",
			Expected: query.TopPaidPerDepartment,
		},
		{
			Name:     "odd_short_reg_no",
			RegNo:    "AB01",
			Expected: query.TopPaidPerDepartment,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			api := newFakeHiringAPI(t, validResponse)
			var out bytes.Buffer
			rt := newRuntime(api, "John Doe\n"+tc.RegNo+"\njohn@example.com\n", &out)

			require.NoError(t, rt.Run(context.Background()))

			assert.Equal(t, runtime.StateDone, rt.State())
			assert.EqualValues(t, 1, api.generateCalls.Load())
			assert.EqualValues(t, 1, api.submitCalls.Load())
			assert.Equal(t, "Bearer-less.token.value", api.submitted.Authorization)
			assert.Equal(t, "application/json", api.submitted.ContentType)
			assert.Equal(t, map[string]any{"finalQuery": tc.Expected}, api.submitted.Body)

			expected := "Enter your name: Enter your regNo: Enter your email: " +
				"\nGenerating webhook...\n" +
				"Webhook received: " + api.URL + "/submit\n" +
				"Access Token received.\n\n" +
				"Submitting SQL Query...\n\n" +
				"SQL query submitted successfully!\n"
			assert.Equal(t, expected, out.String())
		})
	}
}

func TestRunWebhookFailure(t *testing.T) {
	testCases := []struct {
		Name     string
		Response string
	}{
		{
			Name:     "null_response",
			Response: `null`,
		},
		{
			Name:     "empty_response",
			Response: ``,
		},
		{
			Name:     "missing_webhook",
			Response: `{"accessToken":"tok"}`,
		},
		{
			Name:     "null_webhook",
			Response: `{"webhook":null,"accessToken":"tok"}`,
		},
		{
			Name:     "empty_webhook",
			Response: `{"webhook":"","accessToken":"tok"}`,
		},
		{
			Name:     "missing_access_token",
			Response: `{"webhook":"https://example.com/hook"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			api := newFakeHiringAPI(t, func(string) string { return tc.Response })
			var out bytes.Buffer
			rt := newRuntime(api, "John Doe\nREG12347\njohn@example.com\n", &out)

			assert.NoError(t, rt.Run(context.Background()))

			assert.Equal(t, runtime.StateDone, rt.State())
			assert.EqualValues(t, 1, api.generateCalls.Load())
			assert.EqualValues(t, 0, api.submitCalls.Load())
			assert.True(t, strings.HasSuffix(out.String(), "\nGenerating webhook...\nFailed to generate webhook. Exiting...\n"))
		})
	}
}

func TestRunErrors(t *testing.T) {
	testCases := []struct {
		Name          string
		Stdin         string
		ExpectedState runtime.State
		ExpectedCalls int32
	}{
		{
			Name:          "end_of_input",
			Stdin:         "John Doe\n",
			ExpectedState: runtime.StateStart,
		},
		{
			Name:          "malformed_reg_no",
			Stdin:         "John Doe\nREG-AB\njohn@example.com\n",
			ExpectedState: runtime.StateWebhookReceived,
			ExpectedCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			api := newFakeHiringAPI(t, validResponse)
			rt := newRuntime(api, tc.Stdin, io.Discard)

			assert.Error(t, rt.Run(context.Background()))
			assert.Equal(t, tc.ExpectedState, rt.State())
			assert.Equal(t, tc.ExpectedCalls, api.generateCalls.Load())
			assert.EqualValues(t, 0, api.submitCalls.Load())
		})
	}
}

func TestRunSubmitFailurePropagates(t *testing.T) {
	var base string
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, validResponse(base))
	})
	mux.HandleFunc("/submit", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	base = srv.URL

	client := hiring.NewClient(hiring.WithEndpoint(srv.URL + "/generate"))
	rt := runtime.NewRuntime(input.Static{Name: "John Doe", RegNo: "REG12347", Email: "john@example.com"}, client)

	err := rt.Run(context.Background())
	var statusErr *hiring.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, runtime.StateWebhookReceived, rt.State())
}
