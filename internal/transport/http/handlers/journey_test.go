package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"peopledesk/internal/app/server"
	"peopledesk/internal/platform/config"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func newTestApp(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		Addr:         ":0",
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
		FrontendDir:  "frontend/dist",
		Environment:  "test",
		RunSeed:      true,
		MaxBodyBytes: 1048576,
	}
	app, err := server.New(cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("failed to decode response from %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode, env
}

func login(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/login", "", map[string]string{
		"username": "hrmanager",
		"password": "password123",
	})
	if status != http.StatusOK {
		t.Fatalf("login failed with status %d: %+v", status, env.Error)
	}
	var result struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if result.Token == "" || result.User.Username != "hrmanager" {
		t.Fatalf("unexpected login response: %+v", result)
	}
	return result.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
		"username": "hrmanager",
		"password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "invalid_credentials" {
		t.Fatalf("unexpected error payload: %+v", env.Error)
	}
}

func TestDashboardAndOrgChartJourney(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/dashboard/summary", token, nil)
	if status != http.StatusOK {
		t.Fatalf("summary failed with status %d", status)
	}
	var summary struct {
		TotalEmployees   int `json:"totalEmployees"`
		NewHires         int `json:"newHires"`
		PendingApprovals int `json:"pendingApprovals"`
		ContractRenewals int `json:"contractRenewals"`
	}
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary.TotalEmployees != 9 {
		t.Fatalf("expected 9 employees in sample data, got %d", summary.TotalEmployees)
	}
	if summary.NewHires != 3 {
		t.Fatalf("expected 3 new hires, got %d", summary.NewHires)
	}
	if summary.PendingApprovals != 2 {
		t.Fatalf("expected 2 pending approvals, got %d", summary.PendingApprovals)
	}
	if summary.ContractRenewals != 1 {
		t.Fatalf("expected 1 upcoming renewal, got %d", summary.ContractRenewals)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/dashboard/employees", token, nil)
	if status != http.StatusOK {
		t.Fatalf("recent employees failed with status %d", status)
	}
	var recent []struct {
		FirstName  string `json:"firstName"`
		Position   string `json:"position"`
		Department string `json:"department"`
	}
	if err := json.Unmarshal(env.Data, &recent); err != nil {
		t.Fatalf("failed to decode recent employees: %v", err)
	}
	if len(recent) != 4 {
		t.Fatalf("expected 4 recent employees, got %d", len(recent))
	}
	if recent[0].FirstName != "Alex" || recent[0].Position != "Full Stack Developer" {
		t.Fatalf("expected the most recent hire first, got %+v", recent[0])
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/organization/chart", token, nil)
	if status != http.StatusOK {
		t.Fatalf("org chart failed with status %d", status)
	}
	var chart []struct {
		Name  string `json:"name"`
		Level int    `json:"level"`
	}
	if err := json.Unmarshal(env.Data, &chart); err != nil {
		t.Fatalf("failed to decode chart: %v", err)
	}
	if len(chart) != 9 {
		t.Fatalf("expected 9 chart entries, got %d", len(chart))
	}
	levels := map[string]int{}
	for _, entry := range chart {
		levels[entry.Name] = entry.Level
	}
	if levels["Michael Rodriguez"] != 1 {
		t.Fatalf("expected CTO at level 1, got %d", levels["Michael Rodriguez"])
	}
	if levels["John Doe"] != 2 {
		t.Fatalf("expected HR manager at level 2, got %d", levels["John Doe"])
	}
	if levels["Alex Kim"] != 3 {
		t.Fatalf("expected developer at level 3, got %d", levels["Alex Kim"])
	}
}

func TestDepartmentCRUDJourney(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/departments", token, map[string]any{
		"name":        "Legal",
		"description": "Legal affairs",
	})
	if status != http.StatusCreated {
		t.Fatalf("create failed with status %d: %+v", status, env.Error)
	}
	var dept struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(env.Data, &dept); err != nil {
		t.Fatalf("failed to decode department: %v", err)
	}
	if dept.ID != 7 {
		t.Fatalf("expected id 7 after the six seeded departments, got %d", dept.ID)
	}

	status, env = doJSON(t, client, http.MethodPut, fmt.Sprintf("%s/api/departments/%d", ts.URL, dept.ID), token, map[string]any{
		"description": "Legal and compliance",
	})
	if status != http.StatusOK {
		t.Fatalf("update failed with status %d", status)
	}
	if err := json.Unmarshal(env.Data, &dept); err != nil {
		t.Fatalf("failed to decode updated department: %v", err)
	}
	if dept.Name != "Legal" || dept.Description != "Legal and compliance" {
		t.Fatalf("partial update lost fields: %+v", dept)
	}

	status, _ = doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/departments/%d", ts.URL, dept.ID), token, nil)
	if status != http.StatusNoContent {
		t.Fatalf("delete failed with status %d", status)
	}

	status, env = doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/departments/%d", ts.URL, dept.ID), token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "department_not_found" {
		t.Fatalf("unexpected error payload: %+v", env.Error)
	}
}

func TestEmployeeFiltersAndValidation(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/employees?departmentId=3", token, nil)
	if status != http.StatusOK {
		t.Fatalf("filter failed with status %d", status)
	}
	var employees []struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.Unmarshal(env.Data, &employees); err != nil {
		t.Fatalf("failed to decode employees: %v", err)
	}
	if len(employees) != 1 || employees[0].FirstName != "Alex" {
		t.Fatalf("expected only the engineering hire, got %+v", employees)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/employees?managerId=1", token, nil)
	if status != http.StatusOK {
		t.Fatalf("manager filter failed with status %d", status)
	}
	if err := json.Unmarshal(env.Data, &employees); err != nil {
		t.Fatalf("failed to decode employees: %v", err)
	}
	if len(employees) != 3 {
		t.Fatalf("expected 3 direct reports of the CEO, got %d", len(employees))
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/employees?departmentId=abc", token, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad filter, got %d", status)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/employees", token, map[string]any{
		"firstName": "Missing",
		"lastName":  "Email",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing email, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("unexpected error payload: %+v", env.Error)
	}
}

func TestContractRenewalFilter(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/contracts?renewalDays=30", token, nil)
	if status != http.StatusOK {
		t.Fatalf("renewal filter failed with status %d", status)
	}
	var contracts []struct {
		ID          int    `json:"id"`
		RenewalDate string `json:"renewalDate"`
	}
	if err := json.Unmarshal(env.Data, &contracts); err != nil {
		t.Fatalf("failed to decode contracts: %v", err)
	}
	if len(contracts) != 1 {
		t.Fatalf("expected 1 contract in the renewal window, got %d", len(contracts))
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/contracts?employeeId=1", token, nil)
	if status != http.StatusOK {
		t.Fatalf("employee filter failed with status %d", status)
	}
	if err := json.Unmarshal(env.Data, &contracts); err != nil {
		t.Fatalf("failed to decode contracts: %v", err)
	}
	if len(contracts) != 1 {
		t.Fatalf("expected 1 contract for the CEO, got %d", len(contracts))
	}
}

func TestWorkflowInstanceTransitions(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/workflow-instances/1/advance", token, nil)
	if status != http.StatusOK {
		t.Fatalf("advance failed with status %d: %+v", status, env.Error)
	}
	var inst struct {
		CurrentStep     int    `json:"currentStep"`
		Status          string `json:"status"`
		CurrentStepName string `json:"currentStepName"`
	}
	if err := json.Unmarshal(env.Data, &inst); err != nil {
		t.Fatalf("failed to decode instance: %v", err)
	}
	if inst.CurrentStep != 2 || inst.Status != "pending" {
		t.Fatalf("unexpected instance after advance: %+v", inst)
	}
	if inst.CurrentStepName != "Training Assignment" {
		t.Fatalf("expected the third step name, got %q", inst.CurrentStepName)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/workflow-instances/1/approve", token, nil)
	if status != http.StatusOK {
		t.Fatalf("approve failed with status %d", status)
	}
	if err := json.Unmarshal(env.Data, &inst); err != nil {
		t.Fatalf("failed to decode instance: %v", err)
	}
	if inst.Status != "approved" {
		t.Fatalf("expected approved, got %q", inst.Status)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/workflow-instances/1/advance", token, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 advancing an approved instance, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "invalid_transition" {
		t.Fatalf("unexpected error payload: %+v", env.Error)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/workflow-instances/2/reject", token, nil)
	if status != http.StatusOK {
		t.Fatalf("reject failed with status %d", status)
	}
	if err := json.Unmarshal(env.Data, &inst); err != nil {
		t.Fatalf("failed to decode instance: %v", err)
	}
	if inst.Status != "rejected" {
		t.Fatalf("expected rejected, got %q", inst.Status)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/workflow-instances?status=pending", token, nil)
	if status != http.StatusOK {
		t.Fatalf("status filter failed with status %d", status)
	}
	var pending []json.RawMessage
	if err := json.Unmarshal(env.Data, &pending); err != nil {
		t.Fatalf("failed to decode instances: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending instances after both concluded, got %d", len(pending))
	}

	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/workflow-instances/999/approve", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing instance, got %d", status)
	}
}

func TestEmployeeProfilePDF(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/employees/1/profile.pdf", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}

	status, _ := doJSON(t, client, http.MethodGet, ts.URL+"/api/employees/999/profile.pdf", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing employee, got %d", status)
	}
}

func TestUserResponsesOmitCredentials(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/users", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list failed with status %d", status)
	}
	var users []struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatalf("failed to decode users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 seeded user, got %d", len(users))
	}
	if users[0].Password != "" {
		t.Fatal("expected the credential to be blanked in responses")
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/users", token, map[string]any{
		"username": "assistant",
		"password": "initial-pass",
		"role":     "user",
	})
	if status != http.StatusCreated {
		t.Fatalf("create failed with status %d: %+v", status, env.Error)
	}
	var created struct {
		ID       int    `json:"id"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode user: %v", err)
	}
	if created.Password != "" {
		t.Fatal("expected the credential to be blanked in responses")
	}

	// The new account can log in, which means the stored hash verifies.
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
		"username": "assistant",
		"password": "initial-pass",
	})
	if status != http.StatusOK {
		t.Fatalf("expected the created user to log in, got %d", status)
	}
}
